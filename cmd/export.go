package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/daehyun-ko/jobscout/internal/clock"
	"github.com/daehyun-ko/jobscout/internal/export"
	"github.com/daehyun-ko/jobscout/internal/job"
)

func newExportCmd() *cobra.Command {
	var (
		keyword string
		since   string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Writes stored job postings to a CSV file",
		Long: `Dumps stored records to a timestamped CSV file named after the
keyword. With --since only records scraped after the given RFC 3339
instant are exported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			clk := clock.System{}
			st, err := openStore(cmd.Context(), cfg, clk)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logger.Warn("store close failed", zap.Error(cerr))
				}
			}()

			var records []job.Record
			if since != "" {
				t, perr := time.Parse(time.RFC3339, since)
				if perr != nil {
					return fmt.Errorf("--since must be RFC 3339: %w", perr)
				}
				records, err = st.ListChangedSince(cmd.Context(), t)
			} else {
				records, err = st.List(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}

			dir := cfg.Export.Dir
			if outDir != "" {
				dir = outDir
			}
			path, err := export.Write(dir, keyword, clk.Now(), records)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", len(records), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "jobs", "keyword stamped into the file name")
	cmd.Flags().StringVar(&since, "since", "", "export only records scraped after this RFC 3339 instant")
	cmd.Flags().StringVar(&outDir, "dir", "", "output directory (defaults to export.dir from config)")
	return cmd
}
