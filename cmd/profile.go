package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daehyun-ko/jobscout/internal/profile"
)

func newProfileCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "profile [text]",
		Short: "Extracts search keywords from a free-text career profile",
		Long: `Classifies the profile text against role, skill, and location lexicons
and prints the extracted keywords as JSON. Reads from --file or stdin
when no text argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			text, err := profileText(args, fromFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			extractor := profile.NewExtractor(profile.DefaultLexicon(), cfg.Profile.MaxKeywords)
			keywords := extractor.Extract(text)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(keywords)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "read the profile text from a file")
	return cmd
}

func profileText(args []string, fromFile string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return "", fmt.Errorf("read profile file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read profile from stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no profile text given")
	}
	return text, nil
}
