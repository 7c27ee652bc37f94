package crawl

import "time"

// StopReason records why a keyword's pagination ended.
type StopReason string

const (
	StopMaxPages    StopReason = "max_pages"
	StopEmptyPage   StopReason = "empty_page"
	StopRecordCap   StopReason = "record_cap"
	StopFetchFailed StopReason = "fetch_failed"
	StopParseFailed StopReason = "parse_failed"
	StopCanceled    StopReason = "canceled"
)

// KeywordStats reports one keyword's crawl outcome.
type KeywordStats struct {
	Keyword        string     `json:"keyword"`
	Pages          int        `json:"pages"`
	Parsed         int        `json:"parsed"`
	Stored         int        `json:"stored"`
	StoreFailures  int        `json:"store_failures"`
	EnrichFailures int        `json:"enrich_failures"`
	StopReason     StopReason `json:"stop_reason"`
}

// Summary is the outcome of one crawl run. It is produced even when every
// keyword fails.
type Summary struct {
	RunID          string         `json:"run_id"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
	Keywords       []KeywordStats `json:"keywords"`
	PagesFetched   int            `json:"pages_fetched"`
	RecordsParsed  int            `json:"records_parsed"`
	RecordsStored  int            `json:"records_stored"`
	FetchFailures  int            `json:"fetch_failures"`
	ParseFailures  int            `json:"parse_failures"`
	StoreFailures  int            `json:"store_failures"`
	EnrichFailures int            `json:"enrich_failures"`
}

func (s *Summary) tally() {
	for _, ks := range s.Keywords {
		s.PagesFetched += ks.Pages
		s.RecordsParsed += ks.Parsed
		s.RecordsStored += ks.Stored
		s.StoreFailures += ks.StoreFailures
		s.EnrichFailures += ks.EnrichFailures
		switch ks.StopReason {
		case StopFetchFailed:
			s.FetchFailures++
		case StopParseFailed:
			s.ParseFailures++
		}
	}
}

// Unreachable reports total failure: no keyword produced a single record and
// every one of them died on a fetch failure. Callers use it to decide the
// process exit status.
func (s *Summary) Unreachable() bool {
	if len(s.Keywords) == 0 || s.RecordsStored > 0 {
		return false
	}
	for _, ks := range s.Keywords {
		if ks.StopReason != StopFetchFailed {
			return false
		}
	}
	return true
}
