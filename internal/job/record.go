// Package job defines the normalized posting record shared across subsystems.
package job

import "time"

// Record is one normalized job posting. JobID is the primary key; URL acts as
// a secondary natural key when the source identifier turns out to be unstable.
type Record struct {
	JobID       string    `json:"job_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Career      string    `json:"career"`
	Education   string    `json:"education"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	JobCategory string    `json:"job_category"`
	Skills      []string  `json:"skills"`
	PostedAt    string    `json:"posted_at"`
	DueDate     string    `json:"due_date"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// HasSummary reports whether detail enrichment has filled the summary field.
func (r Record) HasSummary() bool {
	return r.Summary != ""
}
