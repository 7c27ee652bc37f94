// Package parse extracts job records from list-page and detail-page HTML.
package parse

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/daehyun-ko/jobscout/internal/job"
)

// Error reports malformed or unexpected HTML. It is permanent for the
// affected page.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CardVariant extracts fields from one observed card markup shape. The source
// site ships more than one listing layout, so the parser holds one variant
// per shape and picks whichever matches the document.
type CardVariant interface {
	Name() string
	Select(doc *goquery.Document) *goquery.Selection
	Extract(card *goquery.Selection, base *url.URL) (job.Record, bool)
}

// Listing parses one list page into a bounded sequence of records.
// Extraction is tolerant: a missing field becomes an empty string, and a card
// missing even a title is skipped rather than failing the page.
type Listing struct {
	variants []CardVariant
	ids      job.IDStrategy
}

// NewListing builds a Listing parser. With no explicit variants the known
// source layouts are used in preference order.
func NewListing(ids job.IDStrategy, variants ...CardVariant) *Listing {
	if len(variants) == 0 {
		variants = []CardVariant{itemRecruitVariant{}, listItemVariant{}}
	}
	return &Listing{variants: variants, ids: ids}
}

// Parse extracts all cards from html. A page with zero cards returns an empty
// slice and no error; that outcome terminates pagination upstream but is not
// a failure.
func (p *Listing) Parse(pageURL string, html []byte) ([]job.Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: fmt.Errorf("bad page url: %w", err)}
	}

	for _, variant := range p.variants {
		cards := variant.Select(doc)
		if cards.Length() == 0 {
			continue
		}
		records := make([]job.Record, 0, cards.Length())
		cards.Each(func(_ int, card *goquery.Selection) {
			rec, ok := variant.Extract(card, base)
			if !ok {
				return
			}
			rec.JobID = p.ids.Derive(rec.URL)
			records = append(records, rec)
		})
		return records, nil
	}
	return nil, nil
}

// absoluteURL resolves href against the page base, guaranteeing the record
// URL is always absolute.
func absoluteURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
