package parse

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSummaryRunes = 1000

// Summary extracts the posting summary from a detail page: the description
// meta tag, falling back to the OpenGraph description. An empty result is not
// an error; some postings simply have no summary.
func Summary(pageURL string, html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", &Error{URL: pageURL, Err: err}
	}

	content, ok := doc.Find(`meta[name="description"]`).Attr("content")
	if !ok || strings.TrimSpace(content) == "" {
		content, _ = doc.Find(`meta[property="og:description"]`).Attr("content")
	}
	summary := strings.TrimSpace(content)
	if runes := []rune(summary); len(runes) > maxSummaryRunes {
		summary = string(runes[:maxSummaryRunes])
	}
	return summary, nil
}
