package job

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
	"unicode"
)

// IDStrategy derives a stable job identifier from a posting URL. The source
// site's native identifier has been observed to be reused across reposts, so
// derivation is pluggable: callers choose between the native query parameter
// and a URL-derived hash.
type IDStrategy interface {
	Derive(rawURL string) string
}

// NativeID extracts the source's own identifier from the URL query
// (rec_idx, then idx), falling back to digits embedded in the path and
// finally to a URL hash. It never seeds the fallback with the current time:
// the same URL must always yield the same identifier or upserts stop being
// idempotent.
type NativeID struct{}

// Derive implements IDStrategy.
func (NativeID) Derive(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return URLHash{}.Derive(rawURL)
	}
	q := u.Query()
	for _, key := range []string{"rec_idx", "idx"} {
		if v := q.Get(key); v != "" {
			return v
		}
	}
	var digits strings.Builder
	for _, r := range u.Path {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() > 0 {
		return digits.String()
	}
	return URLHash{}.Derive(rawURL)
}

// URLHash hashes the canonical form of the URL. It survives source-side
// identifier churn at the cost of treating any URL change as a new posting.
type URLHash struct{}

// Derive implements IDStrategy.
func (URLHash) Derive(rawURL string) string {
	sum := sha1.Sum([]byte(canonicalURL(rawURL)))
	return hex.EncodeToString(sum[:])
}

// canonicalURL strips fragments and re-encodes the query so that
// insignificant differences do not split one posting into two identifiers.
func canonicalURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawQuery = u.Query().Encode()
	return u.String()
}
