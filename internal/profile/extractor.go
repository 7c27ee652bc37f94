package profile

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Seniority is the experience band derived from a profile text.
type Seniority string

// Seniority bands. Year counts map to: <2 junior, 2-5 mid, >5 senior.
const (
	SeniorityUnspecified Seniority = "unspecified"
	SeniorityJunior      Seniority = "junior"
	SeniorityMid         Seniority = "mid"
	SenioritySenior      Seniority = "senior"
)

// Keywords is the structured extraction result for one profile text.
// It is derived, never persisted.
type Keywords struct {
	RoleCandidates  []string  `json:"role_candidates"`
	SkillTerms      []string  `json:"skill_terms"`
	LocationTerms   []string  `json:"location_terms"`
	Seniority       Seniority `json:"seniority"`
	ExperienceYears int       `json:"experience_years,omitempty"`
	SearchKeywords  []string  `json:"search_keywords"`
}

// DefaultMaxKeywords bounds downstream request volume per profile.
const DefaultMaxKeywords = 5

var (
	yearsPattern = regexp.MustCompile(`(\d+)\s*년(?:\s*차)?`)
	tokenSplit   = regexp.MustCompile(`[,\s/]+`)
)

// seniorityHints maps experience words to a band when no year count appears.
var seniorityHints = []struct {
	word string
	band Seniority
}{
	{"신입", SeniorityJunior},
	{"주니어", SeniorityJunior},
	{"미드", SeniorityMid},
	{"시니어", SenioritySenior},
	{"리드", SenioritySenior},
}

// Extractor classifies profile tokens against static lexicons. It is a pure
// function of its input and the lexicon; malformed input yields an empty
// keyword set, never an error.
type Extractor struct {
	lex         Lexicon
	stopwords   map[string]struct{}
	maxKeywords int
}

// NewExtractor builds an Extractor. maxKeywords <= 0 selects the default.
func NewExtractor(lex Lexicon, maxKeywords int) *Extractor {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	stop := make(map[string]struct{}, len(lex.Stopwords))
	for _, w := range lex.Stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{lex: lex, stopwords: stop, maxKeywords: maxKeywords}
}

// Extract derives ranked search keywords and structured attributes from one
// free-text profile. Ranking: role phrases, then skills, then locations,
// generic tokens only when no lexicon entry matched.
func (e *Extractor) Extract(text string) Keywords {
	normalized := normalize(text)

	kw := Keywords{
		RoleCandidates: matchCatalog(normalized, e.lex.Roles),
		SkillTerms:     matchCatalog(normalized, e.lex.Skills),
		LocationTerms:  matchCatalog(normalized, e.lex.Locations),
		Seniority:      SeniorityUnspecified,
	}
	kw.Seniority, kw.ExperienceYears = extractSeniority(normalized)

	ranked := append([]string{}, kw.RoleCandidates...)
	ranked = append(ranked, kw.SkillTerms...)
	ranked = append(ranked, kw.LocationTerms...)
	if len(kw.RoleCandidates) == 0 && len(kw.SkillTerms) == 0 {
		ranked = append(ranked, e.genericTokens(normalized)...)
	}

	kw.SearchKeywords = dedupe(ranked)
	if len(kw.SearchKeywords) > e.maxKeywords {
		kw.SearchKeywords = kw.SearchKeywords[:e.maxKeywords]
	}
	return kw
}

// genericTokens is the last-resort keyword source: short non-stopword tokens
// from the raw text, capped at three.
func (e *Extractor) genericTokens(normalized string) []string {
	var out []string
	for _, token := range tokenSplit.Split(normalized, -1) {
		if utf8.RuneCountInString(token) <= 1 {
			continue
		}
		if _, stop := e.stopwords[token]; stop {
			continue
		}
		out = append(out, token)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func matchCatalog(normalized string, entries []Entry) []string {
	var hits []string
	for _, entry := range entries {
		candidates := append([]string{strings.ToLower(entry.Canonical)}, entry.Variants...)
		for _, variant := range candidates {
			v := strings.ToLower(strings.TrimSpace(variant))
			if v != "" && strings.Contains(normalized, v) {
				hits = append(hits, entry.Canonical)
				break
			}
		}
	}
	return dedupe(hits)
}

func extractSeniority(normalized string) (Seniority, int) {
	if m := yearsPattern.FindStringSubmatch(normalized); m != nil {
		years, _ := strconv.Atoi(m[1])
		switch {
		case years < 2:
			return SeniorityJunior, years
		case years <= 5:
			return SeniorityMid, years
		default:
			return SenioritySenior, years
		}
	}
	for _, hint := range seniorityHints {
		if strings.Contains(normalized, hint.word) {
			return hint.band, 0
		}
	}
	return SeniorityUnspecified, 0
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
