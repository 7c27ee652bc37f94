package job

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// skillSynonyms folds common spelling variants into one canonical token.
var skillSynonyms = map[string]string{
	"python3":          "python",
	"python2":          "python",
	"py":               "python",
	"js":               "javascript",
	"ts":               "typescript",
	"nodejs":           "node",
	"postgresql":       "postgres",
	"postgre":          "postgres",
	"tf":               "tensorflow",
	"tf1":              "tensorflow",
	"tf2":              "tensorflow",
	"sklearn":          "scikit-learn",
	"scikitlearn":      "scikit-learn",
	"pytorch":          "torch",
	"machinelearning":  "ml",
	"machine-learning": "ml",
}

var skillTokenJunk = regexp.MustCompile(`[^\p{L}\p{N}#+.+-]`)

// CleanSkillToken lowercases a raw skill tag, strips punctuation that is not
// meaningful in a skill name (keeping C#, C++, .NET intact), and applies the
// synonym table.
func CleanSkillToken(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = skillTokenJunk.ReplaceAllString(token, "")
	if token == "" {
		return ""
	}
	if canonical, ok := skillSynonyms[token]; ok {
		return canonical
	}
	return token
}

// NormalizeSkills splits raw skill strings on the separators the source uses,
// cleans each token, and removes duplicates while preserving source order.
func NormalizeSkills(raw []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, chunk := range raw {
		chunk = strings.NewReplacer("/", " ", "|", " ", ",", " ", ";", " ").Replace(chunk)
		for _, field := range strings.Fields(chunk) {
			token := CleanSkillToken(field)
			if token == "" {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}

var (
	relativeDaysPattern = regexp.MustCompile(`^(\d+)일\s*전`)
	monthDayPattern     = regexp.MustCompile(`^\d{1,2}\.\d{1,2}$`)
)

// dateLayouts are the absolute formats observed across postings.
var dateLayouts = []string{
	"2006.01.02",
	"2006/01/02",
	"2006-01-02",
	"06.01.02",
	"06/01/02",
	"06-01-02",
}

// NormalizeDate maps the source's free-form date text toward YYYY-MM-DD.
// The source mixes absolute dates, "MM.DD(요일)" deadlines, and relative
// phrases like "3일 전". Anything unrecognized is returned as-is so no
// information is lost.
func NormalizeDate(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := relativeDaysPattern.FindStringSubmatch(s); m != nil {
		days, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -days).Format("2006-01-02")
	}
	if strings.HasPrefix(s, "오늘") {
		return now.Format("2006-01-02")
	}
	if strings.HasPrefix(s, "어제") {
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}

	// "~11.11(월)" style deadlines: drop the tilde and the weekday suffix.
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.SplitN(s, "(", 2)[0], "~", ""))
	if monthDayPattern.MatchString(cleaned) {
		parts := strings.SplitN(cleaned, ".", 2)
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return s
}

// Normalize applies skill and date normalization to a record in place and
// returns it. The URL and identifier are left untouched.
func Normalize(r Record, now time.Time) Record {
	r.Skills = NormalizeSkills(r.Skills)
	r.PostedAt = NormalizeDate(r.PostedAt, now)
	r.DueDate = NormalizeDate(r.DueDate, now)
	return r
}
