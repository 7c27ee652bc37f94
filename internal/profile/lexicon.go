// Package profile turns free-text user profiles into ranked search keywords.
package profile

// Entry maps one canonical term to the spelling variants seen in user input.
type Entry struct {
	Canonical string
	Variants  []string
}

// Lexicon holds the static matching tables. Entries are ordered: extraction
// output must be deterministic, so ranking follows table order. The tables are
// plain data so tests and deployments can swap them without code changes.
type Lexicon struct {
	Roles     []Entry
	Skills    []Entry
	Locations []Entry
	Stopwords []string
}

// DefaultLexicon returns the built-in Korean/English catalog.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Roles: []Entry{
			{Canonical: "데이터 분석가", Variants: []string{"데이터 분석가", "data analyst", "데이터 분석"}},
			{Canonical: "데이터 사이언티스트", Variants: []string{"데이터 사이언티스트", "data scientist"}},
			{Canonical: "머신러닝 엔지니어", Variants: []string{"머신러닝 엔지니어", "ml engineer", "머신러닝"}},
			{Canonical: "AI 제품 매니저", Variants: []string{"ai pm", "ai product manager", "ai 제품 매니저"}},
			{Canonical: "백엔드 개발자", Variants: []string{"백엔드", "backend", "server developer"}},
			{Canonical: "프론트엔드 개발자", Variants: []string{"프론트엔드", "frontend", "front-end"}},
			{Canonical: "데이터 엔지니어", Variants: []string{"데이터 엔지니어", "data engineer"}},
			{Canonical: "MLOps 엔지니어", Variants: []string{"mlops", "ml ops"}},
		},
		Skills: []Entry{
			{Canonical: "Python", Variants: []string{"python", "파이썬"}},
			{Canonical: "SQL", Variants: []string{"sql"}},
			{Canonical: "R", Variants: []string{" r ", "r언어", "r programming"}},
			{Canonical: "TensorFlow", Variants: []string{"tensorflow", "텐서플로"}},
			{Canonical: "PyTorch", Variants: []string{"pytorch", "파이토치"}},
			{Canonical: "LLM", Variants: []string{"llm", "large language model", "대형 언어 모델"}},
			{Canonical: "데이터 시각화", Variants: []string{"tableau", "power bi", "시각화"}},
			{Canonical: "클라우드", Variants: []string{"aws", "gcp", "azure"}},
			{Canonical: "MLOps", Variants: []string{"mlops", "ml ops"}},
			{Canonical: "API 설계", Variants: []string{"rest api", "grpc", "api 설계"}},
		},
		Locations: []Entry{
			{Canonical: "서울", Variants: []string{"서울", "seoul"}},
			{Canonical: "경기", Variants: []string{"경기", "gyeonggi", "판교"}},
			{Canonical: "부산", Variants: []string{"부산", "busan"}},
			{Canonical: "대구", Variants: []string{"대구", "daegu"}},
			{Canonical: "인천", Variants: []string{"인천", "incheon"}},
			{Canonical: "대전", Variants: []string{"대전", "daejeon"}},
			{Canonical: "광주", Variants: []string{"광주", "gwangju"}},
		},
		Stopwords: []string{
			"저는", "제가", "그리고", "하지만", "싶어요", "싶습니다", "있습니다",
			"합니다", "해요", "쪽", "관련", "경력", "신입", "전환", "희망",
			"the", "and", "for", "with", "want", "into",
		},
	}
}
