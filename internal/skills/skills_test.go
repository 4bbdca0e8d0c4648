package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/skillscreen/internal/dictionary"
)

type vectorStub struct {
	vectors map[string][]float32
	err     error
}

func (s *vectorStub) Name() string { return "stub" }

func (s *vectorStub) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := s.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = []float32{0, 1}
	}
	return out, nil
}

func newTestExtractor(t *testing.T, embedder *vectorStub) *Extractor {
	t.Helper()

	d, err := dictionary.Default()
	if err != nil {
		t.Fatalf("loading dictionary: %v", err)
	}
	var e *Extractor
	if embedder == nil {
		e = NewExtractor(d, NewNormalizer(d), nil, DefaultExtractorConfig(), nil)
	} else {
		e = NewExtractor(d, NewNormalizer(d), embedder, DefaultExtractorConfig(), nil)
	}
	return e
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)
	n := e.Normalizer()

	tests := map[string]string{
		"Python":          "python",
		"CSS 3":           "css3",
		"C++":             "c++",
		" c# ":            "c#",
		"cpp":             "c++",
		"Node JS":         "node.js",
		"NodeJS":          "node.js",
		"Postgres":        "postgresql",
		"REST API":        "rest api",
		"RESTful":         "rest api",
		"Foo-Bar":         "foobar",
		"scikit learn":    "scikit-learn",
		"Problem Solving": "problem solving",
		"":                "",
	}

	for input, expect := range tests {
		if got := n.Normalize(input); got != expect {
			t.Fatalf("Normalize(%q): expected %q, got %q", input, expect, got)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)
	n := e.Normalizer()

	inputs := []string{"C++", "c#", "F#", ".NET", "dotnet", "Node.js", "CSS 3", "  Golang ", "go", "k8s", "???", "Ünïcödé skill", "rest apis"}
	inputs = append(inputs, e.dict.Skills()...)

	for _, input := range inputs {
		once := n.Normalize(input)
		if twice := n.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestExtractLiteralMatches(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	got, err := e.Extract(context.Background(), "Looking for a Python developer with 3+ years in REST API and SQL.", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []string{"python", "rest api", "sql"}
	if got.Len() != len(expect) {
		t.Fatalf("expected %v, got %v", expect, got.Sorted())
	}
	for _, skill := range expect {
		if !got.Has(skill) {
			t.Fatalf("expected %q in %v", skill, got.Sorted())
		}
	}
}

func TestExtractKeepsSpecialCharacterSkillsApart(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	got, err := e.Extract(context.Background(), "Experience with C++ and C#.", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Has("c++") || !got.Has("c#") {
		t.Fatalf("expected c++ and c#, got %v", got.Sorted())
	}
	if got.Has("c") {
		t.Fatalf("did not expect bare c, got %v", got.Sorted())
	}
}

func TestExtractFindsEveryVariant(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	for _, canonical := range e.dict.SynonymGroups() {
		for _, variant := range e.dict.Variants(canonical) {
			got, err := e.Extract(context.Background(), "Worked with "+variant+" daily", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Has(canonical) {
				t.Fatalf("variant %q did not yield %q, got %v", variant, canonical, got.Sorted())
			}
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, &vectorStub{err: errors.New("must not be called")})

	for _, text := range []string{"", "   ", "\n\n"} {
		got, err := e.Extract(context.Background(), text, nil)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if got.Len() != 0 {
			t.Fatalf("expected empty set for %q, got %v", text, got.Sorted())
		}
	}
}

func TestExtractRespectsScope(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	scope := e.ScopeForRole("devops engineer")
	if scope.Len() == 0 {
		t.Fatalf("expected devops scope")
	}

	got, err := e.Extract(context.Background(), "Python, Docker, Kubernetes and Terraform", scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Has("python") {
		t.Fatalf("python is outside the devops scope, got %v", got.Sorted())
	}
	for _, skill := range []string{"docker", "kubernetes", "terraform"} {
		if !got.Has(skill) {
			t.Fatalf("expected %q, got %v", skill, got.Sorted())
		}
	}
}

func TestExtractSemanticFallback(t *testing.T) {
	t.Parallel()

	line := "Orchestrated container fleets across clusters"
	stub := &vectorStub{vectors: map[string][]float32{
		line:         {1, 0},
		"kubernetes": {1, 0.1},
		"teamwork":   {1, 0},
	}}
	e := newTestExtractor(t, stub)

	got, err := e.Extract(context.Background(), line, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Has("kubernetes") {
		t.Fatalf("expected kubernetes to be recovered, got %v", got.Sorted())
	}
	if got.Has("teamwork") {
		t.Fatalf("generic skills must not be recovered semantically, got %v", got.Sorted())
	}
}

func TestExtractSkipsFallbackWhenCoverageIsEnough(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, &vectorStub{err: errors.New("must not be called")})

	got, err := e.Extract(context.Background(), "Python, SQL and Docker", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("expected 3 skills, got %v", got.Sorted())
	}
}

func TestExtractPropagatesEmbeddingFailure(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, &vectorStub{err: errors.New("backend down")})

	if _, err := e.Extract(context.Background(), "Orchestrated container fleets", nil); err == nil {
		t.Fatalf("expected embedding error to surface")
	}
}

func TestRecoverPhrases(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	got := e.RecoverPhrases("Worked on Type Script and Post Gre SQL. Knows C++.", e.dict.Skills())
	for _, skill := range []string{"typescript", "postgresql", "c++"} {
		if !got.Has(skill) {
			t.Fatalf("expected %q, got %v", skill, got.Sorted())
		}
	}
	if got.Has("c") {
		t.Fatalf("did not expect c from c++, got %v", got.Sorted())
	}
}

func TestContainsPhrase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		phrase string
		expect bool
	}{
		{text: "built rest apis with go", phrase: "rest api", expect: true},
		{text: "sql-backed services", phrase: "sql", expect: true},
		{text: "javascript developer", phrase: "java", expect: false},
		{text: "experience with c++", phrase: "c", expect: false},
		{text: "experience with c++", phrase: "c++", expect: true},
		{text: "asp.net core", phrase: ".net", expect: true},
		{text: "nosql stores", phrase: "sql", expect: false},
		{text: "", phrase: "go", expect: false},
		{text: "holds a cs degree", phrase: "c", expect: false},
		{text: "paid in rs", phrase: "r", expect: false},
		{text: "team of mls", phrase: "ml", expect: false},
		{text: "several dbs", phrase: "db", expect: false},
		{text: "wrote sdks", phrase: "sdk", expect: true},
	}

	for _, tt := range tests {
		if got := ContainsPhrase(tt.text, tt.phrase); got != tt.expect {
			t.Fatalf("ContainsPhrase(%q, %q): expected %v, got %v", tt.text, tt.phrase, tt.expect, got)
		}
	}
}

func TestExtractIgnoresEverydayWords(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t, nil)

	tests := []struct {
		text   string
		absent string
	}{
		{text: "Ready to go the extra mile with SQL and Docker.", absent: "golang"},
		{text: "Holds a CS degree and writes Python.", absent: "c"},
	}

	for _, tt := range tests {
		got, err := e.Extract(context.Background(), tt.text, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Has(tt.absent) {
			t.Fatalf("Extract(%q): did not expect %q, got %v", tt.text, tt.absent, got.Sorted())
		}
	}

	got, err := e.Extract(context.Background(), "Services written in Golang and Go lang.", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Has("golang") {
		t.Fatalf("expected golang, got %v", got.Sorted())
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	if got := Title("rest api"); got != "Rest Api" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := Title("c++"); got != "C++" {
		t.Fatalf("unexpected title %q", got)
	}
}
