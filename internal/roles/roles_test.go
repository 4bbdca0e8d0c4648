package roles

import (
	"context"
	"testing"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/skills"
)

func newInferrer(t *testing.T) (*Inferrer, *dictionary.Dictionary) {
	t.Helper()
	d, err := dictionary.Default()
	if err != nil {
		t.Fatalf("loading dictionary: %v", err)
	}
	extractor := skills.NewExtractor(d, skills.NewNormalizer(d), nil, skills.DefaultExtractorConfig(), nil)
	return NewInferrer(d, extractor), d
}

func TestInfer(t *testing.T) {
	t.Parallel()

	inf, _ := newInferrer(t)

	role, err := inf.Infer(context.Background(), "Docker, Kubernetes, Terraform and Ansible on AWS with Jenkins pipelines")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != "devops engineer" {
		t.Fatalf("expected devops engineer, got %q", role)
	}
}

func TestInferUnknownBelowThreshold(t *testing.T) {
	t.Parallel()

	inf, _ := newInferrer(t)

	role, err := inf.Infer(context.Background(), "Baked bread and managed a small shop.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != Unknown {
		t.Fatalf("expected %q, got %q", Unknown, role)
	}
}

func TestScoresAreSorted(t *testing.T) {
	t.Parallel()

	inf, _ := newInferrer(t)

	scores, err := inf.Scores(context.Background(), "Python, pandas, numpy, scikit-learn and machine learning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores[0].Role != "data scientist" {
		t.Fatalf("expected data scientist first, got %+v", scores[0])
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Fatalf("scores not sorted: %+v", scores)
		}
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	_, d := newInferrer(t)

	tests := map[string]string{
		"We are hiring a Senior Backend Engineer":    "backend developer",
		"Join us as an SRE on the platform team":     "devops engineer",
		"Looking for a pastry chef":                  Others,
		"Python Developer needed for data pipelines": "backend developer",
	}

	for text, expect := range tests {
		if got := Detect(d, text); got != expect {
			t.Fatalf("Detect(%q): expected %q, got %q", text, expect, got)
		}
	}
}

func TestMentions(t *testing.T) {
	t.Parallel()

	_, d := newInferrer(t)

	if !Mentions(d, "Worked as a Site Reliability Engineer", "devops engineer") {
		t.Fatalf("expected keyword mention to count")
	}
	if Mentions(d, "Worked as a baker", "devops engineer") {
		t.Fatalf("did not expect a mention")
	}
}
