// Package roles guesses which job role a document is about.
package roles

import (
	"context"
	"fmt"
	"sort"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	// MinScore is the share of a role's skills a document must mention to be assigned that role.
	MinScore = 0.15
	// Unknown is returned by Infer when no role reaches MinScore.
	Unknown = "unknown"
	// Others is returned by Detect when no role keyword is present.
	Others = "others"
)

// Score is the share of a role's vocabulary found in a document.
type Score struct {
	Role    string   `json:"role"`
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
}

// Inferrer ranks roles by skill overlap.
type Inferrer struct {
	dict      *dictionary.Dictionary
	extractor *skills.Extractor
}

func NewInferrer(d *dictionary.Dictionary, extractor *skills.Extractor) *Inferrer {
	return &Inferrer{dict: d, extractor: extractor}
}

// Scores returns every role ranked by score, then by name.
func (i *Inferrer) Scores(ctx context.Context, text string) ([]Score, error) {
	found, err := i.extractor.Extract(ctx, text, nil)
	if err != nil {
		return nil, fmt.Errorf("extract skills for role inference: %w", err)
	}

	norm := i.extractor.Normalizer()
	scores := make([]Score, 0, len(i.dict.Roles()))
	for _, role := range i.dict.Roles() {
		vocabulary := skills.NewSkillSet()
		for _, s := range i.dict.RoleSkills(role) {
			vocabulary.Add(norm.Normalize(s))
		}

		score := Score{Role: role, Matched: []string{}}
		for _, s := range vocabulary.Sorted() {
			if found.Has(s) {
				score.Matched = append(score.Matched, s)
			}
		}
		if vocabulary.Len() > 0 {
			score.Score = float64(len(score.Matched)) / float64(vocabulary.Len())
		}
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].Score != scores[b].Score {
			return scores[a].Score > scores[b].Score
		}
		return scores[a].Role < scores[b].Role
	})

	return scores, nil
}

// Infer returns the best scoring role, or Unknown when it covers less than MinScore.
func (i *Inferrer) Infer(ctx context.Context, text string) (string, error) {
	scores, err := i.Scores(ctx, text)
	if err != nil {
		return "", err
	}
	if len(scores) == 0 || scores[0].Score < MinScore {
		return Unknown, nil
	}
	return scores[0].Role, nil
}

// Detect returns the first role, in name order, whose title keyword appears as a whole word.
func Detect(d *dictionary.Dictionary, text string) string {
	cleaned := skills.Clean(text)
	for _, role := range d.Roles() {
		for _, keyword := range d.RoleKeywords(role) {
			if skills.ContainsPhrase(cleaned, skills.Clean(keyword)) {
				return role
			}
		}
	}
	return Others
}

// Mentions reports whether text mentions role by name or by one of its keywords.
func Mentions(d *dictionary.Dictionary, text, role string) bool {
	cleaned := skills.Clean(text)
	if skills.ContainsPhrase(cleaned, skills.Clean(role)) {
		return true
	}
	for _, keyword := range d.RoleKeywords(role) {
		if skills.ContainsPhrase(cleaned, skills.Clean(keyword)) {
			return true
		}
	}
	return false
}
