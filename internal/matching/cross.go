package matching

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/embedding"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	DefaultShortThreshold = 0.55
	DefaultLongThreshold  = 0.65
	DefaultShortMaxWords  = 2
)

// Thresholds holds the adaptive similarity cut-offs of the cross matcher.
// Short skill names tolerate looser phrasing than long, specific ones.
type Thresholds struct {
	Short         float64
	Long          float64
	ShortMaxWords int
}

// DefaultThresholds returns 0.55 for names of up to two words and 0.65 otherwise.
func DefaultThresholds() Thresholds {
	return Thresholds{Short: DefaultShortThreshold, Long: DefaultLongThreshold, ShortMaxWords: DefaultShortMaxWords}
}

// For returns the threshold that applies to skill.
func (t Thresholds) For(skill string) float64 {
	if len(strings.Fields(skill)) <= t.ShortMaxWords {
		return t.Short
	}
	return t.Long
}

// SkillMatch is the cross matcher's verdict for one job description skill.
// Trigger is the resume alias with the best similarity and TriggerSkill its canonical skill.
type SkillMatch struct {
	Skill        string  `json:"skill"`
	Matched      bool    `json:"matched"`
	Similarity   float64 `json:"similarity"`
	Threshold    float64 `json:"threshold"`
	Trigger      string  `json:"trigger,omitempty"`
	TriggerSkill string  `json:"trigger_skill,omitempty"`
}

// CrossResult is the outcome of matching a job description skill set against a resume.
type CrossResult struct {
	Matched      skills.SkillSet
	Unmatched    skills.SkillSet
	Sources      map[string]string
	Details      map[string]SkillMatch
	ResumeSkills skills.SkillSet
}

// MatchedCount returns how many job description skills were matched.
func (r CrossResult) MatchedCount() int { return r.Matched.Len() }

// CrossMatcher compares job description skills with resume skills by embedding similarity.
type CrossMatcher struct {
	dict       *dictionary.Dictionary
	extractor  *skills.Extractor
	embedder   embedding.Embedder
	thresholds Thresholds
	logger     *zap.Logger
}

// NewCrossMatcher creates a matcher. Zero thresholds fall back to the defaults.
func NewCrossMatcher(d *dictionary.Dictionary, extractor *skills.Extractor, embedder embedding.Embedder, thresholds Thresholds, logger *zap.Logger) *CrossMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultThresholds()
	if thresholds.Short <= 0 {
		thresholds.Short = def.Short
	}
	if thresholds.Long <= 0 {
		thresholds.Long = def.Long
	}
	if thresholds.ShortMaxWords <= 0 {
		thresholds.ShortMaxWords = def.ShortMaxWords
	}
	return &CrossMatcher{dict: d, extractor: extractor, embedder: embedder, thresholds: thresholds, logger: logger}
}

// Match extracts the resume's own skills and matches jdSkills against them.
func (m *CrossMatcher) Match(ctx context.Context, jdSkills skills.SkillSet, resumeText string) (CrossResult, error) {
	resumeSkills, err := m.extractor.ExtractResume(ctx, resumeText, nil)
	if err != nil {
		return CrossResult{}, fmt.Errorf("extract resume skills: %w", err)
	}
	return m.MatchSkills(ctx, jdSkills, resumeSkills)
}

// MatchSkills matches every job description skill against the best resume alias.
//
// Resume skills are expanded with their synonym variants, each alias is embedded
// once, and every job description skill keeps its single best alias. There is no
// exclusivity: several job description skills may be triggered by one alias.
// Pairs listed as false positives in the dictionary never match.
func (m *CrossMatcher) MatchSkills(ctx context.Context, jdSkills, resumeSkills skills.SkillSet) (CrossResult, error) {
	result := CrossResult{
		Matched:      skills.NewSkillSet(),
		Unmatched:    skills.NewSkillSet(),
		Sources:      make(map[string]string),
		Details:      make(map[string]SkillMatch, jdSkills.Len()),
		ResumeSkills: resumeSkills,
	}
	if jdSkills.Len() == 0 {
		return result, nil
	}

	jd := jdSkills.Sorted()
	aliases, owners := m.aliases(resumeSkills)

	if len(aliases) == 0 {
		for _, skill := range jd {
			result.Unmatched.Add(skill)
			result.Details[skill] = SkillMatch{Skill: skill, Threshold: m.thresholds.For(skill)}
		}
		return result, nil
	}

	vectors, err := m.embedder.Embed(ctx, append(append([]string(nil), aliases...), jd...))
	if err != nil {
		return CrossResult{}, fmt.Errorf("embed skills: %w", err)
	}
	aliasVecs, jdVecs := vectors[:len(aliases)], vectors[len(aliases):]

	for i, skill := range jd {
		best, bestIdx := math.Inf(-1), -1
		for j := range aliases {
			if m.dict.IsFalsePositive(skill, owners[j]) {
				continue
			}
			if sim := embedding.Cosine(jdVecs[i], aliasVecs[j]); sim > best {
				best, bestIdx = sim, j
			}
		}

		match := SkillMatch{Skill: skill, Threshold: m.thresholds.For(skill)}
		if bestIdx >= 0 {
			match.Similarity = best
			match.Trigger = aliases[bestIdx]
			match.TriggerSkill = owners[bestIdx]
			match.Matched = best >= match.Threshold
		}

		result.Details[skill] = match
		if match.Matched {
			result.Matched.Add(skill)
			result.Sources[skill] = match.Trigger
		} else {
			result.Unmatched.Add(skill)
		}
	}

	m.logger.Debug("cross match finished",
		zap.Int("jd_skills", len(jd)),
		zap.Int("resume_aliases", len(aliases)),
		zap.Int("matched", result.Matched.Len()),
	)

	return result, nil
}

// aliases lists every resume skill followed by its variants, deduplicated,
// together with the canonical skill each alias belongs to.
func (m *CrossMatcher) aliases(resumeSkills skills.SkillSet) ([]string, []string) {
	var aliases, owners []string
	seen := make(map[string]struct{})

	for _, canonical := range resumeSkills.Sorted() {
		for _, alias := range append([]string{canonical}, m.dict.Variants(canonical)...) {
			if _, ok := seen[alias]; ok {
				continue
			}
			seen[alias] = struct{}{}
			aliases = append(aliases, alias)
			owners = append(owners, canonical)
		}
	}

	return aliases, owners
}
