// Package scoring turns depth evidence into a weighted percentage and a shortlist verdict.
package scoring

import (
	"fmt"
	"math"

	"github.com/spigell/skillscreen/internal/matching"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	GoodThreshold    = 60
	PartialThreshold = 40
)

// Verdict is the coarse shortlist recommendation.
type Verdict int

const (
	Low Verdict = iota
	Partial
	Good
)

func (v Verdict) String() string {
	switch v {
	case Good:
		return "good"
	case Partial:
		return "partial"
	default:
		return "low"
	}
}

func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Verdict) UnmarshalText(b []byte) error {
	parsed, err := ParseVerdict(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict parses "good", "partial" or "low".
func ParseVerdict(s string) (Verdict, error) {
	switch s {
	case "good":
		return Good, nil
	case "partial":
		return Partial, nil
	case "low":
		return Low, nil
	default:
		return Low, fmt.Errorf("unknown verdict %q", s)
	}
}

// Weight returns the score contribution of a tag.
func Weight(tag matching.Tag) float64 {
	switch tag {
	case matching.Strong:
		return 1.0
	case matching.Weak:
		return 0.5
	default:
		return 0
	}
}

// Policy holds the verdict cut-offs in percent.
type Policy struct {
	Good    int `mapstructure:"good" validate:"gte=0,lte=100,gtefield=Partial"`
	Partial int `mapstructure:"partial" validate:"gte=0,lte=100"`
}

// DefaultPolicy returns Good at 60% and Partial at 40%.
func DefaultPolicy() Policy {
	return Policy{Good: GoodThreshold, Partial: PartialThreshold}
}

// Verdict maps a percentage to a verdict.
func (p Policy) Verdict(percent int) Verdict {
	switch {
	case percent >= p.Good:
		return Good
	case percent >= p.Partial:
		return Partial
	default:
		return Low
	}
}

// Result is the aggregated score of one comparison.
type Result struct {
	WeightedScore   float64  `json:"weighted_score"`
	TotalSkills     int      `json:"total_skills"`
	WeightedPercent int      `json:"weighted_percent"`
	Verdict         Verdict  `json:"verdict"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
}

// Score aggregates evidence with the default policy.
func Score(jdSkills skills.SkillSet, evidence map[string]matching.Evidence) Result {
	return DefaultPolicy().Score(jdSkills, evidence)
}

// Score sums tag weights over the job description skills.
//
// The denominator is never below one, so a job description without skills
// scores 0%. 100% is reserved for the case where every skill is Strong.
// Any mention counts as a strength; only Absent skills are gaps.
func (p Policy) Score(jdSkills skills.SkillSet, evidence map[string]matching.Evidence) Result {
	res := Result{
		TotalSkills: max(1, jdSkills.Len()),
		Strengths:   []string{},
		Gaps:        []string{},
	}

	allStrong := jdSkills.Len() > 0
	for _, skill := range jdSkills.Sorted() {
		tag := evidence[skill].Tag
		res.WeightedScore += Weight(tag)

		if tag != matching.Strong {
			allStrong = false
		}
		if tag == matching.Absent {
			res.Gaps = append(res.Gaps, skill)
		} else {
			res.Strengths = append(res.Strengths, skill)
		}
	}

	res.WeightedPercent = int(math.Round(res.WeightedScore / float64(res.TotalSkills) * 100))
	if res.WeightedPercent >= 100 && !allStrong {
		res.WeightedPercent = 99
	}
	res.Verdict = p.Verdict(res.WeightedPercent)

	return res
}
