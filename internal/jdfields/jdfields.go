// Package jdfields extracts structured hiring fields from job description text.
package jdfields

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillscreen/internal/dictionary"
	"github.com/spigell/skillscreen/internal/roles"
	"github.com/spigell/skillscreen/internal/skills"
)

const (
	FieldRole              = "role"
	FieldYearsOfExperience = "years-of-experience"
	FieldNoticePeriod      = "notice-period"
	FieldPositions         = "positions"
	FieldLocation          = "location"
	FieldShiftTiming       = "shift-timing"
)

// Fields is the structured summary of a job description.
type Fields struct {
	ID                string   `json:"jd_id"`
	Role              string   `json:"role,omitempty"`
	RoleKey           string   `json:"role_key"`
	YearsOfExperience string   `json:"years_of_experience,omitempty"`
	NoticePeriod      string   `json:"notice_period,omitempty"`
	Positions         string   `json:"positions,omitempty"`
	Location          string   `json:"location,omitempty"`
	ShiftTiming       string   `json:"shift_timing,omitempty"`
	Skills            []string `json:"skills"`
}

// Parser reads Fields out of job description text using the dictionary's field rules.
type Parser struct {
	dict      *dictionary.Dictionary
	extractor *skills.Extractor
	logger    *zap.Logger
}

func NewParser(d *dictionary.Dictionary, extractor *skills.Extractor, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{dict: d, extractor: extractor, logger: logger}
}

// Parse extracts every configured field plus the job description's skills.
func (p *Parser) Parse(ctx context.Context, text string) (Fields, error) {
	found, err := p.extractor.Extract(ctx, text, nil)
	if err != nil {
		return Fields{}, fmt.Errorf("extract job description skills: %w", err)
	}
	return p.WithSkills(text, found), nil
}

// WithSkills builds Fields for text whose skills were already extracted.
func (p *Parser) WithSkills(text string, found skills.SkillSet) Fields {
	values := make(map[string]string)
	for _, field := range p.dict.Fields() {
		if v := Extract(text, field); v != "" {
			values[field.Name] = v
		}
	}

	f := Fields{
		ID:                ID(text),
		Role:              skills.Title(values[FieldRole]),
		YearsOfExperience: values[FieldYearsOfExperience],
		NoticePeriod:      values[FieldNoticePeriod],
		Positions:         values[FieldPositions],
		Location:          values[FieldLocation],
		ShiftTiming:       values[FieldShiftTiming],
		Skills:            found.Display(),
	}

	// the labelled title is the most specific hint, the full text is the fallback
	f.RoleKey = roles.Detect(p.dict, f.Role)
	if f.RoleKey == roles.Others {
		f.RoleKey = roles.Detect(p.dict, text)
	}

	p.logger.Debug("job description parsed",
		zap.String("jd_id", f.ID),
		zap.String("role", f.RoleKey),
		zap.Int("fields", len(values)),
	)

	return f
}

// Extract returns the value of one field.
//
// Lines mentioning one of the field labels are tried first, then the whole text.
// Capture groups are joined with " - "; a pattern without groups yields the whole match.
func Extract(text string, field dictionary.CompiledField) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, label := range field.Labels {
			if !strings.Contains(lower, label) {
				continue
			}
			if v, ok := apply(strings.TrimSpace(line), field); ok {
				return v
			}
		}
	}

	v, _ := apply(text, field)
	return v
}

func apply(text string, field dictionary.CompiledField) (string, bool) {
	for _, re := range field.Patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) == 1 {
			return strings.TrimSpace(m[0]), true
		}

		groups := make([]string, 0, len(m)-1)
		for _, g := range m[1:] {
			if g = strings.TrimSpace(g); g != "" {
				groups = append(groups, g)
			}
		}
		return strings.Join(groups, " - "), true
	}
	return "", false
}

// ID returns a short stable identifier for a job description.
func ID(text string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("JD_%06X", h.Sum32()&0xFFFFFF)
}
