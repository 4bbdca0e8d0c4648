// Package matching decides which job description skills a resume covers and how convincingly.
package matching

import "fmt"

// Tag is the evidentiary strength of a skill mention.
type Tag int

const (
	// Absent means the skill is not mentioned anywhere.
	Absent Tag = iota
	// Weak means the skill is named without demonstrated action.
	Weak
	// Strong means the skill appears next to an action verb in an experience section.
	Strong
)

func (t Tag) String() string {
	switch t {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	default:
		return "absent"
	}
}

func (t Tag) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tag) UnmarshalText(b []byte) error {
	switch string(b) {
	case "strong":
		*t = Strong
	case "weak":
		*t = Weak
	case "absent":
		*t = Absent
	default:
		return fmt.Errorf("unknown evidence tag %q", b)
	}
	return nil
}

// Source tells where the evidence for a skill was found.
type Source int

const (
	SourceNone Source = iota
	SourceExperience
	SourceResume
)

func (s Source) String() string {
	switch s {
	case SourceExperience:
		return "experience"
	case SourceResume:
		return "resume"
	default:
		return "none"
	}
}

func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Source) UnmarshalText(b []byte) error {
	switch string(b) {
	case "experience":
		*s = SourceExperience
	case "resume":
		*s = SourceResume
	case "none":
		*s = SourceNone
	default:
		return fmt.Errorf("unknown evidence source %q", b)
	}
	return nil
}

// Evidence is the depth classification of one skill in one resume.
type Evidence struct {
	Skill    string `json:"skill"`
	Tag      Tag    `json:"tag"`
	Source   Source `json:"source"`
	Trigger  string `json:"trigger,omitempty"`
	Sentence string `json:"sentence,omitempty"`
}
