package skills

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SkillSet is an unordered, deduplicated set of canonical skills.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the given canonical skills.
func NewSkillSet(items ...string) SkillSet {
	s := make(SkillSet, len(items))
	for _, item := range items {
		if item != "" {
			s[item] = struct{}{}
		}
	}
	return s
}

// Add inserts skill; empty names are ignored.
func (s SkillSet) Add(skill string) {
	if skill != "" {
		s[skill] = struct{}{}
	}
}

// Has reports whether skill is in the set.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Len returns the number of skills; a nil set has none.
func (s SkillSet) Len() int { return len(s) }

// Union adds every skill of other to s.
func (s SkillSet) Union(other SkillSet) {
	for skill := range other {
		s[skill] = struct{}{}
	}
}

// Sorted returns the skills in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Display returns the skills in Title Case, sorted by canonical identity.
func (s SkillSet) Display() []string {
	sorted := s.Sorted()
	for i, skill := range sorted {
		sorted[i] = Title(skill)
	}
	return sorted
}

// Title renders a canonical skill for presentation.
// Symbolic skills like "c++" and dotted names keep their casing rules simple.
func Title(skill string) string {
	return cases.Title(language.English, cases.NoLower).String(skill)
}
