// Package dictionary holds the skill reference data shared by every comparison:
// canonical skills, synonym groups, role vocabularies, action verbs and section headers.
//
// A Dictionary is built once, validated, and never mutated afterwards.
package dictionary

import (
	"regexp"
	"sort"
	"strings"
)

// File is the raw, decodable shape of a skill dictionary file.
type File struct {
	Version                string               `mapstructure:"version" validate:"required"`
	Skills                 []string             `mapstructure:"skills" validate:"required,min=1,dive,required"`
	SpecialCharacterSkills []string             `mapstructure:"special-character-skills" validate:"dive,required"`
	Synonyms               map[string][]string  `mapstructure:"synonyms" validate:"dive,keys,required,endkeys,min=1,dive,required"`
	Roles                  map[string][]string  `mapstructure:"roles" validate:"dive,keys,required,endkeys,min=1,dive,required"`
	RoleSynonyms           map[string][]string  `mapstructure:"role-synonyms" validate:"dive,keys,required,endkeys,dive,required"`
	ActionVerbs            []string             `mapstructure:"action-verbs" validate:"required,min=1,dive,required"`
	ExperienceHeaders      []string             `mapstructure:"experience-headers" validate:"required,min=1,dive,required"`
	ClosingHeaders         []string             `mapstructure:"closing-headers" validate:"dive,required"`
	GenericSkills          []string             `mapstructure:"generic-skills" validate:"dive,required"`
	FalsePositivePairs     [][]string           `mapstructure:"false-positive-pairs" validate:"dive,len=2,dive,required"`
	JDFields               map[string]FieldRule `mapstructure:"jd-fields" validate:"dive,keys,required,endkeys"`
}

// FieldRule describes how a single job description field is located.
// Labels narrow the search to matching lines, patterns capture the value.
type FieldRule struct {
	Labels   []string `mapstructure:"labels"`
	Patterns []string `mapstructure:"patterns" validate:"required,min=1,dive,required"`
}

// CompiledField is a FieldRule with its patterns compiled.
type CompiledField struct {
	Name     string
	Labels   []string
	Patterns []*regexp.Regexp
}

// Dictionary is the immutable, validated skill reference.
type Dictionary struct {
	version string

	canonical   map[string]struct{}
	special     map[string]struct{}
	generic     map[string]struct{}
	synonyms    map[string][]string
	roles       map[string][]string
	roleKeys    map[string][]string
	falsePairs  map[[2]string]struct{}
	actionVerbs []string
	expHeaders  []string
	closeHeader []string
	fields      []CompiledField
}

// Version returns the dictionary data version.
func (d *Dictionary) Version() string { return d.version }

// Skills returns every canonical skill in sorted order.
func (d *Dictionary) Skills() []string { return sortedKeys(d.canonical) }

// IsCanonical reports whether s is a known canonical skill.
func (d *Dictionary) IsCanonical(s string) bool {
	_, ok := d.canonical[s]
	return ok
}

// IsSpecial reports whether s is exempt from alphanumeric stripping.
func (d *Dictionary) IsSpecial(s string) bool {
	_, ok := d.special[s]
	return ok
}

// IsGeneric reports whether s is a soft skill excluded from semantic recovery.
func (d *Dictionary) IsGeneric(s string) bool {
	_, ok := d.generic[s]
	return ok
}

// Variants returns the configured synonym variants of a canonical skill.
func (d *Dictionary) Variants(canonical string) []string {
	return append([]string(nil), d.synonyms[canonical]...)
}

// SynonymGroups returns canonical skills that have at least one variant, sorted.
func (d *Dictionary) SynonymGroups() []string {
	keys := make([]string, 0, len(d.synonyms))
	for k := range d.synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsFalsePositive reports whether a and b must never be treated as the same skill.
func (d *Dictionary) IsFalsePositive(a, b string) bool {
	_, ok := d.falsePairs[pairKey(a, b)]
	return ok
}

// Roles returns the known role names in sorted order.
func (d *Dictionary) Roles() []string {
	keys := make([]string, 0, len(d.roles))
	for k := range d.roles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RoleSkills returns the skill vocabulary of a role.
func (d *Dictionary) RoleSkills(role string) []string {
	return append([]string(nil), d.roles[strings.ToLower(strings.TrimSpace(role))]...)
}

// RoleKeywords returns the phrases that identify a role title in free text.
func (d *Dictionary) RoleKeywords(role string) []string {
	return append([]string(nil), d.roleKeys[role]...)
}

// ActionVerbs returns verbs that mark a sentence as demonstrated experience.
func (d *Dictionary) ActionVerbs() []string { return append([]string(nil), d.actionVerbs...) }

// ExperienceHeaders returns headers that open an experience-like section.
func (d *Dictionary) ExperienceHeaders() []string { return append([]string(nil), d.expHeaders...) }

// ClosingHeaders returns headers that close an experience-like section.
func (d *Dictionary) ClosingHeaders() []string { return append([]string(nil), d.closeHeader...) }

// Fields returns the compiled job description field rules sorted by name.
func (d *Dictionary) Fields() []CompiledField { return append([]CompiledField(nil), d.fields...) }

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		item = clean(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
