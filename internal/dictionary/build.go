package dictionary

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// New validates file and builds an immutable Dictionary from it.
//
// Besides struct validation, New rejects dictionaries where two different
// canonical skills (or their variants) collapse to the same compact key, since
// normalization would otherwise depend on iteration order.
func New(file File) (*Dictionary, error) {
	if err := validate.Struct(file); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			issues := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				issues = append(issues, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return nil, &ValidationError{Issues: issues}
		}
		return nil, err
	}

	d := &Dictionary{
		version:    file.Version,
		canonical:  make(map[string]struct{}),
		special:    make(map[string]struct{}),
		generic:    make(map[string]struct{}),
		synonyms:   make(map[string][]string),
		roles:      make(map[string][]string),
		roleKeys:   make(map[string][]string),
		falsePairs: make(map[[2]string]struct{}),
	}

	for _, s := range cleanList(file.Skills) {
		d.canonical[s] = struct{}{}
	}
	for _, s := range cleanList(file.SpecialCharacterSkills) {
		d.special[s] = struct{}{}
	}
	for canonical, variants := range file.Synonyms {
		canonical = clean(canonical)
		d.canonical[canonical] = struct{}{}
		d.synonyms[canonical] = append(d.synonyms[canonical], cleanList(variants)...)
	}
	for role, skills := range file.Roles {
		role = clean(role)
		list := cleanList(skills)
		d.roles[role] = list
		for _, s := range list {
			d.canonical[s] = struct{}{}
		}
	}
	for role, keys := range file.RoleSynonyms {
		d.roleKeys[clean(role)] = cleanList(keys)
	}
	for _, s := range cleanList(file.GenericSkills) {
		d.generic[s] = struct{}{}
	}
	for _, pair := range file.FalsePositivePairs {
		d.falsePairs[pairKey(clean(pair[0]), clean(pair[1]))] = struct{}{}
	}
	d.actionVerbs = cleanList(file.ActionVerbs)
	d.expHeaders = cleanList(file.ExperienceHeaders)
	d.closeHeader = cleanList(file.ClosingHeaders)

	var issues []string
	issues = append(issues, d.checkCollisions()...)
	issues = append(issues, d.checkReferences()...)

	fields, fieldIssues := compileFields(file.JDFields)
	issues = append(issues, fieldIssues...)
	d.fields = fields

	if len(issues) > 0 {
		sort.Strings(issues)
		return nil, &ValidationError{Issues: issues}
	}

	return d, nil
}

// checkCollisions makes sure every compact key resolves to exactly one canonical skill.
func (d *Dictionary) checkCollisions() []string {
	owner := make(map[string]string)
	var issues []string

	claim := func(form, canonical string) {
		key := Compact(form)
		if key == "" {
			issues = append(issues, fmt.Sprintf("%q of skill %q has no letters or digits", form, canonical))
			return
		}
		if prev, ok := owner[key]; ok && prev != canonical {
			issues = append(issues, fmt.Sprintf("%q of skill %q overlaps with skill %q", form, canonical, prev))
			return
		}
		owner[key] = canonical
	}

	for _, canonical := range d.Skills() {
		if d.IsSpecial(canonical) {
			continue
		}
		claim(canonical, canonical)
	}
	for _, canonical := range d.SynonymGroups() {
		for _, variant := range d.synonyms[canonical] {
			if d.IsSpecial(variant) {
				continue
			}
			claim(variant, canonical)
		}
	}

	return issues
}

func (d *Dictionary) checkReferences() []string {
	var issues []string
	for _, s := range sortedKeys(d.generic) {
		if !d.IsCanonical(s) {
			issues = append(issues, fmt.Sprintf("generic skill %q is not a known skill", s))
		}
	}
	for role := range d.roleKeys {
		if _, ok := d.roles[role]; !ok {
			issues = append(issues, fmt.Sprintf("role synonyms reference unknown role %q", role))
		}
	}
	return issues
}

func compileFields(rules map[string]FieldRule) ([]CompiledField, []string) {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []string
	fields := make([]CompiledField, 0, len(names))
	for _, name := range names {
		rule := rules[name]
		field := CompiledField{Name: clean(name), Labels: cleanList(rule.Labels)}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				issues = append(issues, fmt.Sprintf("field %q pattern %q: %v", name, pattern, err))
				continue
			}
			field.Patterns = append(field.Patterns, re)
		}
		fields = append(fields, field)
	}
	return fields, issues
}
