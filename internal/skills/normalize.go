package skills

import (
	"strings"

	"github.com/spigell/skillscreen/internal/dictionary"
)

// Normalizer resolves raw skill mentions to canonical dictionary identities.
// It is safe for concurrent use.
type Normalizer struct {
	dict    *dictionary.Dictionary
	index   map[string]string
	special map[string]string
}

// NewNormalizer indexes every canonical skill and synonym variant of d by its compact form.
func NewNormalizer(d *dictionary.Dictionary) *Normalizer {
	n := &Normalizer{
		dict:    d,
		index:   make(map[string]string),
		special: make(map[string]string),
	}

	for _, canonical := range d.Skills() {
		if d.IsSpecial(canonical) {
			n.special[canonical] = canonical
			continue
		}
		n.index[dictionary.Compact(canonical)] = canonical
	}
	for _, canonical := range d.SynonymGroups() {
		for _, variant := range d.Variants(canonical) {
			if d.IsSpecial(variant) {
				n.special[variant] = canonical
				continue
			}
			n.index[dictionary.Compact(variant)] = canonical
		}
	}

	return n
}

// Normalize returns the canonical identity of raw.
//
// Special-character skills ("c++", "c#") are returned as-is. Everything else is
// compacted to letters and digits and looked up among canonical names and variants;
// unknown input resolves to its compact form. Normalize is idempotent.
func (n *Normalizer) Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if n.dict.IsSpecial(key) {
		if canonical, ok := n.special[key]; ok {
			return canonical
		}
		return key
	}

	compact := dictionary.Compact(key)
	if canonical, ok := n.index[compact]; ok {
		return canonical
	}
	return compact
}

// Known reports whether raw resolves to a dictionary skill.
func (n *Normalizer) Known(raw string) bool {
	return n.dict.IsCanonical(n.Normalize(raw))
}
