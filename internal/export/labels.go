// Package export renders rankings for people: JSON reports, Excel workbooks and terminal tables.
package export

import (
	"github.com/spigell/skillscreen/internal/matching"
	"github.com/spigell/skillscreen/internal/scoring"
)

// NotFound is shown in place of a missing contact field.
const NotFound = "Not found"

// TagLabel renders an evidence tag with its icon.
func TagLabel(tag matching.Tag) string {
	switch tag {
	case matching.Strong:
		return "🛠️ Strong Mention"
	case matching.Weak:
		return "📌 Weak Mention"
	default:
		return "◾️ No Mention"
	}
}

// VerdictLabel renders a verdict with its icon.
func VerdictLabel(v scoring.Verdict) string {
	switch v {
	case scoring.Good:
		return "✅ Good Match"
	case scoring.Partial:
		return "⚠️ Partial Match"
	default:
		return "❌ Low Match"
	}
}

func orNotFound(s string) string {
	if s == "" {
		return NotFound
	}
	return s
}
