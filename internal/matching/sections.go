package matching

import (
	"regexp"
	"strings"

	"github.com/spigell/skillscreen/internal/skills"
)

// maxHeaderWords keeps ordinary sentences that happen to contain "tools" or
// "experience" from being read as section headers. Longer lines still open a
// section when they start with an opener, as in "Professional Experience at Acme, 2019-2023".
const maxHeaderWords = 5

var sentenceBreak = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)

// Sections returns the experience-like sections of a resume.
//
// A header line from openers starts a new section and is kept as its first line;
// a header from closers ends it. A header line has at most maxHeaderWords words,
// except that an opener may lead a longer line. When no section is ever
// opened the whole text is returned as the single section.
func Sections(text string, openers, closers []string) []string {
	var (
		sections []string
		buf      []string
		inside   bool
		opened   bool
	)

	flush := func() {
		if len(buf) > 0 {
			sections = append(sections, strings.Join(buf, "\n"))
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cleaned := skills.Clean(line)
		switch {
		case isHeader(cleaned, openers) || leadsWith(cleaned, openers):
			flush()
			inside, opened = true, true
			buf = append(buf, line)
		case isHeader(cleaned, closers):
			flush()
			inside = false
		case inside:
			buf = append(buf, line)
		}
	}
	flush()

	if !opened {
		return []string{text}
	}
	return sections
}

func isHeader(cleaned string, headers []string) bool {
	if len(strings.Fields(cleaned)) > maxHeaderWords {
		return false
	}
	for _, h := range headers {
		if skills.ContainsPhrase(cleaned, h) {
			return true
		}
	}
	return false
}

// leadsWith reports whether the line starts with one of the headers.
func leadsWith(cleaned string, headers []string) bool {
	for _, h := range headers {
		if rest, ok := strings.CutPrefix(cleaned, h); ok && (rest == "" || rest[0] == ' ') {
			return true
		}
	}
	return false
}

// Sentences splits a section into trimmed, non-empty sentences.
// Dots inside tokens such as "node.js" do not end a sentence.
func Sentences(section string) []string {
	parts := sentenceBreak.Split(section, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
