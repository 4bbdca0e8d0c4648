package skills

import (
	"strings"

	"github.com/spigell/skillscreen/internal/dictionary"
)

// Clean lower-cases text and replaces every character outside [a-z0-9 .+#] with a space.
// Symbolic tokens like "c++", "c#" and "node.js" survive.
func Clean(text string) string {
	text = strings.ToLower(dictionary.FoldAccents(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '+', r == '#':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits cleaned text into words, dropping stop words and sentence dots.
func Tokens(cleaned string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(cleaned) {
		word = strings.TrimRight(word, ".")
		if word == "" || isStopWord(word) {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// ContainsPhrase reports whether phrase occurs in text without being glued to a
// neighbouring word. A single trailing "s" is tolerated so "apis" still contains "api",
// but only for phrases of at least pluralMinLen bytes or several words: "cs" is not "c".
// Both arguments are expected to be lower-case.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}

	for start := 0; start <= len(text)-len(phrase); {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)

		if idx == 0 || !isWordByte(text[idx-1]) || !isWordByte(phrase[0]) {
			if end == len(text) || !isWordByte(text[end]) || !isWordByte(phrase[len(phrase)-1]) {
				return true
			}
			if pluralizable(phrase) && text[end] == 's' && (end+1 == len(text) || !isWordByte(text[end+1])) {
				return true
			}
		}
		start = idx + 1
	}
	return false
}

const pluralMinLen = 3

func pluralizable(phrase string) bool {
	return len(phrase) >= pluralMinLen || strings.Contains(phrase, " ")
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '#'
}

// Lines returns the trimmed, non-empty lines of text.
func Lines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
