package grid

import "strings"

// matcher implements smart search: every word of the term must occur
// somewhere in the text, case-insensitively. Double-quoted phrases count as
// one word.
type matcher struct {
	words []string
}

func compile(term string) matcher {
	return matcher{words: splitWords(strings.ToLower(term))}
}

func (m matcher) empty() bool {
	return len(m.words) == 0
}

func (m matcher) match(text string) bool {
	if len(m.words) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, w := range m.words {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func splitWords(term string) []string {
	var (
		words  []string
		cur    strings.Builder
		quoted bool
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range term {
		switch {
		case r == '"':
			flush()
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
