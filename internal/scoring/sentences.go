package scoring

import (
	"strings"
	"unicode"
)

// SplitSentences breaks response text into sentences. A boundary is
// terminal punctuation followed by whitespace and an upper-case letter, or
// a newline. LLM responses are frequently markdown, so list items and
// paragraph breaks count as boundaries too.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)

	start := 0
	flush := func(end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\n':
			flush(i + 1)
		case '.', '!', '?':
			// "1." at the head of a list item is an ordinal, not a boundary.
			if runes[i] == '.' && isOrdinal(runes[start:i]) {
				continue
			}
			// Consume a run of terminal punctuation ("?!", "...").
			j := i
			for j+1 < len(runes) && isTerminal(runes[j+1]) {
				j++
			}
			if j+1 >= len(runes) {
				flush(len(runes))
				i = j
				continue
			}
			if unicode.IsSpace(runes[j+1]) {
				k := j + 1
				for k < len(runes) && unicode.IsSpace(runes[k]) {
					k++
				}
				if k >= len(runes) || unicode.IsUpper(runes[k]) || isListMarker(runes, k) {
					flush(j + 1)
				}
			}
			i = j
		}
	}
	flush(len(runes))

	return sentences
}

// isOrdinal reports whether the pending sentence text so far is only
// whitespace and digits, as at the start of "3. Acme Cloud".
func isOrdinal(runes []rune) bool {
	digits := 0
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
			if digits > 0 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isListMarker reports whether position i starts a markdown list item
// ("- ", "* ", "1. ", "2) ").
func isListMarker(runes []rune, i int) bool {
	if i >= len(runes) {
		return false
	}
	r := runes[i]
	if r == '-' || r == '*' {
		return i+1 < len(runes) && unicode.IsSpace(runes[i+1])
	}
	if unicode.IsDigit(r) {
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		return j < len(runes) && (runes[j] == '.' || runes[j] == ')')
	}
	return false
}
