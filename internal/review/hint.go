package review

import (
	"strings"
	"unicode"
)

const maxMaskRunes = 5

// MaskAnswer builds the text hint for an answer: each word keeps its first
// character and the remainder becomes up to five underscores. Tokens of one
// or two runes, and tokens with no letters at all (numbers, symbols), are
// left as they are.
func MaskAnswer(answer string) string {
	words := strings.Fields(answer)
	masked := make([]string, len(words))
	for i, w := range words {
		masked[i] = maskWord(w)
	}
	return strings.Join(masked, " ")
}

func maskWord(word string) string {
	runes := []rune(word)
	if len(runes) <= 2 {
		return word
	}

	hasLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return word
	}

	n := len(runes) - 1
	if n > maxMaskRunes {
		n = maxMaskRunes
	}
	return string(runes[0]) + strings.Repeat("_", n)
}
