package util

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase word tokens, dropping anything that
// is not a letter or digit. Tokens shorter than minLen are discarded.
func Tokenize(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if minLen <= 0 {
		return fields
	}
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TruncateRunes cuts text to at most max runes, appending an ellipsis when
// anything was removed.
func TruncateRunes(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
