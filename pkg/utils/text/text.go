// ABOUTME: Text helpers used when rendering analysis results
// ABOUTME: Feature key formatting and length-limited excerpts

package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// FormatKey turns a snake_case key into a label: underscores become spaces and every
// word-initial ASCII letter is upper-cased. Other characters are left as they are.
//
//	FormatKey("average_sentence_length") == "Average Sentence Length"
func FormatKey(key string) string {
	key = strings.ReplaceAll(key, "_", " ")

	var b strings.Builder
	b.Grow(len(key))
	inWord := false
	for _, r := range key {
		word := isWordChar(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		inWord = word
	}
	return b.String()
}

// Truncate keeps the first limit characters of s and appends Ellipsis when s is longer.
// Characters are counted as runes.
func Truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + Ellipsis
		}
		count++
	}
	return s
}

func isWordChar(r rune) bool {
	return r < utf8.RuneSelf && (r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'))
}
