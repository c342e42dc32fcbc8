package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"average_sentence_length", "Average Sentence Length"},
		{"text_length", "Text Length"},
		{"capital_ratio", "Capital Ratio"},
		{"alreadyCamel", "AlreadyCamel"},
		{"url_count_2x", "Url Count 2x"},
		{"has-exclamation", "Has-Exclamation"},
		{"__double__under", "  Double  Under"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKey(tt.key))
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 299) + "b" + strings.Repeat("c", 50)

	got := Truncate(long, 300)
	assert.Equal(t, strings.Repeat("a", 299)+"b"+Ellipsis, got)

	exact := strings.Repeat("x", 300)
	assert.Equal(t, exact, Truncate(exact, 300))

	short := "short text"
	assert.Equal(t, short, Truncate(short, 300))
}

func TestTruncate_CountsRunes(t *testing.T) {
	s := strings.Repeat("é", 5)
	assert.Equal(t, "éé"+Ellipsis, Truncate(s, 2))
	assert.Equal(t, s, Truncate(s, 5))
}
