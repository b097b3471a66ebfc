package textutil

import (
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"leading and trailing spaces", "  hello  ", "hello"},
		{"ideographic space", "机器人　新闻", "机器人 新闻"},
		{"non-breaking space", "robot news", "robot news"},
		{"only exotic spaces", "　 ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello"},
		{"multibyte runes kept whole", "机器人新闻", 3, "机器人"},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	input := "line one\n\n  line two\t\tend"
	expected := "line one line two end"
	if got := CollapseWhitespace(input); got != expected {
		t.Errorf("CollapseWhitespace = %q, expected %q", got, expected)
	}
}
