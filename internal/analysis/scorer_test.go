package analysis

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "empty text gets base score",
			text:     "",
			expected: 50,
		},
		{
			name:     "email only",
			text:     "email: someone@example.com",
			expected: 55,
		},
		{
			name:     "phone only",
			text:     "phone: 555-0100",
			expected: 55,
		},
		{
			name:     "experience section only",
			text:     "Experience at a company",
			expected: 60,
		},
		{
			name:     "education section only",
			text:     "Education: BSc",
			expected: 60,
		},
		{
			name:     "skills section only",
			text:     "Skills: none",
			expected: 60,
		},
		{
			name:     "project section only",
			text:     "Projects I built",
			expected: 55,
		},
		{
			name:     "markers are case insensitive",
			text:     "EXPERIENCE and EDUCATION",
			expected: 70,
		},
		{
			name:     "long text without markers",
			text:     strings.Repeat("x", 501),
			expected: 55,
		},
		{
			name:     "length of exactly 500 gets no bonus",
			text:     strings.Repeat("x", 500),
			expected: 50,
		},
		{
			name: "all markers plus length cap at 100",
			text: "email phone experience education skills project " +
				strings.Repeat("filler ", 100),
			expected: 100,
		},
		{
			name:     "all markers in short text",
			text:     "email phone experience education skills project",
			expected: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.text); got != tt.expected {
				t.Errorf("Score() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	texts := []string{
		"",
		"email",
		"email phone experience education skills project " + strings.Repeat("a", 600),
	}
	for _, text := range texts {
		got := Score(text)
		if got < 0 || got > 100 {
			t.Errorf("Score(%q) = %d, out of [0,100]", text, got)
		}
	}
}
