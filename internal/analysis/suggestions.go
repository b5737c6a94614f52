package analysis

import (
	"fmt"
	"strings"

	"resumelens/internal/types"
)

const (
	shortResumeMaxChars = 300
	minNewlines         = 5
	maxMissingNamed     = 3
)

var actionVerbs = []string{"developed", "implemented", "led", "managed"}

// Suggest produces improvement suggestions for a resume. Rules are applied
// in a fixed order and the result is truncated to types.MaxSuggestions, so
// the trailing generic advice only survives when fewer than six earlier
// rules fired.
func Suggest(text string, missingSkills []string) []string {
	lowered := strings.ToLower(text)
	var suggestions []string

	if len(text) < shortResumeMaxChars {
		suggestions = append(suggestions,
			"Resume is too short. Add more details about your experience and achievements.")
	}

	if !strings.Contains(lowered, "achievement") && !strings.Contains(lowered, "accomplished") {
		suggestions = append(suggestions,
			"Include quantifiable achievements with specific metrics (e.g., 'Increased sales by 30%').")
	}

	if !strings.Contains(lowered, "responsibility") && !strings.Contains(lowered, "responsible") {
		suggestions = append(suggestions,
			"Highlight your key responsibilities and contributions in each role.")
	}

	if strings.Count(text, "\n") < minNewlines {
		suggestions = append(suggestions,
			"Use better formatting with clear sections and bullet points for readability.")
	}

	if len(missingSkills) > 0 {
		named := missingSkills
		if len(named) > maxMissingNamed {
			named = named[:maxMissingNamed]
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider adding these skills from the job description: %s",
			strings.Join(named, ", ")))
	}

	hasVerb := false
	for _, verb := range actionVerbs {
		if strings.Contains(lowered, verb) {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		suggestions = append(suggestions,
			"Start bullet points with strong action verbs: Developed, Implemented, Led, Managed, Achieved.")
	}

	suggestions = append(suggestions,
		"Include relevant certifications, awards, and professional development.")

	if len(suggestions) > types.MaxSuggestions {
		suggestions = suggestions[:types.MaxSuggestions]
	}
	return suggestions
}
