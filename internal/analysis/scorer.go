package analysis

import "strings"

const (
	baseScore           = 50
	maxScore            = 100
	lengthBonus         = 5
	lengthBonusMinChars = 500
)

// sectionCheck awards points when its marker appears in the lowercased
// resume text.
type sectionCheck struct {
	marker string
	points int
}

var sectionChecks = []sectionCheck{
	{marker: "email", points: 5},
	{marker: "phone", points: 5},
	{marker: "experience", points: 10},
	{marker: "education", points: 10},
	{marker: "skills", points: 10},
	{marker: "project", points: 5},
}

// Score computes the ATS compatibility score for the given resume text.
// Scoring starts from a base of 50 and adds fixed bonuses for contact
// details, standard sections and overall length, capped at 100.
func Score(text string) int {
	lowered := strings.ToLower(text)
	score := baseScore
	for _, check := range sectionChecks {
		if strings.Contains(lowered, check.marker) {
			score += check.points
		}
	}
	if len(text) > lengthBonusMinChars {
		score += lengthBonus
	}
	return min(score, maxScore)
}
