package analysis

import "strings"

// Detect returns the vocabulary terms that appear in text, in vocabulary
// order, with each term reported at most once. Matching is case-insensitive
// substring containment, so short terms can match inside longer words
// ("AI" matches "maintained").
func (v *Vocabulary) Detect(text string) []string {
	lowered := strings.ToLower(text)
	found := make([]string, 0, 8)
	for i, lc := range v.lower {
		if strings.Contains(lowered, lc) {
			found = append(found, v.terms[i])
		}
	}
	return found
}
