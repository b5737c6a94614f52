package analysis

import (
	"encoding/json"
	"os"
	"strings"

	"resumelens/internal/errors"
)

// defaultTerms is the built-in skill vocabulary. Order matters: detection
// results and missing-skill lists follow this order.
var defaultTerms = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "Ruby", "PHP", "Swift",
	"React", "Angular", "Vue", "Django", "Flask", "Node.js", "Express",
	"SQL", "MySQL", "MongoDB", "PostgreSQL", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "Git", "Linux", "HTML", "CSS", "REST API",
	"GraphQL", "Machine Learning", "AI", "Data Analysis", "Agile",
	"Scrum", "Project Management", "Leadership", "Communication",
	"Problem Solving", "Teamwork", "Critical Thinking", "Time Management",
}

// Vocabulary is an ordered list of skill terms with precomputed lowercase
// forms for case-insensitive matching. It is immutable after construction.
type Vocabulary struct {
	terms []string
	lower []string
}

// NewVocabulary builds a vocabulary from the given terms, preserving order
// and dropping case-insensitive duplicates and blank entries.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{
		terms: make([]string, 0, len(terms)),
		lower: make([]string, 0, len(terms)),
	}
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		lc := strings.ToLower(t)
		if _, dup := seen[lc]; dup {
			continue
		}
		seen[lc] = struct{}{}
		v.terms = append(v.terms, t)
		v.lower = append(v.lower, lc)
	}
	return v
}

// DefaultVocabulary returns the built-in skill vocabulary.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(defaultTerms)
}

// LoadVocabularyFile reads a JSON array of terms from path and builds a
// vocabulary from it.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				"vocabulary file does not exist", err).WithContext("file_path", path)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"cannot read vocabulary file", err).WithContext("file_path", path)
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"vocabulary file must be a JSON array of strings", err).WithContext("file_path", path)
	}

	v := NewVocabulary(terms)
	if v.Len() == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"vocabulary file contains no usable terms", nil).WithContext("file_path", path)
	}
	return v, nil
}

// Len returns the number of terms in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the vocabulary terms in order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
