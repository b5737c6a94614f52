package analysis

import (
	"context"
	"strings"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Service runs the full analysis pipeline over extracted resume text.
type Service struct {
	vocab  *Vocabulary
	logger *errors.Logger
}

// NewService creates an analysis service. A nil vocabulary selects the
// built-in one.
func NewService(vocab *Vocabulary, logger *errors.Logger) *Service {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Service{vocab: vocab, logger: logger}
}

// Vocabulary returns the vocabulary the service matches against.
func (s *Service) Vocabulary() *Vocabulary {
	return s.vocab
}

// Analyze scores the resume text, detects skills, and derives suggestions.
// The job match score and missing skills are only populated when the job
// description is non-blank; a blank job description leaves JobMatch nil so
// callers can distinguish "no match data" from a zero score.
func (s *Service) Analyze(ctx context.Context, input types.AnalyzeResumeInput) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ResumeText) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"resume text is empty", nil)
	}

	result := &types.AnalysisResult{
		RawText:  input.ResumeText,
		ATSScore: Score(input.ResumeText),
		Skills:   s.vocab.Detect(input.ResumeText),
	}

	if strings.TrimSpace(input.JobDescription) != "" {
		jobSkills := s.vocab.Detect(input.JobDescription)
		match, missing := Match(result.Skills, jobSkills)
		result.JobMatch = &match
		result.MissingSkills = missing
	}

	result.Suggestions = Suggest(input.ResumeText, result.MissingSkills)

	if s.logger != nil {
		s.logger.Debug("analysis completed",
			"ats_score", result.ATSScore,
			"skills_found", len(result.Skills),
			"has_job_match", result.JobMatch != nil,
		)
	}
	return result, nil
}
