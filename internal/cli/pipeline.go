package cli

import (
	"context"
	"fmt"

	"resumelens/internal/analysis"
	"resumelens/internal/common"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/types"
	"resumelens/internal/utils"
)

// newAnalysisService builds the analysis service, loading a custom skill
// vocabulary when one is configured.
func newAnalysisService(cfg *config.Config, logger *errors.Logger) (*analysis.Service, error) {
	vocab := analysis.DefaultVocabulary()
	if cfg.Analysis.VocabularyFile != "" {
		loaded, err := analysis.LoadVocabularyFile(cfg.Analysis.VocabularyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load skill vocabulary: %w", err)
		}
		vocab = loaded
		logger.Info("Loaded custom skill vocabulary",
			"file", cfg.Analysis.VocabularyFile,
			"terms", vocab.Len())
	}
	return analysis.NewService(vocab, logger), nil
}

// analyzeResumeFile extracts text from a resume PDF, reads the optional job
// description file, and runs the analysis.
func analyzeResumeFile(ctx context.Context, cfg *config.Config, logger *errors.Logger, resumePath, jobPath string) (*types.AnalysisResult, error) {
	if !utils.IsPDFFile(resumePath) {
		return nil, fmt.Errorf("resume file must be a PDF: %s", resumePath)
	}

	service, err := newAnalysisService(cfg, logger)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor()
	resumeText, err := extractor.TextFromFile(resumePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	jobDescription := ""
	if jobPath != "" {
		fp := common.NewFileProcessor(logger)
		jobDescription, err = fp.ReadFile(jobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
	}

	logger.Info("Starting resume analysis",
		"resume_file", resumePath,
		"resume_chars", len(resumeText),
		"job_chars", len(jobDescription))

	result, err := service.Analyze(ctx, types.AnalyzeResumeInput{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	return result, nil
}
