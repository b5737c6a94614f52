package cli

import (
	"fmt"

	"resumelens/internal/common"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume.pdf]",
	Short: "Analyze a resume PDF against an optional job description",
	Long: `Analyze a resume PDF and print the results. The resume text is scored
the way applicant tracking systems score it, skills are detected from a fixed
vocabulary, and improvement suggestions are generated.

When a job description file is supplied with --job, the analysis also reports
a job match percentage and the skills the job asks for that the resume lacks.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig  common.CommandConfig
	analyzeJobFile string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Job description text file to match against")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	result, err := analyzeResumeFile(cmd.Context(), cfg, logger, args[0], analyzeJobFile)
	if err != nil {
		return err
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, analyzeConfig); err != nil {
		return fmt.Errorf("failed to write analysis output: %w", err)
	}

	logger.Info("Resume analysis completed successfully",
		"ats_score", result.ATSScore,
		"skills_detected", len(result.Skills))
	return nil
}
