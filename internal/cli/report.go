package cli

import (
	"fmt"
	"time"

	"resumelens/internal/common"
	"resumelens/internal/report"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [resume.pdf]",
	Short: "Analyze a resume PDF and render the results as a PDF report",
	Long: `Analyze a resume PDF and write the results as a PDF report. The report
contains the scores table, detected skills, missing skills when a job
description is supplied with --job, and improvement suggestions.

Without --output the report is written to the current directory under a
timestamped file name.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportOutputFile string
	reportJobFile    string
)

func init() {
	reportCmd.Flags().StringVarP(&reportOutputFile, "output", "o", "", "Output PDF file path (default: timestamped name in current directory)")
	reportCmd.Flags().StringVar(&reportJobFile, "job", "", "Job description text file to match against")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	result, err := analyzeResumeFile(cmd.Context(), cfg, logger, args[0], reportJobFile)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer()
	document, err := renderer.Render(result.ReportData())
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	outputFile := reportOutputFile
	if outputFile == "" {
		outputFile = report.FileName(time.Now())
	}

	fp := common.NewFileProcessor(logger)
	if err := fp.ValidateOutputFile(outputFile); err != nil {
		return err
	}
	if err := fp.WriteFileBytes(outputFile, document); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Report written successfully",
		"output_file", outputFile,
		"size_bytes", len(document))
	return nil
}
