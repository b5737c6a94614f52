package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	resumelensErrors "resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// multipartMemoryLimit bounds how much of a parsed form is held in memory;
// larger file parts spill to temporary files.
const multipartMemoryLimit = 10 << 20

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, header, err := s.resumeUpload(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Debug("Failed to close uploaded file", "error", err.Error())
			}
		}()

		jobDescription := r.FormValue("job_desc")

		span.SetAttributes(
			attribute.String("upload.filename", header.Filename),
			attribute.Int64("upload.size_bytes", header.Size),
			attribute.Int("request.job_length", len(jobDescription)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var result *types.AnalysisResult
		err = metrics.TrackAnalysisOperation(ctx, "analyze", func(ctx context.Context) *observability.OperationResult {
			text, extractErr := s.Extractor.Text(file, header.Size)
			if extractErr != nil {
				return &observability.OperationResult{Error: extractErr}
			}

			output, analyzeErr := s.Analyzer.Analyze(ctx, types.AnalyzeResumeInput{
				ResumeText:     text,
				JobDescription: jobDescription,
			})
			result = output
			return &observability.OperationResult{
				Error:     analyzeErr,
				TextBytes: int64(len(text)),
			}
		})

		if err != nil {
			s.Logger.LogError(err, "Resume analysis failed",
				"filename", header.Filename,
				"size_bytes", header.Size)
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false,
				attribute.String("error", errorKind(err)))
			s.writeAnalysisError(w, span, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true,
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("skills.detected", len(result.Skills)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("skills.detected", len(result.Skills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// resumeUpload parses the multipart form and returns the uploaded resume file
func (s *Server) resumeUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return nil, nil, fmt.Errorf("expected multipart form data: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, nil, fmt.Errorf("resume file field is required")
	}

	return file, header, nil
}

// writeAnalysisError maps pipeline errors to HTTP responses. Extraction and
// validation failures are the client's fault; the response carries a generic
// message while the detail stays in the logs.
func (s *Server) writeAnalysisError(w http.ResponseWriter, span traceSpan, err error) {
	var appErr *resumelensErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case resumelensErrors.ErrorTypeExtraction:
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeErrorResponse(w, "Could not read resume",
				"the uploaded file is not a readable PDF document", http.StatusBadRequest)
			return
		case resumelensErrors.ErrorTypeValidation:
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Could not analyze resume",
				"no usable text was found in the uploaded document", http.StatusBadRequest)
			return
		}
	}

	span.SetAttributes(attribute.String("error.type", "internal"))
	writeErrorResponse(w, "Failed to analyze resume", "internal error", http.StatusInternalServerError)
}

// traceSpan is the subset of the OpenTelemetry span API the error writer needs
type traceSpan interface {
	SetAttributes(kv ...attribute.KeyValue)
}

// errorKind returns a short classification label for metrics attributes
func errorKind(err error) string {
	var appErr *resumelensErrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return "internal"
}

// createReportHandler wraps the report handler with observability
func (s *Server) createReportHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.report")
		defer span.End()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data, err := parseReportForm(r)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid report data", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("report.ats_score", data.ATSScore),
			attribute.Int("report.skills", len(data.Skills)),
			attribute.Int("report.suggestions", len(data.Suggestions)),
			attribute.String("operation", "report"),
		)

		metrics := om.GetMetrics()
		var document []byte
		err = metrics.TrackAnalysisOperation(ctx, "report", func(ctx context.Context) *observability.OperationResult {
			output, renderErr := s.Renderer.Render(data)
			document = output
			return &observability.OperationResult{Error: renderErr}
		})

		if err != nil {
			s.Logger.LogError(err, "Report generation failed")
			metrics.RecordBusinessMetric(ctx, "report_generated", false)
			span.SetAttributes(attribute.String("error.type", "render"))
			writeErrorResponse(w, "Failed to generate report", "internal error", http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "report_generated", true,
			attribute.Int("report.size_bytes", len(document)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("report.size_bytes", len(document)),
		)

		name := s.Renderer.OutputName()
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(len(document)))
		if _, err := w.Write(document); err != nil {
			span.RecordError(err)
			s.Logger.Debug("Failed to write report response", "error", err.Error())
		}
	}
}

// parseReportForm reads resubmitted analysis values from a url-encoded or
// multipart form. The values are trusted as-is; Render normalizes them to the
// data model bounds before drawing.
func parseReportForm(r *http.Request) (types.ReportData, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return types.ReportData{}, fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return types.ReportData{}, fmt.Errorf("failed to parse form: %w", err)
	}

	rawScore := strings.TrimSpace(r.PostFormValue("ats_score"))
	if rawScore == "" {
		return types.ReportData{}, fmt.Errorf("ats_score field is required")
	}
	atsScore, err := strconv.Atoi(rawScore)
	if err != nil {
		return types.ReportData{}, fmt.Errorf("ats_score must be an integer")
	}

	data := types.ReportData{
		ATSScore:      atsScore,
		Skills:        formValues(r, "skills"),
		MissingSkills: formValues(r, "missing_skills"),
		Suggestions:   formValues(r, "suggestions"),
	}

	if rawMatch := strings.TrimSpace(r.PostFormValue("job_match")); rawMatch != "" {
		jobMatch, err := strconv.Atoi(rawMatch)
		if err != nil {
			return types.ReportData{}, fmt.Errorf("job_match must be an integer")
		}
		data.JobMatch = &jobMatch
	}

	return data, nil
}

// formValues returns the non-blank values of a repeated form field
func formValues(r *http.Request, key string) []string {
	values := make([]string, 0, len(r.PostForm[key]))
	for _, v := range r.PostForm[key] {
		if strings.TrimSpace(v) != "" {
			values = append(values, v)
		}
	}
	return values
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
