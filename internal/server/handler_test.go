package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"resumelens/internal/analysis"
	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/observability"
	"resumelens/internal/report"
	"resumelens/internal/types"
)

var handlerTestClock = func() time.Time {
	return time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)
}

func newTestLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func newTestObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}
	return om
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := newTestLogger(t)
	return &Server{
		Version:        "test",
		Extractor:      extract.NewExtractor(),
		Analyzer:       analysis.NewService(nil, logger),
		Renderer:       report.NewRendererWithClock(handlerTestClock),
		APIKeys:        map[string]bool{},
		MaxRequestSize: 10 << 20,
		Logger:         logger,
	}
}

// samplePDF produces a real PDF whose extracted text contains the given
// skill names.
func samplePDF(t *testing.T, skills []string) []byte {
	t.Helper()
	renderer := report.NewRendererWithClock(handlerTestClock)
	document, err := renderer.Render(types.ReportData{
		ATSScore:    80,
		Skills:      skills,
		Suggestions: []string{"Keep descriptions of experience and education concise"},
	})
	if err != nil {
		t.Fatalf("failed to build sample PDF: %v", err)
	}
	return document
}

func multipartRequest(t *testing.T, target string, pdf []byte, jobDesc string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(pdf); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if jobDesc != "" {
		if err := writer.WriteField("job_desc", jobDesc); err != nil {
			t.Fatalf("failed to write job_desc field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeHandlerWithJobDescription(t *testing.T) {
	s := newTestServer(t)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	pdf := samplePDF(t, []string{"Python", "SQL"})
	req := multipartRequest(t, "/analyze", pdf, "We need Python experience")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.ATSScore < 50 || result.ATSScore > 100 {
		t.Errorf("ATS score %d outside [50,100]", result.ATSScore)
	}
	if !containsString(result.Skills, "Python") {
		t.Errorf("expected Python in detected skills, got %v", result.Skills)
	}
	if result.JobMatch == nil {
		t.Fatal("expected job match score when job description is supplied")
	}
	if *result.JobMatch != 100 {
		t.Errorf("expected job match 100 for a resume covering the job skills, got %d", *result.JobMatch)
	}
	if len(result.MissingSkills) != 0 {
		t.Errorf("expected no missing skills, got %v", result.MissingSkills)
	}
}

func TestAnalyzeHandlerWithoutJobDescription(t *testing.T) {
	s := newTestServer(t)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	pdf := samplePDF(t, []string{"Go", "Docker"})
	req := multipartRequest(t, "/analyze", pdf, "")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result.JobMatch != nil {
		t.Errorf("expected no job match without a job description, got %d", *result.JobMatch)
	}
	if result.MissingSkills != nil {
		t.Errorf("expected no missing skills without a job description, got %v", result.MissingSkills)
	}
}

func TestAnalyzeHandlerRejectsNonPDF(t *testing.T) {
	s := newTestServer(t)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	req := multipartRequest(t, "/analyze", []byte("this is not a pdf"), "")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for garbage upload, got %d", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error != "Could not read resume" {
		t.Errorf("unexpected error label: %q", errResp.Error)
	}
	// The client should not see parser internals
	if strings.Contains(errResp.Message, "panic") {
		t.Errorf("error message leaks internals: %q", errResp.Message)
	}
}

func TestAnalyzeHandlerMissingResumeField(t *testing.T) {
	s := newTestServer(t)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("job_desc", "Python"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without resume field, got %d", rec.Code)
	}
}

func TestAnalyzeHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	handler := s.createAnalyzeHandler(newTestObservability(t))

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405 for GET, got %d", rec.Code)
	}
}

func TestReportHandler(t *testing.T) {
	s := newTestServer(t)
	handler := s.createReportHandler(newTestObservability(t))

	form := url.Values{}
	form.Set("ats_score", "85")
	form.Set("job_match", "60")
	form.Add("skills", "Python")
	form.Add("skills", "SQL")
	form.Add("missing_skills", "Java")
	form.Add("suggestions", "Add more quantifiable achievements to your work experience")

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", ct)
	}

	wantDisposition := `attachment; filename="resume_analysis_20250307_143000.pdf"`
	if got := rec.Header().Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
	}

	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("response body is not a PDF document")
	}
}

func TestReportHandlerFieldValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{
			name: "missing ats_score",
			form: url.Values{"skills": {"Python"}},
		},
		{
			name: "non-numeric ats_score",
			form: url.Values{"ats_score": {"eighty"}},
		},
		{
			name: "non-numeric job_match",
			form: url.Values{"ats_score": {"80"}, "job_match": {"sixty"}},
		},
	}

	s := newTestServer(t)
	handler := s.createReportHandler(newTestObservability(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestReportHandlerClampsOutOfRangeValues(t *testing.T) {
	s := newTestServer(t)
	handler := s.createReportHandler(newTestObservability(t))

	form := url.Values{}
	form.Set("ats_score", "250")
	form.Set("job_match", "-10")

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler(rec, req)

	// Out-of-range values are clamped during rendering, not rejected
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for out-of-range scores, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("response body is not a PDF document")
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    map[string]bool
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "no keys configured allows all",
			apiKeys:    map[string]bool{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    map[string]bool{"secret-key-12345": true},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key accepted",
			apiKeys:    map[string]bool{"secret-key-12345": true},
			header:     "X-API-Key",
			value:      "secret-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer token accepted",
			apiKeys:    map[string]bool{"secret-key-12345": true},
			header:     "Authorization",
			value:      "Bearer secret-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    map[string]bool{"secret-key-12345": true},
			header:     "X-API-Key",
			value:      "wrong-key",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.APIKeys = tt.apiKeys

			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", response["status"])
	}
	if response["service"] != "resumelens" {
		t.Errorf("expected service resumelens, got %v", response["service"])
	}

	pipeline, ok := response["pipeline"].(map[string]any)
	if !ok {
		t.Fatal("expected pipeline section in health response")
	}
	if terms, ok := pipeline["vocabulary_terms"].(float64); !ok || terms <= 0 {
		t.Errorf("expected positive vocabulary_terms, got %v", pipeline["vocabulary_terms"])
	}
}

func TestHealthHandlerDegradedWithoutPipeline(t *testing.T) {
	s := newTestServer(t)
	s.Analyzer = nil

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "degraded" {
		t.Errorf("expected degraded status, got %v", response["status"])
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t)
	s.RateLimiter = NewRateLimiter(60, time.Minute, 10, s.Logger)
	defer s.RateLimiter.Close()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	s.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["service"] != "resumelens" {
		t.Errorf("expected service resumelens, got %v", response["service"])
	}
	if _, ok := response["rate_limiting"].(map[string]any); !ok {
		t.Error("expected rate_limiting section in stats response")
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
