package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumelens/internal/types"
)

func sampleResult() types.AnalysisResult {
	match := 60
	return types.AnalysisResult{
		ATSScore:      85,
		Skills:        []string{"Python", "SQL"},
		JobMatch:      &match,
		MissingSkills: []string{"Java"},
		Suggestions: []string{
			"Include relevant certifications, awards, and professional development.",
		},
	}
}

func TestFormatText(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	for _, want := range []string{
		"ATS Score: 85/100",
		"Job Match: 60/100",
		"Python, SQL",
		"=== MISSING SKILLS ===",
		"Java",
		"1. Include relevant certifications, awards, and professional development.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestFormatTextWithoutJobMatch(t *testing.T) {
	result := types.AnalysisResult{
		ATSScore:    50,
		Suggestions: []string{"Use better formatting with clear sections and bullet points for readability."},
	}
	out, err := GlobalRegistry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if strings.Contains(out, "Job Match") {
		t.Error("text output mentions Job Match without a match score")
	}
	if !strings.Contains(out, "No skills detected") {
		t.Error("text output missing skills placeholder")
	}
	if strings.Contains(out, "MISSING SKILLS") {
		t.Error("text output includes missing skills section without missing skills")
	}
}

func TestFormatMarkdown(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "markdown")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	for _, want := range []string{
		"# Resume Analysis",
		"**ATS Score:** 85/100",
		"**Job Match:** 60/100",
		"- Python",
		"## Missing Skills",
		"- Java",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleResult(), "json")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	var decoded types.AnalysisResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json output does not round-trip: %v", err)
	}
	if decoded.ATSScore != 85 {
		t.Errorf("decoded ATSScore = %d, want 85", decoded.ATSScore)
	}
	if decoded.JobMatch == nil || *decoded.JobMatch != 60 {
		t.Errorf("decoded JobMatch = %v, want 60", decoded.JobMatch)
	}
}

func TestFormatJSONOmitsNilJobMatch(t *testing.T) {
	out, err := GlobalRegistry.Format(types.AnalysisResult{ATSScore: 50}, "json")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if strings.Contains(out, "jobMatch") {
		t.Error("json output includes jobMatch key for nil match")
	}
}

func TestFormatPointerResult(t *testing.T) {
	result := sampleResult()
	out, err := GlobalRegistry.Format(&result, "text")
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(out, "ATS Score: 85/100") {
		t.Error("pointer input not routed to the analysis formatter")
	}
}

func TestFormatUnsupportedFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleResult(), "xml"); err == nil {
		t.Error("Format() expected error for unsupported format")
	}
}
