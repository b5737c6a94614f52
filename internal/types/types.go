package types

// AnalyzeResumeInput represents the input for analyzing a resume
type AnalyzeResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// AnalysisResult is the complete outcome of one resume analysis.
// It is created once per request and never mutated or persisted.
type AnalysisResult struct {
	RawText       string   `json:"rawText"`
	ATSScore      int      `json:"atsScore"`
	Skills        []string `json:"skills"`
	JobMatch      *int     `json:"jobMatch,omitempty"`
	MissingSkills []string `json:"missingSkills,omitempty"`
	Suggestions   []string `json:"suggestions"`
}

// MaxSuggestions caps the suggestion list on both analysis and report paths.
const MaxSuggestions = 6

// ReportData is the subset of AnalysisResult needed to render a PDF report.
// The renderer never sees the raw resume text.
type ReportData struct {
	ATSScore      int
	JobMatch      *int
	Skills        []string
	MissingSkills []string
	Suggestions   []string
}

// ReportData returns the render subset of the analysis result.
func (r AnalysisResult) ReportData() ReportData {
	return ReportData{
		ATSScore:      r.ATSScore,
		JobMatch:      r.JobMatch,
		Skills:        r.Skills,
		MissingSkills: r.MissingSkills,
		Suggestions:   r.Suggestions,
	}
}

// Normalize clamps scores to [0,100] and truncates suggestions to
// MaxSuggestions. The report endpoint accepts client-resubmitted values,
// so out-of-range input is possible there.
func (d ReportData) Normalize() ReportData {
	d.ATSScore = clampScore(d.ATSScore)
	if d.JobMatch != nil {
		jm := clampScore(*d.JobMatch)
		d.JobMatch = &jm
	}
	if len(d.Suggestions) > MaxSuggestions {
		d.Suggestions = d.Suggestions[:MaxSuggestions]
	}
	return d
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
