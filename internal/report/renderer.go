// Package report renders analysis results as downloadable PDF reports.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Brand palette shared with the web UI.
var (
	titleColor    = rgb{214, 185, 252} // #D6B9FC
	headingColor  = rgb{131, 140, 229} // #838CE5
	headerText    = rgb{245, 245, 245} // whitesmoke
	rowBackground = rgb{245, 245, 220} // beige
)

type rgb struct{ r, g, b int }

const (
	titleSize   = 24
	headingSize = 14
	bodySize    = 11
	tableSize   = 12

	metricColWidth = 216 // 3in
	scoreColWidth  = 144 // 2in

	pageMargin = 36 // 0.5in
)

// timestampLayout matches the "Generated on" line shown in the report.
const timestampLayout = "January 02, 2006 at 03:04 PM"

// Renderer builds PDF reports from analysis data. The clock is injectable
// so tests can pin the generation timestamp.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a renderer using the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock creates a renderer with a fixed clock source.
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// FileName returns the download name for a report generated at t.
func FileName(t time.Time) string {
	return "resume_analysis_" + t.Format("20060102_150405") + ".pdf"
}

// OutputName returns the download name for a report generated on the
// renderer's clock.
func (r *Renderer) OutputName() string {
	return FileName(r.now())
}

// scoreRows returns the data rows of the scores table. The ATS row is
// always present; the job match row only appears when a match score exists.
func scoreRows(data types.ReportData) [][2]string {
	rows := [][2]string{
		{"ATS Score", fmt.Sprintf("%d%%", data.ATSScore)},
	}
	if data.JobMatch != nil {
		rows = append(rows, [2]string{"Job Match", fmt.Sprintf("%d%%", *data.JobMatch)})
	}
	return rows
}

// Render produces the PDF document for the given data. Input is normalized
// first, so callers may pass client-supplied values directly.
func (r *Renderer) Render(data types.ReportData) ([]byte, error) {
	data = data.Normalize()

	now := r.now()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()
	usableWidth := pageWidth - 2*pageMargin

	// Title and generation timestamp
	doc.SetFont("Helvetica", "B", titleSize)
	setText(doc, titleColor)
	doc.CellFormat(usableWidth, titleSize+6, "Resume Analysis Report", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", bodySize)
	setText(doc, rgb{0, 0, 0})
	generated := "Generated on " + now.Format(timestampLayout)
	doc.CellFormat(usableWidth, bodySize+3, generated, "", 1, "C", false, 0, "")
	doc.Ln(20)

	// Scores table
	r.heading(doc, "Analysis Scores")
	doc.SetFont("Helvetica", "B", tableSize)
	setText(doc, headerText)
	setFill(doc, headingColor)
	doc.CellFormat(metricColWidth, 28, "Metric", "1", 0, "C", true, 0, "")
	doc.CellFormat(scoreColWidth, 28, "Score", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", tableSize)
	setText(doc, rgb{0, 0, 0})
	setFill(doc, rowBackground)
	for _, row := range scoreRows(data) {
		doc.CellFormat(metricColWidth, 22, row[0], "1", 0, "C", true, 0, "")
		doc.CellFormat(scoreColWidth, 22, row[1], "1", 1, "C", true, 0, "")
	}
	doc.Ln(14)

	// Detected skills
	r.heading(doc, "Detected Skills")
	doc.SetFont("Helvetica", "", bodySize)
	setText(doc, rgb{0, 0, 0})
	if len(data.Skills) > 0 {
		doc.MultiCell(usableWidth, bodySize+4, strings.Join(data.Skills, ", "), "", "L", false)
	} else {
		doc.MultiCell(usableWidth, bodySize+4, "No skills detected", "", "L", false)
	}
	doc.Ln(14)

	// Missing skills, omitted entirely when there are none
	if len(data.MissingSkills) > 0 {
		r.heading(doc, "Missing Skills (From Job Description)")
		doc.SetFont("Helvetica", "", bodySize)
		setText(doc, rgb{0, 0, 0})
		doc.MultiCell(usableWidth, bodySize+4, strings.Join(data.MissingSkills, ", "), "", "L", false)
		doc.Ln(14)
	}

	// Numbered suggestions
	r.heading(doc, "Improvement Suggestions")
	doc.SetFont("Helvetica", "", bodySize)
	setText(doc, rgb{0, 0, 0})
	for i, s := range data.Suggestions {
		doc.MultiCell(usableWidth, bodySize+4, fmt.Sprintf("%d. %s", i+1, s), "", "L", false)
		doc.Ln(2)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed,
			"failed to build PDF report", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) heading(doc *fpdf.Fpdf, text string) {
	doc.SetFont("Helvetica", "B", headingSize)
	setText(doc, headingColor)
	doc.CellFormat(0, headingSize+6, text, "", 1, "L", false, 0, "")
	doc.Ln(4)
}

func setText(doc *fpdf.Fpdf, c rgb) {
	doc.SetTextColor(c.r, c.g, c.b)
}

func setFill(doc *fpdf.Fpdf, c rgb) {
	doc.SetFillColor(c.r, c.g, c.b)
}
