package extract

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumelens/internal/errors"
)

// Extractor pulls plain text out of PDF documents. The zero value is ready
// to use.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Text extracts the text of a PDF from r, which must cover size bytes.
// Pages with no readable content are skipped. Malformed input yields an
// extraction error rather than a panic.
func (e *Extractor) Text(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"malformed PDF document", nil).WithContext("panic", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"cannot parse PDF document", err)
	}
	return collectText(reader)
}

// TextFromBytes extracts the text of a PDF held fully in memory.
func (e *Extractor) TextFromBytes(data []byte) (string, error) {
	return e.Text(bytes.NewReader(data), int64(len(data)))
}

// TextFromFile extracts the text of a PDF on disk.
func (e *Extractor) TextFromFile(path string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"malformed PDF document", nil).
				WithContext("file_path", path).
				WithContext("panic", rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewIOError(errors.ErrCodeFileNotFound,
				"PDF file does not exist", err).WithContext("file_path", path)
		}
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"cannot parse PDF document", err).WithContext("file_path", path)
	}
	defer f.Close()

	return collectText(reader)
}

func collectText(reader *pdf.Reader) (string, error) {
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
