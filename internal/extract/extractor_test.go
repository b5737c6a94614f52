package extract

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"resumelens/internal/errors"
)

func TestTextFromBytesRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "plain text", data: []byte("this is not a pdf at all")},
		{name: "truncated header", data: []byte("%PDF-1.4\n")},
		{name: "binary noise", data: []byte{0x00, 0xff, 0x13, 0x37, 0x00, 0xff}},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.TextFromBytes(tt.data)
			if err == nil {
				t.Fatal("TextFromBytes() expected error for invalid input")
			}

			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) {
				t.Fatalf("expected *errors.AppError, got %T", err)
			}
			if appErr.Type != errors.ErrorTypeExtraction {
				t.Errorf("error type = %s, want %s", appErr.Type, errors.ErrorTypeExtraction)
			}
			if appErr.Code != errors.ErrCodeExtractionFailed {
				t.Errorf("error code = %s, want %s", appErr.Code, errors.ErrCodeExtractionFailed)
			}
		})
	}
}

func TestTextFromFileMissing(t *testing.T) {
	e := NewExtractor()
	_, err := e.TextFromFile(filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatal("TextFromFile() expected error for missing file")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %s, want %s", appErr.Code, errors.ErrCodeFileNotFound)
	}
}

func TestTextFromFileGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	_, err := e.TextFromFile(path)
	if err == nil {
		t.Fatal("TextFromFile() expected error for garbage file")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Type != errors.ErrorTypeExtraction {
		t.Errorf("error type = %s, want %s", appErr.Type, errors.ErrorTypeExtraction)
	}
}
