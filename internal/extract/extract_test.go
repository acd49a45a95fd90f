package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilePlainText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("Go developer with Docker"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Go developer with Docker" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestFileUnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "resume.odt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := File(path); err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := File(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPDFInvalidData(t *testing.T) {
	t.Parallel()

	if _, err := PDF([]byte("not a pdf")); err == nil {
		t.Fatalf("expected error for invalid pdf data")
	}
}

func TestDocxInvalidData(t *testing.T) {
	t.Parallel()

	if _, err := Docx([]byte("not a docx")); err == nil {
		t.Fatalf("expected error for invalid docx data")
	}
}
