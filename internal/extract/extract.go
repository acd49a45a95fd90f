// Package extract pulls plain text out of resume files. PDF, docx and plain
// text are supported; format is decided by file extension.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// File reads path and extracts its text based on the extension.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF(data)
	case ".docx":
		return Docx(data)
	case ".txt", ".md", "":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// PDF extracts the plain text of every page.
func PDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return text.String(), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)
var paragraphPattern = regexp.MustCompile(`</w:p>`)

// Docx extracts the document text. The docx library exposes raw document
// markup, so paragraph ends become newlines and remaining tags are stripped.
func Docx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphPattern.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
