// Package ingest turns documents into memory-sized text chunks.
package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Chunks splits per-page text on line boundaries, trims each line, and
// drops the empty ones. Each surviving line becomes one memory.
func Chunks(pages []string) []string {
	var chunks []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				chunks = append(chunks, line)
			}
		}
	}
	return chunks
}

// ExtractPDF returns the plain text of each page of the PDF at path, in
// page order. A page without a text object contributes an empty string;
// a page that fails to decode fails the whole extraction.
func ExtractPDF(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open pdf: %w", err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("ingest: read page %d: %w", pageIndex, err)
		}
		pages = append(pages, cleanText(text))
	}
	return pages, nil
}

// cleanText removes extraction artifacts: Windows line endings and
// stray NUL bytes.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\x00", "")
}
