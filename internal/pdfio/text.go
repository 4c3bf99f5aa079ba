package pdfio

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

// TextExtractor pulls rendered page text out of a PDF using pdftotext
// (poppler-utils). Rendered text is what the resolver scans, so extraction
// must reflect what a viewer shows, not the content stream.
type TextExtractor struct {
	// Command overrides the pdftotext binary, for tests and exotic installs.
	Command string
}

func (e *TextExtractor) command() string {
	if e.Command != "" {
		return e.Command
	}
	return "pdftotext"
}

// PageText extracts the text of a single zero-based page.
func (e *TextExtractor) PageText(path string, page int) (string, error) {
	p := strconv.Itoa(page + 1)
	cmd := exec.Command(e.command(), "-f", p, "-l", p, path, "-")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d of %s: %w (stderr: %s)",
			page, path, err, stderr.String())
	}
	return out.String(), nil
}

// TextSource adapts a PDF file into a page-indexed text source with a small
// cache, since resolver and patcher both scan the same pages.
type TextSource struct {
	path      string
	pageCount int
	extractor *TextExtractor
	cache     map[int]string
}

// NewTextSource opens path and prepares per-page text access.
func NewTextSource(path string, ops *Ops, extractor *TextExtractor) (*TextSource, error) {
	n, err := ops.PageCount(path)
	if err != nil {
		return nil, err
	}
	if extractor == nil {
		extractor = &TextExtractor{}
	}
	return &TextSource{
		path:      path,
		pageCount: n,
		extractor: extractor,
		cache:     make(map[int]string),
	}, nil
}

// PageCount returns the document's page count.
func (s *TextSource) PageCount() int {
	return s.pageCount
}

// PageText returns the rendered text of a zero-based page.
func (s *TextSource) PageText(page int) (string, error) {
	if text, ok := s.cache[page]; ok {
		return text, nil
	}
	if page < 0 || page >= s.pageCount {
		return "", fmt.Errorf("page %d out of range [0,%d)", page, s.pageCount)
	}
	text, err := s.extractor.PageText(s.path, page)
	if err != nil {
		return "", err
	}
	s.cache[page] = text
	return text, nil
}
