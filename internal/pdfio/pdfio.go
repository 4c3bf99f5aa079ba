// Package pdfio is the side-effect boundary for PDF work: pdfcpu for
// document structure (page counts, extraction, merging, bookmarks, link
// annotations) and poppler's pdftotext for rendered text. The engine
// packages (assemble, resolve, patch) only ever see its interfaces.
package pdfio

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Ops performs file-level PDF operations via pdfcpu. The zero value is
// ready to use with pdfcpu's relaxed default configuration.
type Ops struct {
	conf *model.Configuration
}

// NewOps returns an Ops with pdfcpu defaults.
func NewOps() *Ops {
	return &Ops{conf: model.NewDefaultConfiguration()}
}

// PageCount returns the number of pages in the PDF at path.
func (o *Ops) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count for %s: %w", path, err)
	}
	return n, nil
}

// ExtractPages writes pages from..to (1-based, inclusive) of src to dst.
func (o *Ops) ExtractPages(src, dst string, from, to int) error {
	if from > to {
		return fmt.Errorf("invalid page range %d-%d", from, to)
	}
	pages := []string{fmt.Sprintf("%d-%d", from, to)}
	if err := api.TrimFile(src, dst, pages, o.conf); err != nil {
		return fmt.Errorf("failed to extract pages %d-%d from %s: %w", from, to, src, err)
	}
	return nil
}

// Merge concatenates parts in order into dst.
func (o *Ops) Merge(parts []string, dst string) error {
	if len(parts) == 0 {
		return fmt.Errorf("nothing to merge")
	}
	if err := api.MergeCreateFile(parts, dst, false, o.conf); err != nil {
		return fmt.Errorf("failed to merge %d parts into %s: %w", len(parts), dst, err)
	}
	return nil
}

// pageSelection formats a single zero-based page index for pdfcpu, which
// selects pages 1-based.
func pageSelection(page int) []string {
	return []string{strconv.Itoa(page + 1)}
}
