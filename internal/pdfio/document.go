package pdfio

import (
	"github.com/jackzampolin/binder/internal/patch"
)

// Document binds one PDF file to the patcher's document surface. Ownership
// is exclusive for the duration of a run: components hand the document to
// each other in pipeline order, never concurrently.
type Document struct {
	path string
	ops  *Ops
	text *TextSource
}

// OpenDocument prepares a PDF file for resolution and patching.
func OpenDocument(path string, ops *Ops, extractor *TextExtractor) (*Document, error) {
	text, err := NewTextSource(path, ops, extractor)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, ops: ops, text: text}, nil
}

// Path returns the underlying file path.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) PageCount() int {
	return d.text.PageCount()
}

func (d *Document) PageText(page int) (string, error) {
	return d.text.PageText(page)
}

func (d *Document) Search(page int, needle string) ([]patch.Rect, error) {
	return d.text.Search(page, needle)
}

func (d *Document) Links(page int) ([]patch.Link, error) {
	return d.ops.Links(d.path, page)
}

func (d *Document) SetLinks(page int, links []patch.Link) error {
	return d.ops.SetLinks(d.path, page, links)
}

func (d *Document) SetOutline(entries []patch.OutlineEntry) error {
	return d.ops.SetOutline(d.path, entries)
}
