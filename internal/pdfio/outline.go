package pdfio

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/jackzampolin/binder/internal/patch"
)

// SetOutline replaces the document's outline with the given entries. Level 2
// entries nest under the preceding level 1 entry; pdfcpu's replace flag
// drops whatever outline the document carried before, which is the point:
// pre-splice outlines only hold stale page indices.
func (o *Ops) SetOutline(path string, entries []patch.OutlineEntry) error {
	var bms []pdfcpu.Bookmark
	for _, e := range entries {
		bm := pdfcpu.Bookmark{
			Title:    e.Title,
			PageFrom: e.Page + 1, // pdfcpu bookmarks are 1-based
		}
		if e.Level > 1 && len(bms) > 0 {
			parent := &bms[len(bms)-1]
			parent.Kids = append(parent.Kids, bm)
			continue
		}
		bms = append(bms, bm)
	}

	if err := api.AddBookmarksFile(path, "", bms, true, o.conf); err != nil {
		return fmt.Errorf("failed to set outline on %s: %w", path, err)
	}
	return nil
}
