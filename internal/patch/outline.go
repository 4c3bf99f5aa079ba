package patch

import (
	"fmt"

	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/resolve"
)

// BuildOutline constructs the document outline from scratch: title, foreword,
// table of contents with continuations, then one entry per attachment in
// ascending number order. The previous outline is never consulted; its page
// indices are stale after splicing, so delta reconciliation would only
// preserve errors.
func BuildOutline(records []catalog.Record, res resolve.Result) []OutlineEntry {
	var entries []OutlineEntry

	if page, ok := res.Anchors[resolve.AnchorTitle]; ok {
		entries = append(entries, OutlineEntry{Level: 1, Title: "Title Page", Page: page})
	}
	if page, ok := res.Anchors[resolve.AnchorForeword]; ok {
		entries = append(entries, OutlineEntry{Level: 1, Title: "Foreword", Page: page})
	}
	if page, ok := res.Anchors[resolve.AnchorTOC]; ok {
		entries = append(entries, OutlineEntry{Level: 1, Title: "Table of Contents", Page: page})
		for i, contPage := range res.TOCPages {
			if i == 0 {
				continue
			}
			entries = append(entries, OutlineEntry{
				Level: 2,
				Title: fmt.Sprintf("Table of Contents (continued %d)", i),
				Page:  contPage,
			})
		}
	}

	// Records arrive sorted ascending from the catalog; attachments whose
	// cover was never located get no entry.
	for _, rec := range records {
		page, ok := res.Anchors[resolve.CoverAnchor(rec.Number)]
		if !ok {
			continue
		}
		entries = append(entries, OutlineEntry{Level: 1, Title: rec.Label(), Page: page})
	}

	return entries
}
