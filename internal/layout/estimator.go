// Package layout predicts where each section of the assembled document will
// land before any PDF exists. Estimates feed the "Page N" hints printed on
// cover sheets and nothing else; navigation targets always come from the
// post-assembly resolver.
package layout

import (
	"github.com/jackzampolin/binder/internal/catalog"
)

// DefaultEntriesPerPage is the TOC row capacity assumed when none is
// configured.
const DefaultEntriesPerPage = 25

// maxTOCPages caps the TOC estimate. A run producing more TOC pages than
// this is flagged by the resolver, not predicted here.
const maxTOCPages = 3

// Estimator computes display page numbers from declared page counts.
type Estimator struct {
	EntriesPerPage int // TOC rows per page, DefaultEntriesPerPage if <= 0
	TitlePages     int // page count of the title PDF, 0 if absent
	ForewordPages  int // page count of the foreword PDF, 0 if absent
}

// Estimate holds predicted 1-based display page numbers. These are cosmetic
// and allowed to drift from the physically assembled document.
type Estimate struct {
	TOCPageCount int
	LeadingPages int            // pages before the first cover: title + foreword + TOC
	CoverPages   map[string]int // canonical number -> predicted cover page (1-based)
}

// TOCPages estimates how many pages the TOC occupies for n entries,
// clamped to [1, maxTOCPages].
func (e Estimator) TOCPages(n int) int {
	perPage := e.EntriesPerPage
	if perPage <= 0 {
		perPage = DefaultEntriesPerPage
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if pages > maxTOCPages {
		pages = maxTOCPages
	}
	return pages
}

// Estimate walks the records in order, assigning each cover page the running
// cursor and advancing by declared content pages plus the next cover. It
// never fails; unparseable page counts were already defaulted by the catalog.
func (e Estimator) Estimate(records []catalog.Record) Estimate {
	tocPages := e.TOCPages(len(records))
	leading := e.TitlePages + e.ForewordPages + tocPages

	est := Estimate{
		TOCPageCount: tocPages,
		LeadingPages: leading,
		CoverPages:   make(map[string]int, len(records)),
	}

	cursor := leading + 1 // first cover page, 1-based
	for _, r := range records {
		est.CoverPages[r.Number] = cursor
		pages := r.PageCount
		if pages < 1 {
			pages = 1
		}
		cursor += pages + 1
	}

	return est
}
