// Package resolve recovers the actual page position of every named section
// and attachment cover page from the assembled document's rendered text.
// Estimates drift whenever declared page counts are wrong or covers span
// multiple pages, so the map built here is the only source of truth for
// navigation targets.
package resolve

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackzampolin/binder/internal/catalog"
)

// Anchor identifies a navigational target: a named section or an attachment
// cover page.
type Anchor string

const (
	AnchorTitle    Anchor = "title"
	AnchorForeword Anchor = "foreword"
	AnchorTOC      Anchor = "toc"
)

// CoverAnchor returns the anchor for an attachment's cover page. The same
// form appears as "#cover-<number>" link targets in the rendered TOC.
func CoverAnchor(number string) Anchor {
	return Anchor("cover-" + number)
}

// CoverNumber extracts the attachment number from a cover anchor.
func CoverNumber(a Anchor) (string, bool) {
	s := string(a)
	if strings.HasPrefix(s, "cover-") {
		return s[len("cover-"):], true
	}
	return "", false
}

// AnchorMap maps anchors to actual zero-based page indices in the assembled
// document. It contains an entry for every cover page that was located;
// attachments whose cover could not be found are absent, not zero.
type AnchorMap map[Anchor]int

// TextSource provides per-page rendered text for a document.
type TextSource interface {
	PageCount() int
	PageText(page int) (string, error)
}

// tocHeading is the literal printed on the first TOC page by the renderer.
const tocHeading = "Table of Contents"

// maxExpectedTOCPages mirrors the layout estimator's clamp. A TOC spanning
// more pages than this means the printed page hints have drifted badly.
const maxExpectedTOCPages = 3

// coverScanLines bounds how deep into a page the cover pattern may appear.
// Cover sheets print their heading first; a mention further down is body
// text of some other attachment.
const coverScanLines = 5

// tocRowShape matches a TOC row ending in a label number and a page number,
// e.g. "Attachment 14    50". Used to recognize continuation pages, which
// carry rows but not the heading.
var tocRowShape = regexp.MustCompile(`(?m)Attachment\s+\S+\s+\d+\s*$`)

// Options control resolution.
type Options struct {
	TitlePages    int // physical pages contributed by the title PDF, 0 if absent
	ForewordPages int // physical pages contributed by the foreword PDF, 0 if absent
	Logger        *slog.Logger
}

// Result is the resolver's output.
type Result struct {
	Anchors    AnchorMap
	TOCPages   []int    // all TOC page indices, first is the heading page
	BlankPages int      // pages with no extractable text; diagnostic only
	Missing    []string // attachment numbers whose cover page was not found
}

// Resolve scans every page of the assembled document and derives the actual
// position of each anchor. Title and foreword are positional (the assembler
// emits them first); everything else is pattern-matched from page text.
func Resolve(src TextSource, records []catalog.Record, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	res := Result{Anchors: make(AnchorMap)}

	if opts.TitlePages > 0 {
		res.Anchors[AnchorTitle] = 0
	}
	if opts.ForewordPages > 0 {
		res.Anchors[AnchorForeword] = opts.TitlePages
	}

	// Ordered scan list keeps matching deterministic; entries are removed as
	// their covers are found so a cover is never overwritten.
	pending := make([]string, 0, len(records))
	for _, r := range records {
		pending = append(pending, r.Number)
	}

	pageCount := src.PageCount()
	inTOC := false

	for page := 0; page < pageCount; page++ {
		text, err := src.PageText(page)
		if err != nil {
			return res, fmt.Errorf("failed to extract text from page %d: %w", page, err)
		}

		if strings.TrimSpace(text) == "" {
			res.BlankPages++
			log.Warn("blank page in assembled document", "page", page)
			inTOC = false
			continue
		}

		switch {
		case len(res.TOCPages) == 0 && strings.Contains(text, tocHeading):
			res.TOCPages = append(res.TOCPages, page)
			res.Anchors[AnchorTOC] = page
			inTOC = true
			continue
		case inTOC && tocRowShape.MatchString(text):
			// Continuation page: TOC-shaped rows without the heading.
			res.TOCPages = append(res.TOCPages, page)
			continue
		default:
			inTOC = false
		}

		if i, ok := matchCoverPage(text, pending); ok {
			number := pending[i]
			res.Anchors[CoverAnchor(number)] = page
			pending = append(pending[:i], pending[i+1:]...)
			log.Debug("located cover page", "attachment", number, "page", page)
		}
	}

	for _, number := range pending {
		res.Missing = append(res.Missing, number)
		log.Warn("cover page not found", "attachment", number)
	}

	if len(res.TOCPages) > maxExpectedTOCPages {
		log.Warn("TOC spans more pages than estimated, printed page hints will drift",
			"toc_pages", len(res.TOCPages),
			"expected_max", maxExpectedTOCPages)
	}
	if res.BlankPages > 0 {
		log.Warn("assembled document contains blank pages", "count", res.BlankPages)
	}

	return res, nil
}

// matchCoverPage reports whether text looks like the cover page of one of
// the pending attachments: "Attachment <number>" within the first few lines
// and a "Page " hint somewhere on the page. Returns the index into pending
// of the matched attachment.
func matchCoverPage(text string, pending []string) (int, bool) {
	if !strings.Contains(text, "Page ") {
		return 0, false
	}

	lines := strings.Split(text, "\n")
	if len(lines) > coverScanLines {
		lines = lines[:coverScanLines]
	}
	head := strings.Join(lines, "\n")

	for i, number := range pending {
		marker := "Attachment " + number
		idx := strings.Index(head, marker)
		if idx < 0 {
			continue
		}
		// Guard against prefix collisions: "Attachment 1" must not match
		// "Attachment 14" or "Attachment 1.1".
		rest := head[idx+len(marker):]
		if rest != "" {
			if c := rest[0]; c == '.' || (c >= '0' && c <= '9') {
				continue
			}
		}
		return i, true
	}
	return 0, false
}
