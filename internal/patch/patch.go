// Package patch rewrites a merged document's internal navigation against the
// resolver's anchor map: every symbolic link gets pointed at its actual page,
// links the renderer dropped are synthesized back from page text, and the
// outline is rebuilt from scratch.
package patch

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/resolve"
)

// Rect is a link's clickable region in PDF user space.
type Rect struct {
	Llx, Lly, Urx, Ury float64
}

// Link is an in-document clickable region. Target carries the symbolic
// anchor ("#cover-14", "#toc", ...) and survives patching as the link's
// identity; Dest is the zero-based page the link points at, -1 when the link
// has never been resolved.
type Link struct {
	Rect   Rect
	Target string
	Dest   int
}

// OutlineEntry is one bookmark. Page is a zero-based actual page index.
type OutlineEntry struct {
	Level int
	Title string
	Page  int
}

// Document is the mutable document surface the patcher works against.
// SetLinks replaces the full link set of a page; partial edits would let
// stale links from earlier passes accumulate.
type Document interface {
	PageCount() int
	PageText(page int) (string, error)
	Links(page int) ([]Link, error)
	SetLinks(page int, links []Link) error
	Search(page int, needle string) ([]Rect, error)
	SetOutline(entries []OutlineEntry) error
}

// Stats summarizes a patch run.
type Stats struct {
	LinksFixed       int
	LinksSynthesized int
	LinksSkipped     int // already correct, untouched
	Bookmarks        int
	Unresolved       []string // symbolic targets with no anchor entry
}

// attachmentRef matches attachment references in rendered TOC text.
var attachmentRef = regexp.MustCompile(`Attachment\s+(\d+(?:\.\d+)?)`)

// Patcher applies both rewrite passes.
type Patcher struct {
	Logger *slog.Logger
}

// Patch points every resolvable link at its actual page, synthesizes links
// missing from TOC pages, and replaces the outline. Link repair failures are
// logged and skipped; only outline write failure is returned, and even then
// the document keeps its previous outline rather than a corrupted one.
func (p *Patcher) Patch(doc Document, records []catalog.Record, res resolve.Result) (Stats, error) {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	var stats Stats

	tocPages := make(map[int]bool, len(res.TOCPages))
	for _, page := range res.TOCPages {
		tocPages[page] = true
	}

	for page := 0; page < doc.PageCount(); page++ {
		if err := p.patchPage(doc, page, tocPages[page], res.Anchors, &stats, log); err != nil {
			log.Warn("link repair failed, page left unchanged", "page", page, "error", err)
		}
	}

	entries := BuildOutline(records, res)
	if err := doc.SetOutline(entries); err != nil {
		return stats, fmt.Errorf("failed to set outline: %w", err)
	}
	stats.Bookmarks = len(entries)

	log.Info("patching complete",
		"links_fixed", stats.LinksFixed,
		"links_synthesized", stats.LinksSynthesized,
		"links_skipped", stats.LinksSkipped,
		"bookmarks", stats.Bookmarks,
		"unresolved", len(stats.Unresolved))
	return stats, nil
}

// patchPage rewrites one page's links. The page's link set is only written
// back when something actually changed, keeping repeated runs no-ops.
func (p *Patcher) patchPage(doc Document, page int, isTOC bool, anchors resolve.AnchorMap, stats *Stats, log *slog.Logger) error {
	links, err := doc.Links(page)
	if err != nil {
		return err
	}

	changed := false
	present := make(map[resolve.Anchor]bool, len(links))

	for i, link := range links {
		anchor, ok := symbolicAnchor(link.Target)
		if !ok {
			continue // not ours: external URL or unrelated annotation
		}
		present[anchor] = true

		actual, known := anchors[anchor]
		if !known {
			stats.Unresolved = append(stats.Unresolved, link.Target)
			log.Warn("link target unresolved, left untouched", "page", page, "target", link.Target)
			continue
		}
		if link.Dest == actual {
			stats.LinksSkipped++
			continue
		}
		links[i].Dest = actual
		stats.LinksFixed++
		changed = true
		log.Debug("fixed link", "page", page, "target", link.Target, "dest", actual)
	}

	if isTOC {
		synth, err := p.synthesize(doc, page, anchors, present, log)
		if err != nil {
			return err
		}
		if len(synth) > 0 {
			links = append(links, synth...)
			stats.LinksSynthesized += len(synth)
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return doc.SetLinks(page, links)
}

// synthesize creates links for attachment references present in a TOC page's
// text but missing a link annotation. The upstream HTML renderer's links do
// not reliably survive assembly, so this is a required self-healing step.
func (p *Patcher) synthesize(doc Document, page int, anchors resolve.AnchorMap, present map[resolve.Anchor]bool, log *slog.Logger) ([]Link, error) {
	text, err := doc.PageText(page)
	if err != nil {
		return nil, err
	}

	var synth []Link
	seen := make(map[string]bool)
	for _, m := range attachmentRef.FindAllStringSubmatch(text, -1) {
		number := m[1]
		if seen[number] {
			continue
		}
		seen[number] = true

		anchor := resolve.CoverAnchor(number)
		if present[anchor] {
			continue
		}
		actual, known := anchors[anchor]
		if !known {
			continue // cover never located; nothing to point at
		}

		rects, err := doc.Search(page, "Attachment "+number)
		if err != nil || len(rects) == 0 {
			log.Warn("could not locate text region for link synthesis",
				"page", page,
				"attachment", number,
				"error", err)
			continue
		}

		synth = append(synth, Link{
			Rect:   rects[0],
			Target: "#" + string(anchor),
			Dest:   actual,
		})
		log.Debug("synthesized link", "page", page, "attachment", number, "dest", actual)
	}
	return synth, nil
}

// symbolicAnchor parses a link's symbolic target into an anchor.
func symbolicAnchor(target string) (resolve.Anchor, bool) {
	s := strings.TrimPrefix(target, "#")
	switch {
	case s == "":
		return "", false
	case s == string(resolve.AnchorTitle),
		s == string(resolve.AnchorForeword),
		s == string(resolve.AnchorTOC):
		return resolve.Anchor(s), true
	case strings.HasPrefix(s, "cover-"):
		return resolve.Anchor(s), true
	}
	return "", false
}
