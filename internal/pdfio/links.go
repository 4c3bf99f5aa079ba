package pdfio

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jackzampolin/binder/internal/patch"
)

// Links reads the link annotations of a zero-based page. Symbolic targets
// round-trip through the annotation's NM identifier so a link keeps its
// identity after its URI action is replaced by a page destination.
func (o *Ops) Links(path string, page int) ([]patch.Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	annots, err := api.Annotations(f, pageSelection(page), o.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations of page %d: %w", page, err)
	}

	pgAnnots, ok := annots[page+1]
	if !ok {
		return nil, nil
	}
	linkAnnots, ok := pgAnnots[model.AnnLink]
	if !ok {
		return nil, nil
	}

	var links []patch.Link
	for _, renderer := range linkAnnots.Map {
		la, ok := renderer.(model.LinkAnnotation)
		if !ok {
			continue
		}

		link := patch.Link{
			Rect: patch.Rect{
				Llx: la.Rect.LL.X,
				Lly: la.Rect.LL.Y,
				Urx: la.Rect.UR.X,
				Ury: la.Rect.UR.Y,
			},
			Dest: -1,
		}
		switch {
		case la.URI != "":
			link.Target = la.URI
		case la.Dest != nil:
			link.Target = la.NM
			link.Dest = la.Dest.PageNr - 1
		default:
			continue
		}
		links = append(links, link)
	}
	return links, nil
}

// SetLinks replaces the full link annotation set of a zero-based page.
// Stale links are removed rather than accumulated; documents reprocessed
// from earlier runs may carry duplicates otherwise.
func (o *Ops) SetLinks(path string, page int, links []patch.Link) error {
	sel := pageSelection(page)

	// Removing from a page that has no link annotations is an error in
	// pdfcpu, so only remove when something is there.
	existing, err := o.Links(path, page)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if err := api.RemoveAnnotationsFile(path, "", sel, []string{"Link"}, nil, o.conf, false); err != nil {
			return fmt.Errorf("failed to remove stale links on page %d: %w", page, err)
		}
	}

	for _, link := range links {
		ann := newLinkAnnotation(link)
		if err := api.AddAnnotationsFile(path, "", sel, ann, o.conf, false); err != nil {
			return fmt.Errorf("failed to add link %q on page %d: %w", link.Target, page, err)
		}
	}
	return nil
}

// newLinkAnnotation builds the pdfcpu annotation for a link. Resolved links
// become page destinations carrying their symbolic target as the annotation
// identifier; unresolved ones stay URI actions.
func newLinkAnnotation(link patch.Link) model.LinkAnnotation {
	rect := types.NewRectangle(link.Rect.Llx, link.Rect.Lly, link.Rect.Urx, link.Rect.Ury)

	var dest *model.Destination
	uri := link.Target
	id := ""
	if link.Dest >= 0 {
		dest = &model.Destination{Typ: model.DestFit, PageNr: link.Dest + 1}
		uri = ""
		id = link.Target
	}

	return model.NewLinkAnnotation(
		*rect,
		0,   // appearance object number
		"",  // contents
		id,  // NM
		"",  // modification date
		0,   // annotation flags
		nil, // border color
		dest,
		uri,
		nil,   // quad points
		false, // border
		0,     // border width
		model.BSSolid,
	)
}
