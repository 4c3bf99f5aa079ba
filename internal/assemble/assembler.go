package assemble

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackzampolin/binder/internal/catalog"
)

// PDFOps is the physical PDF surface the assembler needs. Page numbers are
// 1-based and ranges inclusive, matching the underlying tooling.
type PDFOps interface {
	PageCount(path string) (int, error)
	ExtractPages(src, dst string, from, to int) error
	Merge(parts []string, dst string) error
}

// Input describes one assembly job.
type Input struct {
	TitlePath    string // optional front matter, empty if absent
	ForewordPath string // optional front matter, empty if absent
	TOCPath      string // rendered TOC/cover document, required
	Records      []catalog.Record
	Covers       map[string]int // cover page index per number, zero-based within the TOC document
}

// Result reports what was physically assembled. CoverPositions is the
// assembler's own bookkeeping; the resolver re-derives ground truth from the
// merged document afterwards.
type Result struct {
	OutputPath     string
	CoverPositions map[string]int
	FrontPages     int
	TOCDocPages    int
	TotalPages     int
	Placed         int
	Skipped        []string
}

// Assembler concatenates front matter and the TOC/cover document, then
// splices each attachment immediately after its cover page.
type Assembler struct {
	Ops      PDFOps
	InputDir string // root of language-keyed attachment files
	WorkDir  string // scratch space for extracted segments
	Logger   *slog.Logger
}

// placement is one attachment ready to splice, ordered by cover position.
type placement struct {
	number string
	path   string
	cover  int // zero-based page index within the TOC document
	pages  int
}

// Assemble builds the merged document at outPath. A missing or unreadable
// attachment is skipped with a warning, leaving its cover page orphaned; a
// missing TOC document is fatal.
func (a *Assembler) Assemble(in Input, outPath string) (*Result, error) {
	log := a.Logger
	if log == nil {
		log = slog.Default()
	}

	if _, err := os.Stat(in.TOCPath); err != nil {
		return nil, fmt.Errorf("table of contents PDF not found: %s", in.TOCPath)
	}
	tocPages, err := a.Ops.PageCount(in.TOCPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOC document %s: %w", in.TOCPath, err)
	}

	frontParts, frontPages, err := a.frontMatter(in)
	if err != nil {
		return nil, err
	}

	res := &Result{
		OutputPath:  outPath,
		FrontPages:  frontPages,
		TOCDocPages: tocPages,
	}

	// Live offset table over the initial page sequence: front matter first,
	// then the TOC/cover document.
	seq := NewSequence(frontPages + tocPages)
	for number, cover := range in.Covers {
		seq.Track("cover-"+number, frontPages+cover)
	}

	placements := a.collect(in, log, res)

	// Splice in ascending attachment number order; each insert shifts every
	// later tracked position by the attachment's page count.
	for _, p := range placements {
		coverPos, _ := seq.Pos("cover-" + p.number)
		insertAt := coverPos + 1
		log.Info("splicing attachment",
			"attachment", p.number,
			"pages", p.pages,
			"after_page", coverPos)
		seq.Insert(insertAt, p.pages)
		res.Placed++
	}

	if err := a.realize(in, frontParts, tocPages, placements, outPath); err != nil {
		return nil, err
	}

	res.TotalPages = seq.Len()
	res.CoverPositions = make(map[string]int, len(in.Covers))
	for number := range in.Covers {
		if pos, ok := seq.Pos("cover-" + number); ok {
			res.CoverPositions[number] = pos
		}
	}

	log.Info("assembly complete",
		"pages", res.TotalPages,
		"placed", res.Placed,
		"skipped", len(res.Skipped))
	return res, nil
}

// frontMatter validates optional title and foreword inputs and returns their
// paths plus combined page count.
func (a *Assembler) frontMatter(in Input) ([]string, int, error) {
	var parts []string
	pages := 0
	for _, path := range []string{in.TitlePath, in.ForewordPath} {
		if path == "" {
			continue
		}
		n, err := a.Ops.PageCount(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read front matter %s: %w", path, err)
		}
		parts = append(parts, path)
		pages += n
	}
	return parts, pages, nil
}

// collect resolves each record to a spliceable placement, skipping anything
// that cannot be placed. Results are in ascending attachment number order
// (records arrive sorted from the catalog).
func (a *Assembler) collect(in Input, log *slog.Logger, res *Result) []placement {
	var placements []placement
	for _, rec := range in.Records {
		cover, ok := in.Covers[rec.Number]
		if !ok {
			log.Warn("no cover page located, skipping attachment", "attachment", rec.Number)
			res.Skipped = append(res.Skipped, rec.Number)
			continue
		}
		if rec.Filename == "" {
			log.Warn("no filename in catalog, skipping attachment", "attachment", rec.Number)
			res.Skipped = append(res.Skipped, rec.Number)
			continue
		}
		path := rec.Path(a.InputDir)
		if _, err := os.Stat(path); err != nil {
			log.Warn("attachment file not found, skipping",
				"attachment", rec.Number,
				"path", path)
			res.Skipped = append(res.Skipped, rec.Number)
			continue
		}
		pages, err := a.Ops.PageCount(path)
		if err != nil {
			log.Warn("unreadable attachment PDF, skipping",
				"attachment", rec.Number,
				"path", path,
				"error", err)
			res.Skipped = append(res.Skipped, rec.Number)
			continue
		}
		placements = append(placements, placement{
			number: rec.Number,
			path:   path,
			cover:  cover,
			pages:  pages,
		})
	}
	return placements
}

// realize writes the physical document: the TOC document is cut at each cover
// boundary and the pieces are interleaved with attachment files in a single
// merge. Segment boundaries follow cover order within the TOC document, which
// may differ from attachment number order.
func (a *Assembler) realize(in Input, frontParts []string, tocPages int, placements []placement, outPath string) error {
	byCover := make([]placement, len(placements))
	copy(byCover, placements)
	sort.Slice(byCover, func(i, j int) bool { return byCover[i].cover < byCover[j].cover })

	parts := append([]string{}, frontParts...)

	segStart := 1 // 1-based within the TOC document
	for i, p := range byCover {
		segEnd := p.cover + 1 // the cover page itself, 1-based
		if segEnd >= segStart {
			seg := filepath.Join(a.WorkDir, fmt.Sprintf("toc-seg-%03d.pdf", i))
			if err := a.Ops.ExtractPages(in.TOCPath, seg, segStart, segEnd); err != nil {
				return fmt.Errorf("failed to extract TOC pages %d-%d: %w", segStart, segEnd, err)
			}
			parts = append(parts, seg)
		}
		parts = append(parts, p.path)
		segStart = segEnd + 1
	}
	if segStart <= tocPages {
		seg := filepath.Join(a.WorkDir, fmt.Sprintf("toc-seg-%03d.pdf", len(byCover)))
		if err := a.Ops.ExtractPages(in.TOCPath, seg, segStart, tocPages); err != nil {
			return fmt.Errorf("failed to extract TOC pages %d-%d: %w", segStart, tocPages, err)
		}
		parts = append(parts, seg)
	}

	if err := a.Ops.Merge(parts, outPath); err != nil {
		return fmt.Errorf("failed to merge document: %w", err)
	}
	return nil
}
