// Package pipeline wires the binder stages together: catalog, layout
// estimation, TOC rendering, assembly, position resolution and reference
// patching. Stages run strictly sequentially; each consumes the previous
// stage's output on disk.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/jackzampolin/binder/internal/assemble"
	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/config"
	"github.com/jackzampolin/binder/internal/home"
	"github.com/jackzampolin/binder/internal/layout"
	"github.com/jackzampolin/binder/internal/patch"
	"github.com/jackzampolin/binder/internal/pdfio"
	"github.com/jackzampolin/binder/internal/render"
	"github.com/jackzampolin/binder/internal/resolve"
)

// Summary reports a full build or merge run.
type Summary struct {
	RunID            string   `json:"run_id" yaml:"run_id"`
	Attachments      int      `json:"attachments" yaml:"attachments"`
	Placed           int      `json:"placed" yaml:"placed"`
	Skipped          []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	LinksFixed       int      `json:"links_fixed" yaml:"links_fixed"`
	LinksSynthesized int      `json:"links_synthesized" yaml:"links_synthesized"`
	Bookmarks        int      `json:"bookmarks" yaml:"bookmarks"`
	BlankPages       int      `json:"blank_pages" yaml:"blank_pages"`
	Pages            int      `json:"pages" yaml:"pages"`
	Output           string   `json:"output" yaml:"output"`
}

// TOCSummary reports a TOC-only run.
type TOCSummary struct {
	RunID       string `json:"run_id" yaml:"run_id"`
	Attachments int    `json:"attachments" yaml:"attachments"`
	TOCPages    int    `json:"toc_pages" yaml:"toc_pages"`
	HTML        string `json:"html" yaml:"html"`
	Output      string `json:"output" yaml:"output"`
}

// Pipeline executes binder runs against one configuration.
type Pipeline struct {
	Config *config.Config
	Home   *home.Dir
	Ops    *pdfio.Ops
	Logger *slog.Logger
}

// New creates a Pipeline with a real PDF backend.
func New(cfg *config.Config, homeDir *home.Dir, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Home:   homeDir,
		Ops:    pdfio.NewOps(),
		Logger: logger,
	}
}

func (p *Pipeline) log() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// frontMatter holds the validated optional lead-in documents.
type frontMatter struct {
	titlePath     string
	forewordPath  string
	titlePages    int
	forewordPages int
}

// Run executes the full build: read the catalog, render the TOC/cover
// document, splice attachments behind their covers, then reconcile every
// link and bookmark against the pages where content actually landed.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.New().String()
	log := p.log().With("run_id", runID)

	records, err := p.readCatalog(log, catalog.RequiredForTOC, catalog.RequiredForMerge)
	if err != nil {
		return nil, err
	}

	fm, err := p.frontMatter(log)
	if err != nil {
		return nil, err
	}

	if _, err := p.renderTOC(ctx, log, records, fm); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return p.merge(ctx, runID, log, records, fm)
}

// RenderTOC executes only the TOC/cover generation stage.
func (p *Pipeline) RenderTOC(ctx context.Context) (*TOCSummary, error) {
	runID := uuid.New().String()
	log := p.log().With("run_id", runID)

	records, err := p.readCatalog(log, catalog.RequiredForTOC)
	if err != nil {
		return nil, err
	}

	fm, err := p.frontMatter(log)
	if err != nil {
		return nil, err
	}

	est, err := p.renderTOC(ctx, log, records, fm)
	if err != nil {
		return nil, err
	}

	return &TOCSummary{
		RunID:       runID,
		Attachments: len(records),
		TOCPages:    est.TOCPageCount,
		HTML:        p.Home.TOCHTMLPath(),
		Output:      p.Home.TOCPDFPath(),
	}, nil
}

// Merge executes the assembly and reconciliation stages against a previously
// rendered TOC/cover document.
func (p *Pipeline) Merge(ctx context.Context) (*Summary, error) {
	runID := uuid.New().String()
	log := p.log().With("run_id", runID)

	records, err := p.readCatalog(log, catalog.RequiredForMerge)
	if err != nil {
		return nil, err
	}

	fm, err := p.frontMatter(log)
	if err != nil {
		return nil, err
	}

	return p.merge(ctx, runID, log, records, fm)
}

// readCatalog loads records requiring the union of the given field sets.
func (p *Pipeline) readCatalog(log *slog.Logger, required ...[]catalog.Field) ([]catalog.Record, error) {
	seen := make(map[catalog.Field]bool)
	var fields []catalog.Field
	for _, set := range required {
		for _, f := range set {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}

	reader := &catalog.Reader{
		Path:   p.Home.SpreadsheetPath(),
		Sheet:  p.Config.Input.Sheet,
		Logger: log,
	}
	records, err := reader.Read(fields)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s has no usable attachment rows", p.Home.SpreadsheetPath())
	}
	return records, nil
}

// frontMatter validates the optional title and foreword PDFs. Absent files
// are logged and dropped, not fatal.
func (p *Pipeline) frontMatter(log *slog.Logger) (frontMatter, error) {
	var fm frontMatter

	path, pages, err := p.optionalPDF(log, p.Home.TitlePagePath(), "title page")
	if err != nil {
		return fm, err
	}
	fm.titlePath, fm.titlePages = path, pages

	path, pages, err = p.optionalPDF(log, p.Home.ForewordPath(), "foreword")
	if err != nil {
		return fm, err
	}
	fm.forewordPath, fm.forewordPages = path, pages

	return fm, nil
}

func (p *Pipeline) optionalPDF(log *slog.Logger, path, role string) (string, int, error) {
	if path == "" {
		return "", 0, nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn("optional front matter not found, continuing without it",
			"role", role,
			"path", path)
		return "", 0, nil
	}
	pages, err := p.Ops.PageCount(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s %s: %w", role, path, err)
	}
	return path, pages, nil
}

// renderTOC estimates the layout, builds the TOC/cover HTML and renders it
// to PDF. The HTML is kept beside the PDF as a debugging artifact.
func (p *Pipeline) renderTOC(ctx context.Context, log *slog.Logger, records []catalog.Record, fm frontMatter) (layout.Estimate, error) {
	estimator := layout.Estimator{
		EntriesPerPage: p.Config.TOC.EntriesPerPage,
		TitlePages:     fm.titlePages,
		ForewordPages:  fm.forewordPages,
	}
	est := estimator.Estimate(records)
	log.Info("layout estimated",
		"attachments", len(records),
		"toc_pages", est.TOCPageCount,
		"leading_pages", est.LeadingPages)

	if err := os.MkdirAll(p.Home.OutputDir(), 0o755); err != nil {
		return est, fmt.Errorf("failed to create output directory: %w", err)
	}

	html := render.BuildHTML(records, est)
	renderer := &render.Renderer{Command: p.Config.Renderer.HTMLCommand, Logger: log}
	if err := renderer.Render(ctx, html, p.Home.TOCHTMLPath(), p.Home.TOCPDFPath()); err != nil {
		return est, err
	}
	return est, nil
}

// merge assembles the final document into a temp file, reconciles links and
// bookmarks against it, then atomically replaces the output path.
func (p *Pipeline) merge(ctx context.Context, runID string, log *slog.Logger, records []catalog.Record, fm frontMatter) (*Summary, error) {
	if err := p.Home.EnsureOutputDirs(runID); err != nil {
		return nil, err
	}
	defer p.Home.CleanupWorkDir(runID)

	extractor := &pdfio.TextExtractor{Command: p.Config.Renderer.TextCommand}

	covers, err := p.locateCovers(log, records, extractor)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:       runID,
		Attachments: len(records),
		Output:      p.Home.MergedPath(),
	}

	err = pdfio.ReplaceFile(p.Home.MergedPath(), func(tmp string) error {
		assembler := &assemble.Assembler{
			Ops:      p.Ops,
			InputDir: p.Home.InputDir(),
			WorkDir:  p.Home.WorkDir(runID),
			Logger:   log,
		}
		asm, err := assembler.Assemble(assemble.Input{
			TitlePath:    fm.titlePath,
			ForewordPath: fm.forewordPath,
			TOCPath:      p.Home.TOCPDFPath(),
			Records:      records,
			Covers:       covers,
		}, tmp)
		if err != nil {
			return err
		}
		summary.Placed = asm.Placed
		summary.Skipped = asm.Skipped
		summary.Pages = asm.TotalPages

		if err := ctx.Err(); err != nil {
			return err
		}
		return p.reconcile(log, tmp, records, fm, extractor, summary)
	})
	if err != nil {
		return nil, err
	}

	log.Info("build complete",
		"output", summary.Output,
		"pages", summary.Pages,
		"links_fixed", summary.LinksFixed,
		"links_synthesized", summary.LinksSynthesized,
		"bookmarks", summary.Bookmarks)
	return summary, nil
}

// locateCovers scans the rendered TOC/cover document and maps each attachment
// number to its cover page index. A cover the scan cannot find means that
// attachment will be skipped at assembly.
func (p *Pipeline) locateCovers(log *slog.Logger, records []catalog.Record, extractor *pdfio.TextExtractor) (map[string]int, error) {
	tocPath := p.Home.TOCPDFPath()
	if _, err := os.Stat(tocPath); err != nil {
		return nil, fmt.Errorf("table of contents PDF not found, run the toc stage first: %s", tocPath)
	}

	src, err := pdfio.NewTextSource(tocPath, p.Ops, extractor)
	if err != nil {
		return nil, fmt.Errorf("failed to open TOC document %s: %w", tocPath, err)
	}

	res, err := resolve.Resolve(src, records, resolve.Options{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to scan TOC document: %w", err)
	}

	covers := make(map[string]int)
	for anchor, page := range res.Anchors {
		if number, ok := resolve.CoverNumber(anchor); ok {
			covers[number] = page
		}
	}
	log.Info("cover pages located", "found", len(covers), "missing", len(res.Missing))
	return covers, nil
}

// reconcile resolves actual anchor positions in the assembled document and
// patches links and bookmarks to match.
func (p *Pipeline) reconcile(log *slog.Logger, path string, records []catalog.Record, fm frontMatter, extractor *pdfio.TextExtractor, summary *Summary) error {
	src, err := pdfio.NewTextSource(path, p.Ops, extractor)
	if err != nil {
		return fmt.Errorf("failed to open assembled document: %w", err)
	}

	res, err := resolve.Resolve(src, records, resolve.Options{
		TitlePages:    fm.titlePages,
		ForewordPages: fm.forewordPages,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve page positions: %w", err)
	}
	summary.BlankPages = res.BlankPages

	doc, err := pdfio.OpenDocument(path, p.Ops, extractor)
	if err != nil {
		return fmt.Errorf("failed to open assembled document: %w", err)
	}

	patcher := &patch.Patcher{Logger: log}
	stats, err := patcher.Patch(doc, records, res)
	if err != nil {
		return err
	}
	summary.LinksFixed = stats.LinksFixed
	summary.LinksSynthesized = stats.LinksSynthesized
	summary.Bookmarks = stats.Bookmarks
	return nil
}
