package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/pdfio"
	"github.com/jackzampolin/binder/internal/resolve"
)

// CheckReport describes the navigation state of an assembled document.
type CheckReport struct {
	Path          string   `json:"path" yaml:"path"`
	Pages         int      `json:"pages" yaml:"pages"`
	TOCPages      []int    `json:"toc_pages" yaml:"toc_pages"`
	BlankPages    int      `json:"blank_pages" yaml:"blank_pages"`
	MissingCovers []string `json:"missing_covers,omitempty" yaml:"missing_covers,omitempty"`
	Links         int      `json:"links" yaml:"links"`
	Correct       int      `json:"correct" yaml:"correct"`
	Stale         int      `json:"stale" yaml:"stale"`
	External      int      `json:"external" yaml:"external"`
	Unresolved    []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// OK reports whether the document needs no repair.
func (r *CheckReport) OK() bool {
	return r.Stale == 0 && len(r.Unresolved) == 0 && len(r.MissingCovers) == 0
}

// Check inspects the assembled document without modifying it: it re-derives
// anchor positions from page text and verifies every internal link against
// them. Stale or unresolvable links mean the patch stage needs to run again.
func (p *Pipeline) Check() (*CheckReport, error) {
	log := p.log()

	records, err := p.readCatalog(log, catalog.RequiredForTOC)
	if err != nil {
		return nil, err
	}

	fm, err := p.frontMatter(log)
	if err != nil {
		return nil, err
	}

	path := p.Home.MergedPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("merged document not found: %s", path)
	}

	extractor := &pdfio.TextExtractor{Command: p.Config.Renderer.TextCommand}
	src, err := pdfio.NewTextSource(path, p.Ops, extractor)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	res, err := resolve.Resolve(src, records, resolve.Options{
		TitlePages:    fm.titlePages,
		ForewordPages: fm.forewordPages,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Path:          path,
		Pages:         src.PageCount(),
		TOCPages:      res.TOCPages,
		BlankPages:    res.BlankPages,
		MissingCovers: res.Missing,
	}

	for page := 0; page < src.PageCount(); page++ {
		links, err := p.Ops.Links(path, page)
		if err != nil {
			log.Warn("failed to read links", "page", page, "error", err)
			continue
		}
		for _, link := range links {
			report.Links++
			if !strings.HasPrefix(link.Target, "#") {
				report.External++
				continue
			}
			anchor := resolve.Anchor(strings.TrimPrefix(link.Target, "#"))
			actual, ok := res.Anchors[anchor]
			if !ok {
				report.Unresolved = append(report.Unresolved, link.Target)
				continue
			}
			if link.Dest == actual {
				report.Correct++
			} else {
				report.Stale++
			}
		}
	}

	log.Info("check complete",
		"links", report.Links,
		"correct", report.Correct,
		"stale", report.Stale,
		"unresolved", len(report.Unresolved))
	return report, nil
}
