package render

import (
	"strings"
	"testing"

	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/layout"
)

func TestBuildHTML(t *testing.T) {
	records := []catalog.Record{
		{Number: "1", Title: "First <Report>", PageCount: 3, Date: "2024-01-15"},
		{Number: "14.1", Title: "Exhibit & Annex", PageCount: 2},
	}
	est := layout.Estimator{EntriesPerPage: 25}.Estimate(records)

	html := BuildHTML(records, est)

	t.Run("toc rows link to cover anchors", func(t *testing.T) {
		for _, want := range []string{`href="#cover-1"`, `href="#cover-14.1"`} {
			if !strings.Contains(html, want) {
				t.Errorf("missing %s", want)
			}
		}
		if !strings.Contains(html, "Table of Contents") {
			t.Error("missing TOC heading")
		}
	})

	t.Run("cover pages carry the resolver patterns", func(t *testing.T) {
		for _, want := range []string{
			`id="cover-1"`,
			">Attachment 1<",
			">Page 2<",
			`id="cover-14.1"`,
			">Attachment 14.1<",
			">Page 6<",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("missing %s", want)
			}
		}
	})

	t.Run("metadata escaped and rendered", func(t *testing.T) {
		if !strings.Contains(html, "First &lt;Report&gt;") {
			t.Error("title not escaped")
		}
		if !strings.Contains(html, "Exhibit &amp; Annex") {
			t.Error("ampersand not escaped")
		}
		if !strings.Contains(html, "Date: 2024-01-15") {
			t.Error("date metadata missing")
		}
	})

	t.Run("estimated pages come from the estimator", func(t *testing.T) {
		if est.CoverPages["1"] != 2 || est.CoverPages["14.1"] != 6 {
			t.Fatalf("estimate changed: %v", est.CoverPages)
		}
	})
}
