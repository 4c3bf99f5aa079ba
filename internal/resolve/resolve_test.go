package resolve

import (
	"testing"

	"github.com/jackzampolin/binder/internal/catalog"
)

// fakeSource serves canned page text.
type fakeSource struct {
	pages []string
}

func (f *fakeSource) PageCount() int                 { return len(f.pages) }
func (f *fakeSource) PageText(p int) (string, error) { return f.pages[p], nil }

func coverText(number, title string) string {
	return title + "\nAttachment " + number + "\nPage 7\n"
}

func TestResolve(t *testing.T) {
	records := []catalog.Record{
		{Number: "1", Title: "First"},
		{Number: "2", Title: "Second"},
	}

	t.Run("basic document", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"Table of Contents\nAttachment 1 First 2\nAttachment 2 Second 6\n",
			coverText("1", "First"),
			"first content",
			coverText("2", "Second"),
			"second content",
		}}

		res, err := Resolve(src, records, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if got := res.Anchors[AnchorTOC]; got != 0 {
			t.Errorf("TOC anchor = %d, want 0", got)
		}
		if got := res.Anchors[CoverAnchor("1")]; got != 1 {
			t.Errorf("cover 1 = %d, want 1", got)
		}
		if got := res.Anchors[CoverAnchor("2")]; got != 3 {
			t.Errorf("cover 2 = %d, want 3", got)
		}
		if len(res.Missing) != 0 {
			t.Errorf("unexpected missing covers: %v", res.Missing)
		}
	})

	t.Run("title and foreword are positional", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"CASE FILE 2024-117",
			"Foreword text",
			"Table of Contents\nAttachment 1 First 4\n",
			coverText("1", "First"),
		}}

		res, err := Resolve(src, records[:1], Options{TitlePages: 1, ForewordPages: 1})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if got, ok := res.Anchors[AnchorTitle]; !ok || got != 0 {
			t.Errorf("title anchor = %d (%v), want 0", got, ok)
		}
		if got, ok := res.Anchors[AnchorForeword]; !ok || got != 1 {
			t.Errorf("foreword anchor = %d (%v), want 1", got, ok)
		}
		if got := res.Anchors[AnchorTOC]; got != 2 {
			t.Errorf("TOC anchor = %d, want 2", got)
		}
	})

	t.Run("multi-page TOC via continuation shape", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"Table of Contents\nAttachment 1 First 3\n",
			"Attachment 2 Second 5\n",
			coverText("1", "First"),
			coverText("2", "Second"),
		}}

		res, err := Resolve(src, records, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if len(res.TOCPages) != 2 || res.TOCPages[0] != 0 || res.TOCPages[1] != 1 {
			t.Errorf("TOCPages = %v, want [0 1]", res.TOCPages)
		}
		if got := res.Anchors[CoverAnchor("1")]; got != 2 {
			t.Errorf("cover 1 = %d, want 2", got)
		}
	})

	t.Run("mention in body text does not steal the cover", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"Table of Contents\nAttachment 1 First 2\n",
			coverText("1", "First"),
			"line one\nline two\nline three\nline four\nline five\nsee Attachment 2 on Page 9",
			coverText("2", "Second"),
		}}

		res, err := Resolve(src, records, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if got := res.Anchors[CoverAnchor("2")]; got != 3 {
			t.Errorf("cover 2 = %d, want 3", got)
		}
	})

	t.Run("prefix numbers do not collide", func(t *testing.T) {
		recs := []catalog.Record{
			{Number: "1"},
			{Number: "14"},
			{Number: "14.1"},
		}
		src := &fakeSource{pages: []string{
			"Table of Contents\nAttachment 14 X 2\n",
			coverText("14", "Fourteen"),
			coverText("14.1", "Fourteen point one"),
			coverText("1", "One"),
		}}

		res, err := Resolve(src, recs, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if got := res.Anchors[CoverAnchor("14")]; got != 1 {
			t.Errorf("cover 14 = %d, want 1", got)
		}
		if got := res.Anchors[CoverAnchor("14.1")]; got != 2 {
			t.Errorf("cover 14.1 = %d, want 2", got)
		}
		if got := res.Anchors[CoverAnchor("1")]; got != 3 {
			t.Errorf("cover 1 = %d, want 3", got)
		}
	})

	t.Run("missing cover reported not fatal", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"Table of Contents\nAttachment 1 First 2\nAttachment 2 Second 4\n",
			coverText("1", "First"),
		}}

		res, err := Resolve(src, records, Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if _, ok := res.Anchors[CoverAnchor("2")]; ok {
			t.Error("expected no anchor for attachment 2")
		}
		if len(res.Missing) != 1 || res.Missing[0] != "2" {
			t.Errorf("Missing = %v, want [2]", res.Missing)
		}
	})

	t.Run("blank pages counted", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			"Table of Contents\n",
			"",
			coverText("1", "First"),
			"   \n",
		}}

		res, err := Resolve(src, records[:1], Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if res.BlankPages != 2 {
			t.Errorf("BlankPages = %d, want 2", res.BlankPages)
		}
	})

	t.Run("first cover wins", func(t *testing.T) {
		src := &fakeSource{pages: []string{
			coverText("1", "First"),
			coverText("1", "First duplicate"),
		}}

		res, err := Resolve(src, records[:1], Options{})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		if got := res.Anchors[CoverAnchor("1")]; got != 0 {
			t.Errorf("cover 1 = %d, want 0", got)
		}
	})
}

func TestCoverAnchor(t *testing.T) {
	a := CoverAnchor("14.1")
	if a != Anchor("cover-14.1") {
		t.Errorf("CoverAnchor = %s", a)
	}
	number, ok := CoverNumber(a)
	if !ok || number != "14.1" {
		t.Errorf("CoverNumber = %s, %v", number, ok)
	}
	if _, ok := CoverNumber(AnchorTOC); ok {
		t.Error("AnchorTOC should not parse as cover")
	}
}
