package pdfio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/binder/internal/patch"
)

// writeSinglePagePDF writes a minimal one-page PDF with correct xref offsets.
func writeSinglePagePDF(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n",
	}
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLinksRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	writeSinglePagePDF(t, path)
	ops := NewOps()

	links, err := ops.Links(path, 0)
	if err != nil {
		t.Fatalf("Links() on fresh document error = %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("Links() on fresh document = %d links, want 0", len(links))
	}

	want := []patch.Link{
		{
			Rect:   patch.Rect{Llx: 50, Lly: 700, Urx: 200, Ury: 715},
			Target: "#cover-3",
			Dest:   0,
		},
		{
			Rect:   patch.Rect{Llx: 50, Lly: 650, Urx: 200, Ury: 665},
			Target: "https://example.com/source",
			Dest:   -1,
		},
	}
	if err := ops.SetLinks(path, 0, want); err != nil {
		t.Fatalf("SetLinks() error = %v", err)
	}

	got, err := ops.Links(path, 0)
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Links() = %d links, want %d", len(got), len(want))
	}

	byTarget := make(map[string]patch.Link, len(got))
	for _, l := range got {
		byTarget[l.Target] = l
	}
	goto3, ok := byTarget["#cover-3"]
	if !ok {
		t.Fatal("symbolic target did not survive the round trip")
	}
	if goto3.Dest != 0 {
		t.Errorf("goto link Dest = %d, want 0", goto3.Dest)
	}
	uri, ok := byTarget["https://example.com/source"]
	if !ok {
		t.Fatal("URI target did not survive the round trip")
	}
	if uri.Dest != -1 {
		t.Errorf("uri link Dest = %d, want -1", uri.Dest)
	}

	// Replacing again must not accumulate annotations.
	replacement := []patch.Link{{
		Rect:   patch.Rect{Llx: 50, Lly: 700, Urx: 200, Ury: 715},
		Target: "#toc",
		Dest:   0,
	}}
	if err := ops.SetLinks(path, 0, replacement); err != nil {
		t.Fatalf("SetLinks() replacement error = %v", err)
	}
	got, err = ops.Links(path, 0)
	if err != nil {
		t.Fatalf("Links() after replacement error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Links() after replacement = %d links, want 1", len(got))
	}
	if got[0].Target != "#toc" || got[0].Dest != 0 {
		t.Errorf("replacement link = %+v", got[0])
	}
}
