package pdfio

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jackzampolin/binder/internal/patch"
)

// word is one positioned token from pdftotext's bbox output. Coordinates are
// top-left origin in PDF points, y growing downward.
type word struct {
	text                   string
	xMin, yMin, xMax, yMax float64
}

// pageBoxes is the parsed bbox output for one page.
type pageBoxes struct {
	height float64
	words  []word
}

// extractBoxes runs pdftotext -bbox for one zero-based page and parses the
// XHTML it emits.
func (e *TextExtractor) extractBoxes(path string, page int) (*pageBoxes, error) {
	p := strconv.Itoa(page + 1)
	cmd := exec.Command(e.command(), "-bbox", "-f", p, "-l", p, path, "-")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext -bbox failed for page %d of %s: %w (stderr: %s)",
			page, path, err, stderr.String())
	}
	return parseBoxes(out.String())
}

// parseBoxes pulls the first page's dimensions and word boxes out of
// pdftotext bbox XHTML.
func parseBoxes(xhtml string) (*pageBoxes, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(xhtml))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bbox output: %w", err)
	}

	pb := &pageBoxes{}
	pageSel := doc.Find("page").First()
	if h, ok := pageSel.Attr("height"); ok {
		pb.height, _ = strconv.ParseFloat(h, 64)
	}

	pageSel.Find("word").Each(func(_ int, s *goquery.Selection) {
		attr := func(name string) float64 {
			v, _ := s.Attr(name)
			f, _ := strconv.ParseFloat(v, 64)
			return f
		}
		pb.words = append(pb.words, word{
			text: strings.TrimSpace(s.Text()),
			xMin: attr("xmin"),
			yMin: attr("ymin"),
			xMax: attr("xmax"),
			yMax: attr("ymax"),
		})
	})
	return pb, nil
}

// Search finds the bounding rectangles of needle on a zero-based page.
// Needle is matched token-wise against consecutive words; trailing
// punctuation on the final word is tolerated so "Attachment 14" matches an
// "Attachment 14:" TOC row but never "Attachment 14.1" or "Attachment 141".
func (s *TextSource) Search(page int, needle string) ([]patch.Rect, error) {
	boxes, err := s.extractor.extractBoxes(s.path, page)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(needle)
	if len(tokens) == 0 {
		return nil, nil
	}

	var rects []patch.Rect
	for i := 0; i+len(tokens) <= len(boxes.words); i++ {
		if !matchTokens(boxes.words[i:i+len(tokens)], tokens) {
			continue
		}
		rects = append(rects, unionRect(boxes.words[i:i+len(tokens)], boxes.height))
	}
	return rects, nil
}

func matchTokens(words []word, tokens []string) bool {
	for i, tok := range tokens {
		w := words[i].text
		if w == tok {
			continue
		}
		// Final token may carry row punctuation.
		if i == len(tokens)-1 && strings.TrimRight(w, ":,;") == tok {
			continue
		}
		return false
	}
	return true
}

// unionRect converts a run of top-origin word boxes into one bottom-origin
// PDF rectangle.
func unionRect(words []word, pageHeight float64) patch.Rect {
	r := patch.Rect{
		Llx: words[0].xMin,
		Lly: pageHeight - words[0].yMax,
		Urx: words[0].xMax,
		Ury: pageHeight - words[0].yMin,
	}
	for _, w := range words[1:] {
		r.Llx = min(r.Llx, w.xMin)
		r.Lly = min(r.Lly, pageHeight-w.yMax)
		r.Urx = max(r.Urx, w.xMax)
		r.Ury = max(r.Ury, pageHeight-w.yMin)
	}
	return r
}
