package pdfio

import (
	"testing"
)

const sampleBBox = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<body>
<doc>
<page width="612.000000" height="792.000000">
  <word xMin="72.0" yMin="80.0" xMax="140.0" yMax="92.0">Attachment</word>
  <word xMin="144.0" yMin="80.0" xMax="158.0" yMax="92.0">14</word>
  <word xMin="300.0" yMin="80.0" xMax="320.0" yMax="92.0">50</word>
  <word xMin="72.0" yMin="100.0" xMax="140.0" yMax="112.0">Attachment</word>
  <word xMin="144.0" yMin="100.0" xMax="170.0" yMax="112.0">14.1</word>
</page>
</doc>
</body>
</html>`

func TestParseBoxes(t *testing.T) {
	pb, err := parseBoxes(sampleBBox)
	if err != nil {
		t.Fatalf("parseBoxes() error = %v", err)
	}
	if pb.height != 792 {
		t.Errorf("height = %f, want 792", pb.height)
	}
	if len(pb.words) != 5 {
		t.Fatalf("got %d words, want 5", len(pb.words))
	}
	if pb.words[1].text != "14" || pb.words[1].xMin != 144 {
		t.Errorf("unexpected word: %+v", pb.words[1])
	}
}

func TestMatchTokens(t *testing.T) {
	words := func(texts ...string) []word {
		out := make([]word, len(texts))
		for i, s := range texts {
			out[i].text = s
		}
		return out
	}

	tests := []struct {
		name   string
		words  []word
		tokens []string
		want   bool
	}{
		{"exact", words("Attachment", "14"), []string{"Attachment", "14"}, true},
		{"trailing colon", words("Attachment", "14:"), []string{"Attachment", "14"}, true},
		{"fractional is different", words("Attachment", "14.1"), []string{"Attachment", "14"}, false},
		{"longer number is different", words("Attachment", "141"), []string{"Attachment", "14"}, false},
		{"wrong word", words("Appendix", "14"), []string{"Attachment", "14"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchTokens(tt.words, tt.tokens); got != tt.want {
				t.Errorf("matchTokens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnionRect(t *testing.T) {
	ws := []word{
		{text: "Attachment", xMin: 72, yMin: 80, xMax: 140, yMax: 92},
		{text: "14", xMin: 144, yMin: 80, xMax: 158, yMax: 92},
	}

	r := unionRect(ws, 792)

	if r.Llx != 72 || r.Urx != 158 {
		t.Errorf("x range = [%f, %f], want [72, 158]", r.Llx, r.Urx)
	}
	// Top-origin y flips to bottom-origin.
	if r.Lly != 700 || r.Ury != 712 {
		t.Errorf("y range = [%f, %f], want [700, 712]", r.Lly, r.Ury)
	}
}
