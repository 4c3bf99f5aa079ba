package cli

import (
	"strings"
	"testing"
)

func TestOutputTo(t *testing.T) {
	data := map[string]any{"pages": 11, "output": "merged.pdf"}

	t.Run("yaml", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(sb.String(), "pages: 11") {
			t.Errorf("missing yaml field in %q", sb.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(sb.String(), `"pages": 11`) {
			t.Errorf("missing json field in %q", sb.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var sb strings.Builder
		if err := OutputTo(&sb, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
