package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/avast/retry-go/v4"
)

// DefaultCommand is the HTML-to-PDF renderer invoked when none is
// configured.
const DefaultCommand = "weasyprint"

// renderAttempts bounds retries of the external renderer, which occasionally
// fails on cold font caches.
const renderAttempts = 3

// Renderer shells out to an external HTML-to-PDF engine. The engine is a
// black box: given HTML it produces a paginated PDF, and that is the entire
// contract.
type Renderer struct {
	Command string // renderer binary, DefaultCommand if empty
	Logger  *slog.Logger
}

// Render writes html to htmlPath (kept as a debugging artifact) and renders
// it to pdfPath.
func (r *Renderer) Render(ctx context.Context, html, htmlPath, pdfPath string) error {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML artifact: %w", err)
	}
	log.Debug("wrote HTML artifact", "path", htmlPath)

	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	err := retry.Do(
		func() error {
			cmd := exec.CommandContext(ctx, command, htmlPath, pdfPath)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr
			if err := cmd.Run(); err != nil {
				return fmt.Errorf("%s failed: %w (stderr: %s)", command, err, stderr.String())
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(renderAttempts),
		retry.Delay(500*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("renderer failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", pdfPath, err)
	}

	log.Info("rendered TOC and cover pages", "pdf", pdfPath)
	return nil
}
