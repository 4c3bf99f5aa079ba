// Package home resolves the binder working tree: where inputs are read
// from, where artifacts land, and where per-run scratch space lives.
package home

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackzampolin/binder/internal/config"
)

const (
	// DefaultDirName is the default name for the binder home directory.
	DefaultDirName = ".binder"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the binder home directory plus the configured input and
// output trees.
type Dir struct {
	path string
	cfg  *config.Config
}

// New creates a Dir for the given home path and configuration. If path is
// empty, ~/.binder is used.
func New(path string, cfg *config.Config) (*Dir, error) {
	if path == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(userHome, DefaultDirName)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dir{path: path, cfg: cfg}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// InputDir returns the root of the language-keyed attachment tree.
func (d *Dir) InputDir() string {
	return d.cfg.Input.Dir
}

// SpreadsheetPath returns the xlsx catalog location.
func (d *Dir) SpreadsheetPath() string {
	return d.cfg.Input.Spreadsheet
}

// TitlePagePath returns the optional title page PDF location.
func (d *Dir) TitlePagePath() string {
	return d.cfg.Input.TitlePage
}

// ForewordPath returns the optional foreword PDF location.
func (d *Dir) ForewordPath() string {
	return d.cfg.Input.Foreword
}

// OutputDir returns the artifact directory.
func (d *Dir) OutputDir() string {
	return d.cfg.Output.Dir
}

// MergedPath returns the canonical final document location.
func (d *Dir) MergedPath() string {
	return filepath.Join(d.cfg.Output.Dir, d.cfg.Output.Merged)
}

// TOCPDFPath returns the rendered TOC/cover document location.
func (d *Dir) TOCPDFPath() string {
	return filepath.Join(d.cfg.Output.Dir, d.cfg.Output.TOCPDF)
}

// TOCHTMLPath returns the HTML debugging artifact location.
func (d *Dir) TOCHTMLPath() string {
	return filepath.Join(d.cfg.Output.Dir, d.cfg.Output.TOCHTML)
}

// WorkDir returns per-run scratch space under the output directory.
func (d *Dir) WorkDir(runID string) string {
	return filepath.Join(d.cfg.Output.Dir, "work", runID)
}

// EnsureOutputDirs creates the output tree for a run.
func (d *Dir) EnsureOutputDirs(runID string) error {
	if err := os.MkdirAll(d.WorkDir(runID), 0o755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	return nil
}

// CleanupWorkDir removes a run's scratch space.
func (d *Dir) CleanupWorkDir(runID string) {
	os.RemoveAll(d.WorkDir(runID))
}
