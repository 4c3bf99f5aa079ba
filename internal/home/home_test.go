package home

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/binder/internal/config"
)

func TestDirPaths(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = "out"

	d, err := New("/tmp/binder-home", cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := d.MergedPath(); got != filepath.Join("out", "merged-attachments.pdf") {
		t.Errorf("MergedPath() = %s", got)
	}
	if got := d.TOCPDFPath(); got != filepath.Join("out", "toc-coverpage.pdf") {
		t.Errorf("TOCPDFPath() = %s", got)
	}
	if got := d.ConfigPath(); got != filepath.Join("/tmp/binder-home", "config.yaml") {
		t.Errorf("ConfigPath() = %s", got)
	}
	if got := d.WorkDir("run1"); got != filepath.Join("out", "work", "run1") {
		t.Errorf("WorkDir() = %s", got)
	}
}

func TestEnsureOutputDirs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	d, err := New("", cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := d.EnsureOutputDirs("abc"); err != nil {
		t.Fatalf("EnsureOutputDirs() error = %v", err)
	}
	if _, err := os.Stat(d.WorkDir("abc")); err != nil {
		t.Errorf("work dir not created: %v", err)
	}

	d.CleanupWorkDir("abc")
	if _, err := os.Stat(d.WorkDir("abc")); err == nil {
		t.Error("work dir not removed")
	}
}
