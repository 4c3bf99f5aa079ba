package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TOC.EntriesPerPage != 25 {
		t.Errorf("EntriesPerPage = %d, want 25", cfg.TOC.EntriesPerPage)
	}
	if cfg.Input.Sheet != "Attachments Prep" {
		t.Errorf("Sheet = %q", cfg.Input.Sheet)
	}
	if cfg.Renderer.HTMLCommand != "weasyprint" || cfg.Renderer.TextCommand != "pdftotext" {
		t.Errorf("renderer commands = %+v", cfg.Renderer)
	}
	if cfg.Output.Merged != "merged-attachments.pdf" {
		t.Errorf("Merged = %q", cfg.Output.Merged)
	}
}

func TestNewManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "toc:\n  entries_per_page: 40\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := cm.Get()
	if cfg.TOC.EntriesPerPage != 40 {
		t.Errorf("EntriesPerPage = %d, want 40 from file", cfg.TOC.EntriesPerPage)
	}
	if cfg.Input.Sheet != "Attachments Prep" {
		t.Errorf("Sheet = %q, want default", cfg.Input.Sheet)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Binder configuration") {
		t.Error("missing header comment")
	}
	for _, want := range []string{"entries_per_page: 25", "sheet: Attachments Prep", "html_command: weasyprint"} {
		if !strings.Contains(content, want) {
			t.Errorf("missing %q in written config", want)
		}
	}
}
