package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestReplaceFile(t *testing.T) {
	t.Run("replaces target atomically", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "out.pdf")
		if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := ReplaceFile(target, func(tmp string) error {
			return os.WriteFile(tmp, []byte("new"), 0o644)
		})
		if err != nil {
			t.Fatalf("ReplaceFile() error = %v", err)
		}

		data, err := os.ReadFile(target)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new" {
			t.Errorf("target = %q, want %q", data, "new")
		}
		assertNoTempFiles(t, dir)
	})

	t.Run("keeps previous file and cleans temp on write failure", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "out.pdf")
		if err := os.WriteFile(target, []byte("known-good"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := ReplaceFile(target, func(tmp string) error {
			return fmt.Errorf("simulated save failure")
		})
		if err == nil {
			t.Fatal("expected error")
		}

		data, _ := os.ReadFile(target)
		if string(data) != "known-good" {
			t.Errorf("target corrupted: %q", data)
		}
		assertNoTempFiles(t, dir)
	})
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
