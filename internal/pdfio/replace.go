package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReplaceFile atomically replaces target with whatever write produces.
// write receives a temporary path in target's directory; on success the temp
// file is renamed over target, and on every exit path the temp file is
// cleaned up. This is how the canonical output is persisted: target is never
// left half-written.
func ReplaceFile(target string, write func(tmp string) error) (err error) {
	dir := filepath.Dir(target)
	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmp := f.Name()
	f.Close()

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}
