package publish

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write serializes the records to path, replacing any existing file. The
// new content is written to a temporary file in the same directory and
// renamed over the target so consumers never observe a partial manifest.
func Write(path string, records []Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".extensions-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary extension manifest: %w", err)
	}
	tmpPath := tmp.Name()

	for _, record := range records {
		if _, err := fmt.Fprintln(tmp, record.Line()); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write extension manifest: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write extension manifest: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("unable to replace file '%s': %w", path, err)
	}
	return nil
}
