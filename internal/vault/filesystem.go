package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemSink stores snapshots as files under <root>/fixtures/.
type FileSystemSink struct {
	root        string
	fixturesDir string
}

// NewFileSystemSink creates a filesystem sink rooted at the given path.
func NewFileSystemSink(root string) (*FileSystemSink, error) {
	fixturesDir := filepath.Join(root, "fixtures")
	if err := os.MkdirAll(fixturesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create fixtures directory: %w", err)
	}
	return &FileSystemSink{root: root, fixturesDir: fixturesDir}, nil
}

// PutSnapshot writes the snapshot via a temp file and renames it into
// place, so a partially written snapshot is never visible under its final
// name.
func (s *FileSystemSink) PutSnapshot(_ context.Context, name string, r io.Reader, size int64) error {
	tmp, err := os.CreateTemp(s.fixturesDir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	destPath := filepath.Join(s.fixturesDir, name)
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}
