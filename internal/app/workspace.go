package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// workspaceDirs is the directory tree the CLI under test expects to find
// under the workspace root. The database file lives under data/.
var workspaceDirs = []string{
	"config",
	"themes",
	"themes/custom",
	"data",
	"logs",
	"runtime",
	"temp",
}

// EnsureWorkspace creates the workspace directory tree. Idempotent.
func EnsureWorkspace(root string) error {
	for _, dir := range workspaceDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return fmt.Errorf("creating workspace directory %s: %w", dir, err)
		}
	}
	return nil
}
