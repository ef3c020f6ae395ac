package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

const DefaultOldDir = "old"

// Relocate moves a finished source into <parent>/<oldDir>/, creating the
// directory when needed. An existing file of the same name is never replaced.
func Relocate(path, oldDir string) (string, error) {
	if oldDir == "" {
		oldDir = DefaultOldDir
	}
	path = filepath.Clean(path)

	dir := filepath.Join(filepath.Dir(path), oldDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelocation, err)
	}

	target := filepath.Join(dir, filepath.Base(path))
	if exists(target) {
		return "", fmt.Errorf("%w: %w: %s", ErrRelocation, ErrTargetExists, target)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRelocation, err)
	}
	return target, nil
}
