package archive

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	CBZExt        = ".cbz"
	DefaultSuffix = "_new"
)

// OutputName derives the destination archive path for a source: the extension
// is replaced for files and appended for directories. The result never names an
// existing file.
func OutputName(path string, isDir bool, suffix string) string {
	path = filepath.Clean(path)

	candidate := path + CBZExt
	if !isDir {
		candidate = filepath.Join(filepath.Dir(path), stem(filepath.Base(path))+CBZExt)
	}
	return NextFreeName(candidate, suffix)
}

// NextFreeName appends suffix to the stem of candidate until nothing exists
// under that name. Every retry lengthens the stem, so the loop terminates.
func NextFreeName(candidate, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	for exists(candidate) {
		dir, base := filepath.Split(candidate)
		candidate = filepath.Join(dir, stem(base)+suffix+CBZExt)
	}
	return candidate
}

// stem strips the last extension. Dotfiles like ".cache" keep their name.
func stem(base string) string {
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
