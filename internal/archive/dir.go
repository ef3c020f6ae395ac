package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sunr3d/tocbz/models"
)

type dirReader struct {
	root  string
	files []string
	idx   int
}

// OpenDir lists the regular files under root in lexical walk order.
// A symlinked root is followed; symlinks and special files below it are skipped.
func OpenDir(root string) (EntryReader, error) {
	root, err := filepath.EvalSymlinks(filepath.Clean(root))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &dirReader{root: root, files: files}, nil
}

func (r *dirReader) Next() (*models.Entry, error) {
	if r.idx >= len(r.files) {
		return nil, io.EOF
	}
	p := r.files[r.idx]
	r.idx++

	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &models.Entry{Name: normalizeName(rel), Data: data}, nil
}

func (r *dirReader) Close() error {
	return nil
}
