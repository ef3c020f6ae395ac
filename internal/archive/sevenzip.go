package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/google/uuid"
)

const tempDirPrefix = ".tocbz-"

type sevenZipReader struct {
	EntryReader
	tmp string
}

// OpenSevenZip extracts the whole 7z payload into a uniquely named temporary
// directory beside the source and reads it back as a directory. Close removes
// the temporary directory; a failed open removes it before returning.
func OpenSevenZip(path string) (_ EntryReader, err error) {
	tmp := filepath.Join(filepath.Dir(filepath.Clean(path)), tempDirPrefix+uuid.NewString())
	if err := os.Mkdir(tmp, 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	if err := extractSevenZip(path, tmp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dir, err := OpenDir(tmp)
	if err != nil {
		return nil, err
	}
	return &sevenZipReader{EntryReader: dir, tmp: tmp}, nil
}

func extractSevenZip(path, dst string) error {
	rc, err := sevenzip.OpenReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	for _, f := range rc.File {
		if !filepath.IsLocal(f.Name) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}
		target := filepath.Join(dst, filepath.FromSlash(f.Name))

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if !f.FileInfo().Mode().IsRegular() {
			continue
		}
		if err := extractSevenZipFile(f, target); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func extractSevenZipFile(f *sevenzip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// a repeated name keeps its last occurrence
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (r *sevenZipReader) Close() error {
	return errors.Join(r.EntryReader.Close(), os.RemoveAll(r.tmp))
}
