package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/sunr3d/tocbz/models"
)

// TransformFunc rewrites one entry before it is written. It must not keep
// state between calls: it is shared by concurrent transcodes.
type TransformFunc func(data []byte, name string) ([]byte, string, error)

// Writer produces a CBZ. Entries go to a hidden temporary file in the
// destination directory; Commit renames it into place, Abort removes it.
type Writer struct {
	dest   string
	suffix string
	tmp    *os.File
	zw     *zip.Writer
	done   bool
}

// Create starts a CBZ that will be committed under dest. Entries are
// compressed with deflate at level.
func Create(dest, suffix string, level int) (*Writer, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	return &Writer{dest: dest, suffix: suffix, tmp: tmp, zw: zw}, nil
}

func (w *Writer) Write(e *models.Entry) error {
	if w.done {
		return ErrWriterClosed
	}

	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   normalizeName(e.Name),
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, e.Name, err)
	}
	if _, err := fw.Write(e.Data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, e.Name, err)
	}
	return nil
}

// Commit finalizes the archive and moves it to its destination. If another
// file or writer claimed the destination meanwhile, the next free name is
// used; the final path is returned.
func (w *Writer) Commit() (string, error) {
	if w.done {
		return "", ErrWriterClosed
	}
	w.done = true

	if err := w.finish(); err != nil {
		os.Remove(w.tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	dest, err := claim(w.tmp.Name(), w.dest, w.suffix)
	if err != nil {
		os.Remove(w.tmp.Name())
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return dest, nil
}

// claim moves tmp to the first free name derived from candidate without ever
// replacing an existing file. A hard link fails on an existing name; where
// links are unavailable the name is reserved with O_EXCL before the rename.
func claim(tmp, candidate, suffix string) (string, error) {
	for {
		dest := NextFreeName(candidate, suffix)

		err := os.Link(tmp, dest)
		if err == nil {
			os.Remove(tmp)
			return dest, nil
		}
		if errors.Is(err, fs.ErrExist) {
			candidate = dest
			continue
		}

		f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			candidate = dest
			continue
		}
		if err != nil {
			return "", err
		}
		f.Close()

		if err := os.Rename(tmp, dest); err != nil {
			os.Remove(dest)
			return "", err
		}
		return dest, nil
	}
}

func (w *Writer) finish() error {
	if err := w.zw.Close(); err != nil {
		w.tmp.Close()
		return err
	}
	if err := w.tmp.Sync(); err != nil {
		w.tmp.Close()
		return err
	}
	return w.tmp.Close()
}

// Abort discards everything written so far. It is a no-op after Commit.
func (w *Writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true

	return errors.Join(w.tmp.Close(), os.Remove(w.tmp.Name()))
}

// Copy drains r through fn into w, preserving read order. The first failing
// entry aborts the copy; the returned count is the number of entries written.
func Copy(ctx context.Context, r EntryReader, w *Writer, fn TransformFunc) (int, error) {
	if fn == nil {
		fn = func(data []byte, name string) ([]byte, string, error) { return data, name, nil }
	}

	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
		default:
		}

		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}

		data, name, err := fn(e.Data, e.Name)
		if err != nil {
			return n, fmt.Errorf("%w: %s: %v", ErrTransform, e.Name, err)
		}
		if err := w.Write(&models.Entry{Name: name, Data: data}); err != nil {
			return n, err
		}
		n++
	}
}
