package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/sunr3d/tocbz/models"
)

type zipReader struct {
	rc  *zip.ReadCloser
	idx int
}

// OpenZip iterates a ZIP container by index in central directory order.
func OpenZip(path string) (EntryReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &zipReader{rc: rc}, nil
}

func (r *zipReader) Next() (*models.Entry, error) {
	for r.idx < len(r.rc.File) {
		f := r.rc.File[r.idx]
		r.idx++

		if f.FileInfo().IsDir() {
			continue
		}

		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, f.Name, err)
		}
		return &models.Entry{Name: normalizeName(f.Name), Data: data}, nil
	}
	return nil, io.EOF
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func (r *zipReader) Close() error {
	return r.rc.Close()
}
