package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode"

	"github.com/sunr3d/tocbz/models"
)

// headerCursor is the streaming view of a RAR container: Next moves to the
// following header and Read yields the content of the current one.
type headerCursor interface {
	io.Reader
	Next() (*rardecode.FileHeader, error)
}

type rarReader struct {
	cur    headerCursor
	closer io.Closer
}

// OpenRar opens a RAR container for sequential reading. Entries come out in
// storage order; there is no random access.
func OpenRar(path string) (EntryReader, error) {
	rc, err := rardecode.OpenReader(path, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return newRarReader(rc, rc), nil
}

func newRarReader(cur headerCursor, closer io.Closer) *rarReader {
	return &rarReader{cur: cur, closer: closer}
}

func (r *rarReader) Next() (*models.Entry, error) {
	for {
		h, err := r.cur.Next()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		// directory contents are skipped by the next header advance
		if h.IsDir {
			continue
		}

		data, err := io.ReadAll(r.cur)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, h.Name, err)
		}
		return &models.Entry{Name: normalizeName(h.Name), Data: data}, nil
	}
}

func (r *rarReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
