package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sunr3d/tocbz/models"
)

// EntryReader is an advance-only cursor over the regular files of a source.
// Next returns io.EOF once the source is exhausted.
type EntryReader interface {
	Next() (*models.Entry, error)
	Close() error
}

// Open selects the extraction strategy for kind.
func Open(path string, kind models.SourceKind) (EntryReader, error) {
	switch kind {
	case models.SourceKindDirectory:
		return OpenDir(path)
	case models.SourceKindZip:
		return OpenZip(path)
	case models.SourceKindRar:
		return OpenRar(path)
	case models.SourceKindSevenZip:
		return OpenSevenZip(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

// normalizeName turns any host or archive separator into '/'.
func normalizeName(name string) string {
	return strings.ReplaceAll(filepath.ToSlash(name), `\`, "/")
}
