package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunr3d/tocbz/models"
)

// Sniff classifies path. A readable ZIP container wins over any extension,
// so misnamed archives are still handled as ZIP.
func Sniff(path string) (models.SourceKind, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}
	if info.IsDir() {
		return models.SourceKindDirectory, nil
	}

	ok, err := isZip(path, info.Size())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}
	if ok {
		return models.SourceKindZip, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".rar":
		return models.SourceKindRar, nil
	case ".7z":
		return models.SourceKindSevenZip, nil
	}
	return models.SourceKindUnsupported, nil
}

func isZip(path string, size int64) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = zip.NewReader(f, size)
	if err == nil || errors.Is(err, zip.ErrInsecurePath) {
		return true, nil
	}
	return false, nil
}
