package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunr3d/tocbz/models"
)

type testFile struct {
	name string
	data string
}

// writeZip builds a ZIP at path; names ending in '/' become directory entries.
func writeZip(t *testing.T, path string, files []testFile) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, tf := range files {
		w, err := zw.Create(tf.name)
		require.NoError(t, err)
		if tf.data != "" {
			_, err = w.Write([]byte(tf.data))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
}

func writeTree(t *testing.T, root string, files []testFile) {
	t.Helper()

	for _, tf := range files {
		p := filepath.Join(root, filepath.FromSlash(tf.name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(tf.data), 0644))
	}
}

// readZip returns the entries of a ZIP file in container order.
func readZip(t *testing.T, path string) []testFile {
	t.Helper()

	rc, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer rc.Close()

	var out []testFile
	for _, f := range rc.File {
		r, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		r.Close()
		require.NoError(t, err)
		out = append(out, testFile{name: f.Name, data: string(data)})
	}
	return out
}

func drain(t *testing.T, r EntryReader) []*models.Entry {
	t.Helper()

	var out []*models.Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, e)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
