package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestOutputName_File(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, "book.cbz"), OutputName(filepath.Join(dir, "book.zip"), false, DefaultSuffix))
	assert.Equal(t, filepath.Join(dir, "vol.1.cbz"), OutputName(filepath.Join(dir, "vol.1.rar"), false, DefaultSuffix))
	assert.Equal(t, filepath.Join(dir, ".hidden.cbz"), OutputName(filepath.Join(dir, ".hidden"), false, DefaultSuffix))
}

func TestOutputName_DirectoryAppends(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, "vol.1.cbz"), OutputName(filepath.Join(dir, "vol.1"), true, DefaultSuffix))
	assert.Equal(t, filepath.Join(dir, "comic.cbz"), OutputName(filepath.Join(dir, "comic")+"/", true, DefaultSuffix))
}

func TestOutputName_Collision(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "comic.cbz"))

	assert.Equal(t, filepath.Join(dir, "comic_new.cbz"), OutputName(filepath.Join(dir, "comic"), true, DefaultSuffix))
}

func TestOutputName_SourceIsItsOwnDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "comic.cbz")
	touch(t, src)

	assert.Equal(t, filepath.Join(dir, "comic_new.cbz"), OutputName(src, false, DefaultSuffix))
}

func TestNextFreeName_StrictlyGrowing(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "comic.cbz")
	touch(t, candidate)

	seen := map[string]bool{candidate: true}
	prev := candidate
	for i := 0; i < 5; i++ {
		next := NextFreeName(candidate, DefaultSuffix)

		assert.False(t, seen[next])
		assert.Greater(t, len(next), len(prev))
		_, err := os.Stat(next)
		assert.True(t, os.IsNotExist(err))

		seen[next] = true
		touch(t, next)
		prev = next
	}
	assert.FileExists(t, filepath.Join(dir, "comic_new_new_new_new_new.cbz"))
}

func TestNextFreeName_EmptySuffixFallsBack(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.cbz"))

	assert.Equal(t, filepath.Join(dir, "a_new.cbz"), NextFreeName(filepath.Join(dir, "a.cbz"), ""))
}
