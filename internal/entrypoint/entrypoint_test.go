package entrypoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sunr3d/tocbz/internal/config"
	"github.com/sunr3d/tocbz/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Workers:          2,
		MaxHeight:        2560,
		CollisionSuffix:  "_new",
		OldDir:           "old",
		CompressionLevel: 6,
	}
}

func TestRun_NoPaths(t *testing.T) {
	_, err := Run(context.Background(), testConfig(), zaptest.NewLogger(t), nil)

	assert.ErrorIs(t, err, ErrNoPaths)
}

func TestRun_UnsupportedIsNotFailure(t *testing.T) {
	dir := t.TempDir()
	comic := filepath.Join(dir, "comic")
	require.NoError(t, os.MkdirAll(comic, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(comic, "01.png"), []byte("x"), 0644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))

	outcomes, err := Run(context.Background(), testConfig(), zaptest.NewLogger(t), []string{comic, txt})

	require.NoError(t, err)
	assert.Len(t, outcomes, 2)
	assert.FileExists(t, filepath.Join(dir, "comic.cbz"))
}

func TestRun_FailureIsReported(t *testing.T) {
	dir := t.TempDir()

	outcomes, err := Run(context.Background(), testConfig(), zaptest.NewLogger(t), []string{filepath.Join(dir, "missing")})

	assert.ErrorIs(t, err, ErrSomeFailed)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.OutcomeStatusFailed, outcomes[0].Status)
}
