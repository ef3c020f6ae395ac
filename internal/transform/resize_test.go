package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIdentity(t *testing.T) {
	data, name, err := Identity([]byte("abc"), "a/b.png")

	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, "a/b.png", name)
}

func TestSelect(t *testing.T) {
	data := pngBytes(t, 4, 40)

	out, name, err := Select(false, 10)(data, "01.png")
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "01.png", name)

	_, name, err = Select(true, 10)(data, "01.png")
	require.NoError(t, err)
	assert.Equal(t, "01.webp", name)
}

func TestResizer_AtThresholdPassesThrough(t *testing.T) {
	data := pngBytes(t, 2, DefaultMaxHeight)

	out, name, err := NewResizer(DefaultMaxHeight).Transform(data, "pages/01.png")

	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "pages/01.png", name)
}

func TestResizer_TallImageIsScaled(t *testing.T) {
	data := pngBytes(t, 30, 3000)

	out, name, err := NewResizer(DefaultMaxHeight).Transform(data, "pages/01.png")

	require.NoError(t, err)
	assert.Equal(t, "pages/01.webp", name)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxHeight, cfg.Height)
	assert.Equal(t, 25, cfg.Width)
}

func TestResizer_NonImagePassesThrough(t *testing.T) {
	data := bytes.Repeat([]byte("not an image "), 10000)

	out, name, err := NewResizer(DefaultMaxHeight).Transform(data, "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "notes.txt", name)
}

func TestResizer_Concurrent(t *testing.T) {
	r := NewResizer(16)
	data := pngBytes(t, 8, 64)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, _, err := r.Transform(data, "a.png")
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	wg.Wait()

	for _, out := range results[1:] {
		assert.Equal(t, results[0], out)
	}
}

func TestScaledWidth(t *testing.T) {
	tests := []struct {
		w, h, max, want int
	}{
		{30, 3000, 2560, 25},
		{2000, 3000, 2560, 1706},
		{1, 10000, 2560, 1},
		{4000, 5120, 2560, 2000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ScaledWidth(tt.w, tt.h, tt.max))
	}
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "a/01.webp", ReplaceExt("a/01.png", WebPExt))
	assert.Equal(t, "v.1/cover.webp", ReplaceExt("v.1/cover", WebPExt))
}

func TestNewResizer_DefaultHeight(t *testing.T) {
	assert.Equal(t, DefaultMaxHeight, NewResizer(0).MaxHeight)
}
