package transform

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const WebPExt = ".webp"

// Resizer downscales images taller than MaxHeight to exactly MaxHeight and
// re-encodes them as WebP. Anything that does not decode as an image is
// passed through.
type Resizer struct {
	MaxHeight int
}

func NewResizer(maxHeight int) *Resizer {
	if maxHeight < 1 {
		maxHeight = DefaultMaxHeight
	}
	return &Resizer{MaxHeight: maxHeight}
}

func (r *Resizer) Transform(data []byte, name string) ([]byte, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Height <= r.MaxHeight {
		return data, name, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, name, nil
	}

	width := ScaledWidth(cfg.Width, cfg.Height, r.MaxHeight)
	resized := imaging.Resize(img, width, r.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, resized, nil); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrEncode, name, err)
	}
	return buf.Bytes(), ReplaceExt(name, WebPExt), nil
}

// ScaledWidth keeps the aspect ratio when height shrinks to maxHeight.
// The result is rounded down and never below one pixel.
func ScaledWidth(width, height, maxHeight int) int {
	w := int(int64(width) * int64(maxHeight) / int64(height))
	if w < 1 {
		return 1
	}
	return w
}

// ReplaceExt swaps the extension of a slash-separated entry name.
func ReplaceExt(name, ext string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}
