package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"golang.org/x/image/draw"
)

// MaxPreviewWidth caps the width of rendered previews.
const MaxPreviewWidth = 4096

// Image wraps a row-major RGBA raster without copying it.
func Image(width, height int, raster []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if want := width * height * types.BytesPerPixel; len(raster) != want {
		return nil, fmt.Errorf("raster has %d bytes, expected %d", len(raster), want)
	}
	return &image.NRGBA{
		Pix:    raster,
		Stride: width * types.BytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Scale resizes a raster image to targetWidth keeping its aspect ratio.
// Pixels are sampled with nearest neighbor so that single pixels stay crisp.
// A non-positive targetWidth keeps the original size.
func Scale(src *image.NRGBA, targetWidth int) *image.NRGBA {
	bounds := src.Bounds()
	if targetWidth <= 0 || targetWidth == bounds.Dx() {
		return src
	}
	if targetWidth > MaxPreviewWidth {
		targetWidth = MaxPreviewWidth
	}
	targetHeight := max(1, (bounds.Dy()*targetWidth+bounds.Dx()/2)/bounds.Dx())

	dst := image.NewNRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// Preview writes a PNG of the raster scaled to targetWidth.
func Preview(w io.Writer, width, height int, raster []byte, targetWidth int) error {
	img, err := Image(width, height, raster)
	if err != nil {
		return fmt.Errorf("failed to read raster: %v", err)
	}

	if err := png.Encode(w, Scale(img, targetWidth)); err != nil {
		return fmt.Errorf("failed to encode png: %v", err)
	}

	return nil
}
