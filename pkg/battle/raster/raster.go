package raster

import (
	"fmt"

	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
)

// ErrOutOfBounds is returned when a coordinate falls outside the raster.
type ErrOutOfBounds struct {
	X, Y          int
	Width, Height int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("pixel (%d, %d) is outside of %dx%d raster", e.X, e.Y, e.Width, e.Height)
}

func IsOutOfBounds(err error) bool {
	_, ok := err.(*ErrOutOfBounds)
	return ok
}

// ErrSizeMismatch is returned when initial bytes do not match the raster dimensions.
type ErrSizeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("raster has %d bytes, expected %d", e.Actual, e.Expected)
}

func IsSizeMismatch(err error) bool {
	_, ok := err.(*ErrSizeMismatch)
	return ok
}

// Raster is a mutable row-major RGBA grid. It is not safe for concurrent use.
type Raster struct {
	width  int
	height int
	pix    []byte
}

// New creates a width x height raster. A nil initial raster is filled with
// types.DefaultPixel; otherwise its length must be width*height*4. The initial
// bytes are copied.
func New(width, height int, initial []byte) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}

	size := width * height * types.BytesPerPixel
	if initial == nil {
		return &Raster{
			width:  width,
			height: height,
			pix:    Fill(width, height, types.DefaultPixel),
		}, nil
	}

	if len(initial) != size {
		return nil, &ErrSizeMismatch{Expected: size, Actual: len(initial)}
	}

	pix := make([]byte, size)
	copy(pix, initial)
	return &Raster{
		width:  width,
		height: height,
		pix:    pix,
	}, nil
}

// Fill returns a width x height raster buffer with every pixel set to p.
func Fill(width, height int, p types.Pixel) []byte {
	pix := make([]byte, width*height*types.BytesPerPixel)
	for i := 0; i < len(pix); i += types.BytesPerPixel {
		p.PutBytes(pix[i:])
	}
	return pix
}

func (r *Raster) Width() int {
	return r.width
}

func (r *Raster) Height() int {
	return r.height
}

// Contains reports whether (x, y) addresses a pixel of the raster.
func (r *Raster) Contains(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

func (r *Raster) offset(x, y int) int {
	return ((y * r.width) + x) * types.BytesPerPixel
}

// Set overwrites the pixel at (x, y).
func (r *Raster) Set(x, y int, p types.Pixel) error {
	if !r.Contains(x, y) {
		return &ErrOutOfBounds{X: x, Y: y, Width: r.width, Height: r.height}
	}
	p.PutBytes(r.pix[r.offset(x, y):])
	return nil
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) (types.Pixel, error) {
	if !r.Contains(x, y) {
		return types.Pixel{}, &ErrOutOfBounds{X: x, Y: y, Width: r.width, Height: r.height}
	}
	return types.PixelFromBytes(r.pix[r.offset(x, y):]), nil
}

// Bytes returns a copy of the whole raster.
func (r *Raster) Bytes() []byte {
	b := make([]byte, len(r.pix))
	copy(b, r.pix)
	return b
}
