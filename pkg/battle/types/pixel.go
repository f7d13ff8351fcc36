package types

// BytesPerPixel is the width of one pixel in a raster: red, green, blue, alpha.
const BytesPerPixel = 4

// Pixel is a single RGBA color.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// DefaultPixel fills rasters that were never painted.
var DefaultPixel = Pixel{R: 255, G: 255, B: 255, A: 255}

// NewPixel creates a pixel from its components.
func NewPixel(r, g, b, a uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: a}
}

// PixelFromBytes reads a pixel from the first four bytes of b.
func PixelFromBytes(b []byte) Pixel {
	return Pixel{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// PutBytes writes the pixel into the first four bytes of b.
func (p Pixel) PutBytes(b []byte) {
	b[0] = p.R
	b[1] = p.G
	b[2] = p.B
	b[3] = p.A
}
