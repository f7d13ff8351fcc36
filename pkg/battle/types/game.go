package types

import "github.com/google/uuid"

// Game is the canvas record a processor is built from.
type Game struct {
	GameID uuid.UUID
	Width  int
	Height int
	// Version is the last committed change index, nil if the canvas was never committed.
	Version *int64
	// State is the row-major RGBA raster, nil for a fresh canvas.
	State []byte
}

// RasterSize returns the expected length in bytes of the game's raster.
func (g *Game) RasterSize() int {
	return g.Width * g.Height * BytesPerPixel
}
