package types

// Viewport is a rectangular region of a canvas in pixel coordinates.
type Viewport struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the pixel at (x, y) lies inside the viewport.
func (v Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// Clip returns the intersection of the viewport with a width by height canvas.
// ok is false when the intersection is empty.
func (v Viewport) Clip(width, height int) (clipped Viewport, ok bool) {
	x0, y0 := max(v.X, 0), max(v.Y, 0)
	x1, y1 := min(v.X+v.Width, width), min(v.Y+v.Height, height)
	if x1 <= x0 || y1 <= y0 {
		return Viewport{}, false
	}
	return Viewport{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}
