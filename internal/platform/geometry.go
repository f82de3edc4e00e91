package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Point is a position in root (screen) coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// SameSize reports whether r and o have identical dimensions.
func (r Rect) SameSize(o Rect) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Screen describes a physical output reported by the display server.
type Screen struct {
	ID     int
	Name   string
	Bounds Rect
}
