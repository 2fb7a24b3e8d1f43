package penpad

// Point is a position in surface-local logical coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in client (host window) coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Layout reports where the pad's surface currently sits in the host.
//
// The pad reads the bounding rectangle once at mount to size the surface, and
// again on every pointer event to translate client coordinates into surface
// coordinates. It is never cached between events, so scrolling or moving the
// widget does not skew the ink.
type Layout interface {
	BoundingRect() Rect
}

// FixedLayout is a Layout that never moves.
type FixedLayout Rect

// BoundingRect implements Layout.
func (l FixedLayout) BoundingRect() Rect { return Rect(l) }

// LayoutFunc adapts a function to the Layout interface.
type LayoutFunc func() Rect

// BoundingRect implements Layout.
func (f LayoutFunc) BoundingRect() Rect { return f() }

// local converts client coordinates into coordinates relative to r.
func (r Rect) local(clientX, clientY float64) Point {
	return Point{X: clientX - r.X, Y: clientY - r.Y}
}
