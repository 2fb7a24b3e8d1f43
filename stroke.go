package penpad

import (
	"fmt"
	"strings"
)

// PointerKind identifies a pointer input event.
type PointerKind int

const (
	// PointerDown is a button press over the surface.
	PointerDown PointerKind = iota
	// PointerMove is pointer motion over the surface.
	PointerMove
	// PointerUp is a button release.
	PointerUp
	// PointerLeave is the pointer leaving the surface bounds.
	PointerLeave
)

// String returns the lower-case event name.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// ParsePointerKind parses an event name as produced by String.
func ParsePointerKind(s string) (PointerKind, bool) {
	switch strings.ToLower(s) {
	case "down":
		return PointerDown, true
	case "move":
		return PointerMove, true
	case "up":
		return PointerUp, true
	case "leave":
		return PointerLeave, true
	}
	return 0, false
}

// PointerEvent is a pointer event in client coordinates. The pad converts it
// to surface coordinates using the layout's bounding rect at delivery time.
type PointerEvent struct {
	Kind    PointerKind
	ClientX float64
	ClientY float64
}

type captureState int

const (
	captureIdle captureState = iota
	captureDrawing
)

// capture is the stroke state machine. It only tracks state and the last
// point; painting is left to the pad.
type capture struct {
	state captureState
	last  Point
}

// begin starts a stroke at p. It reports whether a stroke was already in
// progress, which begin ends implicitly.
func (c *capture) begin(p Point) (restarted bool) {
	restarted = c.state == captureDrawing
	c.state = captureDrawing
	c.last = p
	return restarted
}

// extend moves the pen to p and returns the previous point. It reports false
// when no stroke is in progress; such stray moves are ignored.
func (c *capture) extend(p Point) (from Point, ok bool) {
	if c.state != captureDrawing {
		return Point{}, false
	}
	from = c.last
	c.last = p
	return from, true
}

// end finishes the current stroke and reports whether one was in progress.
func (c *capture) end() bool {
	if c.state != captureDrawing {
		return false
	}
	c.state = captureIdle
	return true
}

func (c *capture) reset() {
	*c = capture{}
}
