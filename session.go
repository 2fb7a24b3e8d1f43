package penpad

// Session is the transient state of one mounted pad. It is owned by the pad,
// reset on every mount and never persisted.
type Session struct {
	// BrushWidth is the ink width for the next painted segment.
	BrushWidth int

	// Guides reports whether ruled guide lines are drawn.
	Guides bool

	// Strokes counts strokes begun since mount or the last Clear.
	// It is for display only; no stroke geometry is kept.
	Strokes int
}

func newSession(o options) Session {
	return Session{
		BrushWidth: ClampBrushWidth(o.brushWidth),
		Guides:     o.guides,
	}
}
