// Package glyph turns font glyph outlines into path commands.
//
// It is used to trace sample letters: the outline of each glyph is replayed
// into a PathBuilder (a *gg.Context satisfies it) and stroked, never filled.
package glyph

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// ErrNoFace is returned by Parse when the data holds no usable face.
var ErrNoFace = errors.New("glyph: no face")

// PathBuilder receives outline segments in y-down surface coordinates.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// Face is a parsed font face.
type Face struct {
	name string
	face *font.Face
}

// Parse parses TrueType or OpenType data.
func Parse(name string, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty data", ErrNoFace, name)
	}
	f, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyph: parse %s: %w", name, err)
	}
	return &Face{name: name, face: f}, nil
}

// Name returns the name the face was registered with.
func (f *Face) Name() string { return f.name }

// Has reports whether the face maps r to a glyph.
func (f *Face) Has(r rune) bool {
	_, ok := f.face.Cmap.Lookup(r)
	return ok
}

// Outline replays the outline of r into p with its baseline origin at (x, y)
// and an em size of size units. It returns the horizontal advance, and false
// if the face has no outline glyph for r.
//
// Every contour is closed, so a stroked outline has no gap at its seam.
func (f *Face) Outline(p PathBuilder, r rune, x, y, size float64) (advance float64, ok bool) {
	gid, ok := f.face.Cmap.Lookup(r)
	if !ok {
		return 0, false
	}
	outline, ok := f.face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return 0, false
	}
	sc := size / float64(f.face.Upem())
	pt := func(a opentype.SegmentPoint) (float64, float64) {
		return float64(a.X)*sc + x, -float64(a.Y)*sc + y
	}

	open := false
	for _, s := range outline.Segments {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.MoveTo(pt(s.Args[0]))
			open = true
		case opentype.SegmentOpLineTo:
			p.LineTo(pt(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			px, py := pt(s.Args[1])
			p.QuadraticTo(cx, cy, px, py)
		case opentype.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			px, py := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, px, py)
		}
	}
	if open {
		p.ClosePath()
	}
	return float64(f.face.HorizontalAdvance(gid)) * sc, true
}

// Set is an ordered list of faces; lookups fall through to later faces when
// an earlier one lacks a glyph.
type Set []*Face

// Has reports whether any face in the set maps r.
func (s Set) Has(r rune) bool {
	return s.face(r) != nil
}

// Outline draws r with the first face that has it.
func (s Set) Outline(p PathBuilder, r rune, x, y, size float64) (float64, bool) {
	f := s.face(r)
	if f == nil {
		return 0, false
	}
	return f.Outline(p, r, x, y, size)
}

func (s Set) face(r rune) *Face {
	for _, f := range s {
		if f != nil && f.Has(r) {
			return f
		}
	}
	return nil
}
