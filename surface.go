package penpad

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// DefaultScale is the backing-store scale factor used when none is configured.
const DefaultScale = 2

// Common errors returned by Surface operations.
var (
	// ErrSurfaceClosed is returned when operations are attempted on a closed surface.
	ErrSurfaceClosed = errors.New("penpad: surface is closed")

	// ErrInvalidDimensions is returned when a size or scale is negative or not finite.
	ErrInvalidDimensions = errors.New("penpad: invalid dimensions")
)

// Surface is the raster the user draws on.
//
// It has a logical size, in the host's CSS pixels, and a backing store that is
// scale times larger in each direction. The wrapped gg.Context carries a
// one-time scale transform, so callers always draw in logical coordinates.
//
// A surface with a zero logical dimension is valid but degenerate: it has no
// drawing context, drawing into it does nothing, and its image is empty.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	dc     *gg.Context
	width  float64
	height float64
	scale  float64
	dirty  bool
	closed bool
}

// NewSurface creates a surface of the given logical size.
// A scale of 0 selects DefaultScale.
func NewSurface(width, height, scale float64) (*Surface, error) {
	if scale == 0 {
		scale = DefaultScale
	}
	if err := checkDimensions(width, height, scale); err != nil {
		return nil, err
	}
	s := &Surface{scale: scale}
	s.allocate(width, height)
	return s, nil
}

func checkDimensions(width, height, scale float64) error {
	for _, v := range []float64{width, height, scale} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: width=%v, height=%v, scale=%v", ErrInvalidDimensions, width, height, scale)
		}
	}
	if scale == 0 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidDimensions)
	}
	return nil
}

// allocate sizes the backing store for a logical size. The context is reused
// when it already exists; gg keeps its transform across Resize, but the
// transform is reset anyway so the invariant holds regardless.
func (s *Surface) allocate(width, height float64) {
	s.width, s.height = width, height
	bw, bh := s.BackingSize()
	if bw == 0 || bh == 0 {
		if s.dc != nil {
			_ = s.dc.Close()
			s.dc = nil
		}
		s.dirty = true
		return
	}
	if s.dc == nil {
		s.dc = gg.NewContext(bw, bh)
	} else if err := s.dc.Resize(bw, bh); err != nil {
		Logger().Warn("penpad: resize backing store", "err", err)
		_ = s.dc.Close()
		s.dc = gg.NewContext(bw, bh)
	}
	s.dc.Identity()
	s.dc.Scale(s.scale, s.scale)
	s.dirty = true
}

// Width returns the logical width.
func (s *Surface) Width() float64 { return s.width }

// Height returns the logical height.
func (s *Surface) Height() float64 { return s.height }

// Scale returns the backing-store scale factor.
func (s *Surface) Scale() float64 { return s.scale }

// BackingSize returns the backing-store size in device pixels:
// the logical size times the scale factor, rounded.
func (s *Surface) BackingSize() (width, height int) {
	return int(math.Round(s.width * s.scale)), int(math.Round(s.height * s.scale))
}

// Context returns the drawing context, or nil if the surface is closed or
// degenerate. Drawing through it does not mark the surface dirty; use Draw.
func (s *Surface) Context() *gg.Context {
	if s.closed {
		return nil
	}
	return s.dc
}

// Draw calls fn with the drawing context and marks the surface dirty.
// fn is not called for a degenerate surface.
func (s *Surface) Draw(fn func(dc *gg.Context)) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.dc == nil {
		return nil
	}
	fn(s.dc)
	s.dirty = true
	return nil
}

// IsDirty reports whether the pixels changed since the last MarkClean.
func (s *Surface) IsDirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag. Hosts call it after presenting a frame.
func (s *Surface) MarkClean() {
	s.dirty = false
}

// Resize changes the logical size and reallocates the backing store.
// The new store is blank; callers repaint it. Resizing to the current size
// is a no-op.
func (s *Surface) Resize(width, height float64) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if err := checkDimensions(width, height, s.scale); err != nil {
		return err
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.allocate(width, height)
	return nil
}

// Image returns a copy of the backing-store pixels. A degenerate or closed
// surface yields an empty image.
func (s *Surface) Image() image.Image {
	if s.closed || s.dc == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return s.dc.Image()
}

// EncodePNG writes the backing-store pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.dc == nil {
		return nil
	}
	return s.dc.EncodePNG(w)
}

// Close releases the drawing context. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
