package penpad

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestNewSurface(t *testing.T) {
	s, err := NewSurface(300, 150, 0)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	defer s.Close()

	if s.Scale() != DefaultScale {
		t.Errorf("Scale() = %v, want %v", s.Scale(), DefaultScale)
	}
	w, h := s.BackingSize()
	if w != 600 || h != 300 {
		t.Errorf("BackingSize() = %dx%d, want 600x300", w, h)
	}
	if s.Context() == nil {
		t.Fatal("Context() = nil")
	}
	if b := s.Image().Bounds(); b.Dx() != 600 || b.Dy() != 300 {
		t.Errorf("Image bounds = %v, want 600x300", b)
	}
}

func TestNewSurfaceInvalid(t *testing.T) {
	tests := []struct {
		name        string
		w, h, scale float64
	}{
		{"negative width", -1, 10, 1},
		{"negative height", 10, -1, 1},
		{"negative scale", 10, 10, -2},
		{"nan", math.NaN(), 10, 1},
		{"inf", 10, math.Inf(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSurface(tt.w, tt.h, tt.scale)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewSurface error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestSurfaceLogicalCoordinates(t *testing.T) {
	s, _ := NewSurface(100, 100, 3)
	defer s.Close()

	err := s.Draw(func(dc *gg.Context) {
		dc.SetHexColor("#000000")
		dc.DrawRectangle(10, 10, 10, 10)
		_ = dc.Fill()
	})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	img := s.Image()
	if c := rgbaAt(img, 45, 45); c.A != 0xff || c.R != 0 {
		t.Errorf("pixel inside scaled rect = %v, want opaque black", c)
	}
	if c := rgbaAt(img, 15, 15); c.A != 0 {
		t.Errorf("pixel outside scaled rect = %v, want transparent", c)
	}
}

func TestSurfaceDegenerate(t *testing.T) {
	s, err := NewSurface(0, 200, 2)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if s.Context() != nil {
		t.Error("Context() of a zero-width surface should be nil")
	}
	called := false
	if err := s.Draw(func(*gg.Context) { called = true }); err != nil {
		t.Errorf("Draw: %v", err)
	}
	if called {
		t.Error("Draw should not call fn on a degenerate surface")
	}
	if !s.Image().Bounds().Empty() {
		t.Errorf("Image bounds = %v, want empty", s.Image().Bounds())
	}
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil || buf.Len() != 0 {
		t.Errorf("EncodePNG = %d bytes, %v; want 0 bytes, nil", buf.Len(), err)
	}

	if err := s.Resize(50, 50); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.Context() == nil {
		t.Error("Context() should be available after growing")
	}
}

func TestSurfaceDirty(t *testing.T) {
	s, _ := NewSurface(10, 10, 1)
	defer s.Close()

	if !s.IsDirty() {
		t.Error("new surface should be dirty")
	}
	s.MarkClean()
	if s.IsDirty() {
		t.Error("IsDirty() after MarkClean = true")
	}
	_ = s.Draw(func(*gg.Context) {})
	if !s.IsDirty() {
		t.Error("IsDirty() after Draw = false")
	}
}

func TestSurfaceResize(t *testing.T) {
	s, _ := NewSurface(100, 50, 2)
	defer s.Close()

	s.MarkClean()
	if err := s.Resize(100, 50); err != nil {
		t.Fatalf("Resize same: %v", err)
	}
	if s.IsDirty() {
		t.Error("resizing to the same size should be a no-op")
	}

	if err := s.Resize(40, 30); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := s.BackingSize(); w != 80 || h != 60 {
		t.Errorf("BackingSize() = %dx%d, want 80x60", w, h)
	}
	if !s.IsDirty() {
		t.Error("IsDirty() after Resize = false")
	}
	if err := s.Resize(-1, 30); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(-1) error = %v, want ErrInvalidDimensions", err)
	}

	// The scale transform survives reallocation.
	_ = s.Draw(func(dc *gg.Context) {
		dc.SetHexColor("#000000")
		dc.DrawRectangle(30, 20, 10, 10)
		_ = dc.Fill()
	})
	if c := rgbaAt(s.Image(), 70, 50); c.A != 0xff {
		t.Errorf("pixel after resize = %v, want opaque", c)
	}
}

func TestSurfaceClose(t *testing.T) {
	s, _ := NewSurface(10, 10, 1)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Draw(func(*gg.Context) {}); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Draw after Close = %v, want ErrSurfaceClosed", err)
	}
	if err := s.Resize(5, 5); !errors.Is(err, ErrSurfaceClosed) {
		t.Errorf("Resize after Close = %v, want ErrSurfaceClosed", err)
	}
	if s.Context() != nil {
		t.Error("Context() after Close should be nil")
	}
}

func TestSurfaceEncodePNG(t *testing.T) {
	s, _ := NewSurface(20, 10, 2)
	defer s.Close()

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 20 {
		t.Errorf("PNG size = %dx%d, want 40x20", cfg.Width, cfg.Height)
	}
}
