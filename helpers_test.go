package penpad

import (
	"image"
	"image/color"
	"testing"
)

// rgbaAt returns the 8-bit color of img at (x, y).
func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func isPaper(c color.RGBA) bool {
	return c.R == 0xff && c.G == 0xff && c.B == 0xff
}

// isInk reports whether c is close to the ink color #1e293b.
func isInk(c color.RGBA) bool {
	return c.R < 0x50 && c.G < 0x60 && c.B < 0x80
}

// inkedIn counts non-paper pixels in the backing-store rectangle r.
func inkedIn(img image.Image, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !isPaper(rgbaAt(img, x, y)) {
				n++
			}
		}
	}
	return n
}

func samePixels(t *testing.T, a, b image.Image) bool {
	t.Helper()
	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	bb := a.Bounds()
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			if rgbaAt(a, x, y) != rgbaAt(b, x, y) {
				return false
			}
		}
	}
	return true
}

// recordDownloader keeps every export it receives.
type recordDownloader struct {
	exports []Export
}

func (d *recordDownloader) Download(e Export) error {
	d.exports = append(d.exports, e)
	return nil
}
