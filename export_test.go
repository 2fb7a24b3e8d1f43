package penpad

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestExportName(t *testing.T) {
	at := time.UnixMilli(1718000000123)
	tests := []struct {
		id     string
		format Format
		want   string
	}{
		{"1", FormatPNG, "exercise-1-1718000000123.png"},
		{"3", FormatJPEG, "exercise-3-1718000000123.jpg"},
		{"x", FormatBMP, "exercise-x-1718000000123.bmp"},
		{"x", FormatTIFF, "exercise-x-1718000000123.tiff"},
	}
	for _, tt := range tests {
		if got := ExportName(tt.id, tt.format, at); got != tt.want {
			t.Errorf("ExportName(%q, %v) = %q, want %q", tt.id, tt.format, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF} {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", f.String(), got, err, f)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestEncodeFormats(t *testing.T) {
	s, _ := NewSurface(30, 20, 2)
	defer s.Close()
	NewRenderer("", nil).Render(s, TemplateNone, true)

	decoders := map[Format]func([]byte) (image.Image, error){
		FormatPNG:  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		FormatJPEG: func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
		FormatBMP:  func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) },
		FormatTIFF: func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) },
	}
	for f, decode := range decoders {
		data, err := encode(s, f)
		if err != nil {
			t.Fatalf("encode(%v): %v", f, err)
		}
		img, err := decode(data)
		if err != nil {
			t.Fatalf("decode(%v): %v", f, err)
		}
		if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
			t.Errorf("%v bounds = %v, want 60x40", f, b)
		}
	}
}

func TestEncodeDegenerate(t *testing.T) {
	s, _ := NewSurface(0, 0, 2)
	data, err := encode(s, FormatPNG)
	if err != nil || len(data) != 0 {
		t.Errorf("encode(0x0) = %d bytes, %v; want 0 bytes, nil", len(data), err)
	}
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := DirDownloader{Dir: dir}
	e := Export{Name: "exercise-../../etc-1.png", MediaType: "image/png", Data: []byte("png")}
	if err := d.Download(e); err != nil {
		t.Fatalf("Download: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files, want 1", len(entries))
	}
	got, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if string(got) != "png" {
		t.Errorf("file content = %q, want %q", got, "png")
	}
}

func TestFormatMediaType(t *testing.T) {
	if got := FormatJPEG.MediaType(); got != "image/jpeg" {
		t.Errorf("MediaType() = %q, want image/jpeg", got)
	}
	if got := FormatPNG.MediaType(); got != "image/png" {
		t.Errorf("MediaType() = %q, want image/png", got)
	}
}
