package penpad

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned when an image format name cannot be parsed.
var ErrUnknownFormat = errors.New("penpad: unknown image format")

// jpegQuality is the quality used for JPEG exports.
const jpegQuality = 92

// Format is an export image format.
type Format int

const (
	// FormatPNG is lossless PNG, the default.
	FormatPNG Format = iota
	// FormatJPEG is baseline JPEG.
	FormatJPEG
	// FormatBMP is an uncompressed Windows bitmap.
	FormatBMP
	// FormatTIFF is a deflate-compressed TIFF.
	FormatTIFF
)

// String returns the format name, which is also its file extension.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return f.String()
}

// MediaType returns the MIME type of the format.
func (f Format) MediaType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ParseFormat parses a format name or extension, e.g. "png", "jpg", "tif".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return FormatPNG, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f < FormatPNG || f > FormatTIFF {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Export is an encoded snapshot of a surface, ready to be offered as a
// download.
type Export struct {
	// Name is exercise-<id>-<unix millis>.<ext>.
	Name string

	// MediaType is the MIME type of Data.
	MediaType string

	// Data holds the encoded image. It is empty when the surface has a
	// zero dimension.
	Data []byte
}

// ExportName returns the download file name for an exercise snapshot taken
// at t. The millisecond timestamp keeps repeated exports from colliding.
func ExportName(exerciseID string, f Format, t time.Time) string {
	return fmt.Sprintf("exercise-%s-%d.%s", exerciseID, t.UnixMilli(), f.Extension())
}

// Downloader delivers exports to the user.
type Downloader interface {
	Download(e Export) error
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(e Export) error

// Download implements Downloader.
func (f DownloaderFunc) Download(e Export) error { return f(e) }

// DirDownloader writes exports as files into Dir, creating it if needed.
type DirDownloader struct {
	Dir string
}

// Download implements Downloader.
func (d DirDownloader) Download(e Export) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("penpad: create export dir: %w", err)
	}
	path := filepath.Join(dir, safeFileName(e.Name))
	if err := os.WriteFile(path, e.Data, 0o644); err != nil {
		return fmt.Errorf("penpad: write export: %w", err)
	}
	Logger().Info("penpad: export written", "path", path, "bytes", len(e.Data))
	return nil
}

// safeFileName keeps an exercise identifier from escaping the export directory.
func safeFileName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(name)
}

// encode encodes the surface pixels. A degenerate surface encodes to no bytes.
func encode(s *Surface, f Format) ([]byte, error) {
	dc := s.Context()
	if dc == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatPNG:
		err = dc.EncodePNG(&buf)
	case FormatJPEG:
		err = dc.EncodeJPEG(&buf, jpegQuality)
	case FormatBMP:
		err = bmp.Encode(&buf, dc.Image())
	case FormatTIFF:
		err = tiff.Encode(&buf, dc.Image(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	if err != nil {
		return nil, fmt.Errorf("penpad: encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}
