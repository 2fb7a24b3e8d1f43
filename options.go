package penpad

import "time"

// Option configures a Pad during creation.
//
// Example:
//
//	pad := penpad.New("4", penpad.TemplateTracedLetters, next,
//	    penpad.WithLetters("ABC"),
//	    penpad.WithBrushWidth(5),
//	    penpad.WithDownloader(penpad.DirDownloader{Dir: "exports"}),
//	)
type Option func(*options)

type fontData struct {
	name string
	data []byte
}

// options holds optional configuration for Pad creation.
type options struct {
	scale      float64
	brushWidth int
	guides     bool
	letters    string
	fonts      []fontData
	format     Format
	downloader Downloader
	now        func() time.Time
}

// defaultOptions returns the default pad options.
func defaultOptions() options {
	return options{
		scale:      DefaultScale,
		brushWidth: DefaultBrushWidth,
		guides:     true,
		letters:    DefaultLetters,
		format:     FormatPNG,
		downloader: DirDownloader{Dir: "."},
		now:        time.Now,
	}
}

// WithScale sets the backing-store scale factor (device pixels per logical
// unit). Non-positive values are ignored.
func WithScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithBrushWidth sets the initial brush width of each session.
// The value is clamped to [MinBrushWidth, MaxBrushWidth].
func WithBrushWidth(w int) Option {
	return func(o *options) {
		o.brushWidth = ClampBrushWidth(w)
	}
}

// WithGuides sets the initial guide visibility of each session.
// Guides are visible by default.
func WithGuides(visible bool) Option {
	return func(o *options) {
		o.guides = visible
	}
}

// WithLetters sets the sample characters traced by TemplateTracedLetters.
func WithLetters(letters string) Option {
	return func(o *options) {
		if letters != "" {
			o.letters = letters
		}
	}
}

// WithFont adds a TrueType or OpenType face for traced letters. Added faces
// are consulted in order before the bundled serif faces. A face that fails to
// parse is logged and skipped.
func WithFont(name string, data []byte) Option {
	return func(o *options) {
		o.fonts = append(o.fonts, fontData{name: name, data: data})
	}
}

// WithFormat sets the export image format. PNG is the default.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithDownloader sets where exports are delivered.
// The default writes files into the current directory.
func WithDownloader(d Downloader) Option {
	return func(o *options) {
		if d != nil {
			o.downloader = d
		}
	}
}

// WithClock sets the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
