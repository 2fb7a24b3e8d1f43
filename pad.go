package penpad

import (
	"errors"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/penpad/internal/glyph"
)

var (
	// ErrNilLayout is returned by Mount when no layout is given.
	ErrNilLayout = errors.New("penpad: nil layout")

	// ErrNotMounted is returned by Snapshot before Mount or after Unmount.
	ErrNotMounted = errors.New("penpad: pad is not mounted")
)

// Pad is the exercise drawing widget.
//
// The host creates a pad per exercise, mounts it into a layout box and feeds
// it pointer events. The pad owns its surface and session; it does not track
// whether the exercise is completed, it only reports the user's intent through
// the completion callback.
//
// Every operation on an unmounted pad is a silent no-op, the same way a
// browser canvas without a drawing context ignores drawing calls.
//
// Pad is NOT safe for concurrent use.
type Pad struct {
	id         string
	template   Template
	onComplete func()
	opts       options

	renderer *Renderer
	layout   Layout
	surface  *Surface
	session  Session
	capture  capture
}

// New creates an unmounted pad for the exercise exerciseID.
// onComplete is invoked by Complete and may be nil.
func New(exerciseID string, template Template, onComplete func(), opts ...Option) *Pad {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pad{
		id:         exerciseID,
		template:   template,
		onComplete: onComplete,
		opts:       o,
		renderer:   NewRenderer(o.letters, loadFaces(o.fonts)),
		session:    newSession(o),
	}
}

// loadFaces parses the configured fonts and appends the bundled faces.
func loadFaces(fonts []fontData) glyph.Set {
	var set glyph.Set
	for _, f := range fonts {
		face, err := glyph.Parse(f.name, f.data)
		if err != nil {
			Logger().Warn("penpad: skipping font", "font", f.name, "err", err)
			continue
		}
		set = append(set, face)
	}
	bundled, err := glyph.Default()
	if err != nil {
		Logger().Warn("penpad: bundled fonts unavailable", "err", err)
		return set
	}
	return append(set, bundled...)
}

// Mount creates the surface, sized once from the layout's bounding rect, starts
// a fresh session and paints the sheet. Mounting a mounted pad remounts it.
func (p *Pad) Mount(layout Layout) error {
	if layout == nil {
		return ErrNilLayout
	}
	if p.surface != nil {
		p.Unmount()
	}
	r := layout.BoundingRect()
	s, err := NewSurface(r.Width, r.Height, p.opts.scale)
	if err != nil {
		return err
	}
	p.layout = layout
	p.surface = s
	p.session = newSession(p.opts)
	p.capture.reset()
	p.repaint()
	Logger().Info("penpad: pad mounted", "exercise", p.id, "template", p.template,
		"width", r.Width, "height", r.Height, "scale", s.Scale())
	return nil
}

// Unmount destroys the surface. The session is discarded with it.
func (p *Pad) Unmount() {
	if p.surface == nil {
		return
	}
	if err := p.surface.Close(); err != nil {
		Logger().Warn("penpad: close surface", "err", err)
	}
	p.surface = nil
	p.layout = nil
	p.capture.reset()
	Logger().Info("penpad: pad unmounted", "exercise", p.id)
}

// Mounted reports whether the pad has a surface.
func (p *Pad) Mounted() bool {
	return p.surface != nil
}

// repaint is the single way the sheet is redrawn: on mount, on template and
// guide changes, on Clear and on Resize.
func (p *Pad) repaint() {
	if p.surface == nil {
		return
	}
	p.renderer.Render(p.surface, p.template, p.session.Guides)
}

// ExerciseID returns the opaque exercise identifier given to New.
func (p *Pad) ExerciseID() string { return p.id }

// Template returns the current template.
func (p *Pad) Template() Template { return p.template }

// Session returns a copy of the session state.
func (p *Pad) Session() Session { return p.session }

// StrokeCount returns the number of strokes since mount or the last Clear.
func (p *Pad) StrokeCount() int { return p.session.Strokes }

// BrushWidth returns the current brush width.
func (p *Pad) BrushWidth() int { return p.session.BrushWidth }

// GuidesVisible reports whether ruled guides are drawn.
func (p *Pad) GuidesVisible() bool { return p.session.Guides }

// Drawing reports whether a stroke is in progress.
func (p *Pad) Drawing() bool { return p.capture.state == captureDrawing }

// Surface returns the mounted surface, or nil.
func (p *Pad) Surface() *Surface { return p.surface }

// Letters returns the sample characters traced by TemplateTracedLetters.
func (p *Pad) Letters() string { return p.renderer.Letters() }

// Image returns a copy of the surface pixels. It is empty when unmounted.
func (p *Pad) Image() image.Image {
	if p.surface == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return p.surface.Image()
}

// SetTemplate switches the template overlay. Changing it repaints the sheet,
// which discards the ink.
func (p *Pad) SetTemplate(t Template) {
	if t == p.template {
		return
	}
	p.template = t
	p.repaint()
}

// SetGuides shows or hides the ruled guides. Changing it repaints the sheet,
// which discards the ink.
func (p *Pad) SetGuides(visible bool) {
	if visible == p.session.Guides {
		return
	}
	p.session.Guides = visible
	p.repaint()
}

// ToggleGuides flips guide visibility and returns the new value.
func (p *Pad) ToggleGuides() bool {
	p.SetGuides(!p.session.Guides)
	return p.session.Guides
}

// SetBrushWidth sets the ink width, clamped to [MinBrushWidth, MaxBrushWidth],
// and returns the applied value. It affects only segments painted afterwards.
func (p *Pad) SetBrushWidth(w int) int {
	p.session.BrushWidth = ClampBrushWidth(w)
	Logger().Debug("penpad: brush width", "width", p.session.BrushWidth)
	return p.session.BrushWidth
}

// HandlePointer dispatches a pointer event.
func (p *Pad) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		p.PointerDown(ev.ClientX, ev.ClientY)
	case PointerMove:
		p.PointerMove(ev.ClientX, ev.ClientY)
	case PointerUp:
		p.PointerUp()
	case PointerLeave:
		p.PointerLeave()
	}
}

// local converts client coordinates using the layout as it is right now.
func (p *Pad) local(clientX, clientY float64) Point {
	return p.layout.BoundingRect().local(clientX, clientY)
}

// PointerDown begins a stroke at the given client position. A dot is painted
// immediately so a tap leaves ink, and the stroke counter goes up by one.
func (p *Pad) PointerDown(clientX, clientY float64) {
	if p.surface == nil {
		return
	}
	pt := p.local(clientX, clientY)
	if p.capture.begin(pt) {
		Logger().Debug("penpad: stroke restarted without release", "exercise", p.id)
	}
	p.session.Strokes++
	w := p.session.BrushWidth
	_ = p.surface.Draw(func(dc *gg.Context) {
		dc.SetHexColor(inkColor)
		dc.DrawCircle(pt.X, pt.Y, float64(w)/2)
		if err := dc.Fill(); err != nil {
			Logger().Warn("penpad: fill", "err", err)
		}
	})
	Logger().Debug("penpad: stroke begin", "x", pt.X, "y", pt.Y, "strokes", p.session.Strokes)
}

// PointerMove extends the current stroke with one segment from the previous
// point. Moves with no stroke in progress are ignored.
func (p *Pad) PointerMove(clientX, clientY float64) {
	if p.surface == nil {
		return
	}
	pt := p.local(clientX, clientY)
	from, ok := p.capture.extend(pt)
	if !ok {
		return
	}
	w := p.session.BrushWidth
	_ = p.surface.Draw(func(dc *gg.Context) {
		dc.SetHexColor(inkColor)
		dc.SetStroke(inkStroke(w))
		dc.MoveTo(from.X, from.Y)
		dc.LineTo(pt.X, pt.Y)
		stroke(dc)
	})
}

// PointerUp ends the current stroke.
func (p *Pad) PointerUp() {
	if p.capture.end() {
		Logger().Debug("penpad: stroke end", "strokes", p.session.Strokes)
	}
}

// PointerLeave ends the current stroke when the pointer exits the surface.
// Ink painted so far is kept.
func (p *Pad) PointerLeave() {
	if p.capture.end() {
		Logger().Debug("penpad: stroke left surface", "strokes", p.session.Strokes)
	}
}

// Clear discards all ink by repainting the sheet with the current template and
// guides, and resets the stroke counter.
func (p *Pad) Clear() {
	p.session.Strokes = 0
	p.repaint()
}

// Resize re-reads the layout's bounding rect and, if the size changed,
// reallocates the backing store and repaints. Ink is discarded; the session,
// stroke counter included, is kept.
func (p *Pad) Resize() error {
	if p.surface == nil {
		return nil
	}
	r := p.layout.BoundingRect()
	if r.Width == p.surface.Width() && r.Height == p.surface.Height() {
		return nil
	}
	if err := p.surface.Resize(r.Width, r.Height); err != nil {
		return err
	}
	p.repaint()
	return nil
}

// Snapshot encodes the current surface pixels without delivering them.
func (p *Pad) Snapshot() (Export, error) {
	if p.surface == nil {
		return Export{}, ErrNotMounted
	}
	data, err := encode(p.surface, p.opts.format)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Name:      ExportName(p.id, p.opts.format, p.opts.now()),
		MediaType: p.opts.format.MediaType(),
		Data:      data,
	}, nil
}

// Export snapshots the surface and hands it to the downloader. Before mount it
// does nothing.
func (p *Pad) Export() error {
	if p.surface == nil {
		return nil
	}
	e, err := p.Snapshot()
	if err != nil {
		return err
	}
	Logger().Info("penpad: export", "name", e.Name, "bytes", len(e.Data))
	return p.opts.downloader.Download(e)
}

// Complete reports that the user is done with the exercise.
func (p *Pad) Complete() {
	if p.onComplete != nil {
		p.onComplete()
	}
}
