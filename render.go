package penpad

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/penpad/internal/glyph"
)

// DefaultLetters are the sample characters traced by TemplateTracedLetters.
const DefaultLetters = "аосеи"

// Palette and geometry of the practice sheet.
const (
	paperColor     = "#ffffff"
	ruleColor      = "#e0e7ff"
	ruleHeavyColor = "#c7d2fe"
	columnColor    = "#ddd6fe"
	templateColor  = "#a5b4fc"
	inkColor       = "#1e293b"

	ruleSpacing   = 40.0
	columnSpacing = 50.0

	diagonalCount   = 5
	diagonalMargin  = 50.0
	diagonalStep    = 100.0
	diagonalSlant   = 20.0
	circleCount     = 6
	circleRadius    = 25.0
	circleStartX    = 60.0
	circleStep      = 80.0
	letterSize      = 48.0
	letterStartX    = 60.0
	letterStep      = 90.0
	letterBaseline  = 100.0
	letterLineWidth = 1.5
)

// Renderer paints the practice sheet: paper, ruled guides and the template
// overlay. It holds no per-surface state, so one Renderer can serve any
// number of surfaces.
type Renderer struct {
	letters []rune
	faces   glyph.Set
}

// NewRenderer creates a renderer tracing letters with faces.
// An empty letters string selects DefaultLetters.
func NewRenderer(letters string, faces glyph.Set) *Renderer {
	if letters == "" {
		letters = DefaultLetters
	}
	return &Renderer{letters: []rune(letters), faces: faces}
}

// Letters returns the sample characters traced by TemplateTracedLetters.
func (r *Renderer) Letters() string {
	return string(r.letters)
}

// Render repaints the whole surface for the given template and guide
// visibility. Anything drawn before, ink included, is overwritten.
//
// Render is idempotent: the same arguments on a surface of the same size
// produce the same pixels.
func (r *Renderer) Render(s *Surface, t Template, guides bool) {
	w, h := s.Width(), s.Height()
	_ = s.Draw(func(dc *gg.Context) {
		r.paint(dc, t, guides, w, h)
	})
	Logger().Debug("penpad: repaint", "template", t, "guides", guides, "width", w, "height", h)
}

func (r *Renderer) paint(dc *gg.Context, t Template, guides bool, w, h float64) {
	dc.ClearPath()
	dc.ClearWithColor(gg.Hex(paperColor))
	if guides {
		drawGuides(dc, w, h)
	}
	switch t {
	case TemplateDiagonalLines:
		drawDiagonals(dc, h)
	case TemplateCircles:
		drawCircles(dc, h)
	case TemplateTracedLetters:
		r.drawLetters(dc)
	}
}

// sheetStroke is the stroke style of guide and template geometry.
func sheetStroke(width float64, dash ...float64) gg.Stroke {
	return gg.DefaultStroke().WithWidth(width).WithDashPattern(dash...)
}

// drawGuides rules horizontal lines with every second one in a heavier tint,
// then dashed vertical columns.
func drawGuides(dc *gg.Context, w, h float64) {
	dc.SetStroke(sheetStroke(1))
	for i := 1; float64(i)*ruleSpacing < h; i++ {
		y := float64(i) * ruleSpacing
		if i%2 == 0 {
			dc.SetHexColor(ruleHeavyColor)
		} else {
			dc.SetHexColor(ruleColor)
		}
		dc.MoveTo(0, y)
		dc.LineTo(w, y)
		stroke(dc)
	}

	dc.SetHexColor(columnColor)
	dc.SetStroke(sheetStroke(1, 5, 5))
	for x := columnSpacing; x < w; x += columnSpacing {
		dc.MoveTo(x, 0)
		dc.LineTo(x, h)
		stroke(dc)
	}
}

func drawDiagonals(dc *gg.Context, h float64) {
	dc.SetHexColor(templateColor)
	dc.SetStroke(sheetStroke(2, 10, 5))
	for i := range diagonalCount {
		x := diagonalMargin + float64(i)*diagonalStep
		dc.MoveTo(x, diagonalMargin)
		dc.LineTo(x+diagonalSlant, h-diagonalMargin)
		stroke(dc)
	}
}

func drawCircles(dc *gg.Context, h float64) {
	dc.SetHexColor(templateColor)
	dc.SetStroke(sheetStroke(2, 5, 3))
	y := h / 4
	for i := range circleCount {
		dc.DrawCircle(circleStartX+float64(i)*circleStep, y, circleRadius)
		stroke(dc)
	}
}

func (r *Renderer) drawLetters(dc *gg.Context) {
	if len(r.faces) == 0 {
		return
	}
	dc.SetHexColor(templateColor)
	dc.SetStroke(sheetStroke(letterLineWidth, 8, 4).WithJoin(gg.LineJoinRound))
	for i, ch := range r.letters {
		x := letterStartX + float64(i)*letterStep
		if _, ok := r.faces.Outline(dc, ch, x, letterBaseline, letterSize); !ok {
			Logger().Debug("penpad: no glyph for sample letter", "letter", string(ch))
			continue
		}
		stroke(dc)
	}
}

// stroke strokes and clears the current path. Rasterizer errors leave the
// sheet incomplete but usable, so they are only logged.
func stroke(dc *gg.Context) {
	if err := dc.Stroke(); err != nil {
		Logger().Warn("penpad: stroke", "err", err)
	}
}
