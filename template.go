package penpad

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTemplate is returned when a template name cannot be parsed.
var ErrUnknownTemplate = errors.New("penpad: unknown template")

// Template selects the guide overlay drawn on top of the ruled background.
// A template is fixed per exercise and supplied by the host.
type Template int

const (
	// TemplateNone draws no overlay.
	TemplateNone Template = iota

	// TemplateDiagonalLines draws short dashed slanted strokes spanning the
	// surface height, for practicing an even slant.
	TemplateDiagonalLines

	// TemplateCircles draws a row of dashed circles in the upper quarter.
	TemplateCircles

	// TemplateTracedLetters outlines a row of sample letters in a large serif face.
	TemplateTracedLetters
)

// Templates returns every template in declaration order.
func Templates() []Template {
	return []Template{TemplateNone, TemplateDiagonalLines, TemplateCircles, TemplateTracedLetters}
}

// String returns the short name used in catalogs and URLs.
func (t Template) String() string {
	switch t {
	case TemplateNone:
		return "none"
	case TemplateDiagonalLines:
		return "lines"
	case TemplateCircles:
		return "circles"
	case TemplateTracedLetters:
		return "letters"
	default:
		return fmt.Sprintf("Template(%d)", int(t))
	}
}

// ParseTemplate parses a template name. Both the short names ("lines",
// "letters") and the long ones ("diagonal-lines", "traced-letters") are
// accepted, case-insensitively. The empty string means TemplateNone.
func ParseTemplate(s string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TemplateNone, nil
	case "lines", "diagonal-lines", "diagonal":
		return TemplateDiagonalLines, nil
	case "circles":
		return TemplateCircles, nil
	case "letters", "traced-letters":
		return TemplateTracedLetters, nil
	}
	return TemplateNone, fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Template) MarshalText() ([]byte, error) {
	if t < TemplateNone || t > TemplateTracedLetters {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTemplate, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template) UnmarshalText(text []byte) error {
	v, err := ParseTemplate(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
