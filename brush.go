package penpad

import "github.com/gogpu/gg"

// Brush width limits, in logical units.
const (
	MinBrushWidth     = 1
	MaxBrushWidth     = 10
	DefaultBrushWidth = 3
)

// ClampBrushWidth limits w to [MinBrushWidth, MaxBrushWidth].
func ClampBrushWidth(w int) int {
	return min(max(w, MinBrushWidth), MaxBrushWidth)
}

// inkStroke is the stroke style of free-hand ink: fixed color, round caps and
// joins, and the brush width at the time the segment is painted.
func inkStroke(width int) gg.Stroke {
	return gg.RoundStroke().WithWidth(float64(width))
}
