// Package penpad provides a handwriting practice pad: a raster drawing surface
// with ruled guides, letter and shape templates, free-hand stroke capture and
// image export.
//
// # Overview
//
// A [Pad] is a headless widget. The host owns the window, the buttons and the
// event loop; it feeds pointer events into the pad and shows the pixels the pad
// renders. Rendering is done on the CPU with github.com/gogpu/gg.
//
//	pad := penpad.New("2", penpad.TemplateCircles, onDone)
//	if err := pad.Mount(penpad.FixedLayout{Width: 600, Height: 400}); err != nil {
//	    return err
//	}
//	defer pad.Unmount()
//
//	pad.PointerDown(60, 100)
//	pad.PointerMove(60, 150)
//	pad.PointerUp()
//
//	err := pad.Export() // exercise-2-<unix millis>.png
//
// # Surface
//
// The surface has a logical size (the layout box, in CSS pixels) and a backing
// store scaled by a fixed factor for sharpness. All drawing is issued in
// logical coordinates after a one-time scale transform.
//
// Background, template and ink share one layer. Repainting the background
// (on mount, on template or guide change, on Clear and on Resize) discards
// the ink.
//
// # Strokes
//
// Pointer input drives a two-state machine (idle, drawing). Every segment is
// painted as soon as it arrives; no stroke geometry is kept, only a counter of
// strokes for display.
//
// # Thread Safety
//
// Pad and Surface are NOT safe for concurrent use. Drive a pad from a single
// goroutine, the way a UI event loop would.
package penpad
