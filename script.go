package penpad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrScript is returned by ParseScript for malformed lines.
var ErrScript = errors.New("penpad: bad script")

// ScriptStep is one recorded pad input.
type ScriptStep struct {
	// Op is down, move, up, leave, brush, guides or clear.
	Op string

	// X and Y are client coordinates for down and move.
	X, Y float64

	// Width is the brush width for brush.
	Width int

	// On is the visibility for guides.
	On bool
}

// ParseScript reads a pointer script: one step per line, blank lines and
// lines starting with # ignored.
//
//	down 60 100
//	move 60 150
//	up
//	brush 5
//	guides off
//	clear
func ParseScript(r io.Reader) ([]ScriptStep, error) {
	var steps []ScriptStep
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrScript, n, err)
		}
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

func parseStep(fields []string) (ScriptStep, error) {
	step := ScriptStep{Op: strings.ToLower(fields[0])}
	args := fields[1:]
	want := 0
	switch step.Op {
	case "down", "move":
		want = 2
	case "brush", "guides":
		want = 1
	case "up", "leave", "clear":
	default:
		return step, fmt.Errorf("unknown step %q", fields[0])
	}
	if len(args) != want {
		return step, fmt.Errorf("%s takes %d arguments, got %d", step.Op, want, len(args))
	}

	var err error
	switch step.Op {
	case "down", "move":
		if step.X, err = strconv.ParseFloat(args[0], 64); err != nil {
			return step, err
		}
		if step.Y, err = strconv.ParseFloat(args[1], 64); err != nil {
			return step, err
		}
	case "brush":
		if step.Width, err = strconv.Atoi(args[0]); err != nil {
			return step, err
		}
	case "guides":
		switch strings.ToLower(args[0]) {
		case "on", "true", "1":
			step.On = true
		case "off", "false", "0":
		default:
			return step, fmt.Errorf("guides takes on or off, got %q", args[0])
		}
	}
	return step, nil
}

// Replay feeds script steps to the pad in order.
func Replay(p *Pad, steps []ScriptStep) {
	for _, s := range steps {
		switch s.Op {
		case "down":
			p.PointerDown(s.X, s.Y)
		case "move":
			p.PointerMove(s.X, s.Y)
		case "up":
			p.PointerUp()
		case "leave":
			p.PointerLeave()
		case "brush":
			p.SetBrushWidth(s.Width)
		case "guides":
			p.SetGuides(s.On)
		case "clear":
			p.Clear()
		}
	}
}
