package glyph

import (
	"sync"

	"codeberg.org/go-fonts/liberation/liberationserifbold"
	"github.com/go-fonts/latin-modern/lmroman10bold"
)

var (
	defaultOnce sync.Once
	defaultSet  Set
	defaultErr  error
)

// Default returns the bundled bold serif faces: Liberation Serif Bold, which
// covers Latin and Cyrillic, backed by Latin Modern Roman 10 Bold.
// The faces are parsed once.
func Default() (Set, error) {
	defaultOnce.Do(func() {
		liberation, err := Parse("Liberation Serif Bold", liberationserifbold.TTF)
		if err != nil {
			defaultErr = err
			return
		}
		latinModern, err := Parse("Latin Modern Roman 10 Bold", lmroman10bold.TTF)
		if err != nil {
			defaultErr = err
			return
		}
		defaultSet = Set{liberation, latinModern}
	})
	return defaultSet, defaultErr
}
