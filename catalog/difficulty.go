// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Difficulty grades an exercise.
type Difficulty int

const (
	// Easy is the default difficulty.
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the lower-case difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Hard {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Label returns the display name of the difficulty in the given language.
// Languages other than Russian get English.
func (d Difficulty) Label(tag language.Tag) string {
	ru := [...]string{"Легко", "Средне", "Сложно"}
	en := [...]string{"Easy", "Medium", "Hard"}
	if d < Easy || d > Hard {
		return d.String()
	}
	if base, _ := tag.Base(); base.String() == "ru" {
		return ru[d]
	}
	return en[d]
}

// Badge returns the CSS classes of the difficulty badge.
func (d Difficulty) Badge() string {
	switch d {
	case Easy:
		return "bg-green-100 text-green-700 hover:bg-green-100"
	case Medium:
		return "bg-yellow-100 text-yellow-700 hover:bg-yellow-100"
	case Hard:
		return "bg-red-100 text-red-700 hover:bg-red-100"
	default:
		return "bg-gray-100 text-gray-700"
	}
}
