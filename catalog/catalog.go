// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package catalog holds the handwriting exercises offered by the host, their
// completion state and the technique recommendations shown next to them.
//
// A Catalog is loaded from a YAML or TOML document, or from the built-in
// default, and kept in memory. Completion state is not persisted.
//
// Catalog is safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/penpad"
)

// Common errors returned by catalog operations.
var (
	// ErrUnknownExercise is returned for an exercise ID not in the catalog.
	ErrUnknownExercise = errors.New("catalog: unknown exercise")

	// ErrUnknownDifficulty is returned when parsing an unknown difficulty name.
	ErrUnknownDifficulty = errors.New("catalog: unknown difficulty")

	// ErrInvalid is returned when a document fails validation.
	ErrInvalid = errors.New("catalog: invalid document")
)

// Exercise is one practice task.
type Exercise struct {
	ID          string          `json:"id" yaml:"id" toml:"id"`
	Title       string          `json:"title" yaml:"title" toml:"title"`
	Category    string          `json:"category" yaml:"category" toml:"category"`
	Difficulty  Difficulty      `json:"difficulty" yaml:"difficulty" toml:"difficulty"`
	Description string          `json:"description" yaml:"description" toml:"description"`
	Template    penpad.Template `json:"template" yaml:"template" toml:"template"`
	Letters     string          `json:"letters,omitempty" yaml:"letters,omitempty" toml:"letters,omitempty"`
	Completed   bool            `json:"completed" yaml:"completed" toml:"completed"`
}

// Recommendation is a technique tip card.
type Recommendation struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Title   string `json:"title" yaml:"title" toml:"title"`
	Content string `json:"content" yaml:"content" toml:"content"`
	Icon    string `json:"icon" yaml:"icon" toml:"icon"`
}

// Document is the serialized form of a catalog.
type Document struct {
	Categories      []string         `json:"categories" yaml:"categories" toml:"categories"`
	Exercises       []Exercise       `json:"exercises" yaml:"exercises" toml:"exercises"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations" toml:"recommendations"`
	Tips            []string         `json:"tips" yaml:"tips" toml:"tips"`
}

// Validate checks that exercise IDs are present and unique, that every
// exercise belongs to a listed category and that difficulties and templates
// are known.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Exercises))
	for i, ex := range d.Exercises {
		switch {
		case ex.ID == "":
			return fmt.Errorf("%w: exercise %d has no id", ErrInvalid, i)
		case seen[ex.ID]:
			return fmt.Errorf("%w: duplicate exercise id %q", ErrInvalid, ex.ID)
		case !slices.Contains(d.Categories, ex.Category):
			return fmt.Errorf("%w: exercise %q: category %q is not listed", ErrInvalid, ex.ID, ex.Category)
		case ex.Difficulty < Easy || ex.Difficulty > Hard:
			return fmt.Errorf("%w: exercise %q: %v", ErrInvalid, ex.ID, ex.Difficulty)
		case ex.Template < penpad.TemplateNone || ex.Template > penpad.TemplateTracedLetters:
			return fmt.Errorf("%w: exercise %q: %v", ErrInvalid, ex.ID, ex.Template)
		}
		seen[ex.ID] = true
	}
	return nil
}

// Progress summarizes completion.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Remaining int     `json:"remaining"`
}

// Done reports whether every exercise is completed. An empty catalog is
// never done.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// Rounded returns Percent rounded to the nearest whole number.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent))
}

// Group is the exercises of one category.
type Group struct {
	Category  string     `json:"category"`
	Exercises []Exercise `json:"exercises"`
}

// Catalog is an in-memory exercise catalog.
type Catalog struct {
	mu       sync.RWMutex
	doc      Document
	onChange []func()
}

// New validates doc and creates a catalog from it.
func New(doc Document) (*Catalog, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &Catalog{doc: cloneDocument(doc)}, nil
}

func cloneDocument(d Document) Document {
	return Document{
		Categories:      slices.Clone(d.Categories),
		Exercises:       slices.Clone(d.Exercises),
		Recommendations: slices.Clone(d.Recommendations),
		Tips:            slices.Clone(d.Tips),
	}
}

// Document returns a copy of the catalog contents with current completion
// state.
func (c *Catalog) Document() Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneDocument(c.doc)
}

// Replace swaps in a new document. Exercises present in both keep the
// completion state of the current catalog.
func (c *Catalog) Replace(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	doc = cloneDocument(doc)

	c.mu.Lock()
	done := make(map[string]bool, len(c.doc.Exercises))
	for _, ex := range c.doc.Exercises {
		done[ex.ID] = ex.Completed
	}
	for i := range doc.Exercises {
		if v, ok := done[doc.Exercises[i].ID]; ok {
			doc.Exercises[i].Completed = v
		}
	}
	c.doc = doc
	c.mu.Unlock()

	c.changed()
	return nil
}

// OnChange registers fn to be called after every completion change or
// Replace. fn runs on the goroutine that made the change.
func (c *Catalog) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

func (c *Catalog) changed() {
	c.mu.RLock()
	fns := slices.Clone(c.onChange)
	c.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.doc.Categories)
}

// Exercises returns all exercises in catalog order.
func (c *Catalog) Exercises() []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.doc.Exercises)
}

// Exercise looks up an exercise by ID.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.index(id)
	if i < 0 {
		return Exercise{}, false
	}
	return c.doc.Exercises[i], true
}

func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.doc.Exercises, func(ex Exercise) bool { return ex.ID == id })
}

// ByCategory groups exercises by category in declared category order.
// Categories without exercises are included with an empty list.
func (c *Catalog) ByCategory() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	groups := make([]Group, 0, len(c.doc.Categories))
	for _, cat := range c.doc.Categories {
		g := Group{Category: cat, Exercises: []Exercise{}}
		for _, ex := range c.doc.Exercises {
			if ex.Category == cat {
				g.Exercises = append(g.Exercises, ex)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// Progress returns the completion summary. Percent is 0 for an empty
// catalog.
func (c *Catalog) Progress() Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := Progress{Total: len(c.doc.Exercises)}
	for _, ex := range c.doc.Exercises {
		if ex.Completed {
			p.Completed++
		}
	}
	p.Remaining = p.Total - p.Completed
	if p.Total > 0 {
		p.Percent = float64(p.Completed*100) / float64(p.Total)
	}
	return p
}

// Pending returns up to limit incomplete exercises in catalog order.
// A non-positive limit returns all of them.
func (c *Catalog) Pending(limit int) []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Exercise
	for _, ex := range c.doc.Exercises {
		if limit > 0 && len(out) == limit {
			break
		}
		if !ex.Completed {
			out = append(out, ex)
		}
	}
	return out
}

// Toggle flips the completion state of an exercise and returns the new state.
func (c *Catalog) Toggle(id string) (bool, error) {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return false, fmt.Errorf("%w: %q", ErrUnknownExercise, id)
	}
	ex := &c.doc.Exercises[i]
	ex.Completed = !ex.Completed
	done := ex.Completed
	c.mu.Unlock()

	penpad.Logger().Info("catalog: exercise toggled", "id", id, "completed", done)
	c.changed()
	return done, nil
}

// Complete marks an exercise completed. Completing a completed exercise is a
// no-op.
func (c *Catalog) Complete(id string) error {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownExercise, id)
	}
	was := c.doc.Exercises[i].Completed
	c.doc.Exercises[i].Completed = true
	c.mu.Unlock()

	if !was {
		penpad.Logger().Info("catalog: exercise completed", "id", id)
		c.changed()
	}
	return nil
}

// Recommendations returns the technique tips.
func (c *Catalog) Recommendations() []Recommendation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.doc.Recommendations)
}

// Tip returns the tip of the day for t, cycling through the catalog's tips
// one per calendar day. It is empty when the catalog has no tips.
func (c *Catalog) Tip(t time.Time) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.doc.Tips)
	if n == 0 {
		return ""
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	return c.doc.Tips[int(day%int64(n)+int64(n))%n]
}
