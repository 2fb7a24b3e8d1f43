// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package catalog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/gogpu/penpad"
)

func testDocument() Document {
	return Document{
		Categories: []string{"Basics", "Letters", "Phrases"},
		Exercises: []Exercise{
			{ID: "a", Title: "Lines", Category: "Basics", Template: penpad.TemplateDiagonalLines},
			{ID: "b", Title: "Circles", Category: "Basics", Template: penpad.TemplateCircles, Completed: true},
			{ID: "c", Title: "Letters", Category: "Letters", Difficulty: Medium, Template: penpad.TemplateTracedLetters},
			{ID: "d", Title: "Phrase", Category: "Phrases", Difficulty: Hard},
		},
		Tips: []string{"one", "two", "three"},
	}
}

func mustNew(t *testing.T, doc Document) *Catalog {
	t.Helper()
	c, err := New(doc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if got := len(c.Exercises()); got != 5 {
		t.Fatalf("len(Exercises()) = %d, want 5", got)
	}
	p := c.Progress()
	if p.Completed != 2 || p.Total != 5 || p.Percent != 40 || p.Remaining != 3 {
		t.Errorf("Progress() = %+v, want 2/5 40%% 3 remaining", p)
	}
	if got := len(c.Recommendations()); got != 6 {
		t.Errorf("len(Recommendations()) = %d, want 6", got)
	}
	ex, ok := c.Exercise("4")
	if !ok || ex.Template != penpad.TemplateTracedLetters || ex.Letters != "ABC" {
		t.Errorf("Exercise(4) = %+v, %v", ex, ok)
	}
	if c.Tip(time.Now()) == "" {
		t.Error("Tip() is empty")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed []bool
		want      Progress
		done      bool
	}{
		{"empty", nil, Progress{}, false},
		{"none", []bool{false, false}, Progress{Total: 2, Remaining: 2}, false},
		{"third", []bool{true, false, false}, Progress{Completed: 1, Total: 3, Percent: 100.0 / 3, Remaining: 2}, false},
		{"all", []bool{true, true}, Progress{Completed: 2, Total: 2, Percent: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Categories: []string{"x"}}
			for i, done := range tt.completed {
				doc.Exercises = append(doc.Exercises, Exercise{ID: string(rune('a' + i)), Category: "x", Completed: done})
			}
			p := mustNew(t, doc).Progress()
			if p != tt.want {
				t.Errorf("Progress() = %+v, want %+v", p, tt.want)
			}
			if p.Done() != tt.done {
				t.Errorf("Done() = %v, want %v", p.Done(), tt.done)
			}
		})
	}
}

func TestProgressRounded(t *testing.T) {
	p := Progress{Completed: 2, Total: 3, Percent: 200.0 / 3}
	if got := p.Rounded(); got != 67 {
		t.Errorf("Rounded() = %d, want 67", got)
	}
}

func TestPending(t *testing.T) {
	c := mustNew(t, testDocument())

	got := c.Pending(2)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Pending(2) = %v, want [a c]", ids(got))
	}
	if all := c.Pending(0); len(all) != 3 {
		t.Errorf("Pending(0) = %v, want 3 exercises", ids(all))
	}
}

func ids(exs []Exercise) []string {
	out := make([]string, len(exs))
	for i, ex := range exs {
		out[i] = ex.ID
	}
	return out
}

func TestByCategory(t *testing.T) {
	doc := testDocument()
	doc.Categories = append(doc.Categories, "Empty")
	groups := mustNew(t, doc).ByCategory()

	want := map[string][]string{
		"Basics":  {"a", "b"},
		"Letters": {"c"},
		"Phrases": {"d"},
		"Empty":   {},
	}
	if len(groups) != 4 {
		t.Fatalf("len(ByCategory()) = %d, want 4", len(groups))
	}
	for i, g := range groups {
		if g.Category != doc.Categories[i] {
			t.Errorf("group %d = %q, want %q", i, g.Category, doc.Categories[i])
		}
		got := ids(g.Exercises)
		if len(got) != len(want[g.Category]) {
			t.Errorf("group %q = %v, want %v", g.Category, got, want[g.Category])
			continue
		}
		for j := range got {
			if got[j] != want[g.Category][j] {
				t.Errorf("group %q = %v, want %v", g.Category, got, want[g.Category])
			}
		}
	}
}

func TestToggle(t *testing.T) {
	c := mustNew(t, testDocument())
	changes := 0
	c.OnChange(func() { changes++ })

	done, err := c.Toggle("a")
	if err != nil || !done {
		t.Fatalf("Toggle(a) = %v, %v; want true, nil", done, err)
	}
	done, _ = c.Toggle("a")
	if done {
		t.Error("second Toggle(a) = true, want false")
	}
	if _, err := c.Toggle("zzz"); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("Toggle(zzz) error = %v, want ErrUnknownExercise", err)
	}
	if changes != 2 {
		t.Errorf("OnChange called %d times, want 2", changes)
	}
}

func TestComplete(t *testing.T) {
	c := mustNew(t, testDocument())
	changes := 0
	c.OnChange(func() { changes++ })

	if err := c.Complete("c"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := c.Complete("c"); err != nil {
		t.Fatalf("Complete again: %v", err)
	}
	if ex, _ := c.Exercise("c"); !ex.Completed {
		t.Error("exercise c not completed")
	}
	if changes != 1 {
		t.Errorf("OnChange called %d times, want 1", changes)
	}
	if err := c.Complete("nope"); !errors.Is(err, ErrUnknownExercise) {
		t.Errorf("Complete(nope) error = %v, want ErrUnknownExercise", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Document)
	}{
		{"missing id", func(d *Document) { d.Exercises[0].ID = "" }},
		{"duplicate id", func(d *Document) { d.Exercises[1].ID = "a" }},
		{"unlisted category", func(d *Document) { d.Exercises[2].Category = "Other" }},
		{"bad difficulty", func(d *Document) { d.Exercises[0].Difficulty = 7 }},
		{"bad template", func(d *Document) { d.Exercises[0].Template = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			tt.modify(&doc)
			if _, err := New(doc); !errors.Is(err, ErrInvalid) {
				t.Errorf("New error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestReplaceKeepsCompletion(t *testing.T) {
	c := mustNew(t, testDocument())
	_, _ = c.Toggle("a")

	doc := testDocument()
	doc.Exercises = append(doc.Exercises, Exercise{ID: "e", Category: "Phrases"})
	doc.Exercises[1].Completed = false
	if err := c.Replace(doc); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	for id, want := range map[string]bool{"a": true, "b": true, "e": false} {
		if ex, _ := c.Exercise(id); ex.Completed != want {
			t.Errorf("Exercise(%s).Completed = %v, want %v", id, ex.Completed, want)
		}
	}

	bad := testDocument()
	bad.Exercises[0].ID = ""
	if err := c.Replace(bad); err == nil {
		t.Error("Replace accepted an invalid document")
	}
	if len(c.Exercises()) != 5 {
		t.Error("failed Replace changed the catalog")
	}
}

func TestCatalogCopies(t *testing.T) {
	c := mustNew(t, testDocument())
	exs := c.Exercises()
	exs[0].Completed = true
	if ex, _ := c.Exercise("a"); ex.Completed {
		t.Error("mutating Exercises() result changed the catalog")
	}
}

func TestTip(t *testing.T) {
	c := mustNew(t, testDocument())
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first := c.Tip(day)
	if c.Tip(day.Add(10*time.Hour)) != first {
		t.Error("tip changed within one day")
	}
	if c.Tip(day.AddDate(0, 0, 1)) == first {
		t.Error("tip did not change on the next day")
	}
	if c.Tip(day.AddDate(0, 0, 3)) != first {
		t.Error("tips should cycle")
	}
	if got := mustNew(t, Document{}).Tip(day); got != "" {
		t.Errorf("Tip() of empty catalog = %q, want empty", got)
	}
}

func TestDifficulty(t *testing.T) {
	if got := Hard.Label(language.Russian); got != "Сложно" {
		t.Errorf("Hard.Label(ru) = %q, want Сложно", got)
	}
	if got := Medium.Label(language.English); got != "Medium" {
		t.Errorf("Medium.Label(en) = %q, want Medium", got)
	}
	if got := Easy.Badge(); got != "bg-green-100 text-green-700 hover:bg-green-100" {
		t.Errorf("Easy.Badge() = %q", got)
	}
	if got := Difficulty(5).Badge(); got != "bg-gray-100 text-gray-700" {
		t.Errorf("unknown Badge() = %q", got)
	}
	if _, err := ParseDifficulty("extreme"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("ParseDifficulty(extreme) error = %v, want ErrUnknownDifficulty", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := mustNew(t, testDocument())
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, _ = c.Toggle("a")
				_ = c.Progress()
				_ = c.ByCategory()
			}
		}()
	}
	wg.Wait()
	if ex, _ := c.Exercise("a"); ex.Completed {
		t.Error("an even number of toggles should leave exercise a incomplete")
	}
}
