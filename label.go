package penpad

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys of the pad's status labels.
const (
	strokeKey = "%d strokes"
	brushKey  = "Line width: %dpx"
)

// SupportedLanguages lists the languages labels are translated into.
// The first entry is the fallback.
var SupportedLanguages = []language.Tag{language.English, language.Russian}

var (
	labels        = newLabelCatalog()
	labelsMatcher = language.NewMatcher(SupportedLanguages)
)

func newLabelCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key string, msg ...catalog.Message) {
		if err := b.Set(tag, key, msg...); err != nil {
			panic("penpad: label catalog: " + err.Error())
		}
	}

	set(language.English, strokeKey, plural.Selectf(1, "%d",
		plural.One, "%d stroke",
		plural.Other, "%d strokes"))
	set(language.English, brushKey, catalog.String("Line width: %dpx"))

	set(language.Russian, strokeKey, plural.Selectf(1, "%d",
		plural.One, "%d штрих",
		plural.Few, "%d штриха",
		plural.Many, "%d штрихов",
		plural.Other, "%d штриха"))
	set(language.Russian, brushKey, catalog.String("Толщина линии: %dpx"))
	return b
}

// MatchLanguage picks the supported language closest to the given BCP 47
// preferences, such as an Accept-Language header value. It falls back to
// English.
func MatchLanguage(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		t, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, t...)
	}
	_, i, _ := labelsMatcher.Match(tags...)
	return SupportedLanguages[i]
}

func printer(tag language.Tag) *message.Printer {
	_, i, _ := labelsMatcher.Match(tag)
	return message.NewPrinter(SupportedLanguages[i], message.Catalog(labels))
}

// StrokeLabel formats a stroke count for display, e.g. "3 strokes".
func StrokeLabel(tag language.Tag, n int) string {
	return printer(tag).Sprintf(strokeKey, n)
}

// BrushLabel formats a brush width for display, e.g. "Line width: 3px".
func BrushLabel(tag language.Tag, width int) string {
	return printer(tag).Sprintf(brushKey, width)
}
