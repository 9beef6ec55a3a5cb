package dateheader

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
)

func TestDecomposeEnUS(t *testing.T) {
	d := New("en-US")
	h := d.Decompose(2024, time.March, 5)

	assert.Equal(t, "Tuesday", h.Weekday)
	assert.Equal(t, "5", h.Day)
	assert.Equal(t, "March 2024", h.MonthYear)
}

func TestDecomposeUsesLocaleTables(t *testing.T) {
	d := New("fr-FR")
	h := d.Decompose(2024, time.March, 5)

	assert.Equal(t, "mardi", h.Weekday)
	assert.Equal(t, "5", h.Day)
	assert.Equal(t, "mars 2024", h.MonthYear)
}

func TestSetLocaleInvalidatesCache(t *testing.T) {
	d := New("en-US")

	first := d.Decompose(2024, time.March, 5)
	assert.Equal(t, "Tuesday", first.Weekday)

	// The same date must re-render under the new locale, never from cache.
	d.SetLocale("fr-FR")
	second := d.Decompose(2024, time.March, 5)
	assert.Equal(t, "mardi", second.Weekday)
	assert.Equal(t, "mars 2024", second.MonthYear)
}

func TestDecomposeRepeatedCallsAgree(t *testing.T) {
	d := New("en-US")
	a := d.Decompose(2024, time.March, 5)
	b := d.Decompose(2024, time.March, 5)
	assert.Equal(t, a, b)

	c := d.Decompose(2024, time.March, 6)
	assert.Equal(t, "Wednesday", c.Weekday)
	assert.Equal(t, "6", c.Day)
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		tag  string
		want monday.Locale
	}{
		{"en-US", monday.LocaleEnUS},
		{"en_US", monday.LocaleEnUS},
		{"fr-FR", monday.LocaleFrFR},
		{"de-DE", monday.LocaleDeDE},
		{"not a tag!", monday.LocaleEnUS},
		{"", monday.LocaleEnUS},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resolveLocale(tc.tag), "tag %q", tc.tag)
	}
}

func TestDecomposeGenitiveMonth(t *testing.T) {
	// Russian renders the month in genitive when it follows the day number;
	// the labels must come from that contextual form, not the standalone one.
	d := New("ru-RU")
	h := d.Decompose(2024, time.October, 15)

	assert.Equal(t, "Вторник", h.Weekday)
	assert.Equal(t, "15", h.Day)
	assert.Equal(t, "октября 2024", h.MonthYear)
}

func TestFormatWithFieldsMatchesFullRendering(t *testing.T) {
	// The string the spans index into must be exactly what the locale's
	// full-date pattern renders in one piece.
	locales := []monday.Locale{
		monday.LocaleEnUS,
		monday.LocaleFrFR,
		monday.LocaleDeDE,
		monday.LocaleEsES,
		monday.LocaleRuRU,
		monday.LocalePlPL,
	}
	date := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)

	for _, locale := range locales {
		formatted, spans := formatWithFields(2024, time.October, 15, locale)
		want := monday.Format(date, monday.FullFormatsByLocale[locale], locale)
		assert.Equal(t, want, formatted, "locale %s", locale)

		runes := []rune(formatted)
		for _, s := range spans {
			assert.LessOrEqual(t, 0, s.Lo, "locale %s", locale)
			assert.LessOrEqual(t, s.Lo, s.Hi, "locale %s", locale)
			assert.LessOrEqual(t, s.Hi, len(runes), "locale %s", locale)
		}
	}
}

func TestFormatWithFieldsSpans(t *testing.T) {
	formatted, spans := formatWithFields(2024, time.March, 5, monday.LocaleEnUS)
	assert.Equal(t, "Tuesday, March 5, 2024", formatted)

	runes := []rune(formatted)
	byKind := map[FieldKind]string{}
	for _, s := range spans {
		byKind[s.Kind] = string(runes[s.Lo:s.Hi])
	}
	assert.Equal(t, "Tuesday", byKind[FieldWeekday])
	assert.Equal(t, "March", byKind[FieldMonth])
	assert.Equal(t, "5", byKind[FieldDay])
	assert.Equal(t, "2024", byKind[FieldYear])
}
