package dateheader

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"github.com/existflow/ironcal/internal/logger"
)

// FieldKind tags one semantic component of a formatted date.
type FieldKind int

const (
	FieldWeekday FieldKind = iota
	FieldDay
	FieldMonth
	FieldYear
)

// FieldSpan is the half-open rune span a semantic field occupies inside a
// formatted date string.
type FieldSpan struct {
	Kind   FieldKind
	Lo, Hi int
}

// Header is the display-ready decomposition of a calendar date. A locale that
// omits a component yields an empty label; callers must tolerate that.
type Header struct {
	Weekday   string
	Day       string
	MonthYear string
}

// Decomposer turns a calendar date into the date-header labels using the
// locale's own full-date pattern, never hardcoded month or weekday names.
// The cache key includes the locale, so a locale change can never serve a
// decomposition computed under the old locale.
type Decomposer struct {
	mu     sync.Mutex
	locale monday.Locale

	cacheKey cacheKey
	cached   Header
	valid    bool
}

type cacheKey struct {
	year   int
	month  time.Month
	day    int
	locale monday.Locale
}

// New creates a decomposer for a BCP 47 locale tag such as "en-US" or
// "fr-FR". Unknown or malformed tags fall back to en_US.
func New(tag string) *Decomposer {
	return &Decomposer{locale: resolveLocale(tag)}
}

// SetLocale re-targets the decomposer. Invoked from the locale-change
// notification; the notification itself carries no payload, the new tag is
// re-read from configuration.
func (d *Decomposer) SetLocale(tag string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locale = resolveLocale(tag)
	d.valid = false
}

// Decompose produces the header labels for a calendar date.
func (d *Decomposer) Decompose(year int, month time.Month, day int) Header {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := cacheKey{year: year, month: month, day: day, locale: d.locale}
	if d.valid && d.cacheKey == key {
		return d.cached
	}

	formatted, spans := formatWithFields(year, month, day, d.locale)
	runes := []rune(formatted)

	slice := func(kind FieldKind) string {
		for _, s := range spans {
			if s.Kind == kind && s.Lo <= s.Hi && s.Hi <= len(runes) {
				return string(runes[s.Lo:s.Hi])
			}
		}
		return ""
	}

	monthName := slice(FieldMonth)
	yearLabel := slice(FieldYear)

	h := Header{
		Weekday:   slice(FieldWeekday),
		Day:       slice(FieldDay),
		MonthYear: monthName + " " + yearLabel,
	}

	d.cacheKey = key
	d.cached = h
	d.valid = true
	return h
}

// layoutTokens maps Go reference-layout tokens to semantic fields. Longer
// tokens come first so "January" is not consumed as "Jan" plus literals.
var layoutTokens = []struct {
	token string
	kind  FieldKind
}{
	{"Monday", FieldWeekday},
	{"Mon", FieldWeekday},
	{"January", FieldMonth},
	{"Jan", FieldMonth},
	{"2006", FieldYear},
	{"02", FieldDay},
	{"06", FieldYear},
	{"_2", FieldDay},
	{"2", FieldDay},
	{"1", FieldMonth},
}

// formatWithFields renders the locale's full-date pattern for the date and
// returns the string together with the rune span of each semantic field. The
// string is the full pattern rendered in one piece, so context-sensitive
// forms (genitive month names in ru, uk, ...) come out exactly as the locale
// renders them; a token formatted in isolation would lose the day-number
// context that selects those forms. Spans are then derived by rendering each
// layout prefix that ends on a token boundary: the prefix keeps the same
// context, so its rendered length is the rune offset of that boundary in the
// full string.
func formatWithFields(year int, month time.Month, day int, locale monday.Locale) (string, []FieldSpan) {
	layout, ok := monday.FullFormatsByLocale[locale]
	if !ok {
		layout = monday.FullFormatsByLocale[monday.LocaleEnUS]
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	formatted := monday.Format(t, layout, locale)

	renderedLen := func(prefix string) int {
		return len([]rune(monday.Format(t, prefix, locale)))
	}

	var spans []FieldSpan
	i := 0
	for i < len(layout) {
		matched := false
		for _, lt := range layoutTokens {
			if strings.HasPrefix(layout[i:], lt.token) {
				lo := renderedLen(layout[:i])
				hi := renderedLen(layout[:i+len(lt.token)])
				spans = append(spans, FieldSpan{Kind: lt.kind, Lo: lo, Hi: hi})
				i += len(lt.token)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		_, size := utf8.DecodeRuneInString(layout[i:])
		i += size
	}

	logger.Debug("decomposed date header",
		logger.F("locale", string(locale)), logger.F("formatted", formatted))
	return formatted, spans
}

// resolveLocale maps a BCP 47 tag onto the closest locale monday has tables
// for: exact base_REGION first, then any locale sharing the language base.
func resolveLocale(tag string) monday.Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		return monday.LocaleEnUS
	}

	base, _ := parsed.Base()
	region, _ := parsed.Region()

	exact := monday.Locale(base.String() + "_" + region.String())
	if _, ok := monday.FullFormatsByLocale[exact]; ok {
		return exact
	}

	prefix := base.String() + "_"
	for _, candidate := range monday.ListLocales() {
		if strings.HasPrefix(string(candidate), prefix) {
			return candidate
		}
	}
	return monday.LocaleEnUS
}
