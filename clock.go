package watchface

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClockReading is the wall-clock time a single frame is drawn for.
type ClockReading struct {
	Hour24   int // [0, 23]
	Minute   int // [0, 59]
	Timezone string
	Time     time.Time
}

// NewClockReading derives a reading from t in t's location.
func NewClockReading(t time.Time) ClockReading {
	return ClockReading{
		Hour24:   t.Hour(),
		Minute:   t.Minute(),
		Timezone: t.Location().String(),
		Time:     t,
	}
}

// DisplayHour maps a 24-hour value onto the hour shown on the face.
// In 12-hour mode 0 becomes 12 and afternoon hours drop by 12.
func DisplayHour(hour24 int, is24h bool) int {
	if is24h {
		return hour24
	}
	h := hour24
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return h
}

// FormatHour returns the hour text drawn in the bold style.
func FormatHour(displayHour int) string {
	return strconv.Itoa(displayHour)
}

// FormatMinute returns the minute zero-padded to two digits.
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d", minute)
}

// Clock is the time source used by the engine and tick scheduler.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

// SystemClock is the Clock backed by the time package.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// --- Date line ---

// dateLocale pairs a monday locale with the medium date layout the platform
// uses for it.
type dateLocale struct {
	tag    language.Tag
	locale monday.Locale
	medium string
}

// dateLocales lists the supported locales; the first entry is the fallback.
var dateLocales = []dateLocale{
	{language.AmericanEnglish, monday.LocaleEnUS, "Jan 2, 2006"},
	{language.BritishEnglish, monday.LocaleEnGB, "2 Jan 2006"},
	{language.German, monday.LocaleDeDE, "02.01.2006"},
	{language.French, monday.LocaleFrFR, "2 Jan 2006"},
	{language.Spanish, monday.LocaleEsES, "2 Jan 2006"},
	{language.Italian, monday.LocaleItIT, "2 Jan 2006"},
	{language.BrazilianPortuguese, monday.LocalePtBR, "2 de Jan de 2006"},
	{language.Dutch, monday.LocaleNlNL, "2 Jan 2006"},
	{language.Japanese, monday.LocaleJaJP, "2006/01/02"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter renders the day-of-week and medium date shown under the time,
// upper-cased with the locale's casing rules.
type DateFormatter struct {
	loc   dateLocale
	upper cases.Caser
}

// NewDateFormatter picks the closest supported locale for a BCP 47 tag such
// as "en-US" or "de". Unknown or empty tags fall back to American English.
func NewDateFormatter(tag string) *DateFormatter {
	want, err := language.Parse(tag)
	if err != nil {
		want = language.AmericanEnglish
	}
	_, idx, conf := dateMatcher.Match(want)
	if conf == language.No {
		idx = 0
	}
	loc := dateLocales[idx]
	return &DateFormatter{
		loc:   loc,
		upper: cases.Upper(loc.tag),
	}
}

// Locale returns the monday locale in use.
func (f *DateFormatter) Locale() monday.Locale {
	return f.loc.locale
}

// DayOfWeek returns the abbreviated weekday, e.g. "MON".
func (f *DateFormatter) DayOfWeek(t time.Time) string {
	return f.upper.String(monday.Format(t, "Mon", f.loc.locale))
}

// MediumDate returns the medium-form date, e.g. "OCT 19, 2026".
func (f *DateFormatter) MediumDate(t time.Time) string {
	return f.upper.String(monday.Format(t, f.loc.medium, f.loc.locale))
}
