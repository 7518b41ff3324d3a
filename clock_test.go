package watchface

import (
	"testing"
	"time"
)

func TestDisplayHour12h(t *testing.T) {
	for h := 0; h < 24; h++ {
		got := DisplayHour(h, false)
		if got < 1 || got > 12 {
			t.Errorf("DisplayHour(%d, false) = %d, want in [1,12]", h, got)
		}
	}
	if got := DisplayHour(0, false); got != 12 {
		t.Errorf("DisplayHour(0) = %d, want 12", got)
	}
	if got := DisplayHour(12, false); got != 12 {
		t.Errorf("DisplayHour(12) = %d, want 12", got)
	}
	if got := DisplayHour(13, false); got != 1 {
		t.Errorf("DisplayHour(13) = %d, want 1", got)
	}
}

func TestDisplayHour24h(t *testing.T) {
	for h := 0; h < 24; h++ {
		if got := DisplayHour(h, true); got != h {
			t.Errorf("DisplayHour(%d, true) = %d, want %d", h, got, h)
		}
	}
}

func TestFormatMinutePadded(t *testing.T) {
	for m := 0; m < 60; m++ {
		s := FormatMinute(m)
		if len(s) != 2 {
			t.Errorf("FormatMinute(%d) = %q, want length 2", m, s)
		}
	}
	if got := FormatMinute(5); got != "05" {
		t.Errorf("FormatMinute(5) = %q, want 05", got)
	}
}

func TestDisplayedTimeScenario(t *testing.T) {
	r := NewClockReading(time.Date(2026, 10, 19, 14, 5, 0, 0, time.UTC))
	got := FormatHour(DisplayHour(r.Hour24, false)) + ":" + FormatMinute(r.Minute)
	if got != "2:05" {
		t.Errorf("time = %q, want 2:05", got)
	}
}

func TestNewClockReading(t *testing.T) {
	loc := time.FixedZone("TEST", 3600)
	r := NewClockReading(time.Date(2026, 1, 2, 23, 59, 0, 0, loc))
	if r.Hour24 != 23 || r.Minute != 59 {
		t.Errorf("reading = %d:%d, want 23:59", r.Hour24, r.Minute)
	}
	if r.Timezone != "TEST" {
		t.Errorf("Timezone = %q, want TEST", r.Timezone)
	}
}

func TestDateFormatterEnglish(t *testing.T) {
	f := NewDateFormatter("en-US")
	d := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) // a Monday
	if got := f.DayOfWeek(d); got != "MON" {
		t.Errorf("DayOfWeek = %q, want MON", got)
	}
	if got := f.MediumDate(d); got != "OCT 19, 2026" {
		t.Errorf("MediumDate = %q, want OCT 19, 2026", got)
	}
}

func TestDateFormatterGerman(t *testing.T) {
	f := NewDateFormatter("de-DE")
	d := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	if got := f.MediumDate(d); got != "19.10.2026" {
		t.Errorf("MediumDate = %q, want 19.10.2026", got)
	}
	if f.Locale() != dateLocales[2].locale {
		t.Errorf("Locale = %v, want %v", f.Locale(), dateLocales[2].locale)
	}
}

func TestDateFormatterFallback(t *testing.T) {
	for _, tag := range []string{"", "not a tag", "zz"} {
		f := NewDateFormatter(tag)
		if got := f.Locale(); got != dateLocales[0].locale {
			t.Errorf("NewDateFormatter(%q).Locale() = %v, want %v", tag, got, dateLocales[0].locale)
		}
	}
}
