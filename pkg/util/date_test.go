package util

import (
	"testing"
	"time"
)

func TestParseArrivalDateLayouts(t *testing.T) {
	want := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"29-08-2026", "29/08/2026", "2026-08-29"} {
		got, ok := ParseArrivalDate(s)
		if !ok {
			t.Fatalf("expected ok for %q", s)
		}
		if !got.Equal(want) {
			t.Fatalf("parsed %q to %v", s, got)
		}
	}
}

func TestParseArrivalDateUSLayout(t *testing.T) {
	// Day > 12 forces the day-first layouts to fail; month-first must catch it.
	got, ok := ParseArrivalDate("08/29/2026")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Month() != time.August || got.Day() != 29 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseArrivalDateInvalid(t *testing.T) {
	if _, ok := ParseArrivalDate(""); ok {
		t.Fatalf("empty string should not parse")
	}
	if _, ok := ParseArrivalDate("not-a-date"); ok {
		t.Fatalf("garbage should not parse")
	}
}

func TestDetectArrivalLayout(t *testing.T) {
	// A forced month-first value makes the whole file month-first.
	layout := DetectArrivalLayout([]string{"01/13/2025", "01/05/2025"})
	if layout != "01/02/2006" {
		t.Fatalf("layout = %q, want month-first", layout)
	}

	// Ambiguous-only files stay day-first.
	layout = DetectArrivalLayout([]string{"05/01/2025", "06/01/2025"})
	if layout != "02/01/2006" {
		t.Fatalf("layout = %q, want day-first", layout)
	}

	// Garbage rows do not veto a layout; empty input picks the default.
	layout = DetectArrivalLayout([]string{"05-01-2025", "not-a-date", ""})
	if layout != "02-01-2006" {
		t.Fatalf("layout = %q", layout)
	}
}

func TestParseArrivalDateInAppliesFileLayout(t *testing.T) {
	got, ok := ParseArrivalDateIn("01/02/2006", "01/05/2025")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Month() != time.January || got.Day() != 5 {
		t.Fatalf("parsed %v, want Jan 5", got)
	}

	// Unknown layout falls back to per-value detection.
	got, ok = ParseArrivalDateIn("", "05/01/2025")
	if !ok || got.Day() != 5 || got.Month() != time.January {
		t.Fatalf("fallback parsed %v ok=%v", got, ok)
	}
}

func TestParseFloat(t *testing.T) {
	if v := ParseFloat(" 2,450.50 "); v != 2450.50 {
		t.Fatalf("unexpected %v", v)
	}
	if v := ParseFloat("n/a"); v != 0 {
		t.Fatalf("unexpected %v", v)
	}
}
