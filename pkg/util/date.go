package util

import "time"

// DisplayTimeFormat is the human-readable timestamp attached to agent payloads.
const DisplayTimeFormat = "2006-01-02 03:04 PM"

// arrivalDateLayouts are the date formats found across uploaded mandi CSV
// exports. Day-first layouts are tried before the US one.
var arrivalDateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"01/02/2006",
}

// ParseArrivalDate parses a CSV arrival date in any supported layout.
// Returns (t, true) if any layout matched.
func ParseArrivalDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range arrivalDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DetectArrivalLayout picks the single layout that parses every date
// string in a file, so ambiguous day/month values resolve the same way
// for the whole dataset. Strings no layout can parse do not vote.
// Returns "" when no one layout covers the file.
func DetectArrivalLayout(samples []string) string {
	for _, layout := range arrivalDateLayouts {
		ok := true
		for _, s := range samples {
			if s == "" {
				continue
			}
			if _, err := time.Parse(layout, s); err == nil {
				continue
			}
			if _, any := ParseArrivalDate(s); !any {
				continue
			}
			ok = false
			break
		}
		if ok {
			return layout
		}
	}
	return ""
}

// ParseArrivalDateIn parses s with the detected file layout, falling
// back to per-value detection when the layout is unknown or misses.
func ParseArrivalDateIn(layout, s string) (time.Time, bool) {
	if layout == "" || s == "" {
		return ParseArrivalDate(s)
	}
	if t, err := time.Parse(layout, s); err == nil {
		return t, true
	}
	return ParseArrivalDate(s)
}

// FormatDisplayTime renders t in the payload timestamp format.
func FormatDisplayTime(t time.Time) string {
	return t.Format(DisplayTimeFormat)
}

// FormatChartLabel renders a short "02 Jan" label for trend charts.
func FormatChartLabel(t time.Time) string {
	return t.Format("02 Jan")
}
