package core

import (
	"strconv"
	"strings"
	"time"
)

// isoLayouts are tried in order when a date string carries no slashes.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
}

// ParseDate converts a raw cell into a calendar date. Slash-separated
// input is read as DD/MM/YYYY (European convention); anything else goes
// through a set of ISO-ish layouts. It never fails: unparseable input
// degrades to the current time so one bad cell cannot abort a batch.
func ParseDate(raw string) time.Time {
	return ParseDateAt(raw, time.Now())
}

// ParseDateAt is ParseDate with an explicit fallback instant, which
// keeps the pipeline deterministic under test.
func ParseDateAt(raw string, now time.Time) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return now
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
			month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
			year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
			if errD == nil && errM == nil && errY == nil {
				return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
			}
		}
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t)
		}
	}
	return now
}

// Midnight normalizes a timestamp to 00:00 local time on the same day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
