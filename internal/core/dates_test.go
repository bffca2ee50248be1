package core

import (
	"testing"
	"time"
)

func TestParseDateAt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		input string
		year  int
		month time.Month
		day   int
	}{
		{"slash dd/mm/yyyy", "15/02/2026", 2026, time.February, 15},
		{"slash single digits", "3/1/2025", 2025, time.January, 3},
		{"slash with spaces", " 14/02/2026 ", 2026, time.February, 14},
		{"iso date", "2026-02-15", 2026, time.February, 15},
		{"iso datetime", "2026-02-15 10:30:00", 2026, time.February, 15},
		{"dash dd-mm-yyyy", "15-02-2026", 2026, time.February, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateAt(tt.input, now)
			y, m, d := got.Date()
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("ParseDateAt(%q) = %v, want %04d-%02d-%02d", tt.input, got, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestParseDateAtFallback(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.Local)

	for _, input := range []string{"", "   ", "not a date", "99/99", "mañana"} {
		got := ParseDateAt(input, now)
		if !got.Equal(now) {
			t.Errorf("ParseDateAt(%q) = %v, want fallback %v", input, got, now)
		}
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2026, time.February, 15, 18, 45, 12, 99, time.Local)
	got := Midnight(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Midnight(%v) = %v, want 00:00:00", in, got)
	}
	if !SameDay(in, got) {
		t.Errorf("Midnight changed the calendar day: %v vs %v", in, got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.February, 15, 0, 0, 1, 0, time.Local)
	b := time.Date(2026, time.February, 15, 23, 59, 59, 0, time.Local)
	c := time.Date(2026, time.February, 16, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Error("expected same day for two instants on Feb 15")
	}
	if SameDay(b, c) {
		t.Error("expected different days across midnight")
	}
}
