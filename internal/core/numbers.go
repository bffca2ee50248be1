package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a raw numeric cell into a non-negative float.
// It tolerates the decimal comma, a euro sign and surrounding
// whitespace. Parse failure coerces to 0 rather than erroring, and the
// result is never NaN; negative inputs are clamped to 0 so the
// Purchase invariants hold even for malformed sheets.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimSpace(s)
	// Normalize decimal comma
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}
