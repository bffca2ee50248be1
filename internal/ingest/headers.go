package ingest

import (
	"regexp"

	"compras/internal/core"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeHeaders turns the raw header row into canonical field keys:
// lowercase, diacritics stripped, trimmed, whitespace runs collapsed to
// a single underscore. No deduplication happens here; when two headers
// normalize to the same key the row mapper lets the last one win, an
// accepted ambiguity of the source sheets.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		key := core.NormalizeText(h)
		out[i] = whitespaceRun.ReplaceAllString(key, "_")
	}
	return out
}

// MapRow zips canonical headers with one data row. Rows shorter than
// the header list leave the trailing keys empty; cells beyond the
// header length are dropped.
func MapRow(headers []string, row []string) map[string]string {
	rec := make(map[string]string, len(headers))
	for i, key := range headers {
		if i < len(row) {
			rec[key] = row[i]
		} else {
			rec[key] = ""
		}
	}
	return rec
}
