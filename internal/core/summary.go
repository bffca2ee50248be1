package core

import "strings"

// summaryTerms is the exclusion vocabulary for non-purchase rows:
// totals, tax lines, returns. Matched as substrings of the lowercased
// description.
var summaryTerms = []string{
	"suma total", "total general",
	"total", "subtotal", "sub-total",
	"iva", "vat", "tax",
	"base imponible", "base",
	"recargo", "equivalencia",
	"devolución", "devolucion", "devoluc",
}

// IsSummaryRow reports whether a description belongs to a summary line
// (grand totals, IVA, subtotals, returns) rather than a purchased item.
//
// Policy: substring containment for the vocabulary above, exact match
// for a bare "-". Substring matching is deliberate and shared with the
// search/exclusion behavior of the source sheets; it is known to
// over-exclude products whose names contain a vocabulary term (for
// example anything containing "total").
func IsSummaryRow(description string) bool {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" || desc == "-" {
		return true
	}
	for _, term := range summaryTerms {
		if strings.Contains(desc, term) {
			return true
		}
	}
	return false
}

// MatchesProduct reports whether a product description contains the
// query, ignoring case and diacritics. An empty query matches all.
func MatchesProduct(query, description string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	if description == "" {
		return false
	}
	return strings.Contains(NormalizeText(description), NormalizeText(query))
}
