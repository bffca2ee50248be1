package core

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StoreColors assigns a fixed display color to every known vendor.
// Membership in this map also marks a cleaned free-form name as already
// canonical.
var StoreColors = map[string]string{
	"Mercadona": "#10b981",
	"BonArea":   "#3b82f6",
	"Lidl":      "#f59e0b",
	"Carrefour": "#ef4444",
	"Aldi":      "#8b5cf6",
	"Consum":    "#ec4899",
	"Eroski":    "#14b8a6",
	"Dia":       "#f97316",
	"Condis":    "#06b6d4",
	"Caprabo":   "#a855f7",
	StoreOther:  "#64748b",
}

// storeRules are tested in order; the first matching token wins. The
// order is inherited business logic, not a documented rule: do not
// reorder without product-owner signoff.
var storeRules = []struct {
	name    string
	tokens  []string
	exclude string
}{
	{name: "Mercadona", tokens: []string{"mercadona"}},
	{name: "BonArea", tokens: []string{"bonarea", "bon area", "bonificacion"}},
	{name: "Lidl", tokens: []string{"lidl"}},
	{name: "Carrefour", tokens: []string{"carrefour"}},
	{name: "Aldi", tokens: []string{"aldi"}},
	{name: "Consum", tokens: []string{"consum"}},
	{name: "Eroski", tokens: []string{"eroski"}},
	{name: "Dia", tokens: []string{"dia"}, exclude: "media"},
	{name: "Condis", tokens: []string{"condis"}},
	{name: "Caprabo", tokens: []string{"caprabo"}},
}

// corporateSuffix matches trailing "S.A."/"S.L." style suffixes.
var corporateSuffix = regexp.MustCompile(`(?i),?\s*(S\.?A\.?|S\.?L\.?)$`)

// NormalizeText lowercases, strips diacritics and trims. Shared by the
// store canonicalizer, the header normalizer and product search.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// CanonicalStore maps a raw vendor cell onto the fixed vendor set.
// Unknown names keep their cleaned literal (corporate suffix removed);
// an empty result falls back to StoreOther.
func CanonicalStore(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return StoreOther
	}
	name := NormalizeText(raw)

	for _, rule := range storeRules {
		if rule.exclude != "" && strings.Contains(name, rule.exclude) {
			continue
		}
		for _, tok := range rule.tokens {
			if strings.Contains(name, tok) {
				return rule.name
			}
		}
	}

	clean := strings.TrimSpace(corporateSuffix.ReplaceAllString(strings.TrimSpace(raw), ""))
	if clean == "" {
		return StoreOther
	}
	if _, known := StoreColors[clean]; known {
		return clean
	}
	return clean
}

// StoreColor returns the display color for a canonicalized store.
func StoreColor(store string) string {
	if c, ok := StoreColors[store]; ok {
		return c
	}
	return StoreColors[StoreOther]
}
