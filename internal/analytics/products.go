package analytics

import (
	"sort"
	"strings"

	"compras/internal/core"
)

// ProductStats aggregates the purchase history of one product.
type ProductStats struct {
	Product       string  `json:"producto"`
	Count         int     `json:"numCompras"`
	TotalSpend    float64 `json:"gastoTotal"`
	TotalQuantity float64 `json:"cantidadTotal"`
	AvgPrice      float64 `json:"precioPromedio"`
	MinPrice      float64 `json:"precioMin"`
	MaxPrice      float64 `json:"precioMax"`
	// PercentChange compares the earliest and latest unit price.
	PercentChange float64 `json:"variacion"`
}

// RankProducts groups purchases by normalized product name and computes
// price and spend statistics per product. Sort order is by purchase
// frequency by default; pass bySpend to rank by total spend instead
// (both orders are used by different dashboard views).
func RankProducts(purchases []core.Purchase, bySpend bool) []ProductStats {
	type group struct {
		items []core.Purchase
	}
	groups := make(map[string]*group)
	var order []string
	for _, p := range purchases {
		key := strings.ToLower(strings.TrimSpace(p.Product))
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, p)
	}

	out := make([]ProductStats, 0, len(order))
	for _, key := range order {
		items := groups[key].items
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Date.Before(items[j].Date)
		})

		stats := ProductStats{
			Product:  key,
			Count:    len(items),
			MinPrice: items[0].UnitPrice,
			MaxPrice: items[0].UnitPrice,
		}
		var priceSum float64
		for _, p := range items {
			stats.TotalSpend += p.Total
			stats.TotalQuantity += p.Quantity
			priceSum += p.UnitPrice
			if p.UnitPrice < stats.MinPrice {
				stats.MinPrice = p.UnitPrice
			}
			if p.UnitPrice > stats.MaxPrice {
				stats.MaxPrice = p.UnitPrice
			}
		}
		stats.AvgPrice = priceSum / float64(len(items))

		first, last := items[0], items[len(items)-1]
		if first.UnitPrice > 0 {
			stats.PercentChange = (last.UnitPrice - first.UnitPrice) / first.UnitPrice * 100
		}
		out = append(out, stats)
	}

	if bySpend {
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpend > out[j].TotalSpend })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	}
	return out
}

// TopProducts returns at most n product rankings by frequency.
func TopProducts(purchases []core.Purchase, n int) []ProductStats {
	ranked := RankProducts(purchases, false)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// UniqueProducts returns the sorted set of product descriptions,
// excluding summary lines.
func UniqueProducts(purchases []core.Purchase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range purchases {
		if p.Product == "" || core.IsSummaryRow(p.Product) {
			continue
		}
		if _, ok := seen[p.Product]; ok {
			continue
		}
		seen[p.Product] = struct{}{}
		out = append(out, p.Product)
	}
	sort.Strings(out)
	return out
}

// UniqueStores returns the sorted set of canonicalized store names.
func UniqueStores(purchases []core.Purchase) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range purchases {
		store := core.CanonicalStore(p.Store)
		if _, ok := seen[store]; ok {
			continue
		}
		seen[store] = struct{}{}
		out = append(out, store)
	}
	sort.Strings(out)
	return out
}
