package analytics

import (
	"sort"
	"time"

	"compras/internal/core"
)

// StoreSpend is one slice of the per-store spend distribution.
type StoreSpend struct {
	Store   string  `json:"tienda"`
	Amount  float64 `json:"monto"`
	Percent float64 `json:"porcentaje"`
	Color   string  `json:"color"`
}

// PriceRange is one bucket of the unit-price histogram.
type PriceRange struct {
	Label string `json:"rango"`
	Count int    `json:"cantidad"`
}

// WeekdaySpend is one day of the trailing-week spend series.
type WeekdaySpend struct {
	Day    string    `json:"dia"`
	Date   time.Time `json:"fecha"`
	Amount float64   `json:"monto"`
}

var weekdayNames = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// TotalSpend sums the total of every purchase.
func TotalSpend(purchases []core.Purchase) float64 {
	var sum float64
	for _, p := range purchases {
		sum += p.Total
	}
	return sum
}

// SpendBetween sums totals for purchases within the inclusive day
// range [from, to].
func SpendBetween(purchases []core.Purchase, from, to time.Time) float64 {
	start := core.Midnight(from)
	end := core.Midnight(to).Add(24*time.Hour - time.Nanosecond)
	var sum float64
	for _, p := range purchases {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		sum += p.Total
	}
	return sum
}

// StoreDistribution groups spend by canonicalized store and computes
// each store's share of the grand total. Percentages sum to 100 for
// non-empty input (within floating-point tolerance). Sorted by amount,
// largest first.
func StoreDistribution(purchases []core.Purchase) []StoreSpend {
	amounts := make(map[string]float64)
	var order []string
	for _, p := range purchases {
		store := core.CanonicalStore(p.Store)
		if _, seen := amounts[store]; !seen {
			order = append(order, store)
		}
		amounts[store] += p.Total
	}

	var grand float64
	for _, amount := range amounts {
		grand += amount
	}

	out := make([]StoreSpend, 0, len(order))
	for _, store := range order {
		entry := StoreSpend{
			Store:  store,
			Amount: amounts[store],
			Color:  core.StoreColor(store),
		}
		if grand > 0 {
			entry.Percent = amounts[store] / grand * 100
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// PriceRangeDistribution buckets purchases by unit price.
func PriceRangeDistribution(purchases []core.Purchase) []PriceRange {
	ranges := []PriceRange{
		{Label: "0-1€"},
		{Label: "1-5€"},
		{Label: "5-10€"},
		{Label: "10-20€"},
		{Label: "+20€"},
	}
	for _, p := range purchases {
		switch {
		case p.UnitPrice < 1:
			ranges[0].Count++
		case p.UnitPrice < 5:
			ranges[1].Count++
		case p.UnitPrice < 10:
			ranges[2].Count++
		case p.UnitPrice < 20:
			ranges[3].Count++
		default:
			ranges[4].Count++
		}
	}
	return ranges
}

// WeeklySpend returns per-day totals for the seven days ending at now,
// oldest first.
func WeeklySpend(purchases []core.Purchase, now time.Time) []WeekdaySpend {
	out := make([]WeekdaySpend, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := core.Midnight(now.AddDate(0, 0, -offset))
		entry := WeekdaySpend{
			Day:  weekdayNames[int(day.Weekday())],
			Date: day,
		}
		for _, p := range purchases {
			if core.SameDay(p.Date, day) {
				entry.Amount += p.Total
			}
		}
		out = append(out, entry)
	}
	return out
}

// SpendByCategory sums purchase totals per product category. Every
// category appears in the result, zero-valued when unused.
func SpendByCategory(purchases []core.Purchase) map[core.Category]float64 {
	spend := make(map[core.Category]float64, len(core.Categories))
	for _, cat := range core.Categories {
		spend[cat] = 0
	}
	for _, p := range purchases {
		spend[core.CategorizeProduct(p.Product)] += p.Total
	}
	return spend
}

// CategoryPercentages converts per-category spend into shares of the
// grand total; all zeroes when nothing was spent.
func CategoryPercentages(purchases []core.Purchase) map[core.Category]float64 {
	spend := SpendByCategory(purchases)
	var grand float64
	for _, amount := range spend {
		grand += amount
	}
	percent := make(map[core.Category]float64, len(spend))
	for cat, amount := range spend {
		if grand > 0 {
			percent[cat] = amount / grand * 100
		} else {
			percent[cat] = 0
		}
	}
	return percent
}
