package analytics

import (
	"time"

	"compras/internal/core"
)

// Trend labels for the monthly comparison.
const (
	TrendUp     = "subida"
	TrendDown   = "bajada"
	TrendStable = "estable"
)

// StoreComparison holds one store's spend in the two compared months.
type StoreComparison struct {
	Current       float64 `json:"actual"`
	Previous      float64 `json:"anterior"`
	PercentChange float64 `json:"variacion"`
}

// MonthlyComparison contrasts the current calendar month with the one
// before it, overall and per store.
type MonthlyComparison struct {
	CurrentYear    int                        `json:"anioActual"`
	CurrentMonth   time.Month                 `json:"mesActual"`
	PreviousYear   int                        `json:"anioAnterior"`
	PreviousMonth  time.Month                 `json:"mesAnterior"`
	CurrentTotal   float64                    `json:"gastoActual"`
	PreviousTotal  float64                    `json:"gastoMesAnterior"`
	PercentChange  float64                    `json:"variacionPorcentaje"`
	AbsoluteChange float64                    `json:"variacionImporte"`
	Trend          string                     `json:"tendencia"`
	ByStore        map[string]StoreComparison `json:"breakdownPorTienda"`
	HasData        bool                       `json:"hasData"`
}

// CompareMonths computes the month-over-month comparison relative to
// now. Empty input yields a zeroed result with HasData false, never an
// error.
func CompareMonths(purchases []core.Purchase, now time.Time) MonthlyComparison {
	curYear, curMonth := now.Year(), now.Month()
	prev := now.AddDate(0, 0, -now.Day()) // last day of previous month
	prevYear, prevMonth := prev.Year(), prev.Month()

	cmp := MonthlyComparison{
		CurrentYear:   curYear,
		CurrentMonth:  curMonth,
		PreviousYear:  prevYear,
		PreviousMonth: prevMonth,
		ByStore:       make(map[string]StoreComparison),
	}

	for _, p := range purchases {
		store := core.CanonicalStore(p.Store)
		entry := cmp.ByStore[store]
		switch {
		case p.Date.Year() == curYear && p.Date.Month() == curMonth:
			cmp.CurrentTotal += p.Total
			entry.Current += p.Total
		case p.Date.Year() == prevYear && p.Date.Month() == prevMonth:
			cmp.PreviousTotal += p.Total
			entry.Previous += p.Total
		default:
			continue
		}
		cmp.ByStore[store] = entry
	}

	for store, entry := range cmp.ByStore {
		if entry.Previous > 0 {
			entry.PercentChange = (entry.Current - entry.Previous) / entry.Previous * 100
		}
		cmp.ByStore[store] = entry
	}

	cmp.AbsoluteChange = cmp.CurrentTotal - cmp.PreviousTotal
	if cmp.PreviousTotal > 0 {
		cmp.PercentChange = cmp.AbsoluteChange / cmp.PreviousTotal * 100
	}
	switch {
	case cmp.AbsoluteChange > 0:
		cmp.Trend = TrendUp
	case cmp.AbsoluteChange < 0:
		cmp.Trend = TrendDown
	default:
		cmp.Trend = TrendStable
	}
	cmp.HasData = cmp.CurrentTotal > 0 || cmp.PreviousTotal > 0
	return cmp
}
