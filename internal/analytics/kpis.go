package analytics

import (
	"strings"
	"time"

	"compras/internal/core"
	"compras/internal/ingest"
)

// ComputeKPIs builds the headline snapshot for one data load:
//   - fortnight spend, summed from the price-history table over the
//     trailing 15 days;
//   - invoice count, the number of unique (day, store) pairs in the
//     daily log (no date filter, the log itself is already scoped);
//   - alert count at the default threshold.
//
// Missing or header-only tables contribute zero, never an error.
func ComputeKPIs(purchases []core.Purchase, priceHistory, dailyLog [][]string, now time.Time) core.KPISnapshot {
	snapshot := core.KPISnapshot{
		FortnightSpend: fortnightSpend(priceHistory, now),
		InvoiceCount:   uniqueInvoices(dailyLog, now),
	}
	snapshot.AlertCount = len(DetectPriceAlerts(purchases, core.DefaultAlertThreshold))
	return snapshot
}

func fortnightSpend(priceHistory [][]string, now time.Time) float64 {
	if len(priceHistory) < 2 {
		return 0
	}
	headers := ingest.NormalizeHeaders(priceHistory[0])
	idxDate := indexOf(headers, "fecha")
	idxTotal := indexOf(headers, "total")
	if idxDate == -1 || idxTotal == -1 {
		return 0
	}

	end := core.Midnight(now).Add(24*time.Hour - time.Nanosecond)
	start := core.Midnight(now.AddDate(0, 0, -15))

	var sum float64
	for _, row := range priceHistory[1:] {
		dateStr := cell(row, idxDate)
		totalStr := cell(row, idxTotal)
		if dateStr == "" || totalStr == "" {
			continue
		}
		date := core.ParseDateAt(dateStr, now)
		if date.Before(start) || date.After(end) {
			continue
		}
		sum += core.ParseAmount(totalStr)
	}
	return sum
}

func uniqueInvoices(dailyLog [][]string, now time.Time) int {
	if len(dailyLog) < 2 {
		return 0
	}
	headers := ingest.NormalizeHeaders(dailyLog[0])
	idxDate := indexOf(headers, "fecha")
	idxStore := indexOf(headers, "tienda")
	if idxDate == -1 || idxStore == -1 {
		return 0
	}

	seen := make(map[string]struct{})
	for _, row := range dailyLog[1:] {
		dateStr := cell(row, idxDate)
		store := cell(row, idxStore)
		if dateStr == "" || store == "" {
			continue
		}
		date := core.ParseDateAt(dateStr, now)
		seen[date.Format("2006-01-02")+"-"+store] = struct{}{}
	}
	return len(seen)
}

func indexOf(headers []string, target string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), target) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
