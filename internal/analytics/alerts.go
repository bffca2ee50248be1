package analytics

import (
	"sort"

	"compras/internal/core"
)

// DetectPriceAlerts compares, for every (product, store) pair, the two
// most recent purchases and raises an alert when the unit price rose by
// more than threshold percent. Only the latest pair per group is ever
// examined; older increases in the same history are not surfaced. A
// zero previous price yields no alert instead of an infinite change.
// The result is sorted by percent change, steepest first.
func DetectPriceAlerts(purchases []core.Purchase, threshold float64) []core.PriceAlert {
	groups := make(map[string][]core.Purchase)
	var order []string
	for _, p := range purchases {
		key := p.Key()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	var alerts []core.PriceAlert
	for _, key := range order {
		history := groups[key]
		if len(history) < 2 {
			continue
		}
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Date.After(history[j].Date)
		})

		current := history[0]
		previous := history[1]
		if previous.UnitPrice == 0 {
			continue
		}
		change := (current.UnitPrice - previous.UnitPrice) / previous.UnitPrice * 100
		if change <= threshold {
			continue
		}
		alerts = append(alerts, core.PriceAlert{
			ID:            "alerta-" + key,
			Product:       current.Product,
			Store:         current.Store,
			CurrentPrice:  current.UnitPrice,
			PreviousPrice: previous.UnitPrice,
			PercentChange: change,
			Date:          current.Date,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].PercentChange > alerts[j].PercentChange
	})
	return alerts
}
