package analytics

import (
	"time"

	"compras/internal/core"
)

// BudgetStatus projects the current month's spend against a monthly
// budget using a linear days-remaining extrapolation.
type BudgetStatus struct {
	Budget        float64 `json:"presupuesto"`
	MonthSpend    float64 `json:"gastoActual"`
	PercentUsed   float64 `json:"porcentajeUsado"`
	AvgDailySpend float64 `json:"gastoPromedioDiario"`
	Projection    float64 `json:"proyeccionFinMes"`
	DaysRemaining int     `json:"diasRestantes"`
	// ProjectionOverBudget flags a projected overrun before it happens.
	ProjectionOverBudget bool `json:"proyeccionSupera"`
}

// ProjectBudget computes the budget status for the calendar month
// containing now. averageDailySpend is spend-to-date divided by the
// day of month; the projection adds that average for each remaining
// day. A zero budget yields zero percent used rather than a division
// error.
func ProjectBudget(budget float64, purchases []core.Purchase, now time.Time) BudgetStatus {
	year, month := now.Year(), now.Month()

	var spend float64
	for _, p := range purchases {
		if p.Date.Year() == year && p.Date.Month() == month {
			spend += p.Total
		}
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	dayOfMonth := now.Day()
	remaining := daysInMonth - dayOfMonth

	var avgDaily float64
	if dayOfMonth > 0 {
		avgDaily = spend / float64(dayOfMonth)
	}

	status := BudgetStatus{
		Budget:        budget,
		MonthSpend:    spend,
		AvgDailySpend: avgDaily,
		Projection:    spend + avgDaily*float64(remaining),
		DaysRemaining: remaining,
	}
	if budget > 0 {
		status.PercentUsed = spend / budget * 100
		status.ProjectionOverBudget = status.Projection > budget
	}
	return status
}
