package analytics

import (
	"math"
	"testing"
	"time"

	"compras/internal/core"
)

func TestProjectBudget(t *testing.T) {
	// Feb 2026 has 28 days; on the 14th half the month has passed.
	now := time.Date(2026, time.February, 14, 12, 0, 0, 0, time.Local)
	purchases := []core.Purchase{
		{Total: 700, Date: day(5)},
		{Total: 700, Date: day(10)},
		{Total: 100, Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.Local)},
	}

	status := ProjectBudget(3000, purchases, now)

	if status.MonthSpend != 1400 {
		t.Errorf("MonthSpend = %v, want 1400 (January excluded)", status.MonthSpend)
	}
	if status.AvgDailySpend != 100 {
		t.Errorf("AvgDailySpend = %v, want 100", status.AvgDailySpend)
	}
	if status.DaysRemaining != 14 {
		t.Errorf("DaysRemaining = %v, want 14", status.DaysRemaining)
	}
	if status.Projection != 2800 {
		t.Errorf("Projection = %v, want 2800", status.Projection)
	}
	want := 1400.0 / 3000 * 100
	if math.Abs(status.PercentUsed-want) > 1e-9 {
		t.Errorf("PercentUsed = %v, want %v", status.PercentUsed, want)
	}
	if status.ProjectionOverBudget {
		t.Error("2800 projected against 3000 budget must not flag an overrun")
	}
}

func TestProjectBudgetOverrun(t *testing.T) {
	now := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.Local)
	purchases := []core.Purchase{{Total: 2000, Date: day(7)}}

	status := ProjectBudget(3000, purchases, now)
	if !status.ProjectionOverBudget {
		t.Errorf("projection %v against 3000 must flag an overrun", status.Projection)
	}
}

func TestProjectBudgetZeroBudget(t *testing.T) {
	status := ProjectBudget(0, []core.Purchase{{Total: 10, Date: day(7)}}, day(14))
	if status.PercentUsed != 0 || status.ProjectionOverBudget {
		t.Errorf("zero budget: %+v", status)
	}
}

func TestProjectBudgetNoPurchases(t *testing.T) {
	status := ProjectBudget(3000, nil, day(14))
	if status.MonthSpend != 0 || status.Projection != 0 || status.AvgDailySpend != 0 {
		t.Errorf("empty month: %+v", status)
	}
}
