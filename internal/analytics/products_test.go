package analytics

import (
	"math"
	"reflect"
	"testing"

	"compras/internal/core"
)

func TestRankProducts(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "Tomates", Store: "Carrefour", UnitPrice: 2.00, Quantity: 2, Total: 4, Date: day(10)},
		{Product: "TOMATES", Store: "Carrefour", UnitPrice: 2.50, Quantity: 2, Total: 5, Date: day(15)},
		{Product: "Aceite", Store: "Consum", UnitPrice: 8.00, Quantity: 1, Total: 8, Date: day(12)},
	}

	ranked := RankProducts(purchases, true)
	if len(ranked) != 2 {
		t.Fatalf("case-insensitive grouping expected 2 products, got %d", len(ranked))
	}

	top := ranked[0]
	if top.Product != "tomates" {
		t.Errorf("by spend, tomates (9) must outrank aceite (8): %+v", top)
	}
	if top.Count != 2 || top.TotalSpend != 9 || top.TotalQuantity != 4 {
		t.Errorf("aggregates: %+v", top)
	}
	if top.MinPrice != 2.00 || top.MaxPrice != 2.50 {
		t.Errorf("min/max: %+v", top)
	}
	if math.Abs(top.AvgPrice-2.25) > 1e-9 {
		t.Errorf("AvgPrice = %v", top.AvgPrice)
	}
	wantChange := (2.50 - 2.00) / 2.00 * 100
	if math.Abs(top.PercentChange-wantChange) > 1e-9 {
		t.Errorf("PercentChange = %v, want %v", top.PercentChange, wantChange)
	}
}

func TestRankProductsByCount(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "Pan", UnitPrice: 1.50, Total: 1.50, Date: day(10)},
		{Product: "Pan", UnitPrice: 1.50, Total: 1.50, Date: day(11)},
		{Product: "Pan", UnitPrice: 1.50, Total: 1.50, Date: day(12)},
		{Product: "Jamón", UnitPrice: 20, Total: 20, Date: day(12)},
	}
	ranked := RankProducts(purchases, false)
	if ranked[0].Product != "pan" {
		t.Errorf("by count, pan must come first: %+v", ranked[0])
	}
}

func TestTopProducts(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "A", Date: day(1)}, {Product: "B", Date: day(1)}, {Product: "C", Date: day(1)},
	}
	if got := TopProducts(purchases, 2); len(got) != 2 {
		t.Errorf("TopProducts(2) returned %d entries", len(got))
	}
}

func TestUniqueProducts(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "Tomates"},
		{Product: "Aceite"},
		{Product: "Tomates"},
		{Product: "SUMA TOTAL"},
	}
	want := []string{"Aceite", "Tomates"}
	if got := UniqueProducts(purchases); !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueProducts = %v, want %v", got, want)
	}
}

func TestUniqueStores(t *testing.T) {
	purchases := []core.Purchase{
		{Store: "MERCADONA, S.A."},
		{Store: "Mercadona"},
		{Store: "Lidl"},
	}
	want := []string{"Lidl", "Mercadona"}
	if got := UniqueStores(purchases); !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueStores = %v, want %v", got, want)
	}
}
