package analytics

import (
	"testing"

	"compras/internal/core"
)

func TestGroupInvoices(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "Tomates", Store: "Carrefour", Total: 12.5, Date: day(15)},
		{Product: "Aceite", Store: "Carrefour", Total: 16, Date: day(15)},
		{Product: "Pan", Store: "Carrefour", Total: 4.5, Date: day(14)},
		{Product: "Leche", Store: "Lidl", Total: 12, Date: day(15)},
	}

	invoices := GroupInvoices(purchases)
	if len(invoices) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(invoices))
	}

	// Newest first; two invoices share Feb 15.
	if !core.SameDay(invoices[0].Date, day(15)) || core.SameDay(invoices[2].Date, day(15)) {
		t.Errorf("sort order wrong: %v", invoices)
	}

	for _, inv := range invoices {
		if inv.Store == "Carrefour" && core.SameDay(inv.Date, day(15)) {
			if inv.ID != "factura-2026-02-15-Carrefour" {
				t.Errorf("ID = %q", inv.ID)
			}
			if inv.Total != 28.5 || inv.ProductCount != 2 {
				t.Errorf("carrefour invoice: %+v", inv)
			}
		}
	}
}

func TestSuppliers(t *testing.T) {
	purchases := []core.Purchase{
		{Product: "Tomates", Store: "Carrefour", Total: 12.5, Date: day(15), Phone: "933456789", Address: "Av. Principal 123"},
		{Product: "Aceite", Store: "CARREFOUR EXPRESS", Total: 16, Date: day(13)},
		{Product: "Tomates", Store: "Carrefour", Total: 10, Date: day(10)},
		{Product: "Leche", Store: "Lidl", Total: 12, Date: day(15)},
	}

	suppliers := Suppliers(purchases)
	if len(suppliers) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(suppliers))
	}

	carrefour := suppliers[0]
	if carrefour.Store != "Carrefour" {
		t.Fatalf("largest spend first, got %q", carrefour.Store)
	}
	if carrefour.ID != "proveedor-Carrefour" {
		t.Errorf("ID = %q", carrefour.ID)
	}
	if carrefour.PurchaseCount != 3 || carrefour.UniqueCount != 2 {
		t.Errorf("counts: %+v", carrefour)
	}
	if carrefour.TotalSpend != 38.5 {
		t.Errorf("TotalSpend = %v", carrefour.TotalSpend)
	}
	if carrefour.Phone != "933456789" || carrefour.Address != "Av. Principal 123" {
		t.Errorf("contact: %+v", carrefour)
	}
	if !core.SameDay(carrefour.FirstPurchase, day(10)) || !core.SameDay(carrefour.LastPurchase, day(15)) {
		t.Errorf("purchase range: %v .. %v", carrefour.FirstPurchase, carrefour.LastPurchase)
	}
}
