package analytics

import (
	"sort"

	"compras/internal/core"
)

// GroupInvoices reconstructs invoices from line items: every purchase
// of one store on one day belongs to the same invoice. Sorted by date,
// newest first.
func GroupInvoices(purchases []core.Purchase) []core.Invoice {
	groups := make(map[string][]core.Purchase)
	var order []string
	for _, p := range purchases {
		key := p.Date.Format("2006-01-02") + "-" + p.Store
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	invoices := make([]core.Invoice, 0, len(order))
	for _, key := range order {
		items := groups[key]
		inv := core.Invoice{
			ID:           "factura-" + key,
			Date:         items[0].Date,
			Store:        items[0].Store,
			ProductCount: len(items),
			Items:        items,
		}
		for _, item := range items {
			inv.Total += item.Total
		}
		invoices = append(invoices, inv)
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
	return invoices
}

// Suppliers derives a per-store profile from the purchase history,
// sorted by total spend, largest first. Phone and address come from
// the first line item carrying them.
func Suppliers(purchases []core.Purchase) []core.Supplier {
	groups := make(map[string][]core.Purchase)
	var order []string
	for _, p := range purchases {
		store := core.CanonicalStore(p.Store)
		if _, seen := groups[store]; !seen {
			order = append(order, store)
		}
		groups[store] = append(groups[store], p)
	}

	suppliers := make([]core.Supplier, 0, len(order))
	for _, store := range order {
		items := groups[store]
		s := core.Supplier{
			ID:            "proveedor-" + store,
			Store:         store,
			PurchaseCount: len(items),
			FirstPurchase: items[0].Date,
			LastPurchase:  items[0].Date,
		}
		products := make(map[string]struct{})
		for _, p := range items {
			s.TotalSpend += p.Total
			products[p.Product] = struct{}{}
			if s.Phone == "" && p.Phone != "" {
				s.Phone = p.Phone
			}
			if s.Address == "" && p.Address != "" {
				s.Address = p.Address
			}
			if p.Date.Before(s.FirstPurchase) {
				s.FirstPurchase = p.Date
			}
			if p.Date.After(s.LastPurchase) {
				s.LastPurchase = p.Date
			}
		}
		s.UniqueCount = len(products)
		s.AvgTicket = s.TotalSpend / float64(len(items))
		suppliers = append(suppliers, s)
	}

	sort.SliceStable(suppliers, func(i, j int) bool {
		return suppliers[i].TotalSpend > suppliers[j].TotalSpend
	})
	return suppliers
}
