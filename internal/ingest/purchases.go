package ingest

import (
	"fmt"
	"strings"
	"time"

	"compras/internal/core"
)

// unitPriceAliases are the header spellings seen for the unit-price
// column across sheet versions, checked in order.
var unitPriceAliases = []string{
	"precio_unitario",
	"totalunitario",
	"total_unitario",
	"preciounitario",
	"precio",
	"precio_unit.",
}

// BuildPurchases converts a raw values matrix (header row first) into
// typed purchases. Summary rows and rows without a product are dropped
// silently; field-level parse failures degrade to zero values, so one
// malformed row never aborts the batch. IDs are deterministic per row
// index, which keeps repeated loads of the same table identical.
func BuildPurchases(values [][]string) []core.Purchase {
	return BuildPurchasesAt(values, time.Now())
}

// BuildPurchasesAt is BuildPurchases with an explicit fallback instant
// for unparseable dates.
func BuildPurchasesAt(values [][]string, now time.Time) []core.Purchase {
	if len(values) < 2 {
		return nil
	}
	headers := NormalizeHeaders(values[0])

	purchases := make([]core.Purchase, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		rec := MapRow(headers, values[i])

		product := strings.TrimSpace(rec["descripcion"])
		if product == "" {
			product = strings.TrimSpace(rec["producto"])
		}
		if core.IsSummaryRow(product) {
			continue
		}

		p := core.Purchase{
			ID:        fmt.Sprintf("compra-%d", i),
			Date:      core.ParseDateAt(rec["fecha"], now),
			Store:     core.CanonicalStore(rec["tienda"]),
			Product:   product,
			Quantity:  core.ParseAmount(rec["cantidad"]),
			UnitPrice: core.ParseAmount(lookupUnitPrice(rec)),
			Total:     core.ParseAmount(rec["total"]),
			Phone:     strings.TrimSpace(rec["telefono"]),
			Address:   strings.TrimSpace(rec["direccion"]),
		}
		purchases = append(purchases, p)
	}
	return purchases
}

func lookupUnitPrice(rec map[string]string) string {
	for _, key := range unitPriceAliases {
		if v := strings.TrimSpace(rec[key]); v != "" {
			return v
		}
	}
	return ""
}

// Purchases builds the purchase list from a snapshot's history table.
func Purchases(s Snapshot) []core.Purchase {
	return BuildPurchasesAt(s.Table(TableHistory), s.FetchedAt)
}
