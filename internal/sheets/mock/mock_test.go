package mock

import (
	"context"
	"testing"

	"compras/internal/ingest"
)

func TestFetchSnapshot(t *testing.T) {
	snap, err := NewSource().FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if snap.Source != "mock" {
		t.Errorf("Source = %q", snap.Source)
	}
	if snap.Empty() {
		t.Fatal("fixture snapshot must not be empty")
	}

	purchases := ingest.Purchases(snap)
	if len(purchases) != 5 {
		t.Fatalf("expected 5 fixture purchases, got %d", len(purchases))
	}
	first := purchases[0]
	if first.Product != "Tomates" || first.Store != "Carrefour" {
		t.Errorf("first purchase: %+v", first)
	}
	if first.Quantity != 5 || first.UnitPrice != 2.5 || first.Total != 12.5 {
		t.Errorf("first purchase amounts: %+v", first)
	}
}

func TestFixtureCoversCoreTables(t *testing.T) {
	snap, _ := NewSource().FetchSnapshot(context.Background())
	for _, table := range []string{
		ingest.TableHistory, ingest.TablePriceHistory,
		ingest.TableCostly, ingest.TableStoreSpend, ingest.TableDailyLog,
	} {
		if len(snap.Table(table)) < 2 {
			t.Errorf("fixture table %s missing data rows", table)
		}
	}
}
