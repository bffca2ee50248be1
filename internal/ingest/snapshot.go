package ingest

import (
	"fmt"
	"strings"
	"time"
)

// Logical table names. The upstream webhook has shipped several key
// spellings over time; aliases below are checked in order and resolved
// once at the ingestion boundary.
const (
	TableHistory      = "base_de_datos"
	TablePriceHistory = "historico_precios"
	TableCostly       = "costosos"
	TableStoreSpend   = "gasto_tienda"
	TableProductPrice = "precio_producto"
	TableDailyLog     = "registro_diario"
)

var tableAliases = map[string][]string{
	TableHistory:      {"base_de_datos", "historico"},
	TablePriceHistory: {"historico_precios"},
	TableCostly:       {"producto_mas_costoso", "costosos"},
	TableStoreSpend:   {"gasto_por_tienda", "gasto_tienda"},
	TableProductPrice: {"precio_por_producto", "precio_producto"},
	TableDailyLog:     {"registro_diario"},
}

// LogicalTables lists every table the dashboard consumes.
var LogicalTables = []string{
	TableHistory, TablePriceHistory, TableCostly,
	TableStoreSpend, TableProductPrice, TableDailyLog,
}

// Snapshot is one load of the upstream data source with table keys
// already resolved to their logical names. Each values matrix has the
// header row at index 0.
type Snapshot struct {
	Tables    map[string][][]string
	FetchedAt time.Time
	Source    string
}

// Table returns the values matrix for a logical table, or nil.
func (s Snapshot) Table(name string) [][]string {
	if s.Tables == nil {
		return nil
	}
	return s.Tables[name]
}

// Empty reports whether the snapshot carries no usable rows at all.
func (s Snapshot) Empty() bool {
	for _, values := range s.Tables {
		if len(values) > 1 {
			return false
		}
	}
	return true
}

// ResolveTables maps raw upstream keys onto logical table names using
// the ordered alias lists. Unknown upstream keys are dropped; a missing
// table resolves to an empty matrix rather than an error.
func ResolveTables(raw map[string][][]string) map[string][][]string {
	resolved := make(map[string][][]string, len(LogicalTables))
	for _, logical := range LogicalTables {
		resolved[logical] = nil
		for _, alias := range tableAliases[logical] {
			if values, ok := raw[alias]; ok && len(values) > 0 {
				resolved[logical] = values
				break
			}
		}
	}
	return resolved
}

// ValuesToStrings flattens a decoded JSON values matrix (cells arrive
// as strings or numbers depending on the sheet formatting) into plain
// trimmed strings, the shape the parsers work on.
func ValuesToStrings(values [][]any) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch c := v.(type) {
			case string:
				cells[j] = strings.TrimSpace(c)
			case float64:
				cells[j] = strings.TrimSpace(trimFloat(c))
			case nil:
				cells[j] = ""
			default:
				cells[j] = strings.TrimSpace(fmt.Sprint(c))
			}
		}
		out[i] = cells
	}
	return out
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
