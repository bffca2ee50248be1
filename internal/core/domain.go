package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// StoreOther is the fallback vendor for names that match nothing known.
	StoreOther = "Otros"

	// DefaultAlertThreshold is the percent increase above which a price
	// alert is raised.
	DefaultAlertThreshold = 5.0
)

type (
	// Purchase is one normalized invoice line item.
	Purchase struct {
		ID        string    `json:"id"`
		Date      time.Time `json:"fecha"`
		Store     string    `json:"tienda"`
		Product   string    `json:"producto"`
		Quantity  float64   `json:"cantidad"`
		UnitPrice float64   `json:"precioUnitario"`
		Total     float64   `json:"total"`
		Phone     string    `json:"telefono,omitempty"`
		Address   string    `json:"direccion,omitempty"`
	}

	// PriceAlert reports a unit-price increase between the two most
	// recent purchases of the same product at the same store.
	PriceAlert struct {
		ID            string    `json:"id"`
		Product       string    `json:"producto"`
		Store         string    `json:"tienda"`
		CurrentPrice  float64   `json:"precioActual"`
		PreviousPrice float64   `json:"precioAnterior"`
		PercentChange float64   `json:"variacionPorcentaje"`
		Date          time.Time `json:"fecha"`
	}

	// KPISnapshot holds the headline numbers recomputed on every load.
	KPISnapshot struct {
		FortnightSpend float64 `json:"gastoQuincenal"`
		InvoiceCount   int     `json:"facturasProcesadas"`
		AlertCount     int     `json:"alertasDePrecio"`
	}

	// Invoice groups the purchases of one store on one day.
	Invoice struct {
		ID           string     `json:"id"`
		Date         time.Time  `json:"fecha"`
		Store        string     `json:"tienda"`
		Total        float64    `json:"total"`
		ProductCount int        `json:"numProductos"`
		Items        []Purchase `json:"items"`
	}

	// Supplier is the per-store profile derived from purchase history.
	Supplier struct {
		ID            string    `json:"id"`
		Store         string    `json:"tienda"`
		Phone         string    `json:"telefono,omitempty"`
		Address       string    `json:"direccion,omitempty"`
		TotalSpend    float64   `json:"totalGastado"`
		PurchaseCount int       `json:"numCompras"`
		UniqueCount   int       `json:"productosUnicos"`
		AvgTicket     float64   `json:"gastoPromedio"`
		FirstPurchase time.Time `json:"primeraCompra"`
		LastPurchase  time.Time `json:"ultimaCompra"`
	}
)

var (
	ErrEmptyProduct = errors.New("empty product description")
	ErrSummaryRow   = errors.New("summary row")
)

// Validate reports whether the purchase satisfies the core invariants:
// a real product line with sane, non-negative numeric fields.
func (p Purchase) Validate() error {
	if strings.TrimSpace(p.Product) == "" {
		return ErrEmptyProduct
	}
	if IsSummaryRow(p.Product) {
		return ErrSummaryRow
	}
	if p.Quantity < 0 || p.UnitPrice < 0 || p.Total < 0 {
		return errors.New("negative amount")
	}
	return nil
}

// Key returns the composite grouping key used by the alert detector.
func (p Purchase) Key() string {
	return p.Product + "|" + p.Store
}
