package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"compras/internal/core"
	"compras/internal/ingest"
	"compras/internal/log"
)

type fakeSource struct {
	snap    ingest.Snapshot
	err     error
	fetches int
}

func (f *fakeSource) FetchSnapshot(context.Context) (ingest.Snapshot, error) {
	f.fetches++
	return f.snap, f.err
}

type fakeBudgetStore struct {
	amount  float64
	saveErr error
}

func (f *fakeBudgetStore) Load(context.Context) (float64, error) { return f.amount, nil }
func (f *fakeBudgetStore) Save(_ context.Context, amount float64) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.amount = amount
	return nil
}
func (f *fakeBudgetStore) Close() error { return nil }

func testSnapshot() ingest.Snapshot {
	return ingest.Snapshot{
		Tables: map[string][][]string{
			ingest.TableHistory: {
				{"FECHA", "TIENDA", "DESCRIPCION", "CANTIDAD", "PRECIO UNITARIO", "TOTAL"},
				{"10/02/2026", "Lidl", "Leche", "1", "1.20", "1.20"},
				{"15/02/2026", "Lidl", "Leche", "1", "1.30", "1.30"},
				{"15/02/2026", "Carrefour", "Tomates", "5", "2.50", "12.50"},
			},
			ingest.TablePriceHistory: {
				{"PRODUCTO", "FECHA", "TOTAL"},
				{"Tomates", "15/02/2026", "12.50"},
			},
			ingest.TableDailyLog: {
				{"FECHA", "TIENDA"},
				{"15/02/2026", "Carrefour"},
			},
		},
		FetchedAt: time.Date(2026, time.February, 20, 0, 0, 0, 0, time.Local),
		Source:    "test",
	}
}

func newTestServer(t *testing.T, source *fakeSource, store *fakeBudgetStore) *Server {
	t.Helper()
	s := NewServer(Options{
		Addr:           ":0",
		AlertThreshold: core.DefaultAlertThreshold,
		SnapshotTTL:    time.Minute,
	}, source, store, log.New(log.DefaultConfig()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s
}

func doRequest(s *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if !envelope.Success {
		t.Fatalf("response not successful: %s", envelope.Error)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func TestHandlePurchases(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	rec := doRequest(s, http.MethodGet, "/api/purchases", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var purchases []core.Purchase
	decodeData(t, rec, &purchases)
	if len(purchases) != 3 {
		t.Fatalf("purchases = %d", len(purchases))
	}

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("missing security header, got %q", got)
	}
}

func TestHandlePurchasesFilters(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	var byStore []core.Purchase
	decodeData(t, doRequest(s, http.MethodGet, "/api/purchases?tienda=lidl", ""), &byStore)
	if len(byStore) != 2 {
		t.Errorf("store filter: %d purchases", len(byStore))
	}

	var byQuery []core.Purchase
	decodeData(t, doRequest(s, http.MethodGet, "/api/purchases?q=tomate", ""), &byQuery)
	if len(byQuery) != 1 || byQuery[0].Product != "Tomates" {
		t.Errorf("search filter: %v", byQuery)
	}
}

func TestHandleAlerts(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	var alerts []core.PriceAlert
	decodeData(t, doRequest(s, http.MethodGet, "/api/alerts", ""), &alerts)
	if len(alerts) != 1 || alerts[0].Product != "Leche" {
		t.Fatalf("alerts = %v", alerts)
	}

	// A higher threshold silences the 8.3% rise.
	var none []core.PriceAlert
	decodeData(t, doRequest(s, http.MethodGet, "/api/alerts?umbral=10", ""), &none)
	if len(none) != 0 {
		t.Errorf("threshold override ignored: %v", none)
	}

	if rec := doRequest(s, http.MethodGet, "/api/alerts?umbral=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad threshold: status %d", rec.Code)
	}
}

func TestHandleKPIs(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	var kpis core.KPISnapshot
	decodeData(t, doRequest(s, http.MethodGet, "/api/kpis", ""), &kpis)
	if kpis.AlertCount != 1 {
		t.Errorf("AlertCount = %d", kpis.AlertCount)
	}
	if kpis.InvoiceCount != 1 {
		t.Errorf("InvoiceCount = %d", kpis.InvoiceCount)
	}
}

func TestHandleBudget(t *testing.T) {
	store := &fakeBudgetStore{amount: 3000}
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, store)

	var status struct {
		Budget float64 `json:"presupuesto"`
	}
	decodeData(t, doRequest(s, http.MethodGet, "/api/budget", ""), &status)
	if status.Budget != 3000 {
		t.Errorf("Budget = %v", status.Budget)
	}

	rec := doRequest(s, http.MethodPut, "/api/budget", `{"presupuesto": 2500}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body.String())
	}
	if store.amount != 2500 {
		t.Errorf("stored = %v", store.amount)
	}

	if rec := doRequest(s, http.MethodPut, "/api/budget", `{"presupuesto": -10}`); rec.Code != http.StatusBadRequest {
		t.Errorf("negative budget: status %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodPut, "/api/budget", `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodDelete, "/api/budget", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE: status %d", rec.Code)
	}
}

func TestSnapshotCaching(t *testing.T) {
	source := &fakeSource{snap: testSnapshot()}
	s := newTestServer(t, source, &fakeBudgetStore{amount: 3000})

	doRequest(s, http.MethodGet, "/api/purchases", "")
	doRequest(s, http.MethodGet, "/api/alerts", "")
	doRequest(s, http.MethodGet, "/api/suppliers", "")

	if source.fetches != 1 {
		t.Errorf("fetches = %d, want 1 (snapshot must be cached)", source.fetches)
	}

	s.invalidateSnapshot()
	doRequest(s, http.MethodGet, "/api/purchases", "")
	if source.fetches != 2 {
		t.Errorf("fetches = %d, want 2 after invalidation", source.fetches)
	}
}

func TestSourceDown(t *testing.T) {
	s := newTestServer(t, &fakeSource{err: errors.New("webhook down")}, &fakeBudgetStore{amount: 3000})

	if rec := doRequest(s, http.MethodGet, "/api/purchases", ""); rec.Code != http.StatusBadGateway {
		t.Errorf("purchases: status %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz: status %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})
	if rec := doRequest(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz: status %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})
	for _, path := range []string{"/api/purchases", "/api/alerts", "/api/kpis", "/api/comparison"} {
		if rec := doRequest(s, http.MethodPost, path, ""); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: status %d", path, rec.Code)
		}
	}
}

func TestHandleDistributionAndCategories(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	var dist struct {
		Stores []struct {
			Store   string  `json:"tienda"`
			Percent float64 `json:"porcentaje"`
		} `json:"tiendas"`
		Ranges []struct {
			Label string `json:"rango"`
			Count int    `json:"cantidad"`
		} `json:"rangosPrecio"`
	}
	decodeData(t, doRequest(s, http.MethodGet, "/api/distribution", ""), &dist)
	if len(dist.Stores) != 2 || len(dist.Ranges) != 5 {
		t.Errorf("distribution: %+v", dist)
	}

	var cats struct {
		Spend map[string]float64 `json:"gasto"`
	}
	decodeData(t, doRequest(s, http.MethodGet, "/api/categories", ""), &cats)
	if cats.Spend["lacteos"] != 2.5 {
		t.Errorf("dairy spend = %v", cats.Spend["lacteos"])
	}
}

func TestHandleProducts(t *testing.T) {
	s := newTestServer(t, &fakeSource{snap: testSnapshot()}, &fakeBudgetStore{amount: 3000})

	var ranked []struct {
		Product string  `json:"producto"`
		Spend   float64 `json:"gastoTotal"`
	}
	decodeData(t, doRequest(s, http.MethodGet, "/api/products", ""), &ranked)
	if len(ranked) != 2 || ranked[0].Product != "tomates" {
		t.Errorf("ranking by spend: %v", ranked)
	}

	var byCount []struct {
		Product string `json:"producto"`
	}
	decodeData(t, doRequest(s, http.MethodGet, "/api/products?por=compras", ""), &byCount)
	if byCount[0].Product != "leche" {
		t.Errorf("ranking by count: %v", byCount)
	}

	var limited []json.RawMessage
	decodeData(t, doRequest(s, http.MethodGet, "/api/products?limite=1", ""), &limited)
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d entries", len(limited))
	}

	if rec := doRequest(s, http.MethodGet, "/api/products?por=precio", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid criterion: status %d", rec.Code)
	}
}
