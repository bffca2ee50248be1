package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"compras/internal/analytics"
	"compras/internal/core"
	"compras/internal/ingest"
	"compras/internal/log"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports ready only when a snapshot can be served.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.getSnapshot(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "data source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handlePurchases lists normalized purchases, optionally filtered by
// store (?tienda=) and product search (?q=).
func (s *Server) handlePurchases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	store := strings.TrimSpace(r.URL.Query().Get("tienda"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	filtered := purchases[:0:0]
	for _, p := range purchases {
		if store != "" && p.Store != core.CanonicalStore(store) {
			continue
		}
		if query != "" && !core.MatchesProduct(query, p.Product) {
			continue
		}
		filtered = append(filtered, p)
	}

	writeJSON(w, http.StatusOK, filtered)
}

// handleAlerts returns detected price increases, optionally overriding
// the threshold (?umbral= percent).
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	threshold := s.threshold
	if v := strings.TrimSpace(r.URL.Query().Get("umbral")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = parsed
	}

	writeJSON(w, http.StatusOK, analytics.DetectPriceAlerts(purchases, threshold))
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := s.getSnapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "snapshot fetch failed", log.FieldError, err.Error())
		writeError(w, http.StatusBadGateway, "data source unavailable")
		return
	}

	purchases := ingest.Purchases(snap)
	kpis := analytics.ComputeKPIs(
		purchases,
		snap.Table(ingest.TablePriceHistory),
		snap.Table(ingest.TableDailyLog),
		time.Now(),
	)
	writeJSON(w, http.StatusOK, kpis)
}

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analytics.GroupInvoices(purchases))
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analytics.Suppliers(purchases))
}

// handleProducts ranks products by spend (?por=gasto, default) or by
// purchase count (?por=compras), limited by ?limite=.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	bySpend := true
	switch strings.TrimSpace(r.URL.Query().Get("por")) {
	case "", "gasto":
	case "compras":
		bySpend = false
	default:
		writeError(w, http.StatusBadRequest, "invalid ranking criterion")
		return
	}

	ranked := analytics.RankProducts(purchases, bySpend)
	limit := parseLimit(r, "limite", 10)
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	writeJSON(w, http.StatusOK, ranked)
}

// handleDistribution returns the spend breakdowns the dashboard charts.
func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tiendas":      analytics.StoreDistribution(purchases),
		"rangosPrecio": analytics.PriceRangeDistribution(purchases),
		"semanal":      analytics.WeeklySpend(purchases, time.Now()),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"gasto":       analytics.SpendByCategory(purchases),
		"porcentajes": analytics.CategoryPercentages(purchases),
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analytics.CompareMonths(purchases, time.Now()))
}

type budgetRequest struct {
	Budget float64 `json:"presupuesto"`
}

// handleBudget reads or updates the monthly budget. Both verbs return
// the projected status for the current month.
func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req budgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Budget <= 0 {
			writeError(w, http.StatusBadRequest, "budget must be positive")
			return
		}
		if err := s.budgetStore.Save(r.Context(), req.Budget); err != nil {
			s.logger.ErrorContext(r.Context(), "budget save failed", log.FieldError, err.Error())
			writeError(w, http.StatusInternalServerError, "could not save budget")
			return
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	budgetAmount, err := s.budgetStore.Load(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "budget load failed", log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load budget")
		return
	}

	purchases, ok := s.loadPurchases(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analytics.ProjectBudget(budgetAmount, purchases, time.Now()))
}

// loadPurchases fetches the snapshot and normalizes it, writing the
// error response itself when the source is down.
func (s *Server) loadPurchases(w http.ResponseWriter, r *http.Request) ([]core.Purchase, bool) {
	snap, err := s.getSnapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "snapshot fetch failed", log.FieldError, err.Error())
		writeError(w, http.StatusBadGateway, "data source unavailable")
		return nil, false
	}
	return ingest.Purchases(snap), true
}
