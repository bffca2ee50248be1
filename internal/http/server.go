// Package http serves the dashboard API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"compras/internal/budget"
	"compras/internal/cache"
	"compras/internal/ingest"
	"compras/internal/log"
	"compras/internal/sheets"
)

const snapshotCacheKey = "snapshot"

type Server struct {
	http.Server

	source      sheets.SnapshotSource
	budgetStore budget.Store
	threshold   float64

	rateLimiter   *rateLimiter
	snapshotCache *cache.LRUCache[ingest.Snapshot]
	cacheManager  *cache.Manager
	logger        *log.Logger

	shutdownOnce sync.Once
}

// Options tunes the server beyond its dependencies.
type Options struct {
	Addr           string
	AlertThreshold float64
	SnapshotTTL    time.Duration
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(opts Options, source sheets.SnapshotSource, budgetStore budget.Store, logger *log.Logger) *Server {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = time.Minute
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		source:        source,
		budgetStore:   budgetStore,
		threshold:     opts.AlertThreshold,
		rateLimiter:   newRateLimiter(),
		snapshotCache: cache.NewLRUCache[ingest.Snapshot](4, opts.SnapshotTTL),
		cacheManager:  cache.NewManager(),
		logger:        logger.WithComponent(log.ComponentHTTP),
	}

	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.withSecurityHeaders(s.handleReady))

	mux.HandleFunc("/api/purchases", s.withSecurityHeaders(s.handlePurchases))
	mux.HandleFunc("/api/alerts", s.withSecurityHeaders(s.handleAlerts))
	mux.HandleFunc("/api/kpis", s.withSecurityHeaders(s.handleKPIs))
	mux.HandleFunc("/api/invoices", s.withSecurityHeaders(s.handleInvoices))
	mux.HandleFunc("/api/suppliers", s.withSecurityHeaders(s.handleSuppliers))
	mux.HandleFunc("/api/products", s.withSecurityHeaders(s.handleProducts))
	mux.HandleFunc("/api/distribution", s.withSecurityHeaders(s.handleDistribution))
	mux.HandleFunc("/api/categories", s.withSecurityHeaders(s.handleCategories))
	mux.HandleFunc("/api/comparison", s.withSecurityHeaders(s.handleComparison))
	mux.HandleFunc("/api/budget", s.withSecurityHeaders(s.handleBudget))

	return s
}

// withSecurityHeaders adds security headers, rate limiting on mutations,
// and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		logger := s.logger.With(log.FieldRequestID, requestID)
		logger.Info("request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
		)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			logger.Warn("rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
			)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		logger.Info("request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP,
		)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getSnapshot serves the cached snapshot when fresh, fetching otherwise.
func (s *Server) getSnapshot(ctx context.Context) (ingest.Snapshot, error) {
	if snap, ok := s.snapshotCache.Get(snapshotCacheKey); ok {
		return snap, nil
	}

	snap, err := s.source.FetchSnapshot(ctx)
	if err != nil {
		return ingest.Snapshot{}, err
	}
	s.snapshotCache.Set(snapshotCacheKey, snap)
	return snap, nil
}

// invalidateSnapshot forces the next request to refetch.
func (s *Server) invalidateSnapshot() {
	s.snapshotCache.Delete(snapshotCacheKey)
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
