// Package worker periodically refreshes the purchase data and publishes
// newly detected price alerts.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"compras/internal/amqp"
	"compras/internal/analytics"
	"compras/internal/core"
	"compras/internal/ingest"
	"compras/internal/log"
	"compras/internal/sheets"
)

// AlertPublisher pushes one price alert downstream.
type AlertPublisher interface {
	PublishPriceAlert(ctx context.Context, msg *amqp.PriceAlertMessage) error
}

// AlertWorker polls the snapshot source and publishes alerts it has not
// published before. Dedup is in-memory, restarting the worker republishes
// the currently active alerts once.
type AlertWorker struct {
	source    sheets.SnapshotSource
	publisher AlertPublisher
	threshold float64
	interval  time.Duration
	logger    *log.Logger

	mu   sync.Mutex
	seen map[string]bool
}

func NewAlertWorker(source sheets.SnapshotSource, publisher AlertPublisher, threshold float64, interval time.Duration, logger *log.Logger) *AlertWorker {
	if threshold <= 0 {
		threshold = core.DefaultAlertThreshold
	}
	return &AlertWorker{
		source:    source,
		publisher: publisher,
		threshold: threshold,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentWorker),
		seen:      make(map[string]bool),
	}
}

// Run polls until ctx is cancelled. The first refresh happens immediately.
func (w *AlertWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if err := w.refresh(ctx); err != nil {
		w.logger.ErrorContext(ctx, "initial refresh failed", log.FieldError, err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.refresh(ctx); err != nil {
				w.logger.ErrorContext(ctx, "refresh failed", log.FieldError, err.Error())
			}
		}
	}
}

func (w *AlertWorker) refresh(ctx context.Context) error {
	snap, err := w.source.FetchSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	purchases := ingest.Purchases(snap)
	alerts := analytics.DetectPriceAlerts(purchases, w.threshold)

	published := 0
	for _, alert := range alerts {
		if w.alreadySeen(alert.ID) {
			continue
		}
		msg := amqp.NewPriceAlertMessage(
			alert.Product, alert.Store,
			alert.CurrentPrice, alert.PreviousPrice,
			alert.PercentChange, alert.Date,
		)
		if err := w.publisher.PublishPriceAlert(ctx, msg); err != nil {
			w.logger.ErrorContext(ctx, "publish failed",
				log.FieldError, err.Error(),
				log.FieldProduct, alert.Product,
			)
			continue
		}
		w.markSeen(alert.ID)
		published++
	}

	w.logger.InfoContext(ctx, "refresh complete",
		log.FieldPurchases, len(purchases),
		log.FieldAlerts, len(alerts),
		"published", published,
		log.FieldSource, snap.Source,
	)
	return nil
}

func (w *AlertWorker) alreadySeen(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seen[id]
}

func (w *AlertWorker) markSeen(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen[id] = true
}
