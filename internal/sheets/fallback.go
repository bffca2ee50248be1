package sheets

import (
	"context"

	"compras/internal/ingest"
	"compras/internal/log"
)

type fallbackSource struct {
	primary  SnapshotSource
	fallback SnapshotSource
	logger   *log.Logger
}

// WithFallback wraps primary so that a fetch error degrades to the
// fallback source instead of failing the request.
func WithFallback(primary, fallback SnapshotSource, logger *log.Logger) SnapshotSource {
	return &fallbackSource{primary: primary, fallback: fallback, logger: logger}
}

var _ SnapshotSource = (*fallbackSource)(nil)

func (s *fallbackSource) FetchSnapshot(ctx context.Context) (ingest.Snapshot, error) {
	snap, err := s.primary.FetchSnapshot(ctx)
	if err == nil {
		return snap, nil
	}
	s.logger.Warn("primary source failed, serving fallback data", "error", err)
	return s.fallback.FetchSnapshot(ctx)
}
