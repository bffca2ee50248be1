package sheets

import (
	"context"

	"compras/internal/ingest"
)

// Ports for outbound adapters.
type (
	// SnapshotSource fetches one full load of the upstream tables.
	SnapshotSource interface {
		FetchSnapshot(ctx context.Context) (ingest.Snapshot, error)
	}
)
