package backend

import (
	"context"
	"fmt"

	"compras/internal/log"
	"compras/internal/sheets"
	gsheet "compras/internal/sheets/google"
	"compras/internal/sheets/mock"
	"compras/internal/sheets/n8n"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSource builds the configured snapshot source. Live sources are
// wrapped so that a failed fetch falls back to the fixture dataset
// instead of breaking the dashboard.
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case N8NBackend:
		client := n8n.NewClient(config.WebhookURL, config.WebhookTimeout, f.logger)
		f.logger.Info("using n8n webhook source", "url", config.WebhookURL)
		return &Result{Source: f.withFallback(client)}, nil

	case SheetsBackend:
		client, err := gsheet.NewFromEnv(ctx, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sheets source: %w", err)
		}
		f.logger.Info("using Google Sheets source")
		return &Result{Source: f.withFallback(client)}, nil

	case MockBackend:
		f.logger.Info("using mock source")
		return &Result{Source: mock.NewSource()}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) withFallback(primary sheets.SnapshotSource) sheets.SnapshotSource {
	return sheets.WithFallback(primary, mock.NewSource(), f.logger)
}
