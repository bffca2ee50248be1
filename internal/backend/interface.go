package backend

import (
	"context"
	"time"

	"compras/internal/sheets"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the snapshot source and an optional cleanup function.
type Result struct {
	Source  sheets.SnapshotSource
	Cleanup CleanupFunc
}

// Factory creates snapshot sources based on configuration.
type Factory interface {
	CreateSource(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for source creation.
type Config struct {
	Type Type

	// n8n specific
	WebhookURL     string
	WebhookTimeout time.Duration

	// Google Sheets uses environment credentials, see sheets/google.
}

// Type represents the kind of snapshot source.
type Type string

const (
	N8NBackend    Type = "n8n"
	SheetsBackend Type = "sheets"
	MockBackend   Type = "mock"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case N8NBackend, SheetsBackend, MockBackend:
		return true
	default:
		return false
	}
}
