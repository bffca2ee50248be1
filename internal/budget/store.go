// Package budget persists the monthly purchasing budget.
package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// budgetKey is the single row the dashboard reads and writes.
const budgetKey = "presupuesto-mensual"

// Store reads and writes the configured monthly budget.
type Store interface {
	Load(ctx context.Context) (float64, error)
	Save(ctx context.Context, amount float64) error
	Close() error
}

// SQLiteStore backs the budget with a small sqlite database.
type SQLiteStore struct {
	db            *sql.DB
	defaultBudget float64
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database at dbPath, running migrations first.
// defaultBudget is returned by Load until a budget has been saved.
func NewSQLiteStore(dbPath string, defaultBudget float64) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, defaultBudget: defaultBudget}, nil
}

// Load returns the saved monthly budget, or the default when none is saved.
func (s *SQLiteStore) Load(ctx context.Context) (float64, error) {
	var amount float64
	err := s.db.QueryRowContext(ctx,
		`SELECT amount FROM budget_settings WHERE key = ?`, budgetKey,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaultBudget, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load budget: %w", err)
	}
	return amount, nil
}

// Save stores the monthly budget, rejecting non-positive amounts.
func (s *SQLiteStore) Save(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("budget must be positive, got %.2f", amount)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_settings (key, amount, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET amount = excluded.amount, updated_at = excluded.updated_at`,
		budgetKey, amount,
	)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
