// Package sqlite provides the SQLite warehouse adapter. It is the default
// backend: a local, single-writer store in one file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/salesmart/internal/warehouse"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the warehouse.Adapter interface for SQLite.
type Adapter struct {
	warehouse.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: warehouse.BaseSQLAdapter{Logger: logger},
	}
}

// Connect opens the SQLite database file.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg warehouse.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func init() {
	warehouse.Register("sqlite", func(logger *slog.Logger) warehouse.Adapter { return New(logger) })
}

// Ensure Adapter implements warehouse.Adapter interface
var _ warehouse.Adapter = (*Adapter)(nil)
