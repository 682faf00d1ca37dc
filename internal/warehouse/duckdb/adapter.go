// Package duckdb provides a DuckDB warehouse adapter.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/salesmart/internal/warehouse"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the warehouse.Adapter interface for DuckDB.
type Adapter struct {
	warehouse.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: warehouse.BaseSQLAdapter{Logger: logger},
	}
}

// Connect opens the DuckDB database.
// An empty path opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg warehouse.Config) error {
	path := cfg.Path
	if path == "" {
		path = cfg.Database
	}

	a.Logger.Debug("connecting to duckdb", "path", path)

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func init() {
	warehouse.Register("duckdb", func(logger *slog.Logger) warehouse.Adapter { return New(logger) })
}

// Ensure Adapter implements warehouse.Adapter interface
var _ warehouse.Adapter = (*Adapter)(nil)
