// Package warehouse defines the adapter contract for the relational store
// that receives the star schema, plus a registry of available backends.
// Concrete adapters live in subdirectories and register themselves in their
// init() functions.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

// Config holds connection settings for a warehouse backend.
type Config struct {
	// Type selects the registered adapter (sqlite, duckdb, postgres).
	Type string

	// Path is the database file for file-based backends.
	Path string

	// Network backends.
	Database string
	Host     string
	Port     int
	Username string
	Password string
	Schema   string

	// Options holds driver-specific settings (e.g. sslmode for postgres).
	Options map[string]string
}

// Adapter is the contract every warehouse backend implements.
type Adapter interface {
	// Connect establishes the database connection.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// ReplaceStarSchema persists dim_product and fact_sales, wholly
	// replacing any prior contents. The two table writes are applied as a
	// single atomic unit: a reader never observes a fact table referencing
	// a not-yet-written dimension table, and a mid-write failure leaves the
	// previous run's tables intact.
	ReplaceStarSchema(ctx context.Context, schema *sales.StarSchema) error

	// CategoryRevenue joins fact_sales to dim_product and returns revenue
	// summed per category, highest first.
	CategoryRevenue(ctx context.Context) ([]sales.CategoryRevenue, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory to the registry.
// Called by adapter implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// NewAdapter creates an adapter instance for the configured type.
// The logger is passed to the adapter constructor (nil uses a discard logger).
func NewAdapter(cfg Config, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("warehouse type not specified")
	}

	registryMu.RLock()
	factory, ok := registry[cfg.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownAdapterError{Type: cfg.Type, Available: ListAdapters()}
	}
	return factory(logger), nil
}

// ListAdapters returns all registered adapter names (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an adapter type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownAdapterError is returned when an unknown warehouse type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown warehouse type %q\nAvailable types: %v\nHint: Check your target.type in salesmart.yaml", e.Type, e.Available)
}
