// Package config provides configuration management for the salesmart CLI.
package config

import "github.com/leapstack-labs/salesmart/internal/warehouse"

// TargetConfig holds warehouse target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // sqlite, duckdb, postgres

	// File-based warehouses (SQLite, DuckDB): file path or database name.
	Database string `koanf:"database"`

	// Network warehouses.
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common.
	Schema string `koanf:"schema"`

	// Additional driver-specific options.
	Options map[string]string `koanf:"options"`
}

// ToWarehouseConfig converts the target to an adapter configuration.
func (t *TargetConfig) ToWarehouseConfig() warehouse.Config {
	return warehouse.Config{
		Type:     t.Type,
		Path:     t.Database,
		Database: t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
	}
}

// Config holds all CLI configuration options.
type Config struct {
	InputPath      string               `koanf:"input"`
	QuarantinePath string               `koanf:"quarantine"`
	StatePath      string               `koanf:"state_path"`
	Environment    string               `koanf:"environment"`
	Verbose        bool                 `koanf:"verbose"`
	OutputFormat   string               `koanf:"output"`
	Target         *TargetConfig        `koanf:"target"`
	Environments   map[string]EnvConfig `koanf:"environments"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	InputPath      string        `koanf:"input"`
	QuarantinePath string        `koanf:"quarantine"`
	Target         *TargetConfig `koanf:"target"`
}

// Default configuration values. The file names follow the feed the pipeline
// was built for.
const (
	DefaultInputFile      = "daily_sales_raw.csv"
	DefaultQuarantineFile = "quarantine_data.csv"
	DefaultWarehouseFile  = "enterprise_warehouse.db"
	DefaultStateFile      = ".salesmart/state.db"
	DefaultEnv            = "dev"
	DefaultOutput         = "table"
)
