package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/salesmart/internal/cli/config"
	"github.com/leapstack-labs/salesmart/internal/pipeline"
	"github.com/leapstack-labs/salesmart/internal/warehouse"
)

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		InputPath:      getEnvOrDefault("SALESMART_INPUT", config.DefaultInputFile),
		QuarantinePath: getEnvOrDefault("SALESMART_QUARANTINE", config.DefaultQuarantineFile),
		StatePath:      getEnvOrDefault("SALESMART_STATE_PATH", config.DefaultStateFile),
		Environment:    getEnvOrDefault("SALESMART_ENVIRONMENT", config.DefaultEnv),
		Verbose:        os.Getenv("SALESMART_VERBOSE") == "true",
		OutputFormat:   getEnvOrDefault("SALESMART_OUTPUT", config.DefaultOutput),
		Target: &config.TargetConfig{
			Type:     "sqlite",
			Database: getEnvOrDefault("SALESMART_WAREHOUSE", config.DefaultWarehouseFile),
		},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// createPipeline builds a pipeline from the current configuration.
func createPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	// Ensure state directory exists
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, err
		}
	}

	return pipeline.New(pipeline.Config{
		InputPath:      cfg.InputPath,
		QuarantinePath: cfg.QuarantinePath,
		StatePath:      cfg.StatePath,
		Environment:    cfg.Environment,
		Warehouse:      cfg.Target.ToWarehouseConfig(),
		Logger:         logger,
	})
}

// openWarehouse connects to the configured warehouse backend.
func openWarehouse(ctx context.Context, cfg *config.Config, logger *slog.Logger) (warehouse.Adapter, error) {
	whCfg := cfg.Target.ToWarehouseConfig()

	db, err := warehouse.NewAdapter(whCfg, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Connect(ctx, whCfg); err != nil {
		return nil, err
	}
	return db, nil
}
