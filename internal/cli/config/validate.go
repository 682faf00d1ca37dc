package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/salesmart/internal/warehouse"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input is required")
	}
	if c.QuarantinePath == "" {
		return fmt.Errorf("quarantine is required")
	}
	if c.Target == nil || c.Target.Type == "" {
		return fmt.Errorf("target type is required")
	}

	// Use the adapter registry as the single source of truth
	if !warehouse.IsRegistered(strings.ToLower(c.Target.Type)) {
		return &warehouse.UnknownAdapterError{
			Type:      c.Target.Type,
			Available: warehouse.ListAdapters(),
		}
	}

	return nil
}
