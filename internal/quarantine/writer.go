// Package quarantine persists rows that failed validation so they can be
// reviewed instead of being silently dropped.
package quarantine

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

// CSVWriter writes the quarantined partition to a delimited file with the
// original feed columns. Each run replaces the previous artifact wholesale,
// so the file never accumulates stale rows from earlier runs. The artifact
// is written even when the partition is empty.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSV creates a CSVWriter for the given file path.
// If logger is nil, a discard logger is used.
func NewCSV(path string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSVWriter{path: path, logger: logger}
}

// Write replaces the quarantine file with the given records.
func (w *CSVWriter) Write(_ context.Context, records []sales.RawRecord) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create quarantine file: %w", err)
	}
	defer func() { _ = file.Close() }()

	cw := csv.NewWriter(file)
	if err := cw.Write(sales.RawColumns); err != nil {
		return fmt.Errorf("failed to write quarantine header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("failed to write quarantine row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush quarantine file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close quarantine file: %w", err)
	}

	if len(records) > 0 {
		w.logger.Warn("quarantined rows written for review", "path", w.path, "rows", len(records))
	} else {
		w.logger.Debug("quarantine file written", "path", w.path, "rows", 0)
	}

	return nil
}
