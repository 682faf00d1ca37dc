// Package extract reads the raw sales feed into memory.
package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leapstack-labs/salesmart/internal/sales"
)

// CSVExtractor reads a delimited sales feed into RawRecords.
//
// Columns are mapped by header name, so the file's column order does not
// matter. A missing required header is a contract violation and fails the
// extraction; a missing or malformed value in a data row does not — the
// value is carried through empty and left for the validator to judge.
type CSVExtractor struct {
	path   string
	logger *slog.Logger
}

// NewCSV creates a CSVExtractor for the given file path.
// If logger is nil, a discard logger is used.
func NewCSV(path string, logger *slog.Logger) *CSVExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSVExtractor{path: path, logger: logger}
}

// Extract reads the entire feed and returns one RawRecord per data row,
// in file order.
func (e *CSVExtractor) Extract(ctx context.Context) ([]sales.RawRecord, error) {
	file, err := os.Open(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	// Ragged rows are dirty data, not a reason to abort the run. Short rows
	// are padded with empty values so the affected fields fail validation.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	records := make([]sales.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, sales.RawRecord{
			OrderID:         fieldAt(row, index["order_id"]),
			TransactionDate: fieldAt(row, index["transaction_date"]),
			CustomerName:    fieldAt(row, index["customer_name"]),
			Product:         fieldAt(row, index["product"]),
			Category:        fieldAt(row, index["category"]),
			Price:           fieldAt(row, index["price"]),
			Quantity:        fieldAt(row, index["quantity"]),
			TotalAmount:     fieldAt(row, index["total_amount"]),
		})
	}

	e.logger.Debug("extracted source file", "path", e.path, "rows", len(records))

	return records, nil
}

// columnIndex maps each required column name to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range sales.RawColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("source file missing required columns: %s", strings.Join(missing, ", "))
	}

	return index, nil
}

// fieldAt returns row[i], or an empty string when the row is too short.
func fieldAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
