package commands

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/leapstack-labs/salesmart/internal/cli/config"
	"github.com/leapstack-labs/salesmart/internal/sales"
	"github.com/spf13/cobra"
)

// sampleRows is a deliberately messy feed: one row with no customer name and
// one with a negative price, so a run exercises the quarantine path.
var sampleRows = [][]string{
	{"101", "2023-10-01", "Alice", "Laptop", "Electronics", "1200", "1", "1200"},
	{"102", "2023-10-01", "Bob", "Mouse", "Accessories", "25", "2", "50"},
	{"103", "2023-10-01", "Charlie", "Keyboard", "Accessories", "-50", "1", "-50"},
	{"104", "2023-10-02", "David", "Monitor", "Electronics", "300", "2", "600"},
	{"105", "2023-10-02", "", "Mouse", "Accessories", "25", "5", "125"},
	{"106", "2023-10-02", "Frank", "Laptop", "Electronics", "1200", "1", "1200"},
}

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a sample raw sales feed",
		Long: `Write a small sample sales feed to the input path, including dirty rows
(a missing customer name, a negative price) so a full run can be
exercised end to end.`,
		Example: `  # Generate the default feed, then run it
  salesmart gen && salesmart run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGen(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing feed file")

	return cmd
}

func runGen(cmd *cobra.Command, force bool) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if !force {
		if _, err := os.Stat(cfg.InputPath); err == nil {
			return fmt.Errorf("feed file %s already exists (use --force to overwrite)", cfg.InputPath)
		}
	}

	file, err := os.Create(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to create feed file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(sales.RawColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range sampleRows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush feed file: %w", err)
	}

	logger.Info("sample feed generated", "path", cfg.InputPath, "rows", len(sampleRows))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(sampleRows), cfg.InputPath)

	return nil
}
