package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/salesmart/internal/cli/config"
	"github.com/leapstack-labs/salesmart/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ETL pipeline",
		Long: `Execute one pipeline run: extract the raw sales feed, quarantine rows
that fail quality rules, model the clean rows into a star schema, and
replace the warehouse tables.

Rows with a missing customer name or a missing, malformed, or
non-positive price are written to the quarantine file for review; they
never fail the run. Source and warehouse I/O errors abort the run and
leave the previous run's tables in place.`,
		Example: `  # Run with defaults (daily_sales_raw.csv -> enterprise_warehouse.db)
  salesmart run

  # Run against a specific feed and warehouse
  salesmart run --input feeds/2023-10-01.csv --warehouse nightly.db

  # Run against the staging environment from salesmart.yaml
  salesmart run --environment staging`,
		Aliases: []string{"etl"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd)
		},
	}

	return cmd
}

func runRun(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	p, err := createPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	startTime := time.Now()

	result, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: completed\n", result.RunID)

	cols := []string{"stage", "rows"}
	rows := [][]string{
		{"extracted", strconv.Itoa(result.Counts.Extracted)},
		{"quarantined", strconv.Itoa(result.Counts.Quarantined)},
		{"clean", strconv.Itoa(result.Counts.Clean)},
		{"loaded", strconv.Itoa(result.Counts.Loaded)},
	}
	if err := render(out, cfg.OutputFormat, cols, rows, runSummary(result)); err != nil {
		return err
	}

	if cfg.OutputFormat != "json" {
		fmt.Fprintf(out, "Completed in %s\n", time.Since(startTime).Round(time.Millisecond))
	}

	return nil
}

// runSummaryOutput is the JSON shape of a run summary.
type runSummaryOutput struct {
	RunID       string `json:"run_id"`
	Extracted   int    `json:"extracted"`
	Quarantined int    `json:"quarantined"`
	Clean       int    `json:"clean"`
	Loaded      int    `json:"loaded"`
	TookMS      int64  `json:"took_ms"`
}

func runSummary(result *pipeline.Result) runSummaryOutput {
	return runSummaryOutput{
		RunID:       result.RunID,
		Extracted:   result.Counts.Extracted,
		Quarantined: result.Counts.Quarantined,
		Clean:       result.Counts.Clean,
		Loaded:      result.Counts.Loaded,
		TookMS:      result.Took.Milliseconds(),
	}
}
