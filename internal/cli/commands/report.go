package commands

import (
	"context"

	"github.com/leapstack-labs/salesmart/internal/cli/config"
	"github.com/leapstack-labs/salesmart/internal/sales"
	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show revenue by category from the warehouse",
		Long: `Query the loaded warehouse and report total revenue per product
category, highest first. The report joins fact_sales to dim_product on
product_id, so it also doubles as a sanity check that the last load left
the two tables consistent.`,
		Example: `  # Report from the default warehouse
  salesmart report

  # Report as JSON
  salesmart report --output json

  # Report from a specific warehouse file
  salesmart report --warehouse nightly.db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd)
		},
	}

	return cmd
}

func runReport(cmd *cobra.Command) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	ctx := context.Background()

	db, err := openWarehouse(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	report, err := db.CategoryRevenue(ctx)
	if err != nil {
		return err
	}

	cols := []string{"category", "total_revenue"}
	rows := make([][]string, 0, len(report))
	for _, r := range report {
		rows = append(rows, []string{r.Category, r.TotalRevenue.String()})
	}

	return render(cmd.OutOrStdout(), cfg.OutputFormat, cols, rows, reportOutput(report))
}

// categoryRevenueOutput is the JSON shape of one report row.
type categoryRevenueOutput struct {
	Category     string `json:"category"`
	TotalRevenue string `json:"total_revenue"`
}

func reportOutput(report []sales.CategoryRevenue) []categoryRevenueOutput {
	out := make([]categoryRevenueOutput, 0, len(report))
	for _, r := range report {
		out = append(out, categoryRevenueOutput{
			Category:     r.Category,
			TotalRevenue: r.TotalRevenue.String(),
		})
	}
	return out
}
