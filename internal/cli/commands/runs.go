package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/leapstack-labs/salesmart/internal/cli/config"
	"github.com/leapstack-labs/salesmart/internal/state"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent pipeline runs",
		Long: `List recent pipeline runs from the run-history database, newest first,
with their status and per-stage row counts.`,
		Example: `  # Show the last 20 runs
  salesmart runs

  # Show the last 5 runs as JSON
  salesmart runs --limit 5 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")

	return cmd
}

func runRuns(cmd *cobra.Command, limit int) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		return fmt.Errorf("no run history found at %s (run 'salesmart run' first)", cfg.StatePath)
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	cols := []string{"run_id", "environment", "status", "started_at", "extracted", "quarantined", "clean", "loaded", "error"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.Environment,
			string(r.Status),
			r.StartedAt.Format(time.RFC3339),
			strconv.Itoa(r.Counts.Extracted),
			strconv.Itoa(r.Counts.Quarantined),
			strconv.Itoa(r.Counts.Clean),
			strconv.Itoa(r.Counts.Loaded),
			r.Error,
		})
	}

	return render(cmd.OutOrStdout(), cfg.OutputFormat, cols, rows, runsOutput(runs))
}

// runOutput is the JSON shape of one run-history entry.
type runOutput struct {
	ID          string `json:"id"`
	Environment string `json:"environment"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Extracted   int    `json:"extracted"`
	Quarantined int    `json:"quarantined"`
	Clean       int    `json:"clean"`
	Loaded      int    `json:"loaded"`
	Error       string `json:"error,omitempty"`
}

func runsOutput(runs []*state.Run) []runOutput {
	out := make([]runOutput, 0, len(runs))
	for _, r := range runs {
		o := runOutput{
			ID:          r.ID,
			Environment: r.Environment,
			Status:      string(r.Status),
			StartedAt:   r.StartedAt.Format(time.RFC3339),
			Extracted:   r.Counts.Extracted,
			Quarantined: r.Counts.Quarantined,
			Clean:       r.Counts.Clean,
			Loaded:      r.Counts.Loaded,
			Error:       r.Error,
		}
		if r.CompletedAt != nil {
			o.CompletedAt = r.CompletedAt.Format(time.RFC3339)
		}
		out = append(out, o)
	}
	return out
}
