// Package state records pipeline run history in SQLite: one row per run
// with its status, timing, and per-stage row counts.
package state

import "time"

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RowCounts holds the per-stage row counts reported after a run.
type RowCounts struct {
	Extracted   int
	Quarantined int
	Clean       int
	Loaded      int
}

// Run is one pipeline invocation.
type Run struct {
	ID          string
	Environment string
	Status      RunStatus
	Counts      RowCounts
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// Store persists run history.
type Store interface {
	// CreateRun records the start of a run.
	CreateRun(env string) (*Run, error)

	// CompleteRun marks a run finished with its final status, row counts,
	// and error message (empty on success).
	CompleteRun(id string, status RunStatus, counts RowCounts, errMsg string) error

	// GetRun retrieves a run by ID.
	GetRun(id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// Close releases the store's resources.
	Close() error
}
