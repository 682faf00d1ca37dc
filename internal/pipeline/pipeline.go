// Package pipeline orchestrates a single ETL invocation:
// Extract -> Validate -> (Quarantine, Model) -> Write.
// The stages run strictly in sequence; there is no retry loop and no
// concurrency within a run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/salesmart/internal/extract"
	"github.com/leapstack-labs/salesmart/internal/model"
	"github.com/leapstack-labs/salesmart/internal/quarantine"
	"github.com/leapstack-labs/salesmart/internal/sales"
	"github.com/leapstack-labs/salesmart/internal/state"
	"github.com/leapstack-labs/salesmart/internal/validate"
	"github.com/leapstack-labs/salesmart/internal/warehouse"
)

// Extractor produces the raw in-memory dataset for a run.
type Extractor interface {
	Extract(ctx context.Context) ([]sales.RawRecord, error)
}

// QuarantineSink persists the quarantined partition for review.
type QuarantineSink interface {
	Write(ctx context.Context, records []sales.RawRecord) error
}

// Config holds pipeline configuration.
type Config struct {
	// InputPath is the raw sales feed to extract.
	InputPath string
	// QuarantinePath is the file that receives quarantined rows.
	QuarantinePath string
	// StatePath is the path to the SQLite run-history database.
	StatePath string
	// Environment is the current environment (dev, staging, prod).
	Environment string
	// Warehouse selects and configures the warehouse backend.
	Warehouse warehouse.Config
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Result summarizes a completed run.
type Result struct {
	RunID  string
	Counts state.RowCounts
	Took   time.Duration
}

// Pipeline runs the ETL stages against a configured warehouse.
type Pipeline struct {
	logger *slog.Logger

	extractor  Extractor
	validator  *validate.Validator
	quarantine QuarantineSink
	store      state.Store
	env        string

	// Warehouse adapter (lazy connected)
	db          warehouse.Adapter
	dbConfig    warehouse.Config
	dbConnected bool
	dbMu        sync.Mutex
}

// New creates a pipeline with a lazy warehouse connection. The warehouse is
// only connected when Run() needs to load tables.
func New(cfg Config) (*Pipeline, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing pipeline",
		"input", cfg.InputPath, "environment", cfg.Environment, "warehouse_type", cfg.Warehouse.Type)

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	env := cfg.Environment
	if env == "" {
		env = "dev"
	}

	return &Pipeline{
		logger:     logger,
		extractor:  extract.NewCSV(cfg.InputPath, logger),
		validator:  validate.New(logger),
		quarantine: quarantine.NewCSV(cfg.QuarantinePath, logger),
		store:      store,
		env:        env,
		dbConfig:   cfg.Warehouse,
	}, nil
}

// ensureDBConnected lazily connects to the warehouse.
func (p *Pipeline) ensureDBConnected(ctx context.Context) error {
	p.dbMu.Lock()
	defer p.dbMu.Unlock()

	if p.dbConnected {
		return nil
	}

	p.logger.Debug("connecting to warehouse", "warehouse_type", p.dbConfig.Type)

	db, err := warehouse.NewAdapter(p.dbConfig, p.logger)
	if err != nil {
		return fmt.Errorf("failed to create warehouse adapter: %w", err)
	}

	if err := db.Connect(ctx, p.dbConfig); err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}

	p.db = db
	p.dbConnected = true
	return nil
}

// Run executes one full pipeline invocation and records it in the run
// history. Data-quality problems are routed to quarantine and never fail the
// run; I/O failures and modeler invariant violations abort it, and the
// warehouse is left with the previous run's tables intact.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.logger.Info("starting run", "environment", p.env)
	startTime := time.Now()

	run, err := p.store.CreateRun(p.env)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	p.logger.Debug("created run", "run_id", run.ID)

	counts, runErr := p.execute(ctx)

	if runErr != nil {
		p.logger.Error("run failed", "run_id", run.ID, "error", runErr.Error())
		_ = p.store.CompleteRun(run.ID, state.RunStatusFailed, counts, runErr.Error())
		return nil, runErr
	}

	if err := p.store.CompleteRun(run.ID, state.RunStatusCompleted, counts, ""); err != nil {
		return nil, err
	}

	took := time.Since(startTime)
	p.logger.Info("run completed", "run_id", run.ID,
		"extracted", counts.Extracted, "quarantined", counts.Quarantined,
		"clean", counts.Clean, "loaded", counts.Loaded, "took", took.Round(time.Millisecond))

	return &Result{RunID: run.ID, Counts: counts, Took: took}, nil
}

// execute runs the stages and returns whatever counts were reached before a
// failure, so a failed run still records how far it got.
func (p *Pipeline) execute(ctx context.Context) (state.RowCounts, error) {
	var counts state.RowCounts

	records, err := p.extractor.Extract(ctx)
	if err != nil {
		return counts, fmt.Errorf("extract: %w", err)
	}
	counts.Extracted = len(records)
	p.logger.Info("extraction complete", "rows", counts.Extracted)

	clean, quarantined := p.validator.Partition(records)
	counts.Clean = len(clean)
	counts.Quarantined = len(quarantined)
	if counts.Quarantined > 0 {
		p.logger.Warn("rows failed validation", "rows", counts.Quarantined)
	}
	p.logger.Info("validation complete", "clean", counts.Clean, "quarantined", counts.Quarantined)

	// The quarantine artifact is written before the warehouse load so bad
	// rows stay reviewable even if the load fails. It is written on every
	// run, including an empty one, replacing the previous run's artifact.
	if err := p.quarantine.Write(ctx, quarantined); err != nil {
		return counts, fmt.Errorf("quarantine: %w", err)
	}

	schema, err := model.Build(clean)
	if err != nil {
		return counts, fmt.Errorf("model: %w", err)
	}
	p.logger.Info("modeling complete", "dim_product", len(schema.Products), "fact_sales", len(schema.Facts))

	if err := p.ensureDBConnected(ctx); err != nil {
		return counts, fmt.Errorf("load: %w", err)
	}
	if err := p.db.ReplaceStarSchema(ctx, schema); err != nil {
		return counts, fmt.Errorf("load: %w", err)
	}
	counts.Loaded = len(schema.Facts)
	p.logger.Info("load complete", "rows", counts.Loaded)

	return counts, nil
}

// Store returns the run-history store.
func (p *Pipeline) Store() state.Store {
	return p.store
}

// Close releases all resources.
func (p *Pipeline) Close() error {
	p.logger.Debug("closing pipeline")

	var errs []error
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
