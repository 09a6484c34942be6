// Package pelagos is the public entry point: it wires a store to the
// scenario runner and exposes run, listing, and trajectory access.
package pelagos

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pelagos/internal/model"
	"pelagos/internal/scenario"
	"pelagos/internal/storage"
)

const defaultDBPath = "pelagos.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store  storage.Store
	runner *scenario.Runner
}

// RunRequest selects a scenario and its execution knobs. Zero values
// take the paper's protocol (10-year warm-up, 1e-7 collapse, 30-year
// recovery, yearly saves, the scenario's own dt).
type RunRequest struct {
	Scenario       string
	Seed           int64
	Dt             float64
	TSave          float64
	WarmupYears    float64
	RecoveryYears  float64
	CollapseFactor float64
}

type RunSummary struct {
	RunID             string
	Scenario          string
	Steps             int
	BiomassAtCollapse float64
	BiomassAtEnd      float64
	RecoveryFraction  float64
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Scenario     string
	Seed         int64
	FinalBiomass float64
}

// New opens the configured store and initializes it.
func New(ctx context.Context, opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return &Client{
		store:  store,
		runner: &scenario.Runner{Store: store},
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Scenarios lists the registered scenario names.
func (c *Client) Scenarios() []string {
	return scenario.Names()
}

// Run executes one scenario end to end and persists its results.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Scenario == "" {
		return RunSummary{}, fmt.Errorf("pelagos: scenario is required")
	}
	outcome, err := c.runner.Run(ctx, req.Scenario, scenario.RunParams{
		RunID:          uuid.NewString(),
		Seed:           req.Seed,
		Dt:             req.Dt,
		TSave:          req.TSave,
		WarmupYears:    req.WarmupYears,
		RecoveryYears:  req.RecoveryYears,
		CollapseFactor: req.CollapseFactor,
	})
	if err != nil {
		return RunSummary{}, err
	}
	return RunSummary{
		RunID:             outcome.Run.ID,
		Scenario:          outcome.Run.Scenario,
		Steps:             outcome.Run.Steps,
		BiomassAtCollapse: outcome.Summary.BiomassAtCollapse,
		BiomassAtEnd:      outcome.Summary.BiomassAtEnd,
		RecoveryFraction:  outcome.Summary.RecoveryFraction,
	}, nil
}

// Runs lists stored runs, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	runs, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]RunItem, len(runs))
	for i, run := range runs {
		items[i] = RunItem{
			RunID:        run.ID,
			CreatedAtUTC: run.CreatedAtUTC,
			Scenario:     run.Scenario,
			Seed:         run.Seed,
			FinalBiomass: run.FinalBiomass,
		}
	}
	return items, nil
}

// Trajectory returns the reduced trajectory of a stored run.
func (c *Client) Trajectory(ctx context.Context, runID string) ([]model.TrajectoryPoint, error) {
	points, ok, err := c.store.GetTrajectory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("pelagos: no trajectory for run %s", runID)
	}
	return points, nil
}

// Summary returns the stored scenario summary.
func (c *Client) Summary(ctx context.Context, name string) (model.ScenarioSummary, error) {
	summary, ok, err := c.store.GetScenarioSummary(ctx, name)
	if err != nil {
		return model.ScenarioSummary{}, err
	}
	if !ok {
		return model.ScenarioSummary{}, fmt.Errorf("pelagos: no summary for scenario %s", name)
	}
	return summary, nil
}
