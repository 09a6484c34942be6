package storage

import (
	"context"

	"pelagos/internal/model"
)

// Store defines persistence operations for run records, reduced
// trajectories, and scenario summaries.
type Store interface {
	Init(ctx context.Context) error
	Reset(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveTrajectory(ctx context.Context, runID string, points []model.TrajectoryPoint) error
	GetTrajectory(ctx context.Context, runID string) ([]model.TrajectoryPoint, bool, error)
	SaveScenarioSummary(ctx context.Context, summary model.ScenarioSummary) error
	GetScenarioSummary(ctx context.Context, name string) (model.ScenarioSummary, bool, error)
}
