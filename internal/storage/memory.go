package storage

import (
	"context"
	"sort"
	"sync"

	"pelagos/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	runs         map[string]model.RunRecord
	trajectories map[string][]model.TrajectoryPoint
	summaries    map[string]model.ScenarioSummary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.RunRecord)
	s.trajectories = make(map[string][]model.TrajectoryPoint)
	s.summaries = make(map[string]model.ScenarioSummary)
	return nil
}

// Reset drops all stored records.
func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) SaveTrajectory(_ context.Context, runID string, points []model.TrajectoryPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.TrajectoryPoint, len(points))
	copy(copied, points)
	s.trajectories[runID] = copied
	return nil
}

func (s *MemoryStore) GetTrajectory(_ context.Context, runID string) ([]model.TrajectoryPoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.trajectories[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.TrajectoryPoint, len(points))
	copy(copied, points)
	return copied, true, nil
}

func (s *MemoryStore) SaveScenarioSummary(_ context.Context, summary model.ScenarioSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[summary.Name] = summary
	return nil
}

func (s *MemoryStore) GetScenarioSummary(_ context.Context, name string) (model.ScenarioSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[name]
	return summary, ok, nil
}
