package scenario

import (
	"context"
	"fmt"
	"time"

	"pelagos/internal/diagnostics"
	"pelagos/internal/logging"
	"pelagos/internal/model"
	"pelagos/internal/params"
	"pelagos/internal/resource"
	"pelagos/internal/sim"
	"pelagos/internal/storage"
)

// RunParams controls one scenario execution. Zero values take the
// paper's protocol: 10 warm-up years, a 1e-7 collapse, 30 recovery
// years, yearly saves.
type RunParams struct {
	RunID          string
	Seed           int64
	Dt             float64
	TSave          float64
	WarmupYears    float64
	RecoveryYears  float64
	CollapseFactor float64
}

func (p *RunParams) applyDefaults(cfg params.Config) {
	if p.Dt == 0 {
		p.Dt = cfg.Dt
	}
	if p.TSave == 0 {
		p.TSave = 1
	}
	if p.WarmupYears == 0 {
		p.WarmupYears = 10
	}
	if p.RecoveryYears == 0 {
		p.RecoveryYears = 30
	}
	if p.CollapseFactor == 0 {
		p.CollapseFactor = 1e-7
	}
}

// Outcome bundles everything a completed scenario produced.
type Outcome struct {
	Run        model.RunRecord
	Trajectory []model.TrajectoryPoint
	Summary    model.ScenarioSummary
}

// Runner executes scenarios and persists their results.
type Runner struct {
	Store storage.Store
}

// Run executes the named scenario: warm-up, collapse, recovery. The
// forcing state is created once per run from the seed and threaded
// through both legs, so chained projections share one random stream.
func (r *Runner) Run(ctx context.Context, name string, p RunParams) (*Outcome, error) {
	sc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	p.applyDefaults(sc.Config)
	if p.RunID == "" {
		return nil, fmt.Errorf("scenario: run ID is required")
	}

	m, err := params.Build(sc.Config)
	if err != nil {
		return nil, err
	}
	forcing, err := resource.NewForcingState(sc.Forcing, p.Seed)
	if err != nil {
		return nil, err
	}

	logging.Infow("scenario starting",
		"scenario", name, "run_id", p.RunID, "seed", p.Seed,
		"dt", p.Dt, "warmup_years", p.WarmupYears, "recovery_years", p.RecoveryYears)

	opts := sim.Options{TMax: p.WarmupYears, Dt: p.Dt, TSave: p.TSave}
	warmup, err := sim.Project(ctx, m, sim.PowerLawInitial(m, 0.001, -1.8), opts, forcing)
	if err != nil {
		return nil, fmt.Errorf("warm-up leg: %w", err)
	}

	collapsed := sim.RescaleAbundance(warmup.Final(), p.CollapseFactor)
	opts.TMax = p.RecoveryYears
	recovery, err := sim.Project(ctx, m, collapsed, opts, forcing)
	if err != nil {
		return nil, fmt.Errorf("recovery leg: %w", err)
	}

	outcome := r.summarize(sc, p, m, warmup, recovery)
	if r.Store != nil {
		if err := r.persist(ctx, outcome); err != nil {
			return nil, err
		}
	}

	logging.Infow("scenario finished",
		"scenario", name, "run_id", p.RunID,
		"biomass_at_collapse", outcome.Summary.BiomassAtCollapse,
		"biomass_at_end", outcome.Summary.BiomassAtEnd,
		"recovery_fraction", outcome.Summary.RecoveryFraction)
	return outcome, nil
}

func (r *Runner) summarize(sc Scenario, p RunParams, m *params.Model, warmup, recovery *sim.Result) *Outcome {
	versioned := model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}

	trajectory := reduce(warmup, m)
	trajectory = append(trajectory, reduce(recovery, m)[1:]...)

	biomassAtCollapse := trajectory[indexOfTime(trajectory, warmup.Final().Time)].Biomass
	biomassAtEnd := trajectory[len(trajectory)-1].Biomass
	fraction := 0.0
	if biomassAtCollapse > 0 {
		fraction = biomassAtEnd / biomassAtCollapse
	}

	run := model.RunRecord{
		VersionedRecord: versioned,
		ID:              p.RunID,
		Scenario:        sc.Name,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Seed:            p.Seed,
		Dt:              p.Dt,
		TSave:           p.TSave,
		WarmupYears:     p.WarmupYears,
		RecoveryYears:   p.RecoveryYears,
		CollapseFactor:  p.CollapseFactor,
		Steps:           warmup.Steps + recovery.Steps,
		FinalBiomass:    biomassAtEnd,
	}
	summary := model.ScenarioSummary{
		VersionedRecord:   versioned,
		Name:              sc.Name,
		RunID:             p.RunID,
		BiomassAtCollapse: biomassAtCollapse,
		BiomassAtEnd:      biomassAtEnd,
		RecoveryFraction:  fraction,
	}
	return &Outcome{Run: run, Trajectory: trajectory, Summary: summary}
}

func (r *Runner) persist(ctx context.Context, outcome *Outcome) error {
	if err := r.Store.SaveRun(ctx, outcome.Run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if err := r.Store.SaveTrajectory(ctx, outcome.Run.ID, outcome.Trajectory); err != nil {
		return fmt.Errorf("save trajectory: %w", err)
	}
	if err := r.Store.SaveScenarioSummary(ctx, outcome.Summary); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

func reduce(res *sim.Result, m *params.Model) []model.TrajectoryPoint {
	biomass := diagnostics.Biomass(res, m, 0, 0)
	ssb := diagnostics.SpawningStockBiomass(res, m)
	recruitment := diagnostics.Recruitment(res, m)

	points := make([]model.TrajectoryPoint, len(res.Snapshots))
	for i, snap := range res.Snapshots {
		points[i] = model.TrajectoryPoint{
			Time:        snap.Time,
			Biomass:     biomass[i],
			SSB:         ssb[i],
			Recruitment: recruitment[i],
		}
	}
	return points
}

func indexOfTime(points []model.TrajectoryPoint, t float64) int {
	for i, p := range points {
		if p.Time == t {
			return i
		}
	}
	return len(points) - 1
}
