package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"pelagos/internal/params"
	"pelagos/internal/rates"
	"pelagos/internal/resource"
)

var ErrNumericalInstability = errors.New("sim: numerical instability")

// StepError reports a fatal instability: the step it occurred on, the
// model time, and the last valid snapshot so the caller can inspect or
// rerun with a smaller dt. Choosing a smaller dt is a caller decision,
// never an automatic retry.
type StepError struct {
	Step int
	Time float64
	Last Snapshot
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Snapshot is one saved state: consumer density N on the consumer grid
// and resource density NPP on the full grid.
type Snapshot struct {
	Time float64
	N    []float64
	NPP  []float64
}

// Clone deep-copies a snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Time: s.Time,
		N:    append([]float64(nil), s.N...),
		NPP:  append([]float64(nil), s.NPP...),
	}
}

// RescaleAbundance returns a snapshot with the consumer density scaled
// by factor, leaving the resource untouched. This is the explicit
// transform used to seed a collapse continuation; snapshots are never
// edited in place across scenario branches.
func RescaleAbundance(s Snapshot, factor float64) Snapshot {
	next := s.Clone()
	for i := range next.N {
		next.N[i] *= factor
	}
	return next
}

// PowerLawInitial builds the conventional starting state: consumer
// density coeff*w^exponent and resource at carrying capacity.
func PowerLawInitial(m *params.Model, coeff, exponent float64) Snapshot {
	n := make([]float64, m.Grid.NW())
	for i, w := range m.Grid.W {
		n[i] = coeff * math.Pow(w, exponent)
	}
	return Snapshot{
		Time: 0,
		N:    n,
		NPP:  append([]float64(nil), m.ResourceCapacity...),
	}
}

// Options sets the projection horizon and discretization. NegTolerance
// bounds how far below zero a density may round before the run is
// declared unstable; densities inside the tolerance are clamped to 0.
type Options struct {
	TMax  float64
	Dt    float64
	TSave float64

	NegTolerance float64
}

// Result is a completed trajectory. The final snapshot seeds
// continuation runs.
type Result struct {
	Snapshots []Snapshot
	Steps     int
}

// Final returns the last saved snapshot.
func (r *Result) Final() Snapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}

// Project advances the coupled consumer/resource system from initial
// over TMax model years in round(TMax/Dt) explicit steps. Each step
// computes rates, applies an upwind finite-difference transport step to
// the consumer with the reproduction flux as boundary condition at the
// smallest bin, then advances the resource with the same dt and the
// caller-owned forcing state. A snapshot is recorded at t=0 and at
// every TSave boundary.
//
// There is no convergence early-exit: every run is the fixed number of
// steps. A negative-beyond-tolerance or non-finite density aborts
// immediately with a StepError.
func Project(ctx context.Context, m *params.Model, initial Snapshot, opts Options, forcing *resource.ForcingState) (*Result, error) {
	if opts.Dt <= 0 || opts.TMax <= 0 {
		return nil, fmt.Errorf("sim: dt and tMax must be positive (dt=%g tMax=%g)", opts.Dt, opts.TMax)
	}
	if len(initial.N) != m.Grid.NW() || len(initial.NPP) != m.Grid.NFull() {
		return nil, fmt.Errorf("sim: initial state has %dx%d bins, model wants %dx%d",
			len(initial.N), len(initial.NPP), m.Grid.NW(), m.Grid.NFull())
	}
	negTol := opts.NegTolerance
	if negTol == 0 {
		negTol = 1e-12
	}

	steps := int(math.Round(opts.TMax / opts.Dt))
	saveEvery := steps
	if opts.TSave > 0 {
		saveEvery = int(math.Round(opts.TSave / opts.Dt))
		if saveEvery < 1 {
			saveEvery = 1
		}
	}

	n := append([]float64(nil), initial.N...)
	npp := append([]float64(nil), initial.NPP...)
	nNext := make([]float64, len(n))
	nppNext := make([]float64, len(npp))

	result := &Result{Snapshots: []Snapshot{initial.Clone()}}
	last := result.Snapshots[0]

	calc := rates.NewCalculator(m)
	dt := opts.Dt
	g := m.Grid

	for step := 1; step <= steps; step++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r := calc.Compute(n, npp)

		// Upwind transport along the size axis: growth carries density
		// up-size, mortality drains it, reproduction enters bin 0.
		influx := r.ReproFlux
		for i := range n {
			outflux := r.Growth[i] * n[i]
			nNext[i] = n[i] - dt/g.Dw[i]*(outflux-influx) - dt*r.TotalMort[i]*n[i]
			influx = outflux
		}

		resource.StepInto(nppNext, npp, r.PredMortFull, m.ResourceRate, m.ResourceCapacity, m.Immigration, dt, forcing)

		t := initial.Time + float64(step)*dt
		if err := settle(nNext, negTol); err != nil {
			return result, &StepError{Step: step, Time: t, Last: last, Err: err}
		}
		if err := settle(nppNext, negTol); err != nil {
			return result, &StepError{Step: step, Time: t, Last: last, Err: err}
		}

		n, nNext = nNext, n
		npp, nppNext = nppNext, npp

		if step%saveEvery == 0 || step == steps {
			snap := Snapshot{
				Time: t,
				N:    append([]float64(nil), n...),
				NPP:  append([]float64(nil), npp...),
			}
			result.Snapshots = append(result.Snapshots, snap)
			last = snap
		}
	}
	result.Steps = steps
	return result, nil
}

// settle clamps round-off negatives to zero and rejects anything worse.
func settle(v []float64, negTol float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: non-finite density %g at bin %d", ErrNumericalInstability, x, i)
		}
		if x < 0 {
			if x < -negTol {
				return fmt.Errorf("%w: density %g at bin %d below tolerance", ErrNumericalInstability, x, i)
			}
			v[i] = 0
		}
	}
	return nil
}
