package resource

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrUnknownRegime = errors.New("resource: unknown forcing regime")

// Regime selects how the carrying-capacity factor evolves over time.
type Regime string

const (
	// RegimeNone keeps the factor pinned at 1.
	RegimeNone Regime = "none"
	// RegimePeriodic redraws the factor log-uniformly on [0.5, 2] every
	// ResamplePeriod model years.
	RegimePeriodic Regime = "periodic-resample"
	// RegimeRedNoise evolves the log factor as a discretized
	// Ornstein-Uhlenbeck process: factor^phi * exp(N(0, sigma)) per step.
	RegimeRedNoise Regime = "red-noise"
)

// ForcingConfig selects a regime and its parameters. Phi and Sigma are
// used literally; RedNoiseCalibrated derives them from the step size.
type ForcingConfig struct {
	Regime         Regime
	ResamplePeriod float64
	Phi            float64
	Sigma          float64
}

// NoForcing keeps the carrying capacity unperturbed.
func NoForcing() ForcingConfig {
	return ForcingConfig{Regime: RegimeNone}
}

// PeriodicResample redraws the factor every period model years.
func PeriodicResample(period float64) ForcingConfig {
	return ForcingConfig{Regime: RegimePeriodic, ResamplePeriod: period}
}

// RedNoise uses explicit AR(1) parameters.
func RedNoise(phi, sigma float64) ForcingConfig {
	return ForcingConfig{Regime: RegimeRedNoise, Phi: phi, Sigma: sigma}
}

// RedNoiseCalibrated applies the calibration phi = 1-0.5*dt,
// sigma = 10*dt for the given integration step.
func RedNoiseCalibrated(dt float64) ForcingConfig {
	return ForcingConfig{Regime: RegimeRedNoise, Phi: 1 - 0.5*dt, Sigma: 10 * dt}
}

// ForcingState is the mutable carrying-capacity forcing for one run
// chain. Each scenario owns its own state and seed; it is advanced
// exactly once per integration step and persists across chained
// projections.
type ForcingState struct {
	cfg     ForcingConfig
	rng     *rand.Rand
	factor  float64
	elapsed float64
}

// NewForcingState validates the regime and seeds the state's private
// random stream.
func NewForcingState(cfg ForcingConfig, seed int64) (*ForcingState, error) {
	switch cfg.Regime {
	case "", RegimeNone:
		cfg.Regime = RegimeNone
	case RegimePeriodic:
		if cfg.ResamplePeriod == 0 {
			cfg.ResamplePeriod = 0.5
		}
		if cfg.ResamplePeriod < 0 {
			return nil, fmt.Errorf("resource: resample period must be positive, got %g", cfg.ResamplePeriod)
		}
	case RegimeRedNoise:
		if cfg.Sigma < 0 {
			return nil, fmt.Errorf("resource: sigma must be non-negative, got %g", cfg.Sigma)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegime, cfg.Regime)
	}
	return &ForcingState{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		factor: 1,
	}, nil
}

// Step advances the forcing by dt and returns the factor to apply this
// step. Callers must invoke it exactly once per integration step.
func (s *ForcingState) Step(dt float64) float64 {
	switch s.cfg.Regime {
	case RegimePeriodic:
		s.elapsed += dt
		if s.elapsed >= s.cfg.ResamplePeriod-1e-12 {
			lo, hi := math.Log(0.5), math.Log(2)
			s.factor = math.Exp(lo + s.rng.Float64()*(hi-lo))
			s.elapsed = 0
		}
	case RegimeRedNoise:
		s.factor = math.Pow(s.factor, s.cfg.Phi) * math.Exp(s.rng.NormFloat64()*s.cfg.Sigma)
	}
	return s.factor
}

// Factor returns the current factor without advancing the state.
func (s *ForcingState) Factor() float64 { return s.factor }

// Reset restores the factor to 1 and clears the resample clock. The
// random stream is left where it is.
func (s *ForcingState) Reset() {
	s.factor = 1
	s.elapsed = 0
}
