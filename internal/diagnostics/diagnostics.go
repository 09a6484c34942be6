// Package diagnostics derives summary series from completed
// trajectories: biomass over a size range, spawning-stock biomass,
// recruitment, death-rate fields, and the stock-recruitment relation.
package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pelagos/internal/params"
	"pelagos/internal/rates"
	"pelagos/internal/sim"
)

// Biomass returns total consumer biomass per saved snapshot, restricted
// to bins with wLo <= w <= wHi. Pass 0 and +Inf (or wHi <= 0) for the
// whole spectrum.
func Biomass(res *sim.Result, m *params.Model, wLo, wHi float64) []float64 {
	weights := biomassWeights(m, wLo, wHi, nil)
	out := make([]float64, len(res.Snapshots))
	for t, snap := range res.Snapshots {
		out[t] = floats.Dot(snap.N, weights)
	}
	return out
}

// SpawningStockBiomass returns the maturity-weighted biomass series.
func SpawningStockBiomass(res *sim.Result, m *params.Model) []float64 {
	weights := biomassWeights(m, 0, 0, m.Psi)
	out := make([]float64, len(res.Snapshots))
	for t, snap := range res.Snapshots {
		out[t] = floats.Dot(snap.N, weights)
	}
	return out
}

// Recruitment returns the reproduction flux into the smallest bin per
// saved snapshot, recomputed from the saved densities.
func Recruitment(res *sim.Result, m *params.Model) []float64 {
	calc := rates.NewCalculator(m)
	out := make([]float64, len(res.Snapshots))
	for t, snap := range res.Snapshots {
		out[t] = calc.Compute(snap.N, snap.NPP).ReproFlux
	}
	return out
}

// DeathRateField returns the total per-bin consumer mortality (external
// plus cannibalistic predation) at one saved time index.
func DeathRateField(res *sim.Result, m *params.Model, timeIndex int) ([]float64, error) {
	if timeIndex < 0 || timeIndex >= len(res.Snapshots) {
		return nil, fmt.Errorf("diagnostics: time index %d outside 0..%d", timeIndex, len(res.Snapshots)-1)
	}
	snap := res.Snapshots[timeIndex]
	r := rates.NewCalculator(m).Compute(snap.N, snap.NPP)
	return append([]float64(nil), r.TotalMort...), nil
}

// MeanBiomass is the time average of a biomass series.
func MeanBiomass(series []float64) float64 {
	return stat.Mean(series, nil)
}

// StockRecruitment fits recruitment against spawning-stock biomass,
// the paper's stock-recruitment diagnostic.
func StockRecruitment(ssb, recruitment []float64) (slope, intercept float64, err error) {
	if len(ssb) != len(recruitment) || len(ssb) < 2 {
		return 0, 0, fmt.Errorf("diagnostics: need matched series of at least 2 points, got %d and %d", len(ssb), len(recruitment))
	}
	intercept, slope = stat.LinearRegression(ssb, recruitment, nil, false)
	return slope, intercept, nil
}

func biomassWeights(m *params.Model, wLo, wHi float64, scale []float64) []float64 {
	weights := make([]float64, m.Grid.NW())
	for i, w := range m.Grid.W {
		if w < wLo {
			continue
		}
		if wHi > 0 && w > wHi {
			continue
		}
		weights[i] = w * m.Grid.Dw[i]
		if scale != nil {
			weights[i] *= scale[i]
		}
	}
	return weights
}
