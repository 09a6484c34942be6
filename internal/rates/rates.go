package rates

import (
	"math"

	"pelagos/internal/params"
)

// Rates holds everything one integration step needs: per-consumer-bin
// encounter, feeding level, growth and total mortality, the predation
// pressure felt by every full-grid bin, and the reproduction flux into
// the smallest consumer bin.
type Rates struct {
	Encounter    []float64
	FeedingLevel []float64
	Growth       []float64
	TotalMort    []float64
	PredMortFull []float64
	ReproFlux    float64
}

// Calculator computes Rates without allocating in the hot path. It is
// not safe for concurrent use; each projection owns one.
type Calculator struct {
	m     *params.Model
	prey  []float64
	rates Rates
}

func NewCalculator(m *params.Model) *Calculator {
	nW := m.Grid.NW()
	nFull := m.Grid.NFull()
	return &Calculator{
		m:    m,
		prey: make([]float64, nFull),
		rates: Rates{
			Encounter:    make([]float64, nW),
			FeedingLevel: make([]float64, nW),
			Growth:       make([]float64, nW),
			TotalMort:    make([]float64, nW),
			PredMortFull: make([]float64, nFull),
		},
	}
}

// Compute evaluates all rates for the current consumer and resource
// densities. The returned Rates aliases the calculator's buffers and is
// valid until the next call.
//
// The encounter integral is a convolution over the kernel's fixed
// log-ratio support window: predator bin p eats prey bin p-k for ratio
// indices k in [Lo, Hi], so each consumer touches only the window, not
// the whole grid.
func (c *Calculator) Compute(n, npp []float64) *Rates {
	m := c.m
	g := m.Grid
	k := m.Kernel
	r := &c.rates

	// Biomass-weighted prey density on the full grid. Cannibalism enters
	// here, scaled by the interaction strength.
	for j := range c.prey {
		c.prey[j] = npp[j] * g.WFull[j] * g.DwFull[j]
	}
	if m.Interaction != 0 {
		for i := range n {
			j := g.Offset + i
			c.prey[j] += m.Interaction * n[i] * g.WFull[j] * g.DwFull[j]
		}
	}

	for j := range r.PredMortFull {
		r.PredMortFull[j] = 0
	}

	repro := 0.0
	for i := range n {
		p := g.Offset + i

		enc := 0.0
		for kk := k.Lo; kk <= k.Hi; kk++ {
			j := p - kk
			if j < 0 {
				break
			}
			enc += k.Weights[kk] * c.prey[j]
		}
		enc *= m.SearchVolume[i]
		r.Encounter[i] = enc

		var assimilated float64
		if math.IsInf(m.MaxIntake[i], 1) {
			// Unsaturated limit of the Holling-II response.
			r.FeedingLevel[i] = 0
			assimilated = m.Alpha * enc
		} else {
			f := enc / (enc + m.MaxIntake[i])
			r.FeedingLevel[i] = f
			assimilated = m.Alpha * f * m.MaxIntake[i]
		}

		growth := (1-m.Psi[i])*assimilated - m.Metabolism[i]
		if growth < 0 {
			growth = 0
		}
		r.Growth[i] = growth

		repro += m.Psi[i] * assimilated * n[i] * g.Dw[i]

		// Predation pressure this consumer exerts on its prey window.
		if n[i] != 0 {
			press := (1 - r.FeedingLevel[i]) * m.SearchVolume[i] * n[i] * g.Dw[i]
			for kk := k.Lo; kk <= k.Hi; kk++ {
				j := p - kk
				if j < 0 {
					break
				}
				r.PredMortFull[j] += press * k.Weights[kk]
			}
		}
	}

	// Egg production enters the smallest bin; the factor 2 is the sex
	// ratio convention.
	r.ReproFlux = m.Cfg.ERepro * repro / (2 * g.W[0])

	for i := range n {
		r.TotalMort[i] = m.ExtMortality[i] + m.Interaction*r.PredMortFull[g.Offset+i]
	}

	return r
}
