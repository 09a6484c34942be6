package rates

import (
	"math"
	"testing"

	"pelagos/internal/params"
)

func buildModel(t *testing.T, mutate func(*params.Config)) *params.Model {
	t.Helper()
	cfg := params.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := params.Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func powerLaw(m *params.Model, coeff, exponent float64) ([]float64, []float64) {
	n := make([]float64, m.Grid.NW())
	for i, w := range m.Grid.W {
		n[i] = coeff * math.Pow(w, exponent)
	}
	return n, append([]float64(nil), m.ResourceCapacity...)
}

func TestComputeEncounterPositiveWithResourcePrey(t *testing.T) {
	m := buildModel(t, nil)
	n, npp := powerLaw(m, 0.001, -1.8)

	r := NewCalculator(m).Compute(n, npp)
	for i, w := range m.Grid.W {
		// Every consumer's prey window overlaps the resource spectrum in
		// the default configuration.
		if r.Encounter[i] <= 0 {
			t.Fatalf("zero encounter at w=%g", w)
		}
		if r.Growth[i] < 0 {
			t.Fatalf("negative growth at w=%g: %g", w, r.Growth[i])
		}
	}
}

func TestComputeUnsaturatedFeedingLevelIsZero(t *testing.T) {
	m := buildModel(t, nil)
	n, npp := powerLaw(m, 0.001, -1.8)
	r := NewCalculator(m).Compute(n, npp)
	for i, f := range r.FeedingLevel {
		if f != 0 {
			t.Fatalf("unsaturated feeding level at bin %d is %g", i, f)
		}
	}
}

func TestComputeFiniteSaturationBoundsFeedingLevel(t *testing.T) {
	m := buildModel(t, func(cfg *params.Config) {
		cfg.H = 20
		cfg.NExp = 0.75
	})
	n, npp := powerLaw(m, 0.001, -1.8)
	r := NewCalculator(m).Compute(n, npp)
	for i, f := range r.FeedingLevel {
		if f <= 0 || f >= 1 {
			t.Fatalf("feeding level at bin %d outside (0,1): %g", i, f)
		}
	}
}

func TestComputeNoCannibalismLeavesConsumerMortalityExternal(t *testing.T) {
	m := buildModel(t, nil)
	n, npp := powerLaw(m, 0.001, -1.8)
	r := NewCalculator(m).Compute(n, npp)
	for i := range n {
		if r.TotalMort[i] != m.ExtMortality[i] {
			t.Fatalf("bin %d: total %g != external %g with interaction 0", i, r.TotalMort[i], m.ExtMortality[i])
		}
	}
}

func TestComputeCannibalismRaisesMortalityAndEncounter(t *testing.T) {
	m := buildModel(t, nil)
	n, npp := powerLaw(m, 0.001, -1.8)
	base := NewCalculator(m).Compute(n, npp)
	baseEnc := append([]float64(nil), base.Encounter...)
	baseMort := append([]float64(nil), base.TotalMort...)

	cann := NewCalculator(m.WithInteraction(1)).Compute(n, npp)
	encUp, mortUp := false, false
	for i := range n {
		if cann.Encounter[i] > baseEnc[i] {
			encUp = true
		}
		if cann.TotalMort[i] > baseMort[i] {
			mortUp = true
		}
		if cann.Encounter[i] < baseEnc[i] || cann.TotalMort[i] < baseMort[i] {
			t.Fatalf("cannibalism reduced a rate at bin %d", i)
		}
	}
	if !encUp || !mortUp {
		t.Fatalf("cannibalism changed nothing: encounter up=%v mortality up=%v", encUp, mortUp)
	}
}

func TestComputePredationPressureOnlyInsidePreyWindow(t *testing.T) {
	m := buildModel(t, nil)
	g := m.Grid
	// A single occupied consumer bin in mid-spectrum.
	n := make([]float64, g.NW())
	mid := g.NW() / 2
	n[mid] = 1
	npp := append([]float64(nil), m.ResourceCapacity...)

	r := NewCalculator(m).Compute(n, npp)
	p := g.Offset + mid
	for j := range r.PredMortFull {
		k := p - j
		inside := k >= m.Kernel.Lo && k <= m.Kernel.Hi
		if inside && r.PredMortFull[j] <= 0 {
			t.Fatalf("no pressure inside the prey window at full bin %d", j)
		}
		if !inside && r.PredMortFull[j] != 0 {
			t.Fatalf("pressure outside the prey window at full bin %d: %g", j, r.PredMortFull[j])
		}
	}
}

func TestComputeReproFluxRequiresMatureFish(t *testing.T) {
	m := buildModel(t, nil)
	g := m.Grid

	// Only larval bins occupied: effectively no egg production.
	larvae := make([]float64, g.NW())
	larvae[0] = 1
	larvae[1] = 1
	npp := append([]float64(nil), m.ResourceCapacity...)
	rLarvae := NewCalculator(m).Compute(larvae, npp)

	// Only adult bins occupied: substantial egg production.
	adults := make([]float64, g.NW())
	adults[g.NW()-2] = 1
	rAdults := NewCalculator(m).Compute(adults, npp)

	if rAdults.ReproFlux <= 0 {
		t.Fatalf("mature fish should produce eggs, got %g", rAdults.ReproFlux)
	}
	if rLarvae.ReproFlux >= rAdults.ReproFlux*1e-6 {
		t.Fatalf("larval egg production %g should be negligible next to %g", rLarvae.ReproFlux, rAdults.ReproFlux)
	}
}

func TestComputeScalesLinearlyInResource(t *testing.T) {
	m := buildModel(t, nil)
	n, npp := powerLaw(m, 0.001, -1.8)
	r1 := NewCalculator(m).Compute(n, npp)
	enc1 := append([]float64(nil), r1.Encounter...)

	doubled := make([]float64, len(npp))
	for j := range npp {
		doubled[j] = 2 * npp[j]
	}
	r2 := NewCalculator(m).Compute(n, doubled)
	for i := range enc1 {
		if math.Abs(r2.Encounter[i]-2*enc1[i]) > 1e-9*enc1[i] {
			t.Fatalf("encounter not linear in prey at bin %d: %g vs 2*%g", i, r2.Encounter[i], enc1[i])
		}
	}
}
