package params

import (
	"errors"
	"math"
	"testing"

	"pelagos/internal/grid"
	"pelagos/internal/kernel"
)

func TestBuildDefaultConfig(t *testing.T) {
	m, err := Build(Default())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Grid.W[0] != 0.0005 {
		t.Fatalf("consumer grid starts at %g, want 0.0005", m.Grid.W[0])
	}
	if m.Interaction != 0 {
		t.Fatalf("default interaction should be 0, got %g", m.Interaction)
	}
	for i, v := range m.MaxIntake {
		if !math.IsInf(v, 1) {
			t.Fatalf("default intake should be unsaturated, bin %d = %g", i, v)
		}
	}
	for j, w := range m.Grid.WFull {
		if w > 0.01 && m.ResourceCapacity[j] != 0 {
			t.Fatalf("capacity above cutoff should be 0 at w=%g, got %g", w, m.ResourceCapacity[j])
		}
		if w <= 0.01 && m.ResourceCapacity[j] <= 0 {
			t.Fatalf("capacity below cutoff should be positive at w=%g", w)
		}
	}
}

func TestBuildMaturityOgive(t *testing.T) {
	m, err := Build(Default())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i, w := range m.Grid.W {
		if m.Psi[i] < 0 || m.Psi[i] > 1 {
			t.Fatalf("psi outside [0,1] at w=%g: %g", w, m.Psi[i])
		}
	}
	// Nearly no allocation far below maturation, substantial above.
	if m.Psi[0] > 1e-6 {
		t.Fatalf("psi at wMin = %g, want ~0", m.Psi[0])
	}
	last := m.Psi[len(m.Psi)-1]
	if last < 0.5 {
		t.Fatalf("psi near wInf = %g, want > 0.5", last)
	}
}

func TestBuildAcceptsKAsAlphaAlias(t *testing.T) {
	cfg := Default()
	cfg.Alpha = 0
	cfg.K = 0.45
	m, err := Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Alpha != 0.45 {
		t.Fatalf("expected K to stand in for alpha, got %g", m.Alpha)
	}
}

func TestBuildRejectsBadConfigs(t *testing.T) {
	base := Default()

	cfg := base
	cfg.Dt = 0
	if _, err := Build(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("zero dt: expected ErrConfig, got %v", err)
	}

	cfg = base
	cfg.Alpha = 0
	cfg.K = 0
	if _, err := Build(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("missing efficiency: expected ErrConfig, got %v", err)
	}

	cfg = base
	cfg.WMat = 100
	if _, err := Build(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("w_mat above w_inf: expected ErrConfig, got %v", err)
	}

	cfg = base
	cfg.WInf = cfg.WMin
	if _, err := Build(cfg); !errors.Is(err, grid.ErrInvalidGridSpec) {
		t.Fatalf("degenerate grid: expected ErrInvalidGridSpec, got %v", err)
	}

	// Window narrower than one log grid step: no ratio index inside.
	cfg = base
	cfg.PPMRMin = 150
	cfg.PPMRMax = 160
	if _, err := Build(cfg); !errors.Is(err, kernel.ErrDegenerateKernel) {
		t.Fatalf("empty window: expected ErrDegenerateKernel, got %v", err)
	}
}

func TestSettersReturnIndependentSnapshots(t *testing.T) {
	m, err := Build(Default())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	mu := make([]float64, m.Grid.NW())
	for i := range mu {
		mu[i] = 0.3
	}
	withMu := m.WithExternalMortality(mu)
	mu[0] = 99
	if withMu.ExtMortality[0] != 0.3 {
		t.Fatalf("setter must copy the mortality vector")
	}
	if m.ExtMortality[0] == 0.3 {
		t.Fatalf("setter must not mutate the original model")
	}

	withTheta := m.WithInteraction(1)
	if m.Interaction != 0 || withTheta.Interaction != 1 {
		t.Fatalf("interaction setter leaked: orig=%g new=%g", m.Interaction, withTheta.Interaction)
	}
}
