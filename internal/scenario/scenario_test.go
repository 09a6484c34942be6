package scenario

import (
	"testing"

	"pelagos/internal/params"
	"pelagos/internal/resource"
)

func TestNamesAreSortedAndComplete(t *testing.T) {
	names := Names()
	want := []string{"baseline", "cannibalism", "larval-mortality", "stochastic-periodic", "stochastic-rednoise"}
	if len(names) != len(want) {
		t.Fatalf("expected %d scenarios, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("scenario order: got %v, want %v", names, want)
		}
	}
}

func TestLookupUnknownScenarioFails(t *testing.T) {
	if _, err := Lookup("overfishing"); err == nil {
		t.Fatalf("expected error for unknown scenario")
	}
}

func TestScenarioConfigsBuild(t *testing.T) {
	for _, name := range Names() {
		sc, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if _, err := params.Build(sc.Config); err != nil {
			t.Fatalf("scenario %s has an unbuildable config: %v", name, err)
		}
		if _, err := resource.NewForcingState(sc.Forcing, 1); err != nil {
			t.Fatalf("scenario %s has a bad forcing config: %v", name, err)
		}
	}
}

func TestScenarioToggles(t *testing.T) {
	cann, _ := Lookup("cannibalism")
	if cann.Config.Interaction != 1 {
		t.Fatalf("cannibalism scenario should set interaction 1, got %g", cann.Config.Interaction)
	}

	base, _ := Lookup("baseline")
	if base.Config.Interaction != 0 || base.Config.MuL != 0 {
		t.Fatalf("baseline should have no cannibalism and no larval mortality")
	}

	larval, _ := Lookup("larval-mortality")
	if larval.Config.MuL <= 0 {
		t.Fatalf("larval scenario should add larval mortality")
	}

	red, _ := Lookup("stochastic-rednoise")
	if red.Forcing.Regime != resource.RegimeRedNoise {
		t.Fatalf("red-noise scenario forcing regime is %q", red.Forcing.Regime)
	}
	periodic, _ := Lookup("stochastic-periodic")
	if periodic.Forcing.Regime != resource.RegimePeriodic {
		t.Fatalf("periodic scenario forcing regime is %q", periodic.Forcing.Regime)
	}
}
