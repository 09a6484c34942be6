// Package scenario reproduces the paper's experiments: a 10-year
// warm-up from a power-law spectrum, a near-extinction collapse of the
// consumer, and a 30-year recovery leg, under different cannibalism,
// larval-mortality, and resource-forcing settings.
package scenario

import (
	"fmt"
	"sort"

	"pelagos/internal/params"
	"pelagos/internal/resource"
)

// Scenario names a parameterization of the anchovy model.
type Scenario struct {
	Name        string
	Description string
	Config      params.Config
	Forcing     resource.ForcingConfig
}

var registry = map[string]func() Scenario{
	"baseline":            baselineScenario,
	"cannibalism":         cannibalismScenario,
	"larval-mortality":    larvalMortalityScenario,
	"stochastic-periodic": stochasticPeriodicScenario,
	"stochastic-rednoise": stochasticRedNoiseScenario,
}

// Lookup returns the named scenario.
func Lookup(name string) (Scenario, error) {
	factory, ok := registry[name]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	return factory(), nil
}

// Names lists the registered scenarios in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baselineScenario() Scenario {
	return Scenario{
		Name:        "baseline",
		Description: "resource feeding only, no cannibalism, no forcing",
		Config:      params.Default(),
		Forcing:     resource.NoForcing(),
	}
}

func cannibalismScenario() Scenario {
	cfg := params.Default()
	cfg.Interaction = 1
	return Scenario{
		Name:        "cannibalism",
		Description: "adults prey on their own small size classes",
		Config:      cfg,
		Forcing:     resource.NoForcing(),
	}
}

func larvalMortalityScenario() Scenario {
	cfg := params.Default()
	cfg.MuL = 30
	return Scenario{
		Name:        "larval-mortality",
		Description: "saturating extra mortality on the larval bins",
		Config:      cfg,
		Forcing:     resource.NoForcing(),
	}
}

func stochasticPeriodicScenario() Scenario {
	return Scenario{
		Name:        "stochastic-periodic",
		Description: "plankton capacity resampled log-uniformly every half year",
		Config:      params.Default(),
		Forcing:     resource.PeriodicResample(0.5),
	}
}

func stochasticRedNoiseScenario() Scenario {
	cfg := params.Default()
	return Scenario{
		Name:        "stochastic-rednoise",
		Description: "plankton capacity driven by AR(1) red noise",
		Config:      cfg,
		Forcing:     resource.RedNoiseCalibrated(cfg.Dt),
	}
}
