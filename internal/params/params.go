package params

import (
	"errors"
	"fmt"
	"math"

	"pelagos/internal/grid"
	"pelagos/internal/kernel"
	"pelagos/internal/mortality"
)

var ErrConfig = errors.New("params: invalid configuration")

// Config is the flat scenario parameter set. Sizes are grams, rates are
// per model year.
type Config struct {
	// Discretization.
	Dt float64 `json:"dt"`
	Dx float64 `json:"dx"`

	// Consumer sizes.
	WMin float64 `json:"w_min"`
	WInf float64 `json:"w_inf"`
	WMat float64 `json:"w_mat"`

	// Feeding window.
	PPMRMin float64 `json:"ppmr_min"`
	PPMRMax float64 `json:"ppmr_max"`

	// Search volume gamma*w^q and assimilation. K is an alternate
	// symbol for the assimilation efficiency; it applies when Alpha is
	// unset.
	Gamma float64 `json:"gamma"`
	Q     float64 `json:"q"`
	Alpha float64 `json:"alpha"`
	K     float64 `json:"K"`

	// Intake saturation h*w^nExp. Zero or +Inf means unsaturated:
	// feeding level 0 and assimilation alpha*encounter.
	H    float64 `json:"h"`
	NExp float64 `json:"n_exp"`

	// Metabolic cost ks*w^pExp.
	Ks   float64 `json:"ks"`
	PExp float64 `json:"p_exp"`

	// Reproduction.
	ERepro float64 `json:"epsilon_R"`
	RhoM   float64 `json:"rho_m"`
	RhoInf float64 `json:"rho_inf"`

	// External mortality (see internal/mortality).
	Mu0  float64 `json:"mu_0"`
	RhoB float64 `json:"rho_b"`
	WS   float64 `json:"w_s"`
	RhoS float64 `json:"rho_s"`
	MuS  float64 `json:"mu_s"`
	MuL  float64 `json:"mu_l"`
	WL   float64 `json:"w_l"`
	RhoL float64 `json:"rho_l"`

	// Resource spectrum: capacity a0*w^-lambda below the cutoff, growth
	// rate r0*w^(rho-1), immigration i0, grid floor wResMin (defaults
	// to wMin/ppmrMax so the smallest consumer finds prey).
	A0        float64 `json:"a0"`
	Lambda    float64 `json:"lambda"`
	WPPCutoff float64 `json:"w_pp_cutoff"`
	R0        float64 `json:"r0"`
	Rho       float64 `json:"rho"`
	I0        float64 `json:"i0"`
	WResMin   float64 `json:"w_res_min"`

	// Cannibalism strength: 0 disables self-predation.
	Interaction float64 `json:"interaction"`
}

// Default returns the anchovy baseline parameter set.
func Default() Config {
	return Config{
		Dt:        0.001,
		Dx:        0.1,
		WMin:      0.0005,
		WInf:      50,
		WMat:      5,
		PPMRMin:   100,
		PPMRMax:   10000,
		Gamma:     30,
		Q:         0.8,
		Alpha:     0.6,
		ERepro:    0.002,
		RhoM:      5,
		RhoInf:    0.25,
		Mu0:       1.5,
		RhoB:      -0.25,
		WS:        10,
		RhoS:      0.5,
		WL:        0.003,
		RhoL:      3,
		A0:        0.1,
		Lambda:    2.0,
		WPPCutoff: 0.01,
		R0:        2,
		Rho:       0.75,
	}
}

// Model is the assembled, discretized parameter object. It is owned by
// the simulation; the With* setters return updated snapshots and never
// mutate the receiver, so scenario branches cannot alias state.
type Model struct {
	Cfg    Config
	Grid   *grid.Grid
	Kernel *kernel.Kernel

	// Per consumer bin.
	SearchVolume []float64
	MaxIntake    []float64
	Metabolism   []float64
	Psi          []float64
	ExtMortality []float64

	// Per full-grid bin.
	ResourceRate     []float64
	ResourceCapacity []float64

	Immigration float64
	Interaction float64
	Alpha       float64
}

// Build assembles grids, kernel, maturity ogive, default mortality, and
// resource vectors from a Config. Configuration errors surface here,
// before any simulation step runs.
func Build(cfg Config) (*Model, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", ErrConfig, cfg.Dt)
	}
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = cfg.K
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: assimilation efficiency %g outside (0, 1]", ErrConfig, alpha)
	}
	if cfg.Gamma <= 0 {
		return nil, fmt.Errorf("%w: search volume coefficient must be positive, got %g", ErrConfig, cfg.Gamma)
	}
	if cfg.WMat <= 0 || cfg.WMat >= cfg.WInf {
		return nil, fmt.Errorf("%w: w_mat %g must lie inside (0, w_inf)", ErrConfig, cfg.WMat)
	}
	if cfg.ERepro < 0 || cfg.ERepro > 1 {
		return nil, fmt.Errorf("%w: epsilon_R %g outside [0, 1]", ErrConfig, cfg.ERepro)
	}

	wResMin := cfg.WResMin
	if wResMin == 0 {
		wResMin = cfg.WMin / cfg.PPMRMax
	}
	g, err := grid.New(cfg.WMin, cfg.WInf, wResMin, cfg.Dx)
	if err != nil {
		return nil, err
	}

	k, err := kernel.New(g.NFull(), cfg.Dx, cfg.PPMRMin, cfg.PPMRMax)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Cfg:         cfg,
		Grid:        g,
		Kernel:      k,
		Immigration: cfg.I0,
		Interaction: cfg.Interaction,
		Alpha:       alpha,
	}

	nW := g.NW()
	m.SearchVolume = make([]float64, nW)
	m.MaxIntake = make([]float64, nW)
	m.Metabolism = make([]float64, nW)
	m.Psi = make([]float64, nW)
	for i, w := range g.W {
		m.SearchVolume[i] = cfg.Gamma * math.Pow(w, cfg.Q)
		if cfg.H > 0 && !math.IsInf(cfg.H, 1) {
			m.MaxIntake[i] = cfg.H * math.Pow(w, cfg.NExp)
		} else {
			m.MaxIntake[i] = math.Inf(1)
		}
		if cfg.Ks > 0 {
			m.Metabolism[i] = cfg.Ks * math.Pow(w, cfg.PExp)
		}
		m.Psi[i] = maturityAllocation(w, cfg.WMat, cfg.WInf, cfg.RhoM, cfg.RhoInf)
	}

	m.ExtMortality = mortality.Rate(g.W, mortality.Config{
		Mu0: cfg.Mu0, RhoB: cfg.RhoB, WMin: cfg.WMin,
		MuS: cfg.MuS, WS: cfg.WS, RhoS: cfg.RhoS,
		MuL: cfg.MuL, WL: cfg.WL, RhoL: cfg.RhoL,
	})

	m.ResourceRate = make([]float64, g.NFull())
	m.ResourceCapacity = make([]float64, g.NFull())
	for j, w := range g.WFull {
		m.ResourceRate[j] = cfg.R0 * math.Pow(w, cfg.Rho-1)
		if w <= cfg.WPPCutoff {
			m.ResourceCapacity[j] = cfg.A0 * math.Pow(w, -cfg.Lambda)
		}
	}

	return m, nil
}

// maturityAllocation is the smooth ogive deciding the fraction of
// assimilated energy routed to reproduction.
func maturityAllocation(w, wMat, wInf, rhoM, rhoInf float64) float64 {
	return 1 / (1 + math.Pow(w/wMat, -rhoM)) * math.Pow(w/wInf, rhoInf)
}

// WithExternalMortality returns a snapshot whose external mortality
// vector is replaced wholesale.
func (m *Model) WithExternalMortality(mu []float64) *Model {
	next := *m
	next.ExtMortality = append([]float64(nil), mu...)
	return &next
}

// WithInteraction returns a snapshot with the cannibalism strength set.
func (m *Model) WithInteraction(theta float64) *Model {
	next := *m
	next.Interaction = theta
	return &next
}

// WithResourceRate returns a snapshot with the resource growth-rate
// vector replaced.
func (m *Model) WithResourceRate(rate []float64) *Model {
	next := *m
	next.ResourceRate = append([]float64(nil), rate...)
	return &next
}
