package mortality

import "math"

// Config carries the external (non-predation) mortality parameters:
// a background power law below the senescence threshold, a senescent
// power law above it, and a saturating larval term everywhere.
type Config struct {
	// Background: mu0 * (w/wMin)^rhoB for w <= wS.
	Mu0  float64
	RhoB float64
	WMin float64

	// Senescence: muS * (w/wS)^rhoS for w >= wS. MuS is the fallback
	// coefficient used when Mu0 is zero; otherwise the coefficient is
	// the minimum of the background branch so the two laws meet.
	MuS  float64
	WS   float64
	RhoS float64

	// Larval: muL / (1 + (w/wL)^rhoL), dominant below wL.
	MuL  float64
	WL   float64
	RhoL float64
}

// Rate returns the external mortality rate per consumer size bin. The
// result replaces any prior external mortality wholesale. At w == wS the
// senescent branch wins: it is applied second and overwrites the shared
// bin, so mu(wS) equals the senescent coefficient exactly.
func Rate(w []float64, cfg Config) []float64 {
	mu := make([]float64, len(w))

	muS := math.Inf(1)
	if cfg.Mu0 > 0 {
		for i, wi := range w {
			if wi > cfg.WS {
				continue
			}
			mu[i] = cfg.Mu0 * math.Pow(wi/cfg.WMin, cfg.RhoB)
			if mu[i] < muS {
				muS = mu[i]
			}
		}
	}
	if math.IsInf(muS, 1) {
		muS = cfg.MuS
	}

	if cfg.WS > 0 {
		for i, wi := range w {
			if wi >= cfg.WS {
				mu[i] = muS * math.Pow(wi/cfg.WS, cfg.RhoS)
			}
		}
	}

	if cfg.MuL > 0 && cfg.WL > 0 {
		for i, wi := range w {
			mu[i] += cfg.MuL / (1 + math.Pow(wi/cfg.WL, cfg.RhoL))
		}
	}

	return mu
}
