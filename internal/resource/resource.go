package resource

import "math"

// StepInto advances the plankton density by one explicit step of
// semi-chemostat logistic growth with immigration and predation loss,
// writing the result into dst (which may alias npp):
//
//	f = rate*npp*(1 - npp/(capacity*factor)) + immigration - predMort*npp
//
// Bins with zero capacity (above the cutoff) produce 0/0; the resulting
// NaN is coerced to 0 so those bins stay inert. That coercion is a
// domain rule, not an error mask: zero capacity means zero resource.
//
// The forcing state is advanced exactly once, with the same dt used for
// the consumer update, keeping the two state variables synchronized.
func StepInto(dst, npp, predMort, rate, capacity []float64, immigration, dt float64, forcing *ForcingState) {
	factor := forcing.Step(dt)
	for j := range npp {
		f := rate[j]*npp[j]*(1-npp[j]/(capacity[j]*factor)) + immigration - predMort[j]*npp[j]
		v := npp[j] + dt*f
		if math.IsNaN(v) {
			v = 0
		}
		dst[j] = v
	}
}
