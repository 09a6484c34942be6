package kernel

import (
	"errors"
	"fmt"
	"math"
)

var ErrDegenerateKernel = errors.New("kernel: empty feeding window")

// Kernel is a box feeding kernel over log predator:prey mass ratio,
// discretized on the shared log grid. Ratio index k corresponds to
// ppmr = exp(k*dx), so a predator at full-grid bin p feeds on prey at
// bin p-k. Weights integrate to 1 over log ratio.
type Kernel struct {
	Weights []float64

	// Support window in ratio-index space, inclusive. Weights outside
	// [Lo, Hi] are zero.
	Lo, Hi int
}

// New builds the kernel for nRatio ratio indices at spacing dx. Weight is
// 1 inside [ppmrMin, ppmrMax] and 0 outside; the self-size index 0 is
// always 0 because an organism never preys on its own size class.
func New(nRatio int, dx, ppmrMin, ppmrMax float64) (*Kernel, error) {
	if nRatio < 2 || dx <= 0 {
		return nil, fmt.Errorf("kernel: need at least 2 ratio bins and positive dx, got n=%d dx=%g", nRatio, dx)
	}
	if ppmrMax <= ppmrMin {
		return nil, fmt.Errorf("%w: ppmr window [%g, %g]", ErrDegenerateKernel, ppmrMin, ppmrMax)
	}

	weights := make([]float64, nRatio)
	sum := 0.0
	lo, hi := -1, -1
	for k := 1; k < nRatio; k++ {
		ppmr := math.Exp(float64(k) * dx)
		if ppmr < ppmrMin || ppmr > ppmrMax {
			continue
		}
		weights[k] = 1
		sum += 1
		if lo < 0 {
			lo = k
		}
		hi = k
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: no grid ratio falls inside [%g, %g] at dx=%g", ErrDegenerateKernel, ppmrMin, ppmrMax, dx)
	}

	norm := sum * dx
	for k := lo; k <= hi; k++ {
		weights[k] /= norm
	}
	return &Kernel{Weights: weights, Lo: lo, Hi: hi}, nil
}

// LogIntegral returns the trapezoid integral of the weights over log
// ratio, which is 1 by construction.
func (k *Kernel) LogIntegral(dx float64) float64 {
	sum := 0.0
	for _, w := range k.Weights {
		sum += w
	}
	return sum * dx
}
