package grid

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidGridSpec = errors.New("grid: invalid spec")

// Grid holds the log-spaced consumer size axis and the full axis that
// extends it down to the resource floor. The consumer bins are the tail
// slice of the full grid, so a full-grid index translates to a consumer
// index by subtracting Offset.
type Grid struct {
	Dx float64

	// Consumer bins, W[0] == wMin exactly.
	W  []float64
	Dw []float64

	// Resource ∪ consumer bins, same spacing.
	WFull  []float64
	DwFull []float64

	// Index of W[0] within WFull.
	Offset int
}

// New builds the consumer grid from (wMin, wInf, dx) and extends it down
// to wResMin with the same spacing. Bin counts follow
// round(log(upper/lower)/dx); widths are w*(exp(dx)-1).
func New(wMin, wInf, wResMin, dx float64) (*Grid, error) {
	if wMin <= 0 || wInf <= 0 || dx <= 0 || wResMin <= 0 {
		return nil, fmt.Errorf("%w: sizes and spacing must be positive (wMin=%g wInf=%g wResMin=%g dx=%g)", ErrInvalidGridSpec, wMin, wInf, wResMin, dx)
	}
	if wInf <= wMin {
		return nil, fmt.Errorf("%w: wInf %g must exceed wMin %g", ErrInvalidGridSpec, wInf, wMin)
	}
	if wResMin > wMin {
		return nil, fmt.Errorf("%w: resource floor %g above wMin %g", ErrInvalidGridSpec, wResMin, wMin)
	}

	nW := int(math.Round(math.Log(wInf/wMin) / dx))
	if nW < 2 {
		return nil, fmt.Errorf("%w: grid collapses to %d bins", ErrInvalidGridSpec, nW)
	}
	offset := int(math.Round(math.Log(wMin/wResMin) / dx))

	nFull := offset + nW
	wFull := make([]float64, nFull)
	dwFull := make([]float64, nFull)
	width := math.Exp(dx) - 1
	for i := range wFull {
		// Anchored on wMin so the consumer grid starts there exactly.
		wFull[i] = wMin * math.Exp(float64(i-offset)*dx)
		dwFull[i] = wFull[i] * width
	}

	return &Grid{
		Dx:     dx,
		W:      wFull[offset:],
		Dw:     dwFull[offset:],
		WFull:  wFull,
		DwFull: dwFull,
		Offset: offset,
	}, nil
}

// NW is the number of consumer bins.
func (g *Grid) NW() int { return len(g.W) }

// NFull is the number of full-grid bins.
func (g *Grid) NFull() int { return len(g.WFull) }
