package kernel

import (
	"errors"
	"math"
	"testing"
)

func TestNewNormalizesOverLogRatio(t *testing.T) {
	k, err := New(200, 0.1, 100, 10000)
	if err != nil {
		t.Fatalf("new kernel: %v", err)
	}
	if got := k.LogIntegral(0.1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("log integral = %g, want 1", got)
	}
}

func TestNewZeroesSelfSizeIndex(t *testing.T) {
	// A window that would otherwise include ratio 1.
	k, err := New(50, 0.1, 0.5, 2)
	if err != nil {
		t.Fatalf("new kernel: %v", err)
	}
	if k.Weights[0] != 0 {
		t.Fatalf("self-size weight = %g, want 0", k.Weights[0])
	}
}

func TestNewSupportWindowBracketsNonzeroWeights(t *testing.T) {
	k, err := New(200, 0.1, 100, 10000)
	if err != nil {
		t.Fatalf("new kernel: %v", err)
	}
	for i, w := range k.Weights {
		inside := i >= k.Lo && i <= k.Hi
		if inside && w <= 0 {
			t.Fatalf("weight inside support at %d is %g", i, w)
		}
		if !inside && w != 0 {
			t.Fatalf("weight outside support at %d is %g", i, w)
		}
	}
	if wantLo := int(math.Ceil(math.Log(100) / 0.1)); k.Lo != wantLo {
		t.Fatalf("support lo = %d, want %d", k.Lo, wantLo)
	}
}

func TestNewEmptyWindowFails(t *testing.T) {
	// Window narrower than one grid step: no ratio index falls inside.
	if _, err := New(200, 0.1, 150, 160); !errors.Is(err, ErrDegenerateKernel) {
		t.Fatalf("expected ErrDegenerateKernel, got %v", err)
	}
	// Inverted window.
	if _, err := New(200, 0.1, 1000, 100); !errors.Is(err, ErrDegenerateKernel) {
		t.Fatalf("expected ErrDegenerateKernel for inverted window, got %v", err)
	}
	// Window entirely beyond the grid range.
	if _, err := New(20, 0.1, 1e6, 1e9); !errors.Is(err, ErrDegenerateKernel) {
		t.Fatalf("expected ErrDegenerateKernel for out-of-range window, got %v", err)
	}
}
