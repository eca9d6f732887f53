package models

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/mat"
)

// constSampler returns the same draw every time.
type constSampler float64

func (c constSampler) Fill(dst []float64) {
	for i := range dst {
		dst[i] = float64(c)
	}
}

func TestSimulatePathsShapeAndInitialRow(t *testing.T) {
	gbm := NewGeometricBrownianMotion(0.05, 0.2)
	paths, err := gbm.SimulatePaths(100, 0.02, 50, 300, NewRandSampler(1))
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := paths.Dims()
	if rows != 51 || cols != 300 {
		t.Fatalf("dims = %dx%d, want 51x300", rows, cols)
	}
	for i := 0; i < cols; i++ {
		if paths.At(0, i) != 100 {
			t.Fatalf("row 0 col %d = %v, want 100", i, paths.At(0, i))
		}
	}
}

func TestSimulatePathsZeroShockFollowsDrift(t *testing.T) {
	r, sigma, dt := 0.05, 0.3, 0.25
	gbm := NewGeometricBrownianMotion(r, sigma)
	paths, err := gbm.SimulatePaths(50, dt, 4, 3, constSampler(0))
	if err != nil {
		t.Fatal(err)
	}
	for step := 0; step <= 4; step++ {
		want := 50 * math.Exp((r-0.5*sigma*sigma)*dt*float64(step))
		for i := 0; i < 3; i++ {
			if got := paths.At(step, i); math.Abs(got-want) > 1e-9 {
				t.Fatalf("step %d path %d = %v, want %v", step, i, got, want)
			}
		}
	}
}

func TestSimulatePathsReproducible(t *testing.T) {
	gbm := NewGeometricBrownianMotion(0.03, 0.25)
	a, err := gbm.SimulatePaths(80, 0.1, 10, 2000, NewRandSampler(99))
	if err != nil {
		t.Fatal(err)
	}
	gbm.Workers = 1
	b, err := gbm.SimulatePaths(80, 0.1, 10, 2000, NewRandSampler(99))
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(a, b) {
		t.Fatal("same seed produced different paths")
	}

	c, err := gbm.SimulatePaths(80, 0.1, 10, 2000, NewRandSampler(100))
	if err != nil {
		t.Fatal(err)
	}
	if mat.Equal(a, c) {
		t.Fatal("different seeds produced identical paths")
	}
}

func TestSimulatePathsRejectsInvalidInput(t *testing.T) {
	sampler := NewRandSampler(1)
	tests := []struct {
		name         string
		r, sigma     float64
		s0, dt       float64
		steps, paths int
		sampler      NormalSampler
	}{
		{"zero spot", 0.05, 0.2, 0, 0.1, 10, 10, sampler},
		{"zero sigma", 0.05, 0, 100, 0.1, 10, 10, sampler},
		{"zero dt", 0.05, 0.2, 100, 0, 10, 10, sampler},
		{"zero steps", 0.05, 0.2, 100, 0.1, 0, 10, sampler},
		{"zero paths", 0.05, 0.2, 100, 0.1, 10, 0, sampler},
		{"nil sampler", 0.05, 0.2, 100, 0.1, 10, 10, nil},
		{"nan rate", math.NaN(), 0.2, 100, 0.1, 10, 10, sampler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gbm := NewGeometricBrownianMotion(tt.r, tt.sigma)
			_, err := gbm.SimulatePaths(tt.s0, tt.dt, tt.steps, tt.paths, tt.sampler)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestPropertySimulatedPricesArePositive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("every simulated price is strictly positive", prop.ForAll(
		func(s0, r, sigma float64, seed uint64) bool {
			gbm := NewGeometricBrownianMotion(r, sigma)
			paths, err := gbm.SimulatePaths(s0, 1.0/52, 52, 64, NewRandSampler(seed))
			if err != nil {
				return false
			}
			for _, v := range paths.RawMatrix().Data {
				if !(v > 0) || math.IsInf(v, 0) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0.5, 1000),
		gen.Float64Range(-0.05, 0.15),
		gen.Float64Range(0.01, 1.5),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
