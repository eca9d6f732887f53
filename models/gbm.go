package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// GeometricBrownianMotion simulates risk-neutral price paths with the exact
// log-normal transition, so coarse steps add no discretization bias.
type GeometricBrownianMotion struct {
	R       float64 // Risk-free rate (drift under the pricing measure)
	Sigma   float64 // Volatility
	Workers int     // Goroutines per time step, <= 0 means GOMAXPROCS
}

func NewGeometricBrownianMotion(r, sigma float64) *GeometricBrownianMotion {
	return &GeometricBrownianMotion{
		R:     r,
		Sigma: sigma,
	}
}

// SimulatePaths returns a (steps+1) x numPaths matrix. Row t holds the
// prices of every path at time t*dt and row 0 is s0.
//
// Normals are drawn one row at a time in path order from sampler, so a
// seeded sampler yields the same matrix for any worker count.
func (g *GeometricBrownianMotion) SimulatePaths(s0, dt float64, steps, numPaths int, sampler NormalSampler) (*mat.Dense, error) {
	if !finite(s0) || s0 <= 0 {
		return nil, fmt.Errorf("%w: initial price must be positive, got %v", ErrInvalidParameter, s0)
	}
	if !finite(g.Sigma) || g.Sigma <= 0 {
		return nil, fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidParameter, g.Sigma)
	}
	if !finite(g.R) {
		return nil, fmt.Errorf("%w: rate must be finite, got %v", ErrInvalidParameter, g.R)
	}
	if !finite(dt) || dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidParameter, dt)
	}
	if steps <= 0 || numPaths <= 0 {
		return nil, fmt.Errorf("%w: steps and paths must be positive, got %d and %d", ErrInvalidParameter, steps, numPaths)
	}
	if sampler == nil {
		return nil, fmt.Errorf("%w: nil normal sampler", ErrInvalidParameter)
	}

	paths := mat.NewDense(steps+1, numPaths, nil)
	first := paths.RawRowView(0)
	for i := range first {
		first[i] = s0
	}

	drift := (g.R - 0.5*g.Sigma*g.Sigma) * dt
	diffusion := g.Sigma * math.Sqrt(dt)
	z := make([]float64, numPaths)

	for t := 1; t <= steps; t++ {
		sampler.Fill(z)
		prev := paths.RawRowView(t - 1)
		cur := paths.RawRowView(t)
		ForEachChunk(numPaths, g.Workers, func(start, end int) {
			for i := start; i < end; i++ {
				cur[i] = prev[i] * math.Exp(drift+diffusion*z[i])
			}
		})
	}

	return paths, nil
}
