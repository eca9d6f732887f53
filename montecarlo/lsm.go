package montecarlo

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/payoff"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LSMResult is the outcome of a Longstaff-Schwartz backward induction.
// Matrices are (Steps+1) x Paths with rows indexed by time step.
type LSMResult struct {
	Price    float64
	StdError float64
	Paths    int
	Steps    int
	Dt       float64

	// DegenerateSteps counts time steps whose regression could not be
	// fitted; those steps exercise every in-the-money path.
	DegenerateSteps int
	// ExerciseCounts[t] is the number of paths whose cash flow is paid at
	// step t. Entry 0 is always zero.
	ExerciseCounts []int

	PricePaths *mat.Dense `json:"-"`
	CashFlows  *mat.Dense `json:"-"`
	Discounted *mat.Dense `json:"-"`
}

// AmericanFromPaths prices an American option on a given price path matrix
// (rows = time steps 0..M, columns = paths) with step length dt. Sampler
// options have no effect and paths is never modified.
func AmericanFromPaths(paths *mat.Dense, strike, rate, dt float64, optionType models.OptionType, opts ...Option) (*LSMResult, error) {
	return americanFromPaths(paths, strike, rate, dt, optionType, newSettings(opts))
}

func americanFromPaths(paths *mat.Dense, strike, rate, dt float64, optionType models.OptionType, s *settings) (*LSMResult, error) {
	if paths == nil || paths.IsEmpty() {
		return nil, fmt.Errorf("%w: empty price path matrix", models.ErrInvalidParameter)
	}
	if rows, _ := paths.Dims(); rows < 2 {
		return nil, fmt.Errorf("%w: need at least one time step, got %d rows", models.ErrInvalidParameter, rows)
	}
	if math.IsNaN(strike) || math.IsInf(strike, 0) || strike <= 0 {
		return nil, fmt.Errorf("%w: strike must be positive, got %v", models.ErrInvalidParameter, strike)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: rate must be finite, got %v", models.ErrInvalidParameter, rate)
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %v", models.ErrInvalidParameter, dt)
	}

	cash, disc, err := payoff.CashFlows(paths, strike, optionType, s.workers)
	if err != nil {
		return nil, err
	}
	return backwardInduction(paths, cash, disc, strike, rate, dt, s)
}

// backwardInduction walks from expiry back to step 1. On return every
// column of cash and disc holds at most one non-zero entry: the payment at
// the step the path is exercised, raw in cash and valued at time 0 in disc.
func backwardInduction(paths, cash, disc *mat.Dense, strike, rate, dt float64, s *settings) (*LSMResult, error) {
	rows, n := paths.Dims()
	if r, c := cash.Dims(); r != rows || c != n {
		return nil, fmt.Errorf("%w: paths %dx%d, cash flows %dx%d", models.ErrShapeMismatch, rows, n, r, c)
	}
	if r, c := disc.Dims(); r != rows || c != n {
		return nil, fmt.Errorf("%w: paths %dx%d, discounted cash flows %dx%d", models.ErrShapeMismatch, rows, n, r, c)
	}
	steps := rows - 1
	df := math.Exp(-rate * dt)

	// exerciseStep[i] is the row holding path i's cash flow, 0 if none.
	// value[i] is that cash flow valued at the step being processed.
	exerciseStep := make([]int, n)
	value := make([]float64, n)

	last := cash.RawRowView(steps)
	lastDisc := disc.RawRowView(steps)
	pvLast := math.Exp(-rate * float64(steps) * dt)
	for i, cf := range last {
		if cf > 0 {
			exerciseStep[i] = steps
			lastDisc[i] = cf * pvLast
		}
		value[i] = cf
	}

	degenerate := 0
	itm := make([]int, 0, n)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)

	for t := steps - 1; t >= 1; t-- {
		prices := paths.RawRowView(t)
		row := cash.RawRowView(t)
		discRow := disc.RawRowView(t)

		models.ForEachChunk(n, s.workers, func(start, end int) {
			for i := start; i < end; i++ {
				value[i] *= df
			}
		})

		itm, xs, ys = itm[:0], xs[:0], ys[:0]
		for i, cf := range row {
			if cf > 0 {
				itm = append(itm, i)
				xs = append(xs, prices[i])
				ys = append(ys, value[i])
			}
		}

		continuation, err := ContinuationValues(xs, ys, strike)
		if err != nil {
			if !errors.Is(err, models.ErrDegenerateRegression) {
				return nil, err
			}
			degenerate++
			continuation = nil
			s.logger.Debug().Err(err).Int("step", t).Int("in_the_money", len(itm)).Msg("regression fallback, exercising all in-the-money paths")
		}

		pv := math.Exp(-rate * float64(t) * dt)
		models.ForEachChunk(len(itm), s.workers, func(start, end int) {
			for j := start; j < end; j++ {
				i := itm[j]
				hold := 0.0
				if continuation != nil {
					hold = continuation[j]
				}
				if row[i] > hold {
					if k := exerciseStep[i]; k > 0 {
						cash.Set(k, i, 0)
						disc.Set(k, i, 0)
					}
					exerciseStep[i] = t
					value[i] = row[i]
					discRow[i] = row[i] * pv
				} else {
					row[i] = 0
				}
			}
		})
	}

	// No exercise decision is taken at time 0.
	first := cash.RawRowView(0)
	for i := range first {
		first[i] = 0
	}

	presentValues := make([]float64, n)
	for t := 0; t <= steps; t++ {
		for i, v := range disc.RawRowView(t) {
			presentValues[i] += v
		}
	}

	counts := make([]int, steps+1)
	for _, k := range exerciseStep {
		if k > 0 {
			counts[k]++
		}
	}

	price, std := stat.MeanStdDev(presentValues, nil)
	stdErr := 0.0
	if n > 1 {
		stdErr = std / math.Sqrt(float64(n))
	}

	s.logger.Debug().
		Float64("price", price).
		Float64("std_error", stdErr).
		Int("paths", n).
		Int("steps", steps).
		Int("degenerate_steps", degenerate).
		Msg("american lsm priced")

	return &LSMResult{
		Price:           price,
		StdError:        stdErr,
		Paths:           n,
		Steps:           steps,
		Dt:              dt,
		DegenerateSteps: degenerate,
		ExerciseCounts:  counts,
		PricePaths:      paths,
		CashFlows:       cash,
		Discounted:      disc,
	}, nil
}
