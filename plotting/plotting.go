// Package plotting renders simulated paths, expiry payoffs and closed-form
// price curves to image files. Inputs are only read.
package plotting

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/bcdannyboy/mcprice/blackscholes"
	"github.com/bcdannyboy/mcprice/models"
	"github.com/bcdannyboy/mcprice/payoff"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

var dashed = []vg.Length{vg.Points(4), vg.Points(3)}

// PathFan draws at most maxPaths simulated paths against time in years,
// with the strike as a dashed horizontal line. maxPaths <= 0 draws all.
func PathFan(paths *mat.Dense, strike, dt float64, maxPaths int, file string) error {
	if paths == nil || paths.IsEmpty() {
		return fmt.Errorf("%w: empty price path matrix", models.ErrInvalidParameter)
	}
	if dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", models.ErrInvalidParameter, dt)
	}

	rows, cols := paths.Dims()
	if maxPaths <= 0 || maxPaths > cols {
		maxPaths = cols
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Simulated Price Paths (%d of %d)", maxPaths, cols)
	p.X.Label.Text = "Time (years)"
	p.Y.Label.Text = "Price"
	p.Add(plotter.NewGrid())

	for i := 0; i < maxPaths; i++ {
		pts := make(plotter.XYs, rows)
		for t := range pts {
			pts[t].X = float64(t) * dt
			pts[t].Y = paths.At(t, i)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(0.6)
		p.Add(line)
	}

	strikeLine := plotter.NewFunction(func(float64) float64 { return strike })
	strikeLine.Color = color.Black
	strikeLine.Dashes = dashed
	p.Add(strikeLine)
	p.Legend.Add(fmt.Sprintf("Strike %.2f", strike), strikeLine)

	return p.Save(width, height, file)
}

// PayoffDiagram draws the expiry payoff net of premium over [lo, hi]
// together with the stock position and the combined hedge: a protective
// put for puts, a fiduciary call for calls.
func PayoffDiagram(strike, premium, lo, hi float64, optionType models.OptionType, file string) error {
	if !(hi > lo) {
		return fmt.Errorf("%w: empty price range [%v, %v]", models.ErrInvalidParameter, lo, hi)
	}

	const samples = 200
	prices := floats.Span(make([]float64, samples), lo, hi)
	payoffs, err := payoff.Grid(prices, strike, optionType)
	if err != nil {
		return err
	}

	option := make(plotter.XYs, samples)
	stock := make(plotter.XYs, samples)
	combined := make(plotter.XYs, samples)
	for i, s := range prices {
		net := payoffs[i] - premium
		position := s - strike
		if optionType == models.Call {
			position = strike - s
		}
		option[i] = plotter.XY{X: s, Y: net}
		stock[i] = plotter.XY{X: s, Y: position}
		combined[i] = plotter.XY{X: s, Y: net + position}
	}

	name := strings.ToUpper(optionType.String()[:1]) + optionType.String()[1:]
	hedge := "Protective Put"
	if optionType == models.Call {
		hedge = "Fiduciary Call"
	}

	p := plot.New()
	p.Title.Text = name + " Option Payoff"
	p.X.Label.Text = "Stock Price at Expiration"
	p.Y.Label.Text = "Payoff"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLines(p,
		name+" Payoff", option,
		"Stock Value", stock,
		hedge, combined,
	); err != nil {
		return err
	}

	return p.Save(width, height, file)
}

// OptionPriceCurve draws the closed-form price against spot over [lo, hi].
func OptionPriceCurve(strike, maturity, rate, sigma, lo, hi float64, optionType models.OptionType, file string) error {
	if !(hi > lo) || lo <= 0 {
		return fmt.Errorf("%w: invalid spot range [%v, %v]", models.ErrInvalidParameter, lo, hi)
	}

	const samples = 100
	spots := floats.Span(make([]float64, samples), lo, hi)
	pts := make(plotter.XYs, samples)
	for i, s := range spots {
		v, err := blackscholes.Price(s, strike, maturity, rate, sigma, optionType)
		if err != nil {
			return err
		}
		pts[i] = plotter.XY{X: s, Y: v}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Black-Scholes %s Prices vs Spot", optionType)
	p.X.Label.Text = "Spot"
	p.Y.Label.Text = "Option Price"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	points.Shape = plotutil.Shape(0)
	p.Add(line, points)
	p.Legend.Add(fmt.Sprintf("%s price", optionType), line, points)

	return p.Save(width, height, file)
}
