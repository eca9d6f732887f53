package montecarlo

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bcdannyboy/mcprice/models"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

func TestPriceEuropeanReproducible(t *testing.T) {
	a, err := PriceEuropean(100, 105, 0.5, 0.03, 0.25, "call", 5000, 20, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := PriceEuropean(100, 105, 0.5, 0.03, 0.25, "CALL", 5000, 20, WithSeed(7))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
}

func TestPriceAmericanLSMReproducibleAcrossWorkers(t *testing.T) {
	params := models.SimulationParams{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2,
		Type: models.Put, Paths: 4096, Steps: 20,
	}
	a, err := SimulateAmerican(params, WithSeed(11), WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SimulateAmerican(params, WithSeed(11), WithWorkers(8))
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(a.PricePaths, b.PricePaths) {
		t.Fatal("price paths differ between worker counts")
	}
	if a.Price != b.Price {
		t.Fatalf("prices differ: %v vs %v", a.Price, b.Price)
	}

	price, err := PriceAmericanLSM(100, 100, 1, 0.05, 0.2, "put", 4096, 0.05, WithSeed(11))
	if err != nil {
		t.Fatal(err)
	}
	if price != a.Price {
		t.Fatalf("PriceAmericanLSM = %v, SimulateAmerican = %v", price, a.Price)
	}
}

func TestPriceAmericanLSMUsesWholeSteps(t *testing.T) {
	res, err := SimulateAmerican(models.SimulationParams{
		Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Volatility: 0.2,
		Type: models.Put, Paths: 100, Steps: 3,
	}, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Dt-1.0/3) > 1e-15 {
		t.Fatalf("dt = %v, want 1/3", res.Dt)
	}

	a, err := PriceAmericanLSM(100, 100, 1, 0.05, 0.2, "put", 100, 0.3, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if a != res.Price {
		t.Fatalf("dt 0.3 should price on 3 steps of 1/3: %v vs %v", a, res.Price)
	}
}

func TestPricersValidateBeforeSimulating(t *testing.T) {
	sampler := &countingSampler{}
	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"european bad type", func() error {
			_, err := PriceEuropean(100, 100, 1, 0.05, 0.2, "straddle", 100, 10, WithSampler(sampler))
			return err
		}, models.ErrInvalidOptionType},
		{"european zero paths", func() error {
			_, err := PriceEuropean(100, 100, 1, 0.05, 0.2, "call", 0, 10, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
		{"european zero steps", func() error {
			_, err := PriceEuropean(100, 100, 1, 0.05, 0.2, "call", 10, 0, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
		{"european negative spot", func() error {
			_, err := PriceEuropean(-1, 100, 1, 0.05, 0.2, "call", 10, 10, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
		{"american bad type", func() error {
			_, err := PriceAmericanLSM(100, 100, 1, 0.05, 0.2, "", 100, 0.1, WithSampler(sampler))
			return err
		}, models.ErrInvalidOptionType},
		{"american zero sigma", func() error {
			_, err := PriceAmericanLSM(100, 100, 1, 0.05, 0, "put", 100, 0.1, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
		{"american dt beyond maturity", func() error {
			_, err := PriceAmericanLSM(100, 100, 1, 0.05, 0.2, "put", 100, 3, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
		{"american infinite rate", func() error {
			_, err := PriceAmericanLSM(100, 100, 1, math.Inf(1), 0.2, "put", 100, 0.1, WithSampler(sampler))
			return err
		}, models.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if sampler.calls != 0 {
		t.Fatalf("sampler drawn %d times before validation failed", sampler.calls)
	}
}

func TestWithSamplerInjectsDraws(t *testing.T) {
	// With every shock at zero the terminal price is deterministic.
	price, err := PriceEuropean(100, 90, 1, 0.05, 0.2, "call", 10, 4, WithSampler(zeroSampler{}))
	if err != nil {
		t.Fatal(err)
	}
	sT := 100 * math.Exp(0.05-0.5*0.04)
	want := math.Exp(-0.05) * (sT - 90)
	if math.Abs(price-want) > 1e-9 {
		t.Fatalf("price = %v, want %v", price, want)
	}
}

func TestLoggerReceivesDegenerateSteps(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	res, err := SimulateAmerican(models.SimulationParams{
		Spot: 100, Strike: 500, Maturity: 1, Rate: 0.05, Volatility: 0.2,
		Type: models.Call, Paths: 50, Steps: 4,
	}, WithSeed(1), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if res.DegenerateSteps != 3 {
		t.Fatalf("degenerate steps = %d, want 3", res.DegenerateSteps)
	}
	if got := strings.Count(buf.String(), "regression fallback"); got != 3 {
		t.Fatalf("logged %d fallbacks, want 3:\n%s", got, buf.String())
	}
}

type countingSampler struct {
	calls int
}

func (c *countingSampler) Fill(dst []float64) {
	c.calls++
	for i := range dst {
		dst[i] = 0
	}
}

type zeroSampler struct{}

func (zeroSampler) Fill(dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
}

func TestPriceAmericanLSMFullScalePut(t *testing.T) {
	if testing.Short() {
		t.Skip("100000 path run")
	}
	// Longstaff and Schwartz (2001) table 1 reports 4.472 for this put
	// with 50 exercise dates per year.
	price, err := PriceAmericanLSM(36, 40, 1, 0.06, 0.2, "put", 100000, 0.02, WithSeed(2024))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(price-4.472) > 0.1 {
		t.Fatalf("price = %v, want about 4.472", price)
	}
}
