package montecarlo

import (
	"github.com/bcdannyboy/mcprice/models"
	"github.com/rs/zerolog"
)

type settings struct {
	sampler models.NormalSampler
	workers int
	logger  zerolog.Logger
}

// Option configures a pricing run.
type Option func(*settings)

// WithSeed makes a run reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.sampler = models.NewRandSampler(seed)
	}
}

// WithSampler injects the source of standard normal draws. When combined
// with WithSeed the last option wins.
func WithSampler(sampler models.NormalSampler) Option {
	return func(s *settings) {
		s.sampler = sampler
	}
}

// WithWorkers bounds the goroutines used for per-path work inside a time
// step. n <= 0 sizes the pool from current CPU load.
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.workers = n
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = models.AdaptiveWorkers()
		s.logger.Debug().Int("workers", s.workers).Msg("worker count sized from cpu load")
	}
	return s
}

// normalSampler falls back to a time seeded sampler when none was given.
func (s *settings) normalSampler() models.NormalSampler {
	if s.sampler == nil {
		s.sampler = models.NewTimeSeededSampler()
	}
	return s.sampler
}
