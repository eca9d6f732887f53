package models

import (
	"time"

	"golang.org/x/exp/rand"
)

// NormalSampler fills a slice with independent standard normal draws.
type NormalSampler interface {
	Fill(dst []float64)
}

// RandSampler draws normals from a PCG source. It is not safe for
// concurrent use.
type RandSampler struct {
	rng *rand.Rand
}

func NewRandSampler(seed uint64) *RandSampler {
	return &RandSampler{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededSampler returns a sampler whose output differs run to run.
func NewTimeSeededSampler() *RandSampler {
	return NewRandSampler(uint64(time.Now().UnixNano()))
}

func (s *RandSampler) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.rng.NormFloat64()
	}
}
