package particles

import (
	"math"
	"math/rand/v2"
	"time"
)

// RandomSource supplies the uniform samples used by range sampling.
//
// IntBetween returns an integral value in [min, max), computed as
// floor(min + u*(max-min)) for a uniform u in [0, 1). Implementations do
// not validate the bounds; an inverted range samples (max, min].
type RandomSource interface {
	IntBetween(min, max float64) float64
}

// Rand is the default RandomSource, backed by a PCG generator.
type Rand struct {
	rng *rand.Rand
}

// NewRandomSource returns a deterministic source for the given seed.
// Two sources built from the same seed yield the same sequence.
func NewRandomSource(seed uint64) *Rand {
	return &Rand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededSource returns a source seeded from the wall clock.
func NewTimeSeededSource() *Rand {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

// IntBetween implements RandomSource.
func (r *Rand) IntBetween(min, max float64) float64 {
	return math.Floor(min + r.rng.Float64()*(max-min))
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}
