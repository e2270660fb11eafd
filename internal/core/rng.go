package core

import "math/rand/v2"

// Source is the randomness consumed by simulations. Tests can substitute a
// scripted implementation to pin every random choice.
type Source interface {
	Bool() bool
	IntN(n int) int
	Float32() float32
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float32 returns a random float32 in [0, 1).
func (r *RNG) Float32() float32 { return r.r.Float32() }

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Symmetric draws uniformly from [-bound, bound].
func Symmetric(src Source, bound float32) float32 {
	if bound <= 0 {
		return 0
	}
	return (src.Float32()*2 - 1) * bound
}

// Chance reports true with probability p, clamped to [0, 1]. No randomness is
// consumed when p <= 0.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
