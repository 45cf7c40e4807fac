package domain

import (
	"math/rand"
)

const alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Randomness is the uniform randomness source the factory draws from. One
// source per construction stream keeps repeated runs with identical inputs
// deterministic; callers that need reproducibility must not interleave
// unrelated draws.
type Randomness interface {
	// NextFloat returns a uniform float in [0, 1).
	NextFloat() float64
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type randomness struct {
	rng *rand.Rand
}

// NewRandomness creates a seeded randomness source.
func NewRandomness(seed int64) Randomness {
	return &randomness{rng: rand.New(rand.NewSource(seed))}
}

func (r *randomness) NextFloat() float64 {
	return r.rng.Float64()
}

func (r *randomness) IntN(n int) int {
	return r.rng.Intn(n)
}

// Choice returns a uniformly random element of items. Callers guarantee a
// non-empty slice.
func Choice[T any](random Randomness, items []T) T {
	return items[random.IntN(len(items))]
}

// randomInt draws a small literal value centered on zero.
func randomInt(random Randomness) int64 {
	return int64(random.IntN(2001) - 1000)
}

// randomFloat draws a literal value in [-1000, 1000).
func randomFloat(random Randomness) float64 {
	return random.NextFloat()*2000 - 1000
}

func randomBool(random Randomness) bool {
	return random.NextFloat() < 0.5
}

// randomString draws an alphanumeric literal of length up to 20.
func randomString(random Randomness) string {
	length := random.IntN(21)
	buf := make([]byte, length)

	for i := range buf {
		buf[i] = alphanumerics[random.IntN(len(alphanumerics))]
	}

	return string(buf)
}
