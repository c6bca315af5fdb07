// Package rng provides the injectable random sources used by the stochastic
// learners and the experiment driver.
package rng

import "math/rand/v2"

// Source is the subset of *rand.Rand the learners draw from.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a PCG-backed generator for (seed, stream). Distinct streams
// under the same seed are independent, so trial i of an experiment uses
// stream i and replays identically.
func New(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Choose returns a uniformly random element of items. It panics on an empty
// slice; callers validate scenes before drawing.
func Choose[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Bernoulli reports a success with probability p. For p >= 1 it always
// succeeds without consuming randomness, so the deterministic special case
// leaves the stream untouched.
func Bernoulli(src Source, p float64) bool {
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Shuffle permutes n elements in place with Fisher-Yates, using swap.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
