package board

import (
	"math/rand"
	"slices"
)

// Shuffled returns a uniformly shuffled copy of pool (Fisher-Yates),
// leaving pool untouched.
func Shuffled[T any](pool []T, rng *rand.Rand) []T {
	out := slices.Clone(pool)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// AssignFromPool takes count items off the end of pool, last item first,
// and returns them together with what is left. Neither result aliases pool.
// If count exceeds the pool, every item is taken.
func AssignFromPool[T any](pool []T, count int) (assigned, remaining []T) {
	count = min(max(count, 0), len(pool))
	split := len(pool) - count

	assigned = make([]T, 0, count)
	for i := len(pool) - 1; i >= split; i-- {
		assigned = append(assigned, pool[i])
	}
	return assigned, slices.Clone(pool[:split])
}
