package domain

import (
	"math/rand"
	"sort"
)

// weightedChoice picks an index with probability proportional to its weight
// using a binary search over the cumulative-weight prefix sums. Returns -1
// when no weight is positive.
func weightedChoice(weights []float64, rng *rand.Rand) int {
	prefix := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		prefix[i] = total
	}
	if total <= 0 {
		return -1
	}

	// Strict inequality so indices with zero weight can never be chosen.
	target := rng.Float64() * total
	return sort.Search(len(prefix), func(i int) bool { return prefix[i] > target })
}
