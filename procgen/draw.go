package procgen

import (
	"math/rand"
	"sort"
)

// drawWeighted performs a weighted random draw over a probability table.
// Map iteration order in Go is randomized, which would make the draw
// depend on something other than the PRNG stream — so this sorts keys
// first to fix a deterministic cumulative order before drawing.
func drawWeighted[K ~string](rng *rand.Rand, table map[K]float64) K {
	keys := make([]K, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	r := rng.Float64()
	cumulative := 0.0
	for _, k := range keys {
		cumulative += table[k]
		if r < cumulative {
			return k
		}
	}
	return keys[len(keys)-1]
}

// pick returns a uniformly random element of a non-empty sorted-order slice.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
