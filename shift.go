package pixelsort

import (
	"math/rand/v2"
	"slices"
)

// lineShift returns the left rotation applied to line index before
// segmentation: a value in [0, min(maxShift, n-1)]. The value depends only on
// (seed, index), so it is independent of scheduling order.
func lineShift(seed uint64, index, maxShift, n int) int {
	if maxShift <= 0 || n < 2 {
		return 0
	}
	rng := rand.New(rand.NewPCG(seed, uint64(index)))
	return rng.IntN(min(maxShift, n-1) + 1)
}

// rotateLeft rotates line left by k positions in place, 0 <= k < len(line).
func rotateLeft(line Line, k int) {
	if k == 0 {
		return
	}
	slices.Reverse(line[:k])
	slices.Reverse(line[k:])
	slices.Reverse(line)
}
