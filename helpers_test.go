package pixelsort

import (
	"math/rand/v2"
	"sort"
)

// Test helper functions shared across package tests.

// gray returns an opaque gray pixel whose alpha carries an identity tag, so
// tests can follow pixels through a sort. Every key function except Hue and
// Saturation evaluates to (approximately) v.
func gray(v float64, id int) Pixel {
	return Pixel{R: v, G: v, B: v, A: float64(id) / 1000}
}

// grayLine builds a line of gray pixels tagged 0..n-1.
func grayLine(values ...float64) Line {
	line := make(Line, len(values))
	for i, v := range values {
		line[i] = gray(v, i)
	}
	return line
}

// ids returns the identity tags of a line built with gray.
func ids(line Line) []int {
	out := make([]int, len(line))
	for i, p := range line {
		out[i] = int(p.A*1000 + 0.5)
	}
	return out
}

// randomLine returns a line of n pixels whose channels are multiples of
// 1/steps, so equal keys are common.
func randomLine(rng *rand.Rand, n, steps int) Line {
	line := make(Line, n)
	q := func() float64 { return float64(rng.IntN(steps+1)) / float64(steps) }
	for i := range line {
		line[i] = Pixel{R: q(), G: q(), B: q(), A: float64(i) / float64(n)}
	}
	return line
}

// referenceSort is a direct restatement of the segment sort built on
// sort.SliceStable.
func referenceSort(line Line, cfg Config) Line {
	c := cfg.Resolve()
	out := append(Line(nil), line...)

	qualifies := func(p Pixel) bool {
		return c.UnderThreshold != (EvaluateKey(p, c.ThresholdKey) >= c.Threshold)
	}
	sortRun := func(start, end int) {
		run := out[start:end]
		sort.SliceStable(run, func(i, j int) bool {
			ki, kj := EvaluateKey(run[i], c.SortKey), EvaluateKey(run[j], c.SortKey)
			if c.Reverse {
				return ki > kj
			}
			return ki < kj
		})
	}

	start := -1
	for j, p := range out {
		switch {
		case qualifies(p) && start < 0:
			start = j
		case !qualifies(p) && start >= 0:
			sortRun(start, j)
			start = -1
		}
	}
	if start >= 0 {
		sortRun(start, len(out))
	}
	return out
}

// allConfigs enumerates key/polarity/order combinations at a few thresholds.
func allConfigs() []Config {
	var cfgs []Config
	for _, sk := range KeyFunctions() {
		for _, tk := range []KeyFunction{KeyDefault, Luminance, Hue} {
			for _, th := range []float64{0, 0.3, 0.5, 1} {
				for _, under := range []bool{false, true} {
					for _, rev := range []bool{false, true} {
						cfgs = append(cfgs, Config{
							SortKey:        sk,
							ThresholdKey:   tk,
							Threshold:      th,
							UnderThreshold: under,
							Reverse:        rev,
						})
					}
				}
			}
		}
	}
	return cfgs
}
