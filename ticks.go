package gadfly

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// maxTicks is the largest number of major ticks OptimizeTicks will
// place on an axis.
const maxTicks = 10

// OptimizeTicks returns a small ascending sequence of round-number
// tick positions bracketing [min, max]. Candidate step sizes are 1, 2
// and 5 times a power of ten; the level search picks the smallest step
// that needs at most maxTicks ticks to cover the range, so axes get
// the densest set of round labels that still reads well.
//
// OptimizeTicks is usable standalone, independent of any Aes record.
func OptimizeTicks(min, max float64) []float64 {
	if min > max {
		min, max = max, min
	}
	if min == max {
		// A degenerate range still deserves an axis.
		min, max = min-0.5, max+0.5
	}

	o := scale.TickOptions{Max: maxTicks}
	// Start the search near a step yielding a handful of ticks.
	// Steps grow by a factor of 10^(1/3) per level, so the level of
	// step s is roughly 3*log10(s).
	guess := int(math.Round(3 * math.Log10((max-min)/4)))
	l, ok := o.FindLevel(axisTicker{min, max}, guess)
	if !ok {
		return []float64{min, max}
	}
	return ticksAtLevel(min, max, l)
}

// axisTicker adapts a [min, max] range to the tick level search.
type axisTicker struct {
	min, max float64
}

func (t axisTicker) CountTicks(level int) int {
	s := tickStep(level)
	return int(math.Ceil(t.max/s)-math.Floor(t.min/s)) + 1
}

func (t axisTicker) TicksAtLevel(level int) interface{} {
	return ticksAtLevel(t.min, t.max, level)
}

// tickStep maps a tick level to its step size: levels cycle through
// multiples 1, 2, 5 and every three levels gain a power of ten, so
// ..., 0.5, 1, 2, 5, 10, 20, ...
func tickStep(level int) float64 {
	m := level % 3
	if m < 0 {
		m += 3
	}
	mult := [3]float64{1, 2, 5}[m]
	return mult * math.Pow(10, float64((level-m)/3))
}

// ticksAtLevel returns the multiples of the level's step from the
// last one at or below min through the first one at or above max, in
// ascending order.
func ticksAtLevel(min, max float64, level int) []float64 {
	s := tickStep(level)
	lo, hi := math.Floor(min/s), math.Ceil(max/s)
	// Count with an int: a float counter stops advancing once lo
	// exceeds 2^53, as on axes far from the origin.
	n := int(hi - lo)
	ts := make([]float64, 0, n+1)
	for k := 0; k <= n; k++ {
		ts = append(ts, (lo+float64(k))*s)
	}
	return ts
}
