package gadfly

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// ChooseBinCount selects the number of equal-width bins that best
// summarizes the sample xs and returns that count together with the
// per-bin occurrence counts.
//
// Candidate counts d = 1 .. min(150, ceil(2*sqrt(n))) are scored with
// the Shimazaki-Shinomoto histogram risk
//
//	C(d) = (2*kmean - kvar) / w^2
//
// where kmean and kvar are mean and biased variance of the bin counts
// and w is the bin width. The candidate with the smallest risk wins;
// ties go to the smaller count. The risk trades resolution against
// variance: too few bins over-smooth, too many produce a spiky,
// noise-driven histogram.
//
// Bins are left-closed and partition [min(xs), max(xs)]; the last bin
// is closed on both sides. A constant-valued sample yields a single
// bin holding every observation. An empty sample is an
// ErrInvalidSample.
func ChooseBinCount(xs []float64) (d int, counts []int64, err error) {
	n := len(xs)
	if n == 0 {
		return 0, nil, fmt.Errorf("bin count selection: %w: empty sample", ErrInvalidSample)
	}
	min, max := minMax(xs)
	if min == max {
		return 1, []int64{int64(n)}, nil
	}

	dmax := int(math.Ceil(2 * math.Sqrt(float64(n))))
	if dmax > 150 {
		dmax = 150
	}

	bestD, bestCost := 1, math.Inf(1)
	var bestCounts []int64
	ks := make([]float64, 0, dmax)
	for d := 1; d <= dmax; d++ {
		cs := binCounts(xs, min, max, d)
		ks = ks[:0]
		for _, c := range cs {
			ks = append(ks, float64(c))
		}
		kmean := stats.Mean(ks)
		kvar := 0.0
		for _, k := range ks {
			dk := k - kmean
			kvar += dk * dk
		}
		kvar /= float64(d)

		w := (max - min) / float64(d)
		cost := (2*kmean - kvar) / (w * w)
		if cost < bestCost {
			bestD, bestCost, bestCounts = d, cost, cs
		}
	}
	return bestD, bestCounts, nil
}

// ChooseBinCount2D selects bin counts for the paired samples xs and ys
// independently per axis and returns the joint grid of cell counts.
// Cells are laid out with x varying fastest: cell (ix, iy) is
// counts[iy*dx+ix].
func ChooseBinCount2D(xs, ys []float64) (dx, dy int, counts []int64, err error) {
	if len(xs) != len(ys) {
		return 0, 0, nil, fmt.Errorf("bin count selection: %w: paired samples of different length (%d vs %d)",
			ErrInvalidSample, len(xs), len(ys))
	}
	if dx, _, err = ChooseBinCount(xs); err != nil {
		return 0, 0, nil, err
	}
	if dy, _, err = ChooseBinCount(ys); err != nil {
		return 0, 0, nil, err
	}

	xmin, xmax := minMax(xs)
	ymin, ymax := minMax(ys)
	counts = make([]int64, dx*dy)
	for i := range xs {
		ix := binIndex(xs[i], xmin, xmax, dx)
		iy := binIndex(ys[i], ymin, ymax, dy)
		counts[iy*dx+ix]++
	}
	return dx, dy, counts, nil
}

// binCounts partitions [min, max] into d equal-width bins and counts
// the samples falling into each.
func binCounts(xs []float64, min, max float64, d int) []int64 {
	counts := make([]int64, d)
	for _, x := range xs {
		counts[binIndex(x, min, max, d)]++
	}
	return counts
}

// binIndex returns the bin of x in a d-bin partition of [min, max].
// The rightmost bin is closed on both sides so that x == max lands in
// bin d-1 instead of a phantom bin d.
func binIndex(x, min, max float64, d int) int {
	if d <= 1 || min == max {
		return 0
	}
	w := (max - min) / float64(d)
	i := int((x - min) / w)
	if i < 0 {
		i = 0
	} else if i >= d {
		i = d - 1
	}
	return i
}
