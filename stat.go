package gadfly

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// Stat is the interface of a statistical transform.
//
// A statistical transform summarizes or derives aesthetic channels of
// one Aes record in place. Statistics hold no state across
// invocations; everything they need arrives through the record and
// the active scale configuration.
type Stat interface {
	// Name returns the name of this statistic.
	Name() string

	// Info describes how this statistic can be used.
	Info() StatInfo

	// Apply this statistic to the record. Statistics needing a scale
	// (e.g. a color scale) look it up in scales by aesthetic name.
	Apply(aes *Aes, scales Scales) error
}

// StatInfo describes the channels a statistic works with.
type StatInfo struct {
	// NeededAes are the channels which must be set on the record.
	// Applying the statistic without them is an ErrMissingAesthetic.
	NeededAes []string

	// OptionalAes are the channels the statistic uses if set, but it
	// is no error if they are not.
	OptionalAes []string
}

// needAes verifies all needed channels of s are set on aes.
func needAes(aes *Aes, s Stat) error {
	missing := NewStringSet()
	for _, ch := range s.Info().NeededAes {
		if aes.values(ch) == nil {
			missing.Add(ch)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s",
			s.Name(), ErrMissingAesthetic, strings.Join(missing.Elements(), ", "))
	}
	return nil
}

// ApplyStatistics applies the statistics to aes sequentially in list
// order. Statistic i+1 observes the fully applied effects of
// statistic i, so a tick statistic listed after a boxplot statistic
// sees the hinge and fence channels. The first error aborts the pass;
// the record may then hold the output of the statistics already
// applied, but never a half-applied one.
func ApplyStatistics(aes *Aes, scales Scales, statistics ...Stat) error {
	for _, s := range statistics {
		if err := needAes(aes, s); err != nil {
			return err
		}
		if err := s.Apply(aes, scales); err != nil {
			return err
		}
	}
	return nil
}

// -------------------------------------------------------------------------
// StatNil, StatIdentity

// StatNil is the statistic of layers that want no transform at all.
var StatNil Stat = statNil{}

type statNil struct{}

func (statNil) Name() string             { return "StatNil" }
func (statNil) Info() StatInfo           { return StatInfo{} }
func (statNil) Apply(*Aes, Scales) error { return nil }

// StatIdentity passes every channel through untouched. It exists so a
// layer can say explicitly that raw data is to be drawn as is.
var StatIdentity Stat = statIdentity{}

type statIdentity struct{}

func (statIdentity) Name() string             { return "StatIdentity" }
func (statIdentity) Info() StatInfo           { return StatInfo{} }
func (statIdentity) Apply(*Aes, Scales) error { return nil }

// -------------------------------------------------------------------------
// StatHistogram

// StatHistogram bins the x channel into automatically chosen
// equal-width bins and writes the bin intervals to x_min/x_max and the
// occurrence counts to y. Other channels are left alone.
type StatHistogram struct{}

var _ Stat = StatHistogram{}

func (StatHistogram) Name() string { return "StatHistogram" }

func (StatHistogram) Info() StatInfo {
	return StatInfo{NeededAes: []string{"x"}}
}

func (s StatHistogram) Apply(aes *Aes, _ Scales) error {
	if err := needAes(aes, s); err != nil {
		return err
	}
	d, counts, err := ChooseBinCount(aes.X)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	min, max := minMax(aes.X)
	w := (max - min) / float64(d)
	xmin := make([]float64, d)
	xmax := make([]float64, d)
	y := make([]float64, d)
	for k := 0; k < d; k++ {
		xmin[k] = min + float64(k)*w
		xmax[k] = min + float64(k+1)*w
		y[k] = float64(counts[k])
	}
	// The outermost edge is the sample maximum exactly, no float
	// drift from accumulating w.
	xmax[d-1] = max

	aes.XMin, aes.XMax, aes.Y = xmin, xmax, y
	return nil
}

// -------------------------------------------------------------------------
// StatRectBin

// StatRectBin bins the (x, y) channels into a 2D grid of rectangular
// cells and drives the configured continuous color scale with the
// per-cell counts. Cells with zero occurrences are handed to the
// scale as the missing marker instead of the value 0, so a sparse
// grid does not drag the gradient domain down to an artificial zero.
type StatRectBin struct{}

var _ Stat = StatRectBin{}

func (StatRectBin) Name() string { return "StatRectBin" }

func (StatRectBin) Info() StatInfo {
	return StatInfo{NeededAes: []string{"x", "y"}}
}

func (s StatRectBin) Apply(aes *Aes, scales Scales) error {
	if err := needAes(aes, s); err != nil {
		return err
	}
	sc, ok := scales["color"]
	if !ok || sc == nil {
		return fmt.Errorf("rectbin: %w: no color scale configured", ErrMissingScale)
	}
	cont, ok := sc.(*ContinuousColorScale)
	if !ok {
		return fmt.Errorf("rectbin: %w: color scale %T is not continuous", ErrIncompatibleScale, sc)
	}

	dx, dy, counts, err := ChooseBinCount2D(aes.X, aes.Y)
	if err != nil {
		return fmt.Errorf("rectbin: %w", err)
	}

	xmin, xmax := minMax(aes.X)
	ymin, ymax := minMax(aes.Y)
	aes.XMin, aes.XMax = binEdges(xmin, xmax, dx)
	aes.YMin, aes.YMax = binEdges(ymin, ymax, dy)
	aes.ColorKeyTitle = "Count"

	cells := make([]float64, len(counts))
	for i, c := range counts {
		if c == 0 {
			cells[i] = math.NaN()
		} else {
			cells[i] = float64(c)
		}
	}
	cont.Apply(aes, cells)
	return nil
}

// binEdges returns the lower and upper edges of a d-bin equal-width
// partition of [min, max].
func binEdges(min, max float64, d int) (lo, hi []float64) {
	w := (max - min) / float64(d)
	lo = make([]float64, d)
	hi = make([]float64, d)
	for k := 0; k < d; k++ {
		lo[k] = min + float64(k)*w
		hi[k] = min + float64(k+1)*w
	}
	hi[d-1] = max
	return lo, hi
}

// -------------------------------------------------------------------------
// StatBoxplot

// StatBoxplot groups the y channel by the composite (x, color) key and
// summarizes every group as median, hinges, fences and outliers. The
// raw per-row channels are replaced by one entry per group; group
// order follows map iteration and is only guaranteed to be consistent
// across the per-group channels.
type StatBoxplot struct {
	// Coef scales the fence distance in units of the interquartile
	// range. Zero means the conventional 1.5.
	Coef float64
}

var _ Stat = StatBoxplot{}

func (StatBoxplot) Name() string { return "StatBoxplot" }

func (StatBoxplot) Info() StatInfo {
	return StatInfo{
		NeededAes:   []string{"y"},
		OptionalAes: []string{"x", "color"},
	}
}

type boxplotKey struct {
	x, color float64
}

func (s StatBoxplot) Apply(aes *Aes, _ Scales) error {
	if err := needAes(aes, s); err != nil {
		return err
	}
	coef := s.Coef
	if coef == 0 {
		coef = 1.5
	}

	// Accumulate y values per (x, color) key. An unset x or color
	// contributes a constant zero key component, a short one repeats
	// cyclically across the rows.
	xs, cs := aes.X, aes.Color
	groups := make(map[boxplotKey][]float64)
	for i, v := range aes.Y {
		var k boxplotKey
		if len(xs) > 0 {
			k.x = xs[i%len(xs)]
		}
		if len(cs) > 0 {
			k.color = cs[i%len(cs)]
		}
		groups[k] = append(groups[k], v)
	}

	m := len(groups)
	gx := make([]float64, 0, m)
	gc := make([]float64, 0, m)
	middle := make([]float64, 0, m)
	lowerHinge := make([]float64, 0, m)
	upperHinge := make([]float64, 0, m)
	lowerFence := make([]float64, 0, m)
	upperFence := make([]float64, 0, m)
	outliers := make([][]float64, 0, m)

	for k, vs := range groups {
		samp := stats.Sample{Xs: vs}
		samp.Sort()
		vs = samp.Xs

		q1 := quantile(vs, 0.25)
		med := quantile(vs, 0.5)
		q3 := quantile(vs, 0.75)
		iqr := q3 - q1
		lo, hi := q1-coef*iqr, q3+coef*iqr

		var out []float64
		for _, v := range vs {
			if v < lo || v > hi {
				out = append(out, v)
			}
		}

		gx = append(gx, k.x)
		gc = append(gc, k.color)
		lowerHinge = append(lowerHinge, q1)
		middle = append(middle, med)
		upperHinge = append(upperHinge, q3)
		lowerFence = append(lowerFence, lo)
		upperFence = append(upperFence, hi)
		outliers = append(outliers, out)
	}

	// The raw rows are gone now: x and color shrink to one entry per
	// group (when they were set at all), y is consumed entirely.
	if aes.X != nil {
		aes.X = gx
	}
	if aes.Color != nil {
		aes.Color = gc
	}
	aes.Y = nil
	aes.Middle = middle
	aes.LowerHinge, aes.UpperHinge = lowerHinge, upperHinge
	aes.LowerFence, aes.UpperFence = lowerFence, upperFence
	aes.Outliers = outliers
	return nil
}

// -------------------------------------------------------------------------
// StatTicks

// StatTicks gathers the values of its input channels and derives the
// tick positions of the output channel. Unset input channels are
// skipped entirely. If every gathered value is an exact integer the
// ticks are exactly the distinct observed values; otherwise tick
// positions come from OptimizeTicks over the gathered range.
type StatTicks struct {
	In  []string
	Out string
}

var _ Stat = StatTicks{}

// The two canonical tick configurations: x ticks read only the x
// channel, y ticks read the y channel and everything a boxplot may
// have derived from it.
var (
	StatXTicks = StatTicks{In: []string{"x"}, Out: "xtick"}
	StatYTicks = StatTicks{
		In: []string{"y", "middle", "lower_hinge", "upper_hinge",
			"lower_fence", "upper_fence"},
		Out: "ytick",
	}
)

func (s StatTicks) Name() string { return "StatTicks(" + s.Out + ")" }

func (s StatTicks) Info() StatInfo {
	return StatInfo{OptionalAes: s.In}
}

func (s StatTicks) Apply(aes *Aes, _ Scales) error {
	seen := NewFloatSet()
	var gathered []float64
	allIntegral := true
	for _, ch := range s.In {
		for _, v := range aes.values(ch) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			gathered = append(gathered, v)
			seen.Add(v)
			if allIntegral && !isIntegral(v) {
				allIntegral = false
			}
		}
	}
	if len(gathered) == 0 {
		// No set input channel contributed anything; the output
		// channel stays unset rather than inventing ticks.
		return nil
	}

	var ticks []float64
	if allIntegral {
		ticks = seen.Elements()
	} else {
		minval, maxval := minMax(gathered)
		ticks = OptimizeTicks(minval, maxval)
	}
	aes.setValues(s.Out, ticks)

	// The label function follows the first configured input channel
	// even when that channel contributed no values. This is a known
	// approximation kept for compatibility.
	aes.SetLabel(s.Out, aes.Label(s.In[0]))
	return nil
}
