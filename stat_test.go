package gadfly

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestStatHistogramPartition(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	xs := make([]float64, 200)
	for i := range xs {
		xs[i] = rnd.NormFloat64() * 4
	}
	min, max := minMax(xs)

	aes := NewAes()
	aes.X = xs
	if err := (StatHistogram{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	d := len(aes.XMin)
	if d == 0 || len(aes.XMax) != d || len(aes.Y) != d {
		t.Fatalf("got %d x_min, %d x_max, %d y",
			len(aes.XMin), len(aes.XMax), len(aes.Y))
	}
	if aes.XMin[0] != min {
		t.Errorf("first bin starts at %g, want %g", aes.XMin[0], min)
	}
	if aes.XMax[d-1] != max {
		t.Errorf("last bin ends at %g, want %g", aes.XMax[d-1], max)
	}
	for k := 0; k+1 < d; k++ {
		if aes.XMax[k] != aes.XMin[k+1] {
			t.Errorf("gap between bin %d and %d: %g vs %g",
				k, k+1, aes.XMax[k], aes.XMin[k+1])
		}
	}
	sum := 0.0
	for _, c := range aes.Y {
		sum += c
	}
	if sum != float64(len(xs)) {
		t.Errorf("bin counts sum to %g, want %d", sum, len(xs))
	}
}

func TestStatHistogramConstant(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{7, 7, 7}
	if err := (StatHistogram{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.XMin) != 1 || len(aes.XMax) != 1 || len(aes.Y) != 1 {
		t.Fatalf("got %d bins, want 1", len(aes.XMin))
	}
	if aes.XMin[0] != 7 || aes.XMax[0] != 7 {
		t.Errorf("got bin [%g, %g], want [7, 7]", aes.XMin[0], aes.XMax[0])
	}
	if aes.Y[0] != 3 {
		t.Errorf("got count %g, want 3", aes.Y[0])
	}
}

func TestStatHistogramMissingX(t *testing.T) {
	err := StatHistogram{}.Apply(NewAes(), nil)
	if !errors.Is(err, ErrMissingAesthetic) {
		t.Errorf("got err = %v, want ErrMissingAesthetic", err)
	}
}

func TestStatBoxplotSingleGroup(t *testing.T) {
	aes := NewAes()
	aes.Y = []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}
	if err := (StatBoxplot{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if len(aes.Middle) != 1 {
		t.Fatalf("got %d groups, want 1", len(aes.Middle))
	}
	if aes.X != nil || aes.Color != nil {
		t.Errorf("unset x/color must stay unset, got x=%v color=%v", aes.X, aes.Color)
	}
	if aes.Y != nil {
		t.Errorf("y must be consumed, got %v", aes.Y)
	}

	// Type 7 quantiles of the sample.
	if got := aes.Middle[0]; got != 3 {
		t.Errorf("middle = %g, want 3", got)
	}
	if got := aes.LowerHinge[0]; got != 2 {
		t.Errorf("lower hinge = %g, want 2", got)
	}
	if got := aes.UpperHinge[0]; got != 4 {
		t.Errorf("upper hinge = %g, want 4", got)
	}
	if got := aes.LowerFence[0]; got != -1 {
		t.Errorf("lower fence = %g, want -1", got)
	}
	if got := aes.UpperFence[0]; got != 7 {
		t.Errorf("upper fence = %g, want 7", got)
	}
	if len(aes.Outliers[0]) != 0 {
		t.Errorf("got outliers %v, want none", aes.Outliers[0])
	}
}

func TestStatBoxplotOutliers(t *testing.T) {
	aes := NewAes()
	aes.Y = []float64{1, 2, 3, 4, 100}
	if err := (StatBoxplot{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.Outliers) != 1 {
		t.Fatalf("got %d groups, want 1", len(aes.Outliers))
	}
	out := aes.Outliers[0]
	if len(out) != 1 || out[0] != 100 {
		t.Errorf("got outliers %v, want [100]", out)
	}
	lo, hi := aes.LowerFence[0], aes.UpperFence[0]
	for _, v := range out {
		if v >= lo && v <= hi {
			t.Errorf("outlier %g inside fences [%g, %g]", v, lo, hi)
		}
	}
	for _, v := range []float64{1, 2, 3, 4} {
		if v < lo || v > hi {
			t.Errorf("non-outlier %g outside fences [%g, %g]", v, lo, hi)
		}
	}
}

func TestStatBoxplotHingeOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	aes := NewAes()
	aes.Y = make([]float64, 100)
	aes.X = make([]float64, 100)
	for i := range aes.Y {
		aes.Y[i] = rnd.NormFloat64()
		aes.X[i] = float64(i % 4)
	}
	if err := (StatBoxplot{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	m := len(aes.Middle)
	if m != 4 {
		t.Fatalf("got %d groups, want 4", m)
	}
	if len(aes.X) != m || len(aes.LowerHinge) != m || len(aes.UpperHinge) != m ||
		len(aes.LowerFence) != m || len(aes.UpperFence) != m || len(aes.Outliers) != m {
		t.Fatalf("per-group channels disagree on group count")
	}
	for i := 0; i < m; i++ {
		if aes.LowerHinge[i] > aes.Middle[i] || aes.Middle[i] > aes.UpperHinge[i] {
			t.Errorf("group %d: hinges %g, %g, %g out of order",
				i, aes.LowerHinge[i], aes.Middle[i], aes.UpperHinge[i])
		}
		if aes.LowerFence[i] > aes.LowerHinge[i] || aes.UpperFence[i] < aes.UpperHinge[i] {
			t.Errorf("group %d: fences [%g, %g] inside hinges [%g, %g]",
				i, aes.LowerFence[i], aes.UpperFence[i],
				aes.LowerHinge[i], aes.UpperHinge[i])
		}
	}
}

func TestStatBoxplotGroups(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{1, 1, 1, 2, 2, 2}
	aes.Y = []float64{1, 2, 3, 10, 20, 30}
	if err := (StatBoxplot{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.X) != 2 || len(aes.Middle) != 2 {
		t.Fatalf("got %d groups, want 2", len(aes.Middle))
	}
	// Group order is map order; locate groups through their x key.
	for i, x := range aes.X {
		var want float64
		switch x {
		case 1:
			want = 2
		case 2:
			want = 20
		default:
			t.Fatalf("unexpected group x %g", x)
		}
		if aes.Middle[i] != want {
			t.Errorf("group x=%g: middle = %g, want %g", x, aes.Middle[i], want)
		}
	}
}

func TestStatBoxplotCycledColor(t *testing.T) {
	// A length-1 color channel repeats across all rows: still one
	// group, and color shrinks to the per-group key component.
	aes := NewAes()
	aes.Y = []float64{1, 2, 3, 4}
	aes.Color = []float64{5}
	if err := (StatBoxplot{}).Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.Middle) != 1 {
		t.Fatalf("got %d groups, want 1", len(aes.Middle))
	}
	if len(aes.Color) != 1 || aes.Color[0] != 5 {
		t.Errorf("got color %v, want [5]", aes.Color)
	}
}

func TestStatBoxplotMissingY(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{1, 2, 3}
	err := (StatBoxplot{}).Apply(aes, nil)
	if !errors.Is(err, ErrMissingAesthetic) {
		t.Errorf("got err = %v, want ErrMissingAesthetic", err)
	}
}

func rectBinAes() *Aes {
	aes := NewAes()
	for i := 0; i < 5; i++ {
		aes.X = append(aes.X, 0)
		aes.Y = append(aes.Y, 0)
	}
	for i := 0; i < 5; i++ {
		aes.X = append(aes.X, 10)
		aes.Y = append(aes.Y, 10)
	}
	return aes
}

func TestStatRectBinNoScale(t *testing.T) {
	err := StatRectBin{}.Apply(rectBinAes(), Scales{})
	if !errors.Is(err, ErrMissingScale) {
		t.Errorf("got err = %v, want ErrMissingScale", err)
	}
}

func TestStatRectBinDiscreteScale(t *testing.T) {
	scales := Scales{"color": NewDiscreteColorScale()}
	err := StatRectBin{}.Apply(rectBinAes(), scales)
	if !errors.Is(err, ErrIncompatibleScale) {
		t.Errorf("got err = %v, want ErrIncompatibleScale", err)
	}
}

func TestStatRectBin(t *testing.T) {
	aes := rectBinAes()
	cont := NewContinuousColorScale()
	if err := (StatRectBin{}).Apply(aes, Scales{"color": cont}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	dx, dy := len(aes.XMin), len(aes.YMin)
	if dx == 0 || dy == 0 || len(aes.XMax) != dx || len(aes.YMax) != dy {
		t.Fatalf("got %d/%d x edges, %d/%d y edges",
			len(aes.XMin), len(aes.XMax), len(aes.YMin), len(aes.YMax))
	}
	if len(aes.CellColor) != dx*dy {
		t.Errorf("got %d cell colors, want %d", len(aes.CellColor), dx*dy)
	}
	if aes.ColorKeyTitle != "Count" {
		t.Errorf("got color key title %q, want \"Count\"", aes.ColorKeyTitle)
	}

	// Zero-count cells must resolve to the scale's missing color,
	// not to a washed-out zero on the gradient.
	_, _, counts, err := ChooseBinCount2D(rectBinAes().X, rectBinAes().Y)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i, c := range counts {
		missing := aes.CellColor[i] == cont.Missing
		if c == 0 && !missing {
			t.Errorf("cell %d: count 0 not mapped to missing color", i)
		}
		if c > 0 && missing {
			t.Errorf("cell %d: count %d mapped to missing color", i, c)
		}
	}
	if cont.Min != 5 || cont.Max != 5 {
		t.Errorf("scale trained to [%g, %g], want [5, 5]", cont.Min, cont.Max)
	}
}

func TestStatTicksIntegral(t *testing.T) {
	aes := NewAes()
	aes.Y = []float64{1, 2, 2, 3}
	if err := StatYTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []float64{1, 2, 3}
	if len(aes.YTick) != len(want) {
		t.Fatalf("got yticks %v, want %v", aes.YTick, want)
	}
	for i := range want {
		if aes.YTick[i] != want[i] {
			t.Fatalf("got yticks %v, want %v", aes.YTick, want)
		}
	}
}

func TestStatTicksIdempotent(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{3, 1, 4, 1, 5}
	if err := StatXTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	first := append([]float64(nil), aes.XTick...)

	// Feeding integral tick output back in must not drift.
	aes.X = aes.XTick
	if err := StatXTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.XTick) != len(first) {
		t.Fatalf("got %v after rerun, want %v", aes.XTick, first)
	}
	for i := range first {
		if aes.XTick[i] != first[i] {
			t.Fatalf("got %v after rerun, want %v", aes.XTick, first)
		}
	}
}

func TestStatTicksSkipsUnset(t *testing.T) {
	aes := NewAes()
	if err := StatYTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if aes.YTick != nil {
		t.Errorf("got yticks %v from an empty record", aes.YTick)
	}
}

func TestStatTicksNice(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{0, 10.5}
	if err := StatXTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []float64{0, 2, 4, 6, 8, 10, 12}
	if len(aes.XTick) != len(want) {
		t.Fatalf("got xticks %v, want %v", aes.XTick, want)
	}
	for i := range want {
		if math.Abs(aes.XTick[i]-want[i]) > 1e-9 {
			t.Fatalf("got xticks %v, want %v", aes.XTick, want)
		}
	}
}

func TestStatTicksAscendingNoDuplicates(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	aes := NewAes()
	aes.X = make([]float64, 50)
	for i := range aes.X {
		aes.X[i] = rnd.Float64() * 123.4
	}
	if err := StatXTicks.Apply(aes, nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.XTick) < 2 {
		t.Fatalf("got xticks %v", aes.XTick)
	}
	for i := 1; i < len(aes.XTick); i++ {
		if aes.XTick[i] <= aes.XTick[i-1] {
			t.Errorf("ticks not strictly ascending: %v", aes.XTick)
		}
	}
}

func TestStatTicksLabelPropagation(t *testing.T) {
	aes := NewAes()
	aes.Y = []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}
	aes.SetLabel("y", func(x float64) string { return "y!" })

	// After the boxplot y is gone, but the y tick statistic still
	// propagates the label function of its first input channel.
	err := ApplyStatistics(aes, nil, StatBoxplot{}, StatYTicks)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := aes.Label("ytick")(3); got != "y!" {
		t.Errorf("got ytick label %q, want %q", got, "y!")
	}
}

func TestApplyStatisticsOrder(t *testing.T) {
	// A tick statistic after a boxplot sees hinge and fence values:
	// all derived channels are integral, so the tick set is exactly
	// the distinct derived values.
	aes := NewAes()
	aes.Y = []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}
	err := ApplyStatistics(aes, nil, StatBoxplot{}, StatYTicks)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []float64{-1, 2, 3, 4, 7}
	if len(aes.YTick) != len(want) {
		t.Fatalf("got yticks %v, want %v", aes.YTick, want)
	}
	for i := range want {
		if aes.YTick[i] != want[i] {
			t.Fatalf("got yticks %v, want %v", aes.YTick, want)
		}
	}
}

func TestApplyStatisticsMissingAesthetic(t *testing.T) {
	err := ApplyStatistics(NewAes(), nil, StatBoxplot{})
	if !errors.Is(err, ErrMissingAesthetic) {
		t.Errorf("got err = %v, want ErrMissingAesthetic", err)
	}
}

func TestStatNilAndIdentity(t *testing.T) {
	aes := NewAes()
	aes.X = []float64{1, 2, 3}
	if err := ApplyStatistics(aes, nil, StatNil, StatIdentity); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(aes.X) != 3 || aes.Y != nil || aes.XMin != nil {
		t.Errorf("record changed by no-op statistics: %+v", aes)
	}
}
