package gadfly

import (
	"fmt"
	"image/color"
	"math"
)

// A Labeler turns a channel value into its display string.
type Labeler func(x float64) string

// defaultLabel formats a value the way an axis would if nothing better
// is known about the channel.
func defaultLabel(x float64) string { return fmt.Sprintf("%g", x) }

// Aes is the aesthetic record all statistics read from and write to.
// Every channel is optional: nil means unset, which is different from
// empty. A statistic may require some channels, ignores unset optional
// ones and overwrites the channels it derives.
//
// Within one statistic's output the derived channels are index-aligned:
// index i refers to the same bin, box or group in every channel the
// statistic wrote.
type Aes struct {
	// Raw scalar channels, populated by upstream data mapping.
	X, Y, Color []float64

	// Derived interval channels, one entry per bin.
	XMin, XMax []float64
	YMin, YMax []float64

	// Boxplot channels, one entry per group.
	Middle                 []float64
	LowerHinge, UpperHinge []float64
	LowerFence, UpperFence []float64
	Outliers               [][]float64

	// Tick channels, strictly ascending and free of duplicates.
	XTick, YTick []float64

	// CellColor holds resolved per-cell colors, written by a color
	// scale on behalf of a statistic.
	CellColor []color.Color

	// ColorKeyTitle is the display title of a derived color legend.
	ColorKeyTitle string

	// Pool interns the categorical values of this record's channels.
	Pool *StringPool

	labelers map[string]Labeler
}

// NewAes returns an empty record with all channels unset.
func NewAes() *Aes {
	return &Aes{Pool: NewStringPool()}
}

// values returns the channel with the given grammar name, nil if the
// channel is unset or unknown.
func (a *Aes) values(channel string) []float64 {
	switch channel {
	case "x":
		return a.X
	case "y":
		return a.Y
	case "color":
		return a.Color
	case "x_min":
		return a.XMin
	case "x_max":
		return a.XMax
	case "y_min":
		return a.YMin
	case "y_max":
		return a.YMax
	case "middle":
		return a.Middle
	case "lower_hinge":
		return a.LowerHinge
	case "upper_hinge":
		return a.UpperHinge
	case "lower_fence":
		return a.LowerFence
	case "upper_fence":
		return a.UpperFence
	case "xtick":
		return a.XTick
	case "ytick":
		return a.YTick
	}
	return nil
}

// setValues stores vals in the channel with the given grammar name.
// Unknown channels are ignored.
func (a *Aes) setValues(channel string, vals []float64) {
	switch channel {
	case "x":
		a.X = vals
	case "y":
		a.Y = vals
	case "color":
		a.Color = vals
	case "x_min":
		a.XMin = vals
	case "x_max":
		a.XMax = vals
	case "y_min":
		a.YMin = vals
	case "y_max":
		a.YMax = vals
	case "middle":
		a.Middle = vals
	case "lower_hinge":
		a.LowerHinge = vals
	case "upper_hinge":
		a.UpperHinge = vals
	case "lower_fence":
		a.LowerFence = vals
	case "upper_fence":
		a.UpperFence = vals
	case "xtick":
		a.XTick = vals
	case "ytick":
		a.YTick = vals
	}
}

// Label returns the label function of the given channel. Channels
// without an explicit label function format values with %g.
func (a *Aes) Label(channel string) Labeler {
	if l, ok := a.labelers[channel]; ok {
		return l
	}
	return defaultLabel
}

// SetLabel installs label as the label function of channel.
func (a *Aes) SetLabel(channel string, label Labeler) {
	if a.labelers == nil {
		a.labelers = make(map[string]Labeler)
	}
	a.labelers[channel] = label
}

// SetDiscrete fills channel with the pool indices of the given
// categorical values and installs a label function that recovers the
// original strings.
func (a *Aes) SetDiscrete(channel string, values []string) {
	if a.Pool == nil {
		a.Pool = NewStringPool()
	}
	idx := make([]float64, len(values))
	for i, v := range values {
		idx[i] = float64(a.Pool.Add(v))
	}
	a.setValues(channel, idx)
	pool := a.Pool
	a.SetLabel(channel, func(x float64) string {
		return pool.Get(int(math.Round(x)))
	})
}
