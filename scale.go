package gadfly

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
)

// Scales is the active scale configuration of one plot: at most one
// scale per aesthetic name ("color", "x", ...). The statistics layer
// only queries it, it never adds or replaces scales.
type Scales map[string]Scale

// Scale maps data values of one aesthetic to a display property.
type Scale interface {
	// Aesthetic returns the name of the aesthetic this scale serves.
	Aesthetic() string
}

// ColorScale is the capability of resolving a channel value to a
// color.
type ColorScale interface {
	Scale
	MapColor(x float64) color.Color
}

// -------------------------------------------------------------------------
// Continuous color scale

// ContinuousColorScale maps an interval of values onto a continuous
// color gradient. The zero domain is empty; Train expands it. NaN is
// the explicit missing marker and resolves to the Missing color
// instead of participating in the gradient domain.
type ContinuousColorScale struct {
	// Domain covered by the gradient, maintained by Train.
	Min, Max float64

	// ColorMap is the gradient, normalized to [0, 1].
	ColorMap palette.ColorMap

	// Missing is the color of missing (NaN) values.
	Missing color.Color
}

var _ ColorScale = &ContinuousColorScale{}

// NewContinuousColorScale returns a continuous color scale over the
// Kindlmann gradient with an untrained (empty) domain.
func NewContinuousColorScale() *ContinuousColorScale {
	cm := moreland.Kindlmann()
	cm.SetMin(0)
	cm.SetMax(1)
	return &ContinuousColorScale{
		Min:      math.Inf(+1),
		Max:      math.Inf(-1),
		ColorMap: cm,
		Missing:  color.NRGBA{0xaa, 0xaa, 0xaa, 0x40},
	}
}

func (s *ContinuousColorScale) Aesthetic() string { return "color" }

// Train expands the scale's domain to cover the given values. NaN
// values leave the domain untouched.
func (s *ContinuousColorScale) Train(vals ...float64) {
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
}

// MapColor resolves x against the trained domain. NaN, and anything
// on an untrained scale, resolves to the Missing color.
func (s *ContinuousColorScale) MapColor(x float64) color.Color {
	if math.IsNaN(x) || s.Min > s.Max {
		return s.Missing
	}
	u := 0.0
	if s.Max > s.Min {
		u = (x - s.Min) / (s.Max - s.Min)
	}
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	c, err := s.ColorMap.At(u)
	if err != nil {
		return s.Missing
	}
	return c
}

// Apply is the scale application contract used by statistics: train
// the scale on the derived values, then write the resolved color of
// every value to the record's cell colors.
func (s *ContinuousColorScale) Apply(aes *Aes, vals []float64) {
	s.Train(vals...)
	colors := make([]color.Color, len(vals))
	for i, v := range vals {
		colors[i] = s.MapColor(v)
	}
	aes.CellColor = colors
}

// -------------------------------------------------------------------------
// Discrete color scale

// DiscreteColorScale cycles a fixed palette over category indices. It
// deliberately does not satisfy the continuous scale contract: a
// statistic that needs a gradient must reject it.
type DiscreteColorScale struct {
	Colors []color.Color
}

var _ ColorScale = &DiscreteColorScale{}

// NewDiscreteColorScale builds a discrete scale from color names
// ("red", "gray20", "#1256ab", ...). Without arguments it uses the
// default plotting palette.
func NewDiscreteColorScale(names ...string) *DiscreteColorScale {
	if len(names) == 0 {
		return &DiscreteColorScale{Colors: plotutil.DefaultColors}
	}
	cs := make([]color.Color, len(names))
	for i, n := range names {
		cs[i] = ParseColor(n)
	}
	return &DiscreteColorScale{Colors: cs}
}

func (s *DiscreteColorScale) Aesthetic() string { return "color" }

// MapColor returns the palette color of category round(x), cycling
// when the palette is shorter than the category range.
func (s *DiscreteColorScale) MapColor(x float64) color.Color {
	colors := s.Colors
	if len(colors) == 0 {
		colors = plotutil.DefaultColors
	}
	i := int(math.Round(x)) % len(colors)
	if i < 0 {
		i += len(colors)
	}
	return colors[i]
}

// -------------------------------------------------------------------------
// Color names

var builtinColors = map[string]color.NRGBA{
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0xff, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"gray20":  {0x33, 0x33, 0x33, 0xff},
	"gray40":  {0x66, 0x66, 0x66, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
	"gray60":  {0x99, 0x99, 0x99, 0xff},
	"gray80":  {0xcc, 0xcc, 0xcc, 0xff},
	"black":   {0x00, 0x00, 0x00, 0xff},
}

// ParseColor turns a color name or a #rrggbb / #rrggbbaa hex string
// into a color. Unknown names yield a muddy fallback that is easy to
// spot in a plot.
func ParseColor(s string) color.Color {
	if len(s) >= 7 && s[0] == '#' {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		a := uint64(0xff)
		var errA error
		if len(s) >= 9 {
			a, errA = strconv.ParseUint(s[7:9], 16, 8)
		}
		if errR == nil && errG == nil && errB == nil && errA == nil {
			return color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
		}
	}
	if c, ok := builtinColors[s]; ok {
		return c
	}
	return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
}
