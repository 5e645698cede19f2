// Package gadfly provides the statistical transforms of a plotting
// grammar in the style of R's ggplot2 and Julia's Gadfly.
//
//
// Aesthetics
//
// All statistics operate on a single Aes record, a sparse collection
// of named channels. A channel is either unset (nil) or an ordered
// slice of float64 values. Upstream data mapping populates the raw
// channels ("x", "y", "color"), statistics derive geometric channels
// from them ("x_min", "middle", "xtick", ...) which the geometry
// layer consumes. Unset and empty are different things: several
// statistics skip unset channels entirely.
//
// Categorical data enters a channel through a StringPool; the channel
// then holds pool indices and its label function recovers the strings.
//
//
// Statistics
//
// A Stat is a pure transform of one Aes record:
//
//      aes := gadfly.NewAes()
//      aes.Y = []float64{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}
//      err := gadfly.ApplyStatistics(aes, nil,
//              gadfly.StatBoxplot{},
//              gadfly.StatYTicks)
//
// Statistics run sequentially in list order against the shared record,
// so a tick statistic placed after a boxplot statistic sees the hinge
// and fence channels the boxplot wrote. The order is a correctness
// contract, not a performance hint.
//
//
// Scales
//
// The rectangular binning statistic maps cell counts to colors through
// a continuous color scale taken from the active scale configuration.
// Scales are external collaborators: the statistics layer queries them
// by aesthetic name and calls their mapping contract, nothing more.
package gadfly
