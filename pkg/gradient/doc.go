// Package gradient turns sparse color stops into dense palettes.
//
// A [Gradient] is an ordered list of (offset, color) stops describing how
// point density maps to color, lowest density first. [Sample] evaluates the
// gradient at evenly spaced positions and returns a [Palette] of N colors
// (heatmap renders use [DefaultSize] = 128):
//
//	p := gradient.Sample(gradient.HeatedMetal, gradient.DefaultSize, gradient.InterpolateRGB)
//	reds := p.Reversed().Channel(gradient.Red)
//
// Interpolation between stops is done with go-colorful in sRGB (default),
// CIE L*a*b* or CIE L*C*h° space.
//
// # Presets
//
// A fixed set of named gradients is available through [Presets] and
// [Preset]: "Blue Red", "Heated Metal", "Sunrise", "Incandescent",
// "Stepped Colors", "Visible Spectrum" and "Deep Sea".
package gradient
