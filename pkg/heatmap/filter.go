package heatmap

import (
	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

// Filter stage results, chained by name.
const (
	ResultBlurred    = "blurred"
	ResultFlooded    = "flooded"
	ResultToTransfer = "toTransfer"
)

// FloodOpacity is the white haze laid under the blurred stamps.
const FloodOpacity = 0.1

// AlphaTable drops the flood haze to transparent and ramps real density
// toward full opacity.
var AlphaTable = []float64{0, 0, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

// BuildFilter returns the <filter> that turns blurred greyscale stamps into a
// colored density field: blur, flood, multiply, then a per-channel table
// lookup. The color tables are the palette reversed, so dark input maps to
// the high-density end.
func BuildFilter(blur float64, palette gradient.Palette, id string) *svg.Node {
	rev := palette.Reversed()
	table := func(kind string, values []float64) *svg.Node {
		return svg.El(kind, svg.Str("type", "table"), svg.Floats("tableValues", values))
	}

	return svg.El(svg.KindFilter,
		svg.Str("id", id),
		svg.Str("color-interpolation-filters", "sRGB"),
	).Append(
		svg.El(svg.KindFeGaussianBlur,
			svg.Str("in", "SourceGraphic"),
			svg.Float("stdDeviation", blur),
			svg.Str("result", ResultBlurred),
		),
		svg.El(svg.KindFeFlood,
			svg.Str("flood-color", "white"),
			svg.Float("flood-opacity", FloodOpacity),
			svg.Str("result", ResultFlooded),
		),
		svg.El(svg.KindFeBlend,
			svg.Str("in", ResultFlooded),
			svg.Str("in2", ResultBlurred),
			svg.Str("mode", "multiply"),
			svg.Str("result", ResultToTransfer),
		),
		svg.El(svg.KindFeComponentTransfer, svg.Str("in", ResultToTransfer)).Append(
			table(svg.KindFeFuncR, rev.Channel(gradient.Red)),
			table(svg.KindFeFuncG, rev.Channel(gradient.Green)),
			table(svg.KindFeFuncB, rev.Channel(gradient.Blue)),
			table(svg.KindFeFuncA, AlphaTable),
		),
	)
}
