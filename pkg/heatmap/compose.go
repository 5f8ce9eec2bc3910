package heatmap

import "github.com/matzehuels/heatsvg/pkg/svg"

// Compose builds the scene for already clustered points:
//
//	<g>
//	  <defs> point gradient, stamp circle, filter </defs>
//	  <g filter="url(#filter)"> one <use> per point </g>
//	</g>
//
// Each <use> references the stamp at the point's position with
// fill-opacity weight/maxWeight. The reference is written as both href and
// xlink:href for SVG 1.1 renderers, so a standalone host document must
// declare the xlink namespace. Opacity is not clamped; values above 1 are
// left to the SVG renderer.
func Compose[R any](cfg Config[R], points []Point) *svg.Node {
	gradID := cfg.ID(RolePointGradient)
	pointID := cfg.ID(RolePoint)
	filterID := cfg.ID(RoleFilter)

	defs := svg.El(svg.KindDefs).Append(
		svg.El(svg.KindRadialGradient, svg.Str("id", gradID)).Append(
			svg.El(svg.KindStop, svg.Str("offset", "0"), svg.Str("stop-color", "black"), svg.Str("stop-opacity", "1")),
			svg.El(svg.KindStop, svg.Str("offset", "1"), svg.Str("stop-color", "black"), svg.Str("stop-opacity", "0")),
		),
		svg.El(svg.KindCircle,
			svg.Str("id", pointID),
			svg.Str("cx", "0"),
			svg.Str("cy", "0"),
			svg.Float("r", cfg.radius),
			svg.URL("fill", gradID),
		),
		BuildFilter(cfg.blur, cfg.Palette(), filterID),
	)

	layer := svg.El(svg.KindGroup, svg.URL("filter", filterID))
	layer.Children = make([]*svg.Node, 0, len(points))
	for _, p := range points {
		layer.Append(svg.El(svg.KindUse,
			svg.Href(pointID),
			svg.XLinkHref(pointID),
			svg.Float("x", p.X),
			svg.Float("y", p.Y),
			svg.Float("fill-opacity", p.Weight/cfg.maxWeight),
		))
	}

	return svg.El(svg.KindGroup).Append(defs, layer)
}
