// Package svg is a small tree builder for SVG scene graphs.
//
// A [Node] is an element kind, an ordered attribute list and children.
// Attribute values are stored pre-formatted, so code that builds scenes can
// be tested by walking the tree ([Node.Find], [Node.FindAll], [Node.IDs])
// instead of matching serialized markup.
//
//	stamp := svg.El(svg.KindCircle,
//	    svg.Str("id", "dot"),
//	    svg.Float("r", 25),
//	    svg.URL("fill", "dotGradient"),
//	)
//	out := svg.Marshal(svg.Document{Width: 800, Height: 600}.Wrap(stamp))
//
// [Document] supplies the outer <svg> container with its viewBox. Use
// [FitPoints] to derive a viewBox from point bounds.
package svg
