// Package heatmap renders weighted points as an SVG density heatmap built
// entirely from declarative primitives.
//
// Points that share a grid cell of side radius/2 are first merged into their
// weighted centroid ([Cluster]), which bounds the number of shapes emitted.
// Every remaining point becomes a <use> reference to a single radial-gradient
// circle. The group holding those references carries a filter ([BuildFilter])
// that blurs the stamps, lifts them onto a faint flood, and remaps the
// resulting grey levels through the gradient palette with feComponentTransfer.
//
// A [Config] ties the pipeline to a record type:
//
//	cfg := heatmap.New(func(s Sample) heatmap.Point {
//		return heatmap.Point{X: s.Lon, Y: s.Lat, Weight: s.Count}
//	}, gradient.HeatedMetal).WithMaxWeight(10).WithIDSuffix("traffic")
//
//	scene := heatmap.Render(cfg, samples)
//
// Identifiers are "heatmap" + role, suffixed with "_" + the id suffix when one
// is set. Heatmaps sharing a document must use distinct suffixes; collisions
// are not detected.
package heatmap
