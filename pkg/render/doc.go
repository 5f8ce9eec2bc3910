// Package render converts heatmap SVG documents to raster and print formats.
//
// [ToPNG] and [ToPDF] pipe the markup through the external rsvg-convert tool
// (from librsvg), which implements the SVG filter primitives the heatmap
// relies on (feGaussianBlur, feComponentTransfer):
//
//	doc := svg.Marshal(svg.Document{Width: 800, Height: 600}.Wrap(scene))
//	png, err := render.ToPNG(ctx, doc, 2.0) // 2x scale
//	pdf, err := render.ToPDF(ctx, doc)
//
// When rsvg-convert is not installed both return an UNSUPPORTED error;
// [Available] checks up front.
package render
