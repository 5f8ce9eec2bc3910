// Package pkg provides the libraries behind heatsvg, which renders weighted
// 2D points as self-contained SVG heatmaps.
//
// # Overview
//
//  1. [heatmap] - Core: configuration, point clustering, filter and scene composition
//  2. [gradient] - Color stops, palette sampling and built-in presets
//  3. [svg] - Element tree, XML writer and standalone document wrapper
//  4. [records] - CSV/JSON readers and field mapping from records to points
//  5. [pipeline] - Options, validation and the cached render runner
//  6. [render] - SVG to PNG/PDF conversion
//  7. [cache] - File, redis and null caches with content-addressed keys
//  8. [server] - HTTP API
//
// # Architecture
//
//	CSV / JSON records
//	         ↓
//	    [records] package (field mapping)
//	         ↓
//	    [heatmap] package (cluster → filter → compose)
//	         ↓
//	    [svg] package (document + serialization)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	cfg := heatmap.New(func(p heatmap.Point) heatmap.Point { return p }, gradient.BlueRed).
//	    WithRadius(30).
//	    WithMaxWeight(5)
//	scene := heatmap.Render(cfg, points)
//	svg.Write(os.Stdout, svg.Document{Width: 800, Height: 600}.Wrap(scene))
//
// [heatmap]: github.com/matzehuels/heatsvg/pkg/heatmap
// [gradient]: github.com/matzehuels/heatsvg/pkg/gradient
// [svg]: github.com/matzehuels/heatsvg/pkg/svg
// [records]: github.com/matzehuels/heatsvg/pkg/records
// [pipeline]: github.com/matzehuels/heatsvg/pkg/pipeline
// [render]: github.com/matzehuels/heatsvg/pkg/render
// [cache]: github.com/matzehuels/heatsvg/pkg/cache
// [server]: github.com/matzehuels/heatsvg/pkg/server
package pkg
