package pipeline

import (
	"github.com/matzehuels/heatsvg/pkg/heatmap"
	"github.com/matzehuels/heatsvg/pkg/records"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

// BuildScene maps, clusters and composes recs. opts must be validated.
func BuildScene(recs []records.Record, opts Options) Scene {
	cfg := opts.HeatmapConfig()
	points := heatmap.Cluster(heatmap.Points(cfg, recs), cfg.Radius())
	return Scene{Root: heatmap.Compose(cfg, points), Points: points}
}

// Margin is how far the fitted viewBox extends beyond the outermost points:
// the stamp radius plus three blur deviations, plus padding.
func (o *Options) Margin() float64 {
	m := o.Radius + o.Output.Padding
	if o.Blur != nil {
		m += 3 * *o.Blur
	}
	return m
}

// Document wraps the scene in a standalone <svg>. Unless Output.Fixed is
// set, the viewBox is fitted to the clustered points.
func (o *Options) Document(s Scene) *svg.Node {
	doc := svg.Document{
		Width:      o.Output.Width,
		Height:     o.Output.Height,
		Background: o.Output.Background,
	}
	if !o.Output.Fixed {
		doc.ViewBox = svg.FitPoints(heatmap.Vecs(s.Points), o.Margin())
	}
	return doc.Wrap(s.Root)
}
