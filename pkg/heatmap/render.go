package heatmap

import "github.com/matzehuels/heatsvg/pkg/svg"

// Points maps every record through the configured mapping function.
func Points[R any](cfg Config[R], records []R) []Point {
	if cfg.mapRecord == nil {
		return nil
	}
	pts := make([]Point, len(records))
	for i, r := range records {
		pts[i] = cfg.mapRecord(r)
	}
	return pts
}

// Render maps, clusters and composes records into a heatmap scene. The
// result is a <g> element; the caller supplies the enclosing <svg>.
func Render[R any](cfg Config[R], records []R) *svg.Node {
	return Compose(cfg, Cluster(Points(cfg, records), cfg.radius))
}
