package heatmap

import (
	"math"
	"slices"
)

type cellKey struct{ i, j float64 }

// cell accumulates running sums so the centroid does not depend on the order
// points arrive in.
type cell struct {
	n          int
	w, wx, wy  float64
	sumX, sumY float64
}

func (c *cell) add(p Point) {
	c.n++
	c.w += p.Weight
	c.wx += p.X * p.Weight
	c.wy += p.Y * p.Weight
	c.sumX += p.X
	c.sumY += p.Y
}

func (c *cell) point() Point {
	if c.n == 1 {
		return Point{X: c.sumX, Y: c.sumY, Weight: c.w}
	}
	if c.w == 0 {
		n := float64(c.n)
		return Point{X: c.sumX / n, Y: c.sumY / n}
	}
	return Point{X: c.wx / c.w, Y: c.wy / c.w, Weight: c.w}
}

// CellSize returns the clustering grid pitch for a stamp radius.
func CellSize(radius float64) float64 { return radius / 2 }

// Cluster merges points that fall into the same grid cell of side radius/2
// into their weighted centroid. Total weight is preserved and the result has
// one point per occupied cell, in the order cells were first occupied.
//
// A cell whose weights sum to zero is placed at the unweighted mean of its
// points and keeps weight zero. A non-positive or NaN radius disables merging.
func Cluster(points []Point, radius float64) []Point {
	size := CellSize(radius)
	if !(size > 0) {
		return slices.Clone(points)
	}

	cells := make(map[cellKey]*cell, len(points))
	order := make([]*cell, 0, len(points))
	for _, p := range points {
		k := cellKey{math.Floor(p.X / size), math.Floor(p.Y / size)}
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
			order = append(order, c)
		}
		c.add(p)
	}

	out := make([]Point, len(order))
	for i, c := range order {
		out[i] = c.point()
	}
	return out
}
