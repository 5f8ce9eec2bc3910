package heatmap

import "github.com/golang/geo/r2"

// Point is a weighted position. Weight is unnormalized; rendering divides it
// by the configured max weight.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Weight float64 `json:"weight"`
}

// Vec returns the point's position.
func (p Point) Vec() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// Merge returns the weighted centroid of a and b carrying their combined
// weight. When the weights sum to zero the centroid is the plain midpoint.
func Merge(a, b Point) Point {
	w := a.Weight + b.Weight
	if w == 0 {
		return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Weight: w}
	}
	return Point{
		X:      (a.X*a.Weight + b.X*b.Weight) / w,
		Y:      (a.Y*a.Weight + b.Y*b.Weight) / w,
		Weight: w,
	}
}

// Vecs returns the positions of pts.
func Vecs(pts []Point) []r2.Point {
	out := make([]r2.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Vec()
	}
	return out
}
