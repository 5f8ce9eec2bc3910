package svg

import (
	"fmt"

	"github.com/golang/geo/r2"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// Document is the outer <svg> container that establishes the coordinate
// system for a scene. Heatmap scenes never create it themselves; hosts that
// embed a scene in a larger drawing supply their own.
type Document struct {
	Width, Height float64 // rendered size in pixels
	ViewBox       r2.Rect // user-space window; zero or empty means 0 0 Width Height
	Background    string  // optional fill for a full-viewport rect
}

// Wrap returns an <svg> root containing scene.
func (d Document) Wrap(scene *Node) *Node {
	vb := d.ViewBox
	if vb == (r2.Rect{}) || vb.IsEmpty() {
		vb = r2.RectFromPoints(r2.Point{}, r2.Point{X: d.Width, Y: d.Height})
	}
	size := vb.Size()

	root := El(KindSVG,
		Str("xmlns", svgNamespace),
		Str("xmlns:xlink", xlinkNamespace),
		Str("viewBox", fmt.Sprintf("%s %s %s %s",
			FormatFloat(vb.X.Lo), FormatFloat(vb.Y.Lo), FormatFloat(size.X), FormatFloat(size.Y))),
		Float("width", d.Width),
		Float("height", d.Height),
	)
	if d.Background != "" {
		root.Append(El(KindRect,
			Float("x", vb.X.Lo), Float("y", vb.Y.Lo),
			Float("width", size.X), Float("height", size.Y),
			Str("fill", d.Background),
		))
	}
	return root.Append(scene)
}

// FitPoints returns the bounding box of pts grown by margin on every side.
// It returns an empty rect when pts is empty.
func FitPoints(pts []r2.Point, margin float64) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(pts...).Expanded(r2.Point{X: margin, Y: margin})
}
