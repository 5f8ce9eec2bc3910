package gradient

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/heatsvg/pkg/errors"
)

// DefaultSize is the number of palette entries sampled for a render.
const DefaultSize = 128

// Color is an 8-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseHex parses "#rrggbb" or "rrggbb". Shorthand and named colors are
// rejected.
func ParseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexColor.MatchString(s) {
		return Color{}, errors.New(errors.ErrCodeInvalidGradient, "invalid color %q: want #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidGradient, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Stop is one control point of a gradient.
type Stop struct {
	Offset float64 // position in [0, 1]
	Color  Color
}

// Gradient is an ordered list of stops, low density first.
type Gradient []Stop

// Offsets returns the stop positions in order.
func (g Gradient) Offsets() []float64 {
	out := make([]float64, len(g))
	for i, s := range g {
		out[i] = s.Offset
	}
	return out
}

// Validate checks offsets are within [0, 1] and non-decreasing.
// Sampling never requires it; malformed gradients only degrade output.
func (g Gradient) Validate() error {
	return errors.ValidateStops(g.Offsets())
}

// Interpolation selects the color space used between stops.
type Interpolation int

const (
	// InterpolateRGB blends sRGB components linearly.
	InterpolateRGB Interpolation = iota
	// InterpolateLab blends in CIE L*a*b*.
	InterpolateLab
	// InterpolateHCL blends in CIE L*C*h°.
	InterpolateHCL
)

// ParseInterpolation maps "rgb", "lab" and "hcl" (any case) to an Interpolation.
// The empty string means RGB.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "rgb":
		return InterpolateRGB, nil
	case "lab":
		return InterpolateLab, nil
	case "hcl":
		return InterpolateHCL, nil
	}
	return InterpolateRGB, errors.New(errors.ErrCodeInvalidGradient, "unknown interpolation %q (must be rgb, lab or hcl)", s)
}

// String returns the lowercase name of the interpolation mode.
func (m Interpolation) String() string {
	switch m {
	case InterpolateLab:
		return "lab"
	case InterpolateHCL:
		return "hcl"
	default:
		return "rgb"
	}
}

func (m Interpolation) blend(a, b Color, t float64) Color {
	ca, cb := a.colorful(), b.colorful()
	switch m {
	case InterpolateLab:
		return fromColorful(ca.BlendLab(cb, t))
	case InterpolateHCL:
		return fromColorful(ca.BlendHcl(cb, t))
	default:
		return fromColorful(ca.BlendRgb(cb, t))
	}
}

// At returns the gradient color at t. Positions before the first stop take
// the first color and positions after the last take the last color. An empty
// gradient is black everywhere.
func (g Gradient) At(t float64, mode Interpolation) Color {
	switch len(g) {
	case 0:
		return Color{}
	case 1:
		return g[0].Color
	}

	idx := sort.Search(len(g), func(i int) bool { return g[i].Offset >= t })
	if idx == 0 {
		return g[0].Color
	}
	if idx >= len(g) {
		return g[len(g)-1].Color
	}

	lo, hi := g[idx-1], g[idx]
	if hi.Offset == lo.Offset {
		return lo.Color
	}
	return mode.blend(lo.Color, hi.Color, (t-lo.Offset)/(hi.Offset-lo.Offset))
}

// Sample returns n colors taken at evenly spaced positions i/(n-1).
// n < 1 yields an empty palette; n == 1 samples position 0.
func Sample(g Gradient, n int, mode Interpolation) Palette {
	if n < 1 {
		return Palette{}
	}
	p := make(Palette, n)
	for i := range n {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = g.At(t, mode)
	}
	return p
}
