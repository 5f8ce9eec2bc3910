package gradient

import "slices"

// Channel selects one color component of a palette.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Palette is a densely sampled, ordered list of colors.
type Palette []Color

// Reversed returns a copy of p in reverse order.
func (p Palette) Reversed() Palette {
	out := slices.Clone(p)
	slices.Reverse(out)
	return out
}

// Channel returns one component of every entry normalized to [0, 1] by
// dividing by 256.
func (p Palette) Channel(ch Channel) []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		var v uint8
		switch ch {
		case Red:
			v = c.R
		case Green:
			v = c.G
		case Blue:
			v = c.B
		}
		out[i] = min(1, max(0, float64(v)/256))
	}
	return out
}
