package heatmap

import (
	"slices"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/gradient"
)

// Default configuration values.
const (
	DefaultMaxWeight = 1.0
	DefaultRadius    = 25.0
	DefaultBlur      = 15.0
)

// Config describes how records of type R become a heatmap. It is an immutable
// value: the With* methods return modified copies and the zero value is not
// useful. Build one with [New] at render time rather than storing it in
// long-lived state, since it carries a mapping function tied to R.
type Config[R any] struct {
	mapRecord     func(R) Point
	gradient      gradient.Gradient
	maxWeight     float64
	radius        float64
	blur          float64
	idSuffix      string
	paletteSize   int
	interpolation gradient.Interpolation
}

// New returns a configuration with max weight 1, radius 25, blur 15, no id
// suffix and a 128-entry RGB-interpolated palette.
func New[R any](mapRecord func(R) Point, g gradient.Gradient) Config[R] {
	return Config[R]{
		mapRecord:     mapRecord,
		gradient:      slices.Clone(g),
		maxWeight:     DefaultMaxWeight,
		radius:        DefaultRadius,
		blur:          DefaultBlur,
		paletteSize:   gradient.DefaultSize,
		interpolation: gradient.InterpolateRGB,
	}
}

// WithMaxWeight sets the weight that renders at full opacity.
func (c Config[R]) WithMaxWeight(w float64) Config[R] {
	c.maxWeight = w
	return c
}

// WithRadius sets the stamp radius, which is also the clustering basis.
func (c Config[R]) WithRadius(r float64) Config[R] {
	c.radius = r
	return c
}

// WithBlur sets the Gaussian blur standard deviation.
func (c Config[R]) WithBlur(b float64) Config[R] {
	c.blur = b
	return c
}

// WithIDSuffix namespaces every generated identifier. Heatmaps sharing one
// document need distinct suffixes.
func (c Config[R]) WithIDSuffix(s string) Config[R] {
	c.idSuffix = s
	return c
}

// WithPaletteSize sets how many colors are sampled from the gradient.
func (c Config[R]) WithPaletteSize(n int) Config[R] {
	c.paletteSize = n
	return c
}

// WithInterpolation sets the color space used to sample the gradient.
func (c Config[R]) WithInterpolation(m gradient.Interpolation) Config[R] {
	c.interpolation = m
	return c
}

func (c Config[R]) MaxWeight() float64                    { return c.maxWeight }
func (c Config[R]) Radius() float64                       { return c.radius }
func (c Config[R]) Blur() float64                         { return c.blur }
func (c Config[R]) IDSuffix() string                      { return c.idSuffix }
func (c Config[R]) PaletteSize() int                      { return c.paletteSize }
func (c Config[R]) Interpolation() gradient.Interpolation { return c.interpolation }

// Gradient returns a copy of the configured stops.
func (c Config[R]) Gradient() gradient.Gradient { return slices.Clone(c.gradient) }

// Palette samples the gradient at the configured size.
func (c Config[R]) Palette() gradient.Palette {
	return gradient.Sample(c.gradient, c.paletteSize, c.interpolation)
}

// ID returns the namespaced identifier for role.
func (c Config[R]) ID(role Role) string { return ID(role, c.idSuffix) }

// Validate reports the first setting that would make the output meaningless.
// Rendering never calls it; an invalid configuration only degrades output.
func (c Config[R]) Validate() error {
	if c.mapRecord == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "record mapping function is nil")
	}
	if err := errors.ValidateRadius(c.radius); err != nil {
		return err
	}
	if err := errors.ValidateBlur(c.blur); err != nil {
		return err
	}
	if err := errors.ValidateMaxWeight(c.maxWeight); err != nil {
		return err
	}
	if err := errors.ValidateIDSuffix(c.idSuffix); err != nil {
		return err
	}
	if c.paletteSize < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette size must be at least 2, got %d", c.paletteSize)
	}
	return c.gradient.Validate()
}
