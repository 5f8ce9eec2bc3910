// Package pipeline turns input records into heatmap artifacts.
//
// It is the single implementation behind the CLI and the HTTP server:
// options are validated and defaulted once, records are mapped and
// clustered into a scene, the scene is wrapped in a standalone SVG document,
// and the document is serialized in every requested format.
//
// # Stages
//
//  1. Scene: map records to points, cluster, compose (cached by record hash
//     and render settings)
//  2. Render: wrap the scene in <svg> and emit svg, json, png or pdf (cached
//     per format)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Preset: "Heated Metal",
//	    Radius: 30,
//	    Fields: records.Fields{X: "lon", Y: "lat", Weight: "count"},
//	    Output: pipeline.OutputOptions{Formats: []string{"svg", "png"}},
//	}
//	result, err := runner.Execute(ctx, recs, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Options can also be read from a TOML file with [LoadOptions].
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/heatmap"
	"github.com/matzehuels/heatsvg/pkg/records"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	DefaultRadius      = heatmap.DefaultRadius
	DefaultBlur        = heatmap.DefaultBlur
	DefaultMaxWeight   = heatmap.DefaultMaxWeight
	DefaultPaletteSize = gradient.DefaultSize

	// DefaultPreset is used when neither a preset nor explicit stops are given.
	DefaultPreset = "Blue Red"

	// DefaultWidth and DefaultHeight are the rendered document size in pixels.
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	// DefaultScale is the PNG zoom factor.
	DefaultScale = 2.0
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// StopSpec is one gradient stop as written in config files and requests.
type StopSpec struct {
	Stop  float64 `toml:"stop" json:"stop"`
	Color string  `toml:"color" json:"color"` // "#rrggbb"
}

// OutputOptions controls the standalone document and its encodings.
type OutputOptions struct {
	Formats []string `toml:"formats" json:"formats,omitempty"`
	Width   float64  `toml:"width" json:"width,omitempty"`
	Height  float64  `toml:"height" json:"height,omitempty"`
	// Fixed uses a 0 0 Width Height viewBox instead of fitting the points.
	Fixed bool `toml:"fixed" json:"fixed,omitempty"`
	// Padding is added around the fitted viewBox, on top of radius + 3*blur.
	Padding    float64 `toml:"padding" json:"padding,omitempty"`
	Background string  `toml:"background" json:"background,omitempty"`
	Scale      float64 `toml:"scale" json:"scale,omitempty"`
}

// Options contains all configuration for a pipeline run. Zero values mean
// "use the default", except Blur where nil means default and 0 disables
// blurring. Fields.DefaultWeight works the same way: nil means 1 and 0 hides
// records without a weight. Empty field names take the names from
// records.DefaultFields, so records lacking a "weight" value fall back to
// Fields.DefaultWeight.
type Options struct {
	Preset        string         `toml:"preset" json:"preset,omitempty"`
	Gradient      []StopSpec     `toml:"gradient" json:"gradient,omitempty"`
	Interpolation string         `toml:"interpolation" json:"interpolation,omitempty"`
	PaletteSize   int            `toml:"palette_size" json:"palette_size,omitempty"`
	Radius        float64        `toml:"radius" json:"radius,omitempty"`
	Blur          *float64       `toml:"blur" json:"blur,omitempty"`
	MaxWeight     float64        `toml:"max_weight" json:"max_weight,omitempty"`
	IDSuffix      string         `toml:"id_suffix" json:"id_suffix,omitempty"`
	Fields        records.Fields `toml:"fields" json:"fields"`
	Output        OutputOptions  `toml:"output" json:"output"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `toml:"-" json:"refresh,omitempty"`

	Logger *log.Logger `toml:"-" json:"-"`

	resolved  gradient.Gradient
	interp    gradient.Interpolation
	validated bool
}

// Float returns a pointer to v, for optional fields such as Options.Blur and
// Fields.DefaultWeight.
func Float(v float64) *float64 { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the heatmap <g> element and the clustered points behind it.
	Scene Scene

	// SceneKey is the cache key of the scene, usable as a content id.
	SceneKey string

	// Artifacts contains serialized documents keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records     int
	Clustered   int
	ClusterTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	SceneHit  bool // scene came from cache
	RenderHit bool // every requested artifact came from cache
}

// Scene is the output of the scene stage.
type Scene struct {
	Root   *svg.Node       `json:"root"`
	Points []heatmap.Point `json:"points"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format and rejects duplicates.
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if slices.Contains(formats[:i], f) {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q requested twice", f)
		}
	}
	return nil
}

// ResolveGradient returns the gradient described by explicit stops or, when
// there are none, by a preset name.
func ResolveGradient(preset string, stops []StopSpec) (gradient.Gradient, error) {
	if len(stops) > 0 {
		g := make(gradient.Gradient, len(stops))
		for i, s := range stops {
			c, err := gradient.ParseHex(s.Color)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGradient, err, "stop %d", i)
			}
			g[i] = gradient.Stop{Offset: s.Stop, Color: c}
		}
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return g, nil
	}
	if preset == "" {
		preset = DefaultPreset
	}
	g, ok := gradient.Preset(preset)
	if !ok {
		return nil, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q", preset)
	}
	return g, nil
}

// Stops converts a gradient back to its config representation.
func Stops(g gradient.Gradient) []StopSpec {
	out := make([]StopSpec, len(g))
	for i, s := range g {
		out[i] = StopSpec{Stop: s.Offset, Color: s.Color.Hex()}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Preset != "" && len(o.Gradient) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "preset and gradient stops are mutually exclusive")
	}
	g, err := ResolveGradient(o.Preset, o.Gradient)
	if err != nil {
		return err
	}
	if len(o.Gradient) == 0 && o.Preset == "" {
		o.Preset = DefaultPreset
	}
	o.resolved = g

	if o.interp, err = gradient.ParseInterpolation(o.Interpolation); err != nil {
		return err
	}
	o.Interpolation = o.interp.String()

	if o.PaletteSize == 0 {
		o.PaletteSize = DefaultPaletteSize
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Blur == nil {
		o.Blur = Float(DefaultBlur)
	}
	if o.MaxWeight == 0 {
		o.MaxWeight = DefaultMaxWeight
	}

	o.setFieldDefaults()
	if err := o.Fields.Validate(); err != nil {
		return err
	}

	o.setOutputDefaults()
	if err := o.validateOutput(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := o.HeatmapConfig().Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) setFieldDefaults() {
	def := records.DefaultFields()
	if o.Fields.X == "" {
		o.Fields.X = def.X
	}
	if o.Fields.Y == "" {
		o.Fields.Y = def.Y
	}
	if o.Fields.Weight == "" {
		o.Fields.Weight = def.Weight
	}
}

func (o *Options) setOutputDefaults() {
	if len(o.Output.Formats) == 0 {
		o.Output.Formats = []string{FormatSVG}
	}
	if o.Output.Width == 0 {
		o.Output.Width = DefaultWidth
	}
	if o.Output.Height == 0 {
		o.Output.Height = DefaultHeight
	}
	if o.Output.Scale == 0 {
		o.Output.Scale = DefaultScale
	}
}

func (o *Options) validateOutput() error {
	if err := ValidateFormats(o.Output.Formats); err != nil {
		return err
	}
	if o.Output.Width < 0 || o.Output.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "output size must be positive, got %gx%g", o.Output.Width, o.Output.Height)
	}
	if o.Output.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding cannot be negative, got %g", o.Output.Padding)
	}
	if o.Output.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Output.Scale)
	}
	return nil
}

// HeatmapConfig builds the core configuration. Call it after
// ValidateAndSetDefaults.
func (o *Options) HeatmapConfig() heatmap.Config[records.Record] {
	blur := DefaultBlur
	if o.Blur != nil {
		blur = *o.Blur
	}
	return heatmap.New(o.Fields.Mapper(), o.resolved).
		WithRadius(o.Radius).
		WithBlur(blur).
		WithMaxWeight(o.MaxWeight).
		WithIDSuffix(o.IDSuffix).
		WithPaletteSize(o.PaletteSize).
		WithInterpolation(o.interp)
}

// ResolvedGradient returns the stops in use after validation.
func (o *Options) ResolvedGradient() gradient.Gradient { return slices.Clone(o.resolved) }
