package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/pipeline"
	"github.com/matzehuels/heatsvg/pkg/records"
	"github.com/matzehuels/heatsvg/pkg/render"
)

// renderOpts holds the flags of the render command. Only flags the user set
// override values from --config.
type renderOpts struct {
	output        string
	formats       string
	config        string
	inputFormat   string
	preset        string
	gradient      string
	interpolation string
	radius        float64
	blur          float64
	maxWeight     float64
	idSuffix      string
	x, y, weight  string
	defaultWeight float64
	width         float64
	height        float64
	padding       float64
	background    string
	scale         float64
	fixed         bool
	noCache       bool
	refresh       bool
	pick          bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render CSV or JSON records as a heatmap",
		Long: `Render reads records from a CSV, TSV or JSON file ("-" reads stdin) and
writes the heatmap in one or more formats.

Each record needs numeric x and y fields and may carry a weight. Field names
are configurable and may be dotted paths into nested JSON objects.`,
		Example: `  heatsvg render visits.csv
  heatsvg render visits.json -f svg,png --preset "Heated Metal" --radius 30
  heatsvg render visits.csv --x lon --y lat --weight count -o map.svg
  cat points.json | heatsvg render - -o - > heat.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, &ro)
			if err != nil {
				return err
			}
			if ro.pick {
				name, err := runPicker(opts.Preset)
				if err != nil {
					return err
				}
				if name == "" {
					return nil
				}
				opts.Preset, opts.Gradient = name, nil
			}
			if err := validateRenderOptions(&opts, &ro); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, &ro)
		},
	}

	addRenderFlags(cmd, &ro)
	return cmd
}

func addRenderFlags(cmd *cobra.Command, ro *renderOpts) {
	f := cmd.Flags()
	f.StringVarP(&ro.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	f.StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.StringVarP(&ro.config, "config", "c", "", "TOML options file")
	f.StringVar(&ro.inputFormat, "input-format", "", "input format when reading stdin: json (default), csv, tsv")
	f.StringVarP(&ro.preset, "preset", "p", pipeline.DefaultPreset, "gradient preset (see: heatsvg presets)")
	f.StringVar(&ro.gradient, "gradient", "", `explicit stops, e.g. "0:#000080,0.5:#ffff00,1:#ff0000"`)
	f.StringVar(&ro.interpolation, "interpolation", "rgb", "gradient interpolation: rgb, lab, hcl")
	f.Float64VarP(&ro.radius, "radius", "r", pipeline.DefaultRadius, "stamp radius; points closer than radius/2 merge")
	f.Float64VarP(&ro.blur, "blur", "b", pipeline.DefaultBlur, "gaussian blur standard deviation (0 disables)")
	f.Float64Var(&ro.maxWeight, "max-weight", pipeline.DefaultMaxWeight, "weight drawn at full opacity")
	f.StringVar(&ro.idSuffix, "id-suffix", "", "suffix for element ids when several heatmaps share a document")
	f.StringVar(&ro.x, "x", "x", "record field holding the x coordinate")
	f.StringVar(&ro.y, "y", "y", "record field holding the y coordinate")
	f.StringVar(&ro.weight, "weight", "weight", "record field holding the weight")
	f.Float64Var(&ro.defaultWeight, "default-weight", 1, "weight for records without one (0 hides them)")
	f.Float64Var(&ro.width, "width", pipeline.DefaultWidth, "document width in pixels")
	f.Float64Var(&ro.height, "height", pipeline.DefaultHeight, "document height in pixels")
	f.Float64Var(&ro.padding, "padding", 0, "extra space around the fitted viewBox")
	f.StringVar(&ro.background, "background", "", "background fill, e.g. #ffffff")
	f.Float64Var(&ro.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.BoolVar(&ro.fixed, "fixed", false, "use a 0 0 width height viewBox instead of fitting the points")
	f.BoolVar(&ro.noCache, "no-cache", false, "disable the render cache")
	f.BoolVar(&ro.refresh, "refresh", false, "ignore cached results and re-render")
	f.BoolVar(&ro.pick, "pick", false, "choose the gradient preset interactively")

	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON},
		cobra.ShellCompDirectiveNoFileComp))
}

// buildOptions layers explicitly set flags over the --config file. The
// result is not validated yet.
func buildOptions(cmd *cobra.Command, ro *renderOpts) (pipeline.Options, error) {
	var opts pipeline.Options
	if ro.config != "" {
		var err error
		if opts, err = pipeline.LoadOptions(ro.config); err != nil {
			return opts, err
		}
	}

	set := cmd.Flags().Changed
	if set("preset") {
		opts.Preset, opts.Gradient = ro.preset, nil
	}
	if set("gradient") {
		stops, err := parseStops(ro.gradient)
		if err != nil {
			return opts, err
		}
		opts.Preset, opts.Gradient = "", stops
	}
	if set("interpolation") {
		opts.Interpolation = ro.interpolation
	}
	if set("radius") {
		opts.Radius = ro.radius
	}
	if set("blur") {
		opts.Blur = pipeline.Float(ro.blur)
	}
	if set("max-weight") {
		opts.MaxWeight = ro.maxWeight
	}
	if set("id-suffix") {
		opts.IDSuffix = ro.idSuffix
	}
	if set("x") {
		opts.Fields.X = ro.x
	}
	if set("y") {
		opts.Fields.Y = ro.y
	}
	if set("weight") {
		opts.Fields.Weight = ro.weight
	}
	if set("default-weight") {
		opts.Fields.DefaultWeight = pipeline.Float(ro.defaultWeight)
	}
	if set("width") {
		opts.Output.Width = ro.width
	}
	if set("height") {
		opts.Output.Height = ro.height
	}
	if set("padding") {
		opts.Output.Padding = ro.padding
	}
	if set("background") {
		opts.Output.Background = ro.background
	}
	if set("scale") {
		opts.Output.Scale = ro.scale
	}
	if set("fixed") {
		opts.Output.Fixed = ro.fixed
	}
	opts.Refresh = ro.refresh

	switch {
	case set("format"):
		opts.Output.Formats = parseFormats(ro.formats)
	case len(opts.Output.Formats) == 0:
		if ext := formatExt(ro.output); ext != "" {
			opts.Output.Formats = []string{ext}
		}
	}

	return opts, nil
}

func validateRenderOptions(opts *pipeline.Options, ro *renderOpts) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output == "-" && len(opts.Output.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(opts.Output.Formats))
	}
	return nil
}

// parseStops parses "offset:#rrggbb" pairs separated by commas.
func parseStops(s string) ([]pipeline.StopSpec, error) {
	var stops []pipeline.StopSpec
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		offset, color, ok := strings.Cut(part, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGradient, "stop %q must look like 0.5:#ff0000", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(offset), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGradient, err, "stop offset %q", offset)
		}
		stops = append(stops, pipeline.StopSpec{Stop: v, Color: strings.TrimSpace(color)})
	}
	if len(stops) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGradient, "gradient needs at least one stop")
	}
	return stops, nil
}

// formatExt returns the output format named by path's extension, if any.
func formatExt(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return ""
}

// basePath derives the base output path: the output with any format
// extension stripped, or the input without its extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "heatmap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if formatExt(output) != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

// outputPaths maps each format to its destination file.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func readInput(input, inputFormat string) ([]records.Record, error) {
	if input != "-" {
		return records.ReadFile(input)
	}
	format := records.FormatJSON
	if inputFormat != "" {
		format = records.Format(strings.ToLower(inputFormat))
	}
	return records.Read(os.Stdin, format)
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	recs, err := readInput(input, ro.inputFormat)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d records from %s", len(recs), input)
	if len(recs) == 0 && ro.output != "-" {
		printWarning("%s has no records; the heatmap will be empty", input)
	}

	for _, f := range opts.Output.Formats {
		if (f == pipeline.FormatPNG || f == pipeline.FormatPDF) && !render.Available() {
			return errors.New(errors.ErrCodeUnsupported, "%s output needs rsvg-convert on PATH", f)
		}
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if ro.output != "-" {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d records...", len(recs)))
		spinner.Start()
	}
	opts.Logger = logger
	result, err := runner.Execute(ctx, recs, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if ro.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Output.Formats[0]])
		return err
	}

	paths := outputPaths(ro.output, input, opts.Output.Formats)
	for _, f := range opts.Output.Formats {
		if err := writeOutput(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("Rendered heatmap")

	printSuccess("Rendered %s", StyleTitle.Render(filepath.Base(input)))
	printStats(result.Stats.Records, result.Stats.Clustered, result.CacheInfo.RenderHit)
	for _, f := range opts.Output.Formats {
		printFile(paths[f])
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
