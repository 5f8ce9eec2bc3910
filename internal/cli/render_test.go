package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", " svg , json ", []string{"svg", "json"}},
		{"blank entries dropped", "png,,", []string{"png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStops(t *testing.T) {
	got, err := parseStops("0:#000080, 0.5:#ffff00,1:ff0000")
	if err != nil {
		t.Fatal(err)
	}
	want := []pipeline.StopSpec{{Stop: 0, Color: "#000080"}, {Stop: 0.5, Color: "#ffff00"}, {Stop: 1, Color: "ff0000"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseStops = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"", "#ff0000", "x:#ff0000", " , "} {
		if _, err := parseStops(bad); !errors.Is(err, errors.ErrCodeInvalidGradient) {
			t.Errorf("parseStops(%q) error = %v, want INVALID_GRADIENT", bad, err)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{"derived from input", "", "data/visits.csv", []string{"svg"}, map[string]string{"svg": "data/visits.svg"}},
		{"explicit single", "out/map.svg", "visits.csv", []string{"svg"}, map[string]string{"svg": "out/map.svg"}},
		{"explicit single keeps odd extension", "map.image", "visits.csv", []string{"png"}, map[string]string{"png": "map.image"}},
		{"several from output", "out/map.svg", "visits.csv", []string{"svg", "png"},
			map[string]string{"svg": "out/map.svg", "png": "out/map.png"}},
		{"several from base", "out/map", "visits.csv", []string{"svg", "json"},
			map[string]string{"svg": "out/map.svg", "json": "out/map.json"}},
		{"stdin input", "", "-", []string{"svg"}, map[string]string{"svg": "heatmap.svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.output, tt.input, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths = %v, want %v", got, tt.want)
			}
		})
	}
}

func parseRenderFlags(t *testing.T, args ...string) (*cobra.Command, *renderOpts) {
	t.Helper()
	cmd := &cobra.Command{Use: "render"}
	ro := &renderOpts{}
	addRenderFlags(cmd, ro)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd, ro
}

func TestBuildOptionsDefaults(t *testing.T) {
	cmd, ro := parseRenderFlags(t)
	opts, err := buildOptions(cmd, ro)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateRenderOptions(&opts, ro); err != nil {
		t.Fatal(err)
	}
	if opts.Preset != pipeline.DefaultPreset || opts.Radius != pipeline.DefaultRadius || *opts.Blur != pipeline.DefaultBlur {
		t.Errorf("defaults = %q %v %v", opts.Preset, opts.Radius, *opts.Blur)
	}
	if !reflect.DeepEqual(opts.Output.Formats, []string{"svg"}) {
		t.Errorf("formats = %v", opts.Output.Formats)
	}
}

func TestBuildOptionsFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heat.toml")
	config := `preset = "Sunrise"
radius = 30
blur = 4

[fields]
x = "lon"
y = "lat"

[output]
formats = ["svg", "json"]
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, ro := parseRenderFlags(t, "--config", path, "--radius", "12", "--blur", "0", "--y", "latitude", "--default-weight", "0")
	opts, err := buildOptions(cmd, ro)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateRenderOptions(&opts, ro); err != nil {
		t.Fatal(err)
	}

	if opts.Preset != "Sunrise" {
		t.Errorf("preset = %q, want config value", opts.Preset)
	}
	if opts.Radius != 12 {
		t.Errorf("radius = %v, want flag value 12", opts.Radius)
	}
	if *opts.Blur != 0 {
		t.Errorf("blur = %v, want explicit 0", *opts.Blur)
	}
	if opts.Fields.X != "lon" || opts.Fields.Y != "latitude" {
		t.Errorf("fields = %+v", opts.Fields)
	}
	if dw := opts.Fields.DefaultWeight; dw == nil || *dw != 0 {
		t.Errorf("default weight = %v, want explicit 0", dw)
	}
	if !reflect.DeepEqual(opts.Output.Formats, []string{"svg", "json"}) {
		t.Errorf("formats = %v, want config formats", opts.Output.Formats)
	}
}

func TestBuildOptionsGradientReplacesPreset(t *testing.T) {
	cmd, ro := parseRenderFlags(t, "--gradient", "0:#000000,1:#ffffff")
	opts, err := buildOptions(cmd, ro)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateRenderOptions(&opts, ro); err != nil {
		t.Fatal(err)
	}
	g := opts.ResolvedGradient()
	if len(g) != 2 || g[1].Color != gradient.RGB(255, 255, 255) {
		t.Errorf("gradient = %+v", g)
	}
}

func TestBuildOptionsFormatFromOutput(t *testing.T) {
	cmd, ro := parseRenderFlags(t, "-o", "map.json")
	opts, err := buildOptions(cmd, ro)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(opts.Output.Formats, []string{"json"}) {
		t.Errorf("formats = %v, want [json]", opts.Output.Formats)
	}
}

func TestValidateRenderOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"stdout with two formats", []string{"-o", "-", "-f", "svg,png"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"unknown preset", []string{"--preset", "nope"}, errors.ErrCodePresetNotFound},
		{"negative blur", []string{"--blur", "-1"}, errors.ErrCodeInvalidConfig},
		{"bad interpolation", []string{"--interpolation", "cmyk"}, errors.ErrCodeInvalidGradient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ro := parseRenderFlags(t, tt.args...)
			opts, err := buildOptions(cmd, ro)
			if err == nil {
				err = validateRenderOptions(&opts, ro)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	input := filepath.Join(dir, "visits.csv")
	if err := os.WriteFile(input, []byte("x,y,weight\n0,0,1\n4,2,3\n100,50,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out", "visits.svg")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", input, "-o", output, "--radius", "10", "--blur", "0", "--padding", "5", "--id-suffix", "v"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	for _, want := range []string{`viewBox="-12 -13.5 127 78.5"`, `id="heatmapFilter_v"`, `href="#heatmapPoint_v"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(svg, "<use "); n != 2 {
		t.Errorf("got %d stamps, want 2 after clustering", n)
	}
}

func TestRenderCommandMissingInput(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.csv"), "--no-cache"})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPresetTable(t *testing.T) {
	out := presetTable(gradient.Presets)
	for _, name := range gradient.PresetNames() {
		if !strings.Contains(out, name) {
			t.Errorf("table missing %q", name)
		}
	}
	if got := stopSummary(gradient.BlueRed); got != "#0000ff #ff0000" {
		t.Errorf("stopSummary = %q", got)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(120, 14, true)
	for _, want := range []string{"120 records", "14 points", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q missing %q", line, want)
		}
	}
	if !strings.Contains(statsLine(1, 1, false), iconFresh) {
		t.Error("uncached stats should say fresh")
	}
}

func TestPresetPicker(t *testing.T) {
	m := NewPresetPickerModel(gradient.Presets, "sunrise")
	if m.Cursor != 2 {
		t.Fatalf("initial cursor = %d, want 2", m.Cursor)
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := model.(PresetPickerModel).Cursor; got != 3 {
		t.Fatalf("cursor = %d, want 3", got)
	}
	if !strings.Contains(model.View(), "Incandescent") {
		t.Error("view missing preset names")
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := model.(PresetPickerModel).Selected
	if sel == nil || sel.Name != "Incandescent" {
		t.Fatalf("selected = %+v", sel)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestPresetPickerBounds(t *testing.T) {
	var model tea.Model = NewPresetPickerModel(gradient.Presets, "")
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := model.(PresetPickerModel).Cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	for range 20 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := model.(PresetPickerModel).Cursor; got != len(gradient.Presets)-1 {
		t.Errorf("cursor = %d, want last", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if model.(PresetPickerModel).Selected != nil {
		t.Error("quit should not select")
	}
}
