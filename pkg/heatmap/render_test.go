package heatmap

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

type sample struct {
	x, y, w float64
}

func mapSample(s sample) Point { return Point{X: s.x, Y: s.y, Weight: s.w} }

func testConfig() Config[sample] {
	return New(mapSample, gradient.BlueRed)
}

func TestNewDefaults(t *testing.T) {
	cfg := testConfig()
	if cfg.MaxWeight() != 1 || cfg.Radius() != 25 || cfg.Blur() != 15 || cfg.IDSuffix() != "" {
		t.Errorf("defaults = %v %v %v %q", cfg.MaxWeight(), cfg.Radius(), cfg.Blur(), cfg.IDSuffix())
	}
	if cfg.PaletteSize() != gradient.DefaultSize || cfg.Interpolation() != gradient.InterpolateRGB {
		t.Errorf("palette = %d %v", cfg.PaletteSize(), cfg.Interpolation())
	}
}

func TestBuildersReturnCopies(t *testing.T) {
	base := testConfig()
	mod := base.WithMaxWeight(4).WithRadius(10).WithBlur(2).WithIDSuffix("a")

	if base.MaxWeight() != 1 || base.Radius() != 25 || base.Blur() != 15 || base.IDSuffix() != "" {
		t.Error("builders modified the receiver")
	}
	if mod.MaxWeight() != 4 || mod.Radius() != 10 || mod.Blur() != 2 || mod.IDSuffix() != "a" {
		t.Errorf("builders not applied: %v %v %v %q", mod.MaxWeight(), mod.Radius(), mod.Blur(), mod.IDSuffix())
	}

	g := base.Gradient()
	g[0].Color = gradient.RGB(1, 2, 3)
	if base.Gradient()[0].Color == gradient.RGB(1, 2, 3) {
		t.Error("Gradient() exposes internal stops")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config[sample]
		code errors.Code
	}{
		{"defaults", testConfig(), ""},
		{"nil mapper", New[sample](nil, gradient.BlueRed), errors.ErrCodeInvalidConfig},
		{"zero radius", testConfig().WithRadius(0), errors.ErrCodeInvalidConfig},
		{"negative blur", testConfig().WithBlur(-1), errors.ErrCodeInvalidConfig},
		{"zero blur", testConfig().WithBlur(0), ""},
		{"zero max weight", testConfig().WithMaxWeight(0), errors.ErrCodeInvalidConfig},
		{"bad suffix", testConfig().WithIDSuffix("a b"), errors.ErrCodeInvalidIDSuffix},
		{"tiny palette", testConfig().WithPaletteSize(1), errors.ErrCodeInvalidConfig},
		{"no stops", New(mapSample, nil), errors.ErrCodeInvalidGradient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		role   Role
		suffix string
		want   string
	}{
		{RoleFilter, "", "heatmapFilter"},
		{RolePoint, "", "heatmapPoint"},
		{RolePointGradient, "", "heatmapPointGradient"},
		{RoleFilter, "a", "heatmapFilter_a"},
		{RolePointGradient, "x-1", "heatmapPointGradient_x-1"},
	}
	for _, tt := range tests {
		if got := ID(tt.role, tt.suffix); got != tt.want {
			t.Errorf("ID(%v, %q) = %q, want %q", tt.role, tt.suffix, got, tt.want)
		}
	}
}

func TestSceneStructure(t *testing.T) {
	scene := Render(testConfig(), []sample{{10, 10, 1}, {100, 100, 0.5}})

	if scene.Kind != svg.KindGroup || len(scene.Children) != 2 {
		t.Fatalf("root = <%s> with %d children", scene.Kind, len(scene.Children))
	}
	defs, layer := scene.Children[0], scene.Children[1]
	if defs.Kind != svg.KindDefs {
		t.Fatalf("first child = <%s>, want defs", defs.Kind)
	}
	kinds := make([]string, len(defs.Children))
	for i, c := range defs.Children {
		kinds[i] = c.Kind
	}
	want := []string{svg.KindRadialGradient, svg.KindCircle, svg.KindFilter}
	if !slices.Equal(kinds, want) {
		t.Errorf("defs = %v, want %v", kinds, want)
	}

	stamp := defs.Children[1]
	if r, _ := stamp.Attr("r"); r != "25" {
		t.Errorf("stamp r = %q", r)
	}
	if fill, _ := stamp.Attr("fill"); fill != "url(#heatmapPointGradient)" {
		t.Errorf("stamp fill = %q", fill)
	}

	if f, _ := layer.Attr("filter"); f != "url(#heatmapFilter)" {
		t.Errorf("layer filter = %q", f)
	}
	uses := layer.FindAll(svg.KindUse)
	if len(uses) != 2 {
		t.Fatalf("got %d uses, want 2", len(uses))
	}
	for _, name := range []string{"href", "xlink:href"} {
		if href, _ := uses[0].Attr(name); href != "#heatmapPoint" {
			t.Errorf("use %s = %q", name, href)
		}
	}
	if x, _ := uses[1].Attr("x"); x != "100" {
		t.Errorf("use x = %q", x)
	}
}

func TestGradientStops(t *testing.T) {
	grad := Render(testConfig(), nil).Find(svg.KindRadialGradient)
	stops := grad.FindAll(svg.KindStop)
	if len(stops) != 2 {
		t.Fatalf("got %d stops", len(stops))
	}
	for i, want := range []string{"1", "0"} {
		if c, _ := stops[i].Attr("stop-color"); c != "black" {
			t.Errorf("stop %d color = %q", i, c)
		}
		if o, _ := stops[i].Attr("stop-opacity"); o != want {
			t.Errorf("stop %d opacity = %q, want %q", i, o, want)
		}
	}
}

func TestIDIsolation(t *testing.T) {
	recs := []sample{{0, 0, 1}, {50, 50, 2}}
	a := Render(testConfig().WithIDSuffix("a"), recs).IDs()
	b := Render(testConfig().WithIDSuffix("b"), recs).IDs()

	if len(a) != len(Roles) || len(b) != len(Roles) {
		t.Fatalf("ids a=%v b=%v", a, b)
	}
	for _, id := range a {
		if slices.Contains(b, id) {
			t.Errorf("id %q appears in both scenes", id)
		}
		if !strings.HasSuffix(id, "_a") {
			t.Errorf("id %q lacks suffix", id)
		}
	}
}

func TestOpacityScaling(t *testing.T) {
	cfg := testConfig().WithMaxWeight(4)
	scene := Render(cfg, []sample{{0, 0, 4}, {100, 0, 2}, {200, 0, 6}})

	uses := scene.FindAll(svg.KindUse)
	want := []string{"1", "0.5", "1.5"}
	if len(uses) != len(want) {
		t.Fatalf("got %d uses", len(uses))
	}
	for i, u := range uses {
		if got, _ := u.Attr("fill-opacity"); got != want[i] {
			t.Errorf("use %d fill-opacity = %q, want %q", i, got, want[i])
		}
	}
}

func TestOpacityKeepsSmallRatios(t *testing.T) {
	cfg := testConfig().WithMaxWeight(1e7)
	scene := Render(cfg, []sample{{0, 0, 1}, {100, 0, 3}})

	uses := scene.FindAll(svg.KindUse)
	want := []string{"0.0000001", "0.0000003"}
	if len(uses) != len(want) {
		t.Fatalf("got %d uses", len(uses))
	}
	for i, u := range uses {
		if got, _ := u.Attr("fill-opacity"); got != want[i] {
			t.Errorf("use %d fill-opacity = %q, want %q", i, got, want[i])
		}
	}
}

func TestClusteringApplied(t *testing.T) {
	scene := Render(testConfig().WithRadius(40), []sample{{0, 0, 1}, {10, 0, 3}})
	uses := scene.FindAll(svg.KindUse)
	if len(uses) != 1 {
		t.Fatalf("got %d uses, want 1", len(uses))
	}
	if x, _ := uses[0].Attr("x"); x != "7.5" {
		t.Errorf("x = %q, want 7.5", x)
	}
	if o, _ := uses[0].Attr("fill-opacity"); o != "4" {
		t.Errorf("fill-opacity = %q, want 4", o)
	}
}

func TestEmptyInput(t *testing.T) {
	scene := Render(testConfig(), nil)
	if n := len(scene.FindAll(svg.KindUse)); n != 0 {
		t.Errorf("got %d uses, want 0", n)
	}
	for _, role := range Roles {
		if scene.FindID(ID(role, "")) == nil {
			t.Errorf("missing definition %s", ID(role, ""))
		}
	}
	if f := scene.Children[1]; f.Kind != svg.KindGroup {
		t.Errorf("missing filtered group, got <%s>", f.Kind)
	}
}

func TestDeterministicOutput(t *testing.T) {
	recs := []sample{{3, 3, 1}, {90, 12, 2}, {4, 5, 1}, {300, 300, 1}}
	a := svg.Marshal(Render(testConfig(), recs))
	b := svg.Marshal(Render(testConfig(), recs))
	if string(a) != string(b) {
		t.Error("identical input produced different markup")
	}
}

func TestPointsNilMapper(t *testing.T) {
	if pts := Points(New[sample](nil, gradient.BlueRed), []sample{{1, 1, 1}}); pts != nil {
		t.Errorf("Points = %v, want nil", pts)
	}
}
