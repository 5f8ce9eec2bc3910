package gradient

import "strings"

// Built-in gradients, low density first.
var (
	BlueRed = Gradient{
		{0, RGB(0, 0, 255)},
		{1, RGB(255, 0, 0)},
	}

	HeatedMetal = Gradient{
		{0, RGB(0, 0, 0)},
		{0.4, RGB(128, 0, 128)},
		{0.6, RGB(255, 0, 0)},
		{0.8, RGB(255, 255, 0)},
		{1, RGB(255, 255, 255)},
	}

	Sunrise = Gradient{
		{0, RGB(255, 0, 0)},
		{0.66, RGB(255, 255, 0)},
		{1, RGB(255, 255, 255)},
	}

	Incandescent = Gradient{
		{0, RGB(0, 0, 0)},
		{0.33, RGB(139, 0, 0)},
		{0.66, RGB(255, 255, 0)},
		{1, RGB(255, 255, 255)},
	}

	SteppedColors = Gradient{
		{0, RGB(0, 0, 128)},
		{0.25, RGB(0, 0, 128)},
		{0.26, RGB(0, 128, 0)},
		{0.5, RGB(0, 128, 0)},
		{0.51, RGB(255, 255, 0)},
		{0.75, RGB(255, 255, 0)},
		{0.76, RGB(255, 0, 0)},
		{1, RGB(255, 0, 0)},
	}

	VisibleSpectrum = Gradient{
		{0, RGB(255, 0, 255)},
		{0.25, RGB(0, 0, 255)},
		{0.5, RGB(0, 255, 0)},
		{0.75, RGB(255, 255, 0)},
		{1, RGB(255, 0, 0)},
	}

	DeepSea = Gradient{
		{0, RGB(0, 0, 0)},
		{0.6, RGB(24, 53, 103)},
		{0.75, RGB(46, 100, 158)},
		{0.9, RGB(23, 173, 203)},
		{1, RGB(0, 250, 250)},
	}
)

// NamedGradient pairs a preset with its display name.
type NamedGradient struct {
	Name     string
	Gradient Gradient
}

// Presets lists the built-in gradients in display order.
var Presets = []NamedGradient{
	{"Blue Red", BlueRed},
	{"Heated Metal", HeatedMetal},
	{"Sunrise", Sunrise},
	{"Incandescent", Incandescent},
	{"Stepped Colors", SteppedColors},
	{"Visible Spectrum", VisibleSpectrum},
	{"Deep Sea", DeepSea},
}

// Preset looks up a built-in gradient by name, ignoring case, surrounding
// space, and the difference between spaces, dashes and underscores
// ("heated-metal" finds "Heated Metal").
func Preset(name string) (Gradient, bool) {
	key := presetKey(name)
	for _, p := range Presets {
		if presetKey(p.Name) == key {
			return p.Gradient, true
		}
	}
	return nil, false
}

// PresetNames returns the display names of all presets in order.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

func presetKey(name string) string {
	r := strings.NewReplacer("-", " ", "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(r.Replace(name))), " ")
}
