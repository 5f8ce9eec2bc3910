package gradient

import "testing"

func TestPaletteChannel(t *testing.T) {
	p := Palette{RGB(255, 0, 128), RGB(0, 64, 255)}

	red := p.Channel(Red)
	if red[0] != 255.0/256.0 || red[1] != 0 {
		t.Errorf("Channel(Red) = %v", red)
	}
	green := p.Channel(Green)
	if green[1] != 0.25 {
		t.Errorf("Channel(Green)[1] = %v, want 0.25", green[1])
	}
	blue := p.Channel(Blue)
	if blue[0] != 0.5 {
		t.Errorf("Channel(Blue)[0] = %v, want 0.5", blue[0])
	}
	for _, v := range append(append(red, green...), blue...) {
		if v < 0 || v > 1 {
			t.Fatalf("channel value %v outside [0, 1]", v)
		}
	}
}

func TestPaletteReversed(t *testing.T) {
	p := Palette{RGB(1, 0, 0), RGB(2, 0, 0), RGB(3, 0, 0)}
	r := p.Reversed()
	if r[0] != RGB(3, 0, 0) || r[2] != RGB(1, 0, 0) {
		t.Errorf("Reversed() = %v", r)
	}
	if p[0] != RGB(1, 0, 0) {
		t.Error("Reversed() modified the receiver")
	}
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"Blue Red", true},
		{"heated metal", true},
		{"heated-metal", true},
		{"  Visible_Spectrum ", true},
		{"Deep Sea", true},
		{"Rainbow", false},
		{"", false},
	}
	for _, tt := range tests {
		g, ok := Preset(tt.name)
		if ok != tt.ok {
			t.Errorf("Preset(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if ok && len(g) < 2 {
			t.Errorf("Preset(%q) has %d stops", tt.name, len(g))
		}
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	if len(names) != len(Presets) {
		t.Fatalf("PresetNames() len = %d, want %d", len(names), len(Presets))
	}
	if names[0] != "Blue Red" || names[1] != "Heated Metal" || names[2] != "Sunrise" {
		t.Errorf("PresetNames() order = %v", names)
	}
}
