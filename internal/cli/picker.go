package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/heatsvg/pkg/gradient"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// PresetPickerModel is the bubbletea model for choosing a gradient preset.
type PresetPickerModel struct {
	Presets  []gradient.NamedGradient
	Cursor   int
	Selected *gradient.NamedGradient
	Width    int
}

// NewPresetPickerModel starts with the cursor on the preset named current,
// or on the first preset.
func NewPresetPickerModel(presets []gradient.NamedGradient, current string) PresetPickerModel {
	m := PresetPickerModel{Presets: presets, Width: swatchWidth}
	if g, ok := gradient.Preset(current); ok {
		for i, p := range presets {
			if slices.Equal(p.Gradient, g) {
				m.Cursor = i
				break
			}
		}
	}
	return m
}

func (m PresetPickerModel) Init() tea.Cmd {
	return nil
}

func (m PresetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Presets) - 1
		case "enter":
			if len(m.Presets) == 0 {
				return m, tea.Quit
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Width = min(swatchWidth, max(8, msg.Width-30))
	}
	return m, nil
}

func (m PresetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Gradient"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Presets {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-18s", cursor, p.Name)))
		b.WriteString(" ")
		b.WriteString(swatch(p.Gradient, m.Width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))
	return b.String()
}

// runPicker shows the picker on stderr and returns the chosen preset name,
// or "" when the user quits.
func runPicker(current string) (string, error) {
	final, err := tea.NewProgram(NewPresetPickerModel(gradient.Presets, current), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("preset picker: %w", err)
	}
	if m, ok := final.(PresetPickerModel); ok && m.Selected != nil {
		return m.Selected.Name, nil
	}
	return "", nil
}
