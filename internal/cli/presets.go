package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/pipeline"
)

const swatchWidth = 32

func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in gradient presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return writePresetsJSON()
			}
			fmt.Println(presetTable(gradient.Presets))
			printNextStep("Use one", `heatsvg render data.csv --preset "Heated Metal"`)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively and print its name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := runPicker("")
			if err != nil {
				return err
			}
			if name != "" {
				fmt.Println(name)
			}
			return nil
		},
	})

	return cmd
}

type presetJSON struct {
	Name  string              `json:"name"`
	Stops []pipeline.StopSpec `json:"stops"`
}

func writePresetsJSON() error {
	out := make([]presetJSON, len(gradient.Presets))
	for i, p := range gradient.Presets {
		out[i] = presetJSON{Name: p.Name, Stops: pipeline.Stops(p.Gradient)}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// presetTable renders presets as a bordered table with a color swatch each.
func presetTable(presets []gradient.NamedGradient) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		rows[i] = []string{p.Name, stopSummary(p.Gradient), swatch(p.Gradient, swatchWidth)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Stops", "Gradient").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

func stopSummary(g gradient.Gradient) string {
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = s.Color.Hex()
	}
	return strings.Join(parts, " ")
}

func completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return gradient.PresetNames(), cobra.ShellCompDirectiveNoFileComp
}
