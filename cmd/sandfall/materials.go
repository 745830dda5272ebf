package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/games/sandbox"
	"github.com/vovakirdan/sandfall/internal/sand"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Show the material catalog",
	Long: `Lists every material of the loaded config with its kind, glyphs,
density, colours and reactions.

The glyph is what scene layouts and snapshots use; the shade is what the
terminal draws.`,
	RunE: runMaterials,
}

func runMaterials(_ *cobra.Command, _ []string) error {
	cat := sandbox.CurrentSettings().Catalog
	mats := cat.Materials()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Name", "Kind", "Glyph", "Shade", "Density", "Colours", "Traits").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range mats {
		m := &mats[i]
		t.Row(
			m.Name,
			m.Kind.String(),
			string(m.Glyph),
			string(m.Shade),
			strconv.FormatFloat(m.Density, 'g', -1, 64),
			swatches(m),
			traits(m),
		)
	}

	fmt.Println(t)
	fmt.Printf("%d materials, %d paintable\n", cat.Len(), len(cat.Spawnable()))
	return nil
}

// swatches renders one coloured block per colour band.
func swatches(m *sand.Material) string {
	var b strings.Builder
	for _, c := range m.Palette() {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██"))
	}
	return b.String()
}

func traits(m *sand.Material) string {
	var out []string
	if m.Movable {
		out = append(out, "movable")
	}
	if m.Combustible {
		out = append(out, "combustible")
	}
	if m.Volatile {
		out = append(out, "volatile")
	}
	if m.Liquefiable {
		out = append(out, "liquefiable")
	}
	if m.Dissipates {
		out = append(out, "dissipates")
	}
	if m.Kind == sand.KindMagic {
		out = append(out, fmt.Sprintf("live %d", m.Live))
	}
	return strings.Join(out, ", ")
}
