package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/games/sandbox"
	"github.com/vovakirdan/sandfall/internal/platform/gui"
	"github.com/vovakirdan/sandfall/internal/scenes"
)

var (
	flagGUIScale  int
	flagGUIWidth  int
	flagGUIHeight int
)

var guiCmd = &cobra.Command{
	Use:   "gui <scene>",
	Short: "Open a scene in a pixel window",
	Long: `Open the scene in a desktop window with one square per cell.
Needs a binary built with -tags ebiten.

Controls:
  Mouse left/right - Paint/Erase
  Wheel / + -      - Grow/Shrink brush
  Tab / [ ]        - Next/Previous material
  Space/P          - Pause
  N                - Single step while paused
  < / >            - Slower/Faster
  C / R            - Clear / Reload the scene
  Q/Esc            - Quit

Examples:
  go build -tags ebiten ./cmd/sandfall && ./sandfall gui sandbox
  sandfall gui hourglass --scale 8`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationLogStderr: "true"},
	RunE:        runGUI,
}

func init() {
	guiCmd.Flags().IntVar(&flagGUIScale, "scale", 4, "Window pixels per cell")
	guiCmd.Flags().IntVar(&flagGUIWidth, "width", 200, "World width for scenes that fit the screen")
	guiCmd.Flags().IntVar(&flagGUIHeight, "height", 150, "World height for scenes that fit the screen")
}

func runGUI(_ *cobra.Command, args []string) error {
	sc, err := scenes.Default(flagScenesDir).LoadByID(args[0])
	if err != nil {
		return err
	}

	settings := sandbox.CurrentSettings()
	s, err := sandbox.NewSession(sandbox.Options{
		Catalog: settings.Catalog,
		Scene:   sc,
		Seed:    resolveSeed(),
		Brush:   settings.Brush,
		Speed:   settings.Speed,
	}, flagGUIWidth, flagGUIHeight)
	if err != nil {
		return err
	}

	logger.Info("opening window", "scene", sc.ID, "seed", s.Seed(), "size", [2]int{s.Width(), s.Height()})
	return gui.Run(s, gui.Options{
		Scale: flagGUIScale,
		TPS:   tickRate(),
		Title: "sandfall - " + sc.ID,
	})
}
