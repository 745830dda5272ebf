package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start sandfall with a scene picker menu",
	Long: `Start sandfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a scene.
Esc inside a scene returns to the menu; Tab opens the run history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open scene
  Tab/H        - Run history
  Q            - Quit

Examples:
  sandfall menu
  sandfall menu --fps 60
  sandfall menu --db ./sandfall.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	// Continue without storage
	store, _ := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, "", cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.SceneID)
		if err != nil {
			logger.Error("creating scene", "scene", menuResult.SceneID, "error", err)
			continue
		}

		// Fresh seed per scene unless one was pinned
		if flagSeed == 0 && sandboxCfg.Engine.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger, Menu: true})
		if err != nil {
			return fmt.Errorf("running sandbox: %w", err)
		}
		if !back {
			return nil
		}
	}
}
