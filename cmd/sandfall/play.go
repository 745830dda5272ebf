package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var flagPlaySnapshot string

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Open a scene in the terminal",
	Long: `Open the specified scene and start simulating.

Controls:
  Arrows/WASD      - Move the brush
  Mouse left/right - Paint/Erase
  Space / X        - Paint/Erase at the brush
  Tab / [ ]        - Next/Previous material
  + / -            - Grow/Shrink brush
  < / >            - Slower/Faster
  P / N            - Pause / Single step while paused
  C                - Clear the world
  S                - Save a snapshot
  R                - Reload the scene
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Speed options:
  slow   - One step every third frame
  normal - One step per frame
  fast   - Two steps per frame
  turbo  - Four steps per frame

Examples:
  sandfall play sandbox
  sandfall play hourglass --speed slow
  sandfall play rain --seed 42
  sandfall play sandbox --snapshot sandbox-20250101-120000`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySnapshot, "snapshot", "", "Start from a saved snapshot")
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := args[0]

	// Check if scene exists
	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q (run 'sandfall list' to see available scenes)", sceneID)
	}

	game, err := registry.Create(sceneID)
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}

	// Continue without storage - the sandbox still works
	store, _ := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{Store: store, Logger: logger}
	if flagPlaySnapshot != "" {
		rows, snapErr := loadSnapshotRows(store, flagPlaySnapshot)
		if snapErr != nil {
			return snapErr
		}
		opts.Snapshot = rows
	}

	if _, err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running sandbox: %w", err)
	}
	return nil
}

// loadSnapshotRows fetches a snapshot's glyph rows by name.
func loadSnapshotRows(store *storage.Store, name string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot %q: no history database", name)
	}
	snap, err := store.LoadSnapshot(name)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("snapshot %q not found (run 'sandfall snapshots' to list them)", name)
	}
	return snap.Rows(), nil
}
