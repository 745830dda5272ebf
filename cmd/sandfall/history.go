package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/platform/tui"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var (
	flagHistoryClear bool
	flagHistoryPrint bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [scene]",
	Short: "Browse recorded runs",
	Long: `Open the run history browser, optionally filtered to one scene.

A run is recorded when you leave a sandbox that has stepped at least once.

Examples:
  sandfall history
  sandfall history hourglass
  sandfall history --print
  sandfall history rain --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs (of one scene, or all)")
	historyCmd.Flags().BoolVar(&flagHistoryPrint, "print", false, "Print runs to stdout instead of opening the browser")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Runs to print with --print")
}

func runHistory(_ *cobra.Command, args []string) error {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			return fmt.Errorf("unknown scene %q (run 'sandfall list' to see available scenes)", sceneID)
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearRuns(sceneID); err != nil {
			return err
		}
		if sceneID == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs of %s.\n", sceneID)
		}
		return nil

	case flagHistoryPrint:
		return printHistory(store, sceneID, flagHistoryLimit)
	}

	cfg := runtimeConfig()
	_, err = tui.RunHistory(store, sceneID, cfg.ScreenW, cfg.ScreenH)
	return err
}

func printHistory(store *storage.Store, sceneID string, limit int) error {
	runs, err := store.RecentRuns(sceneID, limit)
	if err != nil {
		return err
	}

	title := "All scenes"
	if sceneID != "" {
		title = sceneID
	}
	fmt.Printf("Recent runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	// Print header
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %s\n", "Scene", "Ticks", "Pop", "Painted", "Date")
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %s\n", "-----", "-----", "---", "-------", "----")

	for _, r := range runs {
		fmt.Printf("  %-12s  %-8d  %-8d  %-8d  %s\n",
			r.SceneID, r.Ticks, r.Population, r.Painted, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if sceneID != "" {
		stats, err := store.GetSceneStats(sceneID)
		if err != nil {
			return err
		}
		printStats(stats)
		return nil
	}

	all, err := store.GetAllSceneStats()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s: ", id)
		printStats(all[id])
	}
	return nil
}

func printStats(stats *storage.SceneStats) {
	fmt.Printf("Runs: %d  Longest: %d ticks  Max population: %d  Avg population: %.0f\n",
		stats.Runs, stats.LongestRun, stats.MaxPopulation, stats.AvgPopulation)
}
