package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/scenes"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows built-in scenes and the scene files found in the user scenes directory.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	loader := scenes.Default(flagScenesDir)
	all, err := loader.LoadAll()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No scenes available.")
		return nil
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, sc := range all {
		if len(sc.ID) > maxIDLen {
			maxIDLen = len(sc.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Description")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----------")

	for _, sc := range all {
		size := "fit"
		if sc.Fixed() {
			size = fmt.Sprintf("%dx%d", sc.Width, sc.Height)
		}
		desc := sc.Description
		if desc == "" {
			desc = sc.Name
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, sc.ID, size, desc)
	}

	fmt.Println()
	fmt.Println("Run 'sandfall play <id>' to open a scene.")
	return nil
}
