package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved snapshots",
	Long: `Snapshots are worlds saved with S inside a sandbox or with
'sandfall run --save-snapshot'. Open one with 'sandfall play <scene> --snapshot <name>'.

Examples:
  sandfall snapshots
  sandfall snapshots show puddles
  sandfall snapshots delete puddles`,
	Args: cobra.NoArgs,
	RunE: runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a snapshot's glyph rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsShow,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsDelete,
}

func init() {
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
}

func runSnapshotsList(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.ListSnapshots()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots saved yet.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, s := range snaps {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %-12s  %-7s  %-8s  %s\n", maxNameLen, "Name", "Scene", "Size", "Tick", "Saved")
	fmt.Printf("  %-*s  %-12s  %-7s  %-8s  %s\n", maxNameLen, "----", "-----", "----", "----", "-----")
	for _, s := range snaps {
		fmt.Printf("  %-*s  %-12s  %-7s  %-8d  %s\n", maxNameLen, s.Name, s.SceneID,
			fmt.Sprintf("%dx%d", s.Width, s.Height), s.Tick, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSnapshotsShow(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := loadSnapshotRows(store, args[0])
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Println(r)
	}
	return nil
}

func runSnapshotsDelete(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.DeleteSnapshot(args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("snapshot %q not found", args[0])
	}
	fmt.Printf("Deleted snapshot %s.\n", args[0])
	return nil
}
