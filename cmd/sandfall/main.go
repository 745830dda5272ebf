// sandfall is a falling-sand cellular automaton for the terminal.
//
// Usage:
//
//	sandfall list               - List available scenes
//	sandfall materials          - Show the material catalog
//	sandfall play <scene>       - Open a scene in the terminal
//	sandfall menu               - Pick scenes interactively
//	sandfall history [scene]    - Browse recorded runs
//	sandfall run <scene>        - Step a scene headless and print the result
//	sandfall snapshots          - List or delete saved snapshots
//	sandfall serve              - Start SSH server for remote sandboxes
//	sandfall gui <scene>        - Open a scene in a pixel window (ebiten build)
//
// Global flags:
//
//	--fps <rate>      - Host frame rate (default: from config, 30)
//	--seed <value>    - RNG seed for reproducible worlds
//	--db <path>       - Database path (default: ~/.sandfall/sandfall.db)
//	--config <path>   - Sandbox config YAML
//	--speed <preset>  - slow, normal, fast or turbo
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/games/sandbox"
	"github.com/vovakirdan/sandfall/internal/scenes"
	"github.com/vovakirdan/sandfall/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagSpeed     string
	flagScenesDir string
	flagLogLevel  string
	flagLogFile   string
)

var (
	sandboxCfg config.SandboxConfig
	logger     = log.New(io.Discard)
	logFile    *os.File
)

// annotationLogStderr marks commands that log to stderr when no log file is set.
const annotationLogStderr = "log-stderr"

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandfall",
	Short: "Sandfall - a falling-sand sandbox in your terminal",
	Long: `Sandfall simulates sand, water, oil, gas and fire on a grid of cells.
Paint materials with the keyboard or mouse and watch them fall, flow,
rise and burn.

Available commands:
  list       - Show all available scenes
  materials  - Show the material catalog
  play       - Open a scene directly
  menu       - Interactive scene picker
  history    - Browse recorded runs
  run        - Step a scene without a terminal UI
  snapshots  - Manage saved snapshots
  serve      - Start SSH server for remote sandboxes
  gui        - Open a scene in a pixel window

Examples:
  sandfall list
  sandfall play hourglass
  sandfall play sandbox --speed fast
  sandfall run bonfire --steps 200
  sandfall serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Host frame rate (0 = config tick rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, else random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to sandbox config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, turbo")
	rootCmd.PersistentFlags().StringVar(&flagScenesDir, "scenes", config.ScenesDir(), "Directory of user scene files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(guiCmd)
}

// setup builds the logger, loads the sandbox config and registers user scenes.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	logger, err = newLogger(cmd)
	if err != nil {
		return err
	}

	sandboxCfg, err = config.LoadSandbox(flagConfig)
	if err != nil {
		return err
	}
	if flagSpeed != "" {
		preset, speedErr := config.ParseSpeed(flagSpeed)
		if speedErr != nil {
			return speedErr
		}
		config.ApplySpeedPreset(&sandboxCfg, preset)
	}
	if err := sandbox.Configure(sandboxCfg); err != nil {
		return err
	}

	logger.Debug("config loaded", "speed", sandboxCfg.Engine.Speed, "materials", len(sandboxCfg.Materials))

	if flagScenesDir == "" {
		return nil
	}
	loader := scenes.NewLoader(flagScenesDir)
	loader.OnSkip = func(path string, err error) {
		logger.Warn("skipping scene file", "path", path, "error", err)
	}
	n, err := sandbox.RegisterScenes(loader)
	if err != nil {
		return fmt.Errorf("loading scenes from %s: %w", flagScenesDir, err)
	}
	logger.Debug("user scenes registered", "dir", flagScenesDir, "count", n)
	return nil
}

// newLogger picks the log destination. Full-screen commands never log to
// the terminal they draw on.
func newLogger(cmd *cobra.Command) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, fmt.Errorf("opening log file: %w", openErr)
		}
		logFile = f
		w = f
	case cmd.Annotations[annotationLogStderr] != "":
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sandfall",
		Level:           level,
	}), nil
}

// runtimeConfig sizes the world to the terminal.
func runtimeConfig() core.RuntimeConfig {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 0, 0
	}
	return core.NewRuntimeConfig(w, h, tickRate(), resolveSeed())
}

func tickRate() int {
	if flagFPS > 0 {
		return flagFPS
	}
	return sandboxCfg.Engine.TickRate
}

func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if sandboxCfg.Engine.Seed != 0 {
		return sandboxCfg.Engine.Seed
	}
	return time.Now().UnixNano()
}

// openStore opens the history database. Interactive commands keep working
// without one, so callers decide whether a failure is fatal.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil, err
	}
	return store, nil
}
