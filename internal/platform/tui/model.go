package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sandfall/internal/config"
	"github.com/vovakirdan/sandfall/internal/core"
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/storage"
)

// statusFrames is how long a status message stays on the help line.
const statusFrames = 90

// Options configures a play session.
type Options struct {
	Store    *storage.Store  // Run history and snapshots; nil disables both
	Logger   *log.Logger     // nil discards
	Renderer *ScreenRenderer // nil renders for standard output
	Snapshot []string        // Glyph rows loaded after the first reset
	Player   string          // Shown in logs, e.g. the SSH user
	Menu     bool            // B/Esc leaves to the menu
	embedded bool            // Hosted by SessionModel; never calls tea.Quit on back
}

// snapshotter is implemented by games whose world can be saved as glyph rows.
type snapshotter interface {
	Snapshot() ([]string, uint64)
	Restore(rows []string) error
}

type statusMsg string

// Model is the Bubble Tea model for running one sandbox.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	logger      *log.Logger
	renderer    *ScreenRenderer
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	inputFrame  core.InputFrame
	gameState   core.GameState
	status      string
	statusTicks int
	quitting    bool
	backToMenu  bool
	runSaved    bool // Whether the run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = defaultRenderer()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		renderer:   renderer,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the sandbox.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "scene", m.game.ID(), "seed", m.config.Seed, "player", m.opts.Player)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if len(m.opts.Snapshot) > 0 {
		cmds = append(cmds, m.restore(m.opts.Snapshot))
	}
	return tea.Batch(cmds...)
}

// restore loads rows into the game and reports the outcome as a status.
func (m Model) restore(rows []string) tea.Cmd {
	snap, ok := m.game.(snapshotter)
	if !ok {
		return nil
	}
	if err := snap.Restore(rows); err != nil {
		m.logger.Error("restoring snapshot", "scene", m.game.ID(), "error", err)
		return func() tea.Msg { return statusMsg("snapshot not loaded: " + err.Error()) }
	}
	return func() tea.Msg { return statusMsg("snapshot loaded") }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.AddPointer(p)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case statusMsg:
		m.setStatus(string(msg))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && m.opts.Menu {
		m.finish()
		m.backToMenu = true
		if m.opts.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config = m.config.WithScreen(msg.Width, msg.Height)
	m.screen.Resize(msg.Width, msg.Height)

	// Screen-sized scenes restart at the new size; fixed ones are re-centred.
	m.game.Reset(m.config)
	return m, nil
}

// handleTick processes one host frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.SnapshotRequested {
		m.saveSnapshot()
	}
	if m.statusTicks > 0 {
		m.statusTicks--
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	if m.gameState.Done {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = statusFrames
}

// finish records the run once.
func (m *Model) finish() {
	if m.runSaved || m.gameState.Tick == 0 {
		return
	}
	m.runSaved = true

	m.logger.Info("session ended",
		"scene", m.game.ID(),
		"tick", m.gameState.Tick,
		"population", m.gameState.Population,
		"player", m.opts.Player,
	)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.RunEntry{
		SceneID:    m.game.ID(),
		Seed:       m.config.Seed,
		Ticks:      int64(m.gameState.Tick),
		Population: m.gameState.Population,
		Painted:    m.gameState.Painted,
	})
	if err != nil {
		m.logger.Error("saving run", "scene", m.game.ID(), "error", err)
	}
}

// saveSnapshot stores the current world under a timestamped name.
func (m *Model) saveSnapshot() {
	snap, ok := m.game.(snapshotter)
	if !ok {
		return
	}
	if m.opts.Store == nil {
		m.setStatus("no database: snapshot not saved")
		return
	}

	rows, tick := snap.Snapshot()
	name := fmt.Sprintf("%s-%s", m.game.ID(), time.Now().Format("20060102-150405"))
	if _, err := m.opts.Store.SaveSnapshot(storage.NewSnapshot(name, m.game.ID(), rows, int64(tick))); err != nil {
		m.logger.Error("saving snapshot", "name", name, "error", err)
		m.setStatus("snapshot failed: " + err.Error())
		return
	}
	m.logger.Info("snapshot saved", "name", name, "tick", tick)
	m.setStatus("saved snapshot " + name)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("creating screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("saving screenshot", "error", err)
		return
	}
	m.setStatus("screenshot " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.statusTicks > 0 {
		y := m.screen.Height() - 1
		m.screen.ClearRow(y)
		m.screen.DrawTextColored(0, y, m.status, core.ColorStatus)
	}

	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported sandbox state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for one sandbox. It reports whether
// the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to paint
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
