package core

// Fallback terminal size when the host cannot report one.
const (
	DefaultScreenW = 80
	DefaultScreenH = 24
)

// RuntimeConfig is what the host knows when a sandbox starts: the terminal
// size, its frame rate and the world seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Host frames per second; 0 lets the host pick
	Seed     int64 // 0 asks the host for a time-based seed
}

// NewRuntimeConfig builds a config, substituting the default size for
// non-positive dimensions.
func NewRuntimeConfig(w, h, rate int, seed int64) RuntimeConfig {
	if w <= 0 || h <= 0 {
		w, h = DefaultScreenW, DefaultScreenH
	}
	return RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: max(rate, 0), Seed: seed}
}

// Screen returns the terminal as a rectangle.
func (c RuntimeConfig) Screen() Rect {
	return NewRect(0, 0, c.ScreenW, c.ScreenH)
}

// WithScreen returns a copy sized for a resized terminal.
func (c RuntimeConfig) WithScreen(w, h int) RuntimeConfig {
	c.ScreenW, c.ScreenH = w, h
	return c
}

// GameState is the status a sandbox reports to the host after each frame.
type GameState struct {
	Tick       uint64 // Completed world steps
	Population int    // Non-empty cells
	Painted    int    // Cells written by the brush
	Paused     bool
	Done       bool // The player asked to leave
}

// StepResult is returned by Game.Step() after each host frame.
type StepResult struct {
	State GameState

	// SnapshotRequested is set when the player asked to save the world.
	SnapshotRequested bool
}
