// Package registry maps scene IDs to game factories. Built-in scenes
// register from init(); user scene files replace them at startup, so the
// platform never needs to know where a scene came from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sandfall/internal/core"
)

// Game is the core interface that every playable sandbox implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "hourglass").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display (e.g., "Hourglass").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again on restart.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one host frame.
	// Input is abstracted to platform-level actions (Paint, Pause, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (tick, population, paused).
	State() core.GameState
}

// Info describes a registered scene without instantiating it.
type Info struct {
	ID          string
	Title       string
	Description string
	Source      string // "builtin" or the file it was loaded from
}

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene. Panics if the ID is taken or empty.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty scene ID")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", info.ID))
	}
	entries[info.ID] = normalize(info, f)
}

// Replace registers a scene, overriding any existing one with the same ID.
// It reports whether an entry was overridden.
func Replace(info Info, f Factory) bool {
	mu.Lock()
	defer mu.Unlock()

	_, existed := entries[info.ID]
	entries[info.ID] = normalize(info, f)
	return existed
}

func normalize(info Info, f Factory) entry {
	if info.Title == "" {
		info.Title = info.ID
	}
	return entry{info: info, factory: f}
}

// Unregister removes a scene. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(entries, id)
}

// List returns every registered scene, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a scene.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
