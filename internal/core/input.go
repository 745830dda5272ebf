package core

// Action represents a semantic sandbox action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow - move cursor up
	ActionDown                // S, Down arrow - move cursor down
	ActionLeft                // A, Left arrow - move cursor left
	ActionRight               // D, Right arrow - move cursor right
	ActionPaint               // Space - paint with the selected material
	ActionErase               // X, Backspace - erase under the brush
	ActionNextMaterial        // Tab, ] - select next material
	ActionPrevMaterial        // Shift+Tab, [ - select previous material
	ActionBrushGrow           // + - larger brush
	ActionBrushShrink         // - - smaller brush
	ActionFaster              // > - faster speed preset
	ActionSlower              // < - slower speed preset
	ActionClear               // C - clear the grid
	ActionStep                // N - single step while paused
	ActionSnapshot            // Shift+S - save a named snapshot
	ActionConfirm             // Enter - confirm selection in menu
	ActionBack                // B, Escape - go back to menu
	ActionRestart             // R key - reload the scene
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause simulation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPaint:
		return "Paint"
	case ActionErase:
		return "Erase"
	case ActionNextMaterial:
		return "NextMaterial"
	case ActionPrevMaterial:
		return "PrevMaterial"
	case ActionBrushGrow:
		return "BrushGrow"
	case ActionBrushShrink:
		return "BrushShrink"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionClear:
		return "Clear"
	case ActionStep:
		return "Step"
	case ActionSnapshot:
		return "Snapshot"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerButton identifies which mouse button a pointer event carries.
type PointerButton int

const (
	PointerNone  PointerButton = iota
	PointerPaint               // Left button
	PointerErase               // Right button
)

// Pointer is a mouse event in screen coordinates.
type Pointer struct {
	X, Y   int
	Button PointerButton
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointers holds mouse events in arrival order.
	Pointers []Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer records a mouse event.
func (f *InputFrame) AddPointer(p Pointer) {
	f.Pointers = append(f.Pointers, p)
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointers) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointers = append([]Pointer(nil), f.Pointers...)
	return clone
}
