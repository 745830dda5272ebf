package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sandfall/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to sandbox actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionPaint, false
	case "x", "backspace", "delete":
		return core.ActionErase, false
	case "tab", "]":
		return core.ActionNextMaterial, false
	case "shift+tab", "[":
		return core.ActionPrevMaterial, false
	case "+", "=":
		return core.ActionBrushGrow, false
	case "-", "_":
		return core.ActionBrushShrink, false
	case ">", ".":
		return core.ActionFaster, false
	case "<", ",":
		return core.ActionSlower, false
	case "c":
		return core.ActionClear, false
	case "n":
		return core.ActionStep, false
	case "S":
		return core.ActionSnapshot, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse translates a mouse message to a pointer event. Left button
// paints, right button erases; presses and drags both count.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	if msg.Action == tea.MouseActionRelease {
		return core.Pointer{}, false
	}

	p := core.Pointer{X: msg.X, Y: msg.Y}
	switch msg.Button {
	case tea.MouseButtonLeft:
		p.Button = core.PointerPaint
	case tea.MouseButtonRight:
		p.Button = core.PointerErase
	default:
		return core.Pointer{}, false
	}
	return p, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionHistory
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}
