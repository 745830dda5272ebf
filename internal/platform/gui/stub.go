//go:build !ebiten

package gui

import (
	"errors"

	"github.com/vovakirdan/sandfall/internal/games/sandbox"
)

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("gui: built without the 'ebiten' tag; rebuild with -tags ebiten")

// Run always fails in the headless build.
func Run(*sandbox.Session, Options) error {
	return ErrNoGUI
}
