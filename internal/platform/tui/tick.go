// Package tui provides the Bubble Tea integration for sandfall.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Host frame rate bounds.
const (
	defaultFrameRate = 30
	maxFrameRate     = 120
)

// TickMsg is sent to trigger a host frame.
type TickMsg time.Time

// frameInterval converts a frame rate to the delay between frames.
// Non-positive rates use the default.
func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultFrameRate
	}
	rate = min(rate, maxFrameRate)
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next host frame.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
