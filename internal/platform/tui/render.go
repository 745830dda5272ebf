package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sandfall/internal/core"
)

// paletteCodes maps UI roles to ANSI 256-color codes.
var paletteCodes = map[core.Color]string{
	core.ColorHUD:     "14",
	core.ColorCursor:  "15",
	core.ColorHelp:    "245",
	core.ColorStatus:  "10",
	core.ColorWarning: "11",
	core.ColorError:   "9",
	core.ColorFrame:   "240",
}

// ScreenRenderer converts Screen buffers to styled strings for one output.
// Styles are cached per color; a ScreenRenderer is safe for concurrent use.
type ScreenRenderer struct {
	lg *lipgloss.Renderer

	mu      sync.Mutex
	palette map[core.Color]lipgloss.Style
	hex     map[string]lipgloss.Style
}

// NewScreenRenderer creates a renderer for the given lipgloss output.
// A nil renderer means the process's standard output.
func NewScreenRenderer(lg *lipgloss.Renderer) *ScreenRenderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	r := &ScreenRenderer{
		lg:      lg,
		palette: make(map[core.Color]lipgloss.Style, len(paletteCodes)+1),
		hex:     make(map[string]lipgloss.Style),
	}
	r.palette[core.ColorDefault] = lg.NewStyle()
	for c, code := range paletteCodes {
		r.palette[c] = lg.NewStyle().Foreground(lipgloss.Color(code))
	}
	return r
}

// style returns the style for a cell. Hex colors win over palette colors.
func (r *ScreenRenderer) style(c core.Cell) lipgloss.Style {
	if c.Hex != "" {
		st, ok := r.hex[c.Hex]
		if !ok {
			st = r.lg.NewStyle().Foreground(lipgloss.Color(c.Hex))
			r.hex[c.Hex] = st
		}
		return st
	}
	st, ok := r.palette[c.Color]
	if !ok {
		return r.palette[core.ColorDefault]
	}
	return st
}

// Render converts a Screen to a styled string.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (r *ScreenRenderer) Render(s *core.Screen) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same style for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !cell.SameStyle(start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultRenderer = sync.OnceValue(func() *ScreenRenderer {
	return NewScreenRenderer(nil)
})
