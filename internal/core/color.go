package core

// Color is the UI role of a screen cell. Materials carry their own hex
// colours in Cell.Hex; roles cover everything drawn around the world.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHUD           // Status bar text
	ColorCursor        // Brush position
	ColorHelp          // Key hints
	ColorStatus        // Transient confirmations
	ColorWarning       // Paused marker, size hints
	ColorError         // Scene and config failures
	ColorFrame         // Border around fixed-size worlds
)

// Cell is one screen position. A non-empty Hex ("#rrggbb") overrides Color
// on terminals that support true colour.
type Cell struct {
	Rune  rune
	Color Color
	Hex   string
}

// SameStyle reports whether two cells can share one styled run.
func (c Cell) SameStyle(o Cell) bool {
	return c.Color == o.Color && c.Hex == o.Hex
}
