// Package sand implements a tick-driven falling-sand automaton.
//
// A Grid holds exactly one Element per cell. Each call to World.Step sweeps
// the grid once, bottom row first, and lets every non-empty element move or
// react according to its Kind. All mutation goes through Grid.Swap and
// Grid.Replace, which mark the touched coordinates as visited so that no cell
// takes part in more than one move per tick.
//
// The package has no terminal or graphics dependencies; hosts read the grid
// through World.Query and drive it through Build, Spawn and Step.
package sand

// Kind is the behavioural class of a material.
type Kind uint8

const (
	// KindInvalid is the zero value. A cell holding it is an invariant
	// violation and aborts the step.
	KindInvalid Kind = iota
	KindEmpty
	KindLiquid
	KindSolid
	KindGas
	KindMagic
)

// String returns the lower-case name used in config files.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindLiquid:
		return "liquid"
	case KindSolid:
		return "solid"
	case KindGas:
		return "gas"
	case KindMagic:
		return "magic"
	default:
		return "invalid"
	}
}

// ParseKind converts a config name into a Kind.
// Unknown names return KindInvalid and false.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "empty":
		return KindEmpty, true
	case "liquid":
		return KindLiquid, true
	case "solid":
		return KindSolid, true
	case "gas":
		return KindGas, true
	case "magic", "fire":
		return KindMagic, true
	default:
		return KindInvalid, false
	}
}
