package sand

// Element is the content of one cell. Grids own elements by value.
type Element struct {
	Kind     Kind
	Material MaterialID
	X, Y     int
	Movable  bool
	Velocity int
	Density  float64

	solid solidState
	magic magicState
}

type solidState struct {
	freeFalling        bool
	inertialResistance float64
}

type magicState struct {
	live     int
	duration int
}

// newElement builds a fresh element of material m at (x, y).
func newElement(m *Material, x, y int) Element {
	e := Element{
		Kind:     m.Kind,
		Material: m.id,
		X:        x,
		Y:        y,
		Movable:  m.Movable,
		Velocity: m.Velocity,
		Density:  m.Density,
	}
	switch m.Kind {
	case KindSolid:
		e.solid = solidState{freeFalling: true, inertialResistance: m.InertialResistance}
	case KindMagic:
		e.magic = magicState{live: m.Live, duration: m.Duration}
	}
	return e
}

// FreeFalling reports whether a solid element is in its falling state.
// It is false for every other kind.
func (e Element) FreeFalling() bool {
	return e.Kind == KindSolid && e.solid.freeFalling
}

// Live returns the remaining ticks of a magic element, 0 for other kinds.
func (e Element) Live() int {
	if e.Kind != KindMagic {
		return 0
	}
	return e.magic.live
}
