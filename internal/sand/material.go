package sand

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Catalog errors callers may branch on.
var (
	ErrNoColorBands    = errors.New("sand: material has no colour bands")
	ErrUnknownMaterial = errors.New("sand: unknown material")
)

// MaterialID indexes a material inside its Catalog.
type MaterialID uint16

// ColorBand is one weighted entry of a material's display palette.
type ColorBand struct {
	Hex    string
	Weight int
}

// Material is an immutable material definition.
type Material struct {
	Name     string
	Kind     Kind
	Glyph    rune // ASCII form used by snapshots and scene layouts
	Shade    rune // rune drawn by terminal renderers
	Movable  bool
	Velocity int
	Density  float64
	Colors   []ColorBand

	// Solid only.
	InertialResistance float64

	// Magic only.
	Live     int
	Duration int
	Ignite   string // product of a combustible neighbour, defaults to the material itself
	Vaporize string // product of a volatile neighbour, defaults to "steam"
	Melt     string // product of a liquefiable neighbour, defaults to "water"

	// Gas only.
	Dissipates bool

	Combustible bool
	Volatile    bool
	Liquefiable bool

	id       MaterialID
	ignite   MaterialID
	vaporize MaterialID
	melt     MaterialID
	palette  []colorful.Color
	weights  []int
	total    int
}

// ID returns the material's index in the catalog that resolved it.
func (m *Material) ID() MaterialID { return m.id }

// Palette returns the parsed colours of the material, in band order.
func (m *Material) Palette() []colorful.Color { return m.palette }

// roll picks a colour band using the band weights.
func (m *Material) roll(rng Rand) colorful.Color {
	if len(m.palette) == 1 {
		return m.palette[0]
	}
	n := rng.Intn(m.total)
	for i, w := range m.weights {
		if n < w {
			return m.palette[i]
		}
		n -= w
	}
	return m.palette[len(m.palette)-1]
}

// Catalog is a validated, immutable set of materials.
type Catalog struct {
	materials []Material
	byName    map[string]MaterialID
	byGlyph   map[rune]MaterialID
	empty     MaterialID
}

// NewCatalog validates defs and resolves reaction products.
// Exactly one material must be of KindEmpty.
func NewCatalog(defs []Material) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.New("sand: catalog has no materials")
	}
	if len(defs) > int(^MaterialID(0)) {
		return nil, fmt.Errorf("sand: catalog has %d materials", len(defs))
	}

	c := &Catalog{
		materials: make([]Material, len(defs)),
		byName:    make(map[string]MaterialID, len(defs)),
		byGlyph:   make(map[rune]MaterialID, len(defs)),
	}
	emptyCount := 0

	for i, def := range defs {
		m := def
		m.id = MaterialID(i)
		m.Colors = append([]ColorBand(nil), def.Colors...)

		if m.Name == "" {
			return nil, fmt.Errorf("sand: material %d has no name", i)
		}
		if _, dup := c.byName[m.Name]; dup {
			return nil, fmt.Errorf("sand: duplicate material %q", m.Name)
		}
		if m.Glyph == 0 {
			return nil, fmt.Errorf("sand: material %q has no glyph", m.Name)
		}
		if other, dup := c.byGlyph[m.Glyph]; dup {
			return nil, fmt.Errorf("sand: material %q reuses glyph %q of %q", m.Name, m.Glyph, c.materials[other].Name)
		}
		if m.Shade == 0 {
			m.Shade = m.Glyph
		}
		if err := validate(&m); err != nil {
			return nil, err
		}
		if err := m.parseColors(); err != nil {
			return nil, err
		}
		if m.Kind == KindEmpty {
			emptyCount++
			c.empty = m.id
		}

		c.materials[i] = m
		c.byName[m.Name] = m.id
		c.byGlyph[m.Glyph] = m.id
	}

	if emptyCount != 1 {
		return nil, fmt.Errorf("sand: catalog needs exactly one empty material, got %d", emptyCount)
	}

	for i := range c.materials {
		m := &c.materials[i]
		if m.Kind != KindMagic {
			continue
		}
		var err error
		if m.ignite, err = c.product(m, m.Ignite, m.Name); err != nil {
			return nil, err
		}
		if m.vaporize, err = c.product(m, m.Vaporize, "steam"); err != nil {
			return nil, err
		}
		if m.melt, err = c.product(m, m.Melt, "water"); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on a bad definition.
func MustCatalog(defs []Material) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(m *Material) error {
	if m.Kind == KindInvalid || m.Kind > KindMagic {
		return fmt.Errorf("sand: material %q has invalid kind", m.Name)
	}
	if m.Velocity < 0 {
		return fmt.Errorf("sand: material %q has negative velocity %d", m.Name, m.Velocity)
	}
	if m.InertialResistance < 0 || m.InertialResistance > 1 {
		return fmt.Errorf("sand: material %q inertial resistance %.2f outside [0,1]", m.Name, m.InertialResistance)
	}
	if m.Kind == KindMagic {
		if m.Live <= 0 {
			return fmt.Errorf("sand: magic material %q needs live > 0", m.Name)
		}
		if m.Duration < 0 {
			return fmt.Errorf("sand: magic material %q has negative duration", m.Name)
		}
	}
	return nil
}

func (m *Material) parseColors() error {
	if len(m.Colors) == 0 {
		return fmt.Errorf("%w: %q", ErrNoColorBands, m.Name)
	}
	m.palette = make([]colorful.Color, len(m.Colors))
	m.weights = make([]int, len(m.Colors))
	m.total = 0
	for i, band := range m.Colors {
		col, err := colorful.Hex(band.Hex)
		if err != nil {
			return fmt.Errorf("sand: material %q colour %q: %w", m.Name, band.Hex, err)
		}
		w := band.Weight
		if w == 0 {
			w = 1
		}
		if w < 0 {
			return fmt.Errorf("sand: material %q colour %q has negative weight", m.Name, band.Hex)
		}
		m.palette[i] = col
		m.weights[i] = w
		m.total += w
	}
	return nil
}

// product resolves a reaction product. An unset name falls back to def, and
// a missing default yields the empty material.
func (c *Catalog) product(m *Material, name, def string) (MaterialID, error) {
	if name != "" {
		id, ok := c.byName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q (product of %q)", ErrUnknownMaterial, name, m.Name)
		}
		return id, nil
	}
	if id, ok := c.byName[def]; ok {
		return id, nil
	}
	return c.empty, nil
}

// Empty returns the id of the empty material.
func (c *Catalog) Empty() MaterialID { return c.empty }

// Len returns the number of materials.
func (c *Catalog) Len() int { return len(c.materials) }

// Get returns the material with the given id. It panics on a foreign id.
func (c *Catalog) Get(id MaterialID) *Material { return &c.materials[id] }

// Lookup finds a material by name.
func (c *Catalog) Lookup(name string) (MaterialID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// ByGlyph finds a material by its ASCII glyph.
func (c *Catalog) ByGlyph(r rune) (MaterialID, bool) {
	id, ok := c.byGlyph[r]
	return id, ok
}

// Materials returns a copy of all definitions in catalog order.
func (c *Catalog) Materials() []Material {
	out := make([]Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// Spawnable returns the ids of every non-empty material, in catalog order.
func (c *Catalog) Spawnable() []MaterialID {
	ids := make([]MaterialID, 0, len(c.materials)-1)
	for _, m := range c.materials {
		if m.Kind != KindEmpty {
			ids = append(ids, m.id)
		}
	}
	return ids
}
