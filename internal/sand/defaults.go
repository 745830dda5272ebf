package sand

// DefaultMaterials returns the built-in material set.
func DefaultMaterials() []Material {
	return []Material{
		{
			Name: "empty", Kind: KindEmpty, Glyph: '.', Shade: ' ',
			Movable: true, Density: -1,
			Colors: []ColorBand{{Hex: "#000000", Weight: 1}},
		},
		{
			Name: "water", Kind: KindLiquid, Glyph: 'w', Shade: '~',
			Movable: true, Velocity: 4, Density: 1.0,
			Colors:   []ColorBand{{Hex: "#2486b9", Weight: 1}},
			Volatile: true,
		},
		{
			Name: "oil", Kind: KindLiquid, Glyph: 'o', Shade: '≈',
			Movable: true, Velocity: 4, Density: 0.9,
			Colors:      []ColorBand{{Hex: "#7c5136", Weight: 1}},
			Combustible: true,
		},
		{
			Name: "sand", Kind: KindSolid, Glyph: 's', Shade: '▒',
			Movable: true, Velocity: 4, Density: 1.2, InertialResistance: 0.5,
			Colors: []ColorBand{{Hex: "#f9c116", Weight: 2}, {Hex: "#d6a01d", Weight: 1}},
		},
		{
			Name: "snow", Kind: KindSolid, Glyph: '*', Shade: '*',
			Movable: true, Velocity: 4, Density: 0.8, InertialResistance: 0.7,
			Colors:      []ColorBand{{Hex: "#baccd9", Weight: 1}},
			Liquefiable: true,
		},
		{
			Name: "stone", Kind: KindSolid, Glyph: '#', Shade: '█',
			Density: 10,
			Colors:  []ColorBand{{Hex: "#0f1423", Weight: 1}},
		},
		{
			Name: "wood", Kind: KindSolid, Glyph: 'W', Shade: '▓',
			Density: 10,
			Colors:      []ColorBand{{Hex: "#806332", Weight: 1}, {Hex: "#553b18", Weight: 1}},
			Combustible: true,
		},
		{
			Name: "marble", Kind: KindSolid, Glyph: 'm', Shade: '▚',
			Density: 10,
			Colors: []ColorBand{
				{Hex: "#474747", Weight: 1},
				{Hex: "#565555", Weight: 1},
				{Hex: "#777777", Weight: 1},
			},
		},
		{
			Name: "steam", Kind: KindGas, Glyph: 'v', Shade: '░',
			Movable: true, Velocity: 4, Density: 0.5,
			Colors: []ColorBand{{Hex: "#cdd1d3", Weight: 1}},
		},
		{
			Name: "smoke", Kind: KindGas, Glyph: '%', Shade: '∙',
			Movable: true, Velocity: 3, Density: 0.3,
			Colors:     []ColorBand{{Hex: "#5a5a5a", Weight: 2}, {Hex: "#3e3e3e", Weight: 1}},
			Dissipates: true,
		},
		{
			Name: "fire", Kind: KindMagic, Glyph: 'f', Shade: '^',
			Movable: true, Velocity: 2, Density: 0,
			Colors:   []ColorBand{{Hex: "#eccb83", Weight: 1}, {Hex: "#e07e38", Weight: 1}},
			Live:     120,
			Duration: 6,
			Vaporize: "steam",
			Melt:     "water",
		},
	}
}

// DefaultCatalog returns a catalog of DefaultMaterials.
func DefaultCatalog() *Catalog {
	return MustCatalog(DefaultMaterials())
}
