package config

import (
	_ "embed"

	"github.com/vovakirdan/sandfall/internal/sand"
)

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultSandboxConfig returns the default sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	defs := sand.DefaultMaterials()
	materials := make([]MaterialConfig, len(defs))
	for i, m := range defs {
		materials[i] = FromMaterial(m)
	}

	return SandboxConfig{
		Engine: EngineConfig{
			TickRate: 30,
			Speed:    string(SpeedNormal),
		},
		Brush: BrushConfig{
			Radius:    1,
			MaxRadius: 6,
			Material:  "sand",
		},
		Materials: materials,
	}
}

// GetDefaultYAML returns the embedded default sandbox YAML.
func GetDefaultYAML() []byte {
	return defaultSandboxYAML
}
