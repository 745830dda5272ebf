package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSandbox loads the sandbox configuration.
// Search order: customPath -> ~/.sandfall/configs/sandbox.yaml -> ./configs/sandbox.yaml -> embedded default
func LoadSandbox(customPath string) (SandboxConfig, error) {
	var cfg SandboxConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return finish(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sandbox.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return finish(cfg, userCfgPath)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sandbox.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return finish(cfg, "configs/sandbox.yaml")
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSandboxYAML, &cfg); err != nil {
		return DefaultSandboxConfig(), nil // Fallback to hardcoded if embed fails
	}
	return finish(cfg, "embedded defaults")
}

// finish applies defaults and validates a decoded config.
func finish(cfg SandboxConfig, source string) (SandboxConfig, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// ApplySpeedPreset overrides the configured speed.
func ApplySpeedPreset(cfg *SandboxConfig, preset SpeedPreset) {
	cfg.Engine.Speed = string(preset)
}

// DataDir returns ~/.sandfall, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandfall")
}

// ScenesDir returns the directory user scenes are loaded from.
func ScenesDir() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "scenes")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
