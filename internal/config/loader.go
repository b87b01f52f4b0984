package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTuning loads the field tuning table.
// Search order: customPath -> ~/.beltrunner/config.yaml -> ./configs/beltrunner.yaml -> embedded default
func LoadTuning(customPath string) (TuningConfig, error) {
	var cfg TuningConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/beltrunner.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		return DefaultTuningConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beltrunner", "config.yaml")
}

// ApplyDanger overwrites the pirate pacing and ore quality with the preset
// anchors. Normal and custom keep the loaded values as they are.
func ApplyDanger(cfg *TuningConfig, preset DangerPreset) {
	switch preset {
	case DangerEasy:
		cfg.Pirate = PirateSection{TriggerMin: 40, TriggerMax: 70, BoardTime: 100, Hull: 50, Speed: 12}
		cfg.Field.OreBias = 0.1
	case DangerHard:
		cfg.Pirate = PirateSection{TriggerMin: 12, TriggerMax: 25, BoardTime: 55, Hull: 80, Speed: 16}
		cfg.Field.OreBias = 0.55
	}
}
