package config

import (
	_ "embed"
)

//go:embed defaults/beltrunner.yaml
var defaultTuningYAML []byte

// DefaultTuningConfig returns the balanced baseline configuration.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		Field: FieldSection{
			AsteroidCount: 14,
			MinRockRadius: 1.5,
			MaxRockRadius: 5.0,
			OreBias:       0.25,
		},
		Craft: CraftSection{
			MaxSpeed:     18,
			TurnRate:     1.6,
			ThrottleStep: 0.25,
		},
		Mining: MiningSection{
			ExtractRate:     0.8,
			RareCargoChance: 0.01,
			RareCargoValue:  150,
		},
		Pirate: PirateSection{
			TriggerMin: 20,
			TriggerMax: 45,
			BoardTime:  75,
			Hull:       60,
			Speed:      14,
		},
		Mission: MissionSection{
			Time:       240,
			UnloadRate: 2.0,
			RepairRate: 4.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for writing a starter
// config file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
