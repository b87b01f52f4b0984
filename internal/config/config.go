// Package config provides YAML-based tuning for the mining field and the
// danger presets that reshape pirate pacing and ore quality per run.
package config

import (
	"fmt"

	"github.com/beltworks/beltrunner/internal/core"
	"github.com/beltworks/beltrunner/internal/sim"
)

// TuningConfig mirrors the operator-facing slice of the sim tuning table.
// Fields left at zero keep the built-in baseline, so partial files work.
type TuningConfig struct {
	Field   FieldSection   `yaml:"field"`
	Craft   CraftSection   `yaml:"craft"`
	Mining  MiningSection  `yaml:"mining"`
	Pirate  PirateSection  `yaml:"pirate"`
	Mission MissionSection `yaml:"mission"`
}

// FieldSection shapes the asteroid field.
type FieldSection struct {
	AsteroidCount int     `yaml:"asteroid_count"`
	MinRockRadius float64 `yaml:"min_rock_radius"`
	MaxRockRadius float64 `yaml:"max_rock_radius"`
	OreBias       float64 `yaml:"ore_bias"` // 0 keeps baseline, negative means commons only
}

// CraftSection shapes player handling.
type CraftSection struct {
	MaxSpeed     float64 `yaml:"max_speed"`
	TurnRate     float64 `yaml:"turn_rate"`
	ThrottleStep float64 `yaml:"throttle_step"`
}

// MiningSection shapes extraction pacing and rare finds.
type MiningSection struct {
	ExtractRate     float64 `yaml:"extract_rate"`
	RareCargoChance float64 `yaml:"rare_cargo_chance"`
	RareCargoValue  int     `yaml:"rare_cargo_value"`
}

// PirateSection shapes the raider encounter.
type PirateSection struct {
	TriggerMin float64 `yaml:"trigger_min"`
	TriggerMax float64 `yaml:"trigger_max"`
	BoardTime  float64 `yaml:"board_time"`
	Hull       float64 `yaml:"hull"`
	Speed      float64 `yaml:"speed"`
}

// MissionSection shapes the freighter crossing and dock service rates.
type MissionSection struct {
	Time       float64 `yaml:"time"`
	UnloadRate float64 `yaml:"unload_rate"`
	RepairRate float64 `yaml:"repair_rate"`
}

// Tuning overlays the loaded values onto the balanced baseline and returns
// the table a run steps with. Zero and negative values keep the baseline.
// OreBias is the exception: zero keeps the baseline and negative clamps to
// zero, matching the RunModifiers convention for PirateChance.
func (c TuningConfig) Tuning() sim.Tuning {
	t := sim.DefaultTuning()

	if c.Field.AsteroidCount > 0 {
		t.AsteroidCount = c.Field.AsteroidCount
	}
	if c.Field.MinRockRadius > 0 {
		t.MinRockRadius = c.Field.MinRockRadius
	}
	if c.Field.MaxRockRadius > 0 {
		t.MaxRockRadius = c.Field.MaxRockRadius
	}
	if c.Field.OreBias != 0 {
		t.OreBias = core.ClampF(c.Field.OreBias, 0, 1)
	}

	if c.Craft.MaxSpeed > 0 {
		t.MaxSpeed = c.Craft.MaxSpeed
	}
	if c.Craft.TurnRate > 0 {
		t.TurnRate = c.Craft.TurnRate
	}
	if c.Craft.ThrottleStep > 0 {
		t.ThrottleStep = c.Craft.ThrottleStep
	}

	if c.Mining.ExtractRate > 0 {
		t.ExtractRate = c.Mining.ExtractRate
	}
	if c.Mining.RareCargoChance > 0 {
		t.RareCargoChance = core.ClampF(c.Mining.RareCargoChance, 0, 1)
	}
	if c.Mining.RareCargoValue > 0 {
		t.RareCargoValue = c.Mining.RareCargoValue
	}

	if c.Pirate.TriggerMin > 0 {
		t.PirateTriggerMin = c.Pirate.TriggerMin
	}
	if c.Pirate.TriggerMax > 0 {
		t.PirateTriggerMax = c.Pirate.TriggerMax
	}
	if c.Pirate.BoardTime > 0 {
		t.BoardTime = c.Pirate.BoardTime
	}
	if c.Pirate.Hull > 0 {
		t.PirateHull = c.Pirate.Hull
	}
	if c.Pirate.Speed > 0 {
		t.PirateSpeed = c.Pirate.Speed
	}

	if c.Mission.Time > 0 {
		t.MissionTime = c.Mission.Time
	}
	if c.Mission.UnloadRate > 0 {
		t.UnloadRate = c.Mission.UnloadRate
	}
	if c.Mission.RepairRate > 0 {
		t.RepairRate = c.Mission.RepairRate
	}

	return t
}

// DangerPreset names a pirate pacing and ore quality anchor.
type DangerPreset string

const (
	DangerEasy   DangerPreset = "easy"
	DangerNormal DangerPreset = "normal"
	DangerHard   DangerPreset = "hard"
	DangerCustom DangerPreset = "custom"
)

// ParseDanger validates a preset name from the command line.
func ParseDanger(s string) (DangerPreset, error) {
	switch DangerPreset(s) {
	case DangerEasy, DangerNormal, DangerHard, DangerCustom:
		return DangerPreset(s), nil
	}
	return "", fmt.Errorf("unknown danger preset %q (want easy, normal, hard, or custom)", s)
}
