package sim

import "github.com/beltworks/beltrunner/internal/core"

// RunModifiers carries the upgrade-derived knobs for one run. The caller
// owns it; NewRun copies it into the Run, fills zero-valued fields with
// defaults, and clamps the rest. It never changes during a run.
//
// PirateChance is special-cased: the zero value means "default" (certain
// encounter). Pass a negative value to clamp to zero and fly without a
// pirate; anything else clamps into [0, 1].
type RunModifiers struct {
	GrabRange     float64 // max surface distance the grabber can latch, in field units
	ThrustMult    float64 // scales max speed and acceleration target
	DrillMult     float64 // scales extraction rate
	MaxHull       float64 // hull pool
	CargoCapacity float64 // hold volume
	WeaponAmmo    int     // rounds aboard; zero means no weapon installed
	WeaponDamage  float64 // damage per round; defaulted when ammo > 0
	RamAttack     float64 // scales damage dealt when ramming the pirate
	RamDefense    float64 // divides damage taken when ramming the pirate
	PirateChance  float64 // probability a pirate spawns this run
}

// Modifier defaults and clamp bounds.
const (
	defaultGrabRange    = 6.0
	defaultMaxHull      = 100.0
	defaultCargoCap     = 20.0
	defaultWeaponDamage = 8.0
	defaultPirateChance = 1.0
)

// withDefaults returns a copy with zero fields defaulted and every field
// clamped to sane bounds. Out-of-range values are pulled in, not rejected.
func (m RunModifiers) withDefaults() RunModifiers {
	if m.GrabRange == 0 {
		m.GrabRange = defaultGrabRange
	}
	if m.ThrustMult == 0 {
		m.ThrustMult = 1
	}
	if m.DrillMult == 0 {
		m.DrillMult = 1
	}
	if m.MaxHull == 0 {
		m.MaxHull = defaultMaxHull
	}
	if m.CargoCapacity == 0 {
		m.CargoCapacity = defaultCargoCap
	}
	if m.RamAttack == 0 {
		m.RamAttack = 1
	}
	if m.RamDefense == 0 {
		m.RamDefense = 1
	}
	if m.PirateChance == 0 {
		m.PirateChance = defaultPirateChance
	}
	if m.WeaponAmmo > 0 && m.WeaponDamage == 0 {
		m.WeaponDamage = defaultWeaponDamage
	}

	m.GrabRange = core.ClampF(m.GrabRange, 1, 30)
	m.ThrustMult = core.ClampF(m.ThrustMult, 0.25, 4)
	m.DrillMult = core.ClampF(m.DrillMult, 0.25, 4)
	m.MaxHull = core.ClampF(m.MaxHull, 10, 1000)
	m.CargoCapacity = core.ClampF(m.CargoCapacity, 5, 500)
	m.WeaponAmmo = core.Clamp(m.WeaponAmmo, 0, 99)
	m.WeaponDamage = core.ClampF(m.WeaponDamage, 0, 200)
	m.RamAttack = core.ClampF(m.RamAttack, 0.1, 10)
	m.RamDefense = core.ClampF(m.RamDefense, 0.1, 10)
	m.PirateChance = core.ClampF(m.PirateChance, 0, 1)

	return m
}
