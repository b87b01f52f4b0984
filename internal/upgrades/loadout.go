package upgrades

import "github.com/beltworks/beltrunner/internal/sim"

// Loadout maps owned upgrades to their installed level. Missing keys mean
// level zero. The zero value is a bare-hull ship.
type Loadout map[ID]int

// ParseLoadout converts persisted slug levels into a loadout, dropping
// slugs the catalog no longer carries.
func ParseLoadout(saved map[string]int) Loadout {
	lo := Loadout{}
	for slug, level := range saved {
		if id, ok := ParseID(slug); ok {
			lo[id] = level
		}
	}
	return lo
}

// Level returns the installed level of an upgrade, clamped into the
// catalog's range so a corrupt persisted value cannot leak past MaxLevel.
func (lo Loadout) Level(id ID) int {
	if !id.Valid() {
		return 0
	}
	l := lo[id]
	if l < 0 {
		return 0
	}
	if max := Catalog[id].MaxLevel; l > max {
		return max
	}
	return l
}

// ModifiersFor converts a loadout into the run modifiers the simulation
// consumes. Uninstalled upgrades leave their fields zero so the simulation's
// own defaults apply; the numbers below therefore only speak for level >= 1.
func ModifiersFor(lo Loadout) sim.RunModifiers {
	var m sim.RunModifiers

	if l := lo.Level(GrabArm); l > 0 {
		m.GrabRange = 6 + 2*float64(l)
	}
	if l := lo.Level(Thrusters); l > 0 {
		m.ThrustMult = 1 + 0.15*float64(l)
	}
	if l := lo.Level(DrillHead); l > 0 {
		m.DrillMult = 1 + 0.2*float64(l)
	}
	if l := lo.Level(HullPlating); l > 0 {
		m.MaxHull = 100 + 25*float64(l)
	}
	if l := lo.Level(CargoPods); l > 0 {
		m.CargoCapacity = 20 + 6*float64(l)
	}
	if l := lo.Level(Autocannon); l > 0 {
		m.WeaponAmmo = 4 * l
		m.WeaponDamage = 8 + 2*float64(l-1)
	}
	if l := lo.Level(RamPlow); l > 0 {
		m.RamAttack = 1 + 0.3*float64(l)
		m.RamDefense = 1 + 0.3*float64(l)
	}
	if l := lo.Level(Transponder); l > 0 {
		chance := 1 - 0.15*float64(l)
		if chance < 0.25 {
			chance = 0.25
		}
		m.PirateChance = chance
	}

	return m
}
