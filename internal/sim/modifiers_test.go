package sim

import "testing"

func TestModifiersZeroValueDefaults(t *testing.T) {
	m := RunModifiers{}.withDefaults()

	if m.GrabRange != defaultGrabRange {
		t.Errorf("GrabRange = %f, expected default %f", m.GrabRange, defaultGrabRange)
	}
	if m.ThrustMult != 1 || m.DrillMult != 1 {
		t.Errorf("multipliers should default to 1, got thrust %f drill %f", m.ThrustMult, m.DrillMult)
	}
	if m.MaxHull != defaultMaxHull {
		t.Errorf("MaxHull = %f", m.MaxHull)
	}
	if m.CargoCapacity != defaultCargoCap {
		t.Errorf("CargoCapacity = %f", m.CargoCapacity)
	}
	if m.WeaponAmmo != 0 || m.WeaponDamage != 0 {
		t.Error("default loadout carries no weapon")
	}
	if m.RamAttack != 1 || m.RamDefense != 1 {
		t.Error("ram multipliers should default to 1")
	}
	if m.PirateChance != defaultPirateChance {
		t.Errorf("PirateChance = %f, expected certain encounter by default", m.PirateChance)
	}
}

func TestModifiersClamping(t *testing.T) {
	tests := []struct {
		name  string
		in    RunModifiers
		check func(t *testing.T, m RunModifiers)
	}{
		{
			name: "excessive values pull in",
			in:   RunModifiers{GrabRange: 500, ThrustMult: 99, MaxHull: 1e6, CargoCapacity: 1e6, WeaponAmmo: 1000, WeaponDamage: 1e4},
			check: func(t *testing.T, m RunModifiers) {
				if m.GrabRange != 30 || m.ThrustMult != 4 || m.MaxHull != 1000 || m.CargoCapacity != 500 {
					t.Errorf("upper clamps failed: %+v", m)
				}
				if m.WeaponAmmo != 99 || m.WeaponDamage != 200 {
					t.Errorf("weapon clamps failed: %+v", m)
				}
			},
		},
		{
			name: "tiny values pull up",
			in:   RunModifiers{GrabRange: 0.01, ThrustMult: 0.0001, DrillMult: 0.0001, MaxHull: 1, CargoCapacity: 0.5},
			check: func(t *testing.T, m RunModifiers) {
				if m.GrabRange != 1 || m.ThrustMult != 0.25 || m.DrillMult != 0.25 {
					t.Errorf("lower clamps failed: %+v", m)
				}
				if m.MaxHull != 10 || m.CargoCapacity != 5 {
					t.Errorf("lower clamps failed: %+v", m)
				}
			},
		},
		{
			name: "negative pirate chance excludes the pirate",
			in:   RunModifiers{PirateChance: -1},
			check: func(t *testing.T, m RunModifiers) {
				if m.PirateChance != 0 {
					t.Errorf("PirateChance = %f, expected 0", m.PirateChance)
				}
			},
		},
		{
			name: "ammo without damage gets the stock cannon",
			in:   RunModifiers{WeaponAmmo: 6},
			check: func(t *testing.T, m RunModifiers) {
				if m.WeaponDamage != defaultWeaponDamage {
					t.Errorf("WeaponDamage = %f, expected default", m.WeaponDamage)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, tc.in.withDefaults())
		})
	}
}
