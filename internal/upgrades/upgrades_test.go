package upgrades

import (
	"testing"

	"github.com/beltworks/beltrunner/internal/sim"
)

func TestCatalogShape(t *testing.T) {
	seenSlugs := map[string]bool{}
	for i, u := range Catalog {
		if u.ID != ID(i) {
			t.Errorf("catalog entry %d should carry its own id, got %v", i, u.ID)
		}
		if u.Slug == "" || u.Name == "" {
			t.Errorf("%v should have a slug and a name", u.ID)
		}
		if seenSlugs[u.Slug] {
			t.Errorf("slug %q appears twice", u.Slug)
		}
		seenSlugs[u.Slug] = true
		if u.MaxLevel < 1 {
			t.Errorf("%v should have at least one level, got %d", u.ID, u.MaxLevel)
		}
		if u.BaseCost <= 0 || u.CostGrowth <= 1 {
			t.Errorf("%v should cost something and grow, got base %d growth %v", u.ID, u.BaseCost, u.CostGrowth)
		}
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	for _, u := range Catalog {
		id, ok := ParseID(u.Slug)
		if !ok || id != u.ID {
			t.Errorf("slug %q should parse back to %v, got %v ok=%v", u.Slug, u.ID, id, ok)
		}
	}
	if _, ok := ParseID("warp-drive"); ok {
		t.Error("unknown slug should not parse")
	}
}

func TestCostGrowsPerLevel(t *testing.T) {
	for _, u := range Catalog {
		prev := 0
		for l := 1; l <= u.MaxLevel; l++ {
			c := u.CostAt(l)
			if c <= prev {
				t.Errorf("%v level %d should cost more than level %d (%d vs %d)", u.ID, l, l-1, c, prev)
			}
			prev = c
		}
		if u.CostAt(0) != 0 || u.CostAt(u.MaxLevel+1) != 0 {
			t.Errorf("%v out-of-range levels should price at zero", u.ID)
		}
	}
}

func TestTotalCostSumsLevels(t *testing.T) {
	u := Catalog[Thrusters]
	want := u.CostAt(1) + u.CostAt(2) + u.CostAt(3)
	if got := u.TotalCost(3); got != want {
		t.Errorf("total at level 3 should be %d, got %d", want, got)
	}
	if got := u.TotalCost(u.MaxLevel + 3); got != u.TotalCost(u.MaxLevel) {
		t.Error("total should stop accumulating past max level")
	}
}

func TestLoadoutLevelClamps(t *testing.T) {
	lo := Loadout{Thrusters: 99, DrillHead: -2}
	if got := lo.Level(Thrusters); got != Catalog[Thrusters].MaxLevel {
		t.Errorf("oversized persisted level should clamp to max, got %d", got)
	}
	if got := lo.Level(DrillHead); got != 0 {
		t.Errorf("negative persisted level should clamp to zero, got %d", got)
	}
	if got := lo.Level(ID(99)); got != 0 {
		t.Errorf("invalid id should read level zero, got %d", got)
	}
}

func TestModifiersForBareHull(t *testing.T) {
	m := ModifiersFor(Loadout{})
	if m != (sim.RunModifiers{}) {
		t.Errorf("an empty loadout should leave every field to the sim defaults, got %+v", m)
	}
}

func TestModifiersForInstalledLevels(t *testing.T) {
	lo := Loadout{
		GrabArm:     2,
		Thrusters:   1,
		DrillHead:   3,
		HullPlating: 4,
		CargoPods:   2,
		Autocannon:  2,
		RamPlow:     1,
	}
	m := ModifiersFor(lo)

	if m.GrabRange != 10 {
		t.Errorf("grab arm 2 should reach 10, got %v", m.GrabRange)
	}
	if !(m.ThrustMult > 1.14 && m.ThrustMult < 1.16) {
		t.Errorf("thrusters 1 should give 1.15x, got %v", m.ThrustMult)
	}
	if !(m.DrillMult > 1.59 && m.DrillMult < 1.61) {
		t.Errorf("drill head 3 should give 1.6x, got %v", m.DrillMult)
	}
	if m.MaxHull != 200 {
		t.Errorf("hull plating 4 should give 200, got %v", m.MaxHull)
	}
	if m.CargoCapacity != 32 {
		t.Errorf("cargo pods 2 should give 32, got %v", m.CargoCapacity)
	}
	if m.WeaponAmmo != 8 || m.WeaponDamage != 10 {
		t.Errorf("autocannon 2 should give 8 rounds at 10 damage, got %d at %v", m.WeaponAmmo, m.WeaponDamage)
	}
	if !(m.RamAttack > 1.29 && m.RamAttack < 1.31) || m.RamAttack != m.RamDefense {
		t.Errorf("ram plow 1 should give 1.3 both ways, got %v/%v", m.RamAttack, m.RamDefense)
	}
	if m.PirateChance != 0 {
		t.Errorf("no transponder: pirate chance should stay default-zero, got %v", m.PirateChance)
	}
}

func TestTransponderFloorsPirateChance(t *testing.T) {
	m := ModifiersFor(Loadout{Transponder: 1})
	if !(m.PirateChance > 0.84 && m.PirateChance < 0.86) {
		t.Errorf("transponder 1 should give 0.85, got %v", m.PirateChance)
	}

	m = ModifiersFor(Loadout{Transponder: Catalog[Transponder].MaxLevel})
	if m.PirateChance != 0.25 {
		t.Errorf("a maxed transponder floors at 0.25, got %v", m.PirateChance)
	}
}

func TestModifiersFeedTheSim(t *testing.T) {
	// The handoff contract: a run built from a loadout reflects it.
	r := sim.NewRun(5, ModifiersFor(Loadout{HullPlating: 2, Autocannon: 1}))
	if r.Player.Hull != 150 {
		t.Errorf("hull plating 2 should start the run at 150 hull, got %v", r.Player.Hull)
	}
	if r.Ammo != 4 {
		t.Errorf("autocannon 1 should load 4 rounds, got %d", r.Ammo)
	}
}
