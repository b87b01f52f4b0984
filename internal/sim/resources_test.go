package sim

import "testing"

func TestResourceTableShape(t *testing.T) {
	if len(Resources) != int(resourceCount) {
		t.Fatalf("resource table has %d entries, expected %d", len(Resources), resourceCount)
	}

	for i, res := range Resources {
		if res.ID != ResourceID(i) {
			t.Errorf("Resources[%d].ID = %v, table must be ordered by ID", i, res.ID)
		}
		if res.Label == "" {
			t.Errorf("Resources[%d] has no label", i)
		}
		if res.UnitValue <= 0 || res.UnitVolume <= 0 {
			t.Errorf("Resources[%d] has non-positive value or volume", i)
		}
	}

	// Value density rises toward the rare end; cargo launch and dock
	// transfer order both rely on it.
	for i := 1; i < len(Resources); i++ {
		if Resources[i].UnitValue <= Resources[i-1].UnitValue {
			t.Errorf("unit value must be strictly increasing, broken at %s", Resources[i].Label)
		}
	}
}

func TestMinUnitVolume(t *testing.T) {
	for _, res := range Resources {
		if res.UnitVolume < minUnitVolume {
			t.Fatalf("minUnitVolume %f is not minimal, %s has %f", minUnitVolume, res.Label, res.UnitVolume)
		}
	}
	if minUnitVolume != Resources[Ferrite].UnitVolume {
		t.Errorf("expected ferrite to be the smallest unit, got %f", minUnitVolume)
	}
}

func TestCargoBinDerivedAggregates(t *testing.T) {
	b := CargoBin{Resource: Aurum, Units: 3}

	if b.Volume() != 3*Resources[Aurum].UnitVolume {
		t.Errorf("Volume() = %f", b.Volume())
	}
	if b.Value() != 3*Resources[Aurum].UnitValue {
		t.Errorf("Value() = %d", b.Value())
	}

	empty := CargoBin{Resource: Relic}
	if empty.Volume() != 0 || empty.Value() != 0 {
		t.Error("empty bin should have zero volume and value")
	}
}

func TestResourceIDString(t *testing.T) {
	if Ferrite.String() != "ferrite" {
		t.Errorf("Ferrite.String() = %q", Ferrite.String())
	}
	if ResourceID(99).String() != "unknown" {
		t.Errorf("out-of-range id should stringify as unknown")
	}
}

func TestPrimaryWeightsBiasShift(t *testing.T) {
	common := primaryWeights(0)
	rich := primaryWeights(1)

	if common[Ferrite] <= common[Relic] {
		t.Error("zero bias should favor common ore")
	}
	if rich[Relic] <= rich[Ferrite] {
		t.Error("full bias should favor rare ore")
	}

	// Out-of-range bias clamps rather than extrapolating
	low := primaryWeights(-5)
	if low != common {
		t.Error("negative bias should clamp to the common profile")
	}
	high := primaryWeights(9)
	if high != rich {
		t.Error("excess bias should clamp to the rich profile")
	}
}
