// Package upgrades defines the hangar catalog: the purchasable ship fits
// and the mapping from an owned loadout to the run modifiers the simulation
// consumes. The catalog is fixed; the loadout is whatever the caller
// persisted.
package upgrades

import "math"

// ID indexes the fixed upgrade catalog.
type ID int

const (
	GrabArm ID = iota
	Thrusters
	DrillHead
	HullPlating
	CargoPods
	Autocannon
	RamPlow
	Transponder

	idCount // sentinel for counting kinds
)

// String returns the display name for an upgrade.
func (id ID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return Catalog[id].Name
}

// Slug returns the stable identifier used for persistence.
func (id ID) Slug() string {
	if !id.Valid() {
		return "unknown"
	}
	return Catalog[id].Slug
}

// Valid reports whether id indexes the catalog.
func (id ID) Valid() bool {
	return id >= 0 && id < idCount
}

// ParseID resolves a persisted slug back to its catalog ID.
func ParseID(slug string) (ID, bool) {
	for i := range Catalog {
		if Catalog[i].Slug == slug {
			return Catalog[i].ID, true
		}
	}
	return 0, false
}

// Upgrade is one catalog entry. Cost scales geometrically per level so late
// levels are real commitments.
type Upgrade struct {
	ID         ID
	Slug       string
	Name       string
	Desc       string
	MaxLevel   int
	BaseCost   int
	CostGrowth float64
}

// Catalog is the fixed hangar offering.
var Catalog = [idCount]Upgrade{
	{ID: GrabArm, Slug: "grab-arm", Name: "Grab Arm", Desc: "longer grabber reach", MaxLevel: 4, BaseCost: 60, CostGrowth: 1.6},
	{ID: Thrusters, Slug: "thrusters", Name: "Thrusters", Desc: "higher top speed", MaxLevel: 5, BaseCost: 80, CostGrowth: 1.7},
	{ID: DrillHead, Slug: "drill-head", Name: "Drill Head", Desc: "faster ore extraction", MaxLevel: 5, BaseCost: 90, CostGrowth: 1.7},
	{ID: HullPlating, Slug: "hull-plating", Name: "Hull Plating", Desc: "bigger hull pool", MaxLevel: 4, BaseCost: 70, CostGrowth: 1.6},
	{ID: CargoPods, Slug: "cargo-pods", Name: "Cargo Pods", Desc: "more hold volume", MaxLevel: 5, BaseCost: 60, CostGrowth: 1.6},
	{ID: Autocannon, Slug: "autocannon", Name: "Autocannon", Desc: "ammo and punch against raiders", MaxLevel: 5, BaseCost: 120, CostGrowth: 1.8},
	{ID: RamPlow, Slug: "ram-plow", Name: "Ram Plow", Desc: "hit harder, take less, ramming", MaxLevel: 4, BaseCost: 100, CostGrowth: 1.7},
	{ID: Transponder, Slug: "transponder", Name: "Faked Transponder", Desc: "quieter runs, fewer raiders", MaxLevel: 5, BaseCost: 150, CostGrowth: 1.9},
}

// CostAt returns the credit price of buying the given level (1-based).
// Levels outside the catalog range price at 0, meaning not purchasable.
func (u Upgrade) CostAt(level int) int {
	if level < 1 || level > u.MaxLevel {
		return 0
	}
	return int(math.Round(float64(u.BaseCost) * math.Pow(u.CostGrowth, float64(level-1))))
}

// TotalCost returns the credits sunk into an upgrade at the given level.
func (u Upgrade) TotalCost(level int) int {
	total := 0
	for l := 1; l <= level && l <= u.MaxLevel; l++ {
		total += u.CostAt(l)
	}
	return total
}
