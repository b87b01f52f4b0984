package sim

import "github.com/beltworks/beltrunner/internal/core"

// ResourceID indexes the fixed resource table.
type ResourceID int

// Resource kinds, ordered from common ore to rare relic. The order is part
// of the simulation contract: composition tables, cargo bins, and HUD lines
// all index by it.
const (
	Ferrite ResourceID = iota
	Silicate
	Cobalite
	Aurum
	Relic

	resourceCount
)

// Resource is a static ore definition. The table below is immutable for the
// process lifetime; factories and the drill sample from it by reference.
type Resource struct {
	ID         ResourceID
	Label      string
	UnitValue  int     // credits per unit
	UnitVolume float64 // cargo volume per unit
	Color      core.Color
}

// Resources is the fixed ore catalog. Rarer kinds are denser in value but
// also bulkier, so a nearly full hold can still take ferrite while refusing
// a relic.
var Resources = [resourceCount]Resource{
	{ID: Ferrite, Label: "ferrite", UnitValue: 4, UnitVolume: 1.0, Color: core.ColorGray},
	{ID: Silicate, Label: "silicate", UnitValue: 7, UnitVolume: 1.2, Color: core.ColorCyan},
	{ID: Cobalite, Label: "cobalite", UnitValue: 12, UnitVolume: 1.5, Color: core.ColorBrightBlue},
	{ID: Aurum, Label: "aurum", UnitValue: 22, UnitVolume: 2.0, Color: core.ColorBrightYellow},
	{ID: Relic, Label: "relic", UnitValue: 60, UnitVolume: 3.0, Color: core.ColorBrightMagenta},
}

// minUnitVolume is the smallest unit volume in the table. The drill uses it
// as the generic "any space at all" gate before sampling a kind.
var minUnitVolume = func() float64 {
	min := Resources[0].UnitVolume
	for _, res := range Resources[1:] {
		if res.UnitVolume < min {
			min = res.UnitVolume
		}
	}
	return min
}()

// String returns the resource label.
func (id ResourceID) String() string {
	if id < 0 || id >= resourceCount {
		return "unknown"
	}
	return Resources[id].Label
}

// valid reports whether id indexes the resource table.
func (id ResourceID) valid() bool {
	return id >= 0 && id < resourceCount
}

// CargoBin tracks the units held of one resource kind. Volume and value are
// derived from the unit count, never stored, so they cannot drift.
type CargoBin struct {
	Resource ResourceID
	Units    int
}

// Volume returns the hold volume consumed by this bin.
func (b CargoBin) Volume() float64 {
	if !b.Resource.valid() {
		return 0
	}
	return float64(b.Units) * Resources[b.Resource].UnitVolume
}

// Value returns the credit value of this bin.
func (b CargoBin) Value() int {
	if !b.Resource.valid() {
		return 0
	}
	return b.Units * Resources[b.Resource].UnitValue
}

// primaryWeights returns the primary-ore pick weights for an ore quality
// bias in [0, 1]. Zero bias favors common kinds; full bias shifts the mass
// toward the rare end of the table.
func primaryWeights(bias float64) [resourceCount]float64 {
	common := [resourceCount]float64{0.42, 0.26, 0.17, 0.10, 0.05}
	rich := [resourceCount]float64{0.10, 0.15, 0.22, 0.25, 0.28}

	bias = core.ClampF(bias, 0, 1)
	var w [resourceCount]float64
	for i := range w {
		w[i] = core.Lerp(common[i], rich[i], bias)
	}
	return w
}
