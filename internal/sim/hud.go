package sim

import (
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

const eventTailLen = 8

// CargoLine is one display row of the hold manifest.
type CargoLine struct {
	Resource ResourceID
	Label    string
	Units    int
	Value    int
	Color    core.Color
}

// PirateReadout is the threat block of the HUD.
type PirateReadout struct {
	State      PirateState
	Present    bool
	BoardTimer float64
	HullFrac   float64
	Dist       float64 // from the player, zero while off the field
}

// HudSnapshot is a display-ready view of the run. It is plain data; taking
// one never mutates the Run.
type HudSnapshot struct {
	Status  Status
	Reason  string
	Elapsed float64
	// Countdown is the remaining mission time in seconds, floored at zero.
	Countdown float64

	Hull     float64
	MaxHull  float64
	Throttle float64
	Speed    float64

	CargoUsed     float64
	CargoCapacity float64
	CargoUnits    int
	CargoValue    int
	RareAboard    int
	RareDelivered int
	Ammo          int

	DeliveredValue int
	DeliveredUnits int
	Depletions     int

	Docked bool
	// UnloadProgress and RepairProgress are [0, 1] against the baselines
	// snapshotted at dock time. An empty baseline reads as complete; both
	// read zero while undocked.
	UnloadProgress float64
	RepairProgress float64

	FreighterDist float64
	// FreighterBearing is the signed angle in radians from the craft's
	// forward to the freighter, flattened onto the horizontal plane.
	// Positive means yaw right.
	FreighterBearing float64
	InApproach       bool
	InDockRange      bool

	Pirate PirateReadout

	// NearestRockID is -1 on an empty field.
	NearestRockID   int
	NearestRockDist float64
	GrabberInRange  bool
	GrabbedRockID   int

	Cargo  []CargoLine // present kinds only, highest unit value first
	Events []Event     // newest first
}

// HudSnapshot projects the run into display-ready numbers. The platform
// layer decides how often to take one; every step is fine, so is every
// few ticks.
func (r *Run) HudSnapshot() HudSnapshot {
	toFreighter := r.Freighter.Pos.Sub(r.Player.Pos)
	freighterDist := toFreighter.Len()

	h := HudSnapshot{
		Status:    r.Status,
		Reason:    r.Reason,
		Elapsed:   r.Elapsed,
		Countdown: math.Max(r.Countdown, 0),

		Hull:     r.Player.Hull,
		MaxHull:  r.Mods.MaxHull,
		Throttle: r.Player.Throttle,
		Speed:    r.Player.Vel.Len(),

		CargoUsed:     r.cargoUsed(),
		CargoCapacity: r.Mods.CargoCapacity,
		CargoUnits:    r.cargoUnits(),
		CargoValue:    r.cargoValue(),
		RareAboard:    r.RareAboard,
		RareDelivered: r.RareDelivered,
		Ammo:          r.Ammo,

		DeliveredValue: r.DeliveredValue,
		DeliveredUnits: r.DeliveredUnits,
		Depletions:     r.Depletions,

		Docked: r.Docked,

		FreighterDist:    freighterDist,
		FreighterBearing: bearingTo(r.Player.Forward(), toFreighter),
		InApproach:       freighterDist <= r.Tun.ApproachRadius,
		InDockRange:      freighterDist <= r.Tun.DockRadius,

		GrabbedRockID: r.grabbedID,
		NearestRockID: -1,

		Events: r.events.tail(eventTailLen),
	}

	if r.Docked {
		h.UnloadProgress = baselineProgress(float64(r.cargoUnits()+r.RareAboard), float64(r.unloadBaseline))
		h.RepairProgress = baselineProgress(r.Mods.MaxHull-r.Player.Hull, r.repairBaseline)
	}

	if idx, dist := r.nearestRock(); idx >= 0 {
		h.NearestRockID = r.Asteroids[idx].ID
		h.NearestRockDist = dist
		h.GrabberInRange = dist <= r.Mods.GrabRange
	}

	p := &r.Pirate
	h.Pirate = PirateReadout{
		State:      p.State,
		Present:    p.Present(),
		BoardTimer: p.BoardTimer,
	}
	if p.MaxHull > 0 {
		h.Pirate.HullFrac = core.ClampF(p.Hull/p.MaxHull, 0, 1)
	}
	if p.Present() {
		h.Pirate.Dist = r.Player.Pos.Dist(p.Pos)
	}

	for i := int(resourceCount) - 1; i >= 0; i-- {
		b := r.Cargo[i]
		if b.Units == 0 {
			continue
		}
		res := Resources[b.Resource]
		h.Cargo = append(h.Cargo, CargoLine{
			Resource: b.Resource,
			Label:    res.Label,
			Units:    b.Units,
			Value:    b.Value(),
			Color:    res.Color,
		})
	}

	return h
}

// baselineProgress maps remaining work against a dock-time baseline onto
// [0, 1]. Nothing to do counts as done.
func baselineProgress(remaining, baseline float64) float64 {
	if baseline <= 0 {
		return 1
	}
	return core.ClampF(1-remaining/baseline, 0, 1)
}

// bearingTo returns the signed horizontal angle from forward to the target
// direction. Positive means the target is to starboard (yaw right reduces
// it). Degenerate geometry, straight above or below, reads as dead ahead.
func bearingTo(forward, to core.Vec3) float64 {
	forward.Y = 0
	to.Y = 0
	if forward.LenSq() < 1e-12 || to.LenSq() < 1e-12 {
		return 0
	}
	cross := forward.X*to.Z - forward.Z*to.X
	dot := forward.Dot(to)
	return math.Atan2(cross, dot)
}
