package sim

import (
	"fmt"
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

// Status is the mission outcome state.
type Status int

const (
	StatusActive Status = iota
	StatusWon
	StatusLost
)

// String returns a display label for the status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Loss reasons. Loss is plain data, never an error value.
const (
	ReasonHullBreach = "hull breach"
	ReasonBoarded    = "freighter boarded"
	ReasonTimeout    = "left in the rocks"
)

// Player is the mining craft.
type Player struct {
	Pos      core.Vec3
	Vel      core.Vec3
	Yaw      float64 // rad; yaw 0 faces -Z
	Pitch    float64 // rad, clamped to keep the nose meaningful
	Throttle float64 // [0, 1] in notches
	Hull     float64

	impactGrace float64
	ramGrace    float64
}

// Forward returns the craft's unit forward vector.
func (p *Player) Forward() core.Vec3 {
	cp := math.Cos(p.Pitch)
	return core.Vec3{
		X: math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// Freighter is the drop-off ship. It crosses the field on a straight lane
// over the mission duration, player or no player.
type Freighter struct {
	Pos      core.Vec3
	LaneFrom core.Vec3
	LaneTo   core.Vec3
}

// Run owns all mutable state of one mission attempt. Exactly one caller
// steps a Run; it is never shared across runs. Drop it to abandon the
// mission, there is no teardown.
type Run struct {
	Seed uint32
	Mods RunModifiers
	Tun  Tuning

	Status  Status
	Reason  string
	Elapsed float64
	// Countdown is the mission clock. It decreases in real time whatever
	// the player does; hitting zero ends the run.
	Countdown float64

	Player    Player
	Freighter Freighter
	Asteroids []Asteroid
	Shots     []Shot
	Pirate    Pirate

	Cargo          [resourceCount]CargoBin
	RareAboard     int // sealed relic cases aboard, outside hold volume
	RareDelivered  int
	Ammo           int
	DeliveredValue int
	DeliveredUnits int
	// Depletions counts rocks mined dry; presentation reads it to trigger
	// transient cues, the simulation never does.
	Depletions int

	Docked bool

	rng             *RNG
	grabbedID       int // -1 when the grabber is unarmed
	drillProgress   float64
	cargoFullWarned bool
	dockOffset      core.Vec3
	unloadBaseline  int
	repairBaseline  float64
	unloadAcc       float64
	repairAcc       float64
	shotSerial      int
	events          eventLog
	prevInput       core.InputFrame
}

// NewRun creates a run from a seed and modifiers using the default tuning.
// Zero-valued modifier fields fall back to documented defaults.
func NewRun(seed uint32, mods RunModifiers) *Run {
	return NewRunTuned(seed, mods, DefaultTuning())
}

// NewRunTuned creates a run against an explicit tuning table.
//
// Generation draws from the RNG in a fixed order: freighter lane, pirate
// rolls, then each asteroid. Tests and replays depend on that order.
func NewRunTuned(seed uint32, mods RunModifiers, tun Tuning) *Run {
	mods = mods.withDefaults()
	rng := NewRNG(seed)

	r := &Run{
		Seed:      seed,
		Mods:      mods,
		Tun:       tun,
		Status:    StatusActive,
		Countdown: tun.MissionTime,
		Ammo:      mods.WeaponAmmo,
		rng:       rng,
		grabbedID: -1,
		events:    newEventLog(tun.EventCap),
	}
	for i := range r.Cargo {
		r.Cargo[i] = CargoBin{Resource: ResourceID(i)}
	}

	r.Player = Player{
		Pos:  core.Vec3{Z: tun.FieldBound * 0.55},
		Hull: mods.MaxHull,
	}

	laneX := tun.TravelBound * 0.85
	r.Freighter.LaneFrom = core.Vec3{X: -laneX, Y: rng.Range(-6, 6), Z: rng.Range(-tun.TravelBound*0.5, tun.TravelBound*0.5)}
	r.Freighter.LaneTo = core.Vec3{X: laneX, Y: rng.Range(-6, 6), Z: rng.Range(-tun.TravelBound*0.5, tun.TravelBound*0.5)}
	r.Freighter.Pos = r.Freighter.LaneFrom

	// Pirate rolls are always consumed so the asteroid field does not
	// depend on the encounter outcome.
	encounter := rng.Float64() < mods.PirateChance
	trigger := rng.Range(tun.PirateTriggerMin, tun.PirateTriggerMax)
	entryAngle := rng.Range(0, 2*math.Pi)
	orbitPhase := rng.Range(0, 2*math.Pi)
	r.Pirate = newPirate(tun, encounter, trigger, entryAngle, orbitPhase)

	r.Asteroids = make([]Asteroid, 0, tun.AsteroidCount)
	for i := 0; i < tun.AsteroidCount; i++ {
		r.Asteroids = append(r.Asteroids, rollAsteroid(rng, i, tun, r.Player.Pos, r.Freighter.LaneFrom))
	}

	r.events.push(ToneInfo, "contract started: fill the hold and dock before the freighter leaves")
	return r
}

// Events returns up to n most recent feed lines, newest first.
func (r *Run) Events(n int) []Event {
	return r.events.tail(n)
}

// GrabbedRockID returns the held rock's ID, or -1 when the grabber is
// unarmed.
func (r *Run) GrabbedRockID() int {
	return r.grabbedID
}

// asteroidByID resolves a rock by ID. IDs are slice indices because rocks
// are never removed; a stale or foreign ID degrades to nil.
func (r *Run) asteroidByID(id int) *Asteroid {
	if id < 0 || id >= len(r.Asteroids) {
		return nil
	}
	a := &r.Asteroids[id]
	if a.ID != id {
		return nil
	}
	return a
}

// nearestRock returns the index of the rock with the smallest surface
// distance to the player and that distance. Returns -1 on an empty field.
func (r *Run) nearestRock() (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i := range r.Asteroids {
		a := &r.Asteroids[i]
		d := r.Player.Pos.Dist(a.Pos) - a.Radius
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// cargoUnits returns the ordinary units aboard, rare cases excluded.
func (r *Run) cargoUnits() int {
	n := 0
	for _, b := range r.Cargo {
		n += b.Units
	}
	return n
}

// cargoUsed returns the hold volume in use.
func (r *Run) cargoUsed() float64 {
	v := 0.0
	for _, b := range r.Cargo {
		v += b.Volume()
	}
	return v
}

// cargoValue returns the credit value of the hold, rare cases excluded.
func (r *Run) cargoValue() int {
	v := 0
	for _, b := range r.Cargo {
		v += b.Value()
	}
	return v
}

// spareVolume returns the free hold volume.
func (r *Run) spareVolume() float64 {
	return r.Mods.CargoCapacity - r.cargoUsed()
}

// bestCargoKind returns the highest value-per-unit kind present, walking the
// table from the rare end. Table order breaks ties, so the pick is stable.
func (r *Run) bestCargoKind() (ResourceID, bool) {
	for i := int(resourceCount) - 1; i >= 0; i-- {
		if r.Cargo[i].Units > 0 {
			return ResourceID(i), true
		}
	}
	return 0, false
}

// addCargo stores up to req units of a kind, gated by the hold volume:
// accepted = min(req, floor(spare / unit volume)). Zero acceptance means the
// kind did not fit at all. Any accepted unit re-arms the cargo-full warning.
func (r *Run) addCargo(kind ResourceID, req int) int {
	if !kind.valid() || req <= 0 {
		return 0
	}
	unitVol := Resources[kind].UnitVolume
	fit := int(r.spareVolume() / unitVol)
	accepted := core.Min(req, fit)
	if accepted <= 0 {
		return 0
	}
	r.Cargo[kind].Units += accepted
	r.cargoFullWarned = false
	return accepted
}

// removeCargoUnit drops one unit of a kind, for launches and unloads.
func (r *Run) removeCargoUnit(kind ResourceID) bool {
	if !kind.valid() || r.Cargo[kind].Units <= 0 {
		return false
	}
	r.Cargo[kind].Units--
	r.cargoFullWarned = false
	return true
}

// damagePlayer applies hull damage, clamped at zero. Outcome evaluation
// turns an emptied hull into the loss on the same step.
func (r *Run) damagePlayer(dmg float64, cause string) {
	if dmg <= 0 {
		return
	}
	r.Player.Hull -= dmg
	if r.Player.Hull < 0 {
		r.Player.Hull = 0
	}
	r.events.push(ToneWarn, fmt.Sprintf("hull damage: %s", cause))
}
