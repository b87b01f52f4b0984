package sim

import (
	"fmt"
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

// PirateState is the threat sub-machine state. quiet and incoming are the
// live states; disabled and boarding are terminal.
type PirateState int

const (
	PirateQuiet PirateState = iota
	PirateIncoming
	PirateDisabled
	PirateBoarding
)

// String returns a display label for the state.
func (s PirateState) String() string {
	switch s {
	case PirateQuiet:
		return "quiet"
	case PirateIncoming:
		return "incoming"
	case PirateDisabled:
		return "disabled"
	case PirateBoarding:
		return "boarding"
	default:
		return "unknown"
	}
}

// Pirate is the run's single raider. It exists from run creation but stays
// off the field until its trigger time; an excluded encounter keeps the
// trigger at +Inf so quiet never fires.
type Pirate struct {
	State      PirateState
	Pos        core.Vec3
	Vel        core.Vec3
	OrbitAngle float64
	TriggerAt  float64 // elapsed seconds at which quiet becomes incoming
	// BoardTimer counts down to the boarding loss while incoming. Combat
	// pushes it back up, but never past its starting window.
	BoardTimer float64
	Hull       float64
	MaxHull    float64
	Radius     float64

	entryAngle  float64
	orbitPhase  float64
	impactGrace float64
}

func newPirate(tun Tuning, encounter bool, trigger, entryAngle, orbitPhase float64) Pirate {
	p := Pirate{
		State:      PirateQuiet,
		TriggerAt:  math.Inf(1),
		Hull:       tun.PirateHull,
		MaxHull:    tun.PirateHull,
		Radius:     tun.PirateRadius,
		entryAngle: entryAngle,
		orbitPhase: orbitPhase,
	}
	if encounter {
		p.TriggerAt = trigger
	}
	return p
}

// Present reports whether the pirate is physically on the field.
func (p *Pirate) Present() bool {
	return p.State == PirateIncoming || p.State == PirateDisabled
}

// stepPirate advances the threat machine: trigger check while quiet, orbit
// steering and the boarding countdown while incoming, derelict drift once
// disabled. Boarding fails the mission on the spot.
func (r *Run) stepPirate(dt float64) {
	p := &r.Pirate
	tun := &r.Tun

	if p.impactGrace > 0 {
		p.impactGrace -= dt
		if p.impactGrace < 0 {
			p.impactGrace = 0
		}
	}

	switch p.State {
	case PirateQuiet:
		if r.Elapsed < p.TriggerAt {
			return
		}
		p.State = PirateIncoming
		p.BoardTimer = tun.BoardTime
		p.OrbitAngle = p.entryAngle
		entry := core.Vec3{X: math.Cos(p.entryAngle), Z: math.Sin(p.entryAngle)}
		p.Pos = r.Freighter.Pos.Add(entry.Scale(tun.PirateEntryDist))
		p.Vel = r.Freighter.Pos.Sub(p.Pos).Normalized().Scale(tun.PirateSpeed * 0.5)
		r.events.push(ToneBad, "pirate signature on approach")

	case PirateIncoming:
		// Orbit point circles the moving freighter on a breathing radius.
		p.OrbitAngle += tun.OrbitAngularSpeed * dt
		radius := tun.OrbitRadiusBase + math.Sin(r.Elapsed*tun.OrbitWobbleRate+p.orbitPhase)*tun.OrbitRadiusVar
		orbit := core.Vec3{X: math.Cos(p.OrbitAngle), Z: math.Sin(p.OrbitAngle)}
		target := r.Freighter.Pos.Add(orbit.Scale(radius))

		desired := target.Sub(p.Pos).Normalized().Scale(tun.PirateSpeed)
		blend := 1 - math.Exp(-tun.PirateSteerRate*dt)
		p.Vel = p.Vel.Add(desired.Sub(p.Vel).Scale(blend))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		p.BoardTimer -= dt
		if p.BoardTimer <= 0 {
			p.BoardTimer = 0
			p.State = PirateBoarding
			r.Status = StatusLost
			r.Reason = ReasonBoarded
			r.events.push(ToneBad, "pirates boarded the freighter")
		}

	case PirateDisabled:
		// Derelict drift, nothing left to decide.
		p.Vel = p.Vel.Scale(math.Exp(-0.4 * dt))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	case PirateBoarding:
		// Terminal; the run is already lost.
	}
}

// damagePirate lands damage and a boarding-delay bonus on a live pirate.
// Dead or absent pirates shrug everything off. Emptying the hull disables
// the raider for good and parks the boarding timer out of reach.
func (r *Run) damagePirate(dmg, delayBonus float64, cause string) {
	p := &r.Pirate
	if p.State != PirateIncoming {
		return
	}
	if dmg <= 0 && delayBonus <= 0 {
		return
	}

	p.Hull -= dmg
	if delayBonus > 0 {
		p.BoardTimer = math.Min(p.BoardTimer+delayBonus, r.Tun.BoardTime)
	}

	if p.Hull <= 0 {
		p.Hull = 0
		p.State = PirateDisabled
		p.BoardTimer = math.Inf(1)
		r.events.push(ToneGood, "pirate drive disabled")
		return
	}
	r.events.push(ToneInfo, fmt.Sprintf("pirate hit: %s", cause))
}
