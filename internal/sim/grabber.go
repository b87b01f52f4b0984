package sim

import (
	"fmt"
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

// stepGrabber runs the unarmed -> grabbed -> (drilling) -> unarmed loop.
// The grab action is an edge-triggered toggle; drilling is a held action on
// top of a grab.
func (r *Run) stepGrabber(dt float64, in core.InputFrame, pressed func(core.Action) bool) {
	if pressed(core.ActionGrab) {
		if r.grabbedID >= 0 {
			r.releaseGrab(true)
		} else {
			r.tryGrab()
		}
	}

	if r.grabbedID >= 0 {
		r.pullGrabbedRock(dt)
	}

	r.stepDrill(dt, in)
}

// tryGrab latches the nearest rock if its surface is inside grabber range.
func (r *Run) tryGrab() {
	idx, surfaceDist := r.nearestRock()
	if idx < 0 || surfaceDist > r.Mods.GrabRange {
		return
	}
	r.grabbedID = r.Asteroids[idx].ID
	r.drillProgress = 0
	r.events.push(ToneInfo, fmt.Sprintf("grabber latched: %s rock", r.Asteroids[idx].Primary))
}

// releaseGrab lets the rock go. A player release flings it forward at a
// speed built from base, forward speed, and throttle, capped by a
// radius-scaled maximum so big rocks stay sluggish. Auto-releases do not
// fling.
func (r *Run) releaseGrab(fling bool) {
	if r.grabbedID < 0 {
		return
	}
	rock := r.asteroidByID(r.grabbedID)
	r.grabbedID = -1
	r.drillProgress = 0
	if rock == nil {
		return
	}

	if fling {
		tun := &r.Tun
		fwd := r.Player.Forward()
		fSpeed := r.Player.Vel.Dot(fwd)
		speed := tun.FlingBase + fSpeed*tun.FlingSpeedGain + r.Player.Throttle*tun.FlingThrottleGain
		cap := tun.FlingCapBase * tun.MinRockRadius / math.Max(rock.Radius, tun.MinRockRadius)
		speed = core.ClampF(speed, 0, cap)
		rock.Vel = rock.Vel.Add(fwd.Scale(speed))
		r.events.push(ToneInfo, "rock away")
	}
}

// pullGrabbedRock is the spring that parks the held rock at an anchor
// projected ahead of the craft: proportional gain toward the anchor plus
// exponential damping. The pull is not collision-resolved, so other rocks'
// contact response can still shove the held one around.
func (r *Run) pullGrabbedRock(dt float64) {
	rock := r.asteroidByID(r.grabbedID)
	if rock == nil {
		// Stale reference degrades to an unarmed grabber.
		r.grabbedID = -1
		r.drillProgress = 0
		return
	}

	tun := &r.Tun
	anchor := r.Player.Pos.Add(r.Player.Forward().Scale(rock.Radius + tun.GrabStandoff))
	toAnchor := anchor.Sub(rock.Pos)
	rock.Vel = rock.Vel.Add(toAnchor.Scale(tun.GrabPullGain * dt))
	rock.Vel = rock.Vel.Scale(math.Exp(-tun.GrabPullDamp * dt))
}

// stepDrill accrues extraction while the drill is held on a grabbed rock
// and the hold has room for at least the smallest unit in the ore table.
// Each whole unit of progress samples a kind from the rock's composition,
// rolls its count, and banks what fits.
//
// The capacity story has two gates on purpose. The generic gate above stops
// the drill and latches the one-shot cargo-full warning. addCargo re-checks
// against the sampled kind's own volume; when a bulky kind loses that
// re-check after the generic gate passed, the tick yields nothing and stays
// silent.
func (r *Run) stepDrill(dt float64, in core.InputFrame) {
	active := in.Has(core.ActionDrill) && r.grabbedID >= 0
	rock := r.asteroidByID(r.grabbedID)
	if rock == nil || rock.Reserve <= 0 {
		active = false
	}

	if active && r.spareVolume() < minUnitVolume {
		if !r.cargoFullWarned {
			r.cargoFullWarned = true
			r.events.push(ToneWarn, "cargo hold full")
		}
		active = false
	}

	if !active {
		r.drillProgress = 0
		return
	}

	r.drillProgress += r.Tun.ExtractRate * r.Mods.DrillMult * dt

	for r.drillProgress >= 1 {
		r.drillProgress -= 1

		kind := ResourceID(weightedChoice(r.rng, rock.Composition[:]))
		req := 1
		if kind != Relic {
			req += r.rng.Intn(2) // commons come up 1-2 units per tick
		}

		accepted := r.addCargo(kind, req)
		if accepted == 0 {
			r.drillProgress = 0
			break
		}

		// One reserve unit per successful extraction tick, whatever the
		// sampled yield was.
		rock.Reserve--

		if rock.RareCargo && !rock.RareRecovered {
			rock.RareRecovered = true
			r.RareAboard++
			r.events.push(ToneGood, "sealed relic case recovered")
		}

		if rock.Reserve <= 0 {
			rock.Reserve = 0
			r.Depletions++
			r.releaseGrab(false)
			r.events.push(ToneInfo, "rock mined dry")
			r.drillProgress = 0
			break
		}
	}
}
