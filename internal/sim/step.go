package sim

import "github.com/beltworks/beltrunner/internal/core"

// Step advances the run by dt seconds of simulation time under the given
// input. dt is clamped to a small maximum so frame hitches lose time
// instead of destabilizing the integration. Safe with an empty input frame;
// unrecognized actions are ignored.
//
// Frame order: input edges, dock toggle, then either the docked systems or
// flight+grabber+weapons, rock integration, contact resolution, shots,
// pirate, outcome. After a terminal outcome only the input-edge bookkeeping
// keeps running.
func (r *Run) Step(dt float64, in core.InputFrame) {
	dt = core.ClampF(dt, 0, r.Tun.MaxStepDt)

	pressed := func(a core.Action) bool {
		return in.Has(a) && !r.prevInput.Has(a)
	}

	if r.Status != StatusActive {
		r.prevInput = in.Clone()
		return
	}

	r.Elapsed += dt
	r.Countdown -= dt
	r.updateFreighter()

	r.handleDockToggle(pressed)
	if r.Docked {
		r.stepDocked(dt)
	} else {
		r.stepFlight(dt, in, pressed)
		r.stepGrabber(dt, in, pressed)
		r.stepWeapons(pressed)
	}

	r.stepAsteroids(dt)
	r.resolveCollisions()
	r.stepShots(dt)
	r.stepPirate(dt)
	r.evaluateOutcome()

	r.prevInput = in.Clone()
}
