package sim

import (
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

// maxPitch keeps the nose short of straight up or down so yaw stays
// meaningful.
const maxPitch = 1.2

// stepFlight advances the craft: throttle notches, hull-degraded steering,
// exponential forward-speed approach with lateral drift decay, Euler
// integration, and the soft flight-bounds clamp.
func (r *Run) stepFlight(dt float64, in core.InputFrame, pressed func(core.Action) bool) {
	tun := &r.Tun
	p := &r.Player

	if p.impactGrace > 0 {
		p.impactGrace = math.Max(0, p.impactGrace-dt)
	}
	if p.ramGrace > 0 {
		p.ramGrace = math.Max(0, p.ramGrace-dt)
	}

	if pressed(core.ActionThrottleUp) {
		p.Throttle = core.ClampF(p.Throttle+tun.ThrottleStep, 0, 1)
	}
	if pressed(core.ActionThrottleDown) {
		p.Throttle = core.ClampF(p.Throttle-tun.ThrottleStep, 0, 1)
	}
	if in.Has(core.ActionBrake) {
		p.Throttle = 0
		p.Vel = core.Vec3{}
	}

	// Steering authority degrades with hull damage but never fully dies.
	turn := tun.TurnRate * core.ClampF(p.Hull/r.Mods.MaxHull, 0.25, 1)
	if in.Has(core.ActionYawLeft) {
		p.Yaw -= turn * dt
	}
	if in.Has(core.ActionYawRight) {
		p.Yaw += turn * dt
	}
	if in.Has(core.ActionPitchUp) {
		p.Pitch += turn * dt
	}
	if in.Has(core.ActionPitchDown) {
		p.Pitch -= turn * dt
	}
	p.Pitch = core.ClampF(p.Pitch, -maxPitch, maxPitch)

	// Split velocity into forward speed and lateral drift; the forward
	// component chases the throttle target, the drift bleeds away. This is
	// what makes the craft feel piloted instead of Newtonian-slippery.
	fwd := p.Forward()
	topSpeed := tun.MaxSpeed * r.Mods.ThrustMult
	target := p.Throttle * topSpeed

	fSpeed := p.Vel.Dot(fwd)
	lateral := p.Vel.Sub(fwd.Scale(fSpeed))

	fSpeed += (target - fSpeed) * (1 - math.Exp(-tun.AccelRate*dt))
	lateral = lateral.Scale(math.Exp(-tun.DriftDecay * dt))
	p.Vel = fwd.Scale(fSpeed).Add(lateral)

	if speed := p.Vel.Len(); speed > topSpeed {
		p.Vel = p.Vel.Scale(topSpeed / speed)
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	clampFlightBounds(&p.Pos, &p.Vel, tun.FieldBound, tun.WallDamping)
}

// clampFlightBounds boxes the craft in and damps velocity on any axis that
// had to clamp, a soft wall bounce rather than a hard stop.
func clampFlightBounds(pos, vel *core.Vec3, bound, damping float64) {
	if pos.X > bound {
		pos.X = bound
		vel.X *= -damping
	} else if pos.X < -bound {
		pos.X = -bound
		vel.X *= -damping
	}
	if pos.Y > bound {
		pos.Y = bound
		vel.Y *= -damping
	} else if pos.Y < -bound {
		pos.Y = -bound
		vel.Y *= -damping
	}
	if pos.Z > bound {
		pos.Z = bound
		vel.Z *= -damping
	} else if pos.Z < -bound {
		pos.Z = -bound
		vel.Z *= -damping
	}
}
