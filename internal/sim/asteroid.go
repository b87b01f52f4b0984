package sim

import "github.com/beltworks/beltrunner/internal/core"

// Asteroid is one minable rock. Rocks are created at run start and never
// removed: a depleted rock stays in the field as an inert body so its ID
// keeps resolving for the grabber and the HUD.
type Asteroid struct {
	ID     int
	Radius float64
	Pos    core.Vec3
	Vel    core.Vec3
	Spin   float64 // rotation rate, rad/s
	Rot    float64 // accumulated rotation, for presentation

	Reserve    int // ore units left
	MaxReserve int
	Primary    ResourceID
	// Composition weights over the resource table; the drill samples one
	// kind per extracted unit from this.
	Composition [resourceCount]float64

	RareCargo     bool // carries a sealed relic case
	RareRecovered bool // case already pulled aboard
}

// massProxy stands in for mass in contact resolution. Cubing the radius
// keeps big rocks ploughing through small ones.
func (a *Asteroid) massProxy() float64 {
	return a.Radius * a.Radius * a.Radius
}

// Depleted reports whether the rock has any ore left.
func (a *Asteroid) Depleted() bool {
	return a.Reserve <= 0
}

// rollAsteroid produces one rock from the run's RNG. The roll order is
// fixed: position, velocity, spin, radius, reserve, primary, composition,
// rare case. Changing it changes every seed's field.
func rollAsteroid(rng *RNG, id int, tun Tuning, playerStart, freighterStart core.Vec3) Asteroid {
	b := tun.TravelBound * 0.9
	pos := core.Vec3{
		X: rng.Range(-b, b),
		Y: rng.Range(-10, 10),
		Z: rng.Range(-b, b),
	}
	pos = pushOutside(pos, playerStart, tun.SpawnClearance)
	pos = pushOutside(pos, freighterStart, tun.SpawnClearance)

	vel := core.Vec3{
		X: rng.Range(-1.5, 1.5),
		Y: rng.Range(-1.5, 1.5),
		Z: rng.Range(-1.5, 1.5),
	}

	spin := rng.Range(-0.8, 0.8)
	radius := rng.Range(tun.MinRockRadius, tun.MaxRockRadius)
	reserve := int(radius * rng.Range(2.5, 4.5))
	if reserve < 1 {
		reserve = 1
	}

	weights := primaryWeights(tun.OreBias)
	primary := ResourceID(weightedChoice(rng, weights[:]))

	var comp [resourceCount]float64
	primaryShare := 0.5 + 0.25*rng.Float64()
	rest := 0.0
	for i := range comp {
		if ResourceID(i) == primary {
			continue
		}
		comp[i] = weights[i] * rng.Range(0.4, 1.0)
		rest += comp[i]
	}
	comp[primary] = primaryShare
	if rest > 0 {
		scale := (1 - primaryShare) / rest
		for i := range comp {
			if ResourceID(i) != primary {
				comp[i] *= scale
			}
		}
	}

	rare := rng.Float64() < tun.RareCargoChance

	return Asteroid{
		ID:          id,
		Radius:      radius,
		Pos:         pos,
		Vel:         vel,
		Spin:        spin,
		Reserve:     reserve,
		MaxReserve:  reserve,
		Primary:     primary,
		Composition: comp,
		RareCargo:   rare,
	}
}

// pushOutside moves pos to the clearance boundary around center when it
// rolled inside it. Deterministic, so the factory never has to re-roll.
func pushOutside(pos, center core.Vec3, clearance float64) core.Vec3 {
	delta := pos.Sub(center)
	if delta.LenSq() >= clearance*clearance {
		return pos
	}
	dir := delta.Normalized()
	if dir == (core.Vec3{}) {
		dir = core.Vec3{X: 1}
	}
	return center.Add(dir.Scale(clearance))
}

// stepAsteroids integrates rock drift: Euler position update, drag decay,
// and a soft bounce that zeroes the outward velocity component at the
// travel bounds instead of reflecting it.
func (r *Run) stepAsteroids(dt float64) {
	bound := r.Tun.TravelBound
	drag := 1 - 0.06*dt
	if drag < 0 {
		drag = 0
	}

	for i := range r.Asteroids {
		a := &r.Asteroids[i]
		a.Vel = a.Vel.Scale(drag)
		a.Pos = a.Pos.Add(a.Vel.Scale(dt))
		a.Rot += a.Spin * dt
		softBounce(&a.Pos, &a.Vel, bound)
	}
}

// softBounce clamps pos to the ±bound box and zeroes any outward velocity
// component on the clamped axes.
func softBounce(pos, vel *core.Vec3, bound float64) {
	if pos.X > bound {
		pos.X = bound
		if vel.X > 0 {
			vel.X = 0
		}
	} else if pos.X < -bound {
		pos.X = -bound
		if vel.X < 0 {
			vel.X = 0
		}
	}
	if pos.Y > bound {
		pos.Y = bound
		if vel.Y > 0 {
			vel.Y = 0
		}
	} else if pos.Y < -bound {
		pos.Y = -bound
		if vel.Y < 0 {
			vel.Y = 0
		}
	}
	if pos.Z > bound {
		pos.Z = bound
		if vel.Z > 0 {
			vel.Z = 0
		}
	} else if pos.Z < -bound {
		pos.Z = -bound
		if vel.Z < 0 {
			vel.Z = 0
		}
	}
}
