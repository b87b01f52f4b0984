package sim

import (
	"math"

	"github.com/beltworks/beltrunner/internal/core"
)

// resolveContact is the one contact primitive every collision pair shares:
// separate overlapping bodies along the contact normal weighted by the other
// body's mass share, then apply a normal impulse if the pair is closing.
// Returns the closing speed at impact and whether the pair overlapped at
// all. Call sites own the consequences: damage formulas, grace windows,
// event text.
func resolveContact(posA, velA *core.Vec3, massA float64, posB, velB *core.Vec3, massB float64, radiusSum, restitution float64) (float64, bool) {
	delta := posB.Sub(*posA)
	distSq := delta.LenSq()
	if distSq >= radiusSum*radiusSum {
		return 0, false
	}

	dist := math.Sqrt(distSq)
	normal := core.Vec3{X: 1}
	if dist > 1e-9 {
		normal = delta.Scale(1 / dist)
	}

	// Positional correction: the heavier body gives less ground.
	overlap := radiusSum - dist
	total := massA + massB
	if total <= 0 {
		total = 1
	}
	*posA = posA.Sub(normal.Scale(overlap * massB / total))
	*posB = posB.Add(normal.Scale(overlap * massA / total))

	// Impulse only when the pair is closing; separating pairs are left to
	// drift apart on their own.
	closing := -velB.Sub(*velA).Dot(normal)
	if closing <= 0 {
		return 0, true
	}

	j := (1 + restitution) * closing / (1/massA + 1/massB)
	*velA = velA.Sub(normal.Scale(j / massA))
	*velB = velB.Add(normal.Scale(j / massB))
	return closing, true
}

// resolveCollisions runs the four contact pairs for the frame:
// rock-rock, rock-pirate, player-rock, and the player-pirate ram. The rock
// loop is O(n²) over a deliberately small population.
func (r *Run) resolveCollisions() {
	tun := &r.Tun

	for i := range r.Asteroids {
		a := &r.Asteroids[i]
		for j := i + 1; j < len(r.Asteroids); j++ {
			b := &r.Asteroids[j]
			resolveContact(
				&a.Pos, &a.Vel, a.massProxy(),
				&b.Pos, &b.Vel, b.massProxy(),
				a.Radius+b.Radius, tun.RockRestitution,
			)
		}
	}

	if r.Pirate.Present() {
		r.collideRocksWithPirate()
	}

	r.collidePlayerWithRocks()

	if r.Pirate.Present() {
		r.collidePlayerWithPirate()
	}
}

// collideRocksWithPirate lets flung and drifting rocks batter the raider.
// Damage scales with closing speed and rock mass; the grace window turns a
// lingering overlap into one discrete hit, and each hit buys boarding time.
func (r *Run) collideRocksWithPirate() {
	tun := &r.Tun
	p := &r.Pirate

	for i := range r.Asteroids {
		a := &r.Asteroids[i]
		speed, hit := resolveContact(
			&a.Pos, &a.Vel, a.massProxy(),
			&p.Pos, &p.Vel, tun.PirateMass,
			a.Radius+p.Radius, tun.RockRestitution,
		)
		if !hit || p.State != PirateIncoming {
			continue
		}
		if speed > tun.PirateImpactSpeed && p.impactGrace <= 0 {
			dmg := speed * a.massProxy() * tun.PirateImpactScale
			r.damagePirate(dmg, tun.PirateImpactDelay, "asteroid strike")
			p.impactGrace = tun.PirateImpactGrace
		}
	}
}

// collidePlayerWithRocks knocks the craft around and bills the hull for
// impacts past the damage threshold, with a grace window against re-hits
// from sub-frame penetration.
func (r *Run) collidePlayerWithRocks() {
	tun := &r.Tun
	pl := &r.Player

	for i := range r.Asteroids {
		a := &r.Asteroids[i]
		speed, hit := resolveContact(
			&pl.Pos, &pl.Vel, tun.PlayerMass,
			&a.Pos, &a.Vel, a.massProxy(),
			tun.PlayerRadius+a.Radius, tun.RockRestitution,
		)
		if !hit {
			continue
		}
		if speed > tun.HullImpactSpeed && pl.impactGrace <= 0 {
			r.damagePlayer((speed-tun.HullImpactSpeed)*tun.HullImpactScale, "asteroid impact")
			pl.impactGrace = tun.ImpactGrace
		}
	}
}

// collidePlayerWithPirate resolves ramming: mutual damage scaled by the
// attacker and defender multipliers, plus a boarding delay for landing the
// hit.
func (r *Run) collidePlayerWithPirate() {
	tun := &r.Tun
	pl := &r.Player
	p := &r.Pirate

	speed, hit := resolveContact(
		&pl.Pos, &pl.Vel, tun.PlayerMass,
		&p.Pos, &p.Vel, tun.PirateMass,
		tun.PlayerRadius+p.Radius, tun.RockRestitution,
	)
	if !hit || pl.ramGrace > 0 {
		return
	}

	base := tun.RamDamage + speed*tun.RamSpeedScale
	if p.State == PirateIncoming {
		r.damagePirate(base*r.Mods.RamAttack, tun.RamDelay, "ramming")
	}
	r.damagePlayer(base/r.Mods.RamDefense, "pirate collision")
	pl.ramGrace = tun.RamGrace
}
