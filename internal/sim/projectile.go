package sim

import (
	"fmt"

	"github.com/beltworks/beltrunner/internal/core"
)

// ShotKind separates flung cargo from cannon rounds.
type ShotKind int

const (
	ShotCargo ShotKind = iota
	ShotWeapon
)

// Shot is a projectile in flight. Shots die on timeout, on leaving the
// padded bounds, or on striking the pirate.
type Shot struct {
	ID         int
	Kind       ShotKind
	Resource   ResourceID // cargo shots only
	Pos        core.Vec3
	Vel        core.Vec3
	TTL        float64
	Radius     float64
	Damage     float64
	DelayBonus float64 // boarding delay granted on a hit
	Color      core.Color
}

// stepWeapons handles the two edge-triggered launch actions. Both are
// silent no-ops when their resource is missing.
func (r *Run) stepWeapons(pressed func(core.Action) bool) {
	if pressed(core.ActionLaunchCargo) {
		r.launchCargo()
	}
	if pressed(core.ActionFireWeapon) {
		r.fireWeapon()
	}
}

// launchCargo flings one unit of the best cargo aboard: highest value per
// unit first. Damage and the boarding-delay bonus scale with the unit value,
// so throwing a relic hurts more than throwing ferrite.
func (r *Run) launchCargo() {
	kind, ok := r.bestCargoKind()
	if !ok {
		return
	}
	r.removeCargoUnit(kind)

	res := Resources[kind]
	tun := &r.Tun
	fwd := r.Player.Forward()
	r.spawnShot(Shot{
		Kind:       ShotCargo,
		Resource:   kind,
		Pos:        r.Player.Pos.Add(fwd.Scale(tun.PlayerRadius + tun.ShotRadius)),
		Vel:        r.Player.Vel.Add(fwd.Scale(tun.CargoShotSpeed)),
		TTL:        tun.ShotTTL,
		Radius:     tun.ShotRadius,
		Damage:     float64(res.UnitValue) * tun.CargoDamageScale,
		DelayBonus: float64(res.UnitValue) * tun.CargoDelayScale,
		Color:      res.Color,
	})
	r.events.push(ToneInfo, fmt.Sprintf("cargo away: %s", res.Label))
}

// fireWeapon spends one round of the installed cannon for a faster,
// fixed-damage shot.
func (r *Run) fireWeapon() {
	if r.Ammo <= 0 {
		return
	}
	r.Ammo--

	tun := &r.Tun
	fwd := r.Player.Forward()
	r.spawnShot(Shot{
		Kind:       ShotWeapon,
		Pos:        r.Player.Pos.Add(fwd.Scale(tun.PlayerRadius + tun.ShotRadius)),
		Vel:        r.Player.Vel.Add(fwd.Scale(tun.WeaponShotSpeed)),
		TTL:        tun.ShotTTL,
		Radius:     tun.ShotRadius,
		Damage:     r.Mods.WeaponDamage,
		DelayBonus: tun.WeaponDelayBonus,
		Color:      core.ColorBrightRed,
	})
}

func (r *Run) spawnShot(s Shot) {
	r.shotSerial++
	s.ID = r.shotSerial
	r.Shots = append(r.Shots, s)
}

// stepShots integrates projectiles and culls them. Shots are processed in
// serial order and each lands at most one pirate hit.
func (r *Run) stepShots(dt float64) {
	bound := r.Tun.TravelBound + r.Tun.ShotBoundsPad
	targetable := r.Pirate.State == PirateIncoming

	kept := r.Shots[:0]
	for i := range r.Shots {
		s := r.Shots[i]
		s.TTL -= dt
		s.Pos = s.Pos.Add(s.Vel.Scale(dt))

		if s.TTL <= 0 || outsideBox(s.Pos, bound) {
			continue
		}

		if targetable {
			reach := s.Radius + r.Pirate.Radius
			if s.Pos.Sub(r.Pirate.Pos).LenSq() <= reach*reach {
				cause := "cannon round"
				if s.Kind == ShotCargo {
					cause = Resources[s.Resource].Label + " slug"
				}
				r.damagePirate(s.Damage, s.DelayBonus, cause)
				targetable = r.Pirate.State == PirateIncoming
				continue
			}
		}

		kept = append(kept, s)
	}
	r.Shots = kept
}

func outsideBox(p core.Vec3, bound float64) bool {
	return p.X < -bound || p.X > bound ||
		p.Y < -bound || p.Y > bound ||
		p.Z < -bound || p.Z > bound
}
