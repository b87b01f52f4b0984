package sim

import (
	"fmt"

	"github.com/beltworks/beltrunner/internal/core"
)

// updateFreighter moves the drop-off ship along its lane. The crossing
// takes exactly the mission duration, so the freighter reaches the far end
// as the countdown dies.
func (r *Run) updateFreighter() {
	progress := core.ClampF(r.Elapsed/r.Tun.MissionTime, 0, 1)
	r.Freighter.Pos = core.LerpVec(r.Freighter.LaneFrom, r.Freighter.LaneTo, progress)
}

// handleDockToggle services the edge-triggered dock action. Docking wants
// the craft inside the approach radius; between the dock ring and the
// approach radius the craft is snapped onto the ring, the docking assist.
func (r *Run) handleDockToggle(pressed func(core.Action) bool) {
	if !pressed(core.ActionDock) {
		return
	}
	if r.Docked {
		r.undock()
		return
	}

	dist := r.Player.Pos.Dist(r.Freighter.Pos)
	if dist > r.Tun.ApproachRadius {
		r.events.push(ToneWarn, "freighter out of docking range")
		return
	}

	if dist > r.Tun.DockRadius {
		dir := r.Player.Pos.Sub(r.Freighter.Pos).Normalized()
		if dir == (core.Vec3{}) {
			dir = core.Vec3{X: 1}
		}
		r.Player.Pos = r.Freighter.Pos.Add(dir.Scale(r.Tun.DockRadius))
	}

	r.Docked = true
	r.Player.Vel = core.Vec3{}
	r.Player.Throttle = 0
	r.releaseGrab(false)

	// Baselines feed the HUD progress bars for this stay.
	r.dockOffset = r.Player.Pos.Sub(r.Freighter.Pos)
	r.unloadBaseline = r.cargoUnits() + r.RareAboard
	r.repairBaseline = r.Mods.MaxHull - r.Player.Hull
	r.unloadAcc = 0
	r.repairAcc = 0
	r.events.push(ToneGood, "docked with freighter")
}

func (r *Run) undock() {
	r.Docked = false
	r.dockOffset = core.Vec3{}
	r.unloadBaseline = 0
	r.repairBaseline = 0
	r.unloadAcc = 0
	r.repairAcc = 0
	r.events.push(ToneInfo, "undocked")
}

// stepDocked replaces flight while moored: the craft rides the freighter at
// the offset frozen at dock time, cargo unloads and the hull repairs at
// fixed rates through fractional accumulators so partial progress carries
// across frames.
func (r *Run) stepDocked(dt float64) {
	r.Player.Pos = r.Freighter.Pos.Add(r.dockOffset)
	r.Player.Vel = core.Vec3{}

	if r.cargoUnits()+r.RareAboard > 0 {
		r.unloadAcc += r.Tun.UnloadRate * dt
		for r.unloadAcc >= 1 && r.transferOneUnit() {
			r.unloadAcc--
		}
	} else {
		r.unloadAcc = 0
	}

	if r.Player.Hull < r.Mods.MaxHull {
		r.repairAcc += r.Tun.RepairRate * dt
		for r.repairAcc >= 1 && r.Player.Hull < r.Mods.MaxHull {
			r.repairAcc--
			r.Player.Hull = core.ClampF(r.Player.Hull+1, 0, r.Mods.MaxHull)
		}
	} else {
		r.repairAcc = 0
	}
}

// transferOneUnit moves one unit to the freighter: rare cases first, then
// ordinary cargo highest value-per-unit first. Each unit gets its own feed
// line.
func (r *Run) transferOneUnit() bool {
	if r.RareAboard > 0 {
		r.RareAboard--
		r.RareDelivered++
		r.DeliveredUnits++
		r.DeliveredValue += r.Tun.RareCargoValue
		r.events.push(ToneGood, "transferred: sealed relic case")
		return true
	}

	kind, ok := r.bestCargoKind()
	if !ok {
		return false
	}
	r.removeCargoUnit(kind)
	r.DeliveredUnits++
	r.DeliveredValue += Resources[kind].UnitValue
	r.events.push(ToneInfo, fmt.Sprintf("transferred: %s", Resources[kind].Label))
	return true
}

// evaluateOutcome closes the run: an emptied hull loses immediately, and a
// dead countdown wins docked or loses undocked. Boarding is handled inside
// the pirate machine. Once terminal, nothing here runs again.
func (r *Run) evaluateOutcome() {
	if r.Status != StatusActive {
		return
	}

	if r.Player.Hull <= 0 {
		r.Status = StatusLost
		r.Reason = ReasonHullBreach
		r.events.push(ToneBad, "hull breach")
		return
	}

	if r.Countdown <= 0 {
		r.Countdown = 0
		if r.Docked {
			r.Status = StatusWon
			r.events.push(ToneGood, "contract complete: freighter under way")
		} else {
			r.Status = StatusLost
			r.Reason = ReasonTimeout
			r.events.push(ToneBad, "freighter gone: left in the rocks")
		}
	}
}
