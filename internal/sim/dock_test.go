package sim

import (
	"testing"

	"github.com/beltworks/beltrunner/internal/core"
)

func TestDockOutOfRangeWarns(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Player.Pos = r.Freighter.Pos.Add(core.Vec3{X: r.Tun.ApproachRadius + 5})

	r.handleDockToggle(pressOnly(core.ActionDock))

	if r.Docked {
		t.Fatal("docking outside the approach radius should fail")
	}
	if countEvents(r, "freighter out of docking range") != 1 {
		t.Error("the refused dock should land one feed line")
	}
}

func TestDockAssistSnapsToRing(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Player.Pos = r.Freighter.Pos.Add(core.Vec3{X: 7}) // inside approach, outside ring
	r.Player.Vel = core.Vec3{X: -3}
	r.Player.Throttle = 0.75

	r.handleDockToggle(pressOnly(core.ActionDock))

	if !r.Docked {
		t.Fatal("docking inside the approach radius should succeed")
	}
	if d := r.Player.Pos.Dist(r.Freighter.Pos); !almostEq(d, r.Tun.DockRadius) {
		t.Errorf("assist should snap the craft onto the dock ring, dist %v", d)
	}
	if r.Player.Vel != (core.Vec3{}) || r.Player.Throttle != 0 {
		t.Error("docking should zero velocity and throttle")
	}
}

func TestDockForceReleasesGrabWithoutFling(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Player.Pos = r.Freighter.Pos.Add(core.Vec3{X: 2})
	rockVel := core.Vec3{X: 0.5}
	r.Asteroids = []Asteroid{{ID: 0, Radius: 2, Pos: r.Player.Pos.Add(core.Vec3{Z: -5}), Vel: rockVel, Reserve: 5, MaxReserve: 5}}
	r.tryGrab()
	if r.GrabbedRockID() != 0 {
		t.Fatal("setup: rock should latch")
	}

	r.handleDockToggle(pressOnly(core.ActionDock))

	if !r.Docked {
		t.Fatal("dock toggle on the ring should dock")
	}
	if r.GrabbedRockID() != -1 {
		t.Error("docking should force-release the grabber")
	}
	if r.Asteroids[0].Vel != rockVel {
		t.Error("a forced release should not fling the rock")
	}
}

func TestDockSnapshotsBaselines(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.addCargo(Ferrite, 3)
	r.RareAboard = 1
	r.damagePlayer(12, "test rig")
	r.Player.Pos = r.Freighter.Pos

	r.handleDockToggle(pressOnly(core.ActionDock))

	if r.unloadBaseline != 4 {
		t.Errorf("unload baseline should count ore plus rare cases, got %d", r.unloadBaseline)
	}
	if !almostEq(r.repairBaseline, 12) {
		t.Errorf("repair baseline should be the hull deficit, got %v", r.repairBaseline)
	}
}

func TestDockedUnloadRareFirstThenRichest(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.addCargo(Ferrite, 2)
	r.addCargo(Aurum, 1)
	r.RareAboard = 1
	r.Player.Pos = r.Freighter.Pos
	r.handleDockToggle(pressOnly(core.ActionDock))
	if !r.Docked {
		t.Fatal("setup: should dock")
	}

	// 0.6s at 2 units/s: exactly one transfer, and it must be the case.
	for i := 0; i < 6; i++ {
		r.stepDocked(0.1)
	}
	if r.RareAboard != 0 || r.RareDelivered != 1 {
		t.Fatalf("the sealed case should transfer first, aboard=%d delivered=%d", r.RareAboard, r.RareDelivered)
	}
	if r.DeliveredValue != r.Tun.RareCargoValue {
		t.Errorf("case value should bank, got %d", r.DeliveredValue)
	}
	if r.cargoUnits() != 3 {
		t.Errorf("ordinary cargo should still be aboard, got %d units", r.cargoUnits())
	}

	// Second transfer: the aurum outranks the ferrite.
	for i := 0; i < 5; i++ {
		r.stepDocked(0.1)
	}
	if r.Cargo[Aurum].Units != 0 {
		t.Error("the richest ordinary kind should transfer next")
	}
	if r.Cargo[Ferrite].Units != 2 {
		t.Errorf("ferrite should wait its turn, got %d", r.Cargo[Ferrite].Units)
	}

	// Run the hold dry.
	for i := 0; i < 11; i++ {
		r.stepDocked(0.1)
	}
	wantValue := r.Tun.RareCargoValue + Resources[Aurum].UnitValue + 2*Resources[Ferrite].UnitValue
	if r.DeliveredValue != wantValue {
		t.Errorf("delivered value should total %d, got %d", wantValue, r.DeliveredValue)
	}
	if r.DeliveredUnits != 4 {
		t.Errorf("all four units should deliver, got %d", r.DeliveredUnits)
	}
	if r.cargoUnits() != 0 || !almostEq(r.cargoUsed(), 0) {
		t.Errorf("the hold should be empty, %d units %v volume", r.cargoUnits(), r.cargoUsed())
	}
	if countEvents(r, "transferred: sealed relic case") != 1 {
		t.Error("each transfer should land its own feed line")
	}

	// An empty hold parks the accumulator instead of banking phantom time.
	r.stepDocked(0.1)
	if r.unloadAcc != 0 {
		t.Errorf("empty hold should reset the unload accumulator, got %v", r.unloadAcc)
	}
	if r.DeliveredUnits != 4 {
		t.Error("an empty hold should deliver nothing further")
	}
}

func TestDockedRepair(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.damagePlayer(10, "test rig")
	r.Player.Pos = r.Freighter.Pos
	r.handleDockToggle(pressOnly(core.ActionDock))

	// 2.7s at 4 hull/s covers the 10-point deficit with slack.
	for i := 0; i < 27; i++ {
		r.stepDocked(0.1)
	}

	if !almostEq(r.Player.Hull, r.Mods.MaxHull) {
		t.Errorf("the yard should top the hull back to %v, got %v", r.Mods.MaxHull, r.Player.Hull)
	}

	r.stepDocked(0.1)
	if r.repairAcc != 0 {
		t.Errorf("a full hull should reset the repair accumulator, got %v", r.repairAcc)
	}
}

func TestDockedRidesTheFreighter(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Asteroids = nil // no rock may shove the moored craft mid-ride
	r.Player.Pos = r.Freighter.Pos.Add(core.Vec3{X: 2})
	r.handleDockToggle(pressOnly(core.ActionDock))
	offset := r.Player.Pos.Sub(r.Freighter.Pos)

	// Let the freighter crawl, then confirm the craft kept station.
	for i := 0; i < 50; i++ {
		r.Step(0.1, core.NewInputFrame())
	}

	got := r.Player.Pos.Sub(r.Freighter.Pos)
	if !almostEq(got.X, offset.X) || !almostEq(got.Y, offset.Y) || !almostEq(got.Z, offset.Z) {
		t.Errorf("docked craft should hold its dock-time offset, got %+v want %+v", got, offset)
	}
}

func TestUndockClearsBaselines(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.addCargo(Ferrite, 3)
	r.Player.Pos = r.Freighter.Pos
	r.handleDockToggle(pressOnly(core.ActionDock))
	r.handleDockToggle(pressOnly(core.ActionDock))

	if r.Docked {
		t.Fatal("the second toggle should undock")
	}
	if r.unloadBaseline != 0 || r.repairBaseline != 0 || r.unloadAcc != 0 || r.repairAcc != 0 {
		t.Error("undocking should clear the dock baselines and accumulators")
	}
	if countEvents(r, "undocked") != 1 {
		t.Error("undocking should land a feed line")
	}
}

func TestTimeoutDockedWins(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Player.Pos = r.Freighter.Pos
	r.handleDockToggle(pressOnly(core.ActionDock))
	r.Countdown = 0.05

	r.Step(0.1, core.NewInputFrame())

	if r.Status != StatusWon {
		t.Fatalf("timeout while docked should win, got %s", r.Status)
	}
	if r.Reason != "" {
		t.Errorf("a win should carry no loss reason, got %q", r.Reason)
	}
	if r.Countdown != 0 {
		t.Errorf("countdown should floor at zero, got %v", r.Countdown)
	}
}

func TestTimeoutUndockedLoses(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Countdown = 0.05

	r.Step(0.1, core.NewInputFrame())

	if r.Status != StatusLost {
		t.Fatalf("timeout in the field should lose, got %s", r.Status)
	}
	if r.Reason != ReasonTimeout {
		t.Errorf("loss reason should be %q, got %q", ReasonTimeout, r.Reason)
	}
}

func TestHullBreachLosesSameStep(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Player.Hull = 0

	r.Step(0.1, core.NewInputFrame())

	if r.Status != StatusLost {
		t.Fatalf("an empty hull should lose on the next step, got %s", r.Status)
	}
	if r.Reason != ReasonHullBreach {
		t.Errorf("loss reason should be %q, got %q", ReasonHullBreach, r.Reason)
	}
	if countEvents(r, "hull breach") != 1 {
		t.Error("the breach should land one feed line")
	}
}

func TestFreighterLaneCrossing(t *testing.T) {
	r := NewRun(9, RunModifiers{})

	r.Elapsed = r.Tun.MissionTime / 2
	r.updateFreighter()
	mid := core.LerpVec(r.Freighter.LaneFrom, r.Freighter.LaneTo, 0.5)
	if !almostEq(r.Freighter.Pos.X, mid.X) || !almostEq(r.Freighter.Pos.Z, mid.Z) {
		t.Errorf("half elapsed should put the freighter mid-lane, got %+v want %+v", r.Freighter.Pos, mid)
	}

	r.Elapsed = r.Tun.MissionTime * 2
	r.updateFreighter()
	end := r.Freighter.LaneTo
	if !almostEq(r.Freighter.Pos.X, end.X) || !almostEq(r.Freighter.Pos.Y, end.Y) || !almostEq(r.Freighter.Pos.Z, end.Z) {
		t.Errorf("the crossing should clamp at the far lane end, got %+v want %+v", r.Freighter.Pos, end)
	}
}
