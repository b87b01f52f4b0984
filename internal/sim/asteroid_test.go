package sim

import (
	"testing"

	"github.com/beltworks/beltrunner/internal/core"
)

func TestRollAsteroidDeterminism(t *testing.T) {
	tun := DefaultTuning()
	player := core.Vec3{Z: tun.FieldBound * 0.55}
	freighter := core.Vec3{X: -tun.TravelBound * 0.85}

	a := rollAsteroid(NewRNG(1234), 0, tun, player, freighter)
	b := rollAsteroid(NewRNG(1234), 0, tun, player, freighter)

	if a != b {
		t.Error("same seed should roll an identical rock")
	}
}

func TestRollAsteroidShape(t *testing.T) {
	tun := DefaultTuning()
	rng := NewRNG(42)
	player := core.Vec3{Z: tun.FieldBound * 0.55}
	freighter := core.Vec3{X: -tun.TravelBound * 0.85, Y: 3, Z: -20}

	for id := 0; id < 50; id++ {
		a := rollAsteroid(rng, id, tun, player, freighter)

		if a.ID != id {
			t.Fatalf("rock should carry its id, got %d want %d", a.ID, id)
		}
		if a.Radius < tun.MinRockRadius || a.Radius >= tun.MaxRockRadius {
			t.Errorf("rock %d radius %v outside [%v, %v)", id, a.Radius, tun.MinRockRadius, tun.MaxRockRadius)
		}
		if a.Reserve < 1 {
			t.Errorf("rock %d should hold at least one unit of ore, got %d", id, a.Reserve)
		}
		if a.Reserve != a.MaxReserve {
			t.Errorf("rock %d should start full, reserve %d max %d", id, a.Reserve, a.MaxReserve)
		}
		if float64(a.Reserve) > a.Radius*4.5+1 {
			t.Errorf("rock %d reserve %d too rich for radius %v", id, a.Reserve, a.Radius)
		}
		if a.RareRecovered {
			t.Errorf("rock %d should not start recovered", id)
		}
		if a.Depleted() {
			t.Errorf("rock %d should not start depleted", id)
		}
	}
}

func TestRollAsteroidComposition(t *testing.T) {
	tun := DefaultTuning()
	rng := NewRNG(9)
	player := core.Vec3{Z: 33}
	freighter := core.Vec3{X: -59}

	for id := 0; id < 40; id++ {
		a := rollAsteroid(rng, id, tun, player, freighter)

		sum := 0.0
		for kind, w := range a.Composition {
			if w < 0 {
				t.Errorf("rock %d kind %d has negative weight %v", id, kind, w)
			}
			sum += w
		}
		if !almostEq(sum, 1) {
			t.Errorf("rock %d composition should sum to 1, got %v", id, sum)
		}
		if a.Composition[a.Primary] < 0.5 {
			t.Errorf("rock %d primary share should dominate, got %v", id, a.Composition[a.Primary])
		}
	}
}

func TestNewRunSpawnClearance(t *testing.T) {
	r := NewRun(2026, RunModifiers{})
	clearance := r.Tun.SpawnClearance - 1e-9

	for _, a := range r.Asteroids {
		if d := a.Pos.Dist(r.Player.Pos); d < clearance {
			t.Errorf("rock %d spawned %v from the player, want at least %v", a.ID, d, r.Tun.SpawnClearance)
		}
		if d := a.Pos.Dist(r.Freighter.LaneFrom); d < clearance {
			t.Errorf("rock %d spawned %v from the freighter, want at least %v", a.ID, d, r.Tun.SpawnClearance)
		}
	}
}

func TestPushOutside(t *testing.T) {
	center := core.Vec3{X: 10}

	far := core.Vec3{X: 40}
	if got := pushOutside(far, center, 12); got != far {
		t.Errorf("clear position should pass through, got %+v", got)
	}

	near := core.Vec3{X: 13}
	got := pushOutside(near, center, 12)
	if !almostEq(got.Dist(center), 12) {
		t.Errorf("near position should land on the clearance sphere, dist %v", got.Dist(center))
	}
	if got.X < center.X {
		t.Error("push should keep the original side of the center")
	}

	// Dead center has no direction to push along; any fixed choice works
	// as long as it clears.
	onCenter := pushOutside(center, center, 12)
	if !almostEq(onCenter.Dist(center), 12) {
		t.Errorf("center roll should still clear, dist %v", onCenter.Dist(center))
	}
}

func TestStepAsteroidsDragAndDrift(t *testing.T) {
	r := NewRun(1, RunModifiers{})
	r.Asteroids = []Asteroid{{ID: 0, Radius: 2, Pos: core.Vec3{}, Vel: core.Vec3{X: 10}, Spin: 1}}

	r.stepAsteroids(0.1)

	a := &r.Asteroids[0]
	if a.Vel.X >= 10 {
		t.Errorf("drag should bleed speed, got %v", a.Vel.X)
	}
	if a.Pos.X <= 0 {
		t.Errorf("rock should drift forward, got %v", a.Pos.X)
	}
	if !almostEq(a.Rot, 0.1) {
		t.Errorf("rotation should accumulate spin*dt, got %v", a.Rot)
	}
}

func TestStepAsteroidsStayInBounds(t *testing.T) {
	r := NewRun(8, RunModifiers{})
	for i := range r.Asteroids {
		r.Asteroids[i].Vel = core.Vec3{X: 40, Y: -40, Z: 40}
	}

	for i := 0; i < 200; i++ {
		r.stepAsteroids(0.1)
	}

	bound := r.Tun.TravelBound + 1e-9
	for _, a := range r.Asteroids {
		if a.Pos.X > bound || a.Pos.X < -bound ||
			a.Pos.Y > bound || a.Pos.Y < -bound ||
			a.Pos.Z > bound || a.Pos.Z < -bound {
			t.Errorf("rock %d escaped the travel bounds at %+v", a.ID, a.Pos)
		}
	}
}

func TestSoftBounce(t *testing.T) {
	pos := core.Vec3{X: 75, Y: -75}
	vel := core.Vec3{X: 5, Y: -5, Z: 1}
	softBounce(&pos, &vel, 70)

	if pos.X != 70 || pos.Y != -70 {
		t.Errorf("positions should clamp to the bound, got %+v", pos)
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("outward velocity should zero on clamped axes, got %+v", vel)
	}
	if vel.Z != 1 {
		t.Errorf("unclamped axis should keep its velocity, got %v", vel.Z)
	}

	// An inward velocity at the wall survives so the rock can leave.
	pos = core.Vec3{X: 70}
	vel = core.Vec3{X: -3}
	softBounce(&pos, &vel, 70)
	if vel.X != -3 {
		t.Errorf("inward velocity should survive the clamp, got %v", vel.X)
	}
}

func TestMassProxyFavorsBigRocks(t *testing.T) {
	small := Asteroid{Radius: 1.5}
	big := Asteroid{Radius: 5}
	if small.massProxy() >= big.massProxy() {
		t.Errorf("mass proxy should grow with radius, got %v vs %v", small.massProxy(), big.massProxy())
	}
}
