// Package sim implements the deterministic mining-run simulation: craft
// flight, asteroid physics, the grab/drill extraction loop, the pirate
// threat, docking, and mission outcome. A Run is advanced by Step and
// projected for display by HudSnapshot; nothing here touches I/O.
package sim

// RNG is a small linear congruential generator for deterministic gameplay.
// Every procedural roll in a run (field layout, compositions, pirate timing,
// drill sampling) draws from one RNG in a fixed call order, so identical
// seeds with identical input sequences replay identically.
type RNG struct {
	state uint64
}

// NewRNG creates a generator from a 32-bit run seed.
func NewRNG(seed uint32) *RNG {
	s := uint64(seed)
	if s == 0 {
		s = 1 // Avoid degenerate zero state
	}
	return &RNG{state: s}
}

// Next advances the generator and returns the raw 64-bit state.
func (r *RNG) Next() uint64 {
	// LCG parameters from Knuth's MMIX
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a pseudo-random float in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / float64(1<<64)
}

// Range returns a pseudo-random float in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Intn returns a pseudo-random int in [0, n). Returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// weightedChoice picks an index from an ordered weight list using a
// cumulative roll. Floating-point rounding can leave the roll past the
// running total; the last candidate soaks that up so the pick always
// resolves.
func weightedChoice(r *RNG, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return len(weights) - 1
	}
	roll := r.Float64() * total
	cum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		if roll < cum {
			return i
		}
	}
	return len(weights) - 1
}
