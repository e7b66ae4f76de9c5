package sim

// RNG is a deterministic pseudo-random number generator (64-bit LCG).
// The simulation owns one per run so that a seed plus a command script
// always reproduces the same spawn sequence.
type RNG struct {
	state uint64
}

// NewRNG creates a generator for the given seed. A zero seed is bumped to 1.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next advances the generator and returns the raw state.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n). Non-positive n yields 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// State exposes the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
