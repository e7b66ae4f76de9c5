package sim

import "math"

// Snapshot is a flattened copy of the simulation state made of primitive
// values, used for determinism checks and by front ends that render from
// another goroutine.
type Snapshot struct {
	Tick      uint64
	Money     int
	Lives     int
	Wave      int
	Phase     Phase
	Remaining int
	RNGState  uint64

	// Each enemy is 6 ints: ID, X, Y (fixed-point x100), Health, MaxHealth, PathIndex.
	EnemyData []int
	// Each tower is 5 ints: ID, Col, Row, Damage, Range.
	TowerData []int
	// Each projectile is 3 ints: X, Y (fixed-point x100), Damage.
	ProjectileData []int
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.Tick,
		Money:     s.Money,
		Lives:     s.Lives,
		Wave:      s.Wave,
		Phase:     s.Phase,
		Remaining: s.Waves.Remaining,
		RNGState:  s.rng.State(),
	}

	snap.EnemyData = make([]int, 0, len(s.Enemies)*6)
	for _, e := range s.Enemies {
		snap.EnemyData = append(snap.EnemyData,
			e.ID, fixed(e.Pos.X), fixed(e.Pos.Y), e.Health, e.MaxHealth, e.PathIndex)
	}

	snap.TowerData = make([]int, 0, len(s.Towers)*5)
	for _, t := range s.Towers {
		snap.TowerData = append(snap.TowerData,
			t.ID, t.Col, t.Row, t.Damage(), int(t.Range()))
	}

	snap.ProjectileData = make([]int, 0, len(s.Projectiles)*3)
	for _, p := range s.Projectiles {
		snap.ProjectileData = append(snap.ProjectileData,
			fixed(p.Pos.X), fixed(p.Pos.Y), p.Damage)
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Money)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.TowerData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ProjectileData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
