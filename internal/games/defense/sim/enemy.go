package sim

// Enemy is a single hostile unit walking the path.
type Enemy struct {
	ID        int
	Type      EnemyType
	Pos       Point
	Health    int
	MaxHealth int
	Reward    int
	Speed     float64
	Size      int
	PathIndex int // next waypoint
	Alive     bool
	Finished  bool
}

// BuffHealth adds a flat amount to health; the result becomes the new max.
func (e *Enemy) BuffHealth(amount int) {
	if amount <= 0 || !e.Alive {
		return
	}
	e.Health += amount
	e.MaxHealth = e.Health
}

// Update moves the enemy one tick along path. One waypoint is consumed per
// tick at most; the position is not snapped onto the waypoint.
func (e *Enemy) Update(path []Point) {
	if !e.Alive || e.Finished {
		return
	}
	if e.PathIndex >= len(path) {
		e.Finished = true
		return
	}

	next, dist := e.Pos.StepToward(path[e.PathIndex], e.Speed)
	if dist < e.Speed {
		e.PathIndex++
		if e.PathIndex >= len(path) {
			e.Finished = true
		}
		return
	}
	e.Pos = next
}

// TakeDamage applies damage and reports whether this hit killed the enemy.
// Dead or finished enemies are unaffected.
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.Alive || e.Finished || amount <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.Alive = false
		return true
	}
	return false
}

// Targetable reports whether towers may shoot at the enemy.
func (e *Enemy) Targetable() bool {
	return e.Alive && !e.Finished
}
