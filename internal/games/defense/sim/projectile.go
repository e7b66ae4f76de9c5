package sim

// Projectile tuning.
const (
	ProjectileSpeed = 10.0 // world units per tick
	ContactRadius   = 10.0
)

// Projectile homes in on one enemy and damages it once on contact.
type Projectile struct {
	Pos    Point
	Target *Enemy
	Damage int
	Active bool
}

// NewProjectile creates an active projectile at from aimed at target.
func NewProjectile(from Point, target *Enemy, damage int) *Projectile {
	return &Projectile{
		Pos:    from,
		Target: target,
		Damage: damage,
		Active: true,
	}
}

// Update advances the projectile one tick toward the target's current
// position. It deactivates without effect when the target is already dead
// or has left the map.
func (p *Projectile) Update() {
	if !p.Active {
		return
	}
	if p.Target == nil || !p.Target.Targetable() {
		p.Active = false
		return
	}

	next, dist := p.Pos.StepToward(p.Target.Pos, ProjectileSpeed)
	if dist < ContactRadius {
		p.Target.TakeDamage(p.Damage)
		p.Active = false
		return
	}
	p.Pos = next
}
