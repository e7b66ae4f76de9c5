package sim

import "testing"

func TestProjectileHitsOnce(t *testing.T) {
	target := enemyAt(1, 25, 0)
	p := NewProjectile(Point{}, target, 30)

	p.Update() // 25 away: moves to 10
	if !p.Active || target.Health != 80 {
		t.Fatalf("first tick: active=%v health=%d", p.Active, target.Health)
	}
	if p.Pos != (Point{10, 0}) {
		t.Errorf("pos = %v, expected (10,0)", p.Pos)
	}

	p.Update() // 15 away: moves to 20
	p.Update() // 5 away: contact
	if p.Active {
		t.Error("projectile should deactivate on contact")
	}
	if target.Health != 50 {
		t.Errorf("Health = %d, expected 50", target.Health)
	}

	p.Update()
	if target.Health != 50 {
		t.Error("inactive projectile dealt damage again")
	}
}

func TestProjectileTargetDiedBeforeArrival(t *testing.T) {
	target := enemyAt(1, 100, 0)
	p := NewProjectile(Point{}, target, 30)

	p.Update()
	target.TakeDamage(1000) // killed by someone else
	health := target.Health

	p.Update()
	if p.Active {
		t.Error("projectile should deactivate when its target is dead")
	}
	if target.Health != health {
		t.Error("projectile must not damage a dead target")
	}
}

func TestProjectileTargetFinished(t *testing.T) {
	target := enemyAt(1, 5, 0)
	target.Finished = true
	p := NewProjectile(Point{}, target, 30)

	p.Update()
	if p.Active || target.Health != 80 {
		t.Errorf("finished target: active=%v health=%d", p.Active, target.Health)
	}
}

func TestProjectileHomesOnMovingTarget(t *testing.T) {
	target := enemyAt(1, 100, 0)
	p := NewProjectile(Point{}, target, 10)

	p.Update()
	target.Pos = Point{X: 10, Y: 100}
	p.Update()

	if p.Pos.Y <= 0 {
		t.Errorf("projectile should steer toward the new target position, pos=%v", p.Pos)
	}
}
