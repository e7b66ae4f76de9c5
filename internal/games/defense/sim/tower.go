package sim

import (
	"math"
	"strings"
)

// TowerKind identifies a tower preset.
type TowerKind string

const (
	TowerArcher TowerKind = "ARCHER"
	TowerCannon TowerKind = "CANNON"
	TowerSniper TowerKind = "SNIPER"
	TowerLaser  TowerKind = "LASER"
)

// never is the timestamp of an event that has not happened yet. It is far
// enough below zero that now-never cannot overflow.
const never int64 = math.MinInt64 / 2

// TowerPreset holds the fixed stats a tower is built with.
type TowerPreset struct {
	Kind           TowerKind
	Name           string
	Cost           int
	Range          float64
	CooldownMillis int64
	Damage         int
}

var presets = []TowerPreset{
	{Kind: TowerArcher, Name: "Archer", Cost: 50, Range: 120, CooldownMillis: 600, Damage: 25},
	{Kind: TowerCannon, Name: "Cannon", Cost: 120, Range: 150, CooldownMillis: 1500, Damage: 60},
	{Kind: TowerSniper, Name: "Sniper", Cost: 250, Range: 300, CooldownMillis: 2500, Damage: 150},
	{Kind: TowerLaser, Name: "Laser", Cost: 80, Range: 100, CooldownMillis: 300, Damage: 15},
}

// Presets returns every tower preset in shop order.
func Presets() []TowerPreset {
	out := make([]TowerPreset, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up the preset for kind.
func Preset(kind TowerKind) (TowerPreset, bool) {
	for _, p := range presets {
		if p.Kind == kind {
			return p, true
		}
	}
	return TowerPreset{}, false
}

// ParseTowerKind resolves a case-insensitive tower name.
func ParseTowerKind(s string) (TowerKind, bool) {
	kind := TowerKind(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := Preset(kind)
	return kind, ok
}

// Tower is a placed defense. Reported stats are the base stats folded
// with the ordered list of applied modifiers.
type Tower struct {
	ID             int
	Kind           TowerKind
	Col, Row       int
	Pos            Point
	BaseRange      float64
	BaseDamage     int
	CooldownMillis int64
	LastShot       int64
	Modifiers      []Modifier
}

// NewTower builds a tower from a preset at the centre of (col, row).
func NewTower(id int, p TowerPreset, col, row int) *Tower {
	return &Tower{
		ID:             id,
		Kind:           p.Kind,
		Col:            col,
		Row:            row,
		Pos:            CellCenter(col, row),
		BaseRange:      p.Range,
		BaseDamage:     p.Damage,
		CooldownMillis: p.CooldownMillis,
		LastShot:       never,
	}
}

// Damage returns the damage carried by the tower's projectiles.
func (t *Tower) Damage() int {
	d := t.BaseDamage
	for _, m := range t.Modifiers {
		if m.Kind == ModDamage {
			d += m.Amount
		}
	}
	return d
}

// Range returns the targeting radius.
func (t *Tower) Range() float64 {
	r := t.BaseRange
	for _, m := range t.Modifiers {
		if m.Kind == ModRange {
			r += float64(m.Amount)
		}
	}
	return r
}

// Cooldown returns the minimum time between shots in milliseconds.
// Rate modifiers are recorded but do not shorten it.
func (t *Tower) Cooldown() int64 {
	return t.CooldownMillis
}

// Upgraded reports whether any modifier has been applied.
func (t *Tower) Upgraded() bool {
	return len(t.Modifiers) > 0
}

// HasModifier reports whether a modifier of kind has been applied.
func (t *Tower) HasModifier(kind ModifierKind) bool {
	for _, m := range t.Modifiers {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Apply appends a modifier. Position, cell and identity are unchanged.
func (t *Tower) Apply(m Modifier) {
	t.Modifiers = append(t.Modifiers, m)
}

// Ready reports whether the cooldown has elapsed at now.
func (t *Tower) Ready(now int64) bool {
	return now-t.LastShot >= t.Cooldown()
}

// InRange reports whether e is strictly inside the targeting radius.
func (t *Tower) InRange(e *Enemy) bool {
	r := t.Range()
	return t.Pos.DistSq(e.Pos) < r*r
}

// SelectTarget returns the nearest targetable enemy in range. Equidistant
// candidates resolve to the one earliest in enemies, which is spawn order.
func (t *Tower) SelectTarget(enemies []*Enemy) *Enemy {
	r := t.Range()
	limit := r * r

	var best *Enemy
	bestDist := math.Inf(1)
	for _, e := range enemies {
		if !e.Targetable() {
			continue
		}
		d := t.Pos.DistSq(e.Pos)
		if d < limit && d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// Update fires at the nearest enemy in range once the cooldown allows it.
// It returns the new projectile, or nil when the tower did not fire.
func (t *Tower) Update(now int64, enemies []*Enemy) *Projectile {
	if !t.Ready(now) {
		return nil
	}
	target := t.SelectTarget(enemies)
	if target == nil {
		return nil
	}
	t.LastShot = now
	return NewProjectile(t.Pos, target, t.Damage())
}
