package sim

// EnemyType identifies an enemy template.
type EnemyType string

// Registered enemy types. The winter variants share stats with their base
// type and only change how the enemy is displayed.
const (
	EnemyNormal     EnemyType = "NORMAL"
	EnemyFast       EnemyType = "FAST"
	EnemyTank       EnemyType = "TANK"
	EnemyIce        EnemyType = "ICE"
	EnemyFrostGiant EnemyType = "FROST_GIANT"
	EnemyBlizzard   EnemyType = "BLIZZARD"
)

// DefaultEnemyType is used when a lookup misses.
const DefaultEnemyType = EnemyNormal

// WinterFromWave is the first wave that spawns winter variants.
const WinterFromWave = 11

// EnemyTemplate is the immutable stat blueprint of an enemy type.
type EnemyTemplate struct {
	ID         EnemyType
	Name       string
	BaseHealth int
	Speed      float64 // world units per tick
	Reward     int
	Size       int // visual size class
}

var templateOrder = []EnemyTemplate{
	{ID: EnemyNormal, Name: "Normal", BaseHealth: 80, Speed: 2.0, Reward: 10, Size: 12},
	{ID: EnemyFast, Name: "Fast", BaseHealth: 50, Speed: 3.5, Reward: 8, Size: 10},
	{ID: EnemyTank, Name: "Tank", BaseHealth: 350, Speed: 0.8, Reward: 25, Size: 18},
	{ID: EnemyIce, Name: "Ice", BaseHealth: 80, Speed: 2.0, Reward: 10, Size: 12},
	{ID: EnemyBlizzard, Name: "Blizzard", BaseHealth: 50, Speed: 3.5, Reward: 8, Size: 10},
	{ID: EnemyFrostGiant, Name: "Frost Giant", BaseHealth: 350, Speed: 0.8, Reward: 25, Size: 18},
}

var templates = func() map[EnemyType]EnemyTemplate {
	m := make(map[EnemyType]EnemyTemplate, len(templateOrder))
	for _, t := range templateOrder {
		m[t.ID] = t
	}
	return m
}()

var winterVariants = map[EnemyType]EnemyType{
	EnemyNormal: EnemyIce,
	EnemyFast:   EnemyBlizzard,
	EnemyTank:   EnemyFrostGiant,
}

// Template returns a copy of the template for id, or the default template
// when id is unknown.
func Template(id EnemyType) EnemyTemplate {
	if t, ok := templates[id]; ok {
		return t
	}
	return templates[DefaultEnemyType]
}

// HasTemplate reports whether id is registered.
func HasTemplate(id EnemyType) bool {
	_, ok := templates[id]
	return ok
}

// Templates lists every registered template in registration order.
func Templates() []EnemyTemplate {
	out := make([]EnemyTemplate, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// Seasonal maps a rolled type to the variant shown at the given wave.
func Seasonal(id EnemyType, wave int) EnemyType {
	if wave < WinterFromWave {
		return id
	}
	if v, ok := winterVariants[id]; ok {
		return v
	}
	return id
}

// Spawn builds a live enemy from the template at the given position.
// A positive buff raises both health and max health.
func (t EnemyTemplate) Spawn(id int, at Point, buff int) *Enemy {
	e := &Enemy{
		ID:        id,
		Type:      t.ID,
		Pos:       at,
		Health:    t.BaseHealth,
		MaxHealth: t.BaseHealth,
		Reward:    t.Reward,
		Speed:     t.Speed,
		Size:      t.Size,
		Alive:     true,
	}
	e.BuffHealth(buff)
	return e
}
