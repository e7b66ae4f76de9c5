package sim

import (
	"fmt"
	"strings"
)

// ModifierKind tags an upgrade applied to a tower.
type ModifierKind int

const (
	ModDamage ModifierKind = iota // flat damage boost
	ModRange                      // flat range boost
	ModRate                       // fire-rate category; cooldown is unchanged
)

// Upgrade tuning.
const (
	UpgradeCost = 100
	DamageBoost = 25
	RangeBoost  = 50
)

// Modifier is one upgrade applied to a tower. Amount is added to the stat
// the kind targets.
type Modifier struct {
	Kind   ModifierKind
	Amount int
}

// NewModifier returns the standard modifier for a kind.
func NewModifier(kind ModifierKind) Modifier {
	switch kind {
	case ModDamage:
		return Modifier{Kind: ModDamage, Amount: DamageBoost}
	case ModRange:
		return Modifier{Kind: ModRange, Amount: RangeBoost}
	default:
		return Modifier{Kind: ModRate}
	}
}

// String returns the display name of the kind.
func (k ModifierKind) String() string {
	switch k {
	case ModDamage:
		return "damage"
	case ModRange:
		return "range"
	case ModRate:
		return "rate"
	default:
		return "unknown"
	}
}

// ParseModifierKind parses "damage", "range" or "rate".
func ParseModifierKind(s string) (ModifierKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "damage", "dmg", "":
		return ModDamage, nil
	case "range":
		return ModRange, nil
	case "rate", "firerate", "fire-rate":
		return ModRate, nil
	}
	return ModDamage, fmt.Errorf("unknown modifier %q", s)
}
