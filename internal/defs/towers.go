// internal/defs/towers.go
package defs

// BehaviorType selects the code path a tower runs each step.
type BehaviorType string

const (
	BehaviorTurret  BehaviorType = "turret"
	BehaviorMissile BehaviorType = "missile"
	BehaviorPulse   BehaviorType = "pulse"
)

// RangeShape is the geometry of a tower's reach.
type RangeShape string

const (
	RangeCircle RangeShape = "circle"
	RangePlus   RangeShape = "plus"
)

// TargetPolicy picks among the enemies in range.
type TargetPolicy string

const (
	TargetFirst   TargetPolicy = "first"
	TargetNearest TargetPolicy = "nearest"
)

// UpgradeKind is what an upgrade improves.
type UpgradeKind string

const (
	UpgradeDamage   UpgradeKind = "damage"
	UpgradeCooldown UpgradeKind = "cooldown"
)

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Behavior          BehaviorType `json:"behavior"`
	Targeting         TargetPolicy `json:"targeting"`
	Range             RangeDef     `json:"range"`
	Cooldown          int          `json:"cooldown"` // steps
	BaseCost          int          `json:"base_cost"`
	LevelCost         int          `json:"level_cost"`
	BaseDamage        int          `json:"base_damage"`
	DamageType        DamageType   `json:"damage_type"`
	RotationThreshold float64      `json:"rotation_threshold"` // degrees per step, 0 turns instantly
	TargetTag         string       `json:"target_tag,omitempty"`
	Slow              *SlowDef     `json:"slow,omitempty"`
	Missile           *MissileDef  `json:"missile,omitempty"`
	Pulse             *PulseDef    `json:"pulse,omitempty"`
	Upgrade           UpgradeDef   `json:"upgrade"`
	Visuals           Visuals      `json:"visuals"`
}

// RangeDef describes a tower's reach in cells.
type RangeDef struct {
	Shape  RangeShape `json:"shape"`
	Radius float64    `json:"radius,omitempty"`
	Min    float64    `json:"min,omitempty"`
	Max    float64    `json:"max,omitempty"`
}

// SlowDef reduces a target's speed by By per attack, never below Floor (cells per step).
type SlowDef struct {
	By    float64 `json:"by"`
	Floor float64 `json:"floor"`
}

// MissileDef parameters for homing missiles.
type MissileDef struct {
	Speed  float64 `json:"speed"`  // cells per step
	Reach  float64 `json:"reach"`  // detonation distance
	Splash float64 `json:"splash"` // blast radius
}

// PulseDef parameters for directional pulses.
type PulseDef struct {
	Speed float64 `json:"speed"`
	Hits  int     `json:"hits"`
}

// UpgradeDef is the single upgrade a tower type offers.
type UpgradeDef struct {
	Kind   UpgradeKind `json:"kind"`
	Amount int         `json:"amount"`
	Cost   int         `json:"cost"`
	Min    int         `json:"min,omitempty"`
}
