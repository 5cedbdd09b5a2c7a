// internal/entity/tower.go
package entity

import (
	"go-towers/internal/defs"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"
)

// Tower is a placed defence. What it does each step depends on its definition's behavior.
type Tower struct {
	ID       int
	Def      defs.TowerDefinition
	Cell     gridmap.Cell
	Position gridmap.Point
	Level    int
	Rotation float64 // radians, screen space
	Cooldown Countdown
	Range    Range
	BornWave int
	Aged     bool

	cellSize    float64
	bonusDamage int
	behavior    behavior
}

// NewTower creates an unplaced tower of the given level (at least 1).
func NewTower(def defs.TowerDefinition, level int) *Tower {
	if level < 1 {
		level = 1
	}
	return &Tower{
		Def:      def,
		Level:    level,
		Cooldown: NewCountdown(def.Cooldown),
		Range:    NewRange(def.Range),
		cellSize: 1,
		behavior: newBehavior(def.Behavior),
	}
}

// Place anchors the tower on a cell of the grid.
func (t *Tower) Place(grid *gridmap.Grid, cell gridmap.Cell) {
	t.Cell = cell
	t.Position = grid.CellToPixelCentre(cell)
	t.cellSize = grid.CellSize
}

// Value is what the tower is worth: its base cost plus the cost of each level above the first.
// Aged towers are worth nothing.
func (t *Tower) Value() int {
	if t.Aged {
		return 0
	}
	return t.Def.BaseCost + (t.Level-1)*t.Def.LevelCost
}

// Damage per hit.
func (t *Tower) Damage() int {
	dmg := (t.Def.BaseDamage + t.bonusDamage) * t.Level
	if t.Aged {
		dmg /= 2
	}
	return dmg
}

// IsOnCooldown reports whether the tower has to wait before attacking again.
func (t *Tower) IsOnCooldown() bool {
	return !t.Cooldown.Done()
}

// InRange reports whether the enemy is within the tower's reach.
func (t *Tower) InRange(e *Enemy) bool {
	return t.Range.Contains(toCells(e.Position.Subtract(t.Position), t.cellSize))
}

// AcquireTarget picks a live enemy in range according to the tower's target policy.
func (t *Tower) AcquireTarget(enemies []*Enemy) *Enemy {
	var best *Enemy
	bestDist := 0.0
	for _, e := range enemies {
		if e.IsDead() || !t.InRange(e) {
			continue
		}
		if t.Def.TargetTag != "" && !e.HasTag(t.Def.TargetTag) {
			continue
		}
		if t.Def.Targeting != defs.TargetNearest {
			return e
		}
		d := e.Position.DistanceTo(t.Position)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// Step advances the cooldown and lets the tower act. Launched projectiles are returned.
func (t *Tower) Step(data *StepData) []Projectile {
	t.Cooldown.Step()
	return t.behavior.step(t, data)
}

// Age degrades the tower once. It reports whether anything changed.
func (t *Tower) Age() bool {
	if t.Aged {
		return false
	}
	t.Aged = true
	return true
}

// CanUpgrade reports whether upgrades are still allowed.
func (t *Tower) CanUpgrade() bool {
	return !t.Aged
}

// Upgrade applies the tower type's upgrade. It reports false if the tower cannot improve.
func (t *Tower) Upgrade() bool {
	if !t.CanUpgrade() {
		return false
	}
	up := t.Def.Upgrade
	switch up.Kind {
	case defs.UpgradeDamage:
		t.bonusDamage += up.Amount
		return true
	case defs.UpgradeCooldown:
		period := t.Cooldown.Period() - up.Amount
		if period < up.Min {
			period = up.Min
		}
		if period == t.Cooldown.Period() {
			return false
		}
		t.Cooldown.SetPeriod(period)
		return true
	}
	return false
}

// SetLevel changes the tower's tier.
func (t *Tower) SetLevel(level int) {
	if level >= 1 {
		t.Level = level
	}
}

// aimAt turns toward the enemy and reports whether the tower now faces it exactly.
func (t *Tower) aimAt(e *Enemy) bool {
	d := e.Position.Subtract(t.Position)
	bearing := utils.Bearing(d.X, d.Y)
	t.Rotation = utils.RotateToward(t.Rotation, bearing, utils.Radians(t.Def.RotationThreshold))
	return t.Rotation == bearing
}
