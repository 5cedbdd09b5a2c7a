// internal/entity/enemy.go
package entity

import (
	"image/color"
	"math"

	"go-towers/internal/defs"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"
)

// Enemy walks the path field from a spawn toward the goal.
// It moves between cell centres and only reads a new direction on reaching one.
type Enemy struct {
	ID       int
	Def      defs.EnemyDefinition
	Position gridmap.Point
	Speed    float64 // cells per step
	Health   int
	Stage    int
	Size     float64 // cells
	Color    color.RGBA

	from, to gridmap.Cell
	heading  gridmap.Cell
}

// NewEnemy creates an enemy at full health in its strongest stage.
func NewEnemy(def defs.EnemyDefinition) *Enemy {
	e := &Enemy{
		Def:    def,
		Speed:  def.Speed,
		Health: def.Health,
		Stage:  def.StageCount() - 1,
	}
	e.applyStageVisuals()
	return e
}

// Place puts the enemy on the centre of a cell.
func (e *Enemy) Place(grid *gridmap.Grid, cell gridmap.Cell) {
	e.Position = grid.CellToPixelCentre(cell)
	e.from, e.to = cell, cell
	e.heading = gridmap.Blocked
}

// Points is the reward for killing the enemy.
func (e *Enemy) Points() int {
	return e.Def.Points
}

// IsDead reports whether health has run out.
func (e *Enemy) IsDead() bool {
	return e.Health <= 0
}

// HasTag reports whether the enemy carries a capability tag.
func (e *Enemy) HasTag(tag string) bool {
	for _, t := range e.Def.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Damage applies damage of the given type. Types the enemy does not absorb are ignored.
// A multi-stage enemy drops one stage at full stage health when its health would go negative;
// in the last stage health is clamped at zero.
func (e *Enemy) Damage(amount int, t defs.DamageType) {
	if amount <= 0 || e.IsDead() || !e.Def.TakesDamage(t) {
		return
	}
	e.Health -= amount
	if e.Health >= 0 {
		return
	}
	if e.Stage > 0 {
		e.Stage--
		e.Health = e.Def.Health
		e.applyStageVisuals()
		return
	}
	e.Health = 0
}

// Slow reduces speed by `by`, never below floor.
func (e *Enemy) Slow(by, floor float64) {
	if e.Speed <= floor {
		return
	}
	e.Speed = math.Max(floor, e.Speed-by)
}

// Cell is the cell the enemy currently stands in.
func (e *Enemy) Cell(grid *gridmap.Grid) gridmap.Cell {
	return grid.PixelToCell(e.Position)
}

// Origin is the cell centre the enemy last left.
func (e *Enemy) Origin() gridmap.Cell {
	return e.from
}

// Waypoint is the cell centre the enemy is walking toward.
func (e *Enemy) Waypoint() gridmap.Cell {
	return e.to
}

// Step moves the enemy grid_speed cells along the field and reports whether it is still in play.
func (e *Enemy) Step(data *StepData) bool {
	grid := data.Grid

	// The cell ahead was built on: walk back to the centre we came from.
	if e.to != e.from && grid.IsBlocked(e.to) && !grid.IsBlocked(e.from) {
		e.from, e.to = e.to, e.from
	}

	remaining := e.Speed * grid.CellSize
	for remaining > 0 {
		target := grid.CellToPixelCentre(e.to)
		dist := e.Position.DistanceTo(target)
		if dist > remaining {
			e.Position = e.Position.Add(target.Subtract(e.Position).Scale(remaining / dist))
			break
		}
		e.Position = target
		remaining -= dist

		delta := e.nextDelta(data, e.to)
		if delta == gridmap.Blocked {
			break
		}
		e.heading = delta
		e.from, e.to = e.to, e.to.Add(delta)
	}

	return e.onGrid(data)
}

func (e *Enemy) nextDelta(data *StepData, at gridmap.Cell) gridmap.Cell {
	if data.Field != nil {
		if data.Field.Contains(at) {
			return data.Field.Delta(at)
		}
		if data.Grid.IsBlocked(at) {
			if d := data.Field.EscapeDelta(at); d != gridmap.Blocked {
				return d
			}
		}
	}
	return e.heading
}

// onGrid is true while the bounding box touches the playfield or the unit stands on a path cell.
func (e *Enemy) onGrid(data *StepData) bool {
	grid := data.Grid
	half := e.Size * grid.CellSize / 2
	w, h := grid.Pixels()
	if utils.RectsIntersect(e.Position.X-half, e.Position.Y-half, e.Position.X+half, e.Position.Y+half, 0, 0, w, h) {
		return true
	}
	return data.Field != nil && data.Field.Contains(e.Cell(grid))
}

func (e *Enemy) applyStageVisuals() {
	v := e.Def.StageVisuals(e.Stage)
	e.Size, e.Color = v.Size, v.Color
}
