// internal/entity/entity.go
package entity

import (
	"go-towers/pkg/gridmap"
)

// StepData is what towers, enemies and projectiles see during one step.
type StepData struct {
	Grid    *gridmap.Grid
	Field   *gridmap.PathField
	Enemies []*Enemy
}

// Projectile is anything a tower launches that lives for more than one step.
type Projectile interface {
	// Step advances the projectile and reports whether it is still in flight.
	Step(data *StepData) bool
	Position() gridmap.Point
}

// ScheduleEntry releases Enemy at Step (relative to the start of its wave) from spawn point Spawn.
type ScheduleEntry struct {
	Step  int
	Enemy *Enemy
	Spawn int
}

// IDs hands out entity identifiers. The zero value starts at 1.
type IDs struct {
	next int
}

// Next returns a fresh identifier.
func (ids *IDs) Next() int {
	ids.next++
	return ids.next
}

// toCells converts a pixel offset into cell units.
func toCells(p gridmap.Point, cellSize float64) gridmap.Point {
	return p.Scale(1 / cellSize)
}
