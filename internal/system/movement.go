// internal/system/movement.go
package system

import (
	"go-towers/internal/entity"
)

// MovementSystem moves live enemies and sorts out who is dead or gone.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Outcome is the partition of the enemy set after a step.
type Outcome struct {
	Alive   []*entity.Enemy
	Dead    []*entity.Enemy
	Escaped []*entity.Enemy
}

// Update steps every enemy that is still alive, then partitions the set.
// Death takes precedence over escape.
func (s *MovementSystem) Update(enemies []*entity.Enemy, data *entity.StepData) Outcome {
	var out Outcome
	for _, e := range enemies {
		if e.IsDead() {
			out.Dead = append(out.Dead, e)
			continue
		}
		onGrid := e.Step(data)
		switch {
		case e.IsDead():
			out.Dead = append(out.Dead, e)
		case !onGrid:
			out.Escaped = append(out.Escaped, e)
		default:
			out.Alive = append(out.Alive, e)
		}
	}
	return out
}
