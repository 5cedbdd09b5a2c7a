// internal/system/combat.go
package system

import (
	"go-towers/internal/entity"
)

// CombatSystem lets every tower act once per step, in placement order.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{}
}

// Update steps the towers and collects what they launched.
func (s *CombatSystem) Update(towers []*entity.Tower, data *entity.StepData) []entity.Projectile {
	var launched []entity.Projectile
	for _, t := range towers {
		launched = append(launched, t.Step(data)...)
	}
	return launched
}
