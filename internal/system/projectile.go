// internal/system/projectile.go
package system

import (
	"go-towers/internal/entity"
)

// ProjectileSystem owns projectiles in flight.
type ProjectileSystem struct {
	live []entity.Projectile
}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

// Add puts newly launched projectiles in flight.
func (s *ProjectileSystem) Add(ps ...entity.Projectile) {
	s.live = append(s.live, ps...)
}

// Update advances every projectile and drops the spent ones.
func (s *ProjectileSystem) Update(data *entity.StepData) {
	kept := s.live[:0]
	for _, p := range s.live {
		if p.Step(data) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
}

// Projectiles returns a copy of the projectiles in flight.
func (s *ProjectileSystem) Projectiles() []entity.Projectile {
	return append([]entity.Projectile(nil), s.live...)
}

func (s *ProjectileSystem) Reset() {
	s.live = nil
}
