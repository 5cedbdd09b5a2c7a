// internal/entity/behavior.go
package entity

import (
	"go-towers/internal/defs"
	"go-towers/pkg/gridmap"
)

type behavior interface {
	step(t *Tower, data *StepData) []Projectile
}

func newBehavior(b defs.BehaviorType) behavior {
	switch b {
	case defs.BehaviorMissile:
		return launcher{}
	case defs.BehaviorPulse:
		return emitter{}
	default:
		return turret{}
	}
}

// turret hits its target directly once it faces it.
type turret struct{}

func (turret) step(t *Tower, data *StepData) []Projectile {
	target := t.AcquireTarget(data.Enemies)
	if target == nil {
		return nil
	}
	if !t.aimAt(target) || t.IsOnCooldown() {
		return nil
	}
	t.Cooldown.Start()
	if s := t.Def.Slow; s != nil {
		target.Slow(s.By, s.Floor)
	}
	target.Damage(t.Damage(), t.Def.DamageType)
	return nil
}

// launcher fires a homing missile.
type launcher struct{}

func (launcher) step(t *Tower, data *StepData) []Projectile {
	target := t.AcquireTarget(data.Enemies)
	if target == nil {
		return nil
	}
	if !t.aimAt(target) || t.IsOnCooldown() {
		return nil
	}
	t.Cooldown.Start()
	return []Projectile{NewMissile(t.Position, target, t.Damage(), t.Def.DamageType, *t.Def.Missile, t.cellSize)}
}

// emitter sends a pulse down each axis when anything is in range.
type emitter struct{}

func (emitter) step(t *Tower, data *StepData) []Projectile {
	if t.IsOnCooldown() || t.AcquireTarget(data.Enemies) == nil {
		return nil
	}
	t.Cooldown.Start()
	out := make([]Projectile, 0, len(gridmap.Directions))
	for _, dir := range gridmap.Directions {
		out = append(out, NewPulse(t.Position, dir, t.Damage(), t.Def.DamageType, *t.Def.Pulse, t.cellSize))
	}
	return out
}
