// internal/defs/types.go
package defs

import "image/color"

// DamageType tags the damage a tower deals. Enemies may absorb only some types.
type DamageType string

const (
	DamageProjectile DamageType = "projectile"
	DamageExplosive  DamageType = "explosive"
	DamageEnergy     DamageType = "energy"
)

// Visuals contains parameters for rendering an entity.
type Visuals struct {
	Color color.RGBA `json:"color"`
	Size  float64    `json:"size"` // in cells
}
