// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Health int      `json:"health"` // per stage
	Speed  float64  `json:"speed"`  // cells per step
	Points int      `json:"points"`
	Tags   []string `json:"tags,omitempty"`
	// Absorbs lists the damage types that hurt this enemy. Empty means all of them.
	Absorbs []DamageType `json:"absorbs,omitempty"`
	// Stages are the looks of a multi-stage enemy, weakest first. Units start at the last one.
	Stages  []Visuals `json:"stages,omitempty"`
	Visuals Visuals   `json:"visuals"`
}

// StageCount is at least one.
func (d EnemyDefinition) StageCount() int {
	if len(d.Stages) == 0 {
		return 1
	}
	return len(d.Stages)
}

// StageVisuals returns the look for a stage index.
func (d EnemyDefinition) StageVisuals(stage int) Visuals {
	if stage < 0 || stage >= len(d.Stages) {
		return d.Visuals
	}
	return d.Stages[stage]
}

// TakesDamage reports whether damage of type t hurts the enemy.
func (d EnemyDefinition) TakesDamage(t DamageType) bool {
	if len(d.Absorbs) == 0 {
		return true
	}
	for _, a := range d.Absorbs {
		if a == t {
			return true
		}
	}
	return false
}
