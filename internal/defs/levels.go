// internal/defs/levels.go
package defs

// LevelDefinition is one difficulty tier: its wave count and the rules generating each wave.
type LevelDefinition struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Waves      int        `yaml:"waves"`
	TowerLevel int        `yaml:"tower_level"`
	AgeAfter   int        `yaml:"age_after"` // waves; 0 disables aging
	Rules      []WaveRule `yaml:"rules"`
}

// WaveRule generates every wave in [From, To].
// Fixed entries are copied as-is; segments are laid end to end.
type WaveRule struct {
	From     int          `yaml:"from"`
	To       int          `yaml:"to"`
	Fixed    []FixedSpawn `yaml:"fixed,omitempty"`
	Segments []Segment    `yaml:"segments,omitempty"`
}

// FixedSpawn is a hand-placed spawn.
type FixedSpawn struct {
	Step  int    `yaml:"step"`
	Enemy string `yaml:"enemy"`
}

// Segment spreads Count spawns over Steps steps. Steps and Count are formulas over `wave`.
// A segment without Count is a pause. Enemies cycle in order; a Group replaces the
// single spawn at each interval point with several offset spawns.
type Segment struct {
	Steps   string       `yaml:"steps"`
	Count   string       `yaml:"count,omitempty"`
	Enemies []string     `yaml:"enemies,omitempty"`
	Group   []GroupSpawn `yaml:"group,omitempty"`
}

// GroupSpawn is one member of a spawn group.
type GroupSpawn struct {
	Offset int    `yaml:"offset"`
	Enemy  string `yaml:"enemy"`
}

// Covers reports whether the rule applies to wave n.
func (r WaveRule) Covers(n int) bool {
	return n >= r.From && n <= r.To
}
