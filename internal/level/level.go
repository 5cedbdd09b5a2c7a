// internal/level/level.go
package level

import (
	"errors"
	"fmt"
	"log"

	"go-towers/internal/defs"
	"go-towers/internal/entity"
)

// ErrUnknownLevel is returned by Load for IDs missing from the level tables.
var ErrUnknownLevel = errors.New("unknown level")

type segment struct {
	steps   formula
	count   *formula
	enemies []string
	group   []Spawn
}

type rule struct {
	span     defs.WaveRule
	fixed    []Spawn
	segments []segment
}

// Level generates the waves of one difficulty tier from its formula table.
type Level struct {
	def     defs.LevelDefinition
	rules   []rule
	enemies map[string]defs.EnemyDefinition
}

// Load builds a level from the embedded tables.
func Load(id string) (*Level, error) {
	if err := defs.Load(); err != nil {
		return nil, err
	}
	def, ok := defs.LevelLibrary[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return New(def, defs.EnemyLibrary)
}

// New compiles a level definition. Every wave is planned once so formula errors surface here.
func New(def defs.LevelDefinition, enemies map[string]defs.EnemyDefinition) (*Level, error) {
	l := &Level{def: def, enemies: enemies}
	for _, r := range def.Rules {
		compiled := rule{span: r}
		for _, f := range r.Fixed {
			compiled.fixed = append(compiled.fixed, Spawn{Step: f.Step, Enemy: f.Enemy})
		}
		for _, s := range r.Segments {
			seg, err := compileSegment(s)
			if err != nil {
				return nil, fmt.Errorf("level %s waves %d-%d: %w", def.ID, r.From, r.To, err)
			}
			compiled.segments = append(compiled.segments, seg)
		}
		l.rules = append(l.rules, compiled)
	}

	for n := 1; n <= def.Waves; n++ {
		spawns, err := l.Plan(n)
		if err != nil {
			return nil, fmt.Errorf("level %s wave %d: %w", def.ID, n, err)
		}
		for _, s := range spawns {
			if _, ok := enemies[s.Enemy]; !ok {
				return nil, fmt.Errorf("level %s wave %d: unknown enemy %q", def.ID, n, s.Enemy)
			}
		}
	}
	return l, nil
}

func compileSegment(s defs.Segment) (segment, error) {
	steps, err := compileFormula(s.Steps)
	if err != nil {
		return segment{}, err
	}
	seg := segment{steps: steps, enemies: s.Enemies}
	if s.Count != "" {
		count, err := compileFormula(s.Count)
		if err != nil {
			return segment{}, err
		}
		seg.count = &count
	}
	for _, g := range s.Group {
		seg.group = append(seg.group, Spawn{Step: g.Offset, Enemy: g.Enemy})
	}
	return seg, nil
}

func (l *Level) ID() string      { return l.def.ID }
func (l *Level) Name() string    { return l.def.Name }
func (l *Level) MaxWave() int    { return l.def.Waves }
func (l *Level) TowerLevel() int { return l.def.TowerLevel }

// AgeAfter is how many waves a tower survives before aging. Zero disables aging.
func (l *Level) AgeAfter() int { return l.def.AgeAfter }

// Plan returns the spawns of wave n sorted by step. Waves outside [1, MaxWave] plan nothing.
// Negative formula counts are treated as zero.
func (l *Level) Plan(n int) ([]Spawn, error) {
	if n < 1 || n > l.def.Waves {
		return nil, nil
	}
	var out []Spawn
	for _, r := range l.rules {
		if !r.span.Covers(n) {
			continue
		}
		out = append(out, r.fixed...)

		subs := make([]SubWave, 0, len(r.segments))
		for _, seg := range r.segments {
			steps, err := seg.steps.eval(n)
			if err != nil {
				return nil, err
			}
			sub := SubWave{Steps: steps, Enemies: seg.enemies, Group: seg.group}
			if seg.count != nil {
				count, err := seg.count.eval(n)
				if err != nil {
					return nil, err
				}
				sub.Count = max(count, 0)
			}
			subs = append(subs, sub)
		}
		out = append(out, SubWaves(subs)...)
	}
	sortSpawns(out)
	return out, nil
}

// Wave instantiates the enemies of wave n. Out-of-range waves yield nil.
func (l *Level) Wave(n int) []entity.ScheduleEntry {
	spawns, err := l.Plan(n)
	if err != nil {
		// New already planned every wave, so this only happens if the tables changed underneath.
		log.Printf("level %s: wave %d: %v", l.def.ID, n, err)
		return nil
	}
	if len(spawns) == 0 {
		return nil
	}
	entries := make([]entity.ScheduleEntry, 0, len(spawns))
	for _, s := range spawns {
		entries = append(entries, entity.ScheduleEntry{
			Step:  s.Step,
			Enemy: entity.NewEnemy(l.enemies[s.Enemy]),
		})
	}
	return entries
}
