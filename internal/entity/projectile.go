// internal/entity/projectile.go
package entity

import (
	"go-towers/internal/defs"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"
)

// Missile homes in on its target and explodes, hurting everything within its splash radius.
// If the target dies first the missile flies on to where it was last seen.
type Missile struct {
	position gridmap.Point
	target   *Enemy
	aim      gridmap.Point
	damage   int
	kind     defs.DamageType
	params   defs.MissileDef
	cellSize float64
	Rotation float64
}

// NewMissile launches a missile from a tower position.
func NewMissile(from gridmap.Point, target *Enemy, damage int, kind defs.DamageType, params defs.MissileDef, cellSize float64) *Missile {
	return &Missile{
		position: from,
		target:   target,
		aim:      target.Position,
		damage:   damage,
		kind:     kind,
		params:   params,
		cellSize: cellSize,
	}
}

func (m *Missile) Position() gridmap.Point {
	return m.position
}

func (m *Missile) Step(data *StepData) bool {
	if m.target != nil && !m.target.IsDead() {
		m.aim = m.target.Position
	} else {
		m.target = nil
	}

	d := m.aim.Subtract(m.position)
	dist := d.Length()
	move := m.params.Speed * m.cellSize
	if dist > 0 {
		m.Rotation = utils.Bearing(d.X, d.Y)
	}
	if dist <= move+m.params.Reach*m.cellSize {
		if dist <= move {
			m.position = m.aim
		} else {
			m.position = m.position.Add(d.Scale(move / dist))
		}
		m.explode(data)
		return false
	}
	m.position = m.position.Add(d.Scale(move / dist))
	return insideField(data.Grid, m.position)
}

func (m *Missile) explode(data *StepData) {
	radius := m.params.Splash * m.cellSize
	for _, e := range data.Enemies {
		if e.IsDead() {
			continue
		}
		if e.Position.DistanceTo(m.position) <= radius {
			e.Damage(m.damage, m.kind)
		}
	}
}

// Pulse travels in a straight line and hits each enemy it touches once, up to a limit.
type Pulse struct {
	position  gridmap.Point
	direction gridmap.Cell
	damage    int
	kind      defs.DamageType
	params    defs.PulseDef
	cellSize  float64
	hit       map[*Enemy]struct{}
}

// NewPulse emits a pulse from a tower position along direction.
func NewPulse(from gridmap.Point, direction gridmap.Cell, damage int, kind defs.DamageType, params defs.PulseDef, cellSize float64) *Pulse {
	return &Pulse{
		position:  from,
		direction: direction,
		damage:    damage,
		kind:      kind,
		params:    params,
		cellSize:  cellSize,
		hit:       make(map[*Enemy]struct{}),
	}
}

func (p *Pulse) Position() gridmap.Point {
	return p.position
}

// Direction is the axis the pulse travels along.
func (p *Pulse) Direction() gridmap.Cell {
	return p.direction
}

func (p *Pulse) Step(data *StepData) bool {
	step := gridmap.Point{X: float64(p.direction.X), Y: float64(p.direction.Y)}
	p.position = p.position.Add(step.Scale(p.params.Speed * p.cellSize))

	for _, e := range data.Enemies {
		if len(p.hit) >= p.params.Hits {
			return false
		}
		if e.IsDead() {
			continue
		}
		if _, done := p.hit[e]; done {
			continue
		}
		reach := (e.Size + 0.1) * p.cellSize / 2
		if e.Position.DistanceTo(p.position) <= reach {
			e.Damage(p.damage, p.kind)
			p.hit[e] = struct{}{}
		}
	}
	if len(p.hit) >= p.params.Hits {
		return false
	}
	return insideField(data.Grid, p.position)
}

func insideField(grid *gridmap.Grid, p gridmap.Point) bool {
	w, h := grid.Pixels()
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}
