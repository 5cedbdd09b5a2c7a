package entity

import (
	"testing"

	"go-towers/internal/defs"
	"go-towers/pkg/gridmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedTower(t *testing.T, g *gridmap.Grid, def defs.TowerDefinition, cell gridmap.Cell) *Tower {
	t.Helper()
	tw := NewTower(def, 1)
	tw.Place(g, cell)
	return tw
}

func enemyAt(g *gridmap.Grid, id string, p gridmap.Point) *Enemy {
	e := NewEnemy(defs.EnemyLibrary[id])
	e.Place(g, g.PixelToCell(p))
	e.Position = p
	return e
}

func TestTower_ValueAndDamage(t *testing.T) {
	tw := NewTower(defs.TowerLibrary["simple"], 1)
	assert.Equal(t, 20, tw.Value())
	assert.Equal(t, 1, tw.Damage())

	tw.SetLevel(3)
	assert.Equal(t, 50, tw.Value())
	assert.Equal(t, 3, tw.Damage())

	require.True(t, tw.Upgrade())
	assert.Equal(t, 18, tw.Damage())
	assert.Equal(t, 50, tw.Value(), "upgrades do not change resale value")

	require.True(t, tw.Age())
	assert.False(t, tw.Age(), "aging happens once")
	assert.Equal(t, 0, tw.Value())
	assert.Equal(t, 9, tw.Damage())
	assert.False(t, tw.Upgrade())
}

func TestTower_CooldownUpgradeFloor(t *testing.T) {
	tw := NewTower(defs.TowerLibrary["missile"], 1)
	require.Equal(t, 10, tw.Cooldown.Period())

	for i := 0; i < 4; i++ {
		require.True(t, tw.Upgrade())
	}
	assert.Equal(t, 2, tw.Cooldown.Period())
	assert.False(t, tw.Upgrade())
}

func TestCountdown_Bounds(t *testing.T) {
	c := NewCountdown(3)
	assert.True(t, c.Done())
	c.Start()
	assert.Equal(t, 0, c.Progress())
	for i := 0; i < 5; i++ {
		c.Step()
		assert.GreaterOrEqual(t, c.Progress(), 0)
		assert.LessOrEqual(t, c.Progress(), c.Period())
	}
	assert.True(t, c.Done())

	c.Start()
	c.SetPeriod(1)
	assert.Equal(t, 1, c.Remaining())
}

func TestTower_RotatesBeforeFiring(t *testing.T) {
	g, pf := newField()
	def := defs.TowerLibrary["simple"]
	def.RotationThreshold = 40
	tw := placedTower(t, g, def, gridmap.Cell{X: 2, Y: 2})

	below := tw.Position.Add(gridmap.Point{Y: 50})
	e := enemyAt(g, "simple", below)
	data := &StepData{Grid: g, Field: pf.Field(), Enemies: []*Enemy{e}}

	tw.Step(data)
	tw.Step(data)
	assert.Equal(t, 100, e.Health, "still turning")
	tw.Step(data)
	assert.Equal(t, 99, e.Health)
	tw.Step(data)
	assert.Equal(t, 98, e.Health, "no cooldown, fires every step once aimed")
}

func TestTower_TargetPolicies(t *testing.T) {
	g, _ := newField()
	centre := g.CellToPixelCentre(gridmap.Cell{X: 2, Y: 2})
	far := enemyAt(g, "simple", centre.Add(gridmap.Point{X: 80}))
	near := enemyAt(g, "simple", centre.Add(gridmap.Point{X: 20}))
	outside := enemyAt(g, "simple", centre.Add(gridmap.Point{X: 200}))
	dead := enemyAt(g, "simple", centre.Add(gridmap.Point{X: 5}))
	dead.Health = 0
	enemies := []*Enemy{outside, dead, far, near}

	missile := placedTower(t, g, defs.TowerLibrary["missile"], gridmap.Cell{X: 2, Y: 2})
	assert.Same(t, near, missile.AcquireTarget(enemies))

	simple := placedTower(t, g, defs.TowerLibrary["simple"], gridmap.Cell{X: 2, Y: 2})
	assert.Nil(t, simple.AcquireTarget(enemies[:3]), "far is beyond one cell")
	assert.Same(t, near, simple.AcquireTarget(enemies))

	energy := placedTower(t, g, defs.TowerLibrary["energy"], gridmap.Cell{X: 2, Y: 2})
	assert.Nil(t, energy.AcquireTarget(enemies), "only energy enemies")
	charged := enemyAt(g, "energy", centre.Add(gridmap.Point{X: 60}))
	assert.Same(t, charged, energy.AcquireTarget(append(enemies, charged)))
}

func TestTower_SlowsTarget(t *testing.T) {
	g, pf := newField()
	tw := placedTower(t, g, defs.TowerLibrary["slow"], gridmap.Cell{X: 2, Y: 2})
	e := enemyAt(g, "simple", tw.Position.Add(gridmap.Point{X: 30}))
	speed := e.Speed

	data := &StepData{Grid: g, Field: pf.Field(), Enemies: []*Enemy{e}}
	tw.Step(data)
	assert.Less(t, e.Speed, speed)
	assert.Equal(t, 100, e.Health, "slow tower deals no damage")
	assert.True(t, tw.IsOnCooldown())

	slowed := e.Speed
	tw.Step(data)
	assert.Equal(t, slowed, e.Speed, "waits for the cooldown")
}

func TestMissile_SplashDamage(t *testing.T) {
	g, pf := newField()
	tw := placedTower(t, g, defs.TowerLibrary["missile"], gridmap.Cell{X: 2, Y: 2})
	target := enemyAt(g, "simple", tw.Position.Add(gridmap.Point{X: 60}))
	bystander := enemyAt(g, "simple", tw.Position.Add(gridmap.Point{X: 60, Y: 20}))
	shielded := enemyAt(g, "energy", tw.Position.Add(gridmap.Point{X: 60, Y: -20}))
	data := &StepData{Grid: g, Field: pf.Field(), Enemies: []*Enemy{target, bystander, shielded}}

	shots := tw.Step(data)
	require.Len(t, shots, 1)

	for i := 0; i < 20 && shots[0].Step(data); i++ {
	}
	assert.True(t, target.IsDead())
	assert.True(t, bystander.IsDead())
	assert.Equal(t, 100, shielded.Health, "explosives do not hurt energy enemies")
}

func TestPulse_EmitsOnAxes(t *testing.T) {
	g, pf := newField()
	tw := placedTower(t, g, defs.TowerLibrary["pulse"], gridmap.Cell{X: 2, Y: 2})
	e := enemyAt(g, "energy", tw.Position.Add(gridmap.Point{Y: 60}))
	data := &StepData{Grid: g, Field: pf.Field(), Enemies: []*Enemy{e}}

	shots := tw.Step(data)
	require.Len(t, shots, 4)
	assert.Empty(t, tw.Step(data), "cooling down")

	var down *Pulse
	for _, s := range shots {
		if p := s.(*Pulse); p.Direction() == gridmap.Down {
			down = p
		}
	}
	require.NotNil(t, down)
	for i := 0; i < 10 && down.Step(data); i++ {
	}
	assert.Equal(t, 85, e.Health)
}

func TestRanges(t *testing.T) {
	plus := PlusRange{Min: 0, Max: 2}
	assert.True(t, plus.Contains(gridmap.Point{X: 0, Y: 1.5}))
	assert.True(t, plus.Contains(gridmap.Point{X: -2, Y: 0.2}))
	assert.False(t, plus.Contains(gridmap.Point{X: 1, Y: 1}))

	circle := CircularRange{Radius: 1.5}
	assert.True(t, circle.Contains(gridmap.Point{X: 1, Y: 1}))
	assert.False(t, circle.Contains(gridmap.Point{X: 1.2, Y: 1}))
}
