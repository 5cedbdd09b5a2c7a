package app

import (
	"os"
	"testing"

	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/internal/event"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	defs.MustLoad()
	os.Exit(m.Run())
}

func newGame() *Game {
	return NewGame(DefaultLayout(), nil)
}

func simpleEnemy() *entity.Enemy {
	return entity.NewEnemy(defs.EnemyLibrary["simple"])
}

func record(g *Game, names ...event.EventType) *[]event.Event {
	var got []event.Event
	for _, name := range names {
		g.On(name, func(e event.Event) { got = append(got, e) })
	}
	return &got
}

func types(events []event.Event) []event.EventType {
	out := make([]event.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestPlace(t *testing.T) {
	g := newGame()
	got := record(g, event.TowerPlaced)
	cell := gridmap.Cell{X: 2, Y: 2}

	require.True(t, g.Place(cell, "simple"))
	tower, ok := g.Tower(cell)
	require.True(t, ok)
	assert.Equal(t, cell, tower.Cell)
	assert.Equal(t, g.Grid.CellToPixelCentre(cell), tower.Position)
	require.Len(t, *got, 1)
	assert.Same(t, tower, (*got)[0].Data)

	assert.False(t, g.Place(cell, "slow"), "cell taken")
	assert.False(t, g.Place(gridmap.Cell{X: 6, Y: 0}, "simple"), "outside the grid")
	assert.False(t, g.Place(gridmap.Cell{X: -1, Y: 1}, "simple"), "spawn")
	assert.False(t, g.Place(gridmap.Cell{X: 0, Y: 0}, "laser"), "unknown kind")
	assert.Len(t, g.Towers(), 1)
}

func TestPlace_RejectsDisconnection(t *testing.T) {
	g := newGame()
	for y := 0; y < 5; y++ {
		require.True(t, g.Place(gridmap.Cell{X: 3, Y: y}, "simple"), "row %d", y)
	}
	before := g.Field()
	occupied := g.Grid.Occupied()

	assert.False(t, g.Place(gridmap.Cell{X: 3, Y: 5}, "simple"))
	assert.Same(t, before, g.Field())
	assert.Equal(t, occupied, g.Grid.Occupied())

	path := g.Field().ShortestFrom(gridmap.Cell{X: -1, Y: 1})
	require.NotEmpty(t, path)
	assert.Contains(t, path, gridmap.Cell{X: 3, Y: 5})
	assert.Equal(t, gridmap.Cell{X: 6, Y: 4}, path[len(path)-1])
}

func TestPlace_CannotWallInEnemy(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyEscape, event.Cleared)
	g.QueueWave([]entity.ScheduleEntry{{Enemy: entity.NewEnemy(defs.EnemyLibrary["energy"])}})
	g.Step()
	require.Len(t, g.Enemies(), 1)
	enemy := g.Enemies()[0]
	enemy.Place(g.Grid, gridmap.Cell{X: 2, Y: 1})

	for _, c := range []gridmap.Cell{{X: 2, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 2}} {
		require.True(t, g.AddObstacle(c), "cell %v", c)
	}
	assert.False(t, g.AddObstacle(gridmap.Cell{X: 1, Y: 1}))
	assert.False(t, g.Place(gridmap.Cell{X: 1, Y: 1}, "simple"))
	legal, _ := g.AttemptPlacement(g.Grid.CellToPixelCentre(gridmap.Cell{X: 1, Y: 1}))
	assert.False(t, legal)
	assert.True(t, g.Field().Contains(gridmap.Cell{X: 2, Y: 1}))

	for i := 0; i < 2000 && len(*got) < 2; i++ {
		g.Step()
	}
	assert.Equal(t, []event.EventType{event.EnemyEscape, event.Cleared}, types(*got))
	assert.Empty(t, g.Enemies())
}

func TestPlace_EnemyTurningBackNeedsWayOut(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyEscape)
	g.QueueWave([]entity.ScheduleEntry{{Enemy: entity.NewEnemy(defs.EnemyLibrary["energy"])}})
	g.Step()
	enemy := g.Enemies()[0]
	enemy.Place(g.Grid, gridmap.Cell{X: 3, Y: 3})
	g.Step()
	require.Equal(t, gridmap.Cell{X: 3, Y: 3}, enemy.Origin())
	require.Equal(t, gridmap.Cell{X: 4, Y: 3}, enemy.Waypoint())

	for _, c := range []gridmap.Cell{{X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 4}} {
		require.True(t, g.AddObstacle(c), "cell %v", c)
	}
	assert.False(t, g.Place(gridmap.Cell{X: 4, Y: 3}, "simple"), "the enemy would turn back into a dead end")

	g.Grid.Vacate(gridmap.Cell{X: 3, Y: 4})
	g.PathFinder.Recompute()
	require.True(t, g.Place(gridmap.Cell{X: 4, Y: 3}, "simple"))

	for i := 0; i < 2000 && len(*got) == 0; i++ {
		g.Step()
	}
	assert.Len(t, *got, 1)
	assert.Empty(t, g.Enemies())
}

func TestAttemptPlacement_DoesNotMutate(t *testing.T) {
	g := newGame()
	before := g.Field()

	legal, path := g.AttemptPlacement(g.Grid.CellToPixelCentre(gridmap.Cell{X: 2, Y: 2}))
	assert.True(t, legal)
	require.NotEmpty(t, path)
	assert.NotContains(t, path, gridmap.Cell{X: 2, Y: 2})
	assert.Equal(t, gridmap.Cell{X: 6, Y: 4}, path[len(path)-1])

	legal, path = g.AttemptPlacement(gridmap.Point{X: 1000, Y: 1000})
	assert.False(t, legal)
	assert.Equal(t, before.ShortestFrom(gridmap.Cell{X: -1, Y: 1}), path)

	assert.Same(t, before, g.Field())
	assert.Empty(t, g.Towers())
	assert.Empty(t, g.Grid.Occupied())
}

func TestRemove(t *testing.T) {
	g := newGame()
	got := record(g, event.TowerRemoved)
	cell := gridmap.Cell{X: 1, Y: 1}
	require.True(t, g.Place(cell, "pulse"))

	tower, ok := g.Remove(cell)
	require.True(t, ok)
	assert.Equal(t, "pulse", tower.Def.ID)
	assert.False(t, g.Grid.IsBlocked(cell))
	assert.True(t, g.Field().Contains(cell))
	assert.Len(t, *got, 1)

	_, ok = g.Remove(cell)
	assert.False(t, ok)
}

func TestStep_SpawnsThenClears(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyDeath, event.EnemyEscape, event.Cleared)

	g.QueueWave([]entity.ScheduleEntry{{Step: 0, Enemy: simpleEnemy()}, {Step: 2, Enemy: simpleEnemy()}})
	g.Step()
	require.Len(t, g.Enemies(), 1)
	first := g.Enemies()[0]
	assert.NotZero(t, first.ID)
	assert.Equal(t, 1, g.CurrentStep())

	first.Health = 0
	g.Step()
	assert.Empty(t, g.Enemies())
	require.Len(t, *got, 1)
	assert.Equal(t, event.EnemyDeath, (*got)[0].Type)
	assert.Equal(t, []*entity.Enemy{first}, (*got)[0].Data)

	g.Step()
	require.Len(t, g.Enemies(), 1)
	second := g.Enemies()[0]
	assert.NotEqual(t, first.ID, second.ID)

	second.Health = 0
	g.Step()
	g.Step()
	g.Step()
	assert.Equal(t, []event.EventType{event.EnemyDeath, event.EnemyDeath, event.Cleared}, types(*got))
	assert.False(t, g.WaveActive())
}

func TestStep_EnemyEscapes(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyDeath, event.EnemyEscape, event.Cleared)

	g.QueueWave([]entity.ScheduleEntry{{Enemy: simpleEnemy()}})
	for i := 0; i < 1000 && len(*got) < 2; i++ {
		g.Step()
	}
	require.Equal(t, []event.EventType{event.EnemyEscape, event.Cleared}, types(*got))
	assert.Len(t, (*got)[0].Data, 1)
	assert.Empty(t, g.Enemies())
}

func TestStep_MissileTowerKills(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyDeath, event.EnemyEscape)
	require.True(t, g.Place(gridmap.Cell{X: 0, Y: 0}, "missile"))

	g.QueueWave([]entity.ScheduleEntry{{Enemy: simpleEnemy()}})
	for i := 0; i < 300 && len(*got) == 0; i++ {
		g.Step()
	}
	require.Len(t, *got, 1)
	assert.Equal(t, event.EnemyDeath, (*got)[0].Type)
}

func TestStep_TowersActBeforeEnemiesMove(t *testing.T) {
	g := newGame()
	cell := gridmap.Cell{X: 0, Y: 0}
	require.True(t, g.Place(cell, "energy"))
	tower, _ := g.Tower(cell)
	spawn := g.Grid.CellToPixelCentre(gridmap.Cell{X: -1, Y: 1})
	d := spawn.Subtract(tower.Position)
	tower.Rotation = utils.Bearing(d.X, d.Y)

	enemy := entity.NewEnemy(defs.EnemyLibrary["energy"])
	g.QueueWave([]entity.ScheduleEntry{{Enemy: enemy}})
	g.Step()

	// Released, shot at its spawn point, then moved, all in the first step.
	assert.Equal(t, 95, enemy.Health)
	assert.Greater(t, enemy.Position.X, spawn.X)
}

func TestStep_DeathPublishedBeforeEscape(t *testing.T) {
	g := newGame()
	got := record(g, event.EnemyEscape, event.EnemyDeath)
	g.QueueWave([]entity.ScheduleEntry{{Enemy: simpleEnemy()}, {Enemy: simpleEnemy()}})
	g.Step()
	require.Len(t, g.Enemies(), 2)
	leaving, dying := g.Enemies()[0], g.Enemies()[1]
	leaving.Place(g.Grid, gridmap.Cell{X: 8, Y: 4})
	dying.Health = 0

	g.Step()
	require.Equal(t, []event.EventType{event.EnemyDeath, event.EnemyEscape}, types(*got))
	assert.Equal(t, []*entity.Enemy{dying}, (*got)[0].Data)
	assert.Equal(t, []*entity.Enemy{leaving}, (*got)[1].Data)
	assert.Empty(t, g.Enemies())
}

func TestAgeTowers(t *testing.T) {
	g := newGame()
	g.SetWave(1)
	require.True(t, g.Place(gridmap.Cell{X: 0, Y: 0}, "simple"))
	g.SetWave(5)
	require.True(t, g.Place(gridmap.Cell{X: 1, Y: 0}, "simple"))

	assert.Nil(t, g.AgeTowers(20, 0), "zero threshold disables aging")
	assert.Empty(t, g.AgeTowers(10, 10))

	aged := g.AgeTowers(11, 10)
	require.Len(t, aged, 1)
	assert.Equal(t, gridmap.Cell{X: 0, Y: 0}, aged[0].Cell)
	assert.Zero(t, aged[0].Value())

	assert.Empty(t, g.AgeTowers(12, 10), "aging happens once")
	assert.Len(t, g.AgeTowers(15, 10), 1)
}

func TestSetTowerLevel(t *testing.T) {
	g := newGame()
	g.SetTowerLevel(3)
	g.SetTowerLevel(0)
	require.True(t, g.Place(gridmap.Cell{X: 0, Y: 0}, "simple"))
	tower, _ := g.Tower(gridmap.Cell{X: 0, Y: 0})
	assert.Equal(t, 3, tower.Level)
	assert.Equal(t, 20+2*15, tower.Value())
}

func TestScatterObstacles(t *testing.T) {
	g := newGame()
	placed := g.ScatterObstacles(utils.NewPRNGService(42), 6)
	assert.Equal(t, 6, placed)
	assert.Len(t, g.Obstacles(), 6)
	assert.True(t, g.Field().Connected(g.PathFinder.Spawns()...))

	other := newGame()
	other.ScatterObstacles(utils.NewPRNGService(42), 6)
	assert.Equal(t, g.Obstacles(), other.Obstacles(), "same seed, same layout")
}

func TestReset(t *testing.T) {
	g := newGame()
	require.True(t, g.AddObstacle(gridmap.Cell{X: 4, Y: 4}))
	require.True(t, g.Place(gridmap.Cell{X: 2, Y: 2}, "simple"))
	g.QueueWave([]entity.ScheduleEntry{{Enemy: simpleEnemy()}, {Step: 50, Enemy: simpleEnemy()}})
	g.Step()

	g.Reset()
	assert.Empty(t, g.Towers())
	assert.Empty(t, g.Obstacles())
	assert.Empty(t, g.Enemies())
	assert.Zero(t, g.CurrentStep())
	assert.Zero(t, g.WaveSystem.Pending())
	assert.False(t, g.WaveActive())
}

func TestStop(t *testing.T) {
	g := newGame()
	g.Stop()
	assert.True(t, g.Stopped())
	assert.Panics(t, g.Step)
	assert.Panics(t, g.Reset)
	assert.Panics(t, func() { g.QueueWave(nil) })
}
