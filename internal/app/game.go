// internal/app/game.go
package app

import (
	"log"

	"go-towers/internal/config"
	"go-towers/internal/entity"
	"go-towers/internal/event"
	"go-towers/internal/system"
	"go-towers/pkg/gridmap"
)

// Layout is the fixed geometry of a playfield.
type Layout struct {
	Cols, Rows int
	CellSize   float64
	Spawns     []gridmap.Cell
	Goal       gridmap.Cell
	Exit       gridmap.Cell
}

// DefaultLayout builds the layout from config.
func DefaultLayout() Layout {
	return Layout{
		Cols:     config.GridCols,
		Rows:     config.GridRows,
		CellSize: config.CellSize,
		Spawns:   []gridmap.Cell{{X: config.SpawnCell[0], Y: config.SpawnCell[1]}},
		Goal:     gridmap.Cell{X: config.GoalCell[0], Y: config.GoalCell[1]},
		Exit:     gridmap.Cell{X: config.ExitDelta[0], Y: config.ExitDelta[1]},
	}
}

// Game is the simulation engine: one call to Step advances the world by exactly one step.
// It owns the grid, the path field and every live entity; callers only read them between steps.
type Game struct {
	Grid             *gridmap.Grid
	PathFinder       *gridmap.PathFinder
	EventDispatcher  *event.Dispatcher
	WaveSystem       *system.WaveSystem
	CombatSystem     *system.CombatSystem
	ProjectileSystem *system.ProjectileSystem
	MovementSystem   *system.MovementSystem

	ids        entity.IDs
	step       int
	wave       int
	towerLevel int
	waveActive bool
	stopped    bool

	enemies    []*entity.Enemy
	towers     map[gridmap.Cell]*entity.Tower
	towerOrder []*entity.Tower
}

// NewGame initializes a new game instance. A nil dispatcher gets a fresh one.
func NewGame(layout Layout, dispatcher *event.Dispatcher) *Game {
	if len(layout.Spawns) == 0 {
		panic("app: layout needs at least one spawn")
	}
	if dispatcher == nil {
		dispatcher = event.NewDispatcher()
	}
	grid := gridmap.NewGrid(layout.Cols, layout.Rows, layout.CellSize)
	return &Game{
		Grid:             grid,
		PathFinder:       gridmap.NewPathFinder(grid, layout.Spawns, layout.Goal, layout.Exit),
		EventDispatcher:  dispatcher,
		WaveSystem:       system.NewWaveSystem(),
		CombatSystem:     system.NewCombatSystem(),
		ProjectileSystem: system.NewProjectileSystem(),
		MovementSystem:   system.NewMovementSystem(),
		towerLevel:       1,
		towers:           make(map[gridmap.Cell]*entity.Tower),
	}
}

// On subscribes a handler to an engine event.
func (g *Game) On(name event.EventType, handler func(event.Event)) (cancel func()) {
	return g.EventDispatcher.On(name, handler)
}

// Step runs one simulation step:
// release due spawns, towers act, projectiles fly, enemies move,
// then dead and escaped enemies are announced and removed, and a drained wave is announced.
func (g *Game) Step() {
	g.mustBeRunning("step")

	for _, entry := range g.WaveSystem.Release(g.step) {
		g.spawn(entry)
	}

	data := &entity.StepData{
		Grid:    g.Grid,
		Field:   g.PathFinder.Field(),
		Enemies: g.enemies,
	}
	g.ProjectileSystem.Add(g.CombatSystem.Update(g.towerOrder, data)...)
	g.ProjectileSystem.Update(data)

	out := g.MovementSystem.Update(g.enemies, data)
	if len(out.Dead) > 0 {
		g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyDeath, Data: out.Dead})
	}
	if len(out.Escaped) > 0 {
		g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyEscape, Data: out.Escaped})
	}
	g.enemies = out.Alive

	if g.waveActive && len(g.enemies) == 0 && g.WaveSystem.Pending() == 0 {
		g.waveActive = false
		g.EventDispatcher.Dispatch(event.Event{Type: event.Cleared})
	}
	g.step++
}

// QueueWave schedules entries relative to the next step.
func (g *Game) QueueWave(entries []entity.ScheduleEntry) {
	g.mustBeRunning("queue a wave on")
	g.WaveSystem.Queue(entries, g.step)
	g.waveActive = true
}

// Reset clears the field for a new game. Subscribers are kept.
func (g *Game) Reset() {
	g.mustBeRunning("reset")
	g.Grid.Clear()
	g.PathFinder.Recompute()
	g.WaveSystem.Reset()
	g.ProjectileSystem.Reset()
	g.enemies = nil
	g.towers = make(map[gridmap.Cell]*entity.Tower)
	g.towerOrder = nil
	g.step = 0
	g.wave = 0
	g.waveActive = false
}

// Stop ends the game for good. Any later Step, QueueWave or Reset panics.
func (g *Game) Stop() {
	if !g.stopped {
		log.Printf("Game stopped at step %d", g.step)
	}
	g.stopped = true
}

// Stopped reports whether Stop has been called.
func (g *Game) Stopped() bool {
	return g.stopped
}

// SetWave records the wave number new towers are born in.
func (g *Game) SetWave(n int) {
	g.wave = n
}

// SetTowerLevel sets the tier of towers placed from now on.
func (g *Game) SetTowerLevel(level int) {
	if level >= 1 {
		g.towerLevel = level
	}
}

// AgeTowers ages every tower that has lived through at least threshold waves by wave.
// Aging is one-way; towers already aged are skipped. A non-positive threshold disables it.
func (g *Game) AgeTowers(wave, threshold int) []*entity.Tower {
	if threshold <= 0 {
		return nil
	}
	var aged []*entity.Tower
	for _, t := range g.towerOrder {
		if wave-t.BornWave >= threshold && t.Age() {
			aged = append(aged, t)
		}
	}
	if len(aged) > 0 {
		log.Printf("Wave %d: %d tower(s) aged", wave, len(aged))
	}
	return aged
}

func (g *Game) spawn(entry entity.ScheduleEntry) {
	spawns := g.PathFinder.Spawns()
	idx := entry.Spawn
	if idx < 0 || idx >= len(spawns) {
		idx = 0
	}
	e := entry.Enemy
	e.ID = g.ids.Next()
	e.Place(g.Grid, spawns[idx])
	g.enemies = append(g.enemies, e)
}

func (g *Game) mustBeRunning(op string) {
	if g.stopped {
		panic("app: cannot " + op + " a stopped game")
	}
}

// --- Read-only snapshots, valid until the next Step ---

// CurrentStep is the index of the next step to run.
func (g *Game) CurrentStep() int {
	return g.step
}

// Enemies returns the live enemies.
func (g *Game) Enemies() []*entity.Enemy {
	return append([]*entity.Enemy(nil), g.enemies...)
}

// Towers returns the towers keyed by cell.
func (g *Game) Towers() map[gridmap.Cell]*entity.Tower {
	out := make(map[gridmap.Cell]*entity.Tower, len(g.towers))
	for c, t := range g.towers {
		out[c] = t
	}
	return out
}

// TowerList returns the towers in placement order.
func (g *Game) TowerList() []*entity.Tower {
	return append([]*entity.Tower(nil), g.towerOrder...)
}

// Tower returns the tower on a cell.
func (g *Game) Tower(c gridmap.Cell) (*entity.Tower, bool) {
	t, ok := g.towers[c]
	return t, ok
}

// Projectiles returns the projectiles in flight.
func (g *Game) Projectiles() []entity.Projectile {
	return g.ProjectileSystem.Projectiles()
}

// Field returns the current path field.
func (g *Game) Field() *gridmap.PathField {
	return g.PathFinder.Field()
}

// WaveActive reports whether a queued wave has not been cleared yet.
func (g *Game) WaveActive() bool {
	return g.waveActive
}
