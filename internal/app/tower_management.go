// internal/app/tower_management.go
package app

import (
	"log"
	"sort"

	"go-towers/internal/defs"
	"go-towers/internal/entity"
	"go-towers/internal/event"
	"go-towers/internal/utils"
	"go-towers/pkg/gridmap"
)

// Place puts a new tower of the given kind on cell, at the current tower level.
// It fails if the kind is unknown, the cell is outside the field, taken, an endpoint,
// or if the tower would cut any spawn or any live enemy off from the goal.
func (g *Game) Place(cell gridmap.Cell, kind string) bool {
	def, ok := defs.TowerLibrary[kind]
	if !ok {
		log.Printf("Place: unknown tower type %q", kind)
		return false
	}
	return g.PlaceTower(cell, entity.NewTower(def, g.towerLevel))
}

// PlaceTower places an already built tower on cell.
func (g *Game) PlaceTower(cell gridmap.Cell, tower *entity.Tower) bool {
	field, ok := g.canPlace(cell)
	if !ok {
		return false
	}

	tower.ID = g.ids.Next()
	tower.BornWave = g.wave
	tower.Place(g.Grid, cell)
	g.Grid.Occupy(cell, gridmap.Occupant{Kind: gridmap.Tower, ID: tower.ID})
	g.PathFinder.Commit(field)

	g.towers[cell] = tower
	g.towerOrder = append(g.towerOrder, tower)

	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: tower})
	return true
}

// Remove takes the tower off cell and returns it.
func (g *Game) Remove(cell gridmap.Cell) (*entity.Tower, bool) {
	tower, ok := g.towers[cell]
	if !ok {
		return nil, false
	}

	delete(g.towers, cell)
	for i, t := range g.towerOrder {
		if t == tower {
			g.towerOrder = append(g.towerOrder[:i], g.towerOrder[i+1:]...)
			break
		}
	}
	g.Grid.Vacate(cell)
	g.PathFinder.Recompute()

	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: tower})
	return tower, true
}

// AttemptPlacement checks a pixel position without changing anything.
// It returns whether a tower could go there and the path the first spawn would then take;
// for an illegal position the path is the current one.
func (g *Game) AttemptPlacement(p gridmap.Point) (bool, []gridmap.Cell) {
	start := g.PathFinder.Spawns()[0]
	cell := g.Grid.PixelToCell(p)
	if field, ok := g.canPlace(cell); ok {
		return true, field.ShortestFrom(start)
	}
	return false, g.PathFinder.Field().ShortestFrom(start)
}

// AddObstacle blocks a cell with scenery. The same connectivity rule as for towers applies.
func (g *Game) AddObstacle(cell gridmap.Cell) bool {
	field, ok := g.canPlace(cell)
	if !ok {
		return false
	}
	g.Grid.Occupy(cell, gridmap.Occupant{Kind: gridmap.Obstacle})
	g.PathFinder.Commit(field)
	return true
}

// ScatterObstacles tries to drop n obstacles on random free cells and returns how many landed.
func (g *Game) ScatterObstacles(rng *utils.PRNGService, n int) int {
	cells := g.Grid.Cells()
	placed := 0
	for _, i := range rng.Perm(len(cells)) {
		if placed >= n {
			break
		}
		if g.AddObstacle(cells[i]) {
			placed++
		}
	}
	if placed > 0 {
		log.Printf("Placed %d obstacle(s) with seed %d", placed, rng.Seed())
	}
	return placed
}

// Obstacles lists obstacle cells row by row.
func (g *Game) Obstacles() []gridmap.Cell {
	var out []gridmap.Cell
	for c, o := range g.Grid.Occupied() {
		if o.Kind == gridmap.Obstacle {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func (g *Game) canPlace(cell gridmap.Cell) (*gridmap.PathField, bool) {
	return g.PathFinder.Preview(cell, g.headings(cell)...)
}

// headings lists the in-field cells live enemies make their next turn on, assuming cell gets built on.
// An enemy whose waypoint is built on walks back to the centre it came from.
func (g *Game) headings(cell gridmap.Cell) []gridmap.Cell {
	var out []gridmap.Cell
	for _, e := range g.enemies {
		if e.IsDead() {
			continue
		}
		from, next := e.Origin(), e.Waypoint()
		if next != from && (next == cell || g.Grid.IsBlocked(next)) && from != cell && !g.Grid.IsBlocked(from) {
			next = from
		}
		if g.Grid.Contains(next) {
			out = append(out, next)
		}
	}
	return out
}
