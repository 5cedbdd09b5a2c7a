// pkg/gridmap/grid.go
package gridmap

import "math"

// OccupantKind distinguishes what is standing on a cell.
type OccupantKind int

const (
	Obstacle OccupantKind = iota
	Tower
)

func (k OccupantKind) String() string {
	switch k {
	case Obstacle:
		return "obstacle"
	case Tower:
		return "tower"
	}
	return "unknown"
}

// Occupant identifies the thing holding a cell.
type Occupant struct {
	Kind OccupantKind
	ID   int
}

// Segment is a line in pixel space.
type Segment struct {
	From, To Point
}

// Grid holds the playfield geometry and its occupancy.
// The geometry never changes after NewGrid; occupancy is mutated by the owner only.
type Grid struct {
	CellSize float64
	Cols     int
	Rows     int

	occupants map[Cell]Occupant
}

// NewGrid creates an empty cols x rows grid of square cells.
func NewGrid(cols, rows int, cellSize float64) *Grid {
	return &Grid{
		CellSize:  cellSize,
		Cols:      cols,
		Rows:      rows,
		occupants: make(map[Cell]Occupant),
	}
}

// Pixels returns the playfield size in pixels.
func (g *Grid) Pixels() (w, h float64) {
	return float64(g.Cols) * g.CellSize, float64(g.Rows) * g.CellSize
}

// Contains reports whether the cell lies inside the playfield.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Cols && c.Y < g.Rows
}

// Cells lists every cell row by row.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Cols*g.Rows)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// PixelToCell maps a pixel position to the cell containing it.
// Positions outside the playfield map to cells outside it.
func (g *Grid) PixelToCell(p Point) Cell {
	return Cell{
		X: int(math.Floor(p.X / g.CellSize)),
		Y: int(math.Floor(p.Y / g.CellSize)),
	}
}

// CellToPixelCentre returns the pixel centre of a cell.
func (g *Grid) CellToPixelCentre(c Cell) Point {
	return Point{
		X: (float64(c.X) + 0.5) * g.CellSize,
		Y: (float64(c.Y) + 0.5) * g.CellSize,
	}
}

// PixelToCellOffset returns the offset of p from the centre of its cell, in cell units.
// Each axis lies in [-0.5, 0.5).
func (g *Grid) PixelToCellOffset(p Point) Point {
	centre := g.CellToPixelCentre(g.PixelToCell(p))
	return p.Subtract(centre).Scale(1 / g.CellSize)
}

// BorderCoordinates returns the cells on the edge of the playfield,
// clockwise from the top-left corner, each cell once.
func (g *Grid) BorderCoordinates() []Cell {
	if g.Cols <= 0 || g.Rows <= 0 {
		return nil
	}
	var cells []Cell
	for x := 0; x < g.Cols; x++ {
		cells = append(cells, Cell{X: x, Y: 0})
	}
	for y := 1; y < g.Rows; y++ {
		cells = append(cells, Cell{X: g.Cols - 1, Y: y})
	}
	if g.Rows > 1 {
		for x := g.Cols - 2; x >= 0; x-- {
			cells = append(cells, Cell{X: x, Y: g.Rows - 1})
		}
	}
	if g.Cols > 1 {
		for y := g.Rows - 2; y >= 1; y-- {
			cells = append(cells, Cell{X: 0, Y: y})
		}
	}
	return cells
}

// BorderLines returns the four edges of the playfield in pixels.
func (g *Grid) BorderLines() []Segment {
	w, h := g.Pixels()
	return []Segment{
		{From: Point{0, 0}, To: Point{w, 0}},
		{From: Point{w, 0}, To: Point{w, h}},
		{From: Point{w, h}, To: Point{0, h}},
		{From: Point{0, h}, To: Point{0, 0}},
	}
}

// Occupy puts an occupant on a free cell inside the grid.
func (g *Grid) Occupy(c Cell, o Occupant) bool {
	if !g.Contains(c) {
		return false
	}
	if _, taken := g.occupants[c]; taken {
		return false
	}
	g.occupants[c] = o
	return true
}

// Vacate frees a cell. Vacating a free cell does nothing.
func (g *Grid) Vacate(c Cell) {
	delete(g.occupants, c)
}

// OccupantAt returns the occupant of a cell, if any.
func (g *Grid) OccupantAt(c Cell) (Occupant, bool) {
	o, ok := g.occupants[c]
	return o, ok
}

// IsBlocked reports whether something stands on the cell.
func (g *Grid) IsBlocked(c Cell) bool {
	_, ok := g.occupants[c]
	return ok
}

// Occupied returns a copy of the occupancy map.
func (g *Grid) Occupied() map[Cell]Occupant {
	out := make(map[Cell]Occupant, len(g.occupants))
	for c, o := range g.occupants {
		out[c] = o
	}
	return out
}

// Clear removes every occupant.
func (g *Grid) Clear() {
	g.occupants = make(map[Cell]Occupant)
}
