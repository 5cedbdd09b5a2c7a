// pkg/gridmap/cell.go
package gridmap

import "math"

// Cell is a discrete grid coordinate. Direction deltas are Cells as well.
type Cell struct {
	X, Y int
}

// Point is a position in pixels, or an offset in cell units where noted.
type Point struct {
	X, Y float64
}

var (
	Up    = Cell{X: 0, Y: -1}
	Right = Cell{X: 1, Y: 0}
	Down  = Cell{X: 0, Y: 1}
	Left  = Cell{X: -1, Y: 0}
)

// Directions is the neighbour order used everywhere a tie has to be broken.
var Directions = []Cell{Up, Right, Down, Left}

// Blocked is the delta reported for cells with no route to the goal.
var Blocked = Cell{}

// Add returns the sum of two cells.
func (c Cell) Add(other Cell) Cell {
	return Cell{X: c.X + other.X, Y: c.Y + other.Y}
}

// Subtract returns the difference of two cells.
func (c Cell) Subtract(other Cell) Cell {
	return Cell{X: c.X - other.X, Y: c.Y - other.Y}
}

// Neighbors returns the four orthogonal neighbours in Directions order.
func (c Cell) Neighbors() [4]Cell {
	return [4]Cell{c.Add(Up), c.Add(Right), c.Add(Down), c.Add(Left)}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Subtract returns p - other.
func (p Point) Subtract(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale multiplies both coordinates by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Length is the euclidean norm of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// DistanceTo is the euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	return p.Subtract(other).Length()
}
