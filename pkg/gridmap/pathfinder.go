// pkg/gridmap/pathfinder.go
package gridmap

// tentativeID marks the occupant placed while previewing a placement.
const tentativeID = -1

// PathFinder keeps the path field consistent with the grid's obstacles.
// Spawn and goal cells may lie just outside the grid; they always belong to the search domain.
type PathFinder struct {
	grid   *Grid
	spawns []Cell
	goal   Cell
	exit   Cell
	field  *PathField
}

// NewPathFinder builds the initial field. exit is the direction units leave the goal in.
func NewPathFinder(grid *Grid, spawns []Cell, goal, exit Cell) *PathFinder {
	pf := &PathFinder{
		grid:   grid,
		spawns: append([]Cell(nil), spawns...),
		goal:   goal,
		exit:   exit,
	}
	pf.Recompute()
	return pf
}

// Field returns the current path field.
func (pf *PathFinder) Field() *PathField {
	return pf.field
}

// Spawns returns the spawn cells.
func (pf *PathFinder) Spawns() []Cell {
	return append([]Cell(nil), pf.spawns...)
}

// Goal returns the goal cell.
func (pf *PathFinder) Goal() Cell {
	return pf.goal
}

// Recompute rebuilds the field from the current obstacle set.
func (pf *PathFinder) Recompute() {
	pf.field = pf.compute()
}

// Commit installs a field obtained from Preview.
func (pf *PathFinder) Commit(field *PathField) {
	pf.field = field
}

// IsEndpoint reports whether c is a spawn or the goal.
func (pf *PathFinder) IsEndpoint(c Cell) bool {
	if c == pf.goal {
		return true
	}
	for _, s := range pf.spawns {
		if s == c {
			return true
		}
	}
	return false
}

// Preview computes the field that would result from obstructing c.
// It reports false when c cannot hold an obstruction, when any spawn would lose its route,
// or when a unit headed for one of the keep cells would be walled in. A keep cell that is
// itself obstructed only needs a reachable neighbour to step off onto.
// Neither the grid nor the current field is changed.
func (pf *PathFinder) Preview(c Cell, keep ...Cell) (*PathField, bool) {
	if !pf.grid.Contains(c) || pf.grid.IsBlocked(c) || pf.IsEndpoint(c) {
		return nil, false
	}

	pf.grid.occupants[c] = Occupant{Kind: Obstacle, ID: tentativeID}
	defer delete(pf.grid.occupants, c)

	field := pf.compute()
	if !field.Connected(pf.spawns...) {
		return nil, false
	}
	for _, k := range keep {
		if pf.grid.IsBlocked(k) {
			if field.EscapeDelta(k) == Blocked {
				return nil, false
			}
			continue
		}
		if !field.Contains(k) {
			return nil, false
		}
	}
	return field, true
}

func (pf *PathFinder) compute() *PathField {
	return buildField(pf.goal, pf.exit, pf.inDomain, pf.grid.IsBlocked)
}

func (pf *PathFinder) inDomain(c Cell) bool {
	return pf.grid.Contains(c) || pf.IsEndpoint(c)
}
