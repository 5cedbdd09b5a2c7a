// pkg/gridmap/pathfield.go
package gridmap

// PathField maps every reachable cell to the step that brings it one cell closer to the goal.
type PathField struct {
	goal   Cell
	exit   Cell
	deltas map[Cell]Cell
	dist   map[Cell]int
}

// buildField runs a breadth-first search outward from the goal.
// inDomain limits the search, blocked marks cells that cannot be entered.
func buildField(goal, exit Cell, inDomain, blocked func(Cell) bool) *PathField {
	pf := &PathField{
		goal:   goal,
		exit:   exit,
		deltas: make(map[Cell]Cell),
		dist:   make(map[Cell]int),
	}
	if !inDomain(goal) || blocked(goal) {
		return pf
	}

	pf.dist[goal] = 0
	queue := []Cell{goal}
	head := 0
	for head < len(queue) {
		current := queue[head]
		head++
		for _, next := range current.Neighbors() {
			if _, seen := pf.dist[next]; seen {
				continue
			}
			if !inDomain(next) || blocked(next) {
				continue
			}
			pf.dist[next] = pf.dist[current] + 1
			queue = append(queue, next)
		}
	}

	// Deltas are picked in a second pass so the tie-break only depends on Directions.
	for cell, d := range pf.dist {
		if cell == goal {
			pf.deltas[cell] = exit
			continue
		}
		for _, dir := range Directions {
			if nd, ok := pf.dist[cell.Add(dir)]; ok && nd == d-1 {
				pf.deltas[cell] = dir
				break
			}
		}
	}
	return pf
}

// Goal returns the cell every path ends at.
func (pf *PathField) Goal() Cell {
	return pf.goal
}

// Delta returns the move toward the goal, or Blocked for unreachable cells.
func (pf *PathField) Delta(c Cell) Cell {
	d, ok := pf.deltas[c]
	if !ok {
		return Blocked
	}
	return d
}

// Distance returns the number of steps to the goal. ok is false for unreachable cells.
func (pf *PathField) Distance(c Cell) (int, bool) {
	d, ok := pf.dist[c]
	return d, ok
}

// Contains reports whether the cell has a route to the goal.
func (pf *PathField) Contains(c Cell) bool {
	_, ok := pf.dist[c]
	return ok
}

// Len is the number of reachable cells.
func (pf *PathField) Len() int {
	return len(pf.dist)
}

// Connected reports whether every given cell can reach the goal.
func (pf *PathField) Connected(cells ...Cell) bool {
	for _, c := range cells {
		if !pf.Contains(c) {
			return false
		}
	}
	return true
}

// ShortestFrom follows deltas from start to the goal.
// The walk stops after Len()+1 cells so an inconsistent field cannot loop forever.
func (pf *PathField) ShortestFrom(start Cell) []Cell {
	if !pf.Contains(start) {
		return nil
	}
	budget := pf.Len() + 1
	path := []Cell{start}
	current := start
	for current != pf.goal && len(path) < budget {
		current = current.Add(pf.Delta(current))
		if !pf.Contains(current) {
			break
		}
		path = append(path, current)
	}
	return path
}

// EscapeDelta is used by a unit standing on a cell that has just become obstructed:
// it points at the reachable neighbour closest to the goal, or Blocked if there is none.
func (pf *PathField) EscapeDelta(c Cell) Cell {
	best := Blocked
	bestDist := -1
	for _, dir := range Directions {
		d, ok := pf.dist[c.Add(dir)]
		if !ok {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = dir, d
		}
	}
	return best
}

// Cells lists the reachable cells. Order is unspecified.
func (pf *PathField) Cells() []Cell {
	out := make([]Cell, 0, len(pf.dist))
	for c := range pf.dist {
		out = append(out, c)
	}
	return out
}
