package nav

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxIterations bounds a search on the unbounded grid.
const DefaultMaxIterations = 4000

// Planner provides A* pathfinding over a Grid. A planner reuses its search
// state and is not safe for concurrent use.
type Planner struct {
	grid          *Grid
	MaxIterations int

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[Cell]struct{}
	cameFrom  map[Cell]Cell
	gScore    map[Cell]float64
}

// astarNode is a node in the A* search.
type astarNode struct {
	c     Cell
	f     float64 // f = g + h (priority)
	index int     // Heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// neighbors lists the 8-connected offsets, cardinals first.
var neighbors = [8]Cell{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// NewPlanner creates a planner over grid.
func NewPlanner(grid *Grid) *Planner {
	return &Planner{
		grid:          grid,
		MaxIterations: DefaultMaxIterations,
		openHeap:      &nodeHeap{},
		closedSet:     make(map[Cell]struct{}, 256),
		cameFrom:      make(map[Cell]Cell, 256),
		gScore:        make(map[Cell]float64, 256),
	}
}

// Grid returns the grid the planner searches.
func (a *Planner) Grid() *Grid { return a.grid }

// FindPath computes a path from start to goal using A*.
// Returns waypoints in world coordinates ending at goal's cell, or nil if
// no path was found within MaxIterations.
func (a *Planner) FindPath(start, goal r2.Vec) []r2.Vec {
	grid := a.grid
	s := grid.WorldToGrid(start)
	g := grid.WorldToGrid(goal)

	// Blocked endpoints snap to the nearest open cell
	var ok bool
	if grid.IsBlocked(s) {
		if s, ok = a.findNearestOpen(s); !ok {
			return nil
		}
	}
	if grid.IsBlocked(g) {
		if g, ok = a.findNearestOpen(g); !ok {
			return nil
		}
	}

	if s == g {
		return []r2.Vec{grid.GridToWorld(g)}
	}

	*a.openHeap = (*a.openHeap)[:0]
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)

	a.gScore[s] = 0
	heap.Push(a.openHeap, &astarNode{c: s, f: heuristic(s, g)})

	for iterations := 0; a.openHeap.Len() > 0 && iterations < a.MaxIterations; iterations++ {
		current := heap.Pop(a.openHeap).(*astarNode).c

		if current == g {
			return a.reconstructPath(s, g)
		}
		if _, done := a.closedSet[current]; done {
			// stale heap entry for a cell improved after it was pushed
			continue
		}
		a.closedSet[current] = struct{}{}

		for i, off := range neighbors {
			n := Cell{current.X + off.X, current.Y + off.Y}
			if grid.IsBlocked(n) {
				continue
			}

			// Diagonal moves must not cut corners
			diagonal := i >= 4
			if diagonal && (grid.IsBlocked(Cell{current.X + off.X, current.Y}) || grid.IsBlocked(Cell{current.X, current.Y + off.Y})) {
				continue
			}
			if _, done := a.closedSet[n]; done {
				continue
			}

			moveCost := 1.0
			if diagonal {
				moveCost = math.Sqrt2
			}
			tentativeG := a.gScore[current] + moveCost

			if existingG, exists := a.gScore[n]; exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[n] = current
			a.gScore[n] = tentativeG
			heap.Push(a.openHeap, &astarNode{c: n, f: tentativeG + heuristic(n, g)})
		}
	}

	return nil
}

// heuristic computes the Euclidean distance heuristic for A*.
func heuristic(a, b Cell) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// reconstructPath builds the path from the cameFrom map.
func (a *Planner) reconstructPath(start, goal Cell) []r2.Vec {
	cells := []Cell{goal}
	for current := goal; current != start; {
		prev, ok := a.cameFrom[current]
		if !ok {
			break
		}
		cells = append(cells, prev)
		current = prev
	}

	path := make([]r2.Vec, len(cells))
	for i, c := range cells {
		path[len(cells)-1-i] = a.grid.GridToWorld(c)
	}
	return a.simplifyPath(path)
}

// simplifyPath drops waypoints the walker can skip in a straight line.
func (a *Planner) simplifyPath(path []r2.Vec) []r2.Vec {
	if len(path) <= 2 {
		return path
	}

	simplified := make([]r2.Vec, 0, len(path))
	simplified = append(simplified, path[0])
	anchor := path[0]
	for i := 1; i < len(path)-1; i++ {
		if !a.grid.HasLineOfSight(anchor, path[i+1]) {
			simplified = append(simplified, path[i])
			anchor = path[i]
		}
	}
	return append(simplified, path[len(path)-1])
}

// findNearestOpen spirals out from c for an unblocked cell.
func (a *Planner) findNearestOpen(c Cell) (Cell, bool) {
	for radius := 1; radius < 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				// Only check cells at the current radius
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				n := Cell{c.X + dx, c.Y + dy}
				if !a.grid.IsBlocked(n) {
					return n, true
				}
			}
		}
	}
	return Cell{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
