// Package nav plans walking routes around the stationary props of a map.
package nav

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellSize is the default navigation grid cell size in pixels.
const CellSize = 16.0

// Cell is a grid coordinate.
type Cell struct{ X, Y int }

// Grid marks cells blocked by stationary obstacles. The grid has no bounds;
// cells never blocked are open.
type Grid struct {
	cellSize float64
	blocked  map[Cell]struct{}
}

// NewGrid creates an empty grid. cellSize <= 0 selects CellSize.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = CellSize
	}
	return &Grid{cellSize: cellSize, blocked: make(map[Cell]struct{})}
}

// Block marks every cell whose center lies within radius of center.
// Callers inflate radius by the walker's own radius.
func (g *Grid) Block(center r2.Vec, radius float64) {
	lo := g.WorldToGrid(r2.Sub(center, r2.Vec{X: radius, Y: radius}))
	hi := g.WorldToGrid(r2.Add(center, r2.Vec{X: radius, Y: radius}))
	for gy := lo.Y; gy <= hi.Y; gy++ {
		for gx := lo.X; gx <= hi.X; gx++ {
			c := Cell{gx, gy}
			if r2.Norm(r2.Sub(g.GridToWorld(c), center)) <= radius {
				g.blocked[c] = struct{}{}
			}
		}
	}
}

// Reset unblocks every cell.
func (g *Grid) Reset() {
	clear(g.blocked)
}

// Blocked returns the number of blocked cells.
func (g *Grid) Blocked() int { return len(g.blocked) }

// WorldToGrid returns the cell containing p.
func (g *Grid) WorldToGrid(p r2.Vec) Cell {
	return Cell{int(math.Floor(p.X / g.cellSize)), int(math.Floor(p.Y / g.cellSize))}
}

// GridToWorld returns the center of c.
func (g *Grid) GridToWorld(c Cell) r2.Vec {
	return r2.Vec{X: (float64(c.X) + 0.5) * g.cellSize, Y: (float64(c.Y) + 0.5) * g.cellSize}
}

// IsBlocked reports whether c is blocked.
func (g *Grid) IsBlocked(c Cell) bool {
	_, ok := g.blocked[c]
	return ok
}

// IsBlockedWorld reports whether the cell containing p is blocked.
func (g *Grid) IsBlockedWorld(p r2.Vec) bool {
	return g.IsBlocked(g.WorldToGrid(p))
}

// HasLineOfSight reports whether the straight segment from a to b crosses
// only open cells.
func (g *Grid) HasLineOfSight(a, b r2.Vec) bool {
	d := r2.Sub(b, a)
	dist := r2.Norm(d)
	if dist < 0.01 {
		return !g.IsBlockedWorld(a)
	}

	// Step along the line at half a cell
	step := g.cellSize * 0.5
	steps := int(dist/step) + 1
	dir := r2.Scale(1/dist, d)
	for i := 0; i <= steps; i++ {
		p := r2.Add(a, r2.Scale(min(float64(i)*step, dist), dir))
		if g.IsBlockedWorld(p) {
			return false
		}
	}
	return true
}
