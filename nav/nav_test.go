package nav

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// wall blocks a vertical line of cells at x from y0 to y1 inclusive.
func wall(g *Grid, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		g.blocked[Cell{x, y}] = struct{}{}
	}
}

func TestBlockMarksCellsInRadius(t *testing.T) {
	g := NewGrid(16)
	g.Block(r2.Vec{X: 8, Y: 8}, 1)

	if g.Blocked() != 1 || !g.IsBlocked(Cell{0, 0}) {
		t.Errorf("small block: %d cells blocked", g.Blocked())
	}

	g.Reset()
	g.Block(r2.Vec{X: 8, Y: 8}, 16)
	// center cell plus its four edge neighbors
	if g.Blocked() != 5 {
		t.Errorf("blocked %d cells, want 5", g.Blocked())
	}
	if g.IsBlocked(Cell{1, 1}) {
		t.Error("diagonal cell is outside the radius")
	}
}

func TestWorldToGridNegative(t *testing.T) {
	g := NewGrid(16)
	if c := g.WorldToGrid(r2.Vec{X: -1, Y: -17}); c != (Cell{-1, -2}) {
		t.Errorf("WorldToGrid = %v, want {-1 -2}", c)
	}
	if p := g.GridToWorld(Cell{-1, 0}); p != (r2.Vec{X: -8, Y: 8}) {
		t.Errorf("GridToWorld = %v", p)
	}
}

func TestLineOfSight(t *testing.T) {
	g := NewGrid(16)
	wall(g, 3, -2, 2)

	tests := []struct {
		name string
		a, b r2.Vec
		want bool
	}{
		{"through wall", r2.Vec{X: 8, Y: 8}, r2.Vec{X: 120, Y: 8}, false},
		{"beside wall", r2.Vec{X: 8, Y: 80}, r2.Vec{X: 120, Y: 80}, true},
		{"same point", r2.Vec{X: 8, Y: 8}, r2.Vec{X: 8, Y: 8}, true},
		{"ends in wall", r2.Vec{X: 8, Y: 8}, r2.Vec{X: 56, Y: 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.HasLineOfSight(tt.a, tt.b); got != tt.want {
				t.Errorf("HasLineOfSight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPathAroundWall(t *testing.T) {
	g := NewGrid(16)
	wall(g, 3, -3, 3)
	p := NewPlanner(g)

	start := r2.Vec{X: 8, Y: 8}
	goal := r2.Vec{X: 120, Y: 8}
	path := p.FindPath(start, goal)

	if len(path) < 3 {
		t.Fatalf("path = %v, want a detour", path)
	}
	if path[0] != g.GridToWorld(g.WorldToGrid(start)) {
		t.Errorf("path starts at %v", path[0])
	}
	if path[len(path)-1] != g.GridToWorld(g.WorldToGrid(goal)) {
		t.Errorf("path ends at %v", path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		if !g.HasLineOfSight(path[i-1], path[i]) {
			t.Errorf("leg %d from %v to %v crosses the wall", i, path[i-1], path[i])
		}
	}
}

func TestFindPathStraightWhenOpen(t *testing.T) {
	p := NewPlanner(NewGrid(16))

	path := p.FindPath(r2.Vec{X: 8, Y: 8}, r2.Vec{X: 200, Y: 8})

	if len(path) != 2 {
		t.Errorf("open path = %v, want start and goal only", path)
	}
}

func TestFindPathSameCell(t *testing.T) {
	p := NewPlanner(NewGrid(16))

	path := p.FindPath(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 15, Y: 15})

	if len(path) != 1 || path[0] != (r2.Vec{X: 8, Y: 8}) {
		t.Errorf("path = %v", path)
	}
}

func TestFindPathGivesUpWhenEnclosed(t *testing.T) {
	g := NewGrid(16)
	// a closed ring around the goal cell (10, 0)
	for y := -2; y <= 2; y++ {
		for x := 8; x <= 12; x++ {
			if abs(x-10) == 2 || abs(y) == 2 {
				g.blocked[Cell{x, y}] = struct{}{}
			}
		}
	}
	p := NewPlanner(g)
	p.MaxIterations = 500

	if path := p.FindPath(r2.Vec{X: 8, Y: 8}, g.GridToWorld(Cell{10, 0})); path != nil {
		t.Errorf("path into a closed ring = %v", path)
	}
}

func TestFindPathSnapsBlockedGoal(t *testing.T) {
	g := NewGrid(16)
	g.Block(r2.Vec{X: 200, Y: 8}, 4)
	p := NewPlanner(g)

	path := p.FindPath(r2.Vec{X: 8, Y: 8}, r2.Vec{X: 200, Y: 8})

	if path == nil {
		t.Fatal("no path to a blocked goal")
	}
	if g.IsBlockedWorld(path[len(path)-1]) {
		t.Error("path ends in a blocked cell")
	}
}

func TestRouteValidAndNext(t *testing.T) {
	g := NewGrid(16)
	r := &Route{
		Waypoints: []r2.Vec{{X: 0}, {X: 50}, {X: 100}},
		Target:    r2.Vec{X: 100},
	}

	if !r.Valid(g, r2.Vec{X: 110}, 1) {
		t.Error("fresh route invalid")
	}
	if r.Valid(g, r2.Vec{X: 200}, 1) {
		t.Error("route valid after the target moved away")
	}
	r.Age = 2
	if r.Valid(g, r2.Vec{X: 100}, 1) {
		t.Error("route valid past its age")
	}
	r.Age = 0

	wp, ok := r.Next(r2.Vec{X: 2}, 8)
	if !ok || wp != (r2.Vec{X: 50}) || r.Index != 1 {
		t.Errorf("Next = %v, %v (index %d)", wp, ok, r.Index)
	}

	g.Block(r2.Vec{X: 100}, 10)
	if r.Valid(g, r2.Vec{X: 100}, 1) {
		t.Error("route valid through a newly blocked waypoint")
	}

	if _, ok := r.Next(r2.Vec{X: 100}, 200); ok {
		t.Error("Next ok after passing every waypoint")
	}
	var nilRoute *Route
	if nilRoute.Valid(g, r2.Vec{}, 1) {
		t.Error("nil route valid")
	}
}
