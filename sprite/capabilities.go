package sprite

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// PreMover adjusts sprite-local state before anything moves (fade, scale).
type PreMover interface {
	PreMove(dt float64)
}

// SpeculativeMover computes a tentative position and remembers the old one.
type SpeculativeMover interface {
	SpeculativeMove(dt float64)
}

// CollisionQuerier appends contacts with nearby entities to dst.
type CollisionQuerier interface {
	QueryCollisions(dst []Contact) []Contact
}

// Restorer rolls back to the position saved by SpeculativeMove.
type Restorer interface {
	RestorePreSpeculativePosition()
}

// Integrator commits the real movement for the tick.
type Integrator interface {
	Integrate(dt float64)
}

// GridUpdater refreshes broad-phase membership without moving.
type GridUpdater interface {
	UpdateGrid()
}

// PostMover runs after all motion has been committed.
type PostMover interface {
	PostMove(dt float64)
}

// PairChecker tests for a collision against one specific entity.
type PairChecker interface {
	CheckCollision(other Entity) (Contact, bool)
}

// Renderer draws the entity.
type Renderer interface {
	Render(c Canvas, dt float64)
}

// Spawner is notified when the entity joins a registry.
type Spawner interface {
	Spawned()
}

// Collider reacts to a reported collision (damage, effects).
type Collider interface {
	Collided(other Entity, c *Contact)
}

// Reaper is notified after the entity has left the registry.
type Reaper interface {
	Reaped()
}

// Canvas is the drawing surface handed to renderers.
type Canvas interface {
	Circle(center r2.Vec, radius float64, col color.RGBA)
	Rect(center r2.Vec, w, h, rotDeg float64, col color.RGBA)
	Line(from, to r2.Vec, thickness float64, col color.RGBA)
}

// PreMove calls the entity's PreMover capability if present.
func PreMove(e Entity, dt float64) {
	if m, ok := e.(PreMover); ok {
		m.PreMove(dt)
	}
}

// SpeculativeMove calls the entity's SpeculativeMover capability if present.
func SpeculativeMove(e Entity, dt float64) {
	if m, ok := e.(SpeculativeMover); ok {
		m.SpeculativeMove(dt)
	}
}

// QueryCollisions calls the entity's CollisionQuerier capability if present.
func QueryCollisions(e Entity, dst []Contact) []Contact {
	if q, ok := e.(CollisionQuerier); ok {
		return q.QueryCollisions(dst)
	}
	return dst
}

// Restore calls the entity's Restorer capability if present.
func Restore(e Entity) {
	if r, ok := e.(Restorer); ok {
		r.RestorePreSpeculativePosition()
	}
}

// Integrate commits movement when the entity can integrate and is not
// stationary; otherwise it refreshes grid membership. Returns true if the
// entity integrated.
func Integrate(e Entity, dt float64) bool {
	if in, ok := e.(Integrator); ok && !e.Base().Stationary {
		in.Integrate(dt)
		return true
	}
	if g, ok := e.(GridUpdater); ok {
		g.UpdateGrid()
	}
	return false
}

// PostMove calls the entity's PostMover capability if present.
func PostMove(e Entity, dt float64) {
	if m, ok := e.(PostMover); ok {
		m.PostMove(dt)
	}
}

// CheckCollision runs a pairwise check from a to b.
// Entities without the capability never collide.
func CheckCollision(a, b Entity) (Contact, bool) {
	if pc, ok := a.(PairChecker); ok {
		return pc.CheckCollision(b)
	}
	return Contact{}, false
}

// Render calls the entity's Renderer capability if present.
func Render(e Entity, c Canvas, dt float64) {
	if r, ok := e.(Renderer); ok {
		r.Render(c, dt)
	}
}

// Spawned calls the entity's Spawner capability if present.
func Spawned(e Entity) {
	if s, ok := e.(Spawner); ok {
		s.Spawned()
	}
}

// Collided calls the entity's Collider capability if present.
func Collided(e, other Entity, c *Contact) {
	if col, ok := e.(Collider); ok {
		col.Collided(other, c)
	}
}

// Reaped calls the entity's Reaper capability if present.
func Reaped(e Entity) {
	if r, ok := e.(Reaper); ok {
		r.Reaped()
	}
}
