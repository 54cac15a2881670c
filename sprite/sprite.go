// Package sprite defines the dynamic entity model shared by the registry,
// the collision layer and the simulation pipeline.
//
// Every entity embeds a Sprite and exposes it through Base. Everything beyond
// position, visibility and collidability is an optional capability expressed
// as a single-method interface; the helper functions in capabilities.go call
// a capability when the entity has it and do nothing otherwise.
package sprite

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// ID identifies an entity for the lifetime of its registry.
type ID uint64

// Sprite holds the state every entity carries.
type Sprite struct {
	id ID

	// Pos is the world position in pixels, Rot the heading in degrees
	// clockwise from north.
	Pos r2.Vec
	Rot float64 `inspect:"angle"`

	Visible    bool
	Collidable bool
	Stationary bool
	RigidBody  bool

	reap bool
}

// Entity is anything that can live in the registry.
type Entity interface {
	Base() *Sprite
}

// Base returns the sprite itself so embedding types satisfy Entity.
func (s *Sprite) Base() *Sprite { return s }

// ID returns the identifier assigned by the registry.
func (s *Sprite) ID() ID { return s.id }

// SetID is called by the registry when the entity is added.
func (s *Sprite) SetID(id ID) { s.id = id }

// Die marks the sprite for removal at the end of the current tick.
func (s *Sprite) Die() { s.reap = true }

// Reaping reports whether the sprite is marked for removal.
func (s *Sprite) Reaping() bool { return s.reap }

// ClearReap drops the removal mark once the sprite has been reaped.
func (s *Sprite) ClearReap() { s.reap = false }

// Contact is a candidate or confirmed collision between two entities.
// Contacts are only valid during the tick that produced them.
type Contact struct {
	A, B   Entity
	Normal r2.Vec  // unit vector from A towards B
	Depth  float64 // penetration depth, positive when overlapping
	Speed  float64 // closing speed along Normal when the contact was found
}

// Rigid reports whether either participant needs rigid-body resolution.
func (c *Contact) Rigid() bool {
	return c.A.Base().RigidBody || c.B.Base().RigidBody
}
