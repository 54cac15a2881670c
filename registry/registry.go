// Package registry owns the live entities of a simulation.
package registry

import "github.com/pthm-cable/deadroad/sprite"

type slot struct {
	e    sprite.Entity
	live bool
}

// Registry is an ordered, arena-style entity store.
//
// Entities occupy slots in insertion order. Remove only marks a slot dead, so
// it is safe while a caller is walking slots by index; Compact drops dead
// slots in a single pass once iteration is over.
type Registry struct {
	slots  []slot
	index  map[sprite.ID]int
	nextID sprite.ID
	dead   int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[sprite.ID]int)}
}

// Add assigns the next ID, appends the entity and calls its spawn hook.
// IDs are strictly increasing and never reused.
func (r *Registry) Add(e sprite.Entity) sprite.ID {
	id := r.nextID
	r.nextID++

	e.Base().SetID(id)
	r.index[id] = len(r.slots)
	r.slots = append(r.slots, slot{e: e, live: true})

	sprite.Spawned(e)
	return id
}

// Remove marks the entity's slot dead and calls its reap hook.
// Returns false if the ID is not live.
func (r *Registry) Remove(id sprite.ID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	s := &r.slots[i]
	s.live = false
	delete(r.index, id)
	r.dead++

	sprite.Reaped(s.e)
	return true
}

// Compact drops dead slots, preserving the order of live ones.
func (r *Registry) Compact() {
	if r.dead == 0 {
		return
	}
	n := 0
	for _, s := range r.slots {
		if !s.live {
			continue
		}
		r.slots[n] = s
		r.index[s.e.Base().ID()] = n
		n++
	}
	// release references held by the tail
	for i := n; i < len(r.slots); i++ {
		r.slots[i] = slot{}
	}
	r.slots = r.slots[:n]
	r.dead = 0
}

// Slots returns the number of slots, live or dead. Use it with At to walk
// the registry by index.
func (r *Registry) Slots() int {
	return len(r.slots)
}

// At returns the entity in slot i and whether it is live.
func (r *Registry) At(i int) (sprite.Entity, bool) {
	s := r.slots[i]
	return s.e, s.live
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.slots) - r.dead
}

// Alive reports whether id refers to a live entity.
func (r *Registry) Alive(id sprite.ID) bool {
	_, ok := r.index[id]
	return ok
}

// Contains reports whether e is live in this registry.
func (r *Registry) Contains(e sprite.Entity) bool {
	i, ok := r.index[e.Base().ID()]
	return ok && r.slots[i].e == e
}

// Get returns the live entity with the given ID.
func (r *Registry) Get(id sprite.ID) (sprite.Entity, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.slots[i].e, true
}

// Each calls fn for every live entity in insertion order.
func (r *Registry) Each(fn func(sprite.Entity)) {
	for _, s := range r.slots {
		if s.live {
			fn(s.e)
		}
	}
}

// NextID returns the ID the next Add will assign.
func (r *Registry) NextID() sprite.ID {
	return r.nextID
}
