// Package events provides the publish/subscribe hub shared by the clock and the game.
package events

// Event names used across the simulation.
const (
	GameStart            = "game start"
	GameOver             = "game over"
	NewDude              = "new dude"
	WaitingSpritesLoaded = "waiting sprites loaded"
	TargetTimePassed     = "target time passed"
	Collision            = "collision"
	StateChanged         = "state changed"
)

// Event is a single notification with an optional payload.
type Event struct {
	Name    string
	Payload any
}

// Handler receives events for a subscribed name.
type Handler func(Event)

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus dispatches events to subscribers in registration order.
//
// Fire delivers synchronously. Post queues the event until the next Flush,
// which lets the game deliver gameplay notifications at a fixed point in the
// frame instead of in the middle of a pipeline phase.
type Bus struct {
	subs   map[string][]subscription
	nextID SubscriptionID
	queue  []Event
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers h for events named name.
func (b *Bus) Subscribe(name string, h Handler) SubscriptionID {
	b.nextID++
	b.subs[name] = append(b.subs[name], subscription{id: b.nextID, handler: h})
	return b.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	for name, list := range b.subs {
		for i, s := range list {
			if s.id != id {
				continue
			}
			// copy so an in-flight dispatch over the old slice is unaffected
			next := make([]subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			b.subs[name] = next
			return
		}
	}
}

// Fire delivers an event to all current subscribers immediately.
func (b *Bus) Fire(name string, payload any) {
	list := b.subs[name]
	if len(list) == 0 {
		return
	}
	ev := Event{Name: name, Payload: payload}
	for _, s := range list {
		s.handler(ev)
	}
}

// Post queues an event for the next Flush.
func (b *Bus) Post(name string, payload any) {
	b.queue = append(b.queue, Event{Name: name, Payload: payload})
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

// Flush delivers queued events in FIFO order.
// Events posted by handlers during Flush are delivered before it returns.
// Returns the number of events delivered.
func (b *Bus) Flush() int {
	delivered := 0
	for len(b.queue) > 0 {
		batch := b.queue
		b.queue = nil
		for _, ev := range batch {
			b.Fire(ev.Name, ev.Payload)
			delivered++
		}
	}
	return delivered
}

// HandlerCount returns the number of subscribers for name.
func (b *Bus) HandlerCount(name string) int {
	return len(b.subs[name])
}
