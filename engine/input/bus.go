package input

import "sync"

// Handler receives events from a Source.
type Handler func(Event)

// Source delivers raw input events to subscribers.
type Source interface {
	// Subscribe registers a handler and returns the handle that removes it.
	//
	// Parameters:
	//   - h: the handler to call for each event
	//
	// Returns:
	//   - Subscription: handle used to unsubscribe
	Subscribe(h Handler) Subscription
}

// Subscription is a scoped listener registration returned by Subscribe.
// The zero value is valid and Unsubscribe on it does nothing.
type Subscription struct {
	id  uint64
	bus *Bus
}

// Unsubscribe removes the handler. Calling it more than once has no further effect.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	s.bus.remove(s.id)
}

type handlerEntry struct {
	id uint64
	fn Handler
}

// Bus is the Source implementation shared by every host.
//
// Publish dispatches synchronously and must only be called from the thread that runs the
// frame loop. Enqueue may be called from any goroutine; queued events are dispatched, in
// arrival order, by the next Flush on the frame-loop thread.
type Bus struct {
	handlers []handlerEntry
	nextID   uint64

	mu      sync.Mutex
	pending []Event
}

var _ Source = &Bus{}

// NewBus creates an empty Bus.
//
// Returns:
//   - *Bus: the bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns its Subscription.
func (b *Bus) Subscribe(h Handler) Subscription {
	b.nextID++
	b.handlers = append(b.handlers, handlerEntry{id: b.nextID, fn: h})
	return Subscription{id: b.nextID, bus: b}
}

// remove rebuilds the handler slice without id so that a dispatch loop iterating the old
// slice is not disturbed.
func (b *Bus) remove(id uint64) {
	next := make([]handlerEntry, 0, len(b.handlers))
	for _, h := range b.handlers {
		if h.id != id {
			next = append(next, h)
		}
	}
	b.handlers = next
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	return len(b.handlers)
}

// Publish dispatches ev to every handler before returning.
//
// Parameters:
//   - ev: the event to deliver
func (b *Bus) Publish(ev Event) {
	for _, h := range b.handlers {
		h.fn(ev)
	}
}

// Enqueue stores ev for dispatch by the next Flush. Safe for concurrent use.
//
// Parameters:
//   - ev: the event to deliver later
func (b *Bus) Enqueue(ev Event) {
	b.mu.Lock()
	b.pending = append(b.pending, ev)
	b.mu.Unlock()
}

// Flush dispatches every queued event in arrival order.
//
// Returns:
//   - int: the number of events dispatched
func (b *Bus) Flush() int {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, ev := range pending {
		b.Publish(ev)
	}
	return len(pending)
}
