// Package bus is the in-process change notification channel between the
// persistence core and whatever surfaces display derived data. Delivery is
// synchronous and in registration order; there is no persistence and no
// cross-process reach.
package bus

import (
	"context"
	"sync"

	applog "obrador/internal/log"
)

// Handler receives an emitted event's payload.
type Handler func(ctx context.Context, payload any)

type subscription struct {
	id      int
	handler Handler
}

// Bus fans events out to subscribed handlers.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	entries map[string][]subscription
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{entries: make(map[string][]subscription)}
}

// Subscribe registers a handler for an event and returns an idempotent
// unsubscribe function.
func (b *Bus) Subscribe(event string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.entries[event] = append(b.entries[event], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		remaining := b.entries[event][:0]
		for _, sub := range b.entries[event] {
			if sub.id != id {
				remaining = append(remaining, sub)
			}
		}
		if len(remaining) == 0 {
			delete(b.entries, event)
			return
		}
		b.entries[event] = remaining
	}
}

// Emit invokes every handler currently subscribed to event, synchronously and
// in registration order. A panicking handler is logged and skipped; the rest
// still run.
func (b *Bus) Emit(ctx context.Context, event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.entries[event]))
	copy(subs, b.entries[event])
	b.mu.Unlock()

	for _, sub := range subs {
		b.invoke(ctx, event, sub, payload)
	}
}

func (b *Bus) invoke(ctx context.Context, event string, sub subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error(ctx, "event handler panicked", "event", event, "panic", r)
		}
	}()
	sub.handler(ctx, payload)
}
