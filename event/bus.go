package event

import (
	"log"
	"sync"

	"github.com/lixenwraith/chest-sort/parameter"
)

// Handler consumes a dispatched event
type Handler func(GameEvent)

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is a typed publish/subscribe channel backed by the event ring buffer
// Publish is safe from any goroutine; Dispatch runs handlers on the caller (session owner)
type Bus struct {
	queue *EventQueue

	mu       sync.RWMutex
	handlers map[EventType][]subscriber
	nextID   uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		queue:    NewEventQueue(),
		handlers: make(map[EventType][]subscriber),
	}
}

// Subscription is returned by Subscribe; Unsubscribe is idempotent
type Subscription struct {
	bus  *Bus
	typ  EventType
	id   uint64
	once sync.Once
}

// Subscribe registers fn for events of type et
func (b *Bus) Subscribe(et EventType, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[et] = append(b.handlers[et], subscriber{id: id, fn: fn})
	return &Subscription{bus: b, typ: et, id: id}
}

// Unsubscribe removes the handler; later dispatches never reach it
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		b := s.bus
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[s.typ]
		for i, sub := range subs {
			if sub.id == s.id {
				// Copy so an in-flight dispatch iterating the old slice is unaffected
				next := make([]subscriber, 0, len(subs)-1)
				next = append(next, subs[:i]...)
				next = append(next, subs[i+1:]...)
				b.handlers[s.typ] = next
				break
			}
		}
	})
}

// On subscribes with a payload type assertion
// Events whose payload is not P are logged and skipped
func On[P any](b *Bus, et EventType, fn func(P)) *Subscription {
	return b.Subscribe(et, func(ev GameEvent) {
		p, ok := ev.Payload.(P)
		if !ok {
			log.Printf("[event] %s: unexpected payload %T", ev.Type, ev.Payload)
			return
		}
		fn(p)
	})
}

// Publish enqueues an event for the next Dispatch
func (b *Bus) Publish(et EventType, payload any) {
	b.queue.Push(GameEvent{Type: et, Payload: payload})
}

// Pending returns the approximate number of queued events
func (b *Bus) Pending() int {
	return b.queue.Len()
}

// Dispatch drains the queue and runs handlers in FIFO order
// Events published by handlers are drained in follow-up rounds, bounded by EventDispatchRounds
// Returns the number of events delivered
func (b *Bus) Dispatch() int {
	delivered := 0
	for round := 0; round < parameter.EventDispatchRounds; round++ {
		batch := b.queue.Consume()
		if len(batch) == 0 {
			return delivered
		}
		for _, ev := range batch {
			b.mu.RLock()
			subs := b.handlers[ev.Type]
			b.mu.RUnlock()

			for _, sub := range subs {
				sub.fn(ev)
			}
			delivered++
		}
	}
	if n := b.queue.Len(); n > 0 {
		log.Printf("[event] dispatch round limit reached, %d events deferred", n)
	}
	return delivered
}

// Dropped returns events lost to ring buffer overflow
func (b *Bus) Dropped() uint64 {
	return b.queue.Dropped()
}

// Subscriptions groups subscriptions owned by one component for teardown
type Subscriptions []*Subscription

// Add appends a subscription
func (s *Subscriptions) Add(sub *Subscription) {
	*s = append(*s, sub)
}

// UnsubscribeAll releases every subscription in the group
func (s *Subscriptions) UnsubscribeAll() {
	for _, sub := range *s {
		sub.Unsubscribe()
	}
	*s = nil
}
