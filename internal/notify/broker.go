// Package notify fans order events out to any number of subscribers.
package notify

import (
	"log/slog"
	"sync"

	"campania/internal/model"
)

const (
	EventNewOrder     = "new-order"
	EventStatusChange = "status-change"
)

type Event struct {
	Name  string
	Order model.Order
}

// Broker is an in-process publish/subscribe hub. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]chan Event
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[uint64]chan Event)}
}

// Subscription is a registered listener. Close must be called once the
// consumer is gone; it is safe to call more than once.
type Subscription struct {
	id     uint64
	ch     chan Event
	broker *Broker
	once   sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s.id)
	})
}

func (b *Broker) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		ch:     make(chan Event, buffer),
		broker: b,
	}
	b.subs[sub.id] = sub.ch
	return sub
}

func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("subscriber buffer full, dropping event", "subscriber", id, "event", ev.Name, "order", ev.Order.ID)
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}
