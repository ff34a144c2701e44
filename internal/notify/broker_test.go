package notify

import (
	"sync"
	"testing"
	"time"

	"campania/internal/model"
)

func recv(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestBroker_FanOut(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	subs := []*Subscription{b.Subscribe(4), b.Subscribe(4), b.Subscribe(4)}

	b.Publish(Event{Name: EventNewOrder, Order: model.Order{ID: "o_1"}})

	for i, sub := range subs {
		ev := recv(t, sub)
		if ev.Name != EventNewOrder || ev.Order.ID != "o_1" {
			t.Fatalf("subscriber %d: unexpected event %+v", i, ev)
		}
	}
}

func TestBroker_CloseRestoresCount(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	base := b.Subscribers()

	sub := b.Subscribe(1)
	if got := b.Subscribers(); got != base+1 {
		t.Fatalf("expected %d subscribers, got %d", base+1, got)
	}

	sub.Close()
	sub.Close()

	if got := b.Subscribers(); got != base {
		t.Fatalf("expected %d subscribers after close, got %d", base, got)
	}
	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected events channel to be closed")
	}
}

func TestBroker_PublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	slow := b.Subscribe(1)
	fast := b.Subscribe(8)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			b.Publish(Event{Name: EventStatusChange, Order: model.Order{ID: "o_x"}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	if n := len(slow.Events()); n != 1 {
		t.Fatalf("expected slow subscriber to hold 1 event, got %d", n)
	}
	if n := len(fast.Events()); n != 5 {
		t.Fatalf("expected fast subscriber to hold 5 events, got %d", n)
	}
}

func TestBroker_ConcurrentSubscribeAndPublish(t *testing.T) {
	t.Parallel()

	b := NewBroker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := b.Subscribe(2)
			sub.Close()
		}()
		go func() {
			defer wg.Done()
			b.Publish(Event{Name: EventNewOrder})
		}()
	}
	wg.Wait()

	if got := b.Subscribers(); got != 0 {
		t.Fatalf("expected no subscribers left, got %d", got)
	}
}
