package input

import (
	"sync"
	"testing"
)

func TestBusPublishAndUnsubscribe(t *testing.T) {
	b := NewBus()

	var a, c []Event
	subA := b.Subscribe(func(ev Event) { a = append(a, ev) })
	b.Subscribe(func(ev Event) { c = append(c, ev) })

	b.Publish(KeyEvent{Code: 87, Action: KeyDown})
	subA.Unsubscribe()
	subA.Unsubscribe()
	b.Publish(KeyEvent{Code: 87, Action: KeyUp})

	if len(a) != 1 {
		t.Errorf("unsubscribed handler got %d events, want 1", len(a))
	}
	if len(c) != 2 {
		t.Errorf("remaining handler got %d events, want 2", len(c))
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus()

	var calls int
	var sub Subscription
	sub = b.Subscribe(func(Event) {
		calls++
		sub.Unsubscribe()
	})
	var second int
	b.Subscribe(func(Event) { second++ })

	b.Publish(WheelEvent{DeltaY: 1})
	b.Publish(WheelEvent{DeltaY: 1})

	if calls != 1 {
		t.Errorf("self-removing handler called %d times, want 1", calls)
	}
	if second != 2 {
		t.Errorf("second handler called %d times, want 2", second)
	}
}

func TestZeroSubscription(t *testing.T) {
	var s Subscription
	s.Unsubscribe()
}

func TestBusEnqueueFlushOrder(t *testing.T) {
	b := NewBus()

	var got []float32
	b.Subscribe(func(ev Event) {
		if w, ok := ev.(WheelEvent); ok {
			got = append(got, w.DeltaY)
		}
	})

	b.Enqueue(WheelEvent{DeltaY: 1})
	b.Enqueue(WheelEvent{DeltaY: 2})
	if len(got) != 0 {
		t.Fatalf("Enqueue dispatched before Flush: %v", got)
	}

	if n := b.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("dispatch order = %v, want [1 2]", got)
	}
	if n := b.Flush(); n != 0 {
		t.Errorf("second Flush() = %d, want 0", n)
	}
}

func TestBusEnqueueConcurrent(t *testing.T) {
	b := NewBus()
	count := 0
	b.Subscribe(func(Event) { count++ })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Enqueue(LockEvent{Locked: true})
			}
		}()
	}
	wg.Wait()

	b.Flush()
	if count != 800 {
		t.Errorf("dispatched %d events, want 800", count)
	}
}
