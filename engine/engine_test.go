package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

type fakeHost struct {
	frames int
	polled int
	closed bool
	onPoll func()
}

func (h *fakeHost) ProcessEvents() bool {
	h.polled++
	if h.onPoll != nil {
		h.onPoll()
	}
	return h.polled <= h.frames
}

func (h *fakeHost) Close() error {
	h.closed = true
	return nil
}

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestRunOrdersInputBeforeTick(t *testing.T) {
	bus := input.NewBus()
	var order []string
	host := &fakeHost{frames: 3}
	host.onPoll = func() {
		order = append(order, "poll")
		bus.Publish(input.KeyEvent{Code: 1})
	}
	bus.Subscribe(func(ev input.Event) {
		switch ev.(type) {
		case input.KeyEvent:
			order = append(order, "host event")
		case input.WheelEvent:
			order = append(order, "queued event")
		}
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		bus.Enqueue(input.WheelEvent{DeltaY: 1})
	}()
	wg.Wait()

	e := NewEngine(WithHost(host), WithBus(bus), WithClock(&fakeClock{}))
	e.SetTickCallback(func(float32) { order = append(order, "tick") })
	e.SetRenderCallback(func(float32) { order = append(order, "render") })
	e.Run()

	want := []string{
		"poll", "host event", "queued event", "tick", "render",
		"poll", "host event", "tick", "render",
		"poll", "host event", "tick", "render",
		"poll", "host event",
	}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s (full %v)", i, order[i], want[i], order)
		}
	}
	if !host.closed {
		t.Error("host not closed after Run")
	}
}

func TestRunFrameLimitAndDelta(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	host := &fakeHost{frames: 4}
	var deltas []float32

	e := NewEngine(WithHost(host), WithClock(clock), WithRenderFrameLimit(50))
	e.SetTickCallback(func(dt float32) {
		deltas = append(deltas, dt)
		clock.advance(5 * time.Millisecond)
	})
	e.Run()

	if len(deltas) != 4 {
		t.Fatalf("ticks = %d, want 4", len(deltas))
	}
	if deltas[0] != 0 {
		t.Errorf("first delta = %v, want 0", deltas[0])
	}
	for i, dt := range deltas[1:] {
		if dt < 0.0199 || dt > 0.0201 {
			t.Errorf("delta %d = %v, want 0.02", i+1, dt)
		}
	}
	for i, d := range clock.slept {
		if d != 15*time.Millisecond {
			t.Errorf("sleep %d = %v, want 15ms", i, d)
		}
	}
}

func TestRunCapsDelta(t *testing.T) {
	clock := &fakeClock{}
	var deltas []float32
	e := NewEngine(WithHost(&fakeHost{frames: 2}), WithClock(clock), WithMaxDelta(0.1))
	e.SetTickCallback(func(dt float32) {
		deltas = append(deltas, dt)
		clock.advance(3 * time.Second)
	})
	e.Run()

	if len(deltas) != 2 || deltas[1] != 0.1 {
		t.Errorf("deltas = %v, want second capped at 0.1", deltas)
	}
}

func TestQuitStopsHeadlessRun(t *testing.T) {
	e := NewEngine(WithClock(&fakeClock{}))
	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 5 {
			e.Quit()
			e.Quit()
		}
	})
	e.Run()
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
}

func TestStep(t *testing.T) {
	e := NewEngine(WithProfiling(true))
	var got float32
	e.SetTickCallback(func(dt float32) { got = dt })

	if !e.Step() {
		t.Fatal("Step() = false on a fresh engine")
	}
	if got < 0.0166 || got > 0.0167 {
		t.Errorf("Step delta = %v, want 1/60", got)
	}
	e.Quit()
	if e.Step() {
		t.Error("Step() = true after Quit")
	}
}
