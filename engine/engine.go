package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/Carmen-Shannon/oxy-fly/engine/profiler"
)

// Host is the platform side of the loop: it pumps native events once per frame.
type Host interface {
	// ProcessEvents polls and dispatches pending platform events.
	//
	// Returns:
	//   - bool: false once the host has shut down
	ProcessEvents() bool

	// Close releases platform resources.
	Close() error
}

// Clock abstracts time for the loop.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// engine implements the Engine interface.
// Every callback runs on the goroutine that called Run.
type engine struct {
	host  Host
	bus   *input.Bus
	clock Clock

	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxDelta         float32

	logger *log.Logger
}

// Engine drives the per-frame update. It is single-threaded: host events, queued events,
// the tick callback and the render callback all run in order on the caller of Run.
type Engine interface {
	// Host returns the platform host.
	//
	// Returns:
	//   - Host: the host, nil when running headless
	Host() Host

	// Bus returns the event bus flushed once per frame. Other goroutines hand events to the
	// loop with Bus().Enqueue.
	//
	// Returns:
	//   - *input.Bus: the engine's bus
	Bus() *input.Bus

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame after input is delivered.
	// Use this for FlyControls.Update and other simulation.
	//
	// Parameters:
	//   - callback: function receiving the frame's delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame after the tick.
	//
	// Parameters:
	//   - callback: function receiving the frame's delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Step runs a single frame.
	//
	// Returns:
	//   - bool: false when the host has closed or Quit was called
	Step() bool

	// Run runs frames until the host closes or Quit is called, then closes the host.
	Run()

	// Quit stops Run after the current frame. Safe to call from any goroutine and more than once.
	Quit()
}

// NewEngine creates a new Engine.
//
// Parameters:
//   - options: functional options for engine configuration (host, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		bus:         input.NewBus(),
		clock:       systemClock{},
		quitChannel: make(chan struct{}),
		maxDelta:    0.25,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock.Now))
	}
	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) Bus() *input.Bus {
	return e.bus
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) Run() {
	last := e.clock.Now()
	for {
		start := e.clock.Now()
		dt := float32(start.Sub(last).Seconds())
		last = start
		if !e.frame(dt) {
			break
		}
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.clock.Now().Sub(start); remaining > 0 {
				e.clock.Sleep(remaining)
			}
		}
	}
	if e.host != nil {
		if err := e.host.Close(); err != nil && e.logger != nil {
			e.logger.Printf("[Engine] host close: %v", err)
		}
	}
}

func (e *engine) Step() bool {
	return e.frame(float32(frameDuration(60).Seconds()))
}

// frame runs one iteration: host events, queued events, tick, render, profiler.
func (e *engine) frame(dt float32) bool {
	if e.quitting() {
		return false
	}
	if e.host != nil && !e.host.ProcessEvents() {
		return false
	}
	e.bus.Flush()

	if e.maxDelta > 0 && dt > e.maxDelta {
		dt = e.maxDelta
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(dt)
	}
	return !e.quitting()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}
