package engine

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/Carmen-Shannon/oxy-fly/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithHost sets the platform host polled at the start of every frame.
// Without a host the engine runs headless until Quit.
//
// Parameters:
//   - h: the host, typically a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithBus shares an existing bus, e.g. the one a window publishes to.
//
// Parameters:
//   - bus: the event bus flushed each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithBus(bus *input.Bus) EngineBuilderOption {
	return func(e *engine) {
		e.bus = bus
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxDelta caps the delta time passed to callbacks, so a stall does not become one huge
// step. 0 disables the cap.
//
// Parameters:
//   - seconds: largest delta delivered
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDelta(seconds float32) EngineBuilderOption {
	return func(e *engine) {
		e.maxDelta = seconds
	}
}

// WithClock replaces the wall clock.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithLogger enables engine logging.
//
// Parameters:
//   - logger: log destination
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
