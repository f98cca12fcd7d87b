package profiler

import (
	"log"
	"math"
	"runtime"
	"time"
)

// Stats is one reporting interval's summary.
type Stats struct {
	FPS      float64
	MinFrame time.Duration
	MaxFrame time.Duration
	HeapMB   float64
	NumGC    uint32
}

// Profiler tracks frame rate, frame time spread and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	minFrame       time.Duration
	maxFrame       time.Duration
	last           Stats
	now            func() time.Time
	logger         *log.Logger
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sends reports to logger instead of the standard logger.
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         log.Default(),
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the frame's delta time.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - dt: the frame's elapsed seconds
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(dt float32) bool {
	frame := time.Duration(math.Round(float64(dt) * float64(time.Second)))
	if p.frameCount == 0 || frame < p.minFrame {
		p.minFrame = frame
	}
	if frame > p.maxFrame {
		p.maxFrame = frame
	}
	p.frameCount++

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	p.last = Stats{
		FPS:      float64(p.frameCount) / elapsed.Seconds(),
		MinFrame: p.minFrame,
		MaxFrame: p.maxFrame,
		HeapMB:   float64(p.memStats.Alloc) / 1024 / 1024,
		NumGC:    p.memStats.NumGC,
	}
	p.logger.Printf("[Profiler] FPS: %.2f | Frame: %v..%v | Heap: %.2f MB | GC: %d",
		p.last.FPS, p.last.MinFrame.Round(time.Microsecond), p.last.MaxFrame.Round(time.Microsecond), p.last.HeapMB, p.last.NumGC)

	p.frameCount = 0
	p.minFrame, p.maxFrame = 0, 0
	p.lastTime = currentTime
	return true
}

// Last returns the most recently reported statistics.
func (p *Profiler) Last() Stats {
	return p.last
}
