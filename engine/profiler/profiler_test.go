package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestProfilerReportsPerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var out bytes.Buffer
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogger(log.New(&out, "", 0)),
		WithInterval(time.Second),
	)

	frames := []float32{0.010, 0.020, 0.015, 0.030}
	for i, dt := range frames {
		now = now.Add(250 * time.Millisecond)
		reported := p.Tick(dt)
		if want := i == len(frames)-1; reported != want {
			t.Fatalf("frame %d reported = %t, want %t", i, reported, want)
		}
	}

	s := p.Last()
	if s.FPS != 4 {
		t.Errorf("FPS = %v, want 4", s.FPS)
	}
	if s.MinFrame != 10*time.Millisecond || s.MaxFrame != 30*time.Millisecond {
		t.Errorf("frame range = %v..%v, want 10ms..30ms", s.MinFrame, s.MaxFrame)
	}
	if !strings.Contains(out.String(), "[Profiler] FPS: 4.00") {
		t.Errorf("log output = %q", out.String())
	}

	now = now.Add(100 * time.Millisecond)
	if p.Tick(0.05) {
		t.Error("reported before the next interval")
	}
}
