package input

import "testing"

func TestTouchTrackerLifecycle(t *testing.T) {
	tr := NewTouchTracker()

	steps := []struct {
		name   string
		points []TouchPoint
		want   []TouchPhase
		counts []int
	}{
		{"first finger", []TouchPoint{{ID: 1, X: 10, Y: 10}}, []TouchPhase{TouchStart}, []int{1}},
		{"no change", []TouchPoint{{ID: 1, X: 10, Y: 10}}, nil, nil},
		{"move", []TouchPoint{{ID: 1, X: 12, Y: 10}}, []TouchPhase{TouchMove}, []int{1}},
		{"second finger", []TouchPoint{{ID: 1, X: 12, Y: 10}, {ID: 2, X: 50, Y: 50}}, []TouchPhase{TouchStart}, []int{2}},
		{"swap finger", []TouchPoint{{ID: 2, X: 50, Y: 50}, {ID: 3, X: 80, Y: 80}}, []TouchPhase{TouchEnd, TouchStart}, []int{1, 2}},
		{"lift all", nil, []TouchPhase{TouchEnd}, []int{0}},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			events := tr.Update(step.points)
			if len(events) != len(step.want) {
				t.Fatalf("got %d events, want %d (%v)", len(events), len(step.want), events)
			}
			for i, ev := range events {
				if ev.Phase != step.want[i] {
					t.Errorf("event %d phase = %v, want %v", i, ev.Phase, step.want[i])
				}
				if len(ev.Touches) != step.counts[i] {
					t.Errorf("event %d touches = %d, want %d", i, len(ev.Touches), step.counts[i])
				}
			}
		})
	}
}

func TestTouchTrackerReset(t *testing.T) {
	tr := NewTouchTracker()
	if evs := tr.Reset(); evs != nil {
		t.Errorf("Reset with no touches = %v, want nil", evs)
	}

	tr.Update([]TouchPoint{{ID: 4, X: 1, Y: 1}})
	evs := tr.Reset()
	if len(evs) != 1 || evs[0].Phase != TouchCancel {
		t.Fatalf("Reset = %v, want one TouchCancel", evs)
	}

	// The same contact after a reset is a fresh start.
	evs = tr.Update([]TouchPoint{{ID: 4, X: 1, Y: 1}})
	if len(evs) != 1 || evs[0].Phase != TouchStart {
		t.Errorf("Update after Reset = %v, want TouchStart", evs)
	}
}

func TestTouchTrackerDoesNotAliasInput(t *testing.T) {
	tr := NewTouchTracker()
	points := []TouchPoint{{ID: 1, X: 1, Y: 1}}
	evs := tr.Update(points)
	points[0].X = 99
	if evs[0].Touches[0].X != 1 {
		t.Errorf("event shares memory with caller slice")
	}
}
