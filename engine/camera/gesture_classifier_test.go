package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

func touches(xy ...float32) []input.TouchPoint {
	pts := make([]input.TouchPoint, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, input.TouchPoint{ID: i/2 + 1, X: xy[i], Y: xy[i+1]})
	}
	return pts
}

func start(xy ...float32) input.TouchEvent {
	return input.TouchEvent{Phase: input.TouchStart, Touches: touches(xy...)}
}

func move(xy ...float32) input.TouchEvent {
	return input.TouchEvent{Phase: input.TouchMove, Touches: touches(xy...)}
}

func end(xy ...float32) input.TouchEvent {
	return input.TouchEvent{Phase: input.TouchEnd, Touches: touches(xy...)}
}

func TestGestureClassification(t *testing.T) {
	tests := []struct {
		name        string
		events      []input.TouchEvent
		wantMode    GestureMode
		wantIntents IntentSet
	}{
		{
			name:     "below thresholds stays undetermined",
			events:   []input.TouchEvent{start(100, 100, 200, 100), move(104, 103, 206, 103)},
			wantMode: GestureUndetermined,
		},
		{
			name:        "spread is pinch forward",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(90, 100, 210, 100)},
			wantMode:    GesturePinch,
			wantIntents: IntentSet(0).With(IntentForward),
		},
		{
			name:        "squeeze is pinch backward",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(110, 100, 190, 100)},
			wantMode:    GesturePinch,
			wantIntents: IntentSet(0).With(IntentBackward),
		},
		{
			name:        "drag right is pan right",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(115, 100, 215, 100)},
			wantMode:    GesturePan,
			wantIntents: IntentSet(0).With(IntentRight),
		},
		{
			name:        "drag up and left is pan up and left",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(85, 80, 185, 80)},
			wantMode:    GesturePan,
			wantIntents: IntentSet(0).With(IntentUp).With(IntentLeft),
		},
		{
			name:        "drag down is pan down",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(100, 120, 200, 120)},
			wantMode:    GesturePan,
			wantIntents: IntentSet(0).With(IntentDown),
		},
		{
			name:        "pinch wins when both thresholds cross together",
			events:      []input.TouchEvent{start(100, 100, 200, 100), move(100, 130, 230, 130)},
			wantMode:    GesturePinch,
			wantIntents: IntentSet(0).With(IntentForward),
		},
		{
			name:     "pan below dead zone asserts nothing",
			events:   []input.TouchEvent{start(100, 100, 200, 100), move(115, 100, 215, 100), move(105, 100, 205, 100)},
			wantMode: GesturePan,
		},
		{
			name:        "two touches arriving as a move start the gesture",
			events:      []input.TouchEvent{start(100, 100), move(100, 100, 200, 100), move(90, 100, 210, 100)},
			wantMode:    GesturePinch,
			wantIntents: IntentSet(0).With(IntentForward),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGestureClassifier(12, 10, 0.2)
			var result GestureResult
			for _, ev := range tt.events {
				result = g.Handle(ev)
			}
			if g.Mode() != tt.wantMode {
				t.Errorf("Mode() = %s, want %s", g.Mode(), tt.wantMode)
			}
			if result.Intents != tt.wantIntents || g.Intents() != tt.wantIntents {
				t.Errorf("intents = %06b, want %06b", result.Intents, tt.wantIntents)
			}
		})
	}
}

func TestGestureClassificationIsSticky(t *testing.T) {
	g := NewGestureClassifier(12, 10, 0.2)
	g.Handle(start(100, 100, 200, 100))
	g.Handle(move(103, 100, 205, 100))
	if g.Mode() != GestureUndetermined {
		t.Fatalf("Mode() = %s after small change, want undetermined", g.Mode())
	}
	g.Handle(move(115, 100, 215, 100))
	if g.Mode() != GesturePan {
		t.Fatalf("Mode() = %s after drag, want pan", g.Mode())
	}

	result := g.Handle(move(80, 100, 260, 100))
	if g.Mode() != GesturePan {
		t.Errorf("Mode() = %s after large spread, want pan", g.Mode())
	}
	if result.Intents.Has(IntentForward) || result.Intents.Has(IntentBackward) {
		t.Errorf("pan produced pinch intents: %06b", result.Intents)
	}
	if !result.Intents.Has(IntentRight) {
		t.Errorf("intents = %06b, want right", result.Intents)
	}
}

func TestGestureResetOnEnd(t *testing.T) {
	tests := []struct {
		name string
		ev   input.TouchEvent
	}{
		{"one finger lifted", end(115, 100)},
		{"both lifted", end()},
		{"cancelled", input.TouchEvent{Phase: input.TouchCancel}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGestureClassifier(12, 10, 0.2)
			g.Handle(start(100, 100, 200, 100))
			g.Handle(move(115, 100, 215, 100))

			result := g.Handle(tt.ev)
			if result.Intents != 0 || g.Intents() != 0 {
				t.Errorf("intents after end = %06b", g.Intents())
			}
			if g.Mode() != GestureUndetermined || g.Active() {
				t.Errorf("mode %s active %t after end", g.Mode(), g.Active())
			}

			g.Handle(start(100, 100, 200, 100))
			g.Handle(move(90, 100, 210, 100))
			if g.Mode() != GesturePinch {
				t.Errorf("fresh gesture Mode() = %s, want pinch", g.Mode())
			}
		})
	}
}

func TestGestureIgnoresExtraTouches(t *testing.T) {
	g := NewGestureClassifier(12, 10, 0.2)
	g.Handle(start(100, 100, 200, 100))
	g.Handle(move(115, 100, 215, 100))

	third := append(touches(115, 100, 215, 100), input.TouchPoint{ID: 9, X: 400, Y: 400})
	result := g.Handle(input.TouchEvent{Phase: input.TouchStart, Touches: third})
	if !result.Consumed || g.Mode() != GesturePan || !result.Intents.Has(IntentRight) {
		t.Fatalf("third touch disturbed the gesture: mode %s intents %06b", g.Mode(), result.Intents)
	}

	third[0].X, third[1].X = 130, 230
	third[2].X = 0
	result = g.Handle(input.TouchEvent{Phase: input.TouchMove, Touches: third})
	if g.Mode() != GesturePan || !result.Intents.Has(IntentRight) {
		t.Errorf("mode %s intents %06b, want pan right", g.Mode(), result.Intents)
	}

	g.Handle(input.TouchEvent{Phase: input.TouchEnd, Touches: touches(130, 100, 230, 100)})
	if !g.Active() || g.Mode() != GesturePan {
		t.Errorf("lifting the extra touch ended the gesture")
	}
}

func TestGestureRotate(t *testing.T) {
	pair := func(angle float64) []input.TouchPoint {
		dx := float32(50 * math.Cos(angle))
		dy := float32(50 * math.Sin(angle))
		return []input.TouchPoint{{ID: 1, X: 150 - dx, Y: 150 - dy}, {ID: 2, X: 150 + dx, Y: 150 + dy}}
	}
	g := NewGestureClassifier(12, 10, 0.2)
	g.Handle(input.TouchEvent{Phase: input.TouchStart, Touches: pair(0)})

	result := g.Handle(input.TouchEvent{Phase: input.TouchMove, Touches: pair(0.1)})
	if g.Mode() != GestureUndetermined || result.LookDX != 0 {
		t.Fatalf("mode %s look %v below rotate threshold", g.Mode(), result.LookDX)
	}

	result = g.Handle(input.TouchEvent{Phase: input.TouchMove, Touches: pair(0.3)})
	if g.Mode() != GestureRotate {
		t.Fatalf("Mode() = %s, want rotate", g.Mode())
	}
	if !approx(result.LookDX, 0.3, 1e-4) || result.Intents != 0 {
		t.Errorf("LookDX %v intents %06b, want 0.3 and none", result.LookDX, result.Intents)
	}

	result = g.Handle(input.TouchEvent{Phase: input.TouchMove, Touches: pair(0.4)})
	if !approx(result.LookDX, 0.1, 1e-4) {
		t.Errorf("incremental LookDX = %v, want 0.1", result.LookDX)
	}
}

func TestGestureRotateDisabled(t *testing.T) {
	g := NewGestureClassifier(12, 10, 0)
	g.Handle(input.TouchEvent{Phase: input.TouchStart, Touches: []input.TouchPoint{{ID: 1, X: 100, Y: 150}, {ID: 2, X: 200, Y: 150}}})
	g.Handle(input.TouchEvent{Phase: input.TouchMove, Touches: []input.TouchPoint{{ID: 1, X: 150, Y: 100}, {ID: 2, X: 150, Y: 200}}})
	if g.Mode() != GestureUndetermined {
		t.Errorf("Mode() = %s with rotate disabled", g.Mode())
	}
}

func TestSingleTouchIsNotConsumed(t *testing.T) {
	g := NewGestureClassifier(12, 10, 0.2)
	for _, ev := range []input.TouchEvent{start(10, 10), move(40, 10), end()} {
		if result := g.Handle(ev); result.Consumed || result.Intents != 0 {
			t.Errorf("%s consumed single touch: %+v", ev.Phase, result)
		}
	}
}
