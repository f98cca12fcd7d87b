package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// GestureMode is the sticky classification of a two-finger gesture.
type GestureMode int

const (
	// GestureUndetermined means no threshold has been crossed yet, or no gesture is active.
	GestureUndetermined GestureMode = iota
	// GesturePinch maps finger spread to forward/backward intent.
	GesturePinch
	// GesturePan maps midpoint drag to lateral/vertical intent.
	GesturePan
	// GestureRotate maps finger twist to yaw.
	GestureRotate
)

// String returns a readable name for the mode.
func (m GestureMode) String() string {
	switch m {
	case GestureUndetermined:
		return "undetermined"
	case GesturePinch:
		return "pinch"
	case GesturePan:
		return "pan"
	case GestureRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// GestureResult is what a touch event meant to the classifier.
type GestureResult struct {
	// Intents are the movement intents derived from the gesture after this event.
	Intents IntentSet
	// LookDX is a yaw delta in radians produced by a rotate gesture, to be applied with a
	// sensitivity of 1.
	LookDX float32
	// Consumed is true when the event belongs to a two-finger gesture and must not be
	// treated as single-finger look.
	Consumed bool
}

// GestureClassifier decides once per two-finger gesture whether the fingers pinch, pan or
// rotate, then interprets the rest of the gesture only under that mode. Pinch is checked
// before pan, pan before rotate. Contacts beyond the tracked pair are ignored; the gesture
// ends when either tracked contact lifts or the sequence is cancelled.
type GestureClassifier struct {
	pinchThreshold  float32
	dragThreshold   float32
	rotateThreshold float32
	logger          *log.Logger

	active      bool
	ids         [2]int
	refDistance float32
	refMidpoint mgl32.Vec2
	refAngle    float32
	lastAngle   float32
	mode        GestureMode
	intents     IntentSet
}

// NewGestureClassifier creates a classifier with the given thresholds.
//
// Parameters:
//   - pinchThreshold: distance change in pixels that classifies a pinch
//   - dragThreshold: midpoint travel in pixels that classifies a pan, and the pan dead zone
//   - rotateThreshold: twist in radians that classifies a rotate (0 disables rotate)
//
// Returns:
//   - *GestureClassifier: the classifier
func NewGestureClassifier(pinchThreshold, dragThreshold, rotateThreshold float32) *GestureClassifier {
	return &GestureClassifier{
		pinchThreshold:  pinchThreshold,
		dragThreshold:   dragThreshold,
		rotateThreshold: rotateThreshold,
	}
}

// SetThresholds replaces the thresholds. The active gesture keeps its classification.
func (g *GestureClassifier) SetThresholds(pinchThreshold, dragThreshold, rotateThreshold float32) {
	g.pinchThreshold = pinchThreshold
	g.dragThreshold = dragThreshold
	g.rotateThreshold = rotateThreshold
}

// SetLogger enables classification logging; nil disables it.
func (g *GestureClassifier) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Mode returns the current classification.
func (g *GestureClassifier) Mode() GestureMode {
	return g.mode
}

// Active reports whether a two-finger gesture is being tracked.
func (g *GestureClassifier) Active() bool {
	return g.active
}

// Intents returns the intents derived from the active gesture.
func (g *GestureClassifier) Intents() IntentSet {
	return g.intents
}

// Reset ends the active gesture and clears its classification and intents.
func (g *GestureClassifier) Reset() {
	g.active = false
	g.mode = GestureUndetermined
	g.intents = 0
}

// Handle feeds one touch event to the classifier.
//
// Parameters:
//   - ev: the touch event, listing every contact active after it
//
// Returns:
//   - GestureResult: the derived intents and look delta
func (g *GestureClassifier) Handle(ev input.TouchEvent) GestureResult {
	if ev.Phase == input.TouchCancel {
		wasActive := g.active
		g.Reset()
		return GestureResult{Consumed: wasActive}
	}

	if g.active {
		a, okA := findTouch(ev.Touches, g.ids[0])
		b, okB := findTouch(ev.Touches, g.ids[1])
		if !okA || !okB {
			g.Reset()
			return GestureResult{Consumed: true}
		}
		if ev.Phase != input.TouchMove {
			return GestureResult{Intents: g.intents, Consumed: true}
		}
		return g.classify(a, b)
	}

	if len(ev.Touches) == 2 && (ev.Phase == input.TouchStart || ev.Phase == input.TouchMove) {
		g.begin(ev.Touches[0], ev.Touches[1])
		return GestureResult{Consumed: true}
	}
	return GestureResult{}
}

func (g *GestureClassifier) begin(a, b input.TouchPoint) {
	g.active = true
	g.ids = [2]int{a.ID, b.ID}
	g.refDistance = touchDistance(a, b)
	g.refMidpoint = touchMidpoint(a, b)
	g.refAngle = touchAngle(a, b)
	g.lastAngle = g.refAngle
	g.mode = GestureUndetermined
	g.intents = 0
}

func (g *GestureClassifier) classify(a, b input.TouchPoint) GestureResult {
	distanceDelta := touchDistance(a, b) - g.refDistance
	midpointDelta := touchMidpoint(a, b).Sub(g.refMidpoint)
	angle := touchAngle(a, b)

	if g.mode == GestureUndetermined {
		switch {
		case common.Abs(distanceDelta) > g.pinchThreshold:
			g.mode = GesturePinch
		case midpointDelta.Len() > g.dragThreshold:
			g.mode = GesturePan
		case g.rotateThreshold > 0 && common.Abs(common.WrapAngle(angle-g.refAngle)) > g.rotateThreshold:
			g.mode = GestureRotate
		}
		if g.mode != GestureUndetermined && g.logger != nil {
			g.logger.Printf("[Gesture] classified %s", g.mode)
		}
	}

	result := GestureResult{Consumed: true}
	g.intents = 0
	switch g.mode {
	case GesturePinch:
		if distanceDelta > 0 {
			g.intents = g.intents.With(IntentForward)
		} else if distanceDelta < 0 {
			g.intents = g.intents.With(IntentBackward)
		}
	case GesturePan:
		if midpointDelta.X() > g.dragThreshold {
			g.intents = g.intents.With(IntentRight)
		} else if midpointDelta.X() < -g.dragThreshold {
			g.intents = g.intents.With(IntentLeft)
		}
		// Screen Y grows downward; dragging up moves up.
		if midpointDelta.Y() < -g.dragThreshold {
			g.intents = g.intents.With(IntentUp)
		} else if midpointDelta.Y() > g.dragThreshold {
			g.intents = g.intents.With(IntentDown)
		}
	case GestureRotate:
		result.LookDX = common.WrapAngle(angle - g.lastAngle)
		g.lastAngle = angle
	}
	result.Intents = g.intents
	return result
}

func findTouch(touches []input.TouchPoint, id int) (input.TouchPoint, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return input.TouchPoint{}, false
}

func touchDistance(a, b input.TouchPoint) float32 {
	return mgl32.Vec2{b.X - a.X, b.Y - a.Y}.Len()
}

func touchMidpoint(a, b input.TouchPoint) mgl32.Vec2 {
	return mgl32.Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func touchAngle(a, b input.TouchPoint) float32 {
	return float32(math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X)))
}
