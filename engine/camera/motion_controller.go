package camera

import "github.com/Carmen-Shannon/oxy-fly/engine/input"

// Intent is one of the six discrete movement directions.
type Intent int

const (
	IntentForward Intent = iota
	IntentBackward
	IntentLeft
	IntentRight
	IntentUp
	IntentDown
	intentCount
)

// String returns a readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentForward:
		return "forward"
	case IntentBackward:
		return "backward"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	default:
		return "unknown"
	}
}

// IntentSet is a bitmask of active intents.
type IntentSet uint8

// Has reports whether intent is in the set.
func (s IntentSet) Has(intent Intent) bool {
	if intent < 0 || intent >= intentCount {
		return false
	}
	return s&(1<<intent) != 0
}

// With returns the set with intent added.
func (s IntentSet) With(intent Intent) IntentSet {
	if intent < 0 || intent >= intentCount {
		return s
	}
	return s | 1<<intent
}

// Without returns the set with intent removed.
func (s IntentSet) Without(intent Intent) IntentSet {
	if intent < 0 || intent >= intentCount {
		return s
	}
	return s &^ (1 << intent)
}

// ReleasePolicy decides what happens to an axis speed when no intent drives it.
type ReleasePolicy int

const (
	// ReleaseDecay multiplies the speed by the decay factor every frame.
	ReleaseDecay ReleasePolicy = iota
	// ReleaseStop zeroes the speed immediately.
	ReleaseStop
)

// Velocity holds the three smoothed speed scalars in units per second.
type Velocity struct {
	Forward  float32
	Strafe   float32
	Vertical float32
}

// MotionController turns movement intent into smoothed velocity and integrates it into the
// pose once per frame. Intent and axis setters are gated on the engagement of the
// EngagementGate it was built with; losing engagement clears every intent, axis and gesture.
type MotionController interface {
	// SetIntent sets or clears one discrete intent. Ignored while disengaged.
	//
	// Parameters:
	//   - intent: the direction
	//   - active: true while the direction is held
	SetIntent(intent Intent, active bool)

	// Intents returns the union of discrete and gesture-derived intents.
	//
	// Returns:
	//   - IntentSet: the active intents
	Intents() IntentSet

	// ClearIntent drops every discrete intent, gesture intent and analog axis.
	ClearIntent()

	// SetGestureAxes sets the analog axes, each clamped to [-1, 1]. A non-zero axis overrides
	// discrete intents on the same axis. Ignored while disengaged.
	//
	// Parameters:
	//   - longitudinal: forward (+) / backward (-)
	//   - lateral: right (+) / left (-)
	//   - vertical: up (+) / down (-)
	SetGestureAxes(longitudinal, lateral, vertical float32)

	// GestureAxes returns the analog axes.
	GestureAxes() (longitudinal, lateral, vertical float32)

	// HandleTouch feeds a touch event to the gesture classifier and stores the derived intents.
	//
	// Parameters:
	//   - ev: the touch event
	//
	// Returns:
	//   - GestureResult: the classifier's interpretation of the event
	HandleTouch(ev input.TouchEvent) GestureResult

	// GestureMode returns the classification of the active two-finger gesture.
	GestureMode() GestureMode

	// SetBoost enables or disables the speed multiplier.
	//
	// Parameters:
	//   - active: true while the boost modifier is held
	SetBoost(active bool)

	// Dolly moves the pose along its world forward direction. With wheel easing configured the
	// move is spread over the following Update calls. Ignored while disengaged.
	//
	// Parameters:
	//   - amount: distance in world units, positive moves forward
	Dolly(amount float32)

	// Update advances the motion by dt seconds. dt must be positive and finite, other values
	// are ignored.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous call
	Update(dt float32)

	// Velocity returns the current speeds.
	Velocity() Velocity

	// MaxSpeed returns the unboosted speed bound.
	MaxSpeed() float32

	// FlySpeed returns the unboosted per-frame acceleration.
	FlySpeed() float32

	// DecayFactor returns the per-frame release damping.
	DecayFactor() float32

	// Reconfigure applies options to the running controller.
	//
	// Parameters:
	//   - options: functional options to apply
	Reconfigure(options ...MotionControllerOption)

	// Close detaches the controller from its engagement gate.
	Close()
}
