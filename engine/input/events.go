// Package input defines the raw device events delivered by a host (window, mobile runtime,
// remote browser) and the subscription plumbing that carries them to camera controls.
package input

// Event is implemented by every raw input event type in this package.
type Event interface {
	event()
}

// KeyAction distinguishes key presses from releases.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
)

// KeyEvent reports a key press or release using the codes in the common package.
type KeyEvent struct {
	// Code is the virtual key code (GLFW numbering).
	Code uint32
	// Action is KeyDown or KeyUp.
	Action KeyAction
	// Repeat is true for auto-repeat presses delivered while a key is held.
	Repeat bool
}

// PointerButton identifies a mouse button.
type PointerButton int

const (
	ButtonNone PointerButton = iota - 1
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerAction distinguishes button transitions from motion.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerUp
	PointerMove
)

// PointerEvent reports a mouse button transition or motion.
// MovementX/MovementY carry the delta since the previous pointer event, independent of the
// absolute position; while the pointer is locked they are the only meaningful values.
type PointerEvent struct {
	Action    PointerAction
	Button    PointerButton
	X, Y      float32
	MovementX float32
	MovementY float32
}

// WheelEvent reports a scroll wheel step in pixels. Positive DeltaY scrolls down (away from
// the user), matching the DOM convention.
type WheelEvent struct {
	DeltaX float32
	DeltaY float32
}

// TouchPoint is one active contact.
type TouchPoint struct {
	ID   int
	X, Y float32
}

// TouchPhase identifies the lifecycle step a TouchEvent reports.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// String returns the DOM name of the phase.
func (p TouchPhase) String() string {
	switch p {
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case TouchCancel:
		return "touchcancel"
	default:
		return "unknown"
	}
}

// TouchEvent reports a touch transition. Touches lists every contact still active after the
// transition, so a TouchEnd for the last finger carries an empty list.
type TouchEvent struct {
	Phase   TouchPhase
	Touches []TouchPoint
}

// LockEvent is the host's confirmation that pointer capture was acquired or released.
type LockEvent struct {
	Locked bool
}

// AxesEvent carries continuous movement axes in [-1, 1] from an analog source such as a
// virtual joystick.
type AxesEvent struct {
	Longitudinal float32
	Lateral      float32
	Vertical     float32
}

func (KeyEvent) event()     {}
func (PointerEvent) event() {}
func (WheelEvent) event()   {}
func (TouchEvent) event()   {}
func (LockEvent) event()    {}
func (AxesEvent) event()    {}

// PointerCapture is the host's exclusive pointer-capture primitive.
// Both calls are requests; the outcome is reported later as a LockEvent on the host's Source.
type PointerCapture interface {
	// RequestLock asks the host to capture the pointer.
	RequestLock()

	// ReleaseLock asks the host to release a captured pointer.
	ReleaseLock()
}
