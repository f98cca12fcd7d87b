package camera

import (
	"log"
	"maps"

	"github.com/Carmen-Shannon/oxy-fly/common"
)

// FlyControlsOption is a functional option for configuring FlyControls.
type FlyControlsOption func(*flyControlsImpl)

// DefaultKeyBindings maps WASD, the arrow keys, Q/Space and E to movement intents.
func DefaultKeyBindings() map[uint32]Intent {
	return map[uint32]Intent{
		common.KeyW:     IntentForward,
		common.KeyUp:    IntentForward,
		common.KeyS:     IntentBackward,
		common.KeyDown:  IntentBackward,
		common.KeyA:     IntentLeft,
		common.KeyLeft:  IntentLeft,
		common.KeyD:     IntentRight,
		common.KeyRight: IntentRight,
		common.KeyQ:     IntentUp,
		common.KeySpace: IntentUp,
		common.KeyE:     IntentDown,
	}
}

// WithKeyBindings replaces the key-to-intent table.
//
// Parameters:
//   - bindings: key codes mapped to intents
//
// Returns:
//   - FlyControlsOption: functional option to set the key bindings
func WithKeyBindings(bindings map[uint32]Intent) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.bindings = maps.Clone(bindings)
	}
}

// WithBoostKey sets the modifier that multiplies speeds while held. 0 disables boost.
//
// Parameters:
//   - code: key code of the modifier
//
// Returns:
//   - FlyControlsOption: functional option to set the boost key
func WithBoostKey(code uint32) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.boostKey = code
	}
}

// WithTouchLookScale sets the multiplier applied to the look sensitivity for single-finger look.
//
// Parameters:
//   - scale: sensitivity multiplier
//
// Returns:
//   - FlyControlsOption: functional option to set the touch look scale
func WithTouchLookScale(scale float32) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.touchLookScale = scale
	}
}

// WithWheelScale sets the dolly distance per wheel unit.
//
// Parameters:
//   - scale: world units per wheel delta unit
//
// Returns:
//   - FlyControlsOption: functional option to set the wheel scale
func WithWheelScale(scale float32) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.wheelScale = scale
	}
}

// WithDragLook toggles look by dragging with the secondary pointer button.
// It only applies without pointer lock (EngagementAlways, EngagementPerTouch); under
// EngagementPointerLock moves look while locked and are ignored otherwise.
//
// Parameters:
//   - enabled: true to allow drag look
//
// Returns:
//   - FlyControlsOption: functional option to toggle drag look
func WithDragLook(enabled bool) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.dragLook = enabled
	}
}

// WithClickToEngage toggles requesting engagement on a primary pointer press.
//
// Parameters:
//   - enabled: true to request engagement on click
//
// Returns:
//   - FlyControlsOption: functional option to toggle click-to-engage
func WithClickToEngage(enabled bool) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.clickToEngage = enabled
	}
}

// WithFlyControlsLogger enables event routing logs.
//
// Parameters:
//   - logger: destination for routing messages
//
// Returns:
//   - FlyControlsOption: functional option to set the logger
func WithFlyControlsLogger(logger *log.Logger) FlyControlsOption {
	return func(fc *flyControlsImpl) {
		fc.logger = logger
	}
}
