package camera

import (
	"log"

	"github.com/tanema/gween/ease"
)

// MotionControllerOption is a functional option for configuring a MotionController.
type MotionControllerOption func(*motionControllerImpl)

// WithMaxSpeed sets the bound applied to each speed scalar.
//
// Parameters:
//   - maxSpeed: units per second
//
// Returns:
//   - MotionControllerOption: functional option to set the max speed
func WithMaxSpeed(maxSpeed float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.maxSpeed = maxSpeed
	}
}

// WithFlySpeed sets the speed added per reference frame while an intent is held.
//
// Parameters:
//   - flySpeed: units per second gained per frame
//
// Returns:
//   - MotionControllerOption: functional option to set the fly speed
func WithFlySpeed(flySpeed float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.flySpeed = flySpeed
	}
}

// WithDecayFactor sets the per-frame multiplier applied to an undriven speed.
//
// Parameters:
//   - decay: factor in (0, 1)
//
// Returns:
//   - MotionControllerOption: functional option to set the decay factor
func WithDecayFactor(decay float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.decayFactor = decay
	}
}

// WithGestureSpeed sets the speed reached by a full analog axis.
// It defaults to the max speed; pass the fly speed for axis*flySpeed motion.
//
// Parameters:
//   - speed: units per second at axis value 1
//
// Returns:
//   - MotionControllerOption: functional option to set the gesture speed
func WithGestureSpeed(speed float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.gestureSpeed = speed
	}
}

// WithReferenceFrameRate sets the frame rate the per-frame rules are expressed in. Update
// turns them into an acceleration of flySpeed*rate and a decay of decayFactor^(rate*t) and
// integrates both exactly, so speed and position do not depend on the frame rate.
// A rate of 0 applies the rules once per Update call.
//
// Parameters:
//   - rate: frames per second
//
// Returns:
//   - MotionControllerOption: functional option to set the reference frame rate
func WithReferenceFrameRate(rate float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.referenceRate = rate
	}
}

// WithReleasePolicy selects decay or hard stop for undriven axes.
//
// Parameters:
//   - policy: the release policy
//
// Returns:
//   - MotionControllerOption: functional option to set the release policy
func WithReleasePolicy(policy ReleasePolicy) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.releasePolicy = policy
	}
}

// WithBoostFactor sets the multiplier applied to speeds while boost is held.
//
// Parameters:
//   - factor: speed multiplier
//
// Returns:
//   - MotionControllerOption: functional option to set the boost factor
func WithBoostFactor(factor float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.boostFactor = factor
	}
}

// WithWheelEase spreads each Dolly over duration seconds using easeFn.
// A duration of 0 applies dollies immediately.
//
// Parameters:
//   - duration: tween length in seconds
//   - easeFn: easing curve, ease.OutQuad when nil
//
// Returns:
//   - MotionControllerOption: functional option to set the wheel easing
func WithWheelEase(duration float32, easeFn ease.TweenFunc) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.wheelEase = duration
		mc.wheelEaseFn = easeFn
	}
}

// WithGestureThresholds sets the two-finger classification thresholds.
//
// Parameters:
//   - pinch: distance change in pixels
//   - drag: midpoint travel in pixels
//   - rotate: twist in radians, 0 disables rotate
//
// Returns:
//   - MotionControllerOption: functional option to set the gesture thresholds
func WithGestureThresholds(pinch, drag, rotate float32) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.pinchThreshold = pinch
		mc.dragThreshold = drag
		mc.rotateThreshold = rotate
	}
}

// WithMotionLogger enables transition logging.
//
// Parameters:
//   - logger: destination for reset and classification messages
//
// Returns:
//   - MotionControllerOption: functional option to set the logger
func WithMotionLogger(logger *log.Logger) MotionControllerOption {
	return func(mc *motionControllerImpl) {
		mc.logger = logger
	}
}
