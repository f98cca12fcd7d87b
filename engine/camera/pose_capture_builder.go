package camera

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

// PoseCaptureOption is a functional option for configuring a PoseCapture.
type PoseCaptureOption func(*poseCaptureImpl)

// WithPointerCapture sets the host primitive used by RequestEngagement.
//
// Parameters:
//   - capture: the host's pointer-capture primitive
//
// Returns:
//   - PoseCaptureOption: functional option to set the capture primitive
func WithPointerCapture(capture input.PointerCapture) PoseCaptureOption {
	return func(pc *poseCaptureImpl) {
		pc.capture = capture
	}
}

// WithEngagementMode selects how engagement is obtained. EngagementPointerLock without a
// pointer-capture primitive falls back to EngagementAlways.
//
// Parameters:
//   - mode: the engagement mode
//
// Returns:
//   - PoseCaptureOption: functional option to set the engagement mode
func WithEngagementMode(mode EngagementMode) PoseCaptureOption {
	return func(pc *poseCaptureImpl) {
		pc.requestedMode = mode
	}
}

// WithLookSensitivity sets the radians-per-pixel factor used by Look.
//
// Parameters:
//   - sensitivity: radians per pixel of pointer motion
//
// Returns:
//   - PoseCaptureOption: functional option to set the look sensitivity
func WithLookSensitivity(sensitivity float32) PoseCaptureOption {
	return func(pc *poseCaptureImpl) {
		pc.lookSensitivity = sensitivity
	}
}

// WithInitialLook sets the yaw and pitch written to the pose at construction.
//
// Parameters:
//   - yaw: rotation about world Y in radians
//   - pitch: rotation about local X in radians
//
// Returns:
//   - PoseCaptureOption: functional option to set the initial look direction
func WithInitialLook(yaw, pitch float32) PoseCaptureOption {
	return func(pc *poseCaptureImpl) {
		pc.yaw = yaw
		pc.pitch = pitch
	}
}

// WithPoseCaptureLogger enables transition logging.
//
// Parameters:
//   - logger: destination for engagement transition messages
//
// Returns:
//   - PoseCaptureOption: functional option to set the logger
func WithPoseCaptureLogger(logger *log.Logger) PoseCaptureOption {
	return func(pc *poseCaptureImpl) {
		pc.logger = logger
	}
}
