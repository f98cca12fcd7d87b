package camera

import "github.com/Carmen-Shannon/oxy-fly/engine/input"

// EngagementMode selects how a PoseCapture becomes engaged.
type EngagementMode int

const (
	// EngagementPointerLock engages only when the host confirms pointer capture.
	EngagementPointerLock EngagementMode = iota
	// EngagementAlways is engaged from construction, for hosts without pointer capture.
	EngagementAlways
	// EngagementPerTouch is engaged while at least one touch is down.
	EngagementPerTouch
)

// String returns a readable name for the mode.
func (m EngagementMode) String() string {
	switch m {
	case EngagementPointerLock:
		return "pointer-lock"
	case EngagementAlways:
		return "always"
	case EngagementPerTouch:
		return "per-touch"
	default:
		return "unknown"
	}
}

// EngagementGate is the part of PoseCapture that movement consumers depend on.
type EngagementGate interface {
	// Engaged reports whether look and movement input is currently honored.
	//
	// Returns:
	//   - bool: true while engaged
	Engaged() bool

	// OnEngagementChange registers fn to run synchronously inside every engagement transition.
	//
	// Parameters:
	//   - fn: callback receiving the new engagement state
	//
	// Returns:
	//   - input.Subscription: handle used to unsubscribe
	OnEngagementChange(fn func(engaged bool)) input.Subscription
}

// PoseCapture owns the camera's absolute look direction (yaw and pitch) and the engagement
// state that gates look and movement input. Look deltas are written to the Pose immediately,
// independent of the frame loop.
type PoseCapture interface {
	EngagementGate

	// RequestEngagement asks the host for exclusive pointer capture. Engagement only changes
	// when the host later confirms through OnEngagementChanged; this call never engages
	// synchronously. Does nothing in EngagementAlways and EngagementPerTouch modes.
	RequestEngagement()

	// ReleaseEngagement asks the host to release pointer capture. In EngagementPerTouch mode
	// it disengages immediately.
	ReleaseEngagement()

	// OnEngagementChanged is the host's notification of the engagement state. Repeated
	// identical notifications have no effect. Disengaging runs every OnEngagementChange
	// callback before returning.
	//
	// Parameters:
	//   - engaged: the state confirmed by the host
	OnEngagementChanged(engaged bool)

	// OnLookDelta applies a look delta while engaged: yaw -= dx*sensitivity, pitch -= dy*sensitivity,
	// pitch clamped to [-Pi/2, Pi/2]. Ignored while disengaged.
	//
	// Parameters:
	//   - dx: horizontal delta (pixels)
	//   - dy: vertical delta (pixels)
	//   - sensitivity: radians per pixel
	OnLookDelta(dx, dy, sensitivity float32)

	// Look applies a look delta using the configured look sensitivity.
	//
	// Parameters:
	//   - dx, dy: pointer deltas in pixels
	Look(dx, dy float32)

	// SetYawPitch places the look direction directly, bypassing the engagement gate.
	// Pitch is clamped to [-Pi/2, Pi/2].
	//
	// Parameters:
	//   - yaw: rotation about world Y in radians
	//   - pitch: rotation about local X in radians
	SetYawPitch(yaw, pitch float32)

	// Yaw returns the current yaw in radians, wrapped to [-Pi, Pi].
	Yaw() float32

	// Pitch returns the current pitch in radians, within [-Pi/2, Pi/2].
	Pitch() float32

	// Mode returns the effective engagement mode.
	Mode() EngagementMode

	// LookSensitivity returns the radians-per-pixel factor used by Look.
	LookSensitivity() float32

	// Reconfigure applies options to the running capture. Changing the mode re-evaluates
	// engagement: EngagementAlways engages, the other modes disengage.
	//
	// Parameters:
	//   - options: functional options to apply
	Reconfigure(options ...PoseCaptureOption)
}
