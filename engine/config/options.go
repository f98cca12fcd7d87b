package config

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fly/engine/camera"
	"github.com/tanema/gween/ease"
)

var easeCurves = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"out-quad":     ease.OutQuad,
	"out-cubic":    ease.OutCubic,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
}

func parseEngagement(name string) (camera.EngagementMode, error) {
	for _, mode := range []camera.EngagementMode{camera.EngagementPointerLock, camera.EngagementAlways, camera.EngagementPerTouch} {
		if mode.String() == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("config: unknown engagement mode %q", name)
}

func parseRelease(name string) (camera.ReleasePolicy, error) {
	switch name {
	case "decay":
		return camera.ReleaseDecay, nil
	case "stop":
		return camera.ReleaseStop, nil
	}
	return 0, fmt.Errorf("config: unknown release policy %q", name)
}

// EngagementMode returns the parsed look.engagement value. Call on validated settings.
func (s Settings) EngagementMode() camera.EngagementMode {
	mode, _ := parseEngagement(s.Look.Engagement)
	return mode
}

// PoseCaptureOptions converts the look settings, without the initial look direction so the
// result can be reapplied to a running capture.
//
// Returns:
//   - []camera.PoseCaptureOption: options for NewPoseCapture or Reconfigure
func (s Settings) PoseCaptureOptions() []camera.PoseCaptureOption {
	return []camera.PoseCaptureOption{
		camera.WithEngagementMode(s.EngagementMode()),
		camera.WithLookSensitivity(s.Look.Sensitivity),
	}
}

// InitialLook returns the construction-time look direction option.
func (s Settings) InitialLook() camera.PoseCaptureOption {
	return camera.WithInitialLook(s.Look.InitialYaw, s.Look.InitialPitch)
}

// MotionOptions converts the motion and gesture settings.
//
// Returns:
//   - []camera.MotionControllerOption: options for NewMotionController or Reconfigure
func (s Settings) MotionOptions() []camera.MotionControllerOption {
	release, _ := parseRelease(s.Motion.Release)
	return []camera.MotionControllerOption{
		camera.WithMaxSpeed(s.Motion.MaxSpeed),
		camera.WithFlySpeed(s.Motion.FlySpeed),
		camera.WithDecayFactor(s.Motion.Decay),
		camera.WithGestureSpeed(s.Motion.GestureSpeed),
		camera.WithReferenceFrameRate(s.Motion.ReferenceRate),
		camera.WithReleasePolicy(release),
		camera.WithBoostFactor(s.Motion.BoostFactor),
		camera.WithWheelEase(s.Motion.WheelEase, easeCurves[s.Motion.WheelCurve]),
		camera.WithGestureThresholds(s.Gesture.Pinch, s.Gesture.Drag, s.Gesture.Rotate),
	}
}

// FlyControlsOptions converts the routing settings.
//
// Returns:
//   - []camera.FlyControlsOption: options for NewFlyControls or Reconfigure
func (s Settings) FlyControlsOptions() []camera.FlyControlsOption {
	return []camera.FlyControlsOption{
		camera.WithTouchLookScale(s.Look.TouchScale),
		camera.WithWheelScale(s.Motion.WheelScale),
		camera.WithDragLook(s.Look.DragLook),
		camera.WithClickToEngage(s.Look.ClickToEngage),
	}
}

// Apply pushes settings into running controls.
//
// Parameters:
//   - s: validated settings
//   - controls: the controls to retune
func Apply(s Settings, controls camera.FlyControls) {
	controls.PoseCapture().Reconfigure(s.PoseCaptureOptions()...)
	controls.MotionController().Reconfigure(s.MotionOptions()...)
	controls.Reconfigure(s.FlyControlsOptions()...)
}
