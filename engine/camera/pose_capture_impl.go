package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minPitch = -math.Pi / 2
	maxPitch = math.Pi / 2
)

type poseCaptureImpl struct {
	pose    Pose
	capture input.PointerCapture
	logger  *log.Logger

	requestedMode EngagementMode
	mode          EngagementMode

	yaw     float32
	pitch   float32
	engaged bool

	lookSensitivity float32

	// listeners reuses the input bus for engagement callbacks so that callers get the same
	// scoped Subscription handle they use for raw events.
	listeners *input.Bus
}

var _ PoseCapture = &poseCaptureImpl{}

// NewPoseCapture creates a PoseCapture driving pose. Yaw and pitch start at zero unless
// WithInitialLook is given, and the resulting orientation is written to the pose.
//
// Parameters:
//   - pose: the camera to orient
//   - options: functional options to configure the capture
//
// Returns:
//   - PoseCapture: the newly created capture
func NewPoseCapture(pose Pose, options ...PoseCaptureOption) PoseCapture {
	pc := &poseCaptureImpl{
		pose:            pose,
		requestedMode:   EngagementPointerLock,
		lookSensitivity: 0.002,
		listeners:       input.NewBus(),
	}
	for _, option := range options {
		option(pc)
	}
	pc.pitch = common.Clamp(pc.pitch, minPitch, maxPitch)
	pc.yaw = common.WrapAngle(pc.yaw)
	pc.applyMode()
	pc.writeOrientation()
	return pc
}

// applyMode resolves the effective mode and sets the engagement that mode starts with.
func (pc *poseCaptureImpl) applyMode() {
	pc.mode = pc.requestedMode
	if pc.mode == EngagementPointerLock && pc.capture == nil {
		pc.logf("no pointer capture available, falling back to %s engagement", EngagementAlways)
		pc.mode = EngagementAlways
	}
	pc.OnEngagementChanged(pc.mode == EngagementAlways)
}

// writeOrientation composes yaw about world Y with pitch about the resulting local X.
func (pc *poseCaptureImpl) writeOrientation() {
	pc.pose.SetOrientation(mgl32.AnglesToQuat(pc.yaw, pc.pitch, 0, mgl32.YXZ))
}

func (pc *poseCaptureImpl) logf(format string, args ...any) {
	if pc.logger != nil {
		pc.logger.Printf("[PoseCapture] "+format, args...)
	}
}

func (pc *poseCaptureImpl) Engaged() bool {
	return pc.engaged
}

func (pc *poseCaptureImpl) OnEngagementChange(fn func(engaged bool)) input.Subscription {
	return pc.listeners.Subscribe(func(ev input.Event) {
		if lock, ok := ev.(input.LockEvent); ok {
			fn(lock.Locked)
		}
	})
}

func (pc *poseCaptureImpl) RequestEngagement() {
	if pc.mode != EngagementPointerLock || pc.engaged {
		return
	}
	pc.capture.RequestLock()
}

func (pc *poseCaptureImpl) ReleaseEngagement() {
	switch pc.mode {
	case EngagementPointerLock:
		if pc.engaged {
			pc.capture.ReleaseLock()
		}
	case EngagementPerTouch:
		pc.OnEngagementChanged(false)
	}
}

func (pc *poseCaptureImpl) OnEngagementChanged(engaged bool) {
	if pc.engaged == engaged {
		return
	}
	pc.engaged = engaged
	pc.logf("engaged=%t mode=%s", engaged, pc.mode)
	pc.listeners.Publish(input.LockEvent{Locked: engaged})
}

func (pc *poseCaptureImpl) OnLookDelta(dx, dy, sensitivity float32) {
	if !pc.engaged {
		return
	}
	if !finite(dx) || !finite(dy) || !finite(sensitivity) {
		return
	}
	pc.yaw = common.WrapAngle(pc.yaw - dx*sensitivity)
	pc.pitch = common.Clamp(pc.pitch-dy*sensitivity, minPitch, maxPitch)
	pc.writeOrientation()
}

func (pc *poseCaptureImpl) Look(dx, dy float32) {
	pc.OnLookDelta(dx, dy, pc.lookSensitivity)
}

func (pc *poseCaptureImpl) SetYawPitch(yaw, pitch float32) {
	if !finite(yaw) || !finite(pitch) {
		return
	}
	pc.yaw = common.WrapAngle(yaw)
	pc.pitch = common.Clamp(pitch, minPitch, maxPitch)
	pc.writeOrientation()
}

func (pc *poseCaptureImpl) Yaw() float32 {
	return pc.yaw
}

func (pc *poseCaptureImpl) Pitch() float32 {
	return pc.pitch
}

func (pc *poseCaptureImpl) Mode() EngagementMode {
	return pc.mode
}

func (pc *poseCaptureImpl) LookSensitivity() float32 {
	return pc.lookSensitivity
}

func (pc *poseCaptureImpl) Reconfigure(options ...PoseCaptureOption) {
	prevMode, prevCapture := pc.requestedMode, pc.capture
	for _, option := range options {
		option(pc)
	}
	pc.pitch = common.Clamp(pc.pitch, minPitch, maxPitch)
	pc.yaw = common.WrapAngle(pc.yaw)
	pc.writeOrientation()
	if pc.requestedMode != prevMode || pc.capture != prevCapture {
		pc.applyMode()
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
