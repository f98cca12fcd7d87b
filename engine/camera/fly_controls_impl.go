package camera

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

type flyControlsImpl struct {
	pose   PoseCapture
	motion MotionController
	sub    input.Subscription
	logger *log.Logger

	bindings       map[uint32]Intent
	boostKey       uint32
	touchLookScale float32
	wheelScale     float32
	dragLook       bool
	clickToEngage  bool

	dragging  bool
	lastTouch map[int]input.TouchPoint
}

var _ FlyControls = &flyControlsImpl{}

// NewFlyControls subscribes to source and routes its events to pose and motion.
//
// Parameters:
//   - source: the host's raw event source
//   - pose: the orientation component
//   - motion: the motion component
//   - options: functional options to configure the controls
//
// Returns:
//   - FlyControls: the newly created controls
func NewFlyControls(source input.Source, pose PoseCapture, motion MotionController, options ...FlyControlsOption) FlyControls {
	fc := &flyControlsImpl{
		pose:           pose,
		motion:         motion,
		bindings:       DefaultKeyBindings(),
		boostKey:       common.KeyLeftShift,
		touchLookScale: 1.2,
		wheelScale:     0.02,
		dragLook:       true,
		clickToEngage:  true,
		lastTouch:      make(map[int]input.TouchPoint),
	}
	for _, option := range options {
		option(fc)
	}
	fc.sub = source.Subscribe(fc.handle)
	return fc
}

func (fc *flyControlsImpl) handle(ev input.Event) {
	switch e := ev.(type) {
	case input.LockEvent:
		fc.onLock(e)
	case input.KeyEvent:
		fc.onKey(e)
	case input.PointerEvent:
		fc.onPointer(e)
	case input.WheelEvent:
		fc.motion.Dolly(-e.DeltaY * fc.wheelScale)
	case input.AxesEvent:
		fc.motion.SetGestureAxes(e.Longitudinal, e.Lateral, e.Vertical)
	case input.TouchEvent:
		fc.onTouch(e)
	}
}

func (fc *flyControlsImpl) onLock(e input.LockEvent) {
	if fc.pose.Mode() != EngagementPointerLock {
		return
	}
	fc.pose.OnEngagementChanged(e.Locked)
	if !e.Locked {
		fc.dragging = false
	}
}

func (fc *flyControlsImpl) onKey(e input.KeyEvent) {
	if e.Repeat {
		return
	}
	down := e.Action == input.KeyDown
	if fc.boostKey != 0 && e.Code == fc.boostKey {
		fc.motion.SetBoost(down)
		return
	}
	if intent, ok := fc.bindings[e.Code]; ok {
		fc.motion.SetIntent(intent, down)
	}
}

func (fc *flyControlsImpl) onPointer(e input.PointerEvent) {
	switch e.Action {
	case input.PointerDown:
		switch {
		case e.Button == input.ButtonPrimary && !fc.pose.Engaged() && fc.clickToEngage:
			fc.logf("requesting engagement")
			fc.pose.RequestEngagement()
		case fc.pose.Mode() == EngagementPointerLock:
			// Locked moves already look; unlocked moves are dropped.
		case e.Button == input.ButtonSecondary && fc.dragLook:
			fc.dragging = true
		case e.Button == input.ButtonPrimary:
			// Without pointer lock the primary button drags the view.
			fc.dragging = true
		}
	case input.PointerUp:
		if e.Button == input.ButtonSecondary || e.Button == input.ButtonPrimary {
			fc.dragging = false
		}
	case input.PointerMove:
		locked := fc.pose.Mode() == EngagementPointerLock && fc.pose.Engaged()
		if locked || fc.dragging {
			fc.pose.Look(e.MovementX, e.MovementY)
		}
	}
}

func (fc *flyControlsImpl) onTouch(e input.TouchEvent) {
	perTouch := fc.pose.Mode() == EngagementPerTouch
	if perTouch && len(e.Touches) > 0 && e.Phase != input.TouchCancel {
		fc.pose.OnEngagementChanged(true)
	}

	result := fc.motion.HandleTouch(e)
	if result.LookDX != 0 {
		fc.pose.OnLookDelta(result.LookDX, 0, 1)
	}

	if !result.Consumed && e.Phase == input.TouchMove && len(e.Touches) == 1 {
		t := e.Touches[0]
		if prev, ok := fc.lastTouch[t.ID]; ok {
			fc.pose.OnLookDelta(t.X-prev.X, t.Y-prev.Y, fc.pose.LookSensitivity()*fc.touchLookScale)
		}
	}

	clear(fc.lastTouch)
	if e.Phase != input.TouchCancel {
		for _, t := range e.Touches {
			fc.lastTouch[t.ID] = t
		}
	}

	if perTouch && (len(e.Touches) == 0 || e.Phase == input.TouchCancel) {
		fc.pose.OnEngagementChanged(false)
	}
}

func (fc *flyControlsImpl) logf(format string, args ...any) {
	if fc.logger != nil {
		fc.logger.Printf("[FlyControls] "+format, args...)
	}
}

func (fc *flyControlsImpl) Update(dt float32) {
	fc.motion.Update(dt)
}

func (fc *flyControlsImpl) PoseCapture() PoseCapture {
	return fc.pose
}

func (fc *flyControlsImpl) MotionController() MotionController {
	return fc.motion
}

func (fc *flyControlsImpl) Reconfigure(options ...FlyControlsOption) {
	for _, option := range options {
		option(fc)
	}
	if !fc.dragLook {
		fc.dragging = false
	}
}

func (fc *flyControlsImpl) Close() {
	fc.sub.Unsubscribe()
	fc.motion.Close()
	clear(fc.lastTouch)
}
