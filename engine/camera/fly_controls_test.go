package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

type rig struct {
	bus      *input.Bus
	cam      Camera
	capture  *fakeCapture
	pose     PoseCapture
	motion   MotionController
	controls FlyControls
}

func newRig(mode EngagementMode, motionOptions ...MotionControllerOption) *rig {
	r := &rig{bus: input.NewBus(), cam: NewCamera(), capture: &fakeCapture{}}
	r.pose = NewPoseCapture(r.cam, WithPointerCapture(r.capture), WithEngagementMode(mode))
	r.motion = NewMotionController(r.cam, r.pose, motionOptions...)
	r.controls = NewFlyControls(r.bus, r.pose, r.motion)
	return r
}

func key(code uint32, down bool) input.KeyEvent {
	action := input.KeyUp
	if down {
		action = input.KeyDown
	}
	return input.KeyEvent{Code: code, Action: action}
}

func TestFlyControlsEndToEnd(t *testing.T) {
	r := newRig(EngagementPointerLock, WithFlySpeed(1.5), WithDecayFactor(0.8))

	r.bus.Publish(key(common.KeyW, true))
	r.controls.Update(frame)
	if r.motion.Intents() != 0 || r.cam.Position() != (mgl32.Vec3{}) {
		t.Fatal("forward key honored before engagement")
	}
	r.bus.Publish(key(common.KeyW, false))

	r.bus.Publish(input.PointerEvent{Action: input.PointerDown, Button: input.ButtonPrimary})
	if r.capture.requests != 1 || r.pose.Engaged() {
		t.Fatalf("requests %d engaged %t after click", r.capture.requests, r.pose.Engaged())
	}
	r.bus.Publish(input.LockEvent{Locked: true})
	if !r.pose.Engaged() {
		t.Fatal("not engaged after host confirmation")
	}

	r.bus.Publish(key(common.KeyW, true))
	run(r.controls, frame, 30)

	if got := r.motion.Velocity().Forward; !approx(got, 45, 1e-3) {
		t.Errorf("speed after 30 frames = %v, want 45", got)
	}
	// Constant acceleration of 90/s² for 0.5 s.
	if got := r.cam.Position().Z(); !approx(got, -11.25, 1e-3) {
		t.Errorf("z after 30 frames = %v, want -11.25", got)
	}
	if p := r.cam.Position(); !approx(p.X(), 0, eps) || !approx(p.Y(), 0, eps) {
		t.Errorf("moved off the forward axis: %v", p)
	}

	r.bus.Publish(key(common.KeyW, false))
	run(r.controls, frame, 40)
	if got := r.motion.Velocity().Forward; got >= 0.01*r.motion.MaxSpeed() {
		t.Errorf("speed after release = %v, want below %v", got, 0.01*r.motion.MaxSpeed())
	}
}

func TestFlyControlsLockLossClearsIntent(t *testing.T) {
	r := newRig(EngagementPointerLock)
	r.bus.Publish(input.LockEvent{Locked: true})
	r.bus.Publish(key(common.KeyD, true))
	r.bus.Publish(key(common.KeySpace, true))
	if !r.motion.Intents().Has(IntentRight) || !r.motion.Intents().Has(IntentUp) {
		t.Fatalf("Intents() = %06b, want right and up", r.motion.Intents())
	}

	r.bus.Publish(input.LockEvent{Locked: false})
	if r.pose.Engaged() || r.motion.Intents() != 0 {
		t.Errorf("engaged %t intents %06b after lock loss", r.pose.Engaged(), r.motion.Intents())
	}
}

func TestFlyControlsKeys(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		want Intent
	}{
		{"w", common.KeyW, IntentForward},
		{"arrow up", common.KeyUp, IntentForward},
		{"s", common.KeyS, IntentBackward},
		{"a", common.KeyA, IntentLeft},
		{"arrow right", common.KeyRight, IntentRight},
		{"q", common.KeyQ, IntentUp},
		{"e", common.KeyE, IntentDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(EngagementAlways)
			r.bus.Publish(key(tt.code, true))
			if got := r.motion.Intents(); got != IntentSet(0).With(tt.want) {
				t.Errorf("Intents() = %06b, want %s", got, tt.want)
			}
			r.bus.Publish(input.KeyEvent{Code: tt.code, Action: input.KeyUp, Repeat: true})
			if r.motion.Intents() == 0 {
				t.Error("repeat event changed intent")
			}
			r.bus.Publish(key(tt.code, false))
			if got := r.motion.Intents(); got != 0 {
				t.Errorf("Intents() = %06b after release", got)
			}
		})
	}
}

func TestFlyControlsCustomBindingsAndBoost(t *testing.T) {
	bus := input.NewBus()
	cam := NewCamera()
	pose := NewPoseCapture(cam, WithEngagementMode(EngagementAlways))
	motion := NewMotionController(cam, pose)
	NewFlyControls(bus, pose, motion,
		WithKeyBindings(map[uint32]Intent{common.KeyF: IntentForward}),
		WithBoostKey(common.KeyLeftControl),
	)

	bus.Publish(key(common.KeyW, true))
	if motion.Intents() != 0 {
		t.Error("default binding still active")
	}
	bus.Publish(key(common.KeyF, true))
	bus.Publish(key(common.KeyLeftControl, true))
	run(motion, frame, 120)
	if got := motion.Velocity().Forward; got != 2*motion.MaxSpeed() {
		t.Errorf("boosted speed = %v, want %v", got, 2*motion.MaxSpeed())
	}
}

func TestFlyControlsPointerLook(t *testing.T) {
	tests := []struct {
		name    string
		mode    EngagementMode
		engage  bool
		events  []input.Event
		wantYaw float32
	}{
		{
			name:    "locked move looks",
			mode:    EngagementPointerLock,
			engage:  true,
			events:  []input.Event{input.PointerEvent{Action: input.PointerMove, MovementX: 50}},
			wantYaw: -0.1,
		},
		{
			name:   "unlocked move ignored",
			mode:   EngagementPointerLock,
			events: []input.Event{input.PointerEvent{Action: input.PointerMove, MovementX: 50}},
		},
		{
			name:   "always mode needs a drag",
			mode:   EngagementAlways,
			events: []input.Event{input.PointerEvent{Action: input.PointerMove, MovementX: 50}},
		},
		{
			name: "secondary drag looks",
			mode: EngagementAlways,
			events: []input.Event{
				input.PointerEvent{Action: input.PointerDown, Button: input.ButtonSecondary},
				input.PointerEvent{Action: input.PointerMove, MovementX: 50},
				input.PointerEvent{Action: input.PointerUp, Button: input.ButtonSecondary},
				input.PointerEvent{Action: input.PointerMove, MovementX: 50},
			},
			wantYaw: -0.1,
		},
		{
			name: "primary drag looks without pointer lock",
			mode: EngagementAlways,
			events: []input.Event{
				input.PointerEvent{Action: input.PointerDown, Button: input.ButtonPrimary},
				input.PointerEvent{Action: input.PointerMove, MovementX: -25},
			},
			wantYaw: 0.05,
		},
		{
			name: "secondary drag ignored under pointer lock",
			mode: EngagementPointerLock,
			events: []input.Event{
				input.PointerEvent{Action: input.PointerDown, Button: input.ButtonSecondary},
				input.PointerEvent{Action: input.PointerMove, MovementX: 50},
			},
		},
		{
			name:   "secondary drag while locked looks once",
			mode:   EngagementPointerLock,
			engage: true,
			events: []input.Event{
				input.PointerEvent{Action: input.PointerDown, Button: input.ButtonSecondary},
				input.PointerEvent{Action: input.PointerMove, MovementX: 50},
			},
			wantYaw: -0.1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(tt.mode)
			if tt.engage {
				r.bus.Publish(input.LockEvent{Locked: true})
			}
			for _, ev := range tt.events {
				r.bus.Publish(ev)
			}
			if !approx(r.pose.Yaw(), tt.wantYaw, eps) {
				t.Errorf("Yaw() = %v, want %v", r.pose.Yaw(), tt.wantYaw)
			}
		})
	}
}

func TestFlyControlsWheelDolly(t *testing.T) {
	r := newRig(EngagementAlways)
	r.bus.Publish(input.WheelEvent{DeltaY: -100})
	if got := r.cam.Position(); !vecApprox(got, mgl32.Vec3{0, 0, -2}, eps) {
		t.Errorf("Position() = %v, want (0, 0, -2)", got)
	}
}

func TestFlyControlsAxes(t *testing.T) {
	r := newRig(EngagementAlways)
	r.bus.Publish(input.AxesEvent{Longitudinal: 0.5, Vertical: -1})
	if l, la, v := r.motion.GestureAxes(); l != 0.5 || la != 0 || v != -1 {
		t.Errorf("GestureAxes() = %v %v %v", l, la, v)
	}
}

func TestFlyControlsSingleFingerLook(t *testing.T) {
	r := newRig(EngagementAlways)
	r.bus.Publish(start(100, 100))
	r.bus.Publish(move(110, 100))
	want := -10 * r.pose.LookSensitivity() * 1.2
	if !approx(r.pose.Yaw(), want, eps) {
		t.Errorf("Yaw() = %v, want %v", r.pose.Yaw(), want)
	}
	if r.motion.Intents() != 0 {
		t.Errorf("single finger produced motion intent %06b", r.motion.Intents())
	}
}

func TestFlyControlsTwoFingerGesture(t *testing.T) {
	r := newRig(EngagementAlways)
	r.bus.Publish(start(100, 100))
	r.bus.Publish(start(100, 100, 200, 100))
	r.bus.Publish(move(90, 100, 210, 100))
	if !r.motion.Intents().Has(IntentForward) {
		t.Fatalf("Intents() = %06b, want forward", r.motion.Intents())
	}
	yaw := r.pose.Yaw()

	r.bus.Publish(end(90, 100))
	if r.motion.Intents() != 0 {
		t.Errorf("Intents() = %06b after gesture end", r.motion.Intents())
	}
	r.bus.Publish(move(95, 100))
	if r.pose.Yaw() == yaw {
		t.Error("remaining finger did not resume look")
	}
}

func TestFlyControlsPerTouchEngagement(t *testing.T) {
	r := newRig(EngagementPerTouch)
	if r.pose.Engaged() {
		t.Fatal("engaged before any touch")
	}
	r.bus.Publish(start(100, 100, 200, 100))
	if !r.pose.Engaged() {
		t.Fatal("not engaged while touching")
	}
	r.bus.Publish(move(100, 80, 200, 80))
	if !r.motion.Intents().Has(IntentUp) {
		t.Fatalf("Intents() = %06b, want up", r.motion.Intents())
	}

	r.bus.Publish(end())
	if r.pose.Engaged() || r.motion.Intents() != 0 {
		t.Errorf("engaged %t intents %06b after all touches lifted", r.pose.Engaged(), r.motion.Intents())
	}
}

func TestFlyControlsClose(t *testing.T) {
	r := newRig(EngagementAlways)
	r.controls.Close()
	if r.bus.Len() != 0 {
		t.Errorf("bus still has %d subscribers", r.bus.Len())
	}
	r.bus.Publish(key(common.KeyW, true))
	if r.motion.Intents() != 0 {
		t.Error("closed controls still routed a key")
	}
}
