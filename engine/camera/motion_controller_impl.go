package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type motionControllerImpl struct {
	pose   Pose
	gate   EngagementGate
	sub    input.Subscription
	logger *log.Logger

	maxSpeed      float32
	flySpeed      float32
	decayFactor   float32
	gestureSpeed  float32
	referenceRate float32
	releasePolicy ReleasePolicy
	boostFactor   float32

	pinchThreshold  float32
	dragThreshold   float32
	rotateThreshold float32
	classifier      *GestureClassifier

	wheelEase   float32
	wheelEaseFn ease.TweenFunc
	dolly       *gween.Tween
	dollyTarget float32
	dollyDone   float32

	keys     IntentSet
	gestures IntentSet
	axes     [3]float32
	boost    bool
	velocity Velocity
}

var _ MotionController = &motionControllerImpl{}

// NewMotionController creates a MotionController that moves pose and listens to gate for
// engagement loss.
//
// Parameters:
//   - pose: the camera to translate
//   - gate: the engagement state gating intent, usually a PoseCapture
//   - options: functional options to configure the controller
//
// Returns:
//   - MotionController: the newly created controller
func NewMotionController(pose Pose, gate EngagementGate, options ...MotionControllerOption) MotionController {
	mc := &motionControllerImpl{
		pose:            pose,
		gate:            gate,
		maxSpeed:        50,
		flySpeed:        2,
		decayFactor:     0.85,
		referenceRate:   60,
		releasePolicy:   ReleaseDecay,
		boostFactor:     2,
		pinchThreshold:  12,
		dragThreshold:   10,
		rotateThreshold: 0.2,
	}
	for _, option := range options {
		option(mc)
	}
	mc.classifier = NewGestureClassifier(mc.pinchThreshold, mc.dragThreshold, mc.rotateThreshold)
	mc.classifier.SetLogger(mc.logger)
	mc.sub = gate.OnEngagementChange(func(engaged bool) {
		if !engaged {
			mc.ClearIntent()
			mc.logf("engagement lost, motion intent cleared")
		}
	})
	return mc
}

func (mc *motionControllerImpl) logf(format string, args ...any) {
	if mc.logger != nil {
		mc.logger.Printf("[Motion] "+format, args...)
	}
}

func (mc *motionControllerImpl) SetIntent(intent Intent, active bool) {
	if !mc.gate.Engaged() {
		return
	}
	if active {
		mc.keys = mc.keys.With(intent)
	} else {
		mc.keys = mc.keys.Without(intent)
	}
}

func (mc *motionControllerImpl) Intents() IntentSet {
	return mc.keys | mc.gestures
}

func (mc *motionControllerImpl) ClearIntent() {
	mc.keys = 0
	mc.gestures = 0
	mc.axes = [3]float32{}
	mc.boost = false
	mc.classifier.Reset()
	mc.dolly = nil
	mc.dollyTarget, mc.dollyDone = 0, 0
}

func (mc *motionControllerImpl) SetGestureAxes(longitudinal, lateral, vertical float32) {
	if !mc.gate.Engaged() {
		return
	}
	mc.axes = [3]float32{clampAxis(longitudinal), clampAxis(lateral), clampAxis(vertical)}
}

func (mc *motionControllerImpl) GestureAxes() (float32, float32, float32) {
	return mc.axes[0], mc.axes[1], mc.axes[2]
}

func (mc *motionControllerImpl) HandleTouch(ev input.TouchEvent) GestureResult {
	result := mc.classifier.Handle(ev)
	if !mc.gate.Engaged() {
		mc.gestures = 0
		result.Intents = 0
		result.LookDX = 0
		return result
	}
	mc.gestures = result.Intents
	return result
}

func (mc *motionControllerImpl) GestureMode() GestureMode {
	return mc.classifier.Mode()
}

func (mc *motionControllerImpl) SetBoost(active bool) {
	if active && !mc.gate.Engaged() {
		return
	}
	mc.boost = active
}

func (mc *motionControllerImpl) Dolly(amount float32) {
	if !mc.gate.Engaged() || !finite(amount) || amount == 0 {
		return
	}
	if mc.wheelEase <= 0 {
		mc.translateForward(amount)
		return
	}
	remaining := mc.dollyTarget - mc.dollyDone
	mc.dollyTarget = remaining + amount
	mc.dollyDone = 0
	easeFn := mc.wheelEaseFn
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	mc.dolly = gween.New(0, mc.dollyTarget, mc.wheelEase, easeFn)
}

func (mc *motionControllerImpl) translateForward(amount float32) {
	forward := mc.pose.WorldForwardDirection()
	mc.pose.SetPosition(mc.pose.Position().Add(forward.Mul(amount)))
}

func (mc *motionControllerImpl) Update(dt float32) {
	if !(dt > 0) || !finite(dt) {
		return
	}

	boost := float32(1)
	if mc.boost && mc.boostFactor > 0 {
		boost = mc.boostFactor
	}
	r := axisRates{
		max:     mc.maxSpeed * boost,
		fly:     mc.flySpeed * boost,
		gesture: common.Coalesce(mc.gestureSpeed, mc.maxSpeed) * boost,
		decay:   mc.decayFactor,
		rate:    mc.referenceRate,
		stop:    mc.releasePolicy == ReleaseStop,
	}

	intents := mc.Intents()
	var strafe, vertical, forward float32
	mc.velocity.Forward, forward = r.step(mc.velocity.Forward, intents.Has(IntentForward), intents.Has(IntentBackward), mc.axes[0], dt)
	mc.velocity.Strafe, strafe = r.step(mc.velocity.Strafe, intents.Has(IntentRight), intents.Has(IntentLeft), mc.axes[1], dt)
	mc.velocity.Vertical, vertical = r.step(mc.velocity.Vertical, intents.Has(IntentUp), intents.Has(IntentDown), mc.axes[2], dt)

	if strafe != 0 {
		mc.pose.TranslateLocal(AxisX, strafe)
	}
	if vertical != 0 {
		mc.pose.TranslateLocal(AxisY, vertical)
	}
	if forward != 0 {
		// The camera looks down local -Z.
		mc.pose.TranslateLocal(AxisZ, -forward)
	}

	if mc.dolly != nil {
		current, done := mc.dolly.Update(dt)
		mc.translateForward(current - mc.dollyDone)
		mc.dollyDone = current
		if done {
			mc.dolly = nil
			mc.dollyTarget, mc.dollyDone = 0, 0
		}
	}
}

// axisRates holds one Update's speed rules. fly is the per-frame increment and decay the
// per-frame factor, both expressed at the reference rate.
type axisRates struct {
	max     float32
	fly     float32
	gesture float32
	decay   float32
	rate    float32
	stop    bool
}

// step advances one axis by dt and returns the new speed and the distance covered. With a
// reference rate the speed curve is integrated exactly, so splitting dt across calls gives
// the same distance.
func (r axisRates) step(speed float32, positive, negative bool, axis, dt float32) (float32, float32) {
	speed = common.Clamp(speed, -r.max, r.max)
	switch {
	case axis != 0:
		speed = common.Clamp(axis*r.gesture, -r.max, r.max)
		return speed, speed * dt
	case positive && !negative:
		return r.ramp(speed, dt)
	case negative && !positive:
		speed, distance := r.ramp(-speed, dt)
		return -speed, -distance
	case r.stop:
		return 0, 0
	default:
		return r.settle(speed, dt)
	}
}

// ramp accelerates toward +max: linearly at fly*rate per second, then holds at max.
func (r axisRates) ramp(speed, dt float32) (float32, float32) {
	if r.rate <= 0 {
		if speed < r.max {
			speed = min(speed+r.fly, r.max)
		}
		return speed, speed * dt
	}
	accel := r.fly * r.rate
	if speed >= r.max || accel <= 0 {
		return speed, speed * dt
	}
	reach := (r.max - speed) / accel
	if reach >= dt {
		next := speed + accel*dt
		return next, (speed + next) / 2 * dt
	}
	return r.max, (speed+r.max)/2*reach + r.max*(dt-reach)
}

// settle decays an undriven speed: v(t) = v0 * decay^(rate*t).
func (r axisRates) settle(speed, dt float32) (float32, float32) {
	if r.rate <= 0 {
		speed *= r.decay
		return speed, speed * dt
	}
	switch {
	case speed == 0 || r.decay <= 0:
		return 0, 0
	case r.decay == 1:
		return speed, speed * dt
	}
	k := float64(r.rate) * math.Log(float64(r.decay))
	f := math.Exp(k * float64(dt))
	return float32(float64(speed) * f), float32(float64(speed) * (f - 1) / k)
}

func (mc *motionControllerImpl) Velocity() Velocity {
	return mc.velocity
}

func (mc *motionControllerImpl) MaxSpeed() float32 {
	return mc.maxSpeed
}

func (mc *motionControllerImpl) FlySpeed() float32 {
	return mc.flySpeed
}

func (mc *motionControllerImpl) DecayFactor() float32 {
	return mc.decayFactor
}

func (mc *motionControllerImpl) Reconfigure(options ...MotionControllerOption) {
	for _, option := range options {
		option(mc)
	}
	mc.classifier.SetThresholds(mc.pinchThreshold, mc.dragThreshold, mc.rotateThreshold)
	mc.classifier.SetLogger(mc.logger)
}

func (mc *motionControllerImpl) Close() {
	mc.sub.Unsubscribe()
	mc.ClearIntent()
	mc.velocity = Velocity{}
}

func clampAxis(v float32) float32 {
	if !finite(v) {
		return 0
	}
	return common.Clamp(v, -1, 1)
}
