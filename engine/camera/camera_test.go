package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func approx(a, b, tolerance float32) bool {
	return float32(math.Abs(float64(a-b))) <= tolerance
}

func vecApprox(a, b mgl32.Vec3, tolerance float32) bool {
	return approx(a.X(), b.X(), tolerance) && approx(a.Y(), b.Y(), tolerance) && approx(a.Z(), b.Z(), tolerance)
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Position() != (mgl32.Vec3{}) {
		t.Errorf("Position() = %v, want origin", c.Position())
	}
	if got := c.WorldForwardDirection(); !vecApprox(got, mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("WorldForwardDirection() = %v, want (0, 0, -1)", got)
	}
	if c.Near() != 0.1 || c.Far() != 1000 || c.Aspect() != 1 {
		t.Errorf("clip defaults = near %v far %v aspect %v", c.Near(), c.Far(), c.Aspect())
	}
}

func TestCameraBuilderOptions(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3), WithFov(mgl32.DegToRad(60)), WithAspect(16.0/9.0), WithNear(0.5), WithFar(200))
	if c.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position() = %v", c.Position())
	}
	if !approx(c.Fov(), mgl32.DegToRad(60), eps) || c.Near() != 0.5 || c.Far() != 200 {
		t.Errorf("fov %v near %v far %v", c.Fov(), c.Near(), c.Far())
	}
}

func TestTranslateLocalFollowsOrientation(t *testing.T) {
	tests := []struct {
		name   string
		yaw    float32
		axis   Axis
		amount float32
		want   mgl32.Vec3
	}{
		{"identity right", 0, AxisX, 2, mgl32.Vec3{2, 0, 0}},
		{"identity up", 0, AxisY, 2, mgl32.Vec3{0, 2, 0}},
		{"identity forward", 0, AxisZ, -2, mgl32.Vec3{0, 0, -2}},
		{"yawed left forward", math.Pi / 2, AxisZ, -2, mgl32.Vec3{-2, 0, 0}},
		{"yawed left right", math.Pi / 2, AxisX, 2, mgl32.Vec3{0, 0, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(WithOrientation(mgl32.AnglesToQuat(tt.yaw, 0, 0, mgl32.YXZ)))
			c.TranslateLocal(tt.axis, tt.amount)
			if got := c.Position(); !vecApprox(got, tt.want, eps) {
				t.Errorf("Position() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewMatrixInvertsPose(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3), WithOrientation(mgl32.AnglesToQuat(0.7, -0.3, 0, mgl32.YXZ)))
	view := c.ViewMatrix()

	eye := view.Mul4x1(c.Position().Vec4(1))
	if !vecApprox(eye.Vec3(), mgl32.Vec3{}, eps) {
		t.Errorf("camera position in view space = %v, want origin", eye.Vec3())
	}
	ahead := view.Mul4x1(c.Position().Add(c.WorldForwardDirection()).Vec4(1))
	if !vecApprox(ahead.Vec3(), mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("forward point in view space = %v, want (0, 0, -1)", ahead.Vec3())
	}
}

func TestViewProjectionMatrix(t *testing.T) {
	c := NewCamera(WithPosition(0, 1, 5), WithAspect(2))
	want := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	if got := c.ViewProjectionMatrix(); !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", got, want)
	}
	c.SetAspect(1)
	if c.ProjectionMatrix().ApproxEqualThreshold(want, eps) {
		t.Error("ProjectionMatrix() did not change with aspect")
	}
}
