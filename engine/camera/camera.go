package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis names one of the camera's local axes.
type Axis int

const (
	// AxisX is the local right axis.
	AxisX Axis = iota
	// AxisY is the local up axis.
	AxisY
	// AxisZ is the local backward axis; the camera looks down -Z.
	AxisZ
)

// unit returns the local unit vector for the axis.
func (a Axis) unit() mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}

// Pose is the camera object owned by the scene graph. Controls never own a Pose; they only
// mutate it through these methods.
type Pose interface {
	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// SetPosition moves the camera to p.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Orientation returns the world-space rotation.
	//
	// Returns:
	//   - mgl32.Quat: unit quaternion
	Orientation() mgl32.Quat

	// SetOrientation replaces the world-space rotation.
	//
	// Parameters:
	//   - q: unit quaternion
	SetOrientation(q mgl32.Quat)

	// TranslateLocal moves the camera along one of its own axes.
	//
	// Parameters:
	//   - axis: the local axis
	//   - amount: distance in world units (negative moves the other way)
	TranslateLocal(axis Axis, amount float32)

	// WorldForwardDirection returns the unit direction the camera looks toward.
	//
	// Returns:
	//   - mgl32.Vec3: normalized view direction in world space
	WorldForwardDirection() mgl32.Vec3
}

// Camera is a perspective camera whose pose is driven by controls.
// Not safe for concurrent use; all access happens on the frame-loop thread.
type Camera interface {
	Pose

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// LocalAxes returns the camera's right, up and forward unit vectors in world space.
	//
	// Returns:
	//   - right, up, forward: world-space unit vectors
	LocalAxes() (right, up, forward mgl32.Vec3)

	// ViewMatrix returns the world-to-view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection with WebGPU [0, 1] depth.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4
}

type cameraImpl struct {
	position    mgl32.Vec3
	orientation mgl32.Quat

	fov    float32
	aspect float32
	near   float32
	far    float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the origin looking down -Z with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		orientation: mgl32.QuatIdent(),
		fov:         45.0 * (math.Pi / 180.0),
		aspect:      1.0,
		near:        0.1,
		far:         1000.0,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	return c.orientation
}

func (c *cameraImpl) SetOrientation(q mgl32.Quat) {
	c.orientation = q.Normalize()
}

func (c *cameraImpl) TranslateLocal(axis Axis, amount float32) {
	dir := c.orientation.Rotate(axis.unit())
	c.position = c.position.Add(dir.Mul(amount))
}

func (c *cameraImpl) WorldForwardDirection() mgl32.Vec3 {
	return c.orientation.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

func (c *cameraImpl) Fov() float32    { return c.fov }
func (c *cameraImpl) Aspect() float32 { return c.aspect }
func (c *cameraImpl) Near() float32   { return c.near }
func (c *cameraImpl) Far() float32    { return c.far }

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
}

func (c *cameraImpl) LocalAxes() (right, up, forward mgl32.Vec3) {
	right = c.orientation.Rotate(AxisX.unit())
	up = c.orientation.Rotate(AxisY.unit())
	forward = c.WorldForwardDirection()
	return
}

// ViewMatrix inverts the camera's rigid transform: R^T * T(-position).
func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	rot := c.orientation.Conjugate().Mat4()
	trans := mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2])
	return rot.Mul4(trans)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return common.PerspectiveZO(c.fov, c.aspect, c.near, c.far)
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}
