package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Number is the set of numeric types accepted by Clamp.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound (inclusive)
//   - hi: upper bound (inclusive)
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T Number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle normalizes an angle in radians to the range [-Pi, Pi].
// Large accumulated angles lose float32 precision, so callers that integrate
// unbounded rotations wrap after each step.
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float32: the equivalent angle in [-Pi, Pi]
func WrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

// PerspectiveZO creates a right-handed perspective projection matrix that maps depth
// to the WebGPU clip space range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}
