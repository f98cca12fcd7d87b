// Package gpu packs camera state into the uniform layout shaders read and uploads it to a
// WebGPU queue.
package gpu

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformSource is the WGSL declaration matching CameraUniform (80 bytes, bound at
// group 0, binding 0).
//
//go:embed assets/camera_uniform.wgsl
var CameraUniformSource string

// Viewer is the camera state a CameraUniform is built from. camera.Camera satisfies it.
type Viewer interface {
	ViewProjectionMatrix() mgl32.Mat4
	Position() mgl32.Vec3
}

// CameraUniform is the GPU-aligned camera uniform buffer.
type CameraUniform struct {
	ViewProj [16]float32 // offset  0: mat4x4<f32>, column-major
	Position [3]float32  // offset 64: vec3<f32>
	_pad     float32     // offset 76
}

// NewCameraUniform captures the current view-projection matrix and position of v.
//
// Parameters:
//   - v: the camera to read
//
// Returns:
//   - CameraUniform: the packed uniform
func NewCameraUniform(v Viewer) CameraUniform {
	return CameraUniform{
		ViewProj: v.ViewProjectionMatrix(),
		Position: v.Position(),
	}
}

// Size returns the struct size in bytes (80).
func (u *CameraUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the uniform in little-endian order for upload.
//
// Returns:
//   - []byte: the serialized buffer
func (u *CameraUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(u.Position[i]))
	}
	return buf
}
