package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// CameraBuffer owns the uniform buffer a render pass binds for the camera.
type CameraBuffer struct {
	buffer  *wgpu.Buffer
	uniform CameraUniform
}

// NewCameraBuffer allocates an 80-byte uniform buffer on device.
//
// Parameters:
//   - device: the device that owns the buffer
//   - label: debug label for the buffer
//
// Returns:
//   - *CameraBuffer: the buffer wrapper
//   - error: an error if the buffer could not be created
func NewCameraBuffer(device *wgpu.Device, label string) (*CameraBuffer, error) {
	cb := &CameraBuffer{}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(cb.uniform.Size()),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	cb.buffer = buf
	return cb, nil
}

// Upload packs v and writes it to the buffer through queue.
//
// Parameters:
//   - queue: the device queue
//   - v: the camera to upload
func (cb *CameraBuffer) Upload(queue *wgpu.Queue, v Viewer) {
	cb.uniform = NewCameraUniform(v)
	queue.WriteBuffer(cb.buffer, 0, cb.uniform.Marshal())
}

// Uniform returns the most recently uploaded values.
func (cb *CameraBuffer) Uniform() CameraUniform {
	return cb.uniform
}

// Buffer returns the underlying GPU buffer for bind group creation.
func (cb *CameraBuffer) Buffer() *wgpu.Buffer {
	return cb.buffer
}

// Release frees the GPU buffer.
func (cb *CameraBuffer) Release() {
	if cb.buffer != nil {
		cb.buffer.Release()
		cb.buffer = nil
	}
}
