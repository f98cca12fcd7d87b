package gpu

import (
	_ "embed"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/grid.wgsl
var gridSource string

// gridVertices is two vertices per line, 101 lines in each direction.
const gridVertices = 2 * 2 * 101

// GridRenderer clears the surface and draws a ground grid through the camera uniform, which
// is enough to see a fly camera move.
type GridRenderer struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	clear       wgpu.Color

	camera    *CameraBuffer
	layout    *wgpu.BindGroupLayout
	bindGroup *wgpu.BindGroup
	pipeline  *wgpu.RenderPipeline

	forceFallbackAdapter bool
}

// NewGridRenderer creates the device for a window surface and builds the grid pipeline.
// Must be called on the thread that owns the window.
//
// Parameters:
//   - descriptor: the window's surface descriptor
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - *GridRenderer: the renderer
//   - error: an error if any GPU object could not be created
func NewGridRenderer(descriptor *wgpu.SurfaceDescriptor, width, height int, options ...GridRendererOption) (*GridRenderer, error) {
	runtime.LockOSThread()
	r := &GridRenderer{
		presentMode: wgpu.PresentModeFifo,
		clear:       wgpu.Color{R: 0.1, G: 0.1, B: 0.12, A: 1.0},
	}
	for _, option := range options {
		option(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(descriptor)

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "Flycam Device"})
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	r.device = d
	r.queue = d.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.format = capabilities.Formats[0]
	r.alphaMode = capabilities.AlphaModes[0]
	r.Resize(width, height)

	if r.camera, err = NewCameraBuffer(d, "Camera Uniform"); err != nil {
		return nil, fmt.Errorf("gpu: camera buffer: %w", err)
	}
	if err := r.buildPipeline(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GridRenderer) buildPipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "grid.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: gridSource,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: grid shader: %w", err)
	}

	r.layout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(r.camera.uniform.Size()),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: camera bind group layout: %w", err)
	}

	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: r.layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.camera.Buffer(),
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: camera bind group: %w", err)
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Grid",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: grid pipeline layout: %w", err)
	}

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Grid Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: grid pipeline: %w", err)
	}
	return nil
}

// Resize reconfigures the surface. Zero sizes (a minimized window) are ignored.
func (r *GridRenderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   r.alphaMode,
	})
}

// Draw uploads v's uniform and renders one frame.
//
// Parameters:
//   - v: the camera to draw from
//
// Returns:
//   - error: an error if the surface texture could not be acquired or the frame not encoded
func (r *GridRenderer) Draw(v Viewer) error {
	r.camera.Upload(r.queue, v)

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clear,
			},
		},
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.Draw(gridVertices, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	r.queue.Submit(commandBuffer)
	r.surface.Present()
	return nil
}

// Release frees every GPU object the renderer created.
func (r *GridRenderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.bindGroup != nil {
		r.bindGroup.Release()
	}
	if r.layout != nil {
		r.layout.Release()
	}
	if r.camera != nil {
		r.camera.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
}
