package gpu

import "github.com/cogentcore/webgpu/wgpu"

// GridRendererOption is a functional option for configuring a GridRenderer.
type GridRendererOption func(*GridRenderer)

// WithClearColor sets the background color.
func WithClearColor(c wgpu.Color) GridRendererOption {
	return func(r *GridRenderer) {
		r.clear = c
	}
}

// WithPresentMode sets the surface present mode. Default wgpu.PresentModeFifo (vsync).
func WithPresentMode(mode wgpu.PresentMode) GridRendererOption {
	return func(r *GridRenderer) {
		r.presentMode = mode
	}
}

// WithFallbackAdapter forces the software adapter.
func WithFallbackAdapter(force bool) GridRendererOption {
	return func(r *GridRenderer) {
		r.forceFallbackAdapter = force
	}
}
