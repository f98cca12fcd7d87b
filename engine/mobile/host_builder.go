package mobile

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// HostOption is a functional option for configuring a Host.
type HostOption func(*Host)

// WithTitle sets the window title on desktop targets.
func WithTitle(title string) HostOption {
	return func(h *Host) {
		h.title = title
	}
}

// WithSize sets the initial window size on desktop targets.
func WithSize(width, height int) HostOption {
	return func(h *Host) {
		h.width, h.height = width, height
	}
}

// WithBus publishes input on an existing bus.
func WithBus(bus *input.Bus) HostOption {
	return func(h *Host) {
		h.bus = bus
	}
}

// WithUpdate sets the per-tick callback, called with 1/TPS after input is delivered.
//
// Parameters:
//   - fn: typically FlyControls.Update
//
// Returns:
//   - HostOption: option function to apply
func WithUpdate(fn func(dt float32)) HostOption {
	return func(h *Host) {
		h.onUpdate = fn
	}
}

// WithDraw sets the draw callback.
func WithDraw(fn func(screen *ebiten.Image)) HostOption {
	return func(h *Host) {
		h.onDraw = fn
	}
}

// WithResize sets the callback run when the layout size changes.
func WithResize(fn func(width, height int)) HostOption {
	return func(h *Host) {
		h.onResize = fn
	}
}

// WithWheelLineHeight sets the pixels reported per wheel notch.
func WithWheelLineHeight(pixels float32) HostOption {
	return func(h *Host) {
		h.wheelLine = pixels
	}
}

// WithLogger enables lock transition logging.
func WithLogger(logger *log.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}
