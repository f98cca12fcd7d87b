package window

import (
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSizeLimits sets the minimum and maximum window size.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size in pixels
//   - maxWidth, maxHeight: largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithBus publishes input on an existing bus instead of a private one.
//
// Parameters:
//   - bus: the event bus
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithBus(bus *input.Bus) WindowBuilderOption {
	return func(w *engineWindow) {
		w.bus = bus
	}
}

// WithWheelLineHeight sets the pixels reported per wheel notch. GLFW reports notches with
// up as positive; the window converts them to DOM-style deltas where positive scrolls down.
//
// Parameters:
//   - pixels: delta per notch
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWheelLineHeight(pixels float32) WindowBuilderOption {
	return func(w *engineWindow) {
		w.wheelLine = pixels
	}
}

// WithCloseOnEscape closes the window on Escape when the pointer is not locked.
// A locked pointer is always released by Escape.
//
// Parameters:
//   - enabled: true to close on Escape
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCloseOnEscape(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.closeOnEscape = enabled
	}
}

// WithRawMouseMotion toggles unaccelerated mouse motion while the pointer is locked.
//
// Parameters:
//   - enabled: true to request raw motion when the platform supports it
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRawMouseMotion(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.rawMouseMotion = enabled
	}
}

// WithLogger enables lock transition logging.
//
// Parameters:
//   - logger: log destination
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithLogger(logger *log.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		w.logger = logger
	}
}
