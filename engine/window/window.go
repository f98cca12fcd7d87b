package window

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a desktop host: it publishes raw input on an event bus and provides pointer
// capture by hiding and locking the cursor.
type Window interface {
	input.Source
	input.PointerCapture

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// ProcessEvents polls pending platform events, publishing each on the bus, then applies a
	// requested pointer lock change and publishes the resulting input.LockEvent.
	//
	// Returns:
	//   - bool: false once the window has been closed
	ProcessEvents() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Locked reports whether the cursor is currently captured.
	Locked() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and lock bookkeeping.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	bus    *input.Bus
	logger *log.Logger

	onResize func(width, height int)

	// pendingLock is the lock state requested since the last poll, nil when none.
	pendingLock *bool
	locked      bool

	pointer   input.PointerTracker
	held      map[uint32]bool
	wheelLine float32

	closeOnEscape  bool
	rawMouseMotion bool
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Panics when the platform window
// cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:          "oxy-fly",
		maxWidth:       3840,
		maxHeight:      2160,
		minWidth:       320,
		minHeight:      200,
		width:          1280,
		height:         720,
		held:           make(map[uint32]bool),
		wheelLine:      100,
		closeOnEscape:  true,
		rawMouseMotion: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.bus == nil {
		w.bus = input.NewBus()
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) logf(format string, args ...any) {
	if w.logger != nil {
		w.logger.Printf("[Window] "+format, args...)
	}
}

func (w *engineWindow) Subscribe(h input.Handler) input.Subscription {
	return w.bus.Subscribe(h)
}

func (w *engineWindow) RequestLock() {
	want := true
	w.pendingLock = &want
}

func (w *engineWindow) ReleaseLock() {
	want := false
	w.pendingLock = &want
}

func (w *engineWindow) Locked() bool {
	return w.locked
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessEvents() bool {
	if !platformProcessMessages(w) {
		return false
	}
	w.applyLock()
	return w.IsRunning()
}

// applyLock performs the lock change requested since the last poll, so that engagement is
// always confirmed after the request returns.
func (w *engineWindow) applyLock() {
	if w.pendingLock == nil {
		return
	}
	want := *w.pendingLock
	w.pendingLock = nil
	if want == w.locked {
		return
	}
	platformSetCursorLocked(w, want)
	w.locked = want
	w.pointer.Reset()
	w.logf("pointer locked=%t", want)
	w.bus.Publish(input.LockEvent{Locked: want})
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// keyChanged publishes a key transition and tracks held keys.
func (w *engineWindow) keyChanged(code uint32, down, repeat bool) {
	if down {
		w.held[code] = true
		w.bus.Publish(input.KeyEvent{Code: code, Action: input.KeyDown, Repeat: repeat})
		return
	}
	delete(w.held, code)
	w.bus.Publish(input.KeyEvent{Code: code, Action: input.KeyUp})
}

// focusLost releases held keys and the pointer lock.
func (w *engineWindow) focusLost() {
	for code := range w.held {
		w.keyChanged(code, false, false)
	}
	if w.locked {
		w.ReleaseLock()
	}
}
