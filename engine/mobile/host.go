package mobile

import (
	"errors"
	"log"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// keyCodes maps the ebiten keys the controls care about onto the shared GLFW key codes.
var keyCodes = map[ebiten.Key]uint32{
	ebiten.KeyW:            common.KeyW,
	ebiten.KeyA:            common.KeyA,
	ebiten.KeyS:            common.KeyS,
	ebiten.KeyD:            common.KeyD,
	ebiten.KeyQ:            common.KeyQ,
	ebiten.KeyE:            common.KeyE,
	ebiten.KeyR:            common.KeyR,
	ebiten.KeyF:            common.KeyF,
	ebiten.KeySpace:        common.KeySpace,
	ebiten.KeyArrowUp:      common.KeyUp,
	ebiten.KeyArrowDown:    common.KeyDown,
	ebiten.KeyArrowLeft:    common.KeyLeft,
	ebiten.KeyArrowRight:   common.KeyRight,
	ebiten.KeyShiftLeft:    common.KeyLeftShift,
	ebiten.KeyShiftRight:   common.KeyRightShift,
	ebiten.KeyControlLeft:  common.KeyLeftControl,
	ebiten.KeyControlRight: common.KeyRightControl,
}

// Host runs the controls inside an ebiten game loop, which is the touch-capable target:
// ebiten reports touches on mobile and the browser, and cursor capture on desktop.
// Host implements ebiten.Game, input.Source and input.PointerCapture.
type Host struct {
	bus    *input.Bus
	poller *input.Poller
	logger *log.Logger

	title         string
	width, height int
	wheelLine     float32

	onUpdate func(dt float32)
	onDraw   func(screen *ebiten.Image)
	onResize func(width, height int)

	pendingLock *bool
	locked      bool
	focused     bool
	quit        bool

	touchIDs []ebiten.TouchID
	snap     input.Snapshot
}

var (
	_ ebiten.Game          = &Host{}
	_ input.Source         = &Host{}
	_ input.PointerCapture = &Host{}
)

// NewHost creates a Host.
//
// Parameters:
//   - options: functional options to configure the host
//
// Returns:
//   - *Host: the host, started with Run
func NewHost(options ...HostOption) *Host {
	h := &Host{
		title:     "oxy-fly",
		width:     1280,
		height:    720,
		wheelLine: 100,
		focused:   true,
		poller:    input.NewPoller(),
	}
	for _, option := range options {
		option(h)
	}
	if h.bus == nil {
		h.bus = input.NewBus()
	}
	return h
}

// Run opens the window and blocks until the game ends.
//
// Returns:
//   - error: the ebiten error, nil on a normal quit
func (h *Host) Run() error {
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(h.width, h.height)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Quit ends the game after the current update.
func (h *Host) Quit() {
	h.quit = true
}

func (h *Host) Subscribe(handler input.Handler) input.Subscription {
	return h.bus.Subscribe(handler)
}

func (h *Host) RequestLock() {
	want := true
	h.pendingLock = &want
}

func (h *Host) ReleaseLock() {
	want := false
	h.pendingLock = &want
}

// Update samples input, delivers events, then advances the controls by one tick.
func (h *Host) Update() error {
	if h.quit {
		return ebiten.Termination
	}

	focused := ebiten.IsFocused()
	if !focused && h.focused {
		for _, ev := range h.poller.Release() {
			h.bus.Publish(ev)
		}
		if h.locked {
			h.ReleaseLock()
		}
	}
	h.focused = focused

	if focused {
		h.sample()
		for _, ev := range h.poller.Diff(h.snap) {
			h.handleEscape(ev)
			h.bus.Publish(ev)
		}
	}
	h.applyLock()
	h.bus.Flush()

	if h.onUpdate != nil {
		h.onUpdate(1 / float32(ebiten.TPS()))
	}
	return nil
}

func (h *Host) handleEscape(ev input.Event) {
	if k, ok := ev.(input.KeyEvent); ok && k.Code == common.KeyEsc && k.Action == input.KeyDown && h.locked {
		h.ReleaseLock()
	}
}

func (h *Host) sample() {
	s := &h.snap
	s.Touches = s.Touches[:0]
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, input.TouchPoint{ID: int(id), X: float32(x), Y: float32(y)})
	}

	s.KeysDown = s.KeysDown[:0]
	for key, code := range keyCodes {
		if ebiten.IsKeyPressed(key) {
			s.KeysDown = append(s.KeysDown, code)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		s.KeysDown = append(s.KeysDown, common.KeyEsc)
	}

	s.Buttons = [3]bool{
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	}

	// Touch input also moves the emulated cursor on some platforms; ignore it while touching.
	s.HasCursor = len(s.Touches) == 0
	if s.HasCursor {
		x, y := ebiten.CursorPosition()
		s.CursorX, s.CursorY = float32(x), float32(y)
	}

	wx, wy := ebiten.Wheel()
	s.WheelX = float32(-wx) * h.wheelLine
	s.WheelY = float32(-wy) * h.wheelLine
}

func (h *Host) applyLock() {
	if h.pendingLock == nil {
		return
	}
	want := *h.pendingLock
	h.pendingLock = nil
	if want == h.locked {
		return
	}
	if want {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	h.locked = want
	h.poller.ResetPointer()
	if h.logger != nil {
		h.logger.Printf("[Mobile] pointer locked=%t", want)
	}
	h.bus.Publish(input.LockEvent{Locked: want})
}

func (h *Host) Draw(screen *ebiten.Image) {
	if h.onDraw != nil {
		h.onDraw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		if h.onResize != nil {
			h.onResize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
