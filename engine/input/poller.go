package input

import "slices"

// Snapshot is the complete input state a polling host samples once per frame.
type Snapshot struct {
	Touches []TouchPoint
	// KeysDown lists every held key code.
	KeysDown []uint32
	// Buttons holds primary, secondary and middle button state.
	Buttons [3]bool
	// Cursor is only meaningful when HasCursor is true.
	CursorX, CursorY float32
	HasCursor        bool
	// WheelX and WheelY use DOM sign: positive scrolls right and down.
	WheelX, WheelY float32
}

// Poller turns successive snapshots into the same events an event-driven host delivers.
type Poller struct {
	touches *TouchTracker
	pointer PointerTracker
	keys    map[uint32]bool
	buttons [3]bool
}

// NewPoller creates a poller with nothing held.
//
// Returns:
//   - *Poller: the poller
func NewPoller() *Poller {
	return &Poller{
		touches: NewTouchTracker(),
		keys:    make(map[uint32]bool),
	}
}

// Diff compares s with the previous snapshot. Events are ordered keys, pointer movement,
// buttons, wheel, then touches.
//
// Parameters:
//   - s: this frame's input state
//
// Returns:
//   - []Event: events describing the change
func (p *Poller) Diff(s Snapshot) []Event {
	var events []Event

	down := make(map[uint32]bool, len(s.KeysDown))
	for _, code := range s.KeysDown {
		down[code] = true
	}
	var released []uint32
	for code := range p.keys {
		if !down[code] {
			released = append(released, code)
		}
	}
	slices.Sort(released)
	for _, code := range released {
		delete(p.keys, code)
		events = append(events, KeyEvent{Code: code, Action: KeyUp})
	}
	pressed := slices.Clone(s.KeysDown)
	slices.Sort(pressed)
	for _, code := range slices.Compact(pressed) {
		if !p.keys[code] {
			p.keys[code] = true
			events = append(events, KeyEvent{Code: code, Action: KeyDown})
		}
	}

	x, y := p.pointer.Position()
	if s.HasCursor {
		dx, dy := p.pointer.Move(s.CursorX, s.CursorY)
		x, y = s.CursorX, s.CursorY
		if dx != 0 || dy != 0 {
			events = append(events, PointerEvent{Action: PointerMove, Button: ButtonNone, X: x, Y: y, MovementX: dx, MovementY: dy})
		}
	}

	for i, held := range s.Buttons {
		if held == p.buttons[i] {
			continue
		}
		p.buttons[i] = held
		action := PointerUp
		if held {
			action = PointerDown
		}
		events = append(events, PointerEvent{Action: action, Button: PointerButton(i), X: x, Y: y})
	}

	if s.WheelX != 0 || s.WheelY != 0 {
		events = append(events, WheelEvent{DeltaX: s.WheelX, DeltaY: s.WheelY})
	}

	for _, ev := range p.touches.Update(s.Touches) {
		events = append(events, ev)
	}
	return events
}

// Release reports everything currently held as released, for focus loss.
//
// Returns:
//   - []Event: key ups, button ups and a touch cancel
func (p *Poller) Release() []Event {
	events := p.Diff(Snapshot{})
	for i, ev := range events {
		if touch, ok := ev.(TouchEvent); ok && touch.Phase == TouchEnd {
			events[i] = TouchEvent{Phase: TouchCancel}
		}
	}
	p.pointer.Reset()
	return events
}

// ResetPointer forgets the cursor position so a warp is not reported as movement.
func (p *Poller) ResetPointer() {
	p.pointer.Reset()
}
