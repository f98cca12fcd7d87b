package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-fly/common"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
)

// MessageType names a message in the {type, payload} envelope.
type MessageType string

const (
	// Client -> Server
	MsgKey     MessageType = "key"
	MsgPointer MessageType = "pointer"
	MsgWheel   MessageType = "wheel"
	MsgTouch   MessageType = "touch"
	MsgLock    MessageType = "lock"
	MsgAxes    MessageType = "axes"

	// Server -> Client
	MsgHello       MessageType = "hello"
	MsgControl     MessageType = "control"
	MsgRequestLock MessageType = "request_lock"
	MsgReleaseLock MessageType = "release_lock"
)

// Message is the WebSocket message envelope.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// KeyPayload carries a KeyboardEvent.code value such as "KeyW" or "ShiftLeft".
type KeyPayload struct {
	Code   string `json:"code"`
	Down   bool   `json:"down"`
	Repeat bool   `json:"repeat,omitempty"`
}

// PointerPayload mirrors a DOM PointerEvent. Button uses DOM numbering: 0 primary,
// 1 middle, 2 secondary.
type PointerPayload struct {
	Action    string  `json:"action"` // "down", "up", "move"
	Button    int     `json:"button"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	MovementX float32 `json:"movementX"`
	MovementY float32 `json:"movementY"`
}

// WheelPayload carries pixel deltas with DOM sign.
type WheelPayload struct {
	DeltaX float32 `json:"deltaX"`
	DeltaY float32 `json:"deltaY"`
}

type TouchPointPayload struct {
	ID int     `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// TouchPayload lists the touches still active after the transition.
type TouchPayload struct {
	Phase   string              `json:"phase"` // "touchstart", "touchmove", "touchend", "touchcancel"
	Touches []TouchPointPayload `json:"touches"`
}

type LockPayload struct {
	Locked bool `json:"locked"`
}

type AxesPayload struct {
	Longitudinal float32 `json:"longitudinal"`
	Lateral      float32 `json:"lateral"`
	Vertical     float32 `json:"vertical"`
}

// HelloPayload is sent once on connect.
type HelloPayload struct {
	ClientID   string `json:"clientId"`
	Controller bool   `json:"controller"`
}

// ControlPayload tells a client it now drives the camera.
type ControlPayload struct {
	Controller bool `json:"controller"`
}

// domKeyCodes maps KeyboardEvent.code values onto the shared key codes.
var domKeyCodes = map[string]uint32{
	"KeyW":         common.KeyW,
	"KeyA":         common.KeyA,
	"KeyS":         common.KeyS,
	"KeyD":         common.KeyD,
	"KeyQ":         common.KeyQ,
	"KeyE":         common.KeyE,
	"KeyR":         common.KeyR,
	"KeyF":         common.KeyF,
	"Space":        common.KeySpace,
	"Escape":       common.KeyEsc,
	"ArrowUp":      common.KeyUp,
	"ArrowDown":    common.KeyDown,
	"ArrowLeft":    common.KeyLeft,
	"ArrowRight":   common.KeyRight,
	"ShiftLeft":    common.KeyLeftShift,
	"ShiftRight":   common.KeyRightShift,
	"ControlLeft":  common.KeyLeftControl,
	"ControlRight": common.KeyRightControl,
}

var touchPhases = map[string]input.TouchPhase{
	input.TouchStart.String():  input.TouchStart,
	input.TouchMove.String():   input.TouchMove,
	input.TouchEnd.String():    input.TouchEnd,
	input.TouchCancel.String(): input.TouchCancel,
}

var pointerActions = map[string]input.PointerAction{
	"down": input.PointerDown,
	"up":   input.PointerUp,
	"move": input.PointerMove,
}

// errUnmapped marks a well-formed message with nothing to deliver, such as an unbound key.
var errUnmapped = errors.New("remote: unmapped input")

// Decode converts an input message into the event a local host would publish.
//
// Parameters:
//   - msg: the envelope received from a client
//
// Returns:
//   - input.Event: the decoded event
//   - error: a decode error, or an error for unknown types and values
func Decode(msg Message) (input.Event, error) {
	switch msg.Type {
	case MsgKey:
		var p KeyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode key: %w", err)
		}
		code, ok := domKeyCodes[p.Code]
		if !ok {
			return nil, fmt.Errorf("%w: key %q", errUnmapped, p.Code)
		}
		action := input.KeyUp
		if p.Down {
			action = input.KeyDown
		}
		return input.KeyEvent{Code: code, Action: action, Repeat: p.Repeat}, nil

	case MsgPointer:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode pointer: %w", err)
		}
		action, ok := pointerActions[p.Action]
		if !ok {
			return nil, fmt.Errorf("remote: unknown pointer action %q", p.Action)
		}
		button := input.ButtonNone
		if action != input.PointerMove {
			switch p.Button {
			case 0:
				button = input.ButtonPrimary
			case 1:
				button = input.ButtonMiddle
			case 2:
				button = input.ButtonSecondary
			default:
				return nil, fmt.Errorf("%w: button %d", errUnmapped, p.Button)
			}
		}
		return input.PointerEvent{
			Action:    action,
			Button:    button,
			X:         p.X,
			Y:         p.Y,
			MovementX: p.MovementX,
			MovementY: p.MovementY,
		}, nil

	case MsgWheel:
		var p WheelPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode wheel: %w", err)
		}
		return input.WheelEvent{DeltaX: p.DeltaX, DeltaY: p.DeltaY}, nil

	case MsgTouch:
		var p TouchPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode touch: %w", err)
		}
		phase, ok := touchPhases[p.Phase]
		if !ok {
			return nil, fmt.Errorf("remote: unknown touch phase %q", p.Phase)
		}
		touches := make([]input.TouchPoint, len(p.Touches))
		for i, t := range p.Touches {
			touches[i] = input.TouchPoint{ID: t.ID, X: t.X, Y: t.Y}
		}
		return input.TouchEvent{Phase: phase, Touches: touches}, nil

	case MsgLock:
		var p LockPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode lock: %w", err)
		}
		return input.LockEvent{Locked: p.Locked}, nil

	case MsgAxes:
		var p AxesPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, fmt.Errorf("remote: decode axes: %w", err)
		}
		return input.AxesEvent{Longitudinal: p.Longitudinal, Lateral: p.Lateral, Vertical: p.Vertical}, nil

	default:
		return nil, fmt.Errorf("remote: unknown message type %q", msg.Type)
	}
}

func encode(t MessageType, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Message{Type: t, Payload: raw})
}
