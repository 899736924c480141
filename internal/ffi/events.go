package ffi

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on platforms without a native host.
var ErrUnsupported = errors.New("ffi: native host is not supported on this platform")

// ============================================================================
// Event Types and Constants
// ============================================================================

// EventType represents the type of event from the host
type EventType uint8

const (
	EventReady           EventType = 0
	EventRedrawRequested EventType = 1
	EventResized         EventType = 2
	EventCloseRequested  EventType = 3
	EventMouseMoved      EventType = 4
	EventMousePressed    EventType = 5
	EventMouseReleased   EventType = 6
	EventKeyPressed      EventType = 7
	EventKeyReleased     EventType = 8
	EventCharInput       EventType = 9
	EventMouseWheel      EventType = 10
	EventFocusLost       EventType = 11
	EventWake            EventType = 12
)

var eventNames = map[EventType]string{
	EventReady:           "Ready",
	EventRedrawRequested: "RedrawRequested",
	EventResized:         "Resized",
	EventCloseRequested:  "CloseRequested",
	EventMouseMoved:      "MouseMoved",
	EventMousePressed:    "MousePressed",
	EventMouseReleased:   "MouseReleased",
	EventKeyPressed:      "KeyPressed",
	EventKeyReleased:     "KeyReleased",
	EventCharInput:       "CharInput",
	EventMouseWheel:      "MouseWheel",
	EventFocusLost:       "FocusLost",
	EventWake:            "Wake",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Modifier flags for keyboard events (stored in Data2)
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Keycode is a stable cross-platform key value. Letters, digits and
// punctuation arrive as CharInput events and are not listed.
type Keycode uint32

const (
	KeyF4 Keycode = 39

	// Navigation = 48-55
	KeyUp       Keycode = 48
	KeyDown     Keycode = 49
	KeyLeft     Keycode = 50
	KeyRight    Keycode = 51
	KeyHome     Keycode = 52
	KeyEnd      Keycode = 53
	KeyPageUp   Keycode = 54
	KeyPageDown Keycode = 55

	// Editing = 56-62
	KeyBackspace Keycode = 56
	KeyDelete    Keycode = 57
	KeyInsert    Keycode = 58
	KeyEnter     Keycode = 59
	KeyTab       Keycode = 60
	KeyEscape    Keycode = 61
	KeySpace     Keycode = 62

	KeyNumpadEnter Keycode = 115

	KeyUnknown Keycode = 999
)

// Mouse buttons reported in Data1 of MousePressed/MouseReleased events.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

// ============================================================================
// Event
// ============================================================================

// Event is one event from the host. WindowID is zero for application
// events (Ready, Wake).
type Event struct {
	Type        EventType
	WindowID    uint32
	Data1       float64
	Data2       float64
	ScaleFactor float64
}

// Keycode returns the keycode for KeyPressed/KeyReleased events
func (e Event) Keycode() Keycode {
	return Keycode(uint32(e.Data1))
}

// Modifiers returns the modifier flags for keyboard and mouse events
func (e Event) Modifiers() Modifiers {
	return Modifiers(uint32(e.Data2))
}

// Char returns the character for CharInput events
func (e Event) Char() rune {
	if e.Type != EventCharInput {
		return 0
	}
	return rune(e.Data1)
}

// MouseX returns the X coordinate for mouse events, in physical pixels.
func (e Event) MouseX() float64 { return e.Data1 }

// MouseY returns the Y coordinate for mouse events, in physical pixels.
func (e Event) MouseY() float64 { return e.Data2 }

// MouseButton returns the button number for mouse button events
func (e Event) MouseButton() int { return int(e.Data1) }

func (e Event) Width() float64  { return e.Data1 }
func (e Event) Height() float64 { return e.Data2 }

// ScrollDelta returns the vertical scroll delta for MouseWheel events, in
// lines. Positive scrolls up.
func (e Event) ScrollDelta() float64 { return e.Data2 }

// EventHandler is called on the host's main thread for each event.
type EventHandler func(event Event)

// ============================================================================
// Window Configuration
// ============================================================================

// WindowConfig describes a native window to create. Sizes are logical.
type WindowConfig struct {
	Title     string
	X, Y      int32
	Width     uint32
	Height    uint32
	Resizable bool
	// Popup windows have no decorations, do not take activation and are
	// positioned relative to Owner's client area.
	Popup bool
	Owner uint32
}

// AppError represents an error code returned by the host
type AppError struct {
	Code int
}

func (e *AppError) Error() string {
	switch e.Code {
	case -1:
		return "ffi: null callback"
	case -2:
		return "ffi: failed to create event loop"
	case -3:
		return "ffi: event loop error"
	case -4:
		return "ffi: window creation failed"
	default:
		return fmt.Sprintf("ffi: unknown error %d", e.Code)
	}
}
