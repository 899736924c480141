package forms

import "fmt"

// ============================================================================
// Input Events
// ============================================================================

// InputKind identifies the kind of raw input delivered by a platform.
type InputKind uint8

const (
	InputMouseMove InputKind = iota + 1
	InputMouseDown
	InputMouseUp
	InputMouseWheel
	InputKeyDown
	InputKeyUp
	// InputChar carries typed text, after the platform's key translation.
	InputChar
)

func (k InputKind) String() string {
	switch k {
	case InputMouseMove:
		return "MouseMove"
	case InputMouseDown:
		return "MouseDown"
	case InputMouseUp:
		return "MouseUp"
	case InputMouseWheel:
		return "MouseWheel"
	case InputKeyDown:
		return "KeyDown"
	case InputKeyUp:
		return "KeyUp"
	case InputChar:
		return "Char"
	}
	return fmt.Sprintf("InputKind(%d)", uint8(k))
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a platform independent key code. Only keys the control library
// reacts to are named; everything else arrives as KeyUnknown plus a Char
// event.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyF4
)

// InputEvent is one raw input event. Mouse coordinates are device pixels
// relative to the surface that received the event.
type InputEvent struct {
	Kind   InputKind
	X, Y   int
	Button MouseButton
	Key    Key
	Rune   rune
	Mods   Modifiers
	DeltaY int
}

// Point returns the mouse position.
func (e InputEvent) Point() Point { return Point{X: e.X, Y: e.Y} }

// MouseDown builds a left button press at (x, y).
func MouseDown(x, y int) InputEvent {
	return InputEvent{Kind: InputMouseDown, X: x, Y: y, Button: MouseButtonLeft}
}

// MouseUp builds a left button release at (x, y).
func MouseUp(x, y int) InputEvent {
	return InputEvent{Kind: InputMouseUp, X: x, Y: y, Button: MouseButtonLeft}
}

// MouseMove builds a pointer move to (x, y).
func MouseMove(x, y int) InputEvent {
	return InputEvent{Kind: InputMouseMove, X: x, Y: y}
}

// KeyPress builds a key down event.
func KeyPress(k Key, mods Modifiers) InputEvent {
	return InputEvent{Kind: InputKeyDown, Key: k, Mods: mods}
}

// CharInput builds a typed character event.
func CharInput(r rune) InputEvent {
	return InputEvent{Kind: InputChar, Rune: r}
}
