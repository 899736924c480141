package ffi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventAccessors(t *testing.T) {
	key := Event{Type: EventKeyPressed, Data1: float64(KeyTab), Data2: float64(ModShift | ModCtrl)}
	require.Equal(t, KeyTab, key.Keycode())
	require.Equal(t, ModShift|ModCtrl, key.Modifiers())
	require.Zero(t, key.Char())

	char := Event{Type: EventCharInput, Data1: 'é'}
	require.Equal(t, 'é', char.Char())

	mouse := Event{Type: EventMousePressed, WindowID: 2, Data1: MouseRight}
	require.Equal(t, MouseRight, mouse.MouseButton())

	resize := Event{Type: EventResized, Data1: 800, Data2: 600}
	require.Equal(t, 800.0, resize.Width())
	require.Equal(t, 600.0, resize.Height())
}

func TestEventTypeString(t *testing.T) {
	require.Equal(t, "CloseRequested", EventCloseRequested.String())
	require.Equal(t, "Wake", EventWake.String())
	require.Equal(t, "EventType(77)", EventType(77).String())
}

func TestAppError(t *testing.T) {
	require.Equal(t, "ffi: failed to create event loop", (&AppError{Code: -2}).Error())
	require.Equal(t, "ffi: unknown error 9", (&AppError{Code: 9}).Error())
}
