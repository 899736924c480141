package forms

import "context"

// ============================================================================
// Platform Contract
// ============================================================================

// Threading is the platform side of the UI thread. RunLoop pumps native
// events on the calling goroutine until ctx is cancelled. Signal may be
// called from any goroutine and must cause the signaled handler to run on the
// UI thread soon; repeated signals may be coalesced.
type Threading interface {
	RunLoop(ctx context.Context) error
	Signal()
	SetSignaledHandler(fn func())
}

// WindowOptions describes a window or popup to create. Bounds are logical
// units; for popups the location is relative to the owner's client area.
type WindowOptions struct {
	Title  string
	Bounds Rect
}

// WindowImpl is a platform window. Methods are called on the UI thread.
type WindowImpl interface {
	Show()
	Hide()
	Close()
	SetTitle(title string)
	SetBounds(r Rect)
	ScaleFactor() float64
	// Paint hands fn a canvas covering the client area and presents the
	// result once fn returns.
	Paint(fn func(Canvas))
}

// WindowHost receives notifications from a platform window. Calls happen on
// the UI thread.
type WindowHost interface {
	HandleInput(ev InputEvent)
	// HandleResize reports the new client size in device pixels.
	HandleResize(size Size)
	HandleCloseRequest()
	// HandleDeactivate reports that the window lost activation.
	HandleDeactivate()
	// HandleExpose asks for a full repaint.
	HandleExpose()
}

// Platform creates windows and drives the UI thread.
type Platform interface {
	Threading
	CreateWindow(host WindowHost, opts WindowOptions) (WindowImpl, error)
	CreatePopup(owner WindowImpl, host WindowHost, opts WindowOptions) (WindowImpl, error)
}
