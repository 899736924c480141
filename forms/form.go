package forms

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// FormState tracks a form's lifecycle. Transitions only move forward:
// Created → Shown → Closed, or Created → Closed.
type FormState uint8

const (
	FormCreated FormState = iota
	FormShown
	FormClosed
)

func (s FormState) String() string {
	switch s {
	case FormCreated:
		return "Created"
	case FormShown:
		return "Shown"
	case FormClosed:
		return "Closed"
	}
	return "FormState(?)"
}

// Closeable is something whose closing can end the main loop.
type Closeable interface {
	OnClosed(fn func())
}

// Default client size of a new form, in logical units.
const (
	defaultFormWidth  = 640
	defaultFormHeight = 480
)

// Form is a top-level window and the root of a control tree.
type Form struct {
	Control

	win   surface
	uid   uuid.UUID
	title string
	state FormState

	closed       signalList
	themeChanged signalList

	// popups owned by the form; closed with it.
	popups []*PopupWindow
}

// NewForm creates a hidden form owned by a.
func (a *Application) NewForm(title string) *Form {
	f := &Form{uid: uuid.New(), title: title}
	f.init(KindForm, f)
	f.bounds = Rect{Width: defaultFormWidth, Height: defaultFormHeight}
	f.win = surface{app: a, root: f}
	f.Control.surface = &f.win
	return f
}

// InstanceID returns the form's unique identifier.
func (f *Form) InstanceID() uuid.UUID { return f.uid }

func (f *Form) Title() string             { return f.title }
func (f *Form) State() FormState          { return f.state }
func (f *Form) Application() *Application { return f.win.app }

// IsShown reports whether the form is currently visible on screen.
func (f *Form) IsShown() bool { return f.win.shown }

func (f *Form) SetTitle(t string) {
	f.title = t
	if f.win.impl != nil {
		f.win.impl.SetTitle(t)
	}
}

// SetClientSize resizes the form's client area in logical units.
func (f *Form) SetClientSize(s Size) {
	f.SetBounds(Rect{X: f.bounds.X, Y: f.bounds.Y, Width: s.Width, Height: s.Height})
	if f.win.impl != nil {
		f.win.impl.SetBounds(f.bounds)
	}
}

// Show creates the platform window on first use and makes the form visible.
// A closed form cannot be shown again.
func (f *Form) Show() error {
	if f.state == FormClosed {
		return ErrFormClosed
	}
	app := f.win.app
	if f.win.impl == nil {
		impl, err := app.platform.CreateWindow(formHost{f}, WindowOptions{Title: f.title, Bounds: f.bounds})
		if err != nil {
			return fmt.Errorf("forms: create window %q: %w", f.title, err)
		}
		f.win.impl = impl
	}
	if f.state == FormCreated {
		f.state = FormShown
		app.OpenForms().add(f)
	}
	if f.win.shown {
		return nil
	}
	f.win.shown = true
	f.win.impl.Show()
	if f.win.focused == nil {
		if first := f.win.nextInTabOrder(nil, true); first != nil {
			f.win.setFocus(first)
		}
	}
	f.win.invalidate()
	app.logger.Debug("form shown", "title", f.title, "id", f.uid)
	return nil
}

// Hide makes the form invisible without closing it. Overlays it owns are
// dismissed.
func (f *Form) Hide() {
	if !f.win.shown {
		return
	}
	f.win.app.closeOverlaysOwnedBy(f)
	f.win.shown = false
	f.win.impl.Hide()
}

// Close closes the form. Overlays it owns are dismissed and their windows
// released, its controls are disposed and OnClosed subscribers run in
// subscription order. Closing twice is a no-op.
func (f *Form) Close() {
	if f.state == FormClosed {
		return
	}
	app := f.win.app
	f.state = FormClosed
	app.closeOverlaysOwnedBy(f)
	for _, p := range slices.Clone(f.popups) {
		p.Close()
	}
	f.popups = nil
	app.OpenForms().remove(f)

	f.win.shown = false
	if f.win.impl != nil {
		f.win.impl.Close()
		f.win.impl = nil
	}
	f.win.focused = nil
	f.win.pressed = nil
	f.win.hovered = nil
	for _, el := range f.children {
		el.Base().dispose()
	}
	f.children = nil

	app.logger.Debug("form closed", "title", f.title, "id", f.uid)
	f.closed.fire()
}

// OnClosed subscribes fn to the form closing. On a closed form fn runs
// immediately.
func (f *Form) OnClosed(fn func()) {
	if f.state == FormClosed {
		if fn != nil {
			fn()
		}
		return
	}
	f.closed.add(fn)
}

// OnThemeChanged subscribes fn to theme change notifications.
func (f *Form) OnThemeChanged(fn func()) { f.themeChanged.add(fn) }

func (f *Form) notifyThemeChanged() {
	f.themeChanged.fire()
	f.Invalidate()
}

// FocusedControl returns the control with keyboard focus, if any.
func (f *Form) FocusedControl() Element { return f.win.focused }

// SelectNextControl moves focus along the tab order and reports whether it
// moved.
func (f *Form) SelectNextControl(forward bool) bool {
	return f.win.selectNext(forward)
}

// Window returns the platform window, or nil before the first Show and after
// Close.
func (f *Form) Window() WindowImpl { return f.win.impl }

// formHost adapts platform notifications to the form.
type formHost struct {
	f *Form
}

func (h formHost) HandleInput(ev InputEvent) {
	if h.f.state == FormClosed {
		return
	}
	h.f.win.handleInput(ev)
}

func (h formHost) HandleResize(size Size) {
	s := h.f.win.scaleFactor()
	h.f.SetBounds(Rect{
		X:      h.f.bounds.X,
		Y:      h.f.bounds.Y,
		Width:  DeviceToLogical(size.Width, s),
		Height: DeviceToLogical(size.Height, s),
	})
}

func (h formHost) HandleCloseRequest() { h.f.Close() }

func (h formHost) HandleDeactivate() { h.f.win.app.ClosePopups(true, true) }

func (h formHost) HandleExpose() { h.f.Invalidate() }

// ============================================================================
// Open Forms
// ============================================================================

// FormCollection is the ordered set of forms that have been shown and not
// yet closed.
type FormCollection struct {
	forms []*Form
}

func (c *FormCollection) Len() int { return len(c.forms) }

// At returns the i'th form in the order forms were first shown.
func (c *FormCollection) At(i int) *Form { return c.forms[i] }

// All returns a copy of the collection.
func (c *FormCollection) All() []*Form { return slices.Clone(c.forms) }

func (c *FormCollection) Contains(f *Form) bool { return slices.Contains(c.forms, f) }

func (c *FormCollection) add(f *Form) {
	if !c.Contains(f) {
		c.forms = append(c.forms, f)
	}
}

func (c *FormCollection) remove(f *Form) {
	c.forms = slices.DeleteFunc(c.forms, func(x *Form) bool { return x == f })
}
