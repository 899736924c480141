package forms

import (
	"fmt"
	"slices"
)

// PopupWindow is a transient overlay surface owned by a form, such as a
// combo box drop down or a menu. Tracked popups take the application's
// single active popup slot when shown; menus use untracked popups and are
// coordinated through the active menu slot instead.
type PopupWindow struct {
	Control

	win          surface
	owner        *Form
	ownerControl Element
	tracked      bool
	done         bool

	hidden signalList
	closed signalList
}

// NewPopupWindow creates a hidden popup owned by owner.
func (a *Application) NewPopupWindow(owner *Form) *PopupWindow {
	p := &PopupWindow{owner: owner, tracked: true}
	p.init(KindPopup, p)
	p.win = surface{app: a, root: p, popup: true}
	p.Control.surface = &p.win
	if owner != nil {
		owner.popups = append(owner.popups, p)
	}
	return p
}

// Owner returns the form the popup belongs to.
func (p *PopupWindow) Owner() *Form { return p.owner }

// OwnerControl returns the control that opened the popup, if any.
func (p *PopupWindow) OwnerControl() Element { return p.ownerControl }

// SetOwnerControl records the control that toggles the popup. Mouse presses
// on that control do not dismiss the popup.
func (p *PopupWindow) SetOwnerControl(el Element) { p.ownerControl = el }

// IsOpen reports whether the popup is showing.
func (p *PopupWindow) IsOpen() bool { return p.win.shown }

// Show opens the popup at location, in logical units relative to the
// owner's client area. Any other active popup is hidden first.
func (p *PopupWindow) Show(location Point) error {
	if p.done || p.owner == nil || p.owner.State() == FormClosed {
		return ErrFormClosed
	}
	app := p.win.app
	if p.tracked {
		app.setActivePopup(p)
	}

	p.bounds.X, p.bounds.Y = location.X, location.Y
	if p.win.impl == nil {
		impl, err := app.platform.CreatePopup(p.owner.Window(), popupHost{p}, WindowOptions{Bounds: p.bounds})
		if err != nil {
			if app.activePopup == p {
				app.activePopup = nil
			}
			return fmt.Errorf("forms: create popup: %w", err)
		}
		p.win.impl = impl
	} else {
		p.win.impl.SetBounds(p.bounds)
	}

	if !p.win.shown {
		p.win.shown = true
		p.win.impl.Show()
	}
	p.win.invalidate()
	return nil
}

// Hide closes the popup without destroying it. Hiding a hidden popup is a
// no-op.
func (p *PopupWindow) Hide() {
	if !p.win.shown {
		return
	}
	p.win.shown = false
	p.win.pressed = nil
	p.win.hovered = nil
	p.win.impl.Hide()
	if app := p.win.app; app.activePopup == p {
		app.activePopup = nil
	}
	p.hidden.fire()
}

// Close hides the popup and releases its platform window. Closing twice is
// a no-op.
func (p *PopupWindow) Close() {
	if p.done {
		return
	}
	p.done = true
	p.Hide()
	if p.win.impl != nil {
		p.win.impl.Close()
		p.win.impl = nil
	}
	if p.owner != nil {
		p.owner.popups = slices.DeleteFunc(p.owner.popups, func(o *PopupWindow) bool { return o == p })
	}
	p.closed.fire()
}

// OnHidden subscribes fn to the popup being hidden.
func (p *PopupWindow) OnHidden(fn func()) { p.hidden.add(fn) }

// OnClosed subscribes fn to the popup being closed. On a closed popup fn
// runs immediately.
func (p *PopupWindow) OnClosed(fn func()) {
	if p.done {
		if fn != nil {
			fn()
		}
		return
	}
	p.closed.add(fn)
}

// Window returns the platform popup, or nil before the first Show.
func (p *PopupWindow) Window() WindowImpl { return p.win.impl }

// HandleInput delivers input to the popup as if the platform had.
func (p *PopupWindow) HandleInput(ev InputEvent) {
	if p.win.shown {
		p.win.handleInput(ev)
	}
}

func (p *PopupWindow) handleKey(ev InputEvent) bool {
	for _, el := range p.children {
		if kh, ok := el.(keyHandler); ok && kh.handleKey(ev) {
			return true
		}
	}
	return false
}

type popupHost struct {
	p *PopupWindow
}

func (h popupHost) HandleInput(ev InputEvent) { h.p.HandleInput(ev) }
func (h popupHost) HandleResize(Size)         {}
func (h popupHost) HandleCloseRequest()       { h.p.Hide() }
func (h popupHost) HandleDeactivate()         {}
func (h popupHost) HandleExpose()             { h.p.Invalidate() }
