package forms

// The application holds one active popup and one active menu chain. Both
// slots are confined to the UI thread; taking a slot closes its previous
// holder first.

// ActiveMenu returns the root of the open menu chain, or nil.
func (a *Application) ActiveMenu() *Menu { return a.activeMenu }

// ActivePopup returns the open tracked popup, or nil.
func (a *Application) ActivePopup() *PopupWindow { return a.activePopup }

// ClosePopups deactivates the active menu chain when closeMenus is set and
// hides the active popup when closePopups is set. Either slot being empty
// is fine.
func (a *Application) ClosePopups(closeMenus, closePopups bool) {
	if closeMenus && a.activeMenu != nil {
		m := a.activeMenu
		a.activeMenu = nil
		m.Deactivate()
	}
	if closePopups && a.activePopup != nil {
		p := a.activePopup
		a.activePopup = nil
		p.Hide()
	}
}

// CloseAllPopups closes both the menu chain and the popup.
func (a *Application) CloseAllPopups() { a.ClosePopups(true, true) }

func (a *Application) setActivePopup(p *PopupWindow) {
	if prev := a.activePopup; prev != nil && prev != p {
		a.activePopup = nil
		prev.Hide()
	}
	a.activePopup = p
}

func (a *Application) setActiveMenu(m *Menu) {
	if prev := a.activeMenu; prev != nil && prev != m {
		a.activeMenu = nil
		prev.Deactivate()
	}
	a.activeMenu = m
}

// closeOverlaysOwnedBy closes the menu and popup that belong to f.
func (a *Application) closeOverlaysOwnedBy(f *Form) {
	if m := a.activeMenu; m != nil && m.owner == f {
		a.ClosePopups(true, false)
	}
	if p := a.activePopup; p != nil && p.owner == f {
		a.ClosePopups(false, true)
	}
}

// dismissForMouseDown closes overlays when a form is pressed outside them.
// A press on the control that opened the popup leaves the popup alone so
// the control can toggle it itself.
func (a *Application) dismissForMouseDown(target Element) {
	closePopup := a.activePopup != nil
	if closePopup {
		if oc := a.activePopup.ownerControl; oc != nil && oc.Base().Contains(target) {
			closePopup = false
		}
	}
	a.ClosePopups(true, closePopup)
}

// routeOverlayKey gives the open menu chain, then the active popup, first
// look at keyboard input. It reports whether the event was consumed. An open
// menu captures every key; Escape closes everything.
func (a *Application) routeOverlayKey(ev InputEvent) bool {
	if a.activeMenu == nil && a.activePopup == nil {
		return false
	}
	if ev.Kind == InputKeyDown && ev.Key == KeyEscape {
		a.ClosePopups(true, true)
		return true
	}
	if m := a.activeMenu; m != nil {
		d := m.Deepest()
		switch ev.Kind {
		case InputKeyDown:
			d.handleKey(ev)
		case InputChar:
			d.handleChar(ev.Rune)
		}
		return true
	}
	if ev.Kind == InputKeyDown && ev.Key != KeyTab {
		return a.activePopup.handleKey(ev)
	}
	return false
}
