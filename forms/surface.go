package forms

// surface is the state shared by every top-level paint target: forms and
// popup windows. It owns the platform window, the paint queue flag, focus,
// and mouse capture for the tree rooted at root.
type surface struct {
	app   *Application
	root  Element
	impl  WindowImpl
	popup bool

	shown   bool
	queued  bool
	cues    bool
	focused Element
	pressed Element
	hovered Element
}

func (s *surface) scaleFactor() float64 {
	if s.app != nil && s.app.scaleOverride > 0 {
		return s.app.scaleOverride
	}
	if s.impl != nil {
		if f := s.impl.ScaleFactor(); f > 0 {
			return f
		}
	}
	return 1
}

func (s *surface) showFocusCues() bool {
	return s.cues || (s.app != nil && s.app.alwaysFocusCues)
}

// invalidate queues the surface for the next idle paint. Hidden surfaces are
// painted when they are shown instead.
func (s *surface) invalidate() {
	if s.queued || !s.shown || s.app == nil {
		return
	}
	s.queued = true
	s.app.queuePaint(s)
}

// ============================================================================
// Paint
// ============================================================================

func (s *surface) paint() {
	s.queued = false
	if !s.shown || s.impl == nil {
		return
	}
	scale := s.scaleFactor()
	theme := s.app.Theme()
	s.impl.Paint(func(cv Canvas) {
		s.paintElement(cv, s.root, scale, theme, true)
	})
}

func (s *surface) paintElement(cv Canvas, el Element, scale float64, theme *Theme, root bool) {
	c := el.Base()
	if !c.visible {
		return
	}
	b := c.ScaledBounds()
	local := Rect{Width: b.Width, Height: b.Height}

	cv.Save()
	if !root {
		cv.Translate(b.X, b.Y)
	}
	cv.ClipRect(local)
	s.app.renderers.Render(el, &PaintEventArgs{
		Canvas:        cv,
		ClipRectangle: local,
		ScaleFactor:   scale,
		Theme:         theme,
	})
	for _, child := range c.children {
		s.paintElement(cv, child, scale, theme, false)
	}
	cv.Restore()
}

// ============================================================================
// Focus
// ============================================================================

func (s *surface) setFocus(el Element) {
	if s.focused == el {
		return
	}
	old := s.focused
	s.focused = el
	if old != nil {
		old.Base().Invalidate()
	}
	if el != nil {
		el.Base().Invalidate()
	}
}

// releaseSubtree drops focus, press and hover references into c's subtree.
func (s *surface) releaseSubtree(c *Control) {
	if c.Contains(s.focused) {
		s.setFocus(nil)
	}
	if c.Contains(s.pressed) {
		s.pressed = nil
	}
	if c.Contains(s.hovered) {
		s.hovered = nil
	}
}

// tabOrder lists the selectable controls in depth first insertion order.
func (s *surface) tabOrder() []Element {
	var out []Element
	var walk func(c *Control)
	walk = func(c *Control) {
		for _, el := range c.children {
			child := el.Base()
			if !child.visible || !child.enabled {
				continue
			}
			if child.CanSelect() {
				out = append(out, el)
			}
			walk(child)
		}
	}
	walk(s.root.Base())
	return out
}

// nextInTabOrder returns the control after (or before) current, wrapping
// around. With no current control it starts at the first (or last) one.
func (s *surface) nextInTabOrder(current Element, forward bool) Element {
	order := s.tabOrder()
	if len(order) == 0 {
		return nil
	}
	idx := -1
	for i, el := range order {
		if el == current {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && forward:
		return order[0]
	case idx < 0:
		return order[len(order)-1]
	case forward:
		return order[(idx+1)%len(order)]
	default:
		return order[(idx-1+len(order))%len(order)]
	}
}

// selectNext moves focus along the tab order. It reports whether focus moved.
func (s *surface) selectNext(forward bool) bool {
	next := s.nextInTabOrder(s.focused, forward)
	if next == nil || next == s.focused {
		return false
	}
	s.setFocus(next)
	return true
}

// ============================================================================
// Input Routing
// ============================================================================

// mouseHandler is implemented by controls that track the pointer themselves,
// such as list and menu views. Points are device pixels relative to the
// control.
type mouseHandler interface {
	handleMouse(ev InputEvent, local Point)
}

func (s *surface) handleInput(ev InputEvent) {
	switch ev.Kind {
	case InputMouseDown:
		s.mouseDown(ev)
	case InputMouseUp:
		s.mouseUp(ev)
	case InputMouseMove:
		s.mouseMove(ev)
	case InputKeyDown, InputChar:
		if s.app.routeOverlayKey(ev) {
			return
		}
		if ev.Kind == InputKeyDown {
			s.keyDown(ev)
		}
	}
}

func (s *surface) hitTest(p Point) Element {
	return s.root.Base().HitTest(p)
}

func (s *surface) mouseDown(ev InputEvent) {
	target := s.hitTest(ev.Point())
	if !s.popup {
		s.app.dismissForMouseDown(target)
	}
	s.pressed = target
	if target == nil {
		return
	}
	t := target.Base()
	if t.CanSelect() {
		s.setFocus(target)
	}
	if mh, ok := target.(mouseHandler); ok && t.enabled {
		mh.handleMouse(ev, ev.Point().Sub(t.DeviceOrigin()))
	}
}

func (s *surface) mouseUp(ev InputEvent) {
	target := s.hitTest(ev.Point())
	pressed := s.pressed
	s.pressed = nil
	if target == nil || target != pressed {
		return
	}
	t := target.Base()
	if mh, ok := target.(mouseHandler); ok {
		if t.enabled {
			mh.handleMouse(ev, ev.Point().Sub(t.DeviceOrigin()))
		}
		return
	}
	t.PerformClick()
}

func (s *surface) mouseMove(ev InputEvent) {
	target := s.hitTest(ev.Point())
	s.hovered = target
	if target == nil {
		return
	}
	t := target.Base()
	if mh, ok := target.(mouseHandler); ok && t.enabled {
		mh.handleMouse(ev, ev.Point().Sub(t.DeviceOrigin()))
	}
}

func (s *surface) keyDown(ev InputEvent) {
	switch ev.Key {
	case KeyTab:
		s.app.ClosePopups(true, true)
		s.enableFocusCues()
		s.selectNext(!ev.Mods.Shift())
		return
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		s.enableFocusCues()
	}
	if s.focused == nil {
		return
	}
	if kh, ok := s.focused.(keyHandler); ok && s.focused.Base().enabled {
		kh.handleKey(ev)
	}
}

func (s *surface) enableFocusCues() {
	if s.cues {
		return
	}
	s.cues = true
	if s.focused != nil {
		s.focused.Base().Invalidate()
	}
}
