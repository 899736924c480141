package forms

import (
	"image"
	"image/color"
	"slices"
	"sync/atomic"
)

// ControlID uniquely identifies a control for the lifetime of the process.
type ControlID uint64

var controlIDCounter atomic.Uint64

func newControlID() ControlID {
	return ControlID(controlIDCounter.Add(1))
}

// ControlKind selects the renderer used for a control.
type ControlKind string

const (
	KindControl     ControlKind = "control"
	KindForm        ControlKind = "form"
	KindPopup       ControlKind = "popup"
	KindPanel       ControlKind = "panel"
	KindLabel       ControlKind = "label"
	KindButton      ControlKind = "button"
	KindCheckBox    ControlKind = "checkbox"
	KindRadioButton ControlKind = "radiobutton"
	KindComboBox    ControlKind = "combobox"
	KindListBox     ControlKind = "listbox"
	KindMenu        ControlKind = "menu"
)

// Element is implemented by every control type. Base returns the embedded
// Control that carries the shared state.
type Element interface {
	Base() *Control
}

// ============================================================================
// Control
// ============================================================================

// Control is the shared state of every element in a control tree. Concrete
// controls embed it. A Control is confined to the UI thread.
//
// Bounds are logical units relative to the parent. The device size used for
// painting is the logical size multiplied by the surface's scale factor.
type Control struct {
	id   ControlID
	kind ControlKind
	name string
	self Element

	parent   *Control
	children []Element
	surface  *surface

	bounds       Rect
	text         string
	image        image.Image
	textAlign    ContentAlignment
	imageAlign   ContentAlignment
	autoEllipsis bool
	foreColor    color.Color
	backColor    color.Color

	enabled  bool
	visible  bool
	tabStop  bool
	disposed bool

	click handlerList[Element]
}

// NewControl creates a plain control. Concrete types call init instead.
func NewControl() *Control {
	c := &Control{}
	c.init(KindControl, c)
	return c
}

func (c *Control) init(kind ControlKind, self Element) {
	c.id = newControlID()
	c.kind = kind
	c.self = self
	c.enabled = true
	c.visible = true
	c.textAlign = MiddleLeft
	c.imageAlign = MiddleLeft
}

// Base returns c.
func (c *Control) Base() *Control { return c }

// Element returns the concrete element wrapping c.
func (c *Control) Element() Element { return c.self }

func (c *Control) ID() ControlID      { return c.id }
func (c *Control) Kind() ControlKind  { return c.kind }
func (c *Control) Name() string       { return c.name }
func (c *Control) SetName(n string)   { c.name = n }
func (c *Control) IsDisposed() bool   { return c.disposed }
func (c *Control) Parent() *Control   { return c.parent }
func (c *Control) Bounds() Rect       { return c.bounds }
func (c *Control) Location() Point    { return c.bounds.Location() }
func (c *Control) Size() Size         { return c.bounds.Size() }
func (c *Control) Width() int         { return c.bounds.Width }
func (c *Control) Height() int        { return c.bounds.Height }
func (c *Control) Text() string       { return c.text }
func (c *Control) Image() image.Image { return c.image }
func (c *Control) Enabled() bool      { return c.enabled }
func (c *Control) Visible() bool      { return c.visible }
func (c *Control) TabStop() bool      { return c.tabStop }
func (c *Control) AutoEllipsis() bool { return c.autoEllipsis }

func (c *Control) TextAlign() ContentAlignment  { return c.textAlign }
func (c *Control) ImageAlign() ContentAlignment { return c.imageAlign }

// ForeColor returns the text color override, or nil to use the theme.
func (c *Control) ForeColor() color.Color { return c.foreColor }

// BackColor returns the background override, or nil to use the theme.
func (c *Control) BackColor() color.Color { return c.backColor }

// SetBounds moves and resizes the control.
func (c *Control) SetBounds(r Rect) {
	if c.bounds == r {
		return
	}
	c.bounds = r
	c.Invalidate()
}

func (c *Control) SetText(s string) {
	if c.text == s {
		return
	}
	c.text = s
	c.Invalidate()
}

func (c *Control) SetImage(img image.Image) {
	c.image = img
	c.Invalidate()
}

func (c *Control) SetTextAlign(a ContentAlignment) {
	c.textAlign = a
	c.Invalidate()
}

func (c *Control) SetImageAlign(a ContentAlignment) {
	c.imageAlign = a
	c.Invalidate()
}

func (c *Control) SetAutoEllipsis(v bool) {
	c.autoEllipsis = v
	c.Invalidate()
}

func (c *Control) SetForeColor(col color.Color) {
	c.foreColor = col
	c.Invalidate()
}

func (c *Control) SetBackColor(col color.Color) {
	c.backColor = col
	c.Invalidate()
}

func (c *Control) SetTabStop(v bool) { c.tabStop = v }

// SetEnabled enables or disables the control. Disabling the focused control
// moves focus off it.
func (c *Control) SetEnabled(v bool) {
	if c.enabled == v {
		return
	}
	c.enabled = v
	if !v && c.surface != nil {
		c.surface.releaseSubtree(c)
	}
	c.Invalidate()
}

func (c *Control) SetVisible(v bool) {
	if c.visible == v {
		return
	}
	c.visible = v
	if !v && c.surface != nil {
		c.surface.releaseSubtree(c)
	}
	c.Invalidate()
}

// ============================================================================
// Scaling
// ============================================================================

// ScaleFactor returns the device scale of the surface hosting the control,
// or 1 while detached.
func (c *Control) ScaleFactor() float64 {
	if c.surface == nil {
		return 1
	}
	return c.surface.scaleFactor()
}

// LogicalToDeviceUnits scales v by the control's scale factor.
func (c *Control) LogicalToDeviceUnits(v int) int {
	return ScaleLogical(v, c.ScaleFactor())
}

// ScaledBounds returns the bounds in device pixels relative to the parent.
func (c *Control) ScaledBounds() Rect {
	s := c.ScaleFactor()
	return Rect{
		X:      ScaleLogical(c.bounds.X, s),
		Y:      ScaleLogical(c.bounds.Y, s),
		Width:  ScaleLogical(c.bounds.Width, s),
		Height: ScaleLogical(c.bounds.Height, s),
	}
}

func (c *Control) ScaledWidth() int  { return ScaleLogical(c.bounds.Width, c.ScaleFactor()) }
func (c *Control) ScaledHeight() int { return ScaleLogical(c.bounds.Height, c.ScaleFactor()) }

// ClientRectangle is the control's own device area.
func (c *Control) ClientRectangle() Rect {
	return Rect{Width: c.ScaledWidth(), Height: c.ScaledHeight()}
}

// DeviceOrigin returns the control's top left corner in device pixels
// relative to the surface it is hosted on.
func (c *Control) DeviceOrigin() Point {
	var p Point
	for n := c; n != nil && n.parent != nil; n = n.parent {
		p = p.Add(n.ScaledBounds().Location())
	}
	return p
}

// LogicalOrigin returns the control's top left corner in logical units
// relative to the surface it is hosted on.
func (c *Control) LogicalOrigin() Point {
	var p Point
	for n := c; n != nil && n.parent != nil; n = n.parent {
		p = p.Add(n.bounds.Location())
	}
	return p
}

// ============================================================================
// Tree
// ============================================================================

// Children returns a copy of the child list in z-order, back to front.
func (c *Control) Children() []Element {
	return slices.Clone(c.children)
}

// AddControl appends children. A child already parented elsewhere is moved.
// Disposed children are ignored.
func (c *Control) AddControl(children ...Element) {
	for _, el := range children {
		child := el.Base()
		if child.disposed || child == c {
			continue
		}
		if child.parent != nil {
			child.parent.detach(child)
		}
		child.parent = c
		c.children = append(c.children, el)
		child.attach(c.surface)
	}
	c.Invalidate()
}

// RemoveControl removes child from c and disposes it along with its
// subtree. Removing a control that is not a child is a no-op.
func (c *Control) RemoveControl(el Element) {
	child := el.Base()
	if child.parent != c {
		return
	}
	c.detach(child)
	child.dispose()
	c.Invalidate()
}

func (c *Control) detach(child *Control) {
	c.children = slices.DeleteFunc(c.children, func(e Element) bool { return e.Base() == child })
	if child.surface != nil {
		child.surface.releaseSubtree(child)
	}
	child.parent = nil
	child.attach(nil)
}

func (c *Control) attach(s *surface) {
	c.surface = s
	for _, el := range c.children {
		el.Base().attach(s)
	}
}

func (c *Control) dispose() {
	if c.disposed {
		return
	}
	for _, el := range c.children {
		el.Base().dispose()
	}
	c.disposed = true
	c.surface = nil
	c.parent = nil
}

// Contains reports whether el is c or one of its descendants.
func (c *Control) Contains(el Element) bool {
	if el == nil {
		return false
	}
	for n := el.Base(); n != nil; n = n.parent {
		if n == c {
			return true
		}
	}
	return false
}

// FindForm returns the form hosting the control, or nil when the control is
// detached or hosted by a popup.
func (c *Control) FindForm() *Form {
	if c.surface == nil {
		return nil
	}
	f, _ := c.surface.root.(*Form)
	return f
}

// ============================================================================
// Invalidation and Hit Testing
// ============================================================================

// Invalidate schedules a repaint of the surface hosting the control. Detached
// and disposed controls are ignored.
func (c *Control) Invalidate() {
	if c.disposed || c.surface == nil {
		return
	}
	c.surface.invalidate()
}

// HitTest returns the deepest visible element containing p, where p is in
// device pixels relative to c. Later children are on top. Returns nil when p
// is outside c.
func (c *Control) HitTest(p Point) Element {
	if !c.visible || !c.ClientRectangle().Contains(p) {
		return nil
	}
	for i := len(c.children) - 1; i >= 0; i-- {
		child := c.children[i].Base()
		if !child.visible {
			continue
		}
		origin := child.ScaledBounds().Location()
		if hit := child.HitTest(p.Sub(origin)); hit != nil {
			return hit
		}
	}
	return c.self
}

// ============================================================================
// Focus and Click
// ============================================================================

// CanSelect reports whether the control can take keyboard focus.
func (c *Control) CanSelect() bool {
	if !c.tabStop || c.disposed {
		return false
	}
	for n := c; n != nil; n = n.parent {
		if !n.enabled || !n.visible {
			return false
		}
	}
	return true
}

// Selected reports whether the control has keyboard focus on its surface.
func (c *Control) Selected() bool {
	return c.surface != nil && c.surface.focused != nil && c.surface.focused.Base() == c
}

// Select gives the control keyboard focus. It returns false if the control
// cannot take focus.
func (c *Control) Select() bool {
	if c.surface == nil || !c.CanSelect() {
		return false
	}
	c.surface.setFocus(c.self)
	return true
}

// ShowFocusCues reports whether focus rectangles should be drawn. Cues turn
// on with the first keyboard navigation on the surface.
func (c *Control) ShowFocusCues() bool {
	return c.surface != nil && c.surface.showFocusCues()
}

// OnClick subscribes fn to clicks. Handlers run after the control's own
// click behavior, in subscription order.
func (c *Control) OnClick(fn func(Element)) {
	c.click.add(fn)
}

// defaultClicker is implemented by controls with built-in click behavior.
type defaultClicker interface {
	onClick()
}

// PerformClick runs the control's click behavior and notifies subscribers.
// Disabled and disposed controls ignore clicks.
func (c *Control) PerformClick() {
	if c.disposed || !c.enabled {
		return
	}
	if dc, ok := c.self.(defaultClicker); ok {
		dc.onClick()
	}
	c.click.fire(c.self)
}

// keyHandler is implemented by controls that consume keys while focused.
type keyHandler interface {
	handleKey(ev InputEvent) bool
}
