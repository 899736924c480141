package forms

// ============================================================================
// Panel
// ============================================================================

// Panel groups child controls. It paints its back color only.
type Panel struct {
	Control
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	p := &Panel{}
	p.init(KindPanel, p)
	return p
}

// ============================================================================
// Label
// ============================================================================

// Label displays read-only text.
type Label struct {
	Control
}

// NewLabel creates a label with the given text.
func NewLabel(text string) *Label {
	l := &Label{}
	l.init(KindLabel, l)
	l.text = text
	return l
}

// ============================================================================
// Button
// ============================================================================

// Button raises click when pressed with the mouse, Space or Enter.
type Button struct {
	Control
}

// NewButton creates a push button.
func NewButton(text string) *Button {
	b := &Button{}
	b.init(KindButton, b)
	b.text = text
	b.tabStop = true
	b.textAlign = MiddleCenter
	return b
}

func (b *Button) handleKey(ev InputEvent) bool {
	if ev.Key == KeySpace || ev.Key == KeyEnter {
		b.PerformClick()
		return true
	}
	return false
}

// ============================================================================
// CheckBox
// ============================================================================

// CheckBox is a two or three state toggle.
type CheckBox struct {
	Control

	state      CheckState
	threeState bool
	autoCheck  bool

	checkedChanged handlerList[*CheckBox]
}

// NewCheckBox creates an unchecked, auto-checking checkbox.
func NewCheckBox(text string) *CheckBox {
	cb := &CheckBox{autoCheck: true}
	cb.init(KindCheckBox, cb)
	cb.text = text
	cb.tabStop = true
	return cb
}

func (cb *CheckBox) CheckState() CheckState { return cb.state }
func (cb *CheckBox) Checked() bool          { return cb.state != Unchecked }
func (cb *CheckBox) ThreeState() bool       { return cb.threeState }
func (cb *CheckBox) AutoCheck() bool        { return cb.autoCheck }

func (cb *CheckBox) SetThreeState(v bool) { cb.threeState = v }
func (cb *CheckBox) SetAutoCheck(v bool)  { cb.autoCheck = v }

// SetCheckState changes the state and notifies subscribers when it differs.
func (cb *CheckBox) SetCheckState(s CheckState) {
	if cb.state == s {
		return
	}
	cb.state = s
	cb.Invalidate()
	cb.checkedChanged.fire(cb)
}

// SetChecked sets Checked or Unchecked.
func (cb *CheckBox) SetChecked(v bool) {
	if v {
		cb.SetCheckState(Checked)
	} else {
		cb.SetCheckState(Unchecked)
	}
}

// OnCheckedChanged subscribes to state changes.
func (cb *CheckBox) OnCheckedChanged(fn func(*CheckBox)) {
	cb.checkedChanged.add(fn)
}

func (cb *CheckBox) onClick() {
	if !cb.autoCheck {
		return
	}
	switch cb.state {
	case Unchecked:
		cb.SetCheckState(Checked)
	case Checked:
		if cb.threeState {
			cb.SetCheckState(Indeterminate)
		} else {
			cb.SetCheckState(Unchecked)
		}
	default:
		cb.SetCheckState(Unchecked)
	}
}

func (cb *CheckBox) handleKey(ev InputEvent) bool {
	if ev.Key == KeySpace {
		cb.PerformClick()
		return true
	}
	return false
}

// ============================================================================
// RadioButton
// ============================================================================

// RadioButton is a mutually exclusive choice among its sibling radio buttons.
type RadioButton struct {
	Control

	checked   bool
	autoCheck bool

	checkedChanged handlerList[*RadioButton]
}

// NewRadioButton creates an unchecked radio button.
func NewRadioButton(text string) *RadioButton {
	rb := &RadioButton{autoCheck: true}
	rb.init(KindRadioButton, rb)
	rb.text = text
	rb.tabStop = true
	return rb
}

func (rb *RadioButton) Checked() bool       { return rb.checked }
func (rb *RadioButton) AutoCheck() bool     { return rb.autoCheck }
func (rb *RadioButton) SetAutoCheck(v bool) { rb.autoCheck = v }

// SetChecked checks or unchecks the button. Checking it unchecks every
// other radio button with the same parent.
func (rb *RadioButton) SetChecked(v bool) {
	if rb.checked == v {
		return
	}
	rb.checked = v
	if v {
		for _, sib := range rb.siblings() {
			sib.SetChecked(false)
		}
	}
	rb.Invalidate()
	rb.checkedChanged.fire(rb)
}

// OnCheckedChanged subscribes to check changes.
func (rb *RadioButton) OnCheckedChanged(fn func(*RadioButton)) {
	rb.checkedChanged.add(fn)
}

func (rb *RadioButton) siblings() []*RadioButton {
	if rb.parent == nil {
		return nil
	}
	var out []*RadioButton
	for _, el := range rb.parent.children {
		if sib, ok := el.(*RadioButton); ok && sib != rb {
			out = append(out, sib)
		}
	}
	return out
}

// group returns the radio buttons sharing rb's parent, rb included, in
// child order.
func (rb *RadioButton) group() []*RadioButton {
	if rb.parent == nil {
		return []*RadioButton{rb}
	}
	var out []*RadioButton
	for _, el := range rb.parent.children {
		if r, ok := el.(*RadioButton); ok {
			out = append(out, r)
		}
	}
	return out
}

func (rb *RadioButton) onClick() {
	if rb.autoCheck {
		rb.SetChecked(true)
	}
}

func (rb *RadioButton) handleKey(ev InputEvent) bool {
	switch ev.Key {
	case KeySpace:
		rb.PerformClick()
		return true
	case KeyUp, KeyLeft:
		return rb.moveInGroup(-1)
	case KeyDown, KeyRight:
		return rb.moveInGroup(1)
	}
	return false
}

// moveInGroup focuses and checks the next selectable radio button in the
// given direction, wrapping around.
func (rb *RadioButton) moveInGroup(dir int) bool {
	group := rb.group()
	idx := -1
	for i, r := range group {
		if r == rb {
			idx = i
			break
		}
	}
	for step := 1; step < len(group); step++ {
		next := group[(idx+dir*step+len(group)*step)%len(group)]
		if next.CanSelect() {
			next.Select()
			next.PerformClick()
			return true
		}
	}
	return false
}
