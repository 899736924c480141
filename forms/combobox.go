package forms

import "slices"

const (
	listItemHeight       = 20
	defaultDropDownItems = 8
)

// ComboBox shows the selected item and opens a drop down list in a popup.
type ComboBox struct {
	Control

	items    []string
	selected int
	maxItems int

	popup *PopupWindow
	list  *listView

	selectedChanged handlerList[*ComboBox]
}

// NewComboBox creates a combo box with no selection.
func NewComboBox(items ...string) *ComboBox {
	cb := &ComboBox{items: items, selected: -1, maxItems: defaultDropDownItems}
	cb.init(KindComboBox, cb)
	cb.tabStop = true
	return cb
}

// Items returns a copy of the choices.
func (cb *ComboBox) Items() []string { return slices.Clone(cb.items) }

// SetItems replaces the choices and clears the selection.
func (cb *ComboBox) SetItems(items ...string) {
	cb.items = items
	cb.SetSelectedIndex(-1)
	cb.Invalidate()
}

func (cb *ComboBox) SelectedIndex() int { return cb.selected }

// SelectedItem returns the selected text, or "" with no selection.
func (cb *ComboBox) SelectedItem() string {
	if cb.selected < 0 {
		return ""
	}
	return cb.items[cb.selected]
}

// SetSelectedIndex selects items[i]; -1 clears the selection. Out of range
// indexes are ignored.
func (cb *ComboBox) SetSelectedIndex(i int) {
	if i < -1 || i >= len(cb.items) || i == cb.selected {
		return
	}
	cb.selected = i
	cb.text = cb.SelectedItem()
	cb.Invalidate()
	cb.selectedChanged.fire(cb)
}

// OnSelectedIndexChanged subscribes to selection changes.
func (cb *ComboBox) OnSelectedIndexChanged(fn func(*ComboBox)) {
	cb.selectedChanged.add(fn)
}

// SetMaxDropDownItems limits the visible rows of the drop down.
func (cb *ComboBox) SetMaxDropDownItems(n int) {
	if n > 0 {
		cb.maxItems = n
	}
}

// DroppedDown reports whether the drop down is open.
func (cb *ComboBox) DroppedDown() bool {
	return cb.popup != nil && cb.popup.IsOpen()
}

// ShowDropDown opens the drop down list below the combo box. It becomes the
// application's active popup.
func (cb *ComboBox) ShowDropDown() error {
	f := cb.FindForm()
	if f == nil {
		return ErrNotHosted
	}
	if cb.popup == nil || cb.popup.Owner() != f {
		cb.popup = f.Application().NewPopupWindow(f)
		cb.popup.SetOwnerControl(cb)
		cb.list = newListView(cb)
		cb.popup.AddControl(cb.list)
	}

	rows := max(min(len(cb.items), cb.maxItems), 1)
	size := Rect{Width: cb.bounds.Width, Height: rows * listItemHeight}
	cb.popup.SetBounds(size)
	cb.list.SetBounds(size)
	cb.list.highlight = cb.selected

	origin := cb.LogicalOrigin()
	return cb.popup.Show(Point{X: origin.X, Y: origin.Y + cb.bounds.Height})
}

// CloseDropDown hides the drop down list if it is open.
func (cb *ComboBox) CloseDropDown() {
	if cb.popup != nil {
		cb.popup.Hide()
	}
}

func (cb *ComboBox) onClick() {
	if cb.DroppedDown() {
		cb.CloseDropDown()
		return
	}
	cb.ShowDropDown()
}

func (cb *ComboBox) handleKey(ev InputEvent) bool {
	switch {
	case ev.Key == KeyF4, ev.Key == KeyDown && ev.Mods.Alt():
		cb.ShowDropDown()
	case ev.Key == KeyUp:
		if cb.selected > 0 {
			cb.SetSelectedIndex(cb.selected - 1)
		}
	case ev.Key == KeyDown:
		if cb.selected < len(cb.items)-1 {
			cb.SetSelectedIndex(cb.selected + 1)
		}
	default:
		return false
	}
	return true
}

// ============================================================================
// listView
// ============================================================================

// listView paints a combo box's items inside the drop down popup.
type listView struct {
	Control
	combo     *ComboBox
	highlight int
}

func newListView(cb *ComboBox) *listView {
	v := &listView{combo: cb, highlight: -1}
	v.init(KindListBox, v)
	return v
}

func (v *listView) itemAt(local Point) int {
	h := v.LogicalToDeviceUnits(listItemHeight)
	if h <= 0 || local.Y < 0 {
		return -1
	}
	i := local.Y / h
	if i >= len(v.combo.items) {
		return -1
	}
	return i
}

func (v *listView) setHighlight(i int) {
	if i == v.highlight {
		return
	}
	v.highlight = i
	v.Invalidate()
}

// commit selects item i and closes the drop down.
func (v *listView) commit(i int) {
	if i < 0 || i >= len(v.combo.items) {
		return
	}
	v.combo.SetSelectedIndex(i)
	if f := v.combo.FindForm(); f != nil {
		f.Application().ClosePopups(false, true)
	} else {
		v.combo.CloseDropDown()
	}
}

func (v *listView) handleMouse(ev InputEvent, local Point) {
	i := v.itemAt(local)
	switch ev.Kind {
	case InputMouseMove:
		if i >= 0 {
			v.setHighlight(i)
		}
	case InputMouseUp:
		v.commit(i)
	}
}

func (v *listView) handleKey(ev InputEvent) bool {
	n := len(v.combo.items)
	switch ev.Key {
	case KeyUp:
		if v.highlight > 0 {
			v.setHighlight(v.highlight - 1)
		}
	case KeyDown:
		if v.highlight < n-1 {
			v.setHighlight(v.highlight + 1)
		}
	case KeyHome:
		if n > 0 {
			v.setHighlight(0)
		}
	case KeyEnd:
		v.setHighlight(n - 1)
	case KeyEnter, KeySpace:
		v.commit(v.highlight)
	default:
		return false
	}
	return true
}
