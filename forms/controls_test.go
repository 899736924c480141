package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckBoxCycle(t *testing.T) {
	tests := []struct {
		name       string
		threeState bool
		want       []CheckState
	}{
		{name: "two state", want: []CheckState{Checked, Unchecked, Checked}},
		{name: "three state", threeState: true, want: []CheckState{Checked, Indeterminate, Unchecked}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCheckBox("x")
			cb.SetThreeState(tt.threeState)
			var changes int
			cb.OnCheckedChanged(func(*CheckBox) { changes++ })

			for i, want := range tt.want {
				cb.PerformClick()
				require.Equal(t, want, cb.CheckState(), "click %d", i+1)
			}
			require.Equal(t, len(tt.want), changes)
		})
	}
}

func TestCheckBoxIgnoresClicksWhenDisabled(t *testing.T) {
	cb := NewCheckBox("x")
	cb.SetEnabled(false)
	cb.PerformClick()
	require.Equal(t, Unchecked, cb.CheckState())

	cb.SetEnabled(true)
	cb.SetAutoCheck(false)
	var clicks int
	cb.OnClick(func(Element) { clicks++ })
	cb.PerformClick()
	require.Equal(t, Unchecked, cb.CheckState())
	require.Equal(t, 1, clicks)
}

func TestRadioButtonsAreExclusive(t *testing.T) {
	panel := NewPanel()
	a, b, c := NewRadioButton("a"), NewRadioButton("b"), NewRadioButton("c")
	panel.AddControl(a, b, c)

	a.SetChecked(true)
	b.PerformClick()
	require.False(t, a.Checked())
	require.True(t, b.Checked())
	require.False(t, c.Checked())

	other := NewPanel()
	d := NewRadioButton("d")
	other.AddControl(d)
	d.SetChecked(true)
	require.True(t, b.Checked(), "groups are per parent")
}

func TestRadioArrowKeysMoveWithinGroup(t *testing.T) {
	app, p := newTestApp(t)
	a, b := NewRadioButton("a"), NewRadioButton("b")
	a.SetBounds(NewRect(0, 0, 100, 24))
	b.SetBounds(NewRect(0, 30, 100, 24))
	f, w := showForm(t, app, p, a, b)
	require.Equal(t, Element(a), f.FocusedControl())

	w.key(KeyDown, 0)
	require.Equal(t, Element(b), f.FocusedControl())
	require.True(t, b.Checked())

	w.key(KeyDown, 0)
	require.Equal(t, Element(a), f.FocusedControl(), "wraps around")
	require.True(t, a.Checked())
	require.False(t, b.Checked())
}

func TestTabOrder(t *testing.T) {
	app, p := newTestApp(t)
	first := NewButton("first")
	panel := NewPanel()
	nested := NewCheckBox("nested")
	hidden := NewButton("hidden")
	hidden.SetVisible(false)
	disabled := NewButton("disabled")
	disabled.SetEnabled(false)
	label := NewLabel("not a tab stop")
	last := NewButton("last")
	panel.AddControl(nested, hidden)

	f, w := showForm(t, app, p, first, label, panel, disabled, last)
	require.Equal(t, Element(first), f.FocusedControl())

	w.key(KeyTab, 0)
	require.Equal(t, Element(nested), f.FocusedControl())
	w.key(KeyTab, 0)
	require.Equal(t, Element(last), f.FocusedControl())
	w.key(KeyTab, 0)
	require.Equal(t, Element(first), f.FocusedControl(), "wraps forward")
	w.key(KeyTab, ModShift)
	require.Equal(t, Element(last), f.FocusedControl(), "shift tab goes back")
}

func TestDisablingFocusedControlReleasesFocus(t *testing.T) {
	app, p := newTestApp(t)
	btn := NewButton("go")
	f, _ := showForm(t, app, p, btn)
	require.True(t, btn.Selected())

	btn.SetEnabled(false)
	require.Nil(t, f.FocusedControl())
	require.False(t, btn.Select())
}

func TestMouseClickRoutesToControl(t *testing.T) {
	app, p := newTestApp(t)
	panel := NewPanel()
	panel.SetBounds(NewRect(50, 50, 200, 100))
	cb := NewCheckBox("inner")
	cb.SetBounds(NewRect(10, 10, 100, 24))
	panel.AddControl(cb)
	_, w := showForm(t, app, p, panel)

	w.click(65, 65)
	require.True(t, cb.Checked())

	// Press on the check box, release elsewhere: no click.
	w.host.HandleInput(MouseDown(65, 65))
	w.host.HandleInput(MouseUp(5, 5))
	require.True(t, cb.Checked())
}

func TestHitTestHonorsZOrderAndVisibility(t *testing.T) {
	root := NewPanel()
	root.SetBounds(NewRect(0, 0, 100, 100))
	back := NewButton("back")
	back.SetBounds(NewRect(0, 0, 50, 50))
	front := NewButton("front")
	front.SetBounds(NewRect(0, 0, 50, 50))
	root.AddControl(back, front)

	require.Equal(t, Element(front), root.HitTest(Pt(10, 10)))
	front.SetVisible(false)
	require.Equal(t, Element(back), root.HitTest(Pt(10, 10)))
	require.Equal(t, Element(root), root.HitTest(Pt(80, 80)))
	require.Nil(t, root.HitTest(Pt(100, 100)))
}

func TestControlTree(t *testing.T) {
	a, b := NewPanel(), NewPanel()
	child := NewButton("child")
	grand := NewLabel("grand")
	child.AddControl(grand)

	a.AddControl(child)
	require.True(t, a.Contains(grand))

	b.AddControl(child)
	require.Empty(t, a.Children(), "adding elsewhere moves the child")
	require.Same(t, &b.Control, child.Parent())

	b.RemoveControl(child)
	require.True(t, child.IsDisposed())
	require.True(t, grand.IsDisposed())

	b.AddControl(child)
	require.Empty(t, b.Children(), "disposed controls are not re-added")
}

func TestFormCloseDisposesChildren(t *testing.T) {
	app, p := newTestApp(t)
	btn := NewButton("x")
	f, w := showForm(t, app, p, btn)

	var closed int
	f.OnClosed(func() { closed++ })
	w.host.HandleCloseRequest()
	f.Close()

	require.Equal(t, 1, closed)
	require.True(t, btn.IsDisposed())
	require.True(t, w.closed)
	require.Nil(t, f.Window())
}

func TestComboBoxSelection(t *testing.T) {
	app, p := newTestApp(t)
	combo := NewComboBox("red", "green", "blue")
	combo.SetBounds(NewRect(0, 0, 100, 24))
	var changes []string
	combo.OnSelectedIndexChanged(func(cb *ComboBox) { changes = append(changes, cb.SelectedItem()) })
	_, w := showForm(t, app, p, combo)

	w.key(KeyDown, 0)
	require.Equal(t, "red", combo.Text())

	w.key(KeyF4, 0)
	require.True(t, combo.DroppedDown())
	w.key(KeyDown, 0)
	w.key(KeyDown, 0)
	w.key(KeyEnter, 0)

	require.False(t, combo.DroppedDown())
	require.Equal(t, 2, combo.SelectedIndex())
	require.Equal(t, []string{"red", "blue"}, changes)
}

func TestComboBoxMouseSelection(t *testing.T) {
	app, p := newTestApp(t)
	combo := NewComboBox("red", "green", "blue")
	combo.SetBounds(NewRect(0, 0, 100, 24))
	f, w := showForm(t, app, p, combo)

	w.click(5, 5)
	require.True(t, combo.DroppedDown())

	popupWin := p.windows[len(p.windows)-1]
	require.True(t, popupWin.popup)
	require.Same(t, f.Window(), popupWin.owner)
	require.Equal(t, NewRect(0, 24, 100, 3*listItemHeight), popupWin.bounds)

	popupWin.host.HandleInput(MouseMove(5, 25))
	popupWin.click(5, 25)
	require.Equal(t, "green", combo.SelectedItem())
	require.False(t, combo.DroppedDown())
}

func TestComboBoxNotHosted(t *testing.T) {
	require.ErrorIs(t, NewComboBox("a").ShowDropDown(), ErrNotHosted)
}
