package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFileMenu(app *Application, clicked *[]string) (*Menu, *MenuItem) {
	record := func(it *MenuItem) { *clicked = append(*clicked, it.Text()) }
	recent := NewMenuItem("Recent", nil)
	recent.AddItem(NewMenuItem("a.txt", record), NewMenuItem("b.txt", record))
	disabled := NewMenuItem("Print", record)
	disabled.SetEnabled(false)
	m := app.NewContextMenu(
		NewMenuItem("Open", record),
		recent,
		disabled,
		NewMenuItem("Save", record),
		NewMenuItem("Save As", record),
	)
	return m, recent
}

func TestMenuKeyboardNavigation(t *testing.T) {
	app, p := newTestApp(t)
	f, w := showForm(t, app, p)
	var clicked []string
	m, recent := newFileMenu(app, &clicked)
	require.NoError(t, m.Show(f, Pt(10, 10)))

	w.key(KeyDown, 0)
	require.Equal(t, "Open", m.Highlighted().Text())
	w.key(KeyDown, 0)
	require.Same(t, recent, m.Highlighted())

	w.key(KeyRight, 0)
	sub := m.OpenChild()
	require.NotNil(t, sub)
	require.True(t, sub.IsOpen())
	require.Same(t, m, sub.Parent())
	require.Same(t, sub, m.Deepest())
	require.Equal(t, "a.txt", sub.Highlighted().Text())
	require.Equal(t, []*Menu{m, sub}, m.Chain())

	w.key(KeyLeft, 0)
	require.False(t, sub.IsOpen())
	require.True(t, m.IsOpen())

	w.key(KeyRight, 0)
	w.key(KeyDown, 0)
	w.key(KeyEnter, 0)

	require.Equal(t, []string{"b.txt"}, clicked)
	require.False(t, m.IsOpen())
	require.False(t, m.OpenChild() != nil && m.OpenChild().IsOpen())
	require.Nil(t, app.ActiveMenu())
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	app, p := newTestApp(t)
	f, w := showForm(t, app, p)
	var clicked []string
	m, _ := newFileMenu(app, &clicked)
	require.NoError(t, m.Show(f, Pt(0, 0)))

	w.key(KeyEnd, 0)
	require.Equal(t, "Save As", m.Highlighted().Text())
	w.key(KeyUp, 0)
	w.key(KeyUp, 0)
	require.Equal(t, "Recent", m.Highlighted().Text(), "Print is disabled")
	w.key(KeyDown, 0)
	w.key(KeyDown, 0)
	w.key(KeyDown, 0)
	require.Equal(t, "Open", m.Highlighted().Text(), "wraps past the end")
}

func TestMenuCapturesKeys(t *testing.T) {
	app, p := newTestApp(t)
	btn := NewButton("b")
	var pressed int
	btn.OnClick(func(Element) { pressed++ })
	f, w := showForm(t, app, p, btn)
	m := app.NewContextMenu(NewMenuItem("Only", nil))
	require.NoError(t, m.Show(f, Pt(0, 0)))

	w.key(KeySpace, 0)
	w.key(KeyTab, 0)
	require.Zero(t, pressed, "focused control does not see keys while a menu is open")
	require.Equal(t, Element(btn), f.FocusedControl())
}

func TestMenuTypeAhead(t *testing.T) {
	app, p := newTestApp(t)
	f, w := showForm(t, app, p)
	var clicked []string
	m, _ := newFileMenu(app, &clicked)
	require.NoError(t, m.Show(f, Pt(0, 0)))

	for _, r := range "sa" {
		w.host.HandleInput(CharInput(r))
	}
	require.Equal(t, "Save", m.Highlighted().Text())

	w.key(KeyEnter, 0)
	require.Equal(t, []string{"Save"}, clicked)
}

func TestMenuFind(t *testing.T) {
	app, _ := newTestApp(t)
	var clicked []string
	m, _ := newFileMenu(app, &clicked)

	tests := []struct {
		query string
		want  string
	}{
		{"op", "Open"},
		{"SAVE", "Save"},
		{"sas", "Save As"},
		{"rec", "Recent"},
		{"print", ""},
		{"zzz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := m.Find(tt.query)
			if tt.want == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want, got.Text())
		})
	}
}

func TestMenuMouse(t *testing.T) {
	app, p := newTestApp(t)
	f, _ := showForm(t, app, p)
	var clicked []string
	m, _ := newFileMenu(app, &clicked)
	require.NoError(t, m.Show(f, Pt(0, 0)))

	menuWin := p.windows[len(p.windows)-1]
	require.True(t, menuWin.popup)

	// Row 3 is "Save".
	y := 3*menuItemHeight + 5
	menuWin.host.HandleInput(MouseMove(10, y))
	require.Equal(t, "Save", m.Highlighted().Text())
	menuWin.click(10, y)

	require.Equal(t, []string{"Save"}, clicked)
	require.False(t, m.IsOpen())
}

func TestMenuPerformClickOutsideMenu(t *testing.T) {
	var clicked int
	it := NewMenuItem("x", func(*MenuItem) { clicked++ })
	it.PerformClick()
	require.Equal(t, 1, clicked)

	it.SetEnabled(false)
	it.PerformClick()
	require.Equal(t, 1, clicked)
}

func TestMenuRendering(t *testing.T) {
	app, p := newTestApp(t)
	f, _ := showForm(t, app, p)
	var clicked []string
	m, _ := newFileMenu(app, &clicked)
	m.Items()[0].SetShortcut("Ctrl+O")
	m.Items()[3].SetChecked(true)
	require.NoError(t, m.Show(f, Pt(0, 0)))
	flush(app)

	menuWin := p.windows[len(p.windows)-1]
	require.Equal(t, []string{"Open", "Ctrl+O", "Recent", "▸", "Print", "✓", "Save", "Save As"}, menuWin.texts())
}

func TestShowOnSubmenuOpensRoot(t *testing.T) {
	app, p := newTestApp(t)
	f, _ := showForm(t, app, p)
	var clicked []string
	m, recent := newFileMenu(app, &clicked)

	require.NoError(t, m.Show(f, Pt(10, 10)))
	require.NoError(t, m.OpenSubmenu(recent))
	sub := m.OpenChild()
	require.NotNil(t, sub)
	m.Deactivate()

	require.NoError(t, sub.Show(f, Pt(40, 30)))
	require.Same(t, m, app.ActiveMenu())
	require.True(t, m.IsOpen())
	require.False(t, sub.IsOpen())
	require.Equal(t, Pt(40, 30), m.Popup().Bounds().Location())
}
