package forms

import (
	"slices"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/uniseg"
)

// Menu layout constants in logical units.
const (
	menuItemHeight   = 22
	menuCheckWidth   = 20
	menuArrowWidth   = 16
	menuTextPadding  = 8
	menuMinWidth     = 120
	submenuHoverTime = 400 * time.Millisecond
)

// ============================================================================
// MenuItem
// ============================================================================

// MenuItem is one entry of a menu. Items with children open a submenu
// instead of raising click.
type MenuItem struct {
	text     string
	shortcut string
	enabled  bool
	checked  bool
	items    []*MenuItem

	menu     *Menu
	dropDown *Menu
	click    handlerList[*MenuItem]
}

// NewMenuItem creates an enabled item. onClick may be nil.
func NewMenuItem(text string, onClick func(*MenuItem)) *MenuItem {
	it := &MenuItem{text: text, enabled: true}
	it.click.add(onClick)
	return it
}

func (it *MenuItem) Text() string     { return it.text }
func (it *MenuItem) Shortcut() string { return it.shortcut }
func (it *MenuItem) Enabled() bool    { return it.enabled }
func (it *MenuItem) Checked() bool    { return it.checked }

func (it *MenuItem) SetText(s string)     { it.text = s; it.invalidate() }
func (it *MenuItem) SetShortcut(s string) { it.shortcut = s; it.invalidate() }
func (it *MenuItem) SetEnabled(v bool)    { it.enabled = v; it.invalidate() }
func (it *MenuItem) SetChecked(v bool)    { it.checked = v; it.invalidate() }

// Items returns the submenu entries.
func (it *MenuItem) Items() []*MenuItem { return slices.Clone(it.items) }

// AddItem appends submenu entries.
func (it *MenuItem) AddItem(items ...*MenuItem) *MenuItem {
	it.items = append(it.items, items...)
	if it.dropDown != nil {
		it.dropDown.setItems(it.items)
	}
	return it
}

// HasDropDown reports whether the item opens a submenu.
func (it *MenuItem) HasDropDown() bool { return len(it.items) > 0 }

// OnClick subscribes fn to the item being chosen.
func (it *MenuItem) OnClick(fn func(*MenuItem)) { it.click.add(fn) }

// PerformClick chooses the item as if the user had. Inside an open menu this
// closes the menu chain first.
func (it *MenuItem) PerformClick() {
	if it.menu != nil && it.menu.active {
		it.menu.commit(it)
		return
	}
	if it.enabled && !it.HasDropDown() {
		it.click.fire(it)
	}
}

func (it *MenuItem) invalidate() {
	if it.menu != nil && it.menu.view != nil {
		it.menu.view.Invalidate()
	}
}

// ============================================================================
// Menu
// ============================================================================

// Menu is a drop down list of items shown in an untracked popup. A root menu
// and its open submenus form a chain; each level has at most one open
// child.
type Menu struct {
	app   *Application
	items []*MenuItem

	owner      *Form
	popup      *PopupWindow
	view       *menuView
	parent     *Menu
	child      *Menu
	active     bool
	highlight  int
	typeahead  string
	hoverTimer *Timer

	deactivated signalList
}

// NewContextMenu creates a root menu with the given items.
func (a *Application) NewContextMenu(items ...*MenuItem) *Menu {
	m := &Menu{app: a, highlight: -1}
	m.setItems(items)
	return m
}

func (m *Menu) setItems(items []*MenuItem) {
	m.items = items
	for _, it := range items {
		it.menu = m
	}
	if m.view != nil {
		m.resize()
	}
}

// Items returns the menu's entries.
func (m *Menu) Items() []*MenuItem { return slices.Clone(m.items) }

// AddItem appends entries.
func (m *Menu) AddItem(items ...*MenuItem) {
	m.setItems(append(m.items, items...))
}

// IsOpen reports whether the menu is showing.
func (m *Menu) IsOpen() bool { return m.active }

// Parent returns the menu this submenu hangs off, or nil for a root menu.
func (m *Menu) Parent() *Menu { return m.parent }

// OpenChild returns the open submenu, if any.
func (m *Menu) OpenChild() *Menu { return m.child }

// Root walks up to the root of the chain.
func (m *Menu) Root() *Menu {
	for m.parent != nil {
		m = m.parent
	}
	return m
}

// Deepest returns the innermost open menu of the chain starting at m.
func (m *Menu) Deepest() *Menu {
	for m.child != nil && m.child.active {
		m = m.child
	}
	return m
}

// Chain lists the open menus from m down to the deepest.
func (m *Menu) Chain() []*Menu {
	var out []*Menu
	for n := m; n != nil && n.active; n = n.child {
		out = append(out, n)
	}
	return out
}

// Popup returns the popup hosting the menu, or nil before it is first shown.
func (m *Menu) Popup() *PopupWindow { return m.popup }

// Highlighted returns the highlighted item, if any.
func (m *Menu) Highlighted() *MenuItem {
	if m.highlight < 0 || m.highlight >= len(m.items) {
		return nil
	}
	return m.items[m.highlight]
}

// OnDeactivated subscribes fn to the menu closing.
func (m *Menu) OnDeactivated(fn func()) { m.deactivated.add(fn) }

// Show opens the menu at location (logical, relative to owner's client
// area) and makes it the active menu. Any other active menu chain is
// deactivated first. Called on a submenu, Show opens the root of its chain
// at location instead; use OpenSubmenu on the parent to open a submenu.
func (m *Menu) Show(owner *Form, location Point) error {
	root := m.Root()
	if root != m {
		return root.Show(owner, location)
	}
	m.app.setActiveMenu(m)
	if err := m.open(owner, location); err != nil {
		if m.app.activeMenu == m {
			m.app.activeMenu = nil
		}
		return err
	}
	m.app.logger.Debug("menu activated", "items", len(m.items))
	return nil
}

func (m *Menu) open(owner *Form, location Point) error {
	if m.popup == nil || m.owner != owner {
		if m.popup != nil {
			m.popup.Close()
		}
		m.owner = owner
		m.popup = m.app.NewPopupWindow(owner)
		m.popup.tracked = false
		m.view = newMenuView(m)
		m.popup.AddControl(m.view)
		m.resize()
	}
	if m.child != nil {
		m.child.Deactivate()
	}
	m.highlight = -1
	m.typeahead = ""
	if err := m.popup.Show(location); err != nil {
		return err
	}
	m.active = true
	return nil
}

func (m *Menu) resize() {
	width := menuMinWidth
	for _, it := range m.items {
		w := menuCheckWidth + uniseg.StringWidth(it.text)*defaultGlyphWidth + menuTextPadding*2 + menuArrowWidth
		if it.shortcut != "" {
			w += uniseg.StringWidth(it.shortcut)*defaultGlyphWidth + menuTextPadding
		}
		width = max(width, w)
	}
	size := Rect{Width: width, Height: max(len(m.items), 1) * menuItemHeight}
	m.popup.SetBounds(Rect{X: m.popup.bounds.X, Y: m.popup.bounds.Y, Width: size.Width, Height: size.Height})
	m.view.SetBounds(size)
}

// Deactivate closes the menu and every open submenu below it. A root menu
// also gives up the active menu slot.
func (m *Menu) Deactivate() {
	if !m.active {
		return
	}
	if m.child != nil {
		m.child.Deactivate()
		m.child = nil
	}
	if m.hoverTimer != nil {
		m.hoverTimer.Stop()
		m.hoverTimer = nil
	}
	m.active = false
	m.highlight = -1
	if m.popup != nil {
		m.popup.Hide()
	}
	if m.parent != nil && m.parent.child == m {
		m.parent.child = nil
	}
	if m.app.activeMenu == m {
		m.app.activeMenu = nil
	}
	m.deactivated.fire()
}

// OpenSubmenu opens item's submenu beside m. Any other open submenu of m is
// closed first. Items without children, disabled items, and items of other
// menus are ignored.
func (m *Menu) OpenSubmenu(item *MenuItem) error {
	if !m.active || item.menu != m || !item.enabled || !item.HasDropDown() {
		return nil
	}
	if item.dropDown == nil {
		item.dropDown = &Menu{app: m.app, parent: m, highlight: -1}
		item.dropDown.setItems(item.items)
	}
	sub := item.dropDown
	if m.child == sub && sub.active {
		return nil
	}
	if m.child != nil {
		m.child.Deactivate()
	}
	m.child = sub

	idx := slices.Index(m.items, item)
	loc := Point{
		X: m.popup.bounds.Right(),
		Y: m.popup.bounds.Y + idx*menuItemHeight,
	}
	if err := sub.open(m.owner, loc); err != nil {
		m.child = nil
		return err
	}
	return nil
}

// Find returns the enabled item whose text best matches query, using the
// same fuzzy ranking as type-ahead. It returns nil when nothing matches.
func (m *Menu) Find(query string) *MenuItem {
	if query == "" {
		return nil
	}
	var labels []string
	var candidates []*MenuItem
	for _, it := range m.items {
		if it.enabled {
			labels = append(labels, it.text)
			candidates = append(candidates, it)
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return nil
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance || (r.Distance == best.Distance && r.OriginalIndex < best.OriginalIndex) {
			best = r
		}
	}
	return candidates[best.OriginalIndex]
}

func (m *Menu) setHighlight(i int) {
	if i == m.highlight {
		return
	}
	m.highlight = i
	if m.view != nil {
		m.view.Invalidate()
	}
}

// moveHighlight steps to the next enabled item in dir, wrapping.
func (m *Menu) moveHighlight(dir int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	i := m.highlight
	if i < 0 && dir < 0 {
		i = 0
	}
	for step := 0; step < n; step++ {
		i = (i + dir + n) % n
		if m.items[i].enabled {
			m.setHighlight(i)
			return
		}
	}
}

// commit chooses it: submenus open, plain items close the whole chain and
// then raise click.
func (m *Menu) commit(it *MenuItem) {
	if !it.enabled {
		return
	}
	if it.HasDropDown() {
		m.OpenSubmenu(it)
		return
	}
	m.app.ClosePopups(true, false)
	it.click.fire(it)
}

func (m *Menu) handleKey(ev InputEvent) bool {
	switch ev.Key {
	case KeyUp:
		m.moveHighlight(-1)
	case KeyDown:
		m.moveHighlight(1)
	case KeyHome:
		m.setHighlight(-1)
		m.moveHighlight(1)
	case KeyEnd:
		m.setHighlight(0)
		m.moveHighlight(-1)
	case KeyEnter, KeySpace:
		if it := m.Highlighted(); it != nil {
			m.commit(it)
		}
	case KeyRight:
		if it := m.Highlighted(); it != nil && it.HasDropDown() {
			m.OpenSubmenu(it)
			if m.child != nil {
				m.child.moveHighlight(1)
			}
		}
	case KeyLeft:
		if m.parent != nil {
			m.Deactivate()
		}
	case KeyBackspace:
		if r := []rune(m.typeahead); len(r) > 0 {
			m.typeahead = string(r[:len(r)-1])
		}
	default:
		return false
	}
	return true
}

func (m *Menu) handleChar(r rune) {
	m.typeahead += string(r)
	if it := m.Find(m.typeahead); it != nil {
		m.setHighlight(slices.Index(m.items, it))
	}
}

// hoverItem highlights the item under the pointer and opens its submenu
// after a short delay.
func (m *Menu) hoverItem(i int) {
	if i == m.highlight {
		return
	}
	m.setHighlight(i)
	if m.hoverTimer != nil {
		m.hoverTimer.Stop()
		m.hoverTimer = nil
	}
	it := m.Highlighted()
	if it == nil || !it.enabled || !it.HasDropDown() {
		return
	}
	m.hoverTimer = m.app.dispatcher.AfterFunc(submenuHoverTime, func() {
		m.hoverTimer = nil
		if m.active && m.Highlighted() == it {
			m.OpenSubmenu(it)
		}
	})
}

// ============================================================================
// menuView
// ============================================================================

// menuView is the control that paints a menu's items inside its popup.
type menuView struct {
	Control
	menu *Menu
}

func newMenuView(m *Menu) *menuView {
	v := &menuView{menu: m}
	v.init(KindMenu, v)
	return v
}

func (v *menuView) itemAt(local Point) int {
	h := v.LogicalToDeviceUnits(menuItemHeight)
	if h <= 0 || local.Y < 0 {
		return -1
	}
	i := local.Y / h
	if i >= len(v.menu.items) {
		return -1
	}
	return i
}

func (v *menuView) handleMouse(ev InputEvent, local Point) {
	i := v.itemAt(local)
	switch ev.Kind {
	case InputMouseMove:
		v.menu.hoverItem(i)
	case InputMouseUp:
		if i >= 0 {
			v.menu.setHighlight(i)
			v.menu.commit(v.menu.items[i])
		}
	}
}
