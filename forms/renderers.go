package forms

import (
	"image/color"
)

// ============================================================================
// Plain Controls
// ============================================================================

// ControlRenderer fills the control's background when it has a back color.
type ControlRenderer struct{}

func (ControlRenderer) Render(el Element, e *PaintEventArgs) {
	c := el.Base()
	if bg := c.BackColor(); bg != nil {
		e.Canvas.FillRectangle(c.ClientRectangle(), bg)
	}
}

// FormRenderer fills the form with the theme background.
type FormRenderer struct{}

func (FormRenderer) Render(el Element, e *PaintEventArgs) {
	c := el.Base()
	bg := c.BackColor()
	if bg == nil {
		bg = e.Theme.Background
	}
	e.Canvas.FillRectangle(c.ClientRectangle(), bg)
}

// LabelRenderer draws the label's text with its alignment.
type LabelRenderer struct{}

func (LabelRenderer) Render(el Element, e *PaintEventArgs) {
	c := el.Base()
	ControlRenderer{}.Render(el, e)
	if c.Text() == "" {
		return
	}
	e.Canvas.DrawText(c.Text(), c.ClientRectangle(), TextOptions{
		Align:    c.TextAlign(),
		Ellipsis: c.AutoEllipsis(),
		Color:    c.ForeColor(),
		Disabled: !c.Enabled(),
	})
}

// ButtonRenderer draws a bordered push button with centered text.
type ButtonRenderer struct{}

func (ButtonRenderer) Render(el Element, e *PaintEventArgs) {
	c := el.Base()
	bounds := c.ClientRectangle()

	var bg color.Color = e.Theme.ControlBackground
	if c.BackColor() != nil {
		bg = c.BackColor()
	}
	e.Canvas.FillRectangle(bounds, bg)
	e.Canvas.DrawRectangle(bounds, e.Theme.BorderColor(!c.Enabled()), e.LogicalToDeviceUnits(1))

	if c.Text() != "" {
		e.Canvas.DrawText(c.Text(), bounds, TextOptions{
			Align:    c.TextAlign(),
			MaxLines: 1,
			Ellipsis: true,
			Color:    c.ForeColor(),
			Disabled: !c.Enabled(),
		})
	}
	if c.Selected() && c.ShowFocusCues() {
		e.Canvas.DrawFocusRectangle(bounds, e.LogicalToDeviceUnits(3))
	}
}

// ============================================================================
// CheckBox
// ============================================================================

// CheckBox glyph constants in logical units.
const (
	checkBoxGlyphSize        = 15
	checkBoxGlyphTextPadding = 4
	checkBoxLeftInset        = 3
)

// CheckBoxRenderer draws a fixed size check glyph at the left inset,
// vertically centered, followed by the text.
type CheckBoxRenderer struct{}

func (CheckBoxRenderer) Render(el Element, e *PaintEventArgs) {
	RendererFunc[*CheckBox](renderCheckBox).Render(el, e)
}

func renderCheckBox(cb *CheckBox, e *PaintEventArgs) {
	boxSize := e.LogicalToDeviceUnits(checkBoxGlyphSize)
	padding := e.LogicalToDeviceUnits(checkBoxGlyphTextPadding)

	y := (cb.ScaledHeight() - boxSize) / 2
	box := Rect{X: e.LogicalToDeviceUnits(checkBoxLeftInset), Y: y, Width: boxSize, Height: boxSize}
	DrawCheckBox(e, box, cb.CheckState(), !cb.Enabled())

	if cb.Text() == "" {
		return
	}
	text := Rect{
		X:      box.Right() + padding,
		Y:      0,
		Width:  cb.ScaledWidth() - box.Right() - padding,
		Height: cb.ScaledHeight(),
	}
	if text.Width <= 0 {
		return
	}
	e.Canvas.DrawText(cb.Text(), text, TextOptions{
		Align:    MiddleLeft,
		Color:    cb.ForeColor(),
		Disabled: !cb.Enabled(),
	})
}

// ============================================================================
// RadioButton
// ============================================================================

// RadioButtonRenderer lays out glyph, image and text with LayoutTextImage.
type RadioButtonRenderer struct {
	metrics LayoutMetrics
}

// NewRadioButtonRenderer returns the renderer with the default metrics.
func NewRadioButtonRenderer() *RadioButtonRenderer {
	return &RadioButtonRenderer{metrics: LayoutMetrics{
		GlyphSize:        24,
		GlyphTextPadding: 0,
		ImageTextMargin:  4,
	}}
}

func (r *RadioButtonRenderer) GlyphSize() int        { return r.metrics.GlyphSize }
func (r *RadioButtonRenderer) GlyphTextPadding() int { return r.metrics.GlyphTextPadding }
func (r *RadioButtonRenderer) ImageTextMargin() int  { return r.metrics.ImageTextMargin }

// Metrics returns the layout constants.
func (r *RadioButtonRenderer) Metrics() LayoutMetrics { return r.metrics }

func (r *RadioButtonRenderer) Render(el Element, e *PaintEventArgs) {
	rb, ok := el.(*RadioButton)
	if !ok {
		return
	}
	layout := LayoutTextImage(&rb.Control, e, r.metrics)

	state := Unchecked
	if rb.Checked() {
		state = Checked
	}
	DrawRadioButton(e, layout.Glyph.Center(), state, !rb.Enabled())

	if img := rb.Image(); img != nil {
		e.Canvas.DrawBitmap(img, layout.Image, !rb.Enabled())
	}

	if rb.Selected() && rb.ShowFocusCues() {
		e.Canvas.DrawFocusRectangle(layout.Focus, 0)
	}

	if layout.HasText && layout.Text.Width > 0 {
		e.Canvas.DrawText(rb.Text(), layout.Text, TextOptions{
			Align:    rb.TextAlign(),
			MaxLines: 1,
			Ellipsis: rb.AutoEllipsis(),
			Color:    rb.ForeColor(),
			Disabled: !rb.Enabled(),
		})
	}
}

// ============================================================================
// ComboBox and List
// ============================================================================

const comboArrowWidth = 18

// ComboBoxRenderer draws the selected item and the drop down arrow.
type ComboBoxRenderer struct{}

func (ComboBoxRenderer) Render(el Element, e *PaintEventArgs) {
	RendererFunc[*ComboBox](renderComboBox).Render(el, e)
}

func renderComboBox(cb *ComboBox, e *PaintEventArgs) {
	bounds := cb.ClientRectangle()
	disabled := !cb.Enabled()
	arrow := e.LogicalToDeviceUnits(comboArrowWidth)

	e.Canvas.FillRectangle(bounds, e.Theme.ControlBackground)
	e.Canvas.DrawRectangle(bounds, e.Theme.BorderColor(disabled), e.LogicalToDeviceUnits(1))

	pad := e.LogicalToDeviceUnits(4)
	text := Rect{X: pad, Y: 0, Width: bounds.Width - arrow - pad, Height: bounds.Height}
	if cb.Text() != "" && text.Width > 0 {
		e.Canvas.DrawText(cb.Text(), text, TextOptions{
			Align:    MiddleLeft,
			MaxLines: 1,
			Ellipsis: true,
			Color:    cb.ForeColor(),
			Disabled: disabled,
		})
	}
	e.Canvas.DrawText("▾", Rect{X: bounds.Width - arrow, Width: arrow, Height: bounds.Height}, TextOptions{
		Align:    MiddleCenter,
		Disabled: disabled,
	})

	if cb.Selected() && cb.ShowFocusCues() {
		e.Canvas.DrawFocusRectangle(text, 0)
	}
}

// ListRenderer draws the rows of a drop down list with the highlighted row
// filled.
type ListRenderer struct{}

func (ListRenderer) Render(el Element, e *PaintEventArgs) {
	RendererFunc[*listView](renderList).Render(el, e)
}

func renderList(v *listView, e *PaintEventArgs) {
	bounds := v.ClientRectangle()
	e.Canvas.FillRectangle(bounds, e.Theme.ControlBackground)

	h := e.LogicalToDeviceUnits(listItemHeight)
	pad := e.LogicalToDeviceUnits(4)
	for i, item := range v.combo.items {
		row := Rect{X: 0, Y: i * h, Width: bounds.Width, Height: h}
		if row.Y >= bounds.Height {
			break
		}
		opts := TextOptions{Align: MiddleLeft, MaxLines: 1, Ellipsis: true}
		if i == v.highlight {
			e.Canvas.FillRectangle(row, e.Theme.Highlight)
			opts.Color = e.Theme.HighlightText
		}
		e.Canvas.DrawText(item, row.Inflate(-pad, 0), opts)
	}
	e.Canvas.DrawRectangle(bounds, e.Theme.Border, e.LogicalToDeviceUnits(1))
}

// ============================================================================
// Menu
// ============================================================================

// MenuRenderer draws menu rows: check column, text, shortcut and submenu
// arrow.
type MenuRenderer struct{}

func (MenuRenderer) Render(el Element, e *PaintEventArgs) {
	RendererFunc[*menuView](renderMenu).Render(el, e)
}

func renderMenu(v *menuView, e *PaintEventArgs) {
	bounds := v.ClientRectangle()
	e.Canvas.FillRectangle(bounds, e.Theme.ControlBackground)

	h := e.LogicalToDeviceUnits(menuItemHeight)
	check := e.LogicalToDeviceUnits(menuCheckWidth)
	arrow := e.LogicalToDeviceUnits(menuArrowWidth)
	pad := e.LogicalToDeviceUnits(menuTextPadding)

	for i, it := range v.menu.items {
		row := Rect{X: 0, Y: i * h, Width: bounds.Width, Height: h}
		opts := TextOptions{Align: MiddleLeft, MaxLines: 1, Disabled: !it.enabled}
		if i == v.menu.highlight && it.enabled {
			e.Canvas.FillRectangle(row, e.Theme.Highlight)
			opts.Color = e.Theme.HighlightText
		}
		if it.checked {
			glyph := Rect{X: row.X, Y: row.Y, Width: check, Height: h}
			e.Canvas.DrawText("✓", glyph, TextOptions{Align: MiddleCenter, Color: opts.Color, Disabled: !it.enabled})
		}

		text := Rect{X: check + pad, Y: row.Y, Width: row.Width - check - pad - arrow, Height: h}
		e.Canvas.DrawText(it.text, text, opts)

		if it.shortcut != "" {
			sc := opts
			sc.Align = MiddleRight
			e.Canvas.DrawText(it.shortcut, text, sc)
		}
		if it.HasDropDown() {
			e.Canvas.DrawText("▸", Rect{X: row.Right() - arrow, Y: row.Y, Width: arrow, Height: h}, TextOptions{
				Align: MiddleCenter, Color: opts.Color, Disabled: !it.enabled,
			})
		}
	}
	e.Canvas.DrawRectangle(bounds, e.Theme.Border, e.LogicalToDeviceUnits(1))
}
