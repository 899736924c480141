package forms

import (
	"image"
	"image/color"
)

// CheckState is the state of a checkbox or radio glyph.
type CheckState uint8

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "Unchecked"
	case Checked:
		return "Checked"
	case Indeterminate:
		return "Indeterminate"
	}
	return "CheckState(?)"
}

// TextOptions controls how DrawText lays out a string inside its bounds.
type TextOptions struct {
	Align ContentAlignment
	// MaxLines limits wrapping. Zero means a single line without limit on
	// width other than the bounds.
	MaxLines int
	// Ellipsis replaces clipped trailing text with "…".
	Ellipsis bool
	// Color overrides the theme's text color when non-nil.
	Color    color.Color
	Disabled bool
}

// Canvas is the 2D drawing surface renderers paint onto. All coordinates are
// device pixels relative to the current translation. Implementations must
// tolerate empty and negative rectangles by drawing nothing.
type Canvas interface {
	// Save pushes the current translation and clip.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	Translate(dx, dy int)
	// ClipRect intersects the current clip with r.
	ClipRect(r Rect)

	FillRectangle(r Rect, c color.Color)
	DrawRectangle(r Rect, c color.Color, strokeWidth int)
	DrawText(text string, bounds Rect, opts TextOptions)
	MeasureText(text string) Size
	DrawBitmap(img image.Image, bounds Rect, disabled bool)
	DrawFocusRectangle(bounds Rect, inset int)
	DrawCheckBox(bounds Rect, state CheckState, disabled bool)
	DrawRadioButton(bounds Rect, state CheckState, disabled bool)
}

// PaintEventArgs is handed to renderers for a single control. ClipRectangle
// is in the control's own device coordinates.
type PaintEventArgs struct {
	Canvas        Canvas
	ClipRectangle Rect
	ScaleFactor   float64
	Theme         *Theme
}

// NewPaintEventArgs creates a paint context. A nil theme selects the light
// palette and a non-positive scale selects 1.
func NewPaintEventArgs(cv Canvas, clip Rect, scale float64, theme *Theme) *PaintEventArgs {
	if scale <= 0 {
		scale = 1
	}
	if theme == nil {
		theme = LightTheme()
	}
	return &PaintEventArgs{Canvas: cv, ClipRectangle: clip, ScaleFactor: scale, Theme: theme}
}

// LogicalToDeviceUnits scales a logical value by the surface's scale factor.
func (e *PaintEventArgs) LogicalToDeviceUnits(v int) int {
	return ScaleLogical(v, e.ScaleFactor)
}

// LogicalToDeviceSize scales both dimensions of s.
func (e *PaintEventArgs) LogicalToDeviceSize(s Size) Size {
	return Size{Width: e.LogicalToDeviceUnits(s.Width), Height: e.LogicalToDeviceUnits(s.Height)}
}

// ============================================================================
// Shared glyph helpers
// ============================================================================

// radioDiameter is the logical size of the radio circle drawn inside the
// larger radio glyph cell.
const radioDiameter = 14

// DrawCheckBox paints a checkbox glyph in bounds.
func DrawCheckBox(e *PaintEventArgs, bounds Rect, state CheckState, disabled bool) {
	e.Canvas.DrawCheckBox(bounds, state, disabled)
}

// DrawRadioButton paints a radio circle centered on center.
func DrawRadioButton(e *PaintEventArgs, center Point, state CheckState, disabled bool) {
	d := e.LogicalToDeviceUnits(radioDiameter)
	bounds := Rect{X: center.X - d/2, Y: center.Y - d/2, Width: d, Height: d}
	e.Canvas.DrawRadioButton(bounds, state, disabled)
}
