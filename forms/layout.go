package forms

// LayoutMetrics are the logical constants a renderer lays out with. They are
// converted to device units before any rectangle arithmetic.
type LayoutMetrics struct {
	// LeftInset is the gap between the control's left edge and the glyph.
	LeftInset int
	// GlyphSize is the square glyph cell. Zero means the control has no glyph.
	GlyphSize        int
	GlyphTextPadding int
	ImageTextMargin  int
}

// TextImageLayout is the result of laying out a glyph, an optional image and
// text inside a control. All rectangles are device pixels relative to the
// control. It is recomputed on every paint.
type TextImageLayout struct {
	Glyph Rect
	Image Rect
	Text  Rect
	Focus Rect
	// HasText is false when the control's text is empty; Text is then zero.
	HasText bool
}

// LayoutTextImage positions the parts of a glyph + image + text control.
//
// The glyph is vertically centered at the scaled left inset. Horizontal space
// after the glyph and its padding goes first to the image, followed by the
// image margin, and the rest to the text. When the control is too narrow the
// text width is clamped to zero. The focus rectangle wraps the measured text
// inside the text area, or the glyph when there is no text.
func LayoutTextImage(c *Control, e *PaintEventArgs, m LayoutMetrics) TextImageLayout {
	var l TextImageLayout

	width := c.ScaledWidth()
	height := c.ScaledHeight()

	inset := e.LogicalToDeviceUnits(m.LeftInset)
	glyph := e.LogicalToDeviceUnits(m.GlyphSize)
	padding := e.LogicalToDeviceUnits(m.GlyphTextPadding)
	margin := e.LogicalToDeviceUnits(m.ImageTextMargin)

	cursor := inset
	if glyph > 0 {
		l.Glyph = Rect{X: inset, Y: (height - glyph) / 2, Width: glyph, Height: glyph}
		cursor = l.Glyph.Right() + padding
	}

	if img := c.Image(); img != nil {
		b := img.Bounds()
		size := Size{Width: b.Dx(), Height: min(b.Dy(), height)}
		area := Rect{X: cursor, Y: 0, Width: size.Width, Height: height}
		l.Image = AlignRect(size, area, verticalOnly(c.ImageAlign()))
		cursor = l.Image.Right() + margin
	}

	if c.Text() != "" {
		l.HasText = true
		l.Text = Rect{X: cursor, Y: 0, Width: max(width-cursor, 0), Height: height}
	}

	switch {
	case l.HasText && l.Text.Width > 0:
		measured := e.Canvas.MeasureText(c.Text())
		measured.Width = min(measured.Width, l.Text.Width)
		measured.Height = min(measured.Height, l.Text.Height)
		l.Focus = AlignRect(measured, l.Text, c.TextAlign()).Inflate(1, 1)
	case glyph > 0:
		l.Focus = l.Glyph.Inflate(1, 1)
	}

	return l
}

// verticalOnly keeps the vertical component of a and pins it to the left so
// an image never floats away from the glyph.
func verticalOnly(a ContentAlignment) ContentAlignment {
	switch {
	case a.IsTop():
		return TopLeft
	case a.IsBottom():
		return BottomLeft
	}
	return MiddleLeft
}
