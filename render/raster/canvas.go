// Package raster implements forms.Canvas on an in-memory RGBA image. Text is
// drawn with the 7x13 fixed face and shapes are filled with the vector
// rasterizer, so output is identical on every platform.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/agiangrant/formkit/forms"
)

type state struct {
	offset image.Point
	clip   image.Rectangle
}

// Canvas paints into an *image.RGBA.
type Canvas struct {
	img   *image.RGBA
	theme *forms.Theme
	face  font.Face

	state state
	stack []state
}

var _ forms.Canvas = (*Canvas)(nil)

// New creates a w x h canvas cleared to the theme background.
func New(w, h int, theme *forms.Theme) *Canvas {
	if theme == nil {
		theme = forms.LightTheme()
	}
	c := &Canvas{theme: theme, face: basicfont.Face7x13}
	c.Resize(w, h)
	return c
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetTheme changes the palette used for glyphs and default text.
func (c *Canvas) SetTheme(t *forms.Theme) {
	if t != nil {
		c.theme = t
	}
}

// Resize reallocates the image if the size changed and resets the state.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if c.img == nil || c.img.Bounds().Dx() != w || c.img.Bounds().Dy() != h {
		c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	c.Begin()
}

// Begin resets the transform stack and clears to the theme background.
// Call it before each frame.
func (c *Canvas) Begin() {
	c.stack = c.stack[:0]
	c.state = state{clip: c.img.Bounds()}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.theme.Background), image.Point{}, draw.Src)
}

// EncodePNG writes the current image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy int) {
	c.state.offset = c.state.offset.Add(image.Pt(dx, dy))
}

func (c *Canvas) ClipRect(r forms.Rect) {
	c.state.clip = c.state.clip.Intersect(c.abs(r))
}

// abs converts a local rect to image coordinates.
func (c *Canvas) abs(r forms.Rect) image.Rectangle {
	return r.ImageRect().Add(c.state.offset)
}

// visible returns the part of local rect r that survives clipping.
func (c *Canvas) visible(r forms.Rect) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return c.abs(r).Intersect(c.state.clip)
}

// ============================================================================
// Shapes
// ============================================================================

func (c *Canvas) FillRectangle(r forms.Rect, col color.Color) {
	dst := c.visible(r)
	if dst.Empty() || col == nil {
		return
	}
	draw.Draw(c.img, dst, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) DrawRectangle(r forms.Rect, col color.Color, strokeWidth int) {
	if r.IsEmpty() || col == nil {
		return
	}
	sw := max(strokeWidth, 1)
	sw = min(sw, r.Width/2+1, r.Height/2+1)
	c.FillRectangle(forms.NewRect(r.X, r.Y, r.Width, sw), col)
	c.FillRectangle(forms.NewRect(r.X, r.Bottom()-sw, r.Width, sw), col)
	c.FillRectangle(forms.NewRect(r.X, r.Y+sw, sw, r.Height-2*sw), col)
	c.FillRectangle(forms.NewRect(r.Right()-sw, r.Y+sw, sw, r.Height-2*sw), col)
}

// DrawFocusRectangle draws a dotted outline inset into bounds.
func (c *Canvas) DrawFocusRectangle(bounds forms.Rect, inset int) {
	r := bounds.Inflate(-inset, -inset)
	if r.IsEmpty() {
		return
	}
	col := c.theme.FocusRectangle
	dot := func(x, y int) {
		c.FillRectangle(forms.NewRect(x, y, 1, 1), col)
	}
	for x := r.X; x < r.Right(); x += 2 {
		dot(x, r.Y)
		dot(x, r.Bottom()-1)
	}
	for y := r.Y; y < r.Bottom(); y += 2 {
		dot(r.X, y)
		dot(r.Right()-1, y)
	}
}

// fillPath rasterizes the path built by fn inside local rect r and fills it
// with col.
func (c *Canvas) fillPath(r forms.Rect, col color.Color, fn func(z *vector.Rasterizer)) {
	dst := c.visible(r)
	if dst.Empty() {
		return
	}
	z := vector.NewRasterizer(r.Width, r.Height)
	fn(z)
	mask := image.NewAlpha(image.Rect(0, 0, r.Width, r.Height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	origin := c.abs(r).Min
	draw.DrawMask(c.img, dst, image.NewUniform(col), image.Point{}, mask, dst.Min.Sub(origin), draw.Over)
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

func circle(z *vector.Rasterizer, cx, cy, rad float32) {
	k := rad * kappa
	z.MoveTo(cx+rad, cy)
	z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	z.ClosePath()
}

func (c *Canvas) DrawCheckBox(bounds forms.Rect, st forms.CheckState, disabled bool) {
	if bounds.IsEmpty() {
		return
	}
	c.FillRectangle(bounds, c.theme.ControlBackground)
	c.DrawRectangle(bounds, c.theme.BorderColor(disabled), 1)

	mark := c.theme.MarkColor(disabled)
	switch st {
	case forms.Checked:
		w, h := float32(bounds.Width), float32(bounds.Height)
		c.fillPath(bounds, mark, func(z *vector.Rasterizer) {
			z.MoveTo(w*0.20, h*0.52)
			z.LineTo(w*0.40, h*0.72)
			z.LineTo(w*0.80, h*0.28)
			z.LineTo(w*0.80, h*0.42)
			z.LineTo(w*0.40, h*0.86)
			z.LineTo(w*0.20, h*0.66)
			z.ClosePath()
		})
	case forms.Indeterminate:
		c.FillRectangle(bounds.Inflate(-bounds.Width/4, -bounds.Height/4), mark)
	}
}

func (c *Canvas) DrawRadioButton(bounds forms.Rect, st forms.CheckState, disabled bool) {
	if bounds.IsEmpty() {
		return
	}
	w, h := float32(bounds.Width), float32(bounds.Height)
	cx, cy := w/2, h/2
	rad := min(w, h) / 2

	c.fillPath(bounds, c.theme.BorderColor(disabled), func(z *vector.Rasterizer) { circle(z, cx, cy, rad) })
	c.fillPath(bounds, c.theme.ControlBackground, func(z *vector.Rasterizer) { circle(z, cx, cy, rad-1) })
	if st == forms.Checked {
		c.fillPath(bounds, c.theme.MarkColor(disabled), func(z *vector.Rasterizer) { circle(z, cx, cy, rad/2) })
	}
}

// ============================================================================
// Bitmaps
// ============================================================================

// DrawBitmap scales img into bounds. Disabled images are drawn desaturated
// at half opacity.
func (c *Canvas) DrawBitmap(img image.Image, bounds forms.Rect, disabled bool) {
	dst := c.visible(bounds)
	if img == nil || dst.Empty() {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, bounds.Width, bounds.Height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	if disabled {
		dim(scaled)
	}
	origin := c.abs(bounds).Min
	draw.Draw(c.img, dst, scaled, dst.Min.Sub(origin), draw.Over)
}

// dim converts img to gray and halves its alpha in place.
func dim(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b, a := uint32(img.Pix[i]), uint32(img.Pix[i+1]), uint32(img.Pix[i+2]), img.Pix[i+3]
		y := uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = y/2, y/2, y/2
		img.Pix[i+3] = a / 2
	}
}

// ============================================================================
// Text
// ============================================================================

func (c *Canvas) MeasureText(text string) forms.Size {
	if text == "" {
		return forms.Size{}
	}
	return forms.Size{
		Width:  font.MeasureString(c.face, text).Ceil(),
		Height: c.face.Metrics().Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, bounds forms.Rect, opts forms.TextOptions) {
	clip := c.visible(bounds)
	if text == "" || clip.Empty() {
		return
	}
	col := opts.Color
	if col == nil {
		col = c.theme.TextColor(opts.Disabled)
	} else if opts.Disabled {
		col = c.theme.DisabledForeground
	}

	lines := layoutLines(text, bounds.Width, opts.MaxLines, opts.Ellipsis, c.width)
	lineHeight := c.face.Metrics().Height.Ceil()
	block := forms.Size{Width: bounds.Width, Height: lineHeight * len(lines)}
	top := forms.AlignRect(block, bounds, opts.Align).Y

	d := font.Drawer{
		Dst:  c.img.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(col),
		Face: c.face,
	}
	ascent := c.face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		size := forms.Size{Width: c.width(line), Height: lineHeight}
		row := forms.NewRect(bounds.X, top+i*lineHeight, bounds.Width, lineHeight)
		at := forms.AlignRect(size, row, opts.Align)
		origin := c.abs(at).Min
		d.Dot = fixed.P(origin.X, origin.Y+ascent)
		d.DrawString(line)
	}
}

func (c *Canvas) width(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}
