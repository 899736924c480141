package forms

import (
	"image"
	"image/color"

	"github.com/rivo/uniseg"
)

// DrawOp names a recorded canvas operation.
type DrawOp string

const (
	OpFillRectangle  DrawOp = "fill_rect"
	OpDrawRectangle  DrawOp = "stroke_rect"
	OpDrawText       DrawOp = "text"
	OpDrawBitmap     DrawOp = "bitmap"
	OpFocusRectangle DrawOp = "focus_rect"
	OpCheckBox       DrawOp = "checkbox"
	OpRadioButton    DrawOp = "radio"
)

// DrawCommand is one recorded drawing operation in absolute device
// coordinates of the surface being painted.
type DrawCommand struct {
	Op       DrawOp           `json:"op"`
	Bounds   Rect             `json:"bounds"`
	Clip     Rect             `json:"clip"`
	Text     string           `json:"text,omitempty"`
	Align    ContentAlignment `json:"align,omitempty"`
	MaxLines int              `json:"max_lines,omitempty"`
	Ellipsis bool             `json:"ellipsis,omitempty"`
	State    CheckState       `json:"state,omitempty"`
	Disabled bool             `json:"disabled,omitempty"`
	Color    uint32           `json:"color,omitempty"`
	Stroke   int              `json:"stroke,omitempty"`
	Inset    int              `json:"inset,omitempty"`
	// Image is kept for in-process consumers; hosts receive Bounds only.
	Image image.Image `json:"-"`
}

// Approximate metrics of the 7x13 fixed face used when no measurer is set.
const (
	defaultGlyphWidth  = 7
	defaultGlyphHeight = 13
)

type recorderState struct {
	offset Point
	clip   Rect
	bound  bool
}

// Recorder is a Canvas that records commands instead of drawing. Hosts that
// render out of process ship the recorded list; tests assert on it.
type Recorder struct {
	Commands []DrawCommand

	theme   *Theme
	measure func(string) Size
	state   recorderState
	stack   []recorderState
}

// NewRecorder creates an empty recorder using theme for resolved colors.
func NewRecorder(theme *Theme) *Recorder {
	if theme == nil {
		theme = LightTheme()
	}
	return &Recorder{theme: theme}
}

// SetMeasurer replaces the fixed-width text measurement.
func (r *Recorder) SetMeasurer(fn func(text string) Size) {
	r.measure = fn
}

// Reset clears recorded commands and the transform stack.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.stack = r.stack[:0]
	r.state = recorderState{}
}

// Ops returns the recorded operations in order.
func (r *Recorder) Ops() []DrawOp {
	ops := make([]DrawOp, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Find returns every recorded command with the given op.
func (r *Recorder) Find(op DrawOp) []DrawCommand {
	var out []DrawCommand
	for _, c := range r.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(dx, dy int) {
	r.state.offset = r.state.offset.Add(Point{X: dx, Y: dy})
}

func (r *Recorder) ClipRect(rc Rect) {
	abs := rc.Offset(r.state.offset.X, r.state.offset.Y)
	if r.state.bound {
		abs = r.state.clip.Intersect(abs)
	}
	r.state.clip = abs
	r.state.bound = true
}

func (r *Recorder) push(c DrawCommand) {
	c.Bounds = c.Bounds.Offset(r.state.offset.X, r.state.offset.Y)
	if r.state.bound {
		c.Clip = r.state.clip
	} else {
		c.Clip = c.Bounds
	}
	r.Commands = append(r.Commands, c)
}

func (r *Recorder) FillRectangle(rc Rect, c color.Color) {
	if rc.IsEmpty() {
		return
	}
	r.push(DrawCommand{Op: OpFillRectangle, Bounds: rc, Color: PackColor(c)})
}

func (r *Recorder) DrawRectangle(rc Rect, c color.Color, strokeWidth int) {
	if rc.IsEmpty() {
		return
	}
	r.push(DrawCommand{Op: OpDrawRectangle, Bounds: rc, Color: PackColor(c), Stroke: strokeWidth})
}

func (r *Recorder) DrawText(text string, bounds Rect, opts TextOptions) {
	if text == "" {
		return
	}
	c := opts.Color
	if c == nil {
		c = r.theme.TextColor(opts.Disabled)
	}
	r.push(DrawCommand{
		Op:       OpDrawText,
		Bounds:   bounds,
		Text:     text,
		Align:    opts.Align,
		MaxLines: opts.MaxLines,
		Ellipsis: opts.Ellipsis,
		Disabled: opts.Disabled,
		Color:    PackColor(c),
	})
}

func (r *Recorder) MeasureText(text string) Size {
	if r.measure != nil {
		return r.measure(text)
	}
	if text == "" {
		return Size{}
	}
	return Size{Width: uniseg.StringWidth(text) * defaultGlyphWidth, Height: defaultGlyphHeight}
}

func (r *Recorder) DrawBitmap(img image.Image, bounds Rect, disabled bool) {
	if img == nil || bounds.IsEmpty() {
		return
	}
	r.push(DrawCommand{Op: OpDrawBitmap, Bounds: bounds, Disabled: disabled, Image: img})
}

func (r *Recorder) DrawFocusRectangle(bounds Rect, inset int) {
	if bounds.IsEmpty() {
		return
	}
	r.push(DrawCommand{Op: OpFocusRectangle, Bounds: bounds, Inset: inset, Color: PackColor(r.theme.FocusRectangle)})
}

func (r *Recorder) DrawCheckBox(bounds Rect, state CheckState, disabled bool) {
	r.push(DrawCommand{Op: OpCheckBox, Bounds: bounds, State: state, Disabled: disabled, Color: PackColor(r.theme.MarkColor(disabled))})
}

func (r *Recorder) DrawRadioButton(bounds Rect, state CheckState, disabled bool) {
	r.push(DrawCommand{Op: OpRadioButton, Bounds: bounds, State: state, Disabled: disabled, Color: PackColor(r.theme.MarkColor(disabled))})
}

// PackColor converts c to 0xRRGGBBAA. A nil color packs to zero.
func PackColor(c color.Color) uint32 {
	if c == nil {
		return 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A)
}
