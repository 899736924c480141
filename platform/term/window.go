package term

import (
	"github.com/agiangrant/formkit/forms"
)

// Window is a terminal window. All methods run on the UI thread.
type Window struct {
	p     *Platform
	host  forms.WindowHost
	owner *Window

	title   string
	bounds  forms.Rect
	visible bool
	closed  bool
	frame   *grid
	frames  int
}

func (w *Window) Show() { w.visible = true }
func (w *Window) Hide() { w.visible = false }

func (w *Window) Close() {
	w.visible = false
	w.closed = true
}

func (w *Window) SetTitle(title string) {
	w.title = title
	if w.owner == nil {
		w.p.titleDirty = true
	}
}

// SetBounds moves a popup. Top-level windows always cover the terminal once
// its size is known.
func (w *Window) SetBounds(r forms.Rect) {
	if w.owner == nil && w.p.cols > 0 {
		r.Width, r.Height = w.bounds.Width, w.bounds.Height
	}
	w.bounds = r
}

func (w *Window) ScaleFactor() float64 { return 1 }

// Paint records a frame and rasterizes it into cells.
func (w *Window) Paint(fn func(forms.Canvas)) {
	rec := forms.NewRecorder(w.p.theme)
	rec.SetMeasurer(measure)
	fn(rec)

	frame := newGrid(cellsFor(w.bounds.Width, cellWidth), cellsFor(w.bounds.Height, cellHeight))
	frame.draw(rec.Commands)
	w.frame = frame
	w.frames++
}

// origin returns the window's top left corner in screen pixels. Popup bounds
// are relative to their owner.
func (w *Window) origin() forms.Point {
	if w.owner == nil {
		return forms.Point{}
	}
	return w.owner.origin().Add(w.bounds.Location())
}

func (w *Window) Title() string      { return w.title }
func (w *Window) Bounds() forms.Rect { return w.bounds }
func (w *Window) Visible() bool      { return w.visible }
func (w *Window) Closed() bool       { return w.closed }
func (w *Window) Frames() int        { return w.frames }

// Lines returns the last painted frame as plain text.
func (w *Window) Lines() []string {
	if w.frame == nil {
		return nil
	}
	return w.frame.lines()
}
