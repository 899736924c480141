package forms

import (
	"slices"
	"testing"
)

// fakePlatform records created windows and paints into recorders. Its
// threading is a plain EventLoop so Run works without a display.
type fakePlatform struct {
	*EventLoop

	scale   float64
	windows []*fakeWindow
	fail    error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{EventLoop: NewEventLoop(), scale: 1}
}

func (p *fakePlatform) CreateWindow(host WindowHost, opts WindowOptions) (WindowImpl, error) {
	return p.create(nil, host, opts)
}

func (p *fakePlatform) CreatePopup(owner WindowImpl, host WindowHost, opts WindowOptions) (WindowImpl, error) {
	return p.create(owner, host, opts)
}

func (p *fakePlatform) create(owner WindowImpl, host WindowHost, opts WindowOptions) (WindowImpl, error) {
	if p.fail != nil {
		return nil, p.fail
	}
	w := &fakeWindow{
		host:   host,
		owner:  owner,
		popup:  owner != nil,
		title:  opts.Title,
		bounds: opts.Bounds,
		scale:  p.scale,
		rec:    NewRecorder(nil),
	}
	p.windows = append(p.windows, w)
	return w, nil
}

type fakeWindow struct {
	host   WindowHost
	owner  WindowImpl
	popup  bool
	title  string
	bounds Rect
	scale  float64

	shown  bool
	closed bool
	rec    *Recorder
	frame  []DrawCommand
	frames int
}

func (w *fakeWindow) Show()                 { w.shown = true }
func (w *fakeWindow) Hide()                 { w.shown = false }
func (w *fakeWindow) Close()                { w.shown = false; w.closed = true }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) SetBounds(r Rect)      { w.bounds = r }
func (w *fakeWindow) ScaleFactor() float64  { return w.scale }

func (w *fakeWindow) Paint(fn func(Canvas)) {
	w.rec.Reset()
	fn(w.rec)
	w.frame = slices.Clone(w.rec.Commands)
	w.frames++
}

func (w *fakeWindow) find(op DrawOp) []DrawCommand {
	var out []DrawCommand
	for _, c := range w.frame {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (w *fakeWindow) texts() []string {
	var out []string
	for _, c := range w.find(OpDrawText) {
		out = append(out, c.Text)
	}
	return out
}

// click sends a press and release at (x, y).
func (w *fakeWindow) click(x, y int) {
	w.host.HandleInput(MouseDown(x, y))
	w.host.HandleInput(MouseUp(x, y))
}

func (w *fakeWindow) key(k Key, mods Modifiers) {
	w.host.HandleInput(KeyPress(k, mods))
}

func newTestApp(t *testing.T, opts ...Option) (*Application, *fakePlatform) {
	t.Helper()
	p := newFakePlatform()
	return New(p, opts...), p
}

// showForm creates and shows a form and returns its fake window.
func showForm(t *testing.T, app *Application, p *fakePlatform, children ...Element) (*Form, *fakeWindow) {
	t.Helper()
	f := app.NewForm("test")
	f.AddControl(children...)
	if err := f.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	return f, p.windows[len(p.windows)-1]
}

// flush runs queued jobs and pending paints.
func flush(app *Application) {
	app.Dispatcher().RunJobs()
}
