// Package headless is a forms platform without a display. Windows paint into
// raster canvases and input is injected programmatically, which makes it the
// platform for tests, snapshots and CI.
package headless

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/render/raster"
)

// ErrNoFrame is returned by Snapshot before the window has painted.
var ErrNoFrame = errors.New("headless: window has not painted a frame")

// Option configures a Platform.
type Option func(*Platform)

// WithScale sets the scale factor every window reports.
func WithScale(s float64) Option {
	return func(p *Platform) {
		if s > 0 {
			p.scale = s
		}
	}
}

// WithTheme sets the palette used by window canvases.
func WithTheme(t *forms.Theme) Option {
	return func(p *Platform) {
		if t != nil {
			p.theme = t
		}
	}
}

// WithLogger sets the logger for window lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(p *Platform) {
		if l != nil {
			p.logger = l
		}
	}
}

// Platform implements forms.Platform in memory.
type Platform struct {
	*forms.EventLoop

	scale  float64
	theme  *forms.Theme
	logger *slog.Logger

	mu      sync.Mutex
	pending []func()
	windows []*Window
}

var _ forms.Platform = (*Platform)(nil)

// New creates a headless platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		EventLoop: forms.NewEventLoop(),
		scale:     1,
		theme:     forms.LightTheme(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSignaledHandler wraps fn so injected input is delivered on the UI
// thread before queued jobs run.
func (p *Platform) SetSignaledHandler(fn func()) {
	p.EventLoop.SetSignaledHandler(func() {
		p.drain()
		if fn != nil {
			fn()
		}
	})
}

func (p *Platform) enqueue(fn func()) {
	p.mu.Lock()
	p.pending = append(p.pending, fn)
	p.mu.Unlock()
	p.Signal()
}

func (p *Platform) drain() {
	for {
		p.mu.Lock()
		batch := p.pending
		p.pending = nil
		p.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

func (p *Platform) CreateWindow(host forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	return p.newWindow(nil, host, opts), nil
}

func (p *Platform) CreatePopup(owner forms.WindowImpl, host forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	o, _ := owner.(*Window)
	return p.newWindow(o, host, opts), nil
}

func (p *Platform) newWindow(owner *Window, host forms.WindowHost, opts forms.WindowOptions) *Window {
	w := &Window{
		p:      p,
		host:   host,
		owner:  owner,
		title:  opts.Title,
		bounds: opts.Bounds,
		scale:  p.scale,
	}
	p.mu.Lock()
	p.windows = append(p.windows, w)
	p.mu.Unlock()
	p.logger.Debug("headless window created", "title", opts.Title, "popup", owner != nil)
	return w
}

// Windows returns every window created so far, popups included, in
// creation order.
func (p *Platform) Windows() []*Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Window, len(p.windows))
	copy(out, p.windows)
	return out
}

// MainWindow returns the first top-level window, or nil.
func (p *Platform) MainWindow() *Window {
	for _, w := range p.Windows() {
		if w.owner == nil {
			return w
		}
	}
	return nil
}

// ============================================================================
// Window
// ============================================================================

// Window is an in-memory window. Methods from forms.WindowImpl run on the UI
// thread; Send, RequestClose and Resize may be called from any goroutine.
type Window struct {
	p     *Platform
	host  forms.WindowHost
	owner *Window

	mu      sync.Mutex
	title   string
	bounds  forms.Rect
	scale   float64
	visible bool
	closed  bool
	frames  int
	canvas  *raster.Canvas
}

func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
}

func (w *Window) Hide() {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
}

func (w *Window) Close() {
	w.mu.Lock()
	w.visible = false
	w.closed = true
	w.mu.Unlock()
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *Window) SetBounds(r forms.Rect) {
	w.mu.Lock()
	w.bounds = r
	w.mu.Unlock()
}

func (w *Window) ScaleFactor() float64 { return w.scale }

// Paint renders a frame into the window's canvas.
func (w *Window) Paint(fn func(forms.Canvas)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	width := forms.ScaleLogical(w.bounds.Width, w.scale)
	height := forms.ScaleLogical(w.bounds.Height, w.scale)
	if w.canvas == nil {
		w.canvas = raster.New(width, height, w.p.theme)
	} else {
		w.canvas.Resize(width, height)
	}
	fn(w.canvas)
	w.frames++
}

func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Bounds returns the logical bounds last set by the forms layer.
func (w *Window) Bounds() forms.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds
}

func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// IsPopup reports whether the window was created as a popup.
func (w *Window) IsPopup() bool { return w.owner != nil }

// Frames returns how many frames have been painted.
func (w *Window) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Frame returns a copy of the last painted frame, or nil before the first
// paint.
func (w *Window) Frame() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canvas == nil {
		return nil
	}
	src := w.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// Snapshot writes the last painted frame as PNG.
func (w *Window) Snapshot(out io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.canvas == nil {
		return ErrNoFrame
	}
	return w.canvas.EncodePNG(out)
}

// Send delivers ev to the window on the UI thread.
func (w *Window) Send(ev forms.InputEvent) {
	w.p.enqueue(func() {
		if !w.Closed() {
			w.host.HandleInput(ev)
		}
	})
}

// Click sends a left button press and release at (x, y) device pixels.
func (w *Window) Click(x, y int) {
	w.Send(forms.MouseDown(x, y))
	w.Send(forms.MouseUp(x, y))
}

// RequestClose asks the window to close as if the user clicked its close
// button.
func (w *Window) RequestClose() {
	w.p.enqueue(func() {
		if !w.Closed() {
			w.host.HandleCloseRequest()
		}
	})
}

// Resize reports a new client size in device pixels.
func (w *Window) Resize(width, height int) {
	w.p.enqueue(func() {
		w.host.HandleResize(forms.Size{Width: width, Height: height})
	})
}
