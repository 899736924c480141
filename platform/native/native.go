// Package native is the forms platform backed by the formkit native host
// library. The host owns the OS event loop and windows; frames are recorded
// in Go and presented to the host as JSON command lists.
package native

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/internal/ffi"
)

// host is the slice of the ffi package the platform uses.
type host interface {
	Run(handler ffi.EventHandler) error
	RequestExit()
	Wake()
	CreateWindow(cfg ffi.WindowConfig) (uint32, error)
	ShowWindow(id uint32)
	HideWindow(id uint32)
	CloseWindow(id uint32)
	SetWindowTitle(id uint32, title string)
	SetWindowBounds(id uint32, x, y int32, width, height uint32)
	WindowScaleFactor(id uint32) float64
	Present(id uint32, frame []byte) error
	MeasureText(text string, size float32) (float32, bool)
}

type ffiHost struct{}

func (ffiHost) Run(h ffi.EventHandler) error                      { return ffi.Run(h) }
func (ffiHost) RequestExit()                                      { ffi.RequestExit() }
func (ffiHost) Wake()                                             { ffi.Wake() }
func (ffiHost) CreateWindow(cfg ffi.WindowConfig) (uint32, error) { return ffi.CreateWindow(cfg) }
func (ffiHost) ShowWindow(id uint32)                              { ffi.ShowWindow(id) }
func (ffiHost) HideWindow(id uint32)                              { ffi.HideWindow(id) }
func (ffiHost) CloseWindow(id uint32)                             { ffi.CloseWindow(id) }
func (ffiHost) SetWindowTitle(id uint32, title string)            { ffi.SetWindowTitle(id, title) }
func (ffiHost) WindowScaleFactor(id uint32) float64               { return ffi.WindowScaleFactor(id) }
func (ffiHost) Present(id uint32, frame []byte) error             { return ffi.Present(id, frame) }

func (ffiHost) SetWindowBounds(id uint32, x, y int32, width, height uint32) {
	ffi.SetWindowBounds(id, x, y, width, height)
}

func (ffiHost) MeasureText(text string, size float32) (float32, bool) {
	return ffi.MeasureText(text, size)
}

// Option configures a Platform.
type Option func(*Platform)

// WithLibraryPath loads the host library from path instead of searching.
func WithLibraryPath(path string) Option {
	return func(p *Platform) {
		if path != "" {
			ffi.SetLibraryPath(path)
		}
	}
}

// WithTheme sets the palette used to resolve colors in recorded frames.
func WithTheme(t *forms.Theme) Option {
	return func(p *Platform) {
		if t != nil {
			p.theme = t
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Platform) {
		if l != nil {
			p.logger = l
		}
	}
}

// Platform implements forms.Platform on the native host.
type Platform struct {
	host    host
	theme   *forms.Theme
	logger  *slog.Logger
	handler func()

	// Host main thread only.
	windows map[uint32]*Window
	// hostMeasures caches whether the host can measure text: 0 unknown,
	// 1 yes, -1 no.
	hostMeasures int8
}

var _ forms.Platform = (*Platform)(nil)

// New creates a native platform. The host library is loaded when the loop
// starts or the first window is created.
func New(opts ...Option) *Platform {
	return newPlatform(ffiHost{}, opts...)
}

func newPlatform(h host, opts ...Option) *Platform {
	p := &Platform{
		host:    h,
		theme:   forms.LightTheme(),
		logger:  slog.New(slog.DiscardHandler),
		windows: make(map[uint32]*Window),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Platform) SetSignaledHandler(fn func()) { p.handler = fn }

// Signal asks the host to deliver a wake event on its main thread.
func (p *Platform) Signal() { p.host.Wake() }

// RunLoop runs the host loop on the calling goroutine. On macOS that must be
// the main thread; callers lock it with runtime.LockOSThread in init.
func (p *Platform) RunLoop(ctx context.Context) error {
	stop := context.AfterFunc(ctx, p.host.RequestExit)
	defer stop()
	if ctx.Err() != nil {
		return nil
	}
	p.logger.Debug("native host loop starting")
	return p.host.Run(p.handle)
}

func (p *Platform) CreateWindow(h forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	return p.create(h, ffi.WindowConfig{
		Title:     opts.Title,
		X:         int32(opts.Bounds.X),
		Y:         int32(opts.Bounds.Y),
		Width:     uint32(max(opts.Bounds.Width, 1)),
		Height:    uint32(max(opts.Bounds.Height, 1)),
		Resizable: true,
	})
}

func (p *Platform) CreatePopup(owner forms.WindowImpl, h forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	cfg := ffi.WindowConfig{
		X:      int32(opts.Bounds.X),
		Y:      int32(opts.Bounds.Y),
		Width:  uint32(max(opts.Bounds.Width, 1)),
		Height: uint32(max(opts.Bounds.Height, 1)),
		Popup:  true,
	}
	if o, ok := owner.(*Window); ok {
		cfg.Owner = o.id
	}
	return p.create(h, cfg)
}

func (p *Platform) create(h forms.WindowHost, cfg ffi.WindowConfig) (*Window, error) {
	id, err := p.host.CreateWindow(cfg)
	if err != nil {
		return nil, err
	}
	w := &Window{p: p, id: id, host: h, width: int(cfg.Width), height: int(cfg.Height)}
	p.windows[id] = w
	p.logger.Debug("native window created", "id", id, "popup", cfg.Popup)
	return w, nil
}

// handle dispatches one host event on the main thread.
func (p *Platform) handle(ev ffi.Event) {
	switch ev.Type {
	case ffi.EventReady, ffi.EventWake:
		if p.handler != nil {
			p.handler()
		}
		return
	}

	w := p.windows[ev.WindowID]
	if w == nil {
		return
	}
	if ev.ScaleFactor > 0 {
		w.scale = ev.ScaleFactor
	}
	switch ev.Type {
	case ffi.EventRedrawRequested:
		w.host.HandleExpose()
	case ffi.EventResized:
		w.host.HandleResize(forms.Size{Width: int(ev.Width()), Height: int(ev.Height())})
	case ffi.EventCloseRequested:
		w.host.HandleCloseRequest()
	case ffi.EventFocusLost:
		w.host.HandleDeactivate()
	default:
		in, ok := translateEvent(ev)
		if !ok {
			return
		}
		switch in.Kind {
		case forms.InputMouseMove:
			w.lastX, w.lastY = in.X, in.Y
		case forms.InputMouseDown, forms.InputMouseUp, forms.InputMouseWheel:
			in.X, in.Y = w.lastX, w.lastY
		}
		w.host.HandleInput(in)
	}
}

// translateEvent converts a host input event. Events forms does not handle
// report false.
func translateEvent(ev ffi.Event) (forms.InputEvent, bool) {
	mods := translateMods(ev.Modifiers())
	switch ev.Type {
	case ffi.EventMouseMoved:
		return forms.MouseMove(int(ev.MouseX()), int(ev.MouseY())), true
	case ffi.EventMousePressed, ffi.EventMouseReleased:
		// Button events carry no position; the last move event does.
		kind := forms.InputMouseDown
		if ev.Type == ffi.EventMouseReleased {
			kind = forms.InputMouseUp
		}
		return forms.InputEvent{Kind: kind, Button: translateButton(ev.MouseButton())}, true
	case ffi.EventMouseWheel:
		return forms.InputEvent{Kind: forms.InputMouseWheel, DeltaY: int(math.Round(ev.ScrollDelta()))}, true
	case ffi.EventKeyPressed, ffi.EventKeyReleased:
		key, ok := keymap[ev.Keycode()]
		if !ok {
			return forms.InputEvent{}, false
		}
		in := forms.KeyPress(key, mods)
		if ev.Type == ffi.EventKeyReleased {
			in.Kind = forms.InputKeyUp
		}
		return in, true
	case ffi.EventCharInput:
		r := ev.Char()
		if r < 0x20 || r == 0x7f {
			return forms.InputEvent{}, false
		}
		return forms.CharInput(r), true
	}
	return forms.InputEvent{}, false
}

var keymap = map[ffi.Keycode]forms.Key{
	ffi.KeyEscape:      forms.KeyEscape,
	ffi.KeyEnter:       forms.KeyEnter,
	ffi.KeyNumpadEnter: forms.KeyEnter,
	ffi.KeySpace:       forms.KeySpace,
	ffi.KeyTab:         forms.KeyTab,
	ffi.KeyBackspace:   forms.KeyBackspace,
	ffi.KeyUp:          forms.KeyUp,
	ffi.KeyDown:        forms.KeyDown,
	ffi.KeyLeft:        forms.KeyLeft,
	ffi.KeyRight:       forms.KeyRight,
	ffi.KeyHome:        forms.KeyHome,
	ffi.KeyEnd:         forms.KeyEnd,
	ffi.KeyF4:          forms.KeyF4,
}

func translateMods(m ffi.Modifiers) forms.Modifiers {
	var out forms.Modifiers
	if m&ffi.ModShift != 0 {
		out |= forms.ModShift
	}
	if m&ffi.ModCtrl != 0 {
		out |= forms.ModCtrl
	}
	if m&ffi.ModAlt != 0 {
		out |= forms.ModAlt
	}
	if m&ffi.ModSuper != 0 {
		out |= forms.ModSuper
	}
	return out
}

func translateButton(b int) forms.MouseButton {
	switch b {
	case ffi.MouseLeft:
		return forms.MouseButtonLeft
	case ffi.MouseRight:
		return forms.MouseButtonRight
	case ffi.MouseMiddle:
		return forms.MouseButtonMiddle
	}
	return forms.MouseButtonNone
}

// ============================================================================
// Window
// ============================================================================

// Window is a native window or popup. All methods run on the host main
// thread.
type Window struct {
	p    *Platform
	id   uint32
	host forms.WindowHost

	scale         float64
	width, height int
	lastX, lastY  int
}

// frame is the JSON document presented to the host.
type frame struct {
	Window   uint32              `json:"window"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Commands []forms.DrawCommand `json:"commands"`
}

func (w *Window) ID() uint32 { return w.id }

func (w *Window) Show() { w.p.host.ShowWindow(w.id) }
func (w *Window) Hide() { w.p.host.HideWindow(w.id) }

func (w *Window) Close() {
	w.p.host.CloseWindow(w.id)
	delete(w.p.windows, w.id)
}

func (w *Window) SetTitle(title string) { w.p.host.SetWindowTitle(w.id, title) }

func (w *Window) SetBounds(r forms.Rect) {
	w.width, w.height = r.Width, r.Height
	w.p.host.SetWindowBounds(w.id, int32(r.X), int32(r.Y), uint32(max(r.Width, 1)), uint32(max(r.Height, 1)))
}

func (w *Window) ScaleFactor() float64 {
	if w.scale <= 0 {
		w.scale = w.p.host.WindowScaleFactor(w.id)
	}
	if w.scale <= 0 {
		return 1
	}
	return w.scale
}

// textSize is the host font size in logical units.
const textSize = 12

func (p *Platform) canMeasure() bool {
	if p.hostMeasures == 0 {
		p.hostMeasures = -1
		if _, ok := p.host.MeasureText("x", textSize); ok {
			p.hostMeasures = 1
		}
	}
	return p.hostMeasures > 0
}

func (w *Window) measure(text string) forms.Size {
	if text == "" {
		return forms.Size{}
	}
	scale := w.ScaleFactor()
	width, ok := w.p.host.MeasureText(text, float32(textSize*scale))
	if !ok {
		return forms.Size{}
	}
	return forms.Size{
		Width:  int(math.Ceil(float64(width))),
		Height: forms.ScaleLogical(textSize*5/4, scale),
	}
}

// Paint records a frame and presents it.
func (w *Window) Paint(fn func(forms.Canvas)) {
	rec := forms.NewRecorder(w.p.theme)
	if w.p.canMeasure() {
		rec.SetMeasurer(w.measure)
	}
	fn(rec)

	scale := w.ScaleFactor()
	data, err := json.Marshal(frame{
		Window:   w.id,
		Width:    forms.ScaleLogical(w.width, scale),
		Height:   forms.ScaleLogical(w.height, scale),
		Commands: rec.Commands,
	})
	if err != nil {
		w.p.logger.Error("encode frame", "window", w.id, "err", err)
		return
	}
	if err := w.p.host.Present(w.id, data); err != nil {
		w.p.logger.Error("present frame", "window", w.id, "err", err)
	}
}
