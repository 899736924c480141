package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

var (
	// ErrRunAlreadyActive is returned by Run and RunForm once a main loop has
	// been started on the Application.
	ErrRunAlreadyActive = errors.New("forms: cannot call Run multiple times")
	// ErrFormClosed is returned when showing a closed form, or a popup whose
	// owner is closed.
	ErrFormClosed = errors.New("forms: form is closed")
	// ErrNoPlatform is returned when windows are requested from an
	// Application created without a platform.
	ErrNoPlatform = errors.New("forms: no platform")
	// ErrNotHosted is returned when an operation needs the control to be on
	// a form.
	ErrNotHosted = errors.New("forms: control is not hosted on a form")
)

// errExitRequested is the cancellation cause for a normal Exit.
var errExitRequested = errors.New("forms: exit requested")

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTheme sets the initial theme.
func WithTheme(t *Theme) Option {
	return func(a *Application) {
		if t != nil {
			a.theme = t
		}
	}
}

// WithScaleFactor forces a device scale for every surface, overriding what
// the platform reports. Zero keeps the platform value.
func WithScaleFactor(s float64) Option {
	return func(a *Application) { a.scaleOverride = s }
}

// WithRenderers replaces the renderer registry.
func WithRenderers(r *RendererRegistry) Option {
	return func(a *Application) {
		if r != nil {
			a.renderers = r
		}
	}
}

// WithFocusCues shows focus rectangles from the start instead of waiting for
// the first keyboard navigation.
func WithFocusCues(always bool) Option {
	return func(a *Application) { a.alwaysFocusCues = always }
}

// ============================================================================
// Application
// ============================================================================

// Application drives the UI thread: it runs the main loop, tracks open
// forms, and coordinates popups and menus. Exit, RunOnUIThread and IsExiting
// are safe from any goroutine; everything else belongs to the UI thread,
// which is the goroutine that calls Run.
type Application struct {
	platform   Platform
	dispatcher *Dispatcher
	renderers  *RendererRegistry
	theme      *Theme
	logger     *slog.Logger

	scaleOverride   float64
	alwaysFocusCues bool

	mu         sync.Mutex
	started    bool
	exiting    bool
	exitRaised bool
	cancel     context.CancelCauseFunc
	onExit     []func()

	openForms   *FormCollection
	startupOnce sync.Once
	startupPath string

	activeMenu  *Menu
	activePopup *PopupWindow
	dirty       []*surface
}

// New creates an Application on top of p. A nil platform yields an
// Application whose loop runs but which cannot create windows.
func New(p Platform, opts ...Option) *Application {
	if p == nil {
		p = noPlatform{NewEventLoop()}
	}
	a := &Application{
		platform:  p,
		renderers: NewRendererRegistry(),
		theme:     LightTheme(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dispatcher = NewDispatcher(p)
	a.dispatcher.OnIdle(a.paintDirty)
	a.dispatcher.OnFailure(a.fail)
	return a
}

func (a *Application) Dispatcher() *Dispatcher       { return a.dispatcher }
func (a *Application) Renderers() *RendererRegistry { return a.renderers }
func (a *Application) Theme() *Theme                { return a.theme }
func (a *Application) Logger() *slog.Logger         { return a.logger }
func (a *Application) Platform() Platform           { return a.platform }

// ============================================================================
// Main Loop
// ============================================================================

// RunForm shows mainForm and runs the main loop until it closes or Exit is
// called. It fails without showing the form if a loop was already started.
func (a *Application) RunForm(mainForm *Form) error {
	a.mu.Lock()
	started := a.started
	a.mu.Unlock()
	if started {
		return ErrRunAlreadyActive
	}
	if mainForm == nil {
		return fmt.Errorf("forms: RunForm: nil form")
	}
	if err := mainForm.Show(); err != nil {
		return err
	}
	return a.Run(mainForm)
}

// Run runs the main loop on the calling goroutine until c closes or Exit is
// called. c may be nil, in which case only Exit ends the loop. The exit
// notification is delivered exactly once whether the loop ends normally or
// fails. A loop can be started only once per Application.
func (a *Application) Run(c Closeable) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrRunAlreadyActive
	}
	a.started = true
	a.mu.Unlock()

	if c != nil {
		c.OnClosed(a.Exit)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	a.mu.Lock()
	a.cancel = cancel
	exiting := a.exiting
	a.mu.Unlock()
	if exiting {
		cancel(errExitRequested)
	}

	a.logger.Info("main loop started")
	loopErr := a.dispatcher.MainLoop(ctx)
	cause := context.Cause(ctx)
	cancel(nil)

	a.raiseExit()
	a.logger.Info("main loop stopped")

	if cause != nil && !errors.Is(cause, errExitRequested) && !errors.Is(cause, context.Canceled) {
		return cause
	}
	if loopErr != nil {
		return fmt.Errorf("forms: main loop: %w", loopErr)
	}
	return nil
}

// Exit ends the main loop. It may be called from any goroutine, any number
// of times; exit observers run once, on the first call's goroutine.
func (a *Application) Exit() {
	a.mu.Lock()
	a.exiting = true
	cancel := a.cancel
	a.mu.Unlock()

	a.raiseExit()
	if cancel != nil {
		cancel(errExitRequested)
	}
}

// IsExiting reports whether Exit has been called.
func (a *Application) IsExiting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exiting
}

// OnExit subscribes fn to the exit notification.
func (a *Application) OnExit(fn func()) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	a.onExit = append(a.onExit, fn)
	a.mu.Unlock()
}

func (a *Application) raiseExit() {
	a.mu.Lock()
	if a.exitRaised {
		a.mu.Unlock()
		return
	}
	a.exitRaised = true
	handlers := slices.Clone(a.onExit)
	a.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// fail ends the loop with err as the cause.
func (a *Application) fail(err error) {
	a.logger.Error("UI job failed", "err", err)
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel != nil {
		cancel(err)
	}
}

// RunOnUIThread queues fn for the UI thread. It never blocks.
func (a *Application) RunOnUIThread(fn func()) {
	a.dispatcher.Post(fn)
}

// ============================================================================
// Forms and Environment
// ============================================================================

// OpenForms returns the forms that are shown and not closed, in the order
// they were first shown.
func (a *Application) OpenForms() *FormCollection {
	if a.openForms == nil {
		a.openForms = &FormCollection{}
	}
	return a.openForms
}

// StartupPath returns the directory containing the executable, falling back
// to the working directory.
func (a *Application) StartupPath() string {
	a.startupOnce.Do(func() {
		if exe, err := os.Executable(); err == nil {
			a.startupPath = filepath.Dir(exe)
			return
		}
		if wd, err := os.Getwd(); err == nil {
			a.startupPath = wd
		}
	})
	return a.startupPath
}

// SetTheme swaps the theme and notifies every open form.
func (a *Application) SetTheme(t *Theme) {
	if t == nil {
		return
	}
	a.theme = t
	a.DoThemeChanged()
}

// DoThemeChanged notifies every open form, in OpenForms order, that the
// theme changed.
func (a *Application) DoThemeChanged() {
	for _, f := range a.OpenForms().All() {
		f.notifyThemeChanged()
	}
	if a.activePopup != nil {
		a.activePopup.Invalidate()
	}
	if a.activeMenu != nil {
		for _, m := range a.activeMenu.Chain() {
			m.view.Invalidate()
		}
	}
}

// ============================================================================
// Paint Scheduling
// ============================================================================

func (a *Application) queuePaint(s *surface) {
	a.dirty = append(a.dirty, s)
	a.dispatcher.RequestIdle()
}

func (a *Application) paintDirty() {
	for len(a.dirty) > 0 {
		batch := a.dirty
		a.dirty = nil
		for _, s := range batch {
			s.paint()
		}
	}
}

// noPlatform is used when New is given a nil platform.
type noPlatform struct {
	*EventLoop
}

func (noPlatform) CreateWindow(WindowHost, WindowOptions) (WindowImpl, error) {
	return nil, ErrNoPlatform
}

func (noPlatform) CreatePopup(WindowImpl, WindowHost, WindowOptions) (WindowImpl, error) {
	return nil, ErrNoPlatform
}
