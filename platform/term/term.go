// Package term is a forms platform that runs inside a terminal. A bubbletea
// program owns the UI thread, windows are cell grids composed in creation
// order, and terminal keys and mouse reports are translated to forms input.
package term

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agiangrant/formkit/forms"
)

// Option configures a Platform.
type Option func(*Platform)

// WithTheme sets the palette used when recording frames.
func WithTheme(t *forms.Theme) Option {
	return func(p *Platform) {
		if t != nil {
			p.theme = t
		}
	}
}

// WithLogger sets the logger for terminal lifecycle messages. Output must
// not go to the terminal the program draws on.
func WithLogger(l *slog.Logger) Option {
	return func(p *Platform) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProgramOptions appends bubbletea options, for example custom input and
// output streams.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(p *Platform) {
		p.programOpts = append(p.programOpts, opts...)
	}
}

// Platform implements forms.Platform on a terminal.
type Platform struct {
	theme       *forms.Theme
	logger      *slog.Logger
	programOpts []tea.ProgramOption

	program atomic.Pointer[tea.Program]
	pending atomic.Bool
	handler func()

	// UI thread only.
	windows    []*Window
	cols, rows int
	titleDirty bool
}

var _ forms.Platform = (*Platform)(nil)

// New creates a terminal platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		theme:  forms.DarkTheme(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// signalMsg asks the model to run the signaled handler.
type signalMsg struct{}

// SetSignaledHandler sets the function run on the UI thread after Signal.
func (p *Platform) SetSignaledHandler(fn func()) {
	p.handler = fn
}

// Signal wakes the UI thread. Signals are merged until the handler runs.
func (p *Platform) Signal() {
	if !p.pending.CompareAndSwap(false, true) {
		return
	}
	if prog := p.program.Load(); prog != nil {
		// Send blocks until the program reads it.
		go prog.Send(signalMsg{})
	}
}

// RunLoop runs the bubbletea program on the calling goroutine until ctx is
// cancelled or the program fails.
func (p *Platform) RunLoop(ctx context.Context) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	prog := tea.NewProgram(model{p}, append(opts, p.programOpts...)...)
	p.program.Store(prog)
	defer p.program.Store(nil)

	p.logger.Debug("terminal program starting")
	_, err := prog.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (p *Platform) CreateWindow(host forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	return p.newWindow(nil, host, opts), nil
}

func (p *Platform) CreatePopup(owner forms.WindowImpl, host forms.WindowHost, opts forms.WindowOptions) (forms.WindowImpl, error) {
	o, _ := owner.(*Window)
	return p.newWindow(o, host, opts), nil
}

func (p *Platform) newWindow(owner *Window, host forms.WindowHost, opts forms.WindowOptions) *Window {
	w := &Window{p: p, host: host, owner: owner, title: opts.Title, bounds: opts.Bounds}
	if owner == nil {
		p.titleDirty = true
		if p.cols > 0 {
			w.bounds.Width, w.bounds.Height = p.cols*cellWidth, p.rows*cellHeight
		}
	}
	p.windows = append(p.windows, w)
	return w
}

// mainWindow returns the first open top-level window.
func (p *Platform) mainWindow() *Window {
	for _, w := range p.windows {
		if w.owner == nil && !w.closed {
			return w
		}
	}
	return nil
}

// ============================================================================
// Model
// ============================================================================

type model struct {
	p *Platform
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return signalMsg{} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.p.update(msg)
	if m.p.titleDirty {
		m.p.titleDirty = false
		if w := m.p.mainWindow(); w != nil {
			return m, tea.SetWindowTitle(w.title)
		}
	}
	return m, nil
}

func (m model) View() string {
	return m.p.compose().render()
}

func (p *Platform) update(msg tea.Msg) {
	switch msg := msg.(type) {
	case signalMsg:
		p.pending.Store(false)
		if p.handler != nil {
			p.handler()
		}
	case tea.WindowSizeMsg:
		p.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		p.key(msg)
	case tea.MouseMsg:
		p.mouse(tea.MouseEvent(msg))
	}
}

func (p *Platform) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
	p.logger.Debug("terminal resized", "cols", cols, "rows", rows)
	for _, w := range p.windows {
		if w.owner != nil || w.closed {
			continue
		}
		size := forms.Size{Width: cols * cellWidth, Height: rows * cellHeight}
		w.bounds.Width, w.bounds.Height = size.Width, size.Height
		w.host.HandleResize(size)
		w.host.HandleExpose()
	}
}

func (p *Platform) key(msg tea.KeyMsg) {
	w := p.mainWindow()
	if w == nil {
		return
	}
	if msg.Type == tea.KeyCtrlC {
		w.host.HandleCloseRequest()
		return
	}
	for _, ev := range translateKey(msg) {
		if w.closed {
			return
		}
		w.host.HandleInput(ev)
	}
}

// translateKey maps a terminal key to forms input. Printable runes become
// character events; keys forms does not name are dropped.
func translateKey(msg tea.KeyMsg) []forms.InputEvent {
	var mods forms.Modifiers
	if msg.Alt {
		mods |= forms.ModAlt
	}
	press := func(k forms.Key) []forms.InputEvent {
		return []forms.InputEvent{forms.KeyPress(k, mods)}
	}

	switch msg.Type {
	case tea.KeyEsc:
		return press(forms.KeyEscape)
	case tea.KeyEnter:
		return press(forms.KeyEnter)
	case tea.KeySpace:
		return press(forms.KeySpace)
	case tea.KeyTab:
		return press(forms.KeyTab)
	case tea.KeyShiftTab:
		mods |= forms.ModShift
		return press(forms.KeyTab)
	case tea.KeyBackspace:
		return press(forms.KeyBackspace)
	case tea.KeyUp:
		return press(forms.KeyUp)
	case tea.KeyDown:
		return press(forms.KeyDown)
	case tea.KeyLeft:
		return press(forms.KeyLeft)
	case tea.KeyRight:
		return press(forms.KeyRight)
	case tea.KeyHome:
		return press(forms.KeyHome)
	case tea.KeyEnd:
		return press(forms.KeyEnd)
	case tea.KeyF4:
		return press(forms.KeyF4)
	case tea.KeyRunes:
		if msg.Paste {
			return nil
		}
		evs := make([]forms.InputEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			ev := forms.CharInput(r)
			ev.Mods = mods
			evs = append(evs, ev)
		}
		return evs
	}
	return nil
}

func (p *Platform) mouse(m tea.MouseEvent) {
	pt := cellCenter(m.X, m.Y)
	w := p.windowAt(pt)
	if w == nil {
		return
	}
	local := pt.Sub(w.origin())

	var ev forms.InputEvent
	switch {
	case m.IsWheel():
		ev = forms.InputEvent{Kind: forms.InputMouseWheel, X: local.X, Y: local.Y, DeltaY: 1}
		if m.Button == tea.MouseButtonWheelDown {
			ev.DeltaY = -1
		}
	case m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft:
		ev = forms.MouseDown(local.X, local.Y)
	case m.Action == tea.MouseActionRelease:
		// Terminals in X10 mode report no button on release.
		ev = forms.MouseUp(local.X, local.Y)
	case m.Action == tea.MouseActionMotion:
		ev = forms.MouseMove(local.X, local.Y)
	default:
		return
	}
	if m.Shift {
		ev.Mods |= forms.ModShift
	}
	if m.Ctrl {
		ev.Mods |= forms.ModCtrl
	}
	if m.Alt {
		ev.Mods |= forms.ModAlt
	}
	w.host.HandleInput(ev)
}

// windowAt returns the topmost visible window under pt.
func (p *Platform) windowAt(pt forms.Point) *Window {
	for i := len(p.windows) - 1; i >= 0; i-- {
		w := p.windows[i]
		if !w.visible || w.closed {
			continue
		}
		o := w.origin()
		if (forms.Rect{X: o.X, Y: o.Y, Width: w.bounds.Width, Height: w.bounds.Height}).Contains(pt) {
			return w
		}
	}
	return nil
}

// compose stacks every visible window onto a screen sized grid.
func (p *Platform) compose() *grid {
	cols, rows := p.cols, p.rows
	if main := p.mainWindow(); cols == 0 && main != nil && main.frame != nil {
		cols, rows = main.frame.cols, main.frame.rows
	}
	screen := newGrid(cols, rows)
	for _, w := range p.windows {
		if !w.visible || w.closed || w.frame == nil {
			continue
		}
		o := w.origin()
		screen.blit(w.frame, o.X/cellWidth, o.Y/cellHeight)
	}
	return screen
}

// Screen returns the composed screen as plain text lines.
func (p *Platform) Screen() []string {
	return p.compose().lines()
}
