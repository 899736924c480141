package term

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/formkit/forms"
)

func newTermApp(t *testing.T) (*Platform, *forms.Application, *forms.Form) {
	t.Helper()
	p := New()
	app := forms.New(p)
	f := app.NewForm("term")
	require.NoError(t, f.Show())
	p.update(tea.WindowSizeMsg{Width: 30, Height: 8})
	return p, app, f
}

// click sends a left press and release at a cell and runs pending UI work.
func click(p *Platform, col, row int) {
	p.update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	p.update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease})
	p.update(signalMsg{})
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []forms.InputEvent
	}{
		{name: "escape", msg: tea.KeyMsg{Type: tea.KeyEsc}, want: []forms.InputEvent{forms.KeyPress(forms.KeyEscape, 0)}},
		{name: "shift tab", msg: tea.KeyMsg{Type: tea.KeyShiftTab}, want: []forms.InputEvent{forms.KeyPress(forms.KeyTab, forms.ModShift)}},
		{name: "alt down", msg: tea.KeyMsg{Type: tea.KeyDown, Alt: true}, want: []forms.InputEvent{forms.KeyPress(forms.KeyDown, forms.ModAlt)}},
		{name: "space", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, want: []forms.InputEvent{forms.KeyPress(forms.KeySpace, 0)}},
		{name: "runes", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sa")}, want: []forms.InputEvent{forms.CharInput('s'), forms.CharInput('a')}},
		{name: "paste dropped", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Paste: true}},
		{name: "unnamed", msg: tea.KeyMsg{Type: tea.KeyF9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, translateKey(tt.msg))
		})
	}
}

func TestResizeCoversTerminal(t *testing.T) {
	p, _, f := newTermApp(t)
	require.Equal(t, forms.Size{Width: 30 * cellWidth, Height: 8 * cellHeight}, f.Size())

	p.update(signalMsg{})
	require.Len(t, p.Screen(), 8)
	require.Equal(t, 1, p.mainWindow().Frames())
}

func TestCheckBoxInCells(t *testing.T) {
	p, _, f := newTermApp(t)
	cb := forms.NewCheckBox("Enable")
	cb.SetBounds(forms.NewRect(0, 0, 140, 26))
	f.AddControl(cb)
	p.update(signalMsg{})
	require.Equal(t, "[ ] Enable", p.Screen()[0])

	click(p, 1, 0)
	require.True(t, cb.Checked())
	require.Equal(t, "[x] Enable", p.Screen()[0])
}

func TestRadioButtonInCells(t *testing.T) {
	p, _, f := newTermApp(t)
	rb := forms.NewRadioButton("Fast")
	rb.SetBounds(forms.NewRect(0, 0, 100, 30))
	rb.SetChecked(true)
	f.AddControl(rb)
	p.update(signalMsg{})
	require.Equal(t, "(•) Fast", p.Screen()[1])
}

func TestComboBoxPopupComposed(t *testing.T) {
	p, _, f := newTermApp(t)
	combo := forms.NewComboBox("alpha", "beta")
	combo.SetBounds(forms.NewRect(0, 0, 140, 26))
	f.AddControl(combo)
	p.update(signalMsg{})

	click(p, 1, 0)
	require.True(t, combo.DroppedDown())
	screen := p.Screen()
	require.Equal(t, " alpha", screen[2])
	require.Equal(t, " beta", screen[4])

	click(p, 1, 4)
	require.False(t, combo.DroppedDown())
	require.Equal(t, "beta", combo.SelectedItem())
	require.NotContains(t, strings.Join(p.Screen()[2:], "\n"), "alpha")
}

func TestCtrlCClosesMainWindow(t *testing.T) {
	p, _, f := newTermApp(t)
	var closed bool
	f.OnClosed(func() { closed = true })

	p.update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, closed)
	require.Nil(t, p.mainWindow())

	require.NotPanics(t, func() { p.update(tea.KeyMsg{Type: tea.KeyEnter}) })
}

func TestKeysReachFocusedControl(t *testing.T) {
	p, _, f := newTermApp(t)
	a := forms.NewCheckBox("A")
	a.SetBounds(forms.NewRect(0, 0, 100, 26))
	b := forms.NewCheckBox("B")
	b.SetBounds(forms.NewRect(0, 26, 100, 26))
	f.AddControl(a, b)

	p.update(tea.KeyMsg{Type: tea.KeyTab})
	p.update(tea.KeyMsg{Type: tea.KeyTab})
	require.Same(t, b, f.FocusedControl())
	p.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.False(t, a.Checked())
	require.True(t, b.Checked())
}

func TestSignalBeforeProgramIsMerged(t *testing.T) {
	p := New()
	runs := 0
	p.SetSignaledHandler(func() { runs++ })
	p.Signal()
	p.Signal()
	require.True(t, p.pending.Load())

	p.update(signalMsg{})
	require.Equal(t, 1, runs)
	require.False(t, p.pending.Load())
}

func TestRunLoopEndsOnExit(t *testing.T) {
	var out bytes.Buffer
	p := New(WithProgramOptions(
		tea.WithInput(nil),
		tea.WithOutput(&out),
		tea.WithoutSignalHandler(),
	))
	app := forms.New(p)
	f := app.NewForm("loop")
	cb := forms.NewCheckBox("Ready")
	cb.SetBounds(forms.NewRect(0, 0, 100, 26))
	f.AddControl(cb)

	app.Dispatcher().OnIdle(func() {
		if w := p.mainWindow(); w != nil && w.Frames() > 0 {
			app.Exit()
		}
	})
	require.NoError(t, app.RunForm(f))
	require.Positive(t, p.mainWindow().Frames())
}

func TestHexColor(t *testing.T) {
	require.Equal(t, "#336699", string(hexColor(forms.PackColor(forms.RGB(0x33, 0x66, 0x99)))))
}
