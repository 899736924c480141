package headless

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/formkit/forms"
)

// closeAfterFirstPaint requests close once w has painted.
func closeAfterFirstPaint(app *forms.Application, w func() *Window) {
	requested := false
	app.Dispatcher().OnIdle(func() {
		win := w()
		if !requested && win != nil && win.Frames() > 0 {
			requested = true
			win.RequestClose()
		}
	})
}

func TestRunWithInjectedInput(t *testing.T) {
	p := New()
	app := forms.New(p)

	f := app.NewForm("headless")
	f.SetClientSize(forms.Size{Width: 200, Height: 100})
	cb := forms.NewCheckBox("Enable")
	cb.SetBounds(forms.NewRect(10, 10, 120, 24))
	f.AddControl(cb)
	require.NoError(t, f.Show())

	win := p.MainWindow()
	require.NotNil(t, win)
	require.Equal(t, "headless", win.Title())
	require.True(t, win.Visible())

	win.Click(15, 20)
	closeAfterFirstPaint(app, p.MainWindow)

	var exits int
	app.OnExit(func() { exits++ })
	require.NoError(t, app.Run(f))

	require.True(t, cb.Checked())
	require.Equal(t, 1, exits)
	require.True(t, win.Closed())
	require.Positive(t, win.Frames())

	frame := win.Frame()
	require.Equal(t, image.Rect(0, 0, 200, 100), frame.Bounds())

	var buf bytes.Buffer
	require.NoError(t, win.Snapshot(&buf))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}

func TestScaledWindowFrame(t *testing.T) {
	p := New(WithScale(2))
	app := forms.New(p)
	f := app.NewForm("scaled")
	f.SetClientSize(forms.Size{Width: 50, Height: 40})
	closeAfterFirstPaint(app, p.MainWindow)

	require.NoError(t, app.RunForm(f))
	require.Equal(t, image.Rect(0, 0, 100, 80), p.MainWindow().Frame().Bounds())
}

func TestPopupWindowsAreTracked(t *testing.T) {
	p := New()
	app := forms.New(p)
	combo := forms.NewComboBox("a", "b")
	combo.SetBounds(forms.NewRect(0, 0, 100, 24))
	f := app.NewForm("combo")
	f.AddControl(combo)
	require.NoError(t, f.Show())
	require.NoError(t, combo.ShowDropDown())

	windows := p.Windows()
	require.Len(t, windows, 2)
	require.False(t, windows[0].IsPopup())
	require.True(t, windows[1].IsPopup())
	require.Equal(t, forms.NewRect(0, 24, 100, 40), windows[1].Bounds())
}

func TestSnapshotBeforePaint(t *testing.T) {
	p := New()
	app := forms.New(p)
	require.NoError(t, app.NewForm("x").Show())
	require.ErrorIs(t, p.MainWindow().Snapshot(&bytes.Buffer{}), ErrNoFrame)
}

func TestResizeUpdatesFormBounds(t *testing.T) {
	p := New(WithScale(2))
	app := forms.New(p)
	f := app.NewForm("resize")
	require.NoError(t, f.Show())

	p.MainWindow().Resize(300, 200)
	app.RunOnUIThread(app.Exit)
	require.NoError(t, app.Run(nil))

	require.Equal(t, forms.Size{Width: 150, Height: 100}, f.Size())
}

func TestClosingFormClosesPopupWindows(t *testing.T) {
	p := New()
	app := forms.New(p)
	combo := forms.NewComboBox("a", "b")
	combo.SetBounds(forms.NewRect(0, 0, 100, 24))
	f := app.NewForm("owner")
	f.AddControl(combo)
	require.NoError(t, f.Show())
	require.NoError(t, combo.ShowDropDown())
	menu := app.NewContextMenu(forms.NewMenuItem("Cut", nil))
	require.NoError(t, menu.Show(f, forms.Pt(10, 10)))

	f.Close()

	windows := p.Windows()
	require.Len(t, windows, 3)
	for i, w := range windows {
		require.True(t, w.Closed(), "window %d (popup=%v) still open", i, w.IsPopup())
	}
}
