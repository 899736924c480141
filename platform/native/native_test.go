package native

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/formkit/forms"
	"github.com/agiangrant/formkit/internal/ffi"
)

// fakeHost runs a host loop over a channel of events.
type fakeHost struct {
	events   chan ffi.Event
	exit     chan struct{}
	exitOnce sync.Once
	nextID   uint32

	created  []ffi.WindowConfig
	shown    []uint32
	closed   []uint32
	titles   map[uint32]string
	bounds   map[uint32][4]int
	presents map[uint32][][]byte
	measures bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		events:   make(chan ffi.Event, 64),
		exit:     make(chan struct{}),
		titles:   make(map[uint32]string),
		bounds:   make(map[uint32][4]int),
		presents: make(map[uint32][][]byte),
	}
}

func (h *fakeHost) Run(handler ffi.EventHandler) error {
	handler(ffi.Event{Type: ffi.EventReady})
	for {
		select {
		case <-h.exit:
			return nil
		case ev := <-h.events:
			handler(ev)
		}
	}
}

func (h *fakeHost) RequestExit() { h.exitOnce.Do(func() { close(h.exit) }) }

func (h *fakeHost) Wake() {
	select {
	case h.events <- ffi.Event{Type: ffi.EventWake}:
	default:
	}
}

func (h *fakeHost) CreateWindow(cfg ffi.WindowConfig) (uint32, error) {
	h.nextID++
	h.created = append(h.created, cfg)
	return h.nextID, nil
}

func (h *fakeHost) ShowWindow(id uint32)  { h.shown = append(h.shown, id) }
func (h *fakeHost) HideWindow(id uint32)  {}
func (h *fakeHost) CloseWindow(id uint32) { h.closed = append(h.closed, id) }

func (h *fakeHost) SetWindowTitle(id uint32, title string) { h.titles[id] = title }

func (h *fakeHost) SetWindowBounds(id uint32, x, y int32, width, height uint32) {
	h.bounds[id] = [4]int{int(x), int(y), int(width), int(height)}
}

func (h *fakeHost) WindowScaleFactor(uint32) float64 { return 1 }

func (h *fakeHost) Present(id uint32, data []byte) error {
	h.presents[id] = append(h.presents[id], data)
	return nil
}

func (h *fakeHost) MeasureText(text string, size float32) (float32, bool) {
	if !h.measures {
		return 0, false
	}
	return float32(len(text)) * size / 2, true
}

func (h *fakeHost) send(ev ffi.Event) { h.events <- ev }

func TestTranslateEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   ffi.Event
		want forms.InputEvent
		ok   bool
	}{
		{
			name: "mouse move",
			ev:   ffi.Event{Type: ffi.EventMouseMoved, Data1: 12.4, Data2: 30},
			want: forms.MouseMove(12, 30),
			ok:   true,
		},
		{
			name: "right press",
			ev:   ffi.Event{Type: ffi.EventMousePressed, Data1: ffi.MouseRight},
			want: forms.InputEvent{Kind: forms.InputMouseDown, Button: forms.MouseButtonRight},
			ok:   true,
		},
		{
			name: "wheel",
			ev:   ffi.Event{Type: ffi.EventMouseWheel, Data2: -2.6},
			want: forms.InputEvent{Kind: forms.InputMouseWheel, DeltaY: -3},
			ok:   true,
		},
		{
			name: "shift tab",
			ev:   ffi.Event{Type: ffi.EventKeyPressed, Data1: float64(ffi.KeyTab), Data2: float64(ffi.ModShift)},
			want: forms.KeyPress(forms.KeyTab, forms.ModShift),
			ok:   true,
		},
		{
			name: "numpad enter",
			ev:   ffi.Event{Type: ffi.EventKeyPressed, Data1: float64(ffi.KeyNumpadEnter)},
			want: forms.KeyPress(forms.KeyEnter, 0),
			ok:   true,
		},
		{
			name: "unmapped key",
			ev:   ffi.Event{Type: ffi.EventKeyPressed, Data1: float64(ffi.KeyUnknown)},
		},
		{
			name: "char",
			ev:   ffi.Event{Type: ffi.EventCharInput, Data1: 'q'},
			want: forms.CharInput('q'),
			ok:   true,
		},
		{
			name: "control char",
			ev:   ffi.Event{Type: ffi.EventCharInput, Data1: '\t'},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateEvent(tt.ev)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}

	up, ok := translateEvent(ffi.Event{Type: ffi.EventKeyReleased, Data1: float64(ffi.KeyEscape)})
	require.True(t, ok)
	require.Equal(t, forms.InputKeyUp, up.Kind)
	require.Equal(t, forms.KeyEscape, up.Key)
}

func TestRunFormPresentsAndClicks(t *testing.T) {
	h := newFakeHost()
	p := newPlatform(h)
	app := forms.New(p)

	f := app.NewForm("native")
	f.SetClientSize(forms.Size{Width: 200, Height: 100})
	cb := forms.NewCheckBox("Enable")
	cb.SetBounds(forms.NewRect(10, 10, 120, 24))
	f.AddControl(cb)
	require.NoError(t, f.Show())

	require.Len(t, h.created, 1)
	require.Equal(t, "native", h.created[0].Title)
	require.False(t, h.created[0].Popup)

	h.send(ffi.Event{Type: ffi.EventMouseMoved, WindowID: 1, Data1: 15, Data2: 20})
	h.send(ffi.Event{Type: ffi.EventMousePressed, WindowID: 1, Data1: ffi.MouseLeft})
	h.send(ffi.Event{Type: ffi.EventMouseReleased, WindowID: 1, Data1: ffi.MouseLeft})

	requested := false
	app.Dispatcher().OnIdle(func() {
		if !requested && len(h.presents[1]) > 0 {
			requested = true
			h.send(ffi.Event{Type: ffi.EventCloseRequested, WindowID: 1})
		}
	})

	require.NoError(t, app.Run(f))
	require.True(t, cb.Checked())
	require.Contains(t, h.closed, uint32(1))

	var fr frame
	require.NoError(t, json.Unmarshal(h.presents[1][0], &fr))
	require.Equal(t, uint32(1), fr.Window)
	require.Equal(t, 200, fr.Width)
	require.Equal(t, 100, fr.Height)

	var boxes int
	for _, c := range fr.Commands {
		if c.Op == forms.OpCheckBox {
			boxes++
		}
	}
	require.Equal(t, 1, boxes)
}

func TestPopupOwner(t *testing.T) {
	h := newFakeHost()
	p := newPlatform(h)
	app := forms.New(p)

	combo := forms.NewComboBox("a", "b")
	combo.SetBounds(forms.NewRect(0, 0, 100, 24))
	f := app.NewForm("combo")
	f.AddControl(combo)
	require.NoError(t, f.Show())
	require.NoError(t, combo.ShowDropDown())

	require.Len(t, h.created, 2)
	popup := h.created[1]
	require.True(t, popup.Popup)
	require.Equal(t, uint32(1), popup.Owner)
	require.Equal(t, int32(24), popup.Y)
	require.Equal(t, uint32(40), popup.Height)
}

func TestEventsForUnknownWindowsAreDropped(t *testing.T) {
	p := newPlatform(newFakeHost())
	require.NotPanics(t, func() {
		p.handle(ffi.Event{Type: ffi.EventCloseRequested, WindowID: 42})
	})
}

func TestHostMeasurement(t *testing.T) {
	h := newFakeHost()
	h.measures = true
	p := newPlatform(h)
	w := &Window{p: p, id: 1, scale: 2}

	require.True(t, p.canMeasure())
	require.Equal(t, forms.Size{Width: 36, Height: 30}, w.measure("abc"))
	require.Equal(t, forms.Size{}, w.measure(""))

	h2 := newFakeHost()
	require.False(t, newPlatform(h2).canMeasure())
}
