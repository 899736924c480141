package forms

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func radioMetrics() LayoutMetrics {
	return NewRadioButtonRenderer().Metrics()
}

func TestScaleLogical(t *testing.T) {
	tests := []struct {
		v     int
		scale float64
		want  int
	}{
		{v: 15, scale: 1, want: 15},
		{v: 15, scale: 2, want: 30},
		{v: 3, scale: 1.5, want: 5},
		{v: -3, scale: 1.5, want: -5},
		{v: 4, scale: 1.25, want: 5},
		{v: 15, scale: 1.25, want: 19},
		{v: 7, scale: 0, want: 7},
		{v: 7, scale: -2, want: 7},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ScaleLogical(tt.v, tt.scale), "ScaleLogical(%d, %v)", tt.v, tt.scale)
	}
}

func TestDeviceToLogical(t *testing.T) {
	tests := []struct {
		v     int
		scale float64
		want  int
	}{
		{v: 30, scale: 2, want: 15},
		{v: 301, scale: 2, want: 151},
		{v: 5, scale: 1.5, want: 3},
		{v: -5, scale: 2, want: -3},
		{v: 7, scale: 0, want: 7},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DeviceToLogical(tt.v, tt.scale), "DeviceToLogical(%d, %v)", tt.v, tt.scale)
	}
}

func TestAlignRect(t *testing.T) {
	bounds := NewRect(10, 20, 100, 40)
	size := Size{Width: 20, Height: 10}
	tests := []struct {
		align ContentAlignment
		want  Rect
	}{
		{TopLeft, NewRect(10, 20, 20, 10)},
		{MiddleLeft, NewRect(10, 35, 20, 10)},
		{MiddleCenter, NewRect(50, 35, 20, 10)},
		{BottomRight, NewRect(90, 50, 20, 10)},
		{TopCenter, NewRect(50, 20, 20, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			require.Equal(t, tt.want, AlignRect(size, bounds, tt.align))
		})
	}
}

func TestRectOperations(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	require.True(t, r.Contains(Pt(0, 0)))
	require.False(t, r.Contains(Pt(10, 5)), "right edge is exclusive")
	require.Equal(t, NewRect(5, 5, 5, 5), r.Intersect(NewRect(5, 5, 10, 10)))
	require.True(t, r.Intersect(NewRect(20, 20, 5, 5)).IsEmpty())
	require.Equal(t, NewRect(0, 0, 15, 15), r.Union(NewRect(5, 5, 10, 10)))
	require.Equal(t, NewRect(-1, -1, 12, 12), r.Inflate(1, 1))
	require.Equal(t, Pt(5, 5), r.Center())
}

func TestLayoutTextImage(t *testing.T) {
	rb := NewRadioButton("Hi")
	rb.SetBounds(NewRect(0, 0, 100, 30))
	e := NewPaintEventArgs(NewRecorder(nil), rb.ClientRectangle(), 1, nil)

	l := LayoutTextImage(&rb.Control, e, radioMetrics())

	require.Equal(t, NewRect(0, 3, 24, 24), l.Glyph)
	require.True(t, l.HasText)
	require.Equal(t, NewRect(24, 0, 76, 30), l.Text)
	require.True(t, l.Image.IsEmpty())
	// "Hi" measures 14x13 with the fixed face; the focus rect hugs it.
	require.Equal(t, NewRect(23, 7, 16, 15), l.Focus)
}

func TestLayoutTextImageWithImage(t *testing.T) {
	rb := NewRadioButton("Hi")
	rb.SetBounds(NewRect(0, 0, 100, 30))
	rb.SetImage(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	e := NewPaintEventArgs(NewRecorder(nil), rb.ClientRectangle(), 1, nil)

	l := LayoutTextImage(&rb.Control, e, radioMetrics())

	require.Equal(t, NewRect(24, 7, 16, 16), l.Image)
	require.Equal(t, NewRect(44, 0, 56, 30), l.Text)
}

func TestLayoutTextImageEmptyText(t *testing.T) {
	rb := NewRadioButton("")
	rb.SetBounds(NewRect(0, 0, 100, 30))
	e := NewPaintEventArgs(NewRecorder(nil), rb.ClientRectangle(), 1, nil)

	l := LayoutTextImage(&rb.Control, e, radioMetrics())

	require.False(t, l.HasText)
	require.Equal(t, Rect{}, l.Text)
	require.Equal(t, l.Glyph.Inflate(1, 1), l.Focus)
}

func TestLayoutTextImageTooNarrow(t *testing.T) {
	rb := NewRadioButton("A long label")
	rb.SetBounds(NewRect(0, 0, 10, 30))
	e := NewPaintEventArgs(NewRecorder(nil), rb.ClientRectangle(), 1, nil)

	l := LayoutTextImage(&rb.Control, e, radioMetrics())

	require.True(t, l.HasText)
	require.Zero(t, l.Text.Width)
	require.Equal(t, l.Glyph.Inflate(1, 1), l.Focus)
}

func TestLayoutScalesLinearly(t *testing.T) {
	layoutAt := func(scale float64) TextImageLayout {
		app, _ := newTestApp(t, WithScaleFactor(scale))
		f := app.NewForm("scaled")
		rb := NewRadioButton("Hi")
		rb.SetBounds(NewRect(0, 0, 100, 30))
		f.AddControl(rb)
		e := NewPaintEventArgs(NewRecorder(nil), rb.ClientRectangle(), scale, nil)
		return LayoutTextImage(&rb.Control, e, radioMetrics())
	}

	one := layoutAt(1)
	two := layoutAt(2)

	require.Equal(t, NewRect(0, 6, 48, 48), two.Glyph)
	require.Equal(t, one.Glyph.X*2, two.Glyph.X)
	require.Equal(t, one.Glyph.Y*2, two.Glyph.Y)
	require.Equal(t, one.Glyph.Width*2, two.Glyph.Width)
	require.Equal(t, one.Text.X*2, two.Text.X)
	require.Equal(t, one.Text.Width*2, two.Text.Width)
}
