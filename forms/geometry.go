package forms

import (
	"fmt"
	"image"
	"math"
)

// ============================================================================
// Points, Sizes, Rectangles
// ============================================================================

// Point is a position in integer units. Whether the units are logical or
// device pixels depends on where the value came from.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is a width and height pair.
type Size struct {
	Width, Height int
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis aligned rectangle. Width may be zero or negative when a
// control is too small for its content; such rectangles contain no points.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle from its origin and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromLTRB creates a rectangle from its edges.
func RectFromLTRB(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Location returns the top left corner.
func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the midpoint, rounding toward the top left.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inflate grows the rectangle by dx on the left and right and dy on the
// top and bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Intersect returns the overlap of r and o, or the zero Rect when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	left := max(r.X, o.X)
	top := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return RectFromLTRB(left, top, right, bottom)
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectFromLTRB(min(r.X, o.X), min(r.Y, o.Y), max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom()))
}

// ImageRect converts to an image.Rectangle for use with image/draw.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

func (r Rect) String() string {
	return fmt.Sprintf("{X=%d,Y=%d,Width=%d,Height=%d}", r.X, r.Y, r.Width, r.Height)
}

// ============================================================================
// Scaling
// ============================================================================

// ScaleLogical converts a logical unit value to device pixels. Values are
// rounded half away from zero so a scale of 1.5 maps 3 to 5 and -3 to -5.
func ScaleLogical(v int, scale float64) int {
	if scale == 1 || scale <= 0 {
		return v
	}
	return int(math.Round(float64(v) * scale))
}

// DeviceToLogical converts device pixels back to logical units with the
// same rounding as ScaleLogical.
func DeviceToLogical(v int, scale float64) int {
	if scale == 1 || scale <= 0 {
		return v
	}
	return int(math.Round(float64(v) / scale))
}

// ============================================================================
// Content Alignment
// ============================================================================

// ContentAlignment positions content inside a rectangle.
type ContentAlignment uint16

const (
	TopLeft ContentAlignment = 1 << iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

const (
	anyLeft   = TopLeft | MiddleLeft | BottomLeft
	anyCenter = TopCenter | MiddleCenter | BottomCenter
	anyRight  = TopRight | MiddleRight | BottomRight
	anyTop    = TopLeft | TopCenter | TopRight
	anyMiddle = MiddleLeft | MiddleCenter | MiddleRight
	anyBottom = BottomLeft | BottomCenter | BottomRight
)

// IsLeft reports whether the alignment is on the left column.
func (a ContentAlignment) IsLeft() bool { return a&anyLeft != 0 }

// IsCenter reports whether the alignment is horizontally centered.
func (a ContentAlignment) IsCenter() bool { return a&anyCenter != 0 }

// IsRight reports whether the alignment is on the right column.
func (a ContentAlignment) IsRight() bool { return a&anyRight != 0 }

// IsTop reports whether the alignment is on the top row.
func (a ContentAlignment) IsTop() bool { return a&anyTop != 0 }

// IsMiddle reports whether the alignment is vertically centered.
func (a ContentAlignment) IsMiddle() bool { return a&anyMiddle != 0 }

// IsBottom reports whether the alignment is on the bottom row.
func (a ContentAlignment) IsBottom() bool { return a&anyBottom != 0 }

var alignmentNames = map[ContentAlignment]string{
	TopLeft: "TopLeft", TopCenter: "TopCenter", TopRight: "TopRight",
	MiddleLeft: "MiddleLeft", MiddleCenter: "MiddleCenter", MiddleRight: "MiddleRight",
	BottomLeft: "BottomLeft", BottomCenter: "BottomCenter", BottomRight: "BottomRight",
}

func (a ContentAlignment) String() string {
	if s, ok := alignmentNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ContentAlignment(%d)", uint16(a))
}

// AlignRect places a box of the given size inside bounds. The result may
// overflow bounds when size is larger; callers clip.
func AlignRect(size Size, bounds Rect, align ContentAlignment) Rect {
	r := Rect{X: bounds.X, Y: bounds.Y, Width: size.Width, Height: size.Height}

	switch {
	case align.IsCenter():
		r.X = bounds.X + (bounds.Width-size.Width)/2
	case align.IsRight():
		r.X = bounds.Right() - size.Width
	}

	switch {
	case align.IsMiddle():
		r.Y = bounds.Y + (bounds.Height-size.Height)/2
	case align.IsBottom():
		r.Y = bounds.Bottom() - size.Height
	}

	return r
}
