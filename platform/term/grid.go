package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/formkit/forms"
)

// A terminal cell stands for a block of device pixels the size of one glyph
// of the fixed face, so layouts match the raster and recorder measurements.
const (
	cellWidth  = 7
	cellHeight = 13
)

const ellipsis = "…"

// measure is the text measurer handed to the recorder while painting.
func measure(text string) forms.Size {
	if text == "" {
		return forms.Size{}
	}
	return forms.Size{Width: runewidth.StringWidth(text) * cellWidth, Height: cellHeight}
}

func cellsFor(px, unit int) int {
	if px <= 0 {
		return 0
	}
	return (px + unit - 1) / unit
}

// cellCenter returns the device pixel at the middle of a cell.
func cellCenter(col, row int) forms.Point {
	return forms.Point{X: col*cellWidth + cellWidth/2, Y: row*cellHeight + cellHeight/2}
}

type cell struct {
	s         string
	cont      bool // right half of a wide rune
	fg, bg    uint32
	underline bool
}

// grid is a window's frame as terminal cells.
type grid struct {
	cols, rows int
	cells      []cell
}

func newGrid(cols, rows int) *grid {
	cols, rows = max(cols, 0), max(rows, 0)
	return &grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

func (g *grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

// cellsIn calls fn for every cell whose center lies inside r.
func (g *grid) cellsIn(r forms.Rect, fn func(c *cell)) {
	if r.IsEmpty() {
		return
	}
	for row := max(r.Y/cellHeight, 0); row <= (r.Bottom()-1)/cellHeight && row < g.rows; row++ {
		for col := max(r.X/cellWidth, 0); col <= (r.Right()-1)/cellWidth && col < g.cols; col++ {
			if r.Contains(cellCenter(col, row)) {
				fn(g.at(col, row))
			}
		}
	}
}

// draw rasterizes recorded commands. Outlines are dropped; a cell is too
// coarse for a one pixel stroke.
func (g *grid) draw(cmds []forms.DrawCommand) {
	for _, c := range cmds {
		switch c.Op {
		case forms.OpFillRectangle:
			g.cellsIn(c.Bounds.Intersect(c.Clip), func(cl *cell) {
				cl.bg = c.Color
				cl.s, cl.cont = "", false
			})
		case forms.OpFocusRectangle:
			g.cellsIn(c.Bounds.Intersect(c.Clip), func(cl *cell) { cl.underline = true })
		case forms.OpCheckBox:
			g.glyph(c, checkGlyph(c.State))
		case forms.OpRadioButton:
			g.glyph(c, radioGlyph(c.State))
		case forms.OpDrawText:
			g.text(c)
		}
	}
}

func checkGlyph(s forms.CheckState) string {
	switch s {
	case forms.Checked:
		return "[x]"
	case forms.Indeterminate:
		return "[-]"
	}
	return "[ ]"
}

func radioGlyph(s forms.CheckState) string {
	if s == forms.Checked {
		return "(•)"
	}
	return "( )"
}

// glyph writes a three cell mark anchored at the cell holding the left edge
// of the command bounds. Radio glyphs are wider than their text, so they are
// centered on the bounds instead.
func (g *grid) glyph(c forms.DrawCommand, s string) {
	center := c.Bounds.Center()
	row := center.Y / cellHeight
	col := c.Bounds.X / cellWidth
	if c.Op == forms.OpRadioButton {
		col = center.X/cellWidth - 1
	}
	g.write(col, row, s, c.Color, c.Clip)
}

// text writes the first line of a text command. Text starts on the first
// cell boundary at or after its aligned position.
func (g *grid) text(c forms.DrawCommand) {
	line, _, _ := strings.Cut(c.Text, "\n")
	box := forms.AlignRect(measure(line), c.Bounds, c.Align)
	row := (box.Y + cellHeight/2) / cellHeight
	col := cellsFor(max(box.X, c.Bounds.X), cellWidth)

	limit := min(c.Bounds.Right(), c.Clip.Right())
	avail := 0
	for cellCenter(col+avail, row).X < limit {
		avail++
	}
	if avail <= 0 {
		return
	}
	if runewidth.StringWidth(line) > avail {
		tail := ""
		if c.Ellipsis {
			tail = ellipsis
		}
		line = runewidth.Truncate(line, avail, tail)
	}
	g.write(col, row, line, c.Color, c.Clip)
}

// write places s at (col, row), skipping cells outside clip.
func (g *grid) write(col, row int, s string, fg uint32, clip forms.Rect) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if clip.Contains(cellCenter(col, row)) {
			if cl := g.at(col, row); cl != nil {
				cl.s, cl.cont, cl.fg = string(r), false, fg
				if w == 2 {
					if next := g.at(col+1, row); next != nil {
						next.s, next.cont, next.fg = "", true, fg
					}
				}
			}
		}
		col += w
	}
}

// blit copies src into g with its top left cell at (col, row).
func (g *grid) blit(src *grid, col, row int) {
	for r := 0; r < src.rows; r++ {
		for c := 0; c < src.cols; c++ {
			if dst := g.at(col+c, row+r); dst != nil {
				*dst = *src.at(c, r)
			}
		}
	}
}

// lines returns the grid as plain text with trailing blanks trimmed.
func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for row := range g.rows {
		var b strings.Builder
		for col := range g.cols {
			cl := g.at(col, row)
			switch {
			case cl.cont:
			case cl.s == "":
				b.WriteByte(' ')
			default:
				b.WriteString(cl.s)
			}
		}
		out[row] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// render returns the grid as styled terminal output. Cells sharing a style
// are rendered as one run.
func (g *grid) render() string {
	var out strings.Builder
	for row := range g.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var style *cell
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(cellStyle(style).Render(run.String()))
				run.Reset()
			}
		}
		for col := range g.cols {
			cl := g.at(col, row)
			if cl.cont {
				continue
			}
			if style == nil || cl.fg != style.fg || cl.bg != style.bg || cl.underline != style.underline {
				flush()
				style = cl
			}
			if cl.s == "" {
				run.WriteByte(' ')
			} else {
				run.WriteString(cl.s)
			}
		}
		flush()
	}
	return out.String()
}

func cellStyle(c *cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c == nil {
		return st
	}
	if c.fg&0xff != 0 {
		st = st.Foreground(hexColor(c.fg))
	}
	if c.bg&0xff != 0 {
		st = st.Background(hexColor(c.bg))
	}
	return st.Underline(c.underline)
}

// hexColor converts a packed 0xRRGGBBAA color, dropping alpha.
func hexColor(v uint32) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", v>>8))
}
