package display

import "strings"

// Cell is one character position.
type Cell struct {
	Ch    rune
	Color Color
}

var blank = Cell{Ch: ' ', Color: Black}

// Line glyphs.
const (
	hLine = '─'
	vLine = '│'
	dLine = '·'
)

// Canvas is an in-memory grid of cells. Drawing outside the grid is
// clipped. Not safe for concurrent use.
type Canvas struct {
	w, h   int
	cells  []Cell
	dirty  []bool
	writes int
}

// NewCanvas creates a blank w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
		dirty: make([]bool, h),
	}
	for i := range c.cells {
		c.cells[i] = blank
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Writes returns the number of drawing calls applied so far.
func (c *Canvas) Writes() int {
	return c.writes
}

// ClearRegion implements Display.
func (c *Canvas) ClearRegion(r Rect) {
	c.writes++
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, blank)
		}
	}
}

// DrawText implements Display.
func (c *Canvas) DrawText(x, y int, text string, col Color, _ int) {
	c.writes++
	for _, r := range text {
		c.set(x, y, Cell{Ch: r, Color: col})
		x++
	}
}

// DrawLine implements Display.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	c.writes++
	switch {
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			c.set(x, y0, Cell{Ch: hLine, Color: col})
		}
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			c.set(x0, y, Cell{Ch: vLine, Color: col})
		}
	default:
		// Bresenham.
		dx, sx := abs(x1-x0), sign(x1-x0)
		dy, sy := -abs(y1-y0), sign(y1-y0)
		e := dx + dy
		for {
			c.set(x0, y0, Cell{Ch: dLine, Color: col})
			if x0 == x1 && y0 == y1 {
				return
			}
			e2 := 2 * e
			if e2 >= dy {
				e += dy
				x0 += sx
			}
			if e2 <= dx {
				e += dx
				y0 += sy
			}
		}
	}
}

// Flush implements Display. A bare canvas has no device.
func (c *Canvas) Flush() error {
	return nil
}

// Cell returns the cell at (x, y), or a blank cell when out of range.
func (c *Canvas) Cell(x, y int) Cell {
	if !c.inBounds(x, y) {
		return blank
	}
	return c.cells[y*c.w+x]
}

// ColorAt returns the colour of cell (x, y).
func (c *Canvas) ColorAt(x, y int) Color {
	return c.Cell(x, y).Color
}

// Text returns row y with trailing blanks removed.
func (c *Canvas) Text(y int) string {
	if y < 0 || y >= c.h {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.cells[y*c.w : (y+1)*c.w] {
		b.WriteRune(cell.Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row as Text would.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := range out {
		out[y] = c.Text(y)
	}
	return out
}

// Find returns the position of the first occurrence of s, scanning rows top
// to bottom.
func (c *Canvas) Find(s string) (x, y int, ok bool) {
	for y := 0; y < c.h; y++ {
		if i := strings.Index(c.Text(y), s); i >= 0 {
			// Index is in bytes; convert to cells.
			return len([]rune(c.Text(y)[:i])), y, true
		}
	}
	return 0, 0, false
}

// DirtyRows returns the rows touched since the last ResetDirty.
func (c *Canvas) DirtyRows() []int {
	var out []int
	for y, d := range c.dirty {
		if d {
			out = append(out, y)
		}
	}
	return out
}

// ResetDirty clears the dirty row set.
func (c *Canvas) ResetDirty() {
	for y := range c.dirty {
		c.dirty[y] = false
	}
}

// Row returns a copy of the cells in row y.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.h {
		return nil
	}
	out := make([]Cell, c.w)
	copy(out, c.cells[y*c.w:(y+1)*c.w])
	return out
}

func (c *Canvas) set(x, y int, cell Cell) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.w+x] = cell
	c.dirty[y] = true
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
