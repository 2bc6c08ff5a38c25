package render

import (
	"fmt"
	"time"

	"github.com/rickgao/stock-tracker/internal/display"
	"github.com/rickgao/stock-tracker/internal/quote"
)

// StatusMode selects what the status line shows once quotes are valid.
type StatusMode int

const (
	// StatusTimestamp shows the time of the last change, falling back to
	// the valid count when no change time is known.
	StatusTimestamp StatusMode = iota
	// StatusCount always shows the valid count.
	StatusCount
)

// ParseStatusMode maps a config value to a StatusMode.
func ParseStatusMode(s string) (StatusMode, error) {
	switch s {
	case "timestamp", "":
		return StatusTimestamp, nil
	case "count":
		return StatusCount, nil
	}
	return 0, fmt.Errorf("unknown status mode %q", s)
}

func (m StatusMode) String() string {
	if m == StatusCount {
		return "count"
	}
	return "timestamp"
}

// State is the renderer lifecycle state.
type State int

const (
	Uninitialized State = iota
	Populated
)

// Layout places the table on the display, in cells.
type Layout struct {
	Width       int
	TitleRow    int
	HeaderRow   int
	FirstRow    int // row of the first symbol
	SymbolCol   int
	PriceCol    int
	ChangeCol   int
	StatusGap   int // blank rows between the table and the status line
	TitleSize   int
	DefaultSize int
}

// DefaultLayout is a 36-column table.
func DefaultLayout() Layout {
	return Layout{
		Width:       36,
		TitleRow:    0,
		HeaderRow:   2,
		FirstRow:    4,
		SymbolCol:   0,
		PriceCol:    10,
		ChangeCol:   22,
		StatusGap:   1,
		TitleSize:   2,
		DefaultSize: 1,
	}
}

// StatusRow returns the status line row for n symbols.
func (l Layout) StatusRow(n int) int {
	return l.FirstRow + n + l.StatusGap
}

// Height returns the rows needed for n symbols.
func (l Layout) Height(n int) int {
	return l.StatusRow(n) + 1
}

// Renderer draws quotes. Not safe for concurrent use; it shares the
// store's single owner.
type Renderer struct {
	d      display.Display
	store  *quote.Store
	layout Layout
	mode   StatusMode
	loc    *time.Location

	state State
	// primed is set once a render has seen a valid quote.
	primed bool
}

// New creates a Renderer. A nil loc means time.Local.
func New(d display.Display, store *quote.Store, layout Layout, mode StatusMode, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		d:      d,
		store:  store,
		layout: layout,
		mode:   mode,
		loc:    loc,
	}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// ShowSkeleton draws the title, headers, separators and one placeholder row
// per symbol.
func (r *Renderer) ShowSkeleton() {
	l := r.layout
	n := r.store.Len()

	r.d.ClearRegion(display.Rect{X: 0, Y: 0, W: l.Width, H: l.Height(n)})
	r.d.DrawText(l.SymbolCol, l.TitleRow, "STOCK TRACKER", display.Cyan, l.TitleSize)
	r.d.DrawLine(0, l.HeaderRow-1, l.Width-1, l.HeaderRow-1, display.Blue)
	r.d.DrawText(l.SymbolCol, l.HeaderRow, "Symbol", display.Cyan, l.DefaultSize)
	r.d.DrawText(l.PriceCol, l.HeaderRow, "Price", display.Cyan, l.DefaultSize)
	r.d.DrawText(l.ChangeCol, l.HeaderRow, "Change", display.Cyan, l.DefaultSize)
	r.d.DrawLine(0, l.HeaderRow+1, l.Width-1, l.HeaderRow+1, display.Blue)

	for i := 0; i < n; i++ {
		r.drawRow(i)
	}
	r.drawStatus(time.Time{})
	r.state = Populated
}

// Render redraws the rows in changed and the status line, and returns the
// rows drawn. The first render that finds valid quotes draws every valid
// row regardless of changed. With nothing to draw it does nothing.
func (r *Renderer) Render(changed []int, lastChanged time.Time) []int {
	if r.state == Uninitialized {
		r.ShowSkeleton()
	}

	rows := changed
	if !r.primed && r.store.ValidCount() > 0 {
		rows = r.validRows()
		r.primed = true
	}
	if len(rows) == 0 {
		return nil
	}

	drawn := make([]int, 0, len(rows))
	for _, i := range rows {
		if i < 0 || i >= r.store.Len() {
			continue
		}
		r.drawRow(i)
		drawn = append(drawn, i)
	}
	r.drawStatus(lastChanged)
	return drawn
}

// StatusText returns the status line for the current store.
func (r *Renderer) StatusText(lastChanged time.Time) string {
	valid := r.store.ValidCount()
	switch {
	case valid == 0:
		return "Connecting..."
	case r.mode == StatusTimestamp && !lastChanged.IsZero():
		return "Last updated: " + lastChanged.In(r.loc).Format("3:04 PM")
	default:
		return fmt.Sprintf("Updated (%d stocks)", valid)
	}
}

func (r *Renderer) validRows() []int {
	var out []int
	for i := 0; i < r.store.Len(); i++ {
		if r.store.Get(i).Valid {
			out = append(out, i)
		}
	}
	return out
}

func (r *Renderer) drawRow(i int) {
	l := r.layout
	q := r.store.Get(i)
	y := l.FirstRow + i

	r.d.ClearRegion(display.Rect{X: 0, Y: y, W: l.Width, H: 1})
	r.d.DrawText(l.SymbolCol, y, q.Ticker, display.White, l.DefaultSize)
	if !q.Valid {
		r.d.DrawText(l.PriceCol, y, "Loading...", display.Yellow, l.DefaultSize)
		return
	}

	r.d.DrawText(l.PriceCol, y, FormatPrice(q.Price), display.White, l.DefaultSize)
	c := display.Green
	if !q.Gain() {
		c = display.Red
	}
	r.d.DrawText(l.ChangeCol, y, FormatChange(q.ChangePct), c, l.DefaultSize)
}

func (r *Renderer) drawStatus(lastChanged time.Time) {
	l := r.layout
	y := l.StatusRow(r.store.Len())
	r.d.ClearRegion(display.Rect{X: 0, Y: y, W: l.Width, H: 1})
	r.d.DrawText(l.SymbolCol, y, r.StatusText(lastChanged), display.Cyan, l.DefaultSize)
}

// FormatPrice formats a price as "$150.00".
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

// FormatChange formats a percent change with its sign, as "+1.35%".
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}
