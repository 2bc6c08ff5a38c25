package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 palette indices.
var terminalColors = map[Color]lipgloss.Color{
	White:  lipgloss.Color("15"),
	Cyan:   lipgloss.Color("14"),
	Blue:   lipgloss.Color("12"),
	Yellow: lipgloss.Color("11"),
	Green:  lipgloss.Color("10"),
	Red:    lipgloss.Color("9"),
}

// Terminal is a Canvas that flushes its dirty rows to an ANSI terminal.
// Rows nobody drew on since the last Flush are not rewritten.
type Terminal struct {
	*Canvas

	out     io.Writer
	styles  map[Color]lipgloss.Style
	started bool
}

// NewTerminal creates a w×h terminal surface writing to out.
func NewTerminal(out io.Writer, w, h int) *Terminal {
	r := lipgloss.NewRenderer(out)
	styles := make(map[Color]lipgloss.Style, len(terminalColors))
	for c, tc := range terminalColors {
		styles[c] = r.NewStyle().Foreground(tc)
	}
	return &Terminal{
		Canvas: NewCanvas(w, h),
		out:    out,
		styles: styles,
	}
}

// Flush rewrites every dirty row. The first Flush clears the screen.
func (t *Terminal) Flush() error {
	rows := t.DirtyRows()
	if len(rows) == 0 {
		return nil
	}

	var b strings.Builder
	if !t.started {
		b.WriteString("\x1b[2J")
		t.started = true
	}
	for _, y := range rows {
		// Cursor to row start, draw, erase the rest of the line.
		fmt.Fprintf(&b, "\x1b[%d;1H", y+1)
		t.writeRow(&b, y)
		b.WriteString("\x1b[K")
	}
	b.WriteString("\x1b[H")

	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	t.ResetDirty()
	return nil
}

// writeRow renders row y as runs of equally coloured cells.
func (t *Terminal) writeRow(b *strings.Builder, y int) {
	cells := t.Row(y)
	// Trailing blanks are covered by the erase-line sequence.
	end := len(cells)
	for end > 0 && cells[end-1] == blank {
		end--
	}

	for i := 0; i < end; {
		j := i
		var run strings.Builder
		for j < end && cells[j].Color == cells[i].Color {
			run.WriteRune(cells[j].Ch)
			j++
		}
		if style, ok := t.styles[cells[i].Color]; ok {
			b.WriteString(style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
}
