package display

import "errors"

// Color is a display colour.
type Color uint8

// Palette.
const (
	Black Color = iota
	White
	Cyan
	Blue
	Yellow
	Green
	Red
)

var colorNames = [...]string{
	Black:  "black",
	White:  "white",
	Cyan:   "cyan",
	Blue:   "blue",
	Yellow: "yellow",
	Green:  "green",
	Red:    "red",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Rect is a region of cells.
type Rect struct {
	X, Y, W, H int
}

// Display is a drawing surface.
type Display interface {
	// ClearRegion blanks every cell in r.
	ClearRegion(r Rect)

	// DrawText writes text starting at (x, y). Size is a font scale hint;
	// cell surfaces ignore it.
	DrawText(x, y int, text string, c Color, size int)

	// DrawLine draws a line between two cells, inclusive.
	DrawLine(x0, y0, x1, y1 int, c Color)

	// Flush pushes pending drawing to the underlying device.
	Flush() error
}

type multi []Display

// Multi returns a Display that forwards every call to each of ds.
func Multi(ds ...Display) Display {
	return multi(ds)
}

func (m multi) ClearRegion(r Rect) {
	for _, d := range m {
		d.ClearRegion(r)
	}
}

func (m multi) DrawText(x, y int, text string, c Color, size int) {
	for _, d := range m {
		d.DrawText(x, y, text, c, size)
	}
}

func (m multi) DrawLine(x0, y0, x1, y1 int, c Color) {
	for _, d := range m {
		d.DrawLine(x0, y0, x1, y1, c)
	}
}

func (m multi) Flush() error {
	var errs []error
	for _, d := range m {
		if err := d.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
