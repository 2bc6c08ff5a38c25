// Package display provides the drawing surfaces the renderer targets.
//
// Coordinates are character cells: x is the column, y the row, both from the
// top-left corner. Surfaces:
//   - Canvas: in-memory cell grid, the reference implementation
//   - Terminal: Canvas flushed to an ANSI terminal, dirty rows only
//   - Mirror: Canvas whose draw operations stream to WebSocket viewers
//   - Multi: fan-out to several surfaces
//
// Drawing never fails. Flush is the only call that touches I/O.
package display
