// Package render projects the quote table onto a display.Display.
//
// The first call draws static chrome and a "Loading..." placeholder per
// symbol. Later calls redraw only the rows named by the caller, plus the
// status line. Render returns the rows it drew so the caller can clear
// their changed flags in the quote store.
package render
