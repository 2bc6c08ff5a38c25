// Package tracker owns the quote store, poller and renderer and drives
// them on a fixed interval.
//
// Each tick runs one poll cycle to completion and then, only if a quote
// changed, renders the changed rows and flushes the display. A tick that
// finds the network unavailable renders nothing.
package tracker
