// Package quote holds the last-known state of every tracked symbol.
//
// The Store is a fixed-size table indexed by symbol position, matching the
// configured symbol order. It is mutated only by the poll phase and read only
// by the render phase; the two never overlap, so the Store carries no lock.
package quote
