// Package poller implements the quote poll phase.
//
// A poll cycle:
//   - Aborts with ErrNetworkUnavailable, touching nothing, when the network is down
//   - Fetches each configured symbol in order, one attempt each
//   - Waits a fixed delay between symbols to stay under upstream rate limits
//   - Skips a symbol on fetch, decode, or field validation failure, leaving
//     its stored quote as it was
//   - Reports which quotes changed
//
// Symbols are fetched sequentially, so a cycle takes at most
// N*Timeout + (N-1)*RequestDelay (see WorstCaseDuration).
package poller
