package quote

import (
	"math"

	"github.com/rickgao/stock-tracker/internal/config"
)

// NoiseThreshold is the smallest price (currency units) or percent-change
// (percentage points) movement that counts as a change. Smaller deltas are
// sub-cent jitter.
const NoiseThreshold = 0.01

// noiseEpsilon absorbs float64 rounding so a delta of exactly
// NoiseThreshold (100.00 -> 100.01) is not a change.
const noiseEpsilon = 1e-9

// Quote is the last observed state of one symbol.
type Quote struct {
	Ticker    string
	Name      string
	Price     float64 // last observed price
	ChangeAbs float64 // Price - previous close
	ChangePct float64 // 100 * ChangeAbs / previous close
	Valid     bool    // at least one successful fetch; never reverts
	Changed   bool    // altered by the latest apply and not yet rendered
}

// Gain reports whether the change is non-negative.
func (q Quote) Gain() bool {
	return q.ChangeAbs >= 0
}

// Store is the quote table. Not safe for concurrent use.
type Store struct {
	quotes []Quote
}

// NewStore creates a Store with one invalid quote per symbol.
func NewStore(symbols []config.Symbol) *Store {
	quotes := make([]Quote, len(symbols))
	for i, s := range symbols {
		quotes[i] = Quote{Ticker: s.Ticker, Name: s.Name}
	}
	return &Store{quotes: quotes}
}

// Len returns the number of symbols.
func (s *Store) Len() int {
	return len(s.quotes)
}

// Get returns a copy of quote i.
func (s *Store) Get(i int) Quote {
	return s.quotes[i]
}

// Tickers returns the symbol tickers in row order.
func (s *Store) Tickers() []string {
	out := make([]string, len(s.quotes))
	for i, q := range s.quotes {
		out[i] = q.Ticker
	}
	return out
}

// Apply records a freshly fetched price and previous close for quote i and
// reports whether the quote changed. The first successful apply always
// counts as a change. Callers must ensure price > 0 and prevClose > 0.
func (s *Store) Apply(i int, price, prevClose float64) bool {
	q := &s.quotes[i]

	changeAbs := price - prevClose
	changePct := 100 * changeAbs / prevClose

	changed := !q.Valid ||
		exceedsNoise(price-q.Price) ||
		exceedsNoise(changePct-q.ChangePct)

	q.Price = price
	q.ChangeAbs = changeAbs
	q.ChangePct = changePct
	q.Valid = true
	q.Changed = changed

	return changed
}

// ClearChanged marks quote i as rendered.
func (s *Store) ClearChanged(i int) {
	s.quotes[i].Changed = false
}

// ChangedIndices returns the indices whose Changed flag is set, in order.
func (s *Store) ChangedIndices() []int {
	var out []int
	for i := range s.quotes {
		if s.quotes[i].Changed {
			out = append(out, i)
		}
	}
	return out
}

// ValidCount returns how many quotes have been populated at least once.
func (s *Store) ValidCount() int {
	n := 0
	for i := range s.quotes {
		if s.quotes[i].Valid {
			n++
		}
	}
	return n
}

func exceedsNoise(d float64) bool {
	return math.Abs(d) > NoiseThreshold+noiseEpsilon
}
