package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/stock-tracker/internal/api"
	"github.com/rickgao/stock-tracker/internal/netcheck"
	"github.com/rickgao/stock-tracker/internal/quote"
)

// ErrNetworkUnavailable aborts a cycle before any fetch.
var ErrNetworkUnavailable = errors.New("network unavailable")

// Fetcher retrieves the raw chart payload for a ticker.
type Fetcher interface {
	FetchChart(ctx context.Context, ticker string) ([]byte, error)
}

// Config holds poller configuration.
type Config struct {
	RequestDelay time.Duration // Pause between symbols (default: 500ms)
	Timeout      time.Duration // Per-request timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RequestDelay: 500 * time.Millisecond,
		Timeout:      10 * time.Second,
	}
}

// Result summarises one poll cycle.
type Result struct {
	CycleID    uuid.UUID
	AnyChanged bool
	Changed    []int // quote indices changed this cycle, ascending
	Fetched    int   // symbols applied to the store
	Failed     int   // symbols skipped
	Duration   time.Duration
}

// Poller runs poll cycles against a quote store.
type Poller struct {
	cfg     Config
	fetcher Fetcher
	checker netcheck.Checker
	store   *quote.Store
	logger  *slog.Logger

	// wait pauses between symbols; replaced in tests.
	wait func(ctx context.Context, d time.Duration)
}

// New creates a new Poller.
func New(cfg Config, fetcher Fetcher, checker netcheck.Checker, store *quote.Store, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:     cfg,
		fetcher: fetcher,
		checker: checker,
		store:   store,
		logger:  logger,
		wait:    sleepCtx,
	}
}

// WorstCaseDuration is the longest a cycle can take when every request
// times out.
func (p *Poller) WorstCaseDuration() time.Duration {
	n := time.Duration(p.store.Len())
	if n == 0 {
		return 0
	}
	return n*p.cfg.Timeout + (n-1)*p.cfg.RequestDelay
}

// RunCycle polls every symbol once. It returns ErrNetworkUnavailable without
// fetching anything when the checker reports no connectivity. Per-symbol
// failures are logged and skipped; they never fail the cycle.
func (p *Poller) RunCycle(ctx context.Context) (Result, error) {
	res := Result{CycleID: uuid.New()}
	start := time.Now()
	logger := p.logger.With("cycle_id", res.CycleID)

	if !p.checker.Connected(ctx) {
		logger.Warn("skipping poll cycle", "reason", Kind(ErrNetworkUnavailable))
		return res, ErrNetworkUnavailable
	}

	n := p.store.Len()
	for i := 0; i < n; i++ {
		ticker := p.store.Get(i).Ticker

		if err := p.pollSymbol(ctx, logger, i); err != nil {
			logger.Warn("failed to poll symbol",
				"ticker", ticker,
				"kind", Kind(err),
				"err", err,
			)
			res.Failed++
		} else {
			res.Fetched++
		}

		if i < n-1 && p.cfg.RequestDelay > 0 {
			p.wait(ctx, p.cfg.RequestDelay)
		}
	}

	res.Changed = p.store.ChangedIndices()
	res.AnyChanged = len(res.Changed) > 0
	res.Duration = time.Since(start)

	logger.Info("poll cycle complete",
		"symbols", n,
		"fetched", res.Fetched,
		"failed", res.Failed,
		"changed", len(res.Changed),
		"duration", res.Duration,
	)

	return res, nil
}

// pollSymbol fetches, decodes and applies quote i.
func (p *Poller) pollSymbol(ctx context.Context, logger *slog.Logger, i int) error {
	ticker := p.store.Get(i).Ticker

	reqCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	body, err := p.fetcher.FetchChart(reqCtx, ticker)
	if err != nil {
		return err
	}

	fields, err := api.ParseChart(body)
	if err != nil {
		return err
	}

	price, prevClose, err := fields.Validate()
	if err != nil {
		return err
	}

	changed := p.store.Apply(i, price, prevClose)

	q := p.store.Get(i)
	logger.Debug("quote applied",
		"ticker", ticker,
		"price", q.Price,
		"change_pct", q.ChangePct,
		"changed", changed,
	)

	return nil
}

// Kind names the failure class of a poll error for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkUnavailable):
		return "network_unavailable"
	case errors.Is(err, api.ErrInvalidQuote):
		return "invalid_quote_fields"
	case errors.Is(err, api.ErrDecode):
		return "decode_failure"
	default:
		// api.ErrFetch and anything else a Fetcher returns.
		return "fetch_failure"
	}
}

// sleepCtx waits for d or until ctx is done. A cancelled context shortens
// the pause but never ends the cycle early.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
