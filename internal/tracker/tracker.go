package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rickgao/stock-tracker/internal/display"
	"github.com/rickgao/stock-tracker/internal/poller"
	"github.com/rickgao/stock-tracker/internal/quote"
	"github.com/rickgao/stock-tracker/internal/render"
)

// Clock supplies the time stamped on the status line.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Config holds tracker configuration.
type Config struct {
	Interval time.Duration // Time between cycle starts (default: 60s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Interval: 60 * time.Second}
}

// Status is a point-in-time view for health reporting.
type Status struct {
	Valid       int       `json:"valid"`
	Total       int       `json:"total"`
	LastChanged time.Time `json:"last_changed,omitzero"`
	Cycles      int       `json:"cycles"`
	Skipped     int       `json:"skipped"`
	LastSkipped bool      `json:"last_skipped"`
}

// Tracker runs poll and render cycles. Tick, Run and Start must not be used
// concurrently with each other; Status may be called from any goroutine.
type Tracker struct {
	cfg      Config
	store    *quote.Store
	poller   *poller.Poller
	renderer *render.Renderer
	display  display.Display
	clock    Clock
	logger   *slog.Logger

	lastChanged time.Time

	mu     sync.Mutex
	status Status

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Tracker. A nil clock means SystemClock.
func New(cfg Config, store *quote.Store, p *poller.Poller, r *render.Renderer, d display.Display, clock Clock, logger *slog.Logger) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		cfg:      cfg,
		store:    store,
		poller:   p,
		renderer: r,
		display:  d,
		clock:    clock,
		logger:   logger,
		status:   Status{Total: store.Len()},
	}
}

// Tick runs one cycle. It returns poller.ErrNetworkUnavailable when the
// cycle was skipped; display flush errors are logged, not returned.
func (t *Tracker) Tick(ctx context.Context) (poller.Result, error) {
	res, err := t.poller.RunCycle(ctx)
	if errors.Is(err, poller.ErrNetworkUnavailable) {
		t.record(res, true)
		return res, err
	}
	if err != nil {
		return res, err
	}

	if res.AnyChanged {
		t.lastChanged = t.clock.Now()
		drawn := t.renderer.Render(res.Changed, t.lastChanged)
		for _, i := range drawn {
			t.store.ClearChanged(i)
		}
		if err := t.display.Flush(); err != nil {
			t.logger.Error("failed to flush display", "cycle_id", res.CycleID, "error", err)
		}
		t.logger.Debug("display updated", "cycle_id", res.CycleID, "rows", len(drawn))
	} else {
		t.logger.Debug("no changes, display untouched", "cycle_id", res.CycleID)
	}

	t.record(res, false)
	return res, nil
}

// Run draws the skeleton, runs a cycle immediately and then one per
// interval until ctx is done.
func (t *Tracker) Run(ctx context.Context) error {
	worst := t.poller.WorstCaseDuration()
	if worst > t.cfg.Interval {
		t.logger.Warn("worst-case cycle exceeds poll interval",
			"worst_case", worst,
			"interval", t.cfg.Interval,
		)
	}
	t.logger.Info("tracker started",
		"symbols", t.store.Len(),
		"interval", t.cfg.Interval,
		"worst_case_cycle", worst,
	)

	t.renderer.ShowSkeleton()
	if err := t.display.Flush(); err != nil {
		t.logger.Error("failed to flush display", "error", err)
	}

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	t.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("tracker stopped")
			return nil
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

// Start runs Run in a goroutine.
func (t *Tracker) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.Run(ctx)
	}()
}

// Stop cancels a started tracker and waits for the current cycle to end.
func (t *Tracker) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the latest cycle summary.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// tick runs a cycle unless ctx is already done. Cancelling ctx mid-cycle
// makes the remaining fetches fail fast; the cycle still visits every
// symbol.
func (t *Tracker) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := t.Tick(ctx); err != nil && !errors.Is(err, poller.ErrNetworkUnavailable) {
		t.logger.Error("poll cycle failed", "error", err)
	}
}

func (t *Tracker) record(res poller.Result, skipped bool) {
	valid := t.store.ValidCount()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.Valid = valid
	t.status.Cycles++
	t.status.LastSkipped = skipped
	if skipped {
		t.status.Skipped++
	}
	if res.AnyChanged {
		t.status.LastChanged = t.lastChanged
	}
}
