package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *TrackerConfig) Validate() error {
	if len(c.Symbols) == 0 {
		return errors.New("symbols must not be empty")
	}
	seen := make(map[string]int, len(c.Symbols))
	for i, s := range c.Symbols {
		if strings.TrimSpace(s.Ticker) == "" {
			return fmt.Errorf("symbols[%d].ticker is required", i)
		}
		if j, dup := seen[s.Ticker]; dup {
			return fmt.Errorf("symbols[%d].ticker %q duplicates symbols[%d]", i, s.Ticker, j)
		}
		seen[s.Ticker] = i
	}

	u, err := url.Parse(c.API.ChartURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.chart_url must be an absolute URL, got %q", c.API.ChartURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Poller.Interval <= 0 {
		return errors.New("poller.interval must be > 0")
	}
	if c.Poller.RequestDelay < 0 {
		return errors.New("poller.request_delay must be >= 0")
	}
	if c.Poller.CheckTimeout <= 0 {
		return errors.New("poller.check_timeout must be > 0")
	}

	switch c.Display.Output {
	case OutputTerminal, OutputNone:
	default:
		return fmt.Errorf("display.output must be %q or %q, got %q", OutputTerminal, OutputNone, c.Display.Output)
	}
	switch c.Display.StatusMode {
	case "timestamp", "count":
	default:
		return fmt.Errorf("display.status_mode must be \"timestamp\" or \"count\", got %q", c.Display.StatusMode)
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("display.timezone %q: %w", c.Display.Timezone, err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Location returns the display timezone. Validate guarantees it loads.
func (d DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", l.Level, err)
	}
	return level, nil
}
