package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultChartURL     = "https://query1.finance.yahoo.com/v8/finance/chart/"
	DefaultUserAgent    = "Mozilla/5.0"
	DefaultAPITimeout   = 10 * time.Second
	DefaultPollInterval = 60 * time.Second
	DefaultRequestDelay = 500 * time.Millisecond
	DefaultCheckTimeout = 3 * time.Second
	DefaultOutput       = OutputTerminal
	DefaultStatusMode   = "timestamp"
	DefaultTimezone     = "Local"
	DefaultServerPort   = 8080
	DefaultLogLevel     = "info"
)

// Display outputs.
const (
	OutputTerminal = "terminal"
	OutputNone     = "none"
)

// DefaultSymbols is the watch list used when the config names none.
func DefaultSymbols() []Symbol {
	return []Symbol{
		{Ticker: "AAPL", Name: "Apple"},
		{Ticker: "GOOGL", Name: "Google"},
		{Ticker: "NVDA", Name: "NVIDIA"},
		{Ticker: "TSLA", Name: "Tesla"},
		{Ticker: "META", Name: "Meta"},
		{Ticker: "AMZN", Name: "Amazon"},
		{Ticker: "MSFT", Name: "Microsoft"},
		{Ticker: "AMD", Name: "AMD"},
	}
}

func (c *TrackerConfig) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = DefaultSymbols()
	}
	for i := range c.Symbols {
		if c.Symbols[i].Name == "" {
			c.Symbols[i].Name = c.Symbols[i].Ticker
		}
	}

	// API defaults
	if c.API.ChartURL == "" {
		c.API.ChartURL = DefaultChartURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.RequestDelay == 0 {
		c.Poller.RequestDelay = DefaultRequestDelay
	}
	if c.Poller.CheckTimeout == 0 {
		c.Poller.CheckTimeout = DefaultCheckTimeout
	}

	// Display defaults
	if c.Display.Output == "" {
		c.Display.Output = DefaultOutput
	}
	if c.Display.StatusMode == "" {
		c.Display.StatusMode = DefaultStatusMode
	}
	if c.Display.Timezone == "" {
		c.Display.Timezone = DefaultTimezone
	}

	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
