package config

import "time"

// TrackerConfig is the root configuration for a tracker process.
type TrackerConfig struct {
	Symbols []Symbol      `yaml:"symbols"`
	API     APIConfig     `yaml:"api"`
	Poller  PollerConfig  `yaml:"poller"`
	Display DisplayConfig `yaml:"display"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// Symbol is one tracked instrument. Ticker is sent to the quote API, Name is
// informational.
type Symbol struct {
	Ticker string `yaml:"ticker"`
	Name   string `yaml:"name"`
}

// APIConfig holds quote API settings.
type APIConfig struct {
	ChartURL   string        `yaml:"chart_url"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`     // per-request
	MaxRetries int           `yaml:"max_retries"` // 0 = one attempt per symbol per cycle
}

// PollerConfig holds poll cycle settings.
type PollerConfig struct {
	Interval     time.Duration `yaml:"interval"`
	RequestDelay time.Duration `yaml:"request_delay"` // pause between symbols
	CheckTimeout time.Duration `yaml:"check_timeout"` // connectivity probe
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	Output     string `yaml:"output"`      // "terminal" or "none"
	StatusMode string `yaml:"status_mode"` // "timestamp" or "count"
	Timezone   string `yaml:"timezone"`
	Mirror     bool   `yaml:"mirror"` // serve draw operations over WebSocket
}

// ServerConfig holds the health/mirror HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}
