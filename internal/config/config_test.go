package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
symbols:
  - ticker: AAPL
    name: Apple
  - ticker: GOOGL
api:
  chart_url: https://example.com/v8/finance/chart/
  timeout: 5s
poller:
  interval: 30s
  request_delay: 250ms
  check_timeout: 2s
display:
  output: none
  status_mode: count
  timezone: UTC
  mirror: true
`
	path := writeTempFile(t, "config.yaml", yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Symbols) != 2 {
		t.Fatalf("len(Symbols) = %d, want 2", len(cfg.Symbols))
	}
	if cfg.Symbols[0].Ticker != "AAPL" || cfg.Symbols[0].Name != "Apple" {
		t.Errorf("Symbols[0] = %+v, want AAPL/Apple", cfg.Symbols[0])
	}
	if cfg.API.ChartURL != "https://example.com/v8/finance/chart/" {
		t.Errorf("API.ChartURL = %q, want %q", cfg.API.ChartURL, "https://example.com/v8/finance/chart/")
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, 5*time.Second)
	}
	if cfg.Poller.Interval != 30*time.Second {
		t.Errorf("Poller.Interval = %v, want %v", cfg.Poller.Interval, 30*time.Second)
	}
	if cfg.Poller.RequestDelay != 250*time.Millisecond {
		t.Errorf("Poller.RequestDelay = %v, want %v", cfg.Poller.RequestDelay, 250*time.Millisecond)
	}
	if cfg.Display.StatusMode != "count" {
		t.Errorf("Display.StatusMode = %q, want %q", cfg.Display.StatusMode, "count")
	}
	if cfg.Poller.CheckTimeout != 2*time.Second {
		t.Errorf("Poller.CheckTimeout = %v, want %v", cfg.Poller.CheckTimeout, 2*time.Second)
	}
	if cfg.Display.Output != OutputNone {
		t.Errorf("Display.Output = %q, want %q", cfg.Display.Output, OutputNone)
	}
	if !cfg.Display.Mirror {
		t.Error("Display.Mirror = false, want true")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_CHART_URL", "https://quotes.internal/chart/")

	yaml := `
api:
  chart_url: ${TEST_CHART_URL}
`
	path := writeTempFile(t, "config.yaml", yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.ChartURL != "https://quotes.internal/chart/" {
		t.Errorf("API.ChartURL = %q, want %q", cfg.API.ChartURL, "https://quotes.internal/chart/")
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("TRACKER_TEST_ENV_FILE", "")
	os.Unsetenv("TRACKER_TEST_ENV_FILE")

	path := writeTempFile(t, ".env", "TRACKER_TEST_ENV_FILE=from-dotenv\n")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("TRACKER_TEST_ENV_FILE"); got != "from-dotenv" {
		t.Errorf("TRACKER_TEST_ENV_FILE = %q, want %q", got, "from-dotenv")
	}

	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
			t.Errorf("LoadEnvFile() error = %v, want nil", err)
		}
	})

	t.Run("empty path is ignored", func(t *testing.T) {
		if err := LoadEnvFile(""); err != nil {
			t.Errorf("LoadEnvFile() error = %v, want nil", err)
		}
	})
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "log:\n  level: debug\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if len(cfg.Symbols) != 8 {
		t.Errorf("len(Symbols) = %d, want 8", len(cfg.Symbols))
	}
	if cfg.Symbols[0].Ticker != "AAPL" {
		t.Errorf("Symbols[0].Ticker = %q, want %q", cfg.Symbols[0].Ticker, "AAPL")
	}
	if cfg.API.ChartURL != DefaultChartURL {
		t.Errorf("API.ChartURL = %q, want default %q", cfg.API.ChartURL, DefaultChartURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.API.UserAgent != DefaultUserAgent {
		t.Errorf("API.UserAgent = %q, want default %q", cfg.API.UserAgent, DefaultUserAgent)
	}
	if cfg.Poller.Interval != DefaultPollInterval {
		t.Errorf("Poller.Interval = %v, want default %v", cfg.Poller.Interval, DefaultPollInterval)
	}
	if cfg.Poller.RequestDelay != DefaultRequestDelay {
		t.Errorf("Poller.RequestDelay = %v, want default %v", cfg.Poller.RequestDelay, DefaultRequestDelay)
	}
	if cfg.Display.StatusMode != DefaultStatusMode {
		t.Errorf("Display.StatusMode = %q, want default %q", cfg.Display.StatusMode, DefaultStatusMode)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestApplyDefaults_NameFallsBackToTicker(t *testing.T) {
	cfg := TrackerConfig{Symbols: []Symbol{{Ticker: "SPY"}}}
	cfg.applyDefaults()
	if cfg.Symbols[0].Name != "SPY" {
		t.Errorf("Symbols[0].Name = %q, want %q", cfg.Symbols[0].Name, "SPY")
	}
}

func TestValidate(t *testing.T) {
	valid := func() TrackerConfig {
		cfg := TrackerConfig{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*TrackerConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*TrackerConfig) {},
			wantErr: "",
		},
		{
			name:    "no symbols",
			mutate:  func(c *TrackerConfig) { c.Symbols = nil },
			wantErr: "symbols must not be empty",
		},
		{
			name:    "blank ticker",
			mutate:  func(c *TrackerConfig) { c.Symbols[1].Ticker = " " },
			wantErr: "symbols[1].ticker is required",
		},
		{
			name:    "duplicate ticker",
			mutate:  func(c *TrackerConfig) { c.Symbols[2].Ticker = "AAPL" },
			wantErr: `symbols[2].ticker "AAPL" duplicates symbols[0]`,
		},
		{
			name:    "relative chart url",
			mutate:  func(c *TrackerConfig) { c.API.ChartURL = "/chart" },
			wantErr: `api.chart_url must be an absolute URL, got "/chart"`,
		},
		{
			name:    "negative retries",
			mutate:  func(c *TrackerConfig) { c.API.MaxRetries = -1 },
			wantErr: "api.max_retries must be >= 0",
		},
		{
			name:    "zero interval",
			mutate:  func(c *TrackerConfig) { c.Poller.Interval = -time.Second },
			wantErr: "poller.interval must be > 0",
		},
		{
			name:    "negative request delay",
			mutate:  func(c *TrackerConfig) { c.Poller.RequestDelay = -time.Millisecond },
			wantErr: "poller.request_delay must be >= 0",
		},
		{
			name:    "unknown output",
			mutate:  func(c *TrackerConfig) { c.Display.Output = "lcd" },
			wantErr: `display.output must be "terminal" or "none", got "lcd"`,
		},
		{
			name:    "unknown status mode",
			mutate:  func(c *TrackerConfig) { c.Display.StatusMode = "clock" },
			wantErr: `display.status_mode must be "timestamp" or "count", got "clock"`,
		},
		{
			name:    "bad port",
			mutate:  func(c *TrackerConfig) { c.Server.Port = 70000 },
			wantErr: "server.port must be between 1 and 65535, got 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}

	t.Run("bad timezone", func(t *testing.T) {
		cfg := valid()
		cfg.Display.Timezone = "Mars/Olympus"
		err := cfg.Validate()
		if err == nil || !strings.HasPrefix(err.Error(), `display.timezone "Mars/Olympus"`) {
			t.Errorf("Validate() error = %v, want display.timezone error", err)
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "verbose"
		err := cfg.Validate()
		if err == nil || !strings.HasPrefix(err.Error(), `log.level "verbose"`) {
			t.Errorf("Validate() error = %v, want log.level error", err)
		}
	})
}

func TestLoadAndValidate_InvalidConfig(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "poller:\n  request_delay: -1s\n")

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "validate config") {
		t.Errorf("error should contain 'validate config', got %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := LogConfig{Level: tt.in}.SlogLevel()
		if err != nil {
			t.Errorf("SlogLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDisplayLocation(t *testing.T) {
	loc := DisplayConfig{Timezone: "America/New_York"}.Location()
	if loc.String() != "America/New_York" {
		t.Errorf("Location() = %q, want %q", loc.String(), "America/New_York")
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
