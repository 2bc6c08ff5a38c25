package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/stock-tracker/internal/api"
	"github.com/rickgao/stock-tracker/internal/config"
	"github.com/rickgao/stock-tracker/internal/display"
	"github.com/rickgao/stock-tracker/internal/netcheck"
	"github.com/rickgao/stock-tracker/internal/poller"
	"github.com/rickgao/stock-tracker/internal/quote"
	"github.com/rickgao/stock-tracker/internal/render"
	"github.com/rickgao/stock-tracker/internal/tracker"
	"github.com/rickgao/stock-tracker/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/tracker.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		slog.Error("tracker failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, envPath string) error {
	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}

	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal display owns stdout.
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
		"symbols", len(cfg.Symbols),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(
		cfg.API.ChartURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
		api.WithUserAgent(cfg.API.UserAgent),
	)

	checker, err := netcheck.NewDialer(cfg.API.ChartURL, cfg.Poller.CheckTimeout)
	if err != nil {
		return fmt.Errorf("create network check: %w", err)
	}

	store := quote.NewStore(cfg.Symbols)

	p := poller.New(poller.Config{
		RequestDelay: cfg.Poller.RequestDelay,
		Timeout:      cfg.API.Timeout,
	}, client, checker, store, logger)

	layout := render.DefaultLayout()
	height := layout.Height(store.Len())

	var surfaces []display.Display
	if cfg.Display.Output == config.OutputTerminal {
		surfaces = append(surfaces, display.NewTerminal(os.Stdout, layout.Width, height))
	}
	var mirrorHandler http.Handler
	if cfg.Display.Mirror {
		mirror := display.NewMirror(layout.Width, height, logger)
		defer mirror.Close()
		surfaces = append(surfaces, mirror)
		mirrorHandler = mirror
	}
	if len(surfaces) == 0 {
		// Headless: render into memory so the cycle is unchanged.
		surfaces = append(surfaces, display.NewCanvas(layout.Width, height))
	}
	d := display.Multi(surfaces...)

	mode, err := render.ParseStatusMode(cfg.Display.StatusMode)
	if err != nil {
		return err
	}
	renderer := render.New(d, store, layout, mode, cfg.Display.Location())

	trk := tracker.New(tracker.Config{Interval: cfg.Poller.Interval}, store, p, renderer, d, tracker.SystemClock{}, logger)

	healthServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           createHealthHandler(trk, mirrorHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Server.Port)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return trk.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("tracker stopped")
	return err
}
