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

	"github.com/joho/godotenv"

	"wutonggo/internal/api"
	"wutonggo/pkg/config"
	"wutonggo/pkg/control"
	"wutonggo/pkg/dataset"
	"wutonggo/pkg/guide"
	"wutonggo/pkg/logging"
	"wutonggo/pkg/splash"
	"wutonggo/pkg/timeline"
	"wutonggo/pkg/tour"
	"wutonggo/pkg/version"
)

var (
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	configPath = flag.String("config", "configs/wutonggo.yaml", "Path to the config file")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Optional local overrides, e.g. WUTONGGO_ADDR for dev setups.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr := os.Getenv("WUTONGGO_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Wutonggo Started", "version", version.Version)

	houses, err := dataset.Load(cfg.Dataset.Dir)
	if err != nil {
		return fmt.Errorf("failed to load house dataset: %w", err)
	}
	slog.Info("Dataset loaded", "houses", len(houses))

	clock := timeline.NewRealClock()
	store := guide.NewStore(clock)
	ctrl := control.NewStore()

	splashCtl := splash.NewController(clock, splash.Options{
		MinDuration: cfg.Splash.MinDuration.Std(),
		MaxDuration: cfg.Splash.MaxDuration.Std(),
		OnTimeout: func() {
			slog.Warn("Splash: Shell never reported ready")
		},
	})
	defer splashCtl.Close()

	session := tour.NewSession(store, ctrl, clock, tour.Options{
		DefaultDelay:  cfg.Script.DefaultDelay.Std(),
		ResponseDelay: cfg.Script.ResponseDelay.Std(),
	})

	store.Initialize(houses)
	session.Start()
	defer session.Close()

	if cfg.Offline.AutoStart {
		session.SetOfflineMode(true)
	}
	splashCtl.MarkReady()

	stateH := api.NewStateHandler(store, ctrl)
	tourH := api.NewTourHandler(session)
	splashH := api.NewSplashHandler(splashCtl)
	eventsH := api.NewEventsHandler(stateH, store, ctrl)

	srv := api.NewServer(cfg.Server.Addr, stateH, tourH, splashH, eventsH, cfg.Server.StaticDir, cancel)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		slog.Info("Signal received, shutting down", "signal", sig)
	case <-ctx.Done():
		slog.Info("Shutdown requested")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	return nil
}
