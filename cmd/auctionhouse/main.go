package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/efreitasn/auctionhouse/internal/config"
	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/engine"
	"github.com/efreitasn/auctionhouse/internal/feed"
	"github.com/efreitasn/auctionhouse/internal/handler"
	"github.com/efreitasn/auctionhouse/internal/metrics"
	"github.com/efreitasn/auctionhouse/internal/service"
	"github.com/efreitasn/auctionhouse/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	replay := flag.String("replay", "", "Replay a line feed from a file (- for stdin), print results and exit")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		if err := checkHealth(fmt.Sprintf("http://localhost:%s/healthz", port)); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Replay mode keeps stdout for result lines.
	logOut := io.Writer(os.Stdout)
	if *replay != "" {
		logOut = os.Stderr
	}
	logger := newLogger(cfg.LogLevel, logOut)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	sinks, closeSinks, err := buildSinks(cfg)
	if err != nil {
		logger.Error("failed to set up result sinks", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSinks()

	manager := engine.NewManager(store.NewResultStore())
	auctionSvc := service.NewAuctionService(manager, m, logger, cfg.SinkTimeout, sinks...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *replay != "" {
		if err := runReplay(ctx, *replay, auctionSvc, logger); err != nil {
			logger.Error("replay failed", slog.String("error", err.Error()))
			closeSinks()
			os.Exit(1)
		}
		return
	}

	serve(ctx, cfg, auctionSvc, m, reg, logger)
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// buildSinks creates the result sinks enabled by configuration. The returned
// func releases their resources.
func buildSinks(cfg *config.Config) ([]service.ResultSink, func(), error) {
	var (
		sinks   []service.ResultSink
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
		closers = nil
	}

	if cfg.RedisAddr != "" {
		mirror, err := store.NewRedisResultMirror(store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisResultsChannel,
		})
		if err != nil {
			return nil, closeAll, err
		}
		sinks = append(sinks, mirror)
		closers = append(closers, mirror.Close)
	}
	if cfg.ResultWebhookURL != "" {
		sinks = append(sinks, service.NewWebhookSink(cfg.ResultWebhookURL, cfg.SinkTimeout))
	}
	return sinks, closeAll, nil
}

// checkHealth reports whether url answers 200.
func checkHealth(url string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// startHeartbeat drives AdvanceTime from the wall clock when interval is
// positive. Logical time is then Unix seconds, so it stays off by default
// for clients that send their own heartbeats. It reports whether it started.
func startHeartbeat(ctx context.Context, interval time.Duration, svc *service.AuctionService) bool {
	if interval <= 0 {
		return false
	}
	engine.NewHeartbeat(interval, func(ts int64) {
		svc.AdvanceTime(ctx, domain.AdvanceTime{Timestamp: ts})
	}).Start(ctx)
	return true
}

func runReplay(ctx context.Context, path string, svc *service.AuctionService, logger *slog.Logger) error {
	in := io.Reader(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open feed: %w", err)
		}
		defer f.Close()
		in = f
	}

	stats, err := feed.Replay(ctx, in, svc, os.Stdout)
	logger.Info("replay finished",
		slog.Int("lines", stats.Lines),
		slog.Int("events", stats.Events),
		slog.Int("results", stats.Results),
	)
	return err
}

func serve(
	ctx context.Context,
	cfg *config.Config,
	svc *service.AuctionService,
	m *metrics.Metrics,
	reg *prometheus.Registry,
	logger *slog.Logger,
) {
	router := handler.NewRouter(svc, m, reg, logger)

	hbCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if startHeartbeat(hbCtx, cfg.HeartbeatInterval, svc) {
		logger.Info("wall-clock heartbeat enabled", slog.Duration("interval", cfg.HeartbeatInterval))
	}

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Graceful shutdown: stop HTTP server, then the heartbeat.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
