// cmd/companiond/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/companion-sync/internal/config"
	"github.com/tamzrod/companion-sync/internal/controller"
	"github.com/tamzrod/companion-sync/internal/daemon"
	"github.com/tamzrod/companion-sync/internal/metrics"
	"github.com/tamzrod/companion-sync/internal/settings"
	"github.com/tamzrod/companion-sync/internal/snapshot"
	"github.com/tamzrod/companion-sync/internal/store/samplestore"
	"github.com/tamzrod/companion-sync/internal/transport/natslink"
)

// sampleRetention is how long samples are kept before the daily prune.
// Comfortably wider than the snapshot lookback window.
const sampleRetention = 48 * time.Hour

func main() {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if os.Getenv("COMPANIOND_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	if len(os.Args) < 2 {
		fatal("usage: companiond <config.yaml>")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fatal("config load failed", "error", err)
	}
	if err := config.Validate(cfg); err != nil {
		fatal("config validation failed", "error", err)
	}
	config.Normalize(cfg)

	c := cfg.Companion

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Sample store
	// --------------------

	store, err := samplestore.Open(c.Store.Path)
	if err != nil {
		fatal("sample store open failed", "error", err)
	}
	defer store.Close()

	// --------------------
	// Companion link
	// --------------------

	link, err := natslink.Connect(natslink.Config{
		URL:                 c.Link.URL,
		SubjectPrefix:       c.Link.SubjectPrefix,
		PresenceTTL:         time.Duration(c.Link.PresenceTTLMs) * time.Millisecond,
		DailyPriorityBudget: c.Link.DailyPriorityBudget,
	})
	if err != nil {
		fatal("companion link failed", "error", err)
	}
	defer link.Close()

	// --------------------
	// Snapshot builder + controller
	// --------------------

	settingsStore := settings.NewStore(settings.FromConfig(c.Settings))

	builder, err := snapshot.NewBuilder(store, settingsStore, link)
	if err != nil {
		fatal("snapshot builder failed", "error", err)
	}

	ctrl, err := controller.New(controller.Config{
		PriorityMinInterval: time.Duration(c.Sync.PriorityMinIntervalMs) * time.Millisecond,
	}, builder, link)
	if err != nil {
		fatal("controller failed", "error", err)
	}

	// --------------------
	// Metrics (optional)
	// --------------------

	if addr := c.Metrics.ListenAddr; addr != "" {
		reg := prom.NewRegistry()
		ctrl.SetRecorder(metrics.NewRecorder(reg))
		metrics.Serve(ctx, addr, reg)
	}

	// --------------------
	// Inbound events -> controller loop
	// --------------------

	link.SetReachabilityHandler(ctrl.OnReachabilityChanged)
	link.SetRequestHandler(ctrl.OnInboundRequest)

	if err := link.Start(ctx); err != nil {
		fatal("companion link start failed", "error", err)
	}

	// --------------------
	// Periodic jobs
	// --------------------

	sched, err := daemon.NewScheduler()
	if err != nil {
		fatal("scheduler failed", "error", err)
	}

	syncInterval := time.Duration(c.Sync.IntervalMs) * time.Millisecond
	if err := sched.SchedulePeriodic("sync", syncInterval, func() {
		ctrl.RequestSync(controller.TriggerTimer)
	}); err != nil {
		fatal("scheduling sync failed", "error", err)
	}

	if err := sched.SchedulePeriodic("prune", 24*time.Hour, func() {
		pruneCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := store.Prune(pruneCtx, time.Now().Add(-sampleRetention))
		if err != nil {
			slog.Warn("sample prune failed", "error", err)
			return
		}
		slog.Info("pruned old samples", "removed", n)
	}); err != nil {
		fatal("scheduling prune failed", "error", err)
	}

	sched.Start()
	defer func() { _ = sched.Stop() }()

	go ctrl.Run(ctx)

	// First cycle right away instead of waiting out a full interval.
	ctrl.RequestSync(controller.TriggerManual)

	<-ctx.Done()
	slog.Info("shutting down")
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
