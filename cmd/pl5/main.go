package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/pl5bot/config"
	"github.com/alejandrodnm/pl5bot/internal/adapters/ledger"
	"github.com/alejandrodnm/pl5bot/internal/adapters/report"
	"github.com/alejandrodnm/pl5bot/internal/adapters/storage"
	"github.com/alejandrodnm/pl5bot/internal/adapters/weights"
	"github.com/alejandrodnm/pl5bot/internal/analyzer"
	"github.com/alejandrodnm/pl5bot/internal/domain"
	"github.com/alejandrodnm/pl5bot/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "run the pipeline without persisting weights or predictions")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full candidate table to console")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("pl5bot starting",
		"config", *configPath,
		"ledger", cfg.Analyzer.LedgerPath,
		"dry_run", *dryRun,
	)

	ledgerStore := ledger.NewCSVStore(cfg.Analyzer.LedgerPath)
	weightStore := weights.NewYAMLStore(cfg.Analyzer.WeightsPath)

	var predictions ports.PredictionStore
	if !*dryRun {
		store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
		predictions = store
	}

	files, err := report.NewFilePublisher(cfg.Report.Dir)
	if err != nil {
		slog.Error("failed to open report dir", "err", err, "dir", cfg.Report.Dir)
		os.Exit(1)
	}
	publisher := report.Multi{files, report.NewConsole(*table)}

	runCfg := analyzer.DefaultConfig()
	runCfg.ShortWindow = cfg.Analyzer.ShortWindow
	runCfg.TopN = cfg.Analyzer.TopN
	runCfg.Tickets = cfg.Analyzer.Tickets
	runCfg.DryRun = *dryRun
	runCfg.Tuner = analyzer.TunerConfig{
		EvalWindow:  cfg.Analyzer.EvalWindow,
		MinResolved: cfg.Analyzer.MinResolved,
		TopN:        cfg.Analyzer.TopN,
		ShortWindow: cfg.Analyzer.ShortWindow,
		Step:        cfg.Analyzer.TuneStep,
	}

	pipeline := analyzer.New(runCfg, ledgerStore, weightStore, predictions, publisher)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := pipeline.Run(ctx); err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			slog.Error("ledger unavailable — aborting before any write", "err", err)
		} else {
			slog.Error("pipeline failed", "err", err)
		}
		os.Exit(1)
	}

	slog.Info("pl5bot finished cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
