// Package main - Entry point for the bill optimizer server
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bill-optimizer/api"
	"bill-optimizer/core/estimator"
	"bill-optimizer/core/predictor"
	"bill-optimizer/core/tariff"
	"bill-optimizer/db"
	"bill-optimizer/internal/config"
	"bill-optimizer/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to configuration file (JSON)")
	addr := flag.String("addr", "", "Listen address (overrides configuration)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logging.Fatal("failed to load configuration",
				zap.String("path", *configPath), zap.Error(err))
		}
		cfg = loaded
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	table := buildTable(cfg)
	capability := buildCapability(cfg)
	engine := estimator.New(table, capability)

	var history db.HistoryStore
	if cfg.History.Enabled {
		store, err := db.OpenSQLite(cfg.History.DatabasePath)
		if err != nil {
			logging.Warn("history disabled: database unavailable",
				zap.String("path", cfg.History.DatabasePath), zap.Error(err))
		} else {
			history = store
			defer store.Close()
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.NewServerWithHistory(version, engine, table, history))
	if cfg.Server.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// SIGHUP reloads the tariff schedule without dropping requests.
	go watchReload(table, cfg)

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	logging.Info("bill optimizer server starting",
		zap.String("version", version),
		zap.String("addr", listenAddr),
		zap.Bool("model_loaded", capability != nil),
		zap.Bool("history_enabled", history != nil))

	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}

// buildTable loads the tariff schedule named in the configuration, falling
// back to the built-in NEPRA schedule.
func buildTable(cfg *config.Config) *tariff.Table {
	if cfg.Tariff.SchedulePath == "" {
		return tariff.NewDefaultTable()
	}

	schedule, err := tariff.LoadSchedule(cfg.Tariff.SchedulePath)
	if err != nil {
		logging.Fatal("failed to load tariff schedule",
			zap.String("path", cfg.Tariff.SchedulePath), zap.Error(err))
	}

	table, err := tariff.NewTable(schedule)
	if err != nil {
		logging.Fatal("invalid tariff schedule", zap.Error(err))
	}

	logging.Info("tariff schedule loaded",
		zap.String("path", cfg.Tariff.SchedulePath))
	return table
}

// buildCapability loads the model artifact when one is configured. A missing
// or broken artifact is not fatal; the engine simply runs deterministic.
func buildCapability(cfg *config.Config) predictor.Capability {
	if cfg.Model.ArtifactPath == "" {
		return nil
	}

	model, err := predictor.LoadLinearModel(cfg.Model.ArtifactPath)
	if err != nil {
		logging.Warn("model artifact unavailable, running deterministic",
			zap.String("path", cfg.Model.ArtifactPath), zap.Error(err))
		return nil
	}

	info := model.Info()
	logging.Info("model artifact loaded",
		zap.String("name", info.Name),
		zap.Float64("r2_score", info.R2Score))
	return model
}

// watchReload swaps in a fresh tariff schedule on SIGHUP. A bad schedule is
// rejected and the live one stays in place.
func watchReload(table *tariff.Table, cfg *config.Config) {
	if cfg.Tariff.SchedulePath == "" {
		return
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)

	for range ch {
		schedule, err := tariff.LoadSchedule(cfg.Tariff.SchedulePath)
		if err != nil {
			logging.Error("tariff reload failed, keeping current schedule",
				zap.Error(err))
			continue
		}
		if err := table.Replace(schedule); err != nil {
			logging.Error("tariff reload rejected, keeping current schedule",
				zap.Error(err))
			continue
		}
		logging.Info("tariff schedule reloaded",
			zap.String("path", cfg.Tariff.SchedulePath))
	}
}
