package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/voltgrid/gridsim/internal/config"
	"github.com/voltgrid/gridsim/internal/simulation"
	"github.com/voltgrid/gridsim/internal/store"
	"github.com/voltgrid/gridsim/internal/topology"
)

func main() {
	log := newLogger()
	log.Info("grid simulator starting")

	cfg, err := config.LoadSimulator(log)
	if err != nil {
		log.Error("config error", "err", err)
		os.Exit(1)
	}

	params, err := simulation.LoadParams(cfg.ParamsFile)
	if err != nil {
		log.Error("params error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DB.DSN())
	if err != nil {
		log.Error("store unavailable", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	topo, err := topology.NewRepository(db, log).Fetch(ctx)
	if err != nil {
		log.Error("topology fetch failed", "err", err)
		os.Exit(1)
	}

	driver := simulation.NewDriver(log, simulation.DriverConfig{
		Start:      cfg.Start,
		End:        cfg.End,
		Step:       cfg.Step,
		Seed:       cfg.Seed,
		FlushEvery: cfg.FlushEvery,
		Params:     params,
	}, topo, store.NewWriter(db, log))

	stats, err := driver.Run(ctx)
	if err != nil {
		log.Error("run failed", "err", err, "ticksCompleted", stats.Ticks, "flushesCommitted", stats.Flushes)
		os.Exit(1)
	}

	log.Info("all data written",
		"ticks", stats.Ticks,
		"weather", stats.Weather, "prices", stats.Prices,
		"loads", stats.Loads, "generation", stats.Generation,
		"lines", stats.Lines, "alerts", stats.Alerts)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
