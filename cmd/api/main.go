package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voltgrid/gridsim/internal/api"
	"github.com/voltgrid/gridsim/internal/config"
	"github.com/voltgrid/gridsim/internal/store"
)

func main() {
	log := newLogger()
	log.Info("dashboard api starting")

	cfg, err := config.LoadAPI(log)
	if err != nil {
		log.Error("config error", "err", err)
		os.Exit(1)
	}

	db, err := store.Open(context.Background(), cfg.DB.DSN())
	if err != nil {
		log.Error("store unavailable", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	server := api.NewServer(log, store.NewReader(db))
	srv := &http.Server{Addr: cfg.Addr, Handler: server.Router()}

	go func() {
		log.Info("http listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "err", err)
	}
	log.Info("shutdown complete")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
