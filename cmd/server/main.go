package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/config"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/infra"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/router"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Application state lives in memory; the snapshot file is the single
	// durable copy, reloaded on boot and rewritten (debounced) on every
	// committed state transition.
	initial, err := store.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SnapshotPath).Msg("failed to load state snapshot")
	}
	st := store.New(initial)

	snapshotter := store.NewSnapshotter(cfg.SnapshotPath, time.Duration(cfg.SnapshotDebounceMS)*time.Millisecond)
	st.Subscribe(snapshotter.Notify)

	// Worker pool for async tasks (receipt PDFs, notification email).
	// Handlers are wired here (composition root) so the pool has full access
	// to the infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	pool := worker.NewPool(rdb)
	pool.Register(worker.QueueReceipt, worker.NewReceiptWorker(st, dispatcher, cfg.PDFStoragePath))
	pool.Register(worker.QueueEmail, worker.NewEmailWorker(mailer))
	pool.Start(ctx, cfg.WorkerPoolSize)

	r := router.New(cfg, st, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("kazumi backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Flush any pending snapshot before exit so no committed state is lost.
	snapshotter.Close()
	log.Info().Msg("server exited")
}
