package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/config"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/feed"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/router"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in dev, JSON in prod
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := feed.NewHub(rdb)
	mailer := infra.NewMailer(cfg)
	if !mailer.Configurado() {
		log.Warn().Msg("SMTP_HOST not set, report e-mails are disabled")
	}
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	svcs := router.NewServices(cfg, db, hub, dispatcher, mailer)

	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	workerHandlers := worker.WorkerHandlers{
		Ticket: worker.NewTicketWorker(repository.NewVentaRepository(db), cfg.NegocioNombre, cfg.PDFStoragePath),
		Email:  worker.NewReporteEmailWorker(svcs.Reporte, mailer, smtpCB, cfg.NegocioNombre),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, workerHandlers)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{RDB: rdb, SMTP: smtpCB})

	r := router.New(cfg, db, rdb, hub, svcs, smtpCB)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// no WriteTimeout: /v1/stream keeps the response open
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("%s backend listening on :%d", cfg.NegocioNombre, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	// stop workers and the retry cron before draining HTTP
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
