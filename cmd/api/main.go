package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/petspa-booking/internal/db"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/cache"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/mailer"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/logger"
	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/routes"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
	ucPayment "github.com/BruksfildServices01/petspa-booking/internal/usecase/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("error", os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	clock := timezone.NewClock(cfg.Timezone)
	m := metrics.New("spa")

	var guard ucPayment.CallbackGuard = cache.NopGuard{}
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, callback guard disabled")
		} else {
			defer client.Close()
			guard = cache.NewCallbackGuard(client, 10*time.Minute)
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	notifier := notification.NewDispatcher(mailer.New(cfg.SMTP, log), log, m, cfg.NotifyQueueSize)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Clock:    clock,
		Log:      log,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Metrics:  m,
		Gateway:  vnpay.New(cfg.VNPay, clock),
		Guard:    guard,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// drain queued emails and audit events before exiting
	notifier.Close()
	auditDispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
