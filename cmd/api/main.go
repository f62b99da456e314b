package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	"github.com/BruksfildServices01/table-booking/internal/cache"
	"github.com/BruksfildServices01/table-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/table-booking/internal/db"
	"github.com/BruksfildServices01/table-booking/internal/events"
	infraRepo "github.com/BruksfildServices01/table-booking/internal/infra/repository"
	"github.com/BruksfildServices01/table-booking/internal/logging"
	"github.com/BruksfildServices01/table-booking/internal/middleware"
	"github.com/BruksfildServices01/table-booking/internal/routes"
)

func main() {

	cfg := config.Load()

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg, log)

	// --------------------------------------------------
	// Gateway (postgres + retry)
	// --------------------------------------------------
	policy := cfg.RetryPolicy()
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.Warn("retrying storage operation",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	gateway := infraRepo.NewResilientGateway(
		infraRepo.NewReservationGormRepository(db, cfg.ProcedureOptions()),
		policy,
	)

	// --------------------------------------------------
	// Auditoria (banco + RabbitMQ opcional)
	// --------------------------------------------------
	sinks := []audit.Sink{audit.New(db)}
	if cfg.RabbitURL != "" {
		publisher := events.NewPublisher(cfg.RabbitURL, cfg.EventsQueue)
		defer publisher.Close()
		sinks = append(sinks, publisher)
	}
	dispatcher := audit.NewDispatcher(log, sinks...)

	// --------------------------------------------------
	// Cache de disponibilidade (redis opcional)
	// --------------------------------------------------
	rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	availabilityCache := cache.NewAvailabilityCache(rdb, cfg.AvailabilityCacheTTL, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Cfg:     cfg,
		Gateway: gateway,
		DB:      db,
		Audit:   dispatcher,
		Cache:   availabilityCache,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	dispatcher.Close()
}
