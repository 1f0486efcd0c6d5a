package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/cosfat/kzone/internal/app"
	"github.com/cosfat/kzone/internal/auth"
	"github.com/cosfat/kzone/internal/clock"
	"github.com/cosfat/kzone/internal/config"
	"github.com/cosfat/kzone/internal/ratelimit"
	"github.com/cosfat/kzone/internal/storage/postgres"
	transporthttp "github.com/cosfat/kzone/internal/transport/http"
	"github.com/cosfat/kzone/migrations"
)

const defaultConfigFile = "config.yaml"
const shutdownTimeout = 10 * time.Second

const verifyAttemptLimit = 5
const verifyAttemptWindow = 15 * time.Minute
const limiterPruneSchedule = "@every 5m"

func main() {
	logger := log.Default()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = defaultConfigFile
	}
	cfg, err := config.Load(configFile, logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()

	typeSvc := app.NewEventTypeService(postgres.NewEventTypeRepository(pool))
	settingsSvc := app.NewSettingsService(postgres.NewSettingsRepository(pool))
	eventSvc := app.NewEventService(postgres.NewEventRepository(pool), typeSvc, settingsSvc, clk, logger)

	scheduler := cron.New()
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		redisPool := ratelimit.NewRedisPool(cfg.RedisAddr)
		defer redisPool.Close()
		limiter = ratelimit.NewRedisLimiter(redisPool, verifyAttemptLimit, verifyAttemptWindow, clk)
		logger.Printf("using redis attempt limiter at %s", cfg.RedisAddr)
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(verifyAttemptLimit, verifyAttemptWindow, clk)
		if _, err := scheduler.AddFunc(limiterPruneSchedule, memLimiter.Prune); err != nil {
			log.Fatalf("schedule limiter prune: %v", err)
		}
		limiter = memLimiter
		logger.Printf("using in-memory attempt limiter")
	}
	scheduler.Start()
	defer scheduler.Stop()

	gate := auth.NewGate(
		auth.NewJWTVerifier(cfg.AuthTokenSecret),
		auth.NewAdminEmailPolicy(cfg.AdminEmail),
		limiter,
	)

	router := transporthttp.NewRouter(eventSvc, typeSvc, settingsSvc, gate)
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, router), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
