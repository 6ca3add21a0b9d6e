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
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"orion-console/apiclient"
	"orion-console/cmd/bff/handlers"
	"orion-console/cmd/bff/router"
	"orion-console/config"
	"orion-console/db"
	"orion-console/docs"
	"orion-console/httpclient"
	"orion-console/logger"
	"orion-console/repositories"
)

// @title           Orion Console BFF
// @version         1.0
// @description     Backend-for-Frontend of the Orion admin console. Aggregates REST API calls into view-shaped responses.
// @BasePath        /api/bff
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Env.LogLevel, cfg.Env.ServiceName)
	if cfg.Env.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.BasePath = router.BasePath

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{
		Config: cfg,
		API: apiclient.NewWithBase(httpclient.NewBaseClientWithClient(
			httpclient.New(httpclient.Config{Timeout: cfg.App.Upstream.Timeout}),
			cfg.Env.APIBaseURL,
		)),
		HealthChecks: map[string]handlers.HealthCheck{},
	}

	// Redis 는 선택이다. 없으면 참조 캐시를 끄고 rate limit 은 메모리에 저장한다.
	if cfg.Env.RedisAddr != "" {
		rdb, err := db.NewRedis(ctx, cfg.Env.RedisAddr)
		if err != nil {
			logger.WarnWithFields("redis unavailable, reference cache disabled", logger.Fields{"error": err.Error()})
		} else {
			deps.Redis = rdb
			defer func(rdb *redis.Client) { _ = rdb.Close() }(rdb)
		}
	}

	// MongoDB 도 선택이다. 없으면 마이크로프론트엔드 이벤트를 기록하지 않는다.
	if cfg.Env.MongoURI != "" {
		if err := db.Init(ctx, cfg.Env.MongoURI, cfg.Env.MongoDBName); err != nil {
			logger.ErrorWithFields("failed to initialize MongoDB", logger.Fields{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close(context.Background())
		deps.EventStore = repositories.NewMicrofrontendEventRepository(db.Database())
		deps.HealthChecks["mongo"] = func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		}
	}

	engine, err := router.New(deps)
	if err != nil {
		logger.ErrorWithFields("failed to build router", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Env.BFFAddr,
		Handler:           router.WithCORS(engine, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting bff", logger.Fields{"addr": cfg.Env.BFFAddr, "api_base_url": cfg.Env.APIBaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("bff server stopped", logger.Fields{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("graceful shutdown failed", logger.Fields{"error": err.Error()})
	}
	logger.Log.Info("bff stopped")
}
