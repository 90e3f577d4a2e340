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

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/site-builder-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logger"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/events"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/storage/redis"
)

const serviceName = "site-builder-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Encoding: cfg.App.LogEncoding})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		zl.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.RunMigrations(ctx, db, zl.Named("migrate")); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	zl.Info("connected to PostgreSQL")

	var (
		redisClient *goredis.Client
		publisher   events.Publisher = events.Noop{}
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			zl.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		publisher = events.NewRedisPublisher(redisClient)
		zl.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		zl.Info("REDIS_ADDR not set, project events disabled")
	}

	var authMiddleware gin.HandlerFunc
	switch cfg.Auth.Mode {
	case config.AuthModeHeader:
		zl.Warn("AUTH_MODE=header trusts X-User-Id, use for local development only")
		authMiddleware = auth.HeaderUser()
	default:
		// The client keeps this context for its token source.
		client, err := auth.InitializeFirebase(context.Background(), &cfg.Auth)
		if err != nil {
			zl.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		authMiddleware = authmw.FirebaseAuthMiddleware(client)
	}

	m := metrics.New()
	projectService := service.NewProjectService(
		repository.NewProjectRepository(db, zl),
		service.Options{
			Events:        publisher,
			ConfigPatches: m.ConfigPatches,
			Logger:        zl,
		},
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        serviceName,
		Version:            cfg.App.Version,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		DB:                 db,
		Redis:              redisClient,
		Auth:               authMiddleware,
		Projects:           projectService,
		Metrics:            m,
		Logger:             zl,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("starting HTTP server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
