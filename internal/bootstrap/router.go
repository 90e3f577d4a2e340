package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/site-builder-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/metrics"
	projectshttp "github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/http"
)

type RouterDeps struct {
	ServiceName        string
	Version            string
	CORSAllowedOrigins []string
	DB                 *sql.DB
	Redis              *redis.Client
	Auth               gin.HandlerFunc
	Projects           projectshttp.ProjectService
	Metrics            *metrics.Metrics
	Logger             *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	log := dep.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ZapLogger(log.Named("http")))
	if dep.Metrics != nil {
		r.Use(dep.Metrics.Middleware())
		r.GET("/metrics", dep.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(dep.CORSAllowedOrigins)))

	var db, cache httpapi.Pinger
	if dep.DB != nil {
		db = dep.DB
	}
	if dep.Redis != nil {
		cache = redisPinger{dep.Redis}
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, db, cache).RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Auth:     dep.Auth,
		Projects: dep.Projects,
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id"}
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
