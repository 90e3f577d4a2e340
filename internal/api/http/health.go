package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	redis       Pinger
}

// NewHealthHandler builds the handler. A nil db or redis reports "disabled".
func NewHealthHandler(serviceName, version string, db, redis Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		redis:       redis,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        ping(c.Request.Context(), h.db),
		Redis:     ping(c.Request.Context(), h.redis),
	})
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.PingContext(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
