package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/domain"
)

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/stats", h.stats)
	rg.GET("/subdomains/:subdomain", h.subdomainAvailable)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.PATCH("/:id/site-config", h.patchSiteConfig)
	rg.POST("/:id/preview", h.preview)
}

// writeError maps domain errors onto status codes. The message is passed
// through unchanged.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
