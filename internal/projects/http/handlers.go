package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), service.CreateInput{
		Name:       req.ProjectName,
		Subdomain:  req.Subdomain,
		TemplateID: req.TemplateID,
		SiteConfig: req.SiteConfig,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.UserID(c), c.Param("id"), service.UpdateInput{
		Name:         req.ProjectName,
		Subdomain:    req.Subdomain,
		CustomDomain: req.CustomDomain,
		Status:       req.Status,
		TemplateID:   req.TemplateID,
		AIEnabled:    req.AIEnabled,
		SiteConfig:   req.SiteConfig,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) patchSiteConfig(c *gin.Context) {
	var patch siteconfig.SiteConfig
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.ApplyPatch(c.Request.Context(), auth.UserID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) stats(c *gin.Context) {
	s, err := h.svc.Stats(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": s})
}

func (h *Handler) subdomainAvailable(c *gin.Context) {
	sub := c.Param("subdomain")
	ok, err := h.svc.SubdomainAvailable(c.Request.Context(), sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subdomain": strings.ToLower(strings.TrimSpace(sub)), "available": ok})
}

// preview takes the unsaved editor state as an optional body.
func (h *Handler) preview(c *gin.Context) {
	var override *siteconfig.SiteConfig
	var body siteconfig.SiteConfig
	switch err := c.ShouldBindJSON(&body); {
	case err == nil:
		override = &body
	case errors.Is(err, io.EOF):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.svc.Preview(c.Request.Context(), auth.UserID(c), c.Param("id"), override, c.Query("viewport"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": res})
}
