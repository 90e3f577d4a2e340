package http

import (
	"context"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
)

// ProjectService is what the handlers need from *service.ProjectService.
type ProjectService interface {
	Create(ctx context.Context, userID string, in service.CreateInput) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Get(ctx context.Context, userID, id string) (*domain.Project, error)
	ApplyPatch(ctx context.Context, userID, id string, patch siteconfig.SiteConfig) (*domain.Project, error)
	Update(ctx context.Context, userID, id string, in service.UpdateInput) (*domain.Project, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (domain.Stats, error)
	SubdomainAvailable(ctx context.Context, subdomain string) (bool, error)
	Preview(ctx context.Context, userID, id string, override *siteconfig.SiteConfig, viewport string) (*service.PreviewResult, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
}

func New(svc ProjectService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	ProjectName string                 `json:"project_name"`
	Subdomain   *string                `json:"subdomain"`
	TemplateID  *string                `json:"template_id"`
	SiteConfig  *siteconfig.SiteConfig `json:"site_config"`
}

type updateReq struct {
	ProjectName  *string                `json:"project_name"`
	Subdomain    *string                `json:"subdomain"`
	CustomDomain *string                `json:"custom_domain"`
	Status       *string                `json:"status"`
	TemplateID   *string                `json:"template_id"`
	AIEnabled    *bool                  `json:"ai_enabled"`
	SiteConfig   *siteconfig.SiteConfig `json:"site_config"`
}
