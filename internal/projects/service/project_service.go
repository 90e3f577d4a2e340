package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/preview"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/events"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/templates"
)

// maxSubdomainAttempts bounds the retries when a generated subdomain collides.
const maxSubdomainAttempts = 5

// Store is the persistence the service needs. Every call except
// SubdomainTaken is scoped to an owner.
type Store interface {
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)
	SelectAll(ctx context.Context, ownerID string) ([]domain.Project, error)
	SelectOne(ctx context.Context, id, ownerID string) (*domain.Project, error)
	Update(ctx context.Context, id, ownerID string, u domain.Update) (*domain.Project, error)
	Delete(ctx context.Context, id, ownerID string) error
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
}

type CreateInput struct {
	Name       string
	Subdomain  *string
	TemplateID *string
	SiteConfig *siteconfig.SiteConfig
}

// UpdateInput changes project settings. SiteConfig is a patch and goes
// through the same merge as ApplyPatch.
type UpdateInput struct {
	Name         *string
	Subdomain    *string
	CustomDomain *string
	Status       *string
	TemplateID   *string
	AIEnabled    *bool
	SiteConfig   *siteconfig.SiteConfig
}

type PreviewResult struct {
	Viewport preview.Viewport  `json:"viewport"`
	Width    string            `json:"width"`
	Site     preview.Effective `json:"site"`
}

type Options struct {
	Events        events.Publisher
	ConfigPatches *prometheus.CounterVec
	Logger        *zap.Logger
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store   Store
	events  events.Publisher
	patches *prometheus.CounterVec
	log     *zap.Logger
	now     func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(store Store, opts Options) *ProjectService {
	s := &ProjectService{
		store:   store,
		events:  opts.Events,
		patches: opts.ConfigPatches,
		log:     opts.Logger,
		now:     time.Now,
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.Named("project_service")
	return s
}

// Create creates a new draft project. Without an explicit subdomain one is
// derived from the name and regenerated on collision.
func (s *ProjectService) Create(ctx context.Context, userID string, in CreateInput) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}

	p := &domain.Project{
		UserID: userID,
		Name:   name,
		Status: domain.StatusDraft,
	}

	if in.TemplateID != nil && *in.TemplateID != "" {
		tpl, ok := templates.ByID(*in.TemplateID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown template %q", domain.ErrInvalidInput, *in.TemplateID)
		}
		p.TemplateID = &tpl.ID
		p.SiteConfig = seedConfig(tpl)
	}
	if in.SiteConfig != nil {
		p.SiteConfig = in.SiteConfig.Clone()
	}

	if in.Subdomain != nil && strings.TrimSpace(*in.Subdomain) != "" {
		sub, err := domain.NormalizeSubdomain(*in.Subdomain)
		if err != nil {
			return nil, err
		}
		p.Subdomain = &sub
		return s.insert(ctx, p)
	}

	for attempt := 1; attempt <= maxSubdomainAttempts; attempt++ {
		sub, err := domain.GenerateSubdomain(name)
		if err != nil {
			return nil, fmt.Errorf("failed to generate subdomain: %w", err)
		}
		p.Subdomain = &sub

		created, err := s.insert(ctx, p)
		if errors.Is(err, domain.ErrConflict) {
			s.log.Debug("generated subdomain taken, retrying",
				zap.String("subdomain", sub), zap.Int("attempt", attempt))
			continue
		}
		return created, err
	}
	return nil, domain.ErrConflict
}

func (s *ProjectService) insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	created, err := s.store.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("project created",
		zap.String("project_id", created.ID),
		zap.String("user_id", created.UserID),
		zap.Stringp("subdomain", created.Subdomain))
	s.publish(ctx, events.ProjectCreated, created)
	return created, nil
}

// seedConfig pre-fills the parts of a new project's config the template
// decides, so later template switches keep the look the user started with.
func seedConfig(tpl templates.Template) siteconfig.SiteConfig {
	return siteconfig.SiteConfig{
		BusinessType: siteconfig.String(string(tpl.Category)),
		Theme: &siteconfig.Theme{
			PrimaryColor:   siteconfig.String(tpl.Theme.PrimaryColor),
			SecondaryColor: siteconfig.String(tpl.Theme.SecondaryColor),
			FontFamily:     siteconfig.String(tpl.Theme.FontFamily),
		},
	}
}

// List returns all projects for a user, newest first.
func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.store.SelectAll(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, userID, id string) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.store.SelectOne(ctx, id, userID)
}

// ApplyPatch merges patch into the stored site configuration and writes the
// result back with a fresh updated_at.
//
// The read and the write are separate statements. Two concurrent patches
// both succeed and the later write wins for every top-level key the later
// patch's base snapshot carried; subscribers to the project events are told
// to refresh.
func (s *ProjectService) ApplyPatch(ctx context.Context, userID, id string, patch siteconfig.SiteConfig) (*domain.Project, error) {
	p, err := s.applyPatch(ctx, userID, id, patch)
	s.countPatch(err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ProjectConfigPatched, p)
	return p, nil
}

func (s *ProjectService) applyPatch(ctx context.Context, userID, id string, patch siteconfig.SiteConfig) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	current, err := s.store.SelectOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	merged := siteconfig.Merge(current.SiteConfig, patch)
	return s.store.Update(ctx, id, userID, domain.Update{SiteConfig: &merged})
}

// Update changes project settings. Fields left nil are kept. An input with
// nothing to change returns the current project without writing.
func (s *ProjectService) Update(ctx context.Context, userID, id string, in UpdateInput) (*domain.Project, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	u, err := buildUpdate(in)
	if err != nil {
		return nil, err
	}

	if in.SiteConfig != nil {
		current, err := s.store.SelectOne(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		merged := siteconfig.Merge(current.SiteConfig, *in.SiteConfig)
		u.SiteConfig = &merged
	}

	if u.IsZero() {
		return s.store.SelectOne(ctx, id, userID)
	}

	p, err := s.store.Update(ctx, id, userID, u)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ProjectUpdated, p)
	return p, nil
}

func buildUpdate(in UpdateInput) (domain.Update, error) {
	var u domain.Update

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return u, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
		}
		u.Name = &name
	}
	if in.Subdomain != nil {
		sub, err := domain.NormalizeSubdomain(*in.Subdomain)
		if err != nil {
			return u, err
		}
		u.Subdomain = &sub
	}
	if in.CustomDomain != nil {
		d := strings.ToLower(strings.TrimSpace(*in.CustomDomain))
		u.CustomDomain = &d
	}
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return u, err
		}
		u.Status = &st
	}
	if in.TemplateID != nil {
		tpl, ok := templates.ByID(*in.TemplateID)
		if !ok {
			return u, fmt.Errorf("%w: unknown template %q", domain.ErrInvalidInput, *in.TemplateID)
		}
		u.TemplateID = &tpl.ID
	}
	u.AIEnabled = in.AIEnabled
	return u, nil
}

// Delete removes the project for good.
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrAuthRequired
	}
	if err := s.store.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("project_id", id), zap.String("user_id", userID))
	s.publish(ctx, events.ProjectDeleted, &domain.Project{ID: id, UserID: userID})
	return nil
}

// Stats summarises the user's projects for the dashboard.
func (s *ProjectService) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Summarize(items), nil
}

// SubdomainAvailable reports whether subdomain is a valid label no project uses.
func (s *ProjectService) SubdomainAvailable(ctx context.Context, subdomain string) (bool, error) {
	sub, err := domain.NormalizeSubdomain(subdomain)
	if err != nil {
		return false, err
	}
	taken, err := s.store.SubdomainTaken(ctx, sub)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Preview resolves what the project's site looks like with the unsaved
// override applied. Nothing is written.
func (s *ProjectService) Preview(ctx context.Context, userID, id string, override *siteconfig.SiteConfig, viewport string) (*PreviewResult, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}

	vp, err := preview.ParseViewport(viewport)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	p, err := s.store.SelectOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if p.TemplateID == nil {
		return nil, fmt.Errorf("%w: project has no template", domain.ErrNotFound)
	}
	tpl, ok := templates.ByID(*p.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: template %q", domain.ErrNotFound, *p.TemplateID)
	}

	return &PreviewResult{
		Viewport: vp,
		Width:    vp.Width(),
		Site:     preview.Resolve(tpl, &p.SiteConfig, override),
	}, nil
}

// publish never fails the caller; a lost event only delays other tabs.
func (s *ProjectService) publish(ctx context.Context, t events.Type, p *domain.Project) {
	e := events.Event{Type: t, ProjectID: p.ID, UserID: p.UserID, At: s.now().UTC()}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish project event",
			zap.String("type", string(t)), zap.String("project_id", p.ID), zap.Error(err))
	}
}

func (s *ProjectService) countPatch(err error) {
	if s.patches == nil {
		return
	}
	s.patches.WithLabelValues(patchResult(err)).Inc()
}

func patchResult(err error) string {
	var se *domain.StorageError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAuthRequired):
		return "unauthenticated"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.As(err, &se):
		return "storage_error"
	default:
		return "error"
	}
}
