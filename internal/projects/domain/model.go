package domain

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
)

// Status is the publication state of a project.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusBuilding    Status = "building"
	StatusPublished   Status = "published"
	StatusMaintenance Status = "maintenance"
)

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusDraft, StatusBuilding, StatusPublished, StatusMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Project is one website owned by a single user.
// It is storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID           string                `json:"id"`
	UserID       string                `json:"user_id"`
	Name         string                `json:"project_name"`
	Subdomain    *string               `json:"subdomain"`
	CustomDomain *string               `json:"custom_domain"`
	Status       Status                `json:"status"`
	TemplateID   *string               `json:"template_id"`
	AIEnabled    bool                  `json:"ai_enabled"`
	SiteConfig   siteconfig.SiteConfig `json:"site_config"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Update is a partial row write. Nil fields are left untouched.
type Update struct {
	Name         *string
	Subdomain    *string
	CustomDomain *string
	Status       *Status
	TemplateID   *string
	AIEnabled    *bool
	SiteConfig   *siteconfig.SiteConfig
}

// IsZero reports whether the update changes nothing.
func (u Update) IsZero() bool {
	return u.Name == nil && u.Subdomain == nil && u.CustomDomain == nil && u.Status == nil &&
		u.TemplateID == nil && u.AIEnabled == nil && u.SiteConfig == nil
}

// Stats summarises a user's projects for the dashboard.
type Stats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
	AIEnabled int `json:"ai_enabled"`
}

// Summarize counts projects by state. Building projects count as drafts.
func Summarize(items []Project) Stats {
	s := Stats{Total: len(items)}
	for _, p := range items {
		switch p.Status {
		case StatusPublished:
			s.Published++
		case StatusDraft, StatusBuilding:
			s.Drafts++
		}
		if p.AIEnabled {
			s.AIEnabled++
		}
	}
	return s
}
