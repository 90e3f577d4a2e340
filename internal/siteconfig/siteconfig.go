// Package siteconfig holds the per-project site configuration: a sparse set of
// overrides on top of a template's defaults. Every field is optional; nil means
// "not set" and callers fall back to the template when rendering.
package siteconfig

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type SiteConfig struct {
	BusinessName *string `json:"business_name,omitempty"`
	BusinessType *string `json:"business_type,omitempty"`
	Description  *string `json:"description,omitempty"`

	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`

	Social   *Social   `json:"social,omitempty"`
	Theme    *Theme    `json:"theme,omitempty"`
	SEO      *SEO      `json:"seo,omitempty"`
	Sections *Sections `json:"sections,omitempty"`
}

type Social struct {
	Instagram *string `json:"instagram,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Line      *string `json:"line,omitempty"`
}

type Theme struct {
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	FontFamily     *string `json:"font_family,omitempty"`
}

type SEO struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type Sections struct {
	Hero  *Hero  `json:"hero,omitempty"`
	About *About `json:"about,omitempty"`
	// Services is a pointer so an explicitly empty list ([]) stays distinct
	// from an absent one.
	Services *[]Service `json:"services,omitempty"`
	Gallery  []string   `json:"gallery,omitempty"`
	Contact  *Contact   `json:"contact,omitempty"`
}

type Hero struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type About struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type Service struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       *string `json:"price,omitempty"`
}

type Contact struct {
	Enabled bool `json:"enabled"`
}

// String returns a pointer to s, for building configs in code.
func String(s string) *string { return &s }

// Str dereferences p, returning "" for nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ServiceList returns the services list and whether it was set at all.
func (s *Sections) ServiceList() ([]Service, bool) {
	if s == nil || s.Services == nil {
		return nil, false
	}
	return *s.Services, true
}

// IsZero reports whether no top-level field is set.
func (c SiteConfig) IsZero() bool {
	return c.BusinessName == nil && c.BusinessType == nil && c.Description == nil &&
		c.Phone == nil && c.Email == nil && c.Address == nil &&
		c.Social == nil && c.Theme == nil && c.SEO == nil && c.Sections == nil
}

// Merge applies patch on top of current one top-level key at a time. A key set
// in patch replaces the current value wholesale (nested objects included); a
// key absent from patch keeps the current value.
//
// Callers that only want to change one nested field must send the whole
// nested object, otherwise its other fields are dropped. A JSON null decodes
// to a nil field and counts as absent; clear a value with "" or {} instead.
func Merge(current, patch SiteConfig) SiteConfig {
	out := current.Clone()
	p := patch.Clone()

	if p.BusinessName != nil {
		out.BusinessName = p.BusinessName
	}
	if p.BusinessType != nil {
		out.BusinessType = p.BusinessType
	}
	if p.Description != nil {
		out.Description = p.Description
	}
	if p.Phone != nil {
		out.Phone = p.Phone
	}
	if p.Email != nil {
		out.Email = p.Email
	}
	if p.Address != nil {
		out.Address = p.Address
	}
	if p.Social != nil {
		out.Social = p.Social
	}
	if p.Theme != nil {
		out.Theme = p.Theme
	}
	if p.SEO != nil {
		out.SEO = p.SEO
	}
	if p.Sections != nil {
		out.Sections = p.Sections
	}
	return out
}

// Clone returns a deep copy of c.
func (c SiteConfig) Clone() SiteConfig {
	out := SiteConfig{
		BusinessName: cloneStr(c.BusinessName),
		BusinessType: cloneStr(c.BusinessType),
		Description:  cloneStr(c.Description),
		Phone:        cloneStr(c.Phone),
		Email:        cloneStr(c.Email),
		Address:      cloneStr(c.Address),
	}
	if c.Social != nil {
		out.Social = &Social{
			Instagram: cloneStr(c.Social.Instagram),
			Twitter:   cloneStr(c.Social.Twitter),
			Facebook:  cloneStr(c.Social.Facebook),
			Line:      cloneStr(c.Social.Line),
		}
	}
	if c.Theme != nil {
		out.Theme = &Theme{
			PrimaryColor:   cloneStr(c.Theme.PrimaryColor),
			SecondaryColor: cloneStr(c.Theme.SecondaryColor),
			FontFamily:     cloneStr(c.Theme.FontFamily),
		}
	}
	if c.SEO != nil {
		out.SEO = &SEO{
			Title:       cloneStr(c.SEO.Title),
			Description: cloneStr(c.SEO.Description),
			Keywords:    cloneStrings(c.SEO.Keywords),
		}
	}
	if c.Sections != nil {
		out.Sections = c.Sections.clone()
	}
	return out
}

func (s *Sections) clone() *Sections {
	out := &Sections{Gallery: cloneStrings(s.Gallery)}
	if s.Hero != nil {
		out.Hero = &Hero{
			Title:    cloneStr(s.Hero.Title),
			Subtitle: cloneStr(s.Hero.Subtitle),
			Image:    cloneStr(s.Hero.Image),
		}
	}
	if s.About != nil {
		out.About = &About{Title: cloneStr(s.About.Title), Content: cloneStr(s.About.Content)}
	}
	if s.Services != nil {
		list := make([]Service, len(*s.Services))
		for i, svc := range *s.Services {
			svc.Price = cloneStr(svc.Price)
			list[i] = svc
		}
		out.Services = &list
	}
	if s.Contact != nil {
		c := *s.Contact
		out.Contact = &c
	}
	return out
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}

// Value stores the config as a jsonb document.
func (c SiteConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal site_config: %w", err)
	}
	return string(b), nil
}

// Scan reads a jsonb document. NULL scans to the zero config.
func (c *SiteConfig) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = SiteConfig{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("site_config: unsupported scan type %T", src)
	}

	var out SiteConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("unmarshal site_config: %w", err)
		}
	}
	*c = out
	return nil
}
