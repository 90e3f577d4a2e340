// Package preview computes the fully populated site description used to
// render a project, layering unsaved editor edits over the stored
// configuration over the template defaults.
package preview

import (
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/templates"
)

// Effective is the resolved configuration. No field is optional.
type Effective struct {
	TemplateID   string              `json:"template_id"`
	BusinessName string              `json:"business_name"`
	BusinessType string              `json:"business_type"`
	Description  string              `json:"description"`
	Theme        templates.Theme     `json:"theme"`
	Content      Content             `json:"content"`
	Contact      Contact             `json:"contact"`
	Social       Social              `json:"social"`
	SEO          SEO                 `json:"seo"`
	Sections     []templates.Section `json:"sections"`
}

type Content struct {
	HeroTitle      string               `json:"hero_title"`
	HeroSubtitle   string               `json:"hero_subtitle"`
	HeroImage      string               `json:"hero_image"`
	AboutTitle     string               `json:"about_title"`
	AboutText      string               `json:"about_text"`
	CTAText        string               `json:"cta_text"`
	Services       []siteconfig.Service `json:"services"`
	Gallery        []string             `json:"gallery"`
	ContactEnabled bool                 `json:"contact_enabled"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Social struct {
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Line      string `json:"line"`
}

type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

const placeholderServiceDescription = "お客様のニーズに合わせた高品質なサービスをご提供いたします。"

// DefaultServices is used when neither the edits nor the stored config set a
// services list.
func DefaultServices() []siteconfig.Service {
	return []siteconfig.Service{
		{Name: "サービス 1", Description: placeholderServiceDescription},
		{Name: "サービス 2", Description: placeholderServiceDescription},
		{Name: "サービス 3", Description: placeholderServiceDescription},
	}
}

// Resolve layers override over stored over tpl, one leaf field at a time.
// Either config may be nil. A string only counts when it is non-empty.
//
// Accent, background and text colours and the CTA text always come from the
// template; the editor has no fields for them.
func Resolve(tpl templates.Template, stored, override *siteconfig.SiteConfig) Effective {
	o := layer{override}
	s := layer{stored}

	businessName := pick(tpl.DemoContent.HeroTitle, o.businessName(), s.businessName())
	description := pick("", o.description(), s.description())

	return Effective{
		TemplateID:   tpl.ID,
		BusinessName: businessName,
		BusinessType: pick(string(tpl.Category), o.businessType(), s.businessType()),
		Description:  description,
		Theme: templates.Theme{
			PrimaryColor:    pick(tpl.Theme.PrimaryColor, o.primaryColor(), s.primaryColor()),
			SecondaryColor:  pick(tpl.Theme.SecondaryColor, o.secondaryColor(), s.secondaryColor()),
			AccentColor:     tpl.Theme.AccentColor,
			BackgroundColor: tpl.Theme.BackgroundColor,
			TextColor:       tpl.Theme.TextColor,
			FontFamily:      pick(tpl.Theme.FontFamily, o.fontFamily(), s.fontFamily()),
		},
		Content: Content{
			HeroTitle:      pick(tpl.DemoContent.HeroTitle, o.heroTitle(), s.heroTitle()),
			HeroSubtitle:   pick(tpl.DemoContent.HeroSubtitle, o.heroSubtitle(), s.heroSubtitle()),
			HeroImage:      pick("", o.heroImage(), s.heroImage()),
			AboutTitle:     pick(tpl.DemoContent.AboutTitle, o.aboutTitle(), s.aboutTitle()),
			AboutText:      pick(tpl.DemoContent.AboutText, o.aboutText(), s.aboutText()),
			CTAText:        tpl.DemoContent.CTAText,
			Services:       services(o, s),
			Gallery:        gallery(o, s),
			ContactEnabled: contactEnabled(o, s),
		},
		Contact: Contact{
			Phone:   pick("", o.phone(), s.phone()),
			Email:   pick("", o.email(), s.email()),
			Address: pick("", o.address(), s.address()),
		},
		Social: Social{
			Instagram: pick("", o.instagram(), s.instagram()),
			Twitter:   pick("", o.twitter(), s.twitter()),
			Facebook:  pick("", o.facebook(), s.facebook()),
			Line:      pick("", o.line(), s.line()),
		},
		SEO: SEO{
			Title:       pick(businessName, o.seoTitle(), s.seoTitle()),
			Description: pick(description, o.seoDescription(), s.seoDescription()),
			Keywords:    keywords(o, s),
		},
		Sections: enabledSections(tpl.Sections),
	}
}

// pick returns the first non-empty candidate, or def.
func pick(def string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return def
}

func services(layers ...layer) []siteconfig.Service {
	for _, l := range layers {
		if l.c == nil {
			continue
		}
		if list, ok := l.c.Sections.ServiceList(); ok {
			out := make([]siteconfig.Service, len(list))
			copy(out, list)
			return out
		}
	}
	return DefaultServices()
}

func gallery(layers ...layer) []string {
	for _, l := range layers {
		if l.c != nil && l.c.Sections != nil && l.c.Sections.Gallery != nil {
			return append([]string{}, l.c.Sections.Gallery...)
		}
	}
	return []string{}
}

func keywords(layers ...layer) []string {
	for _, l := range layers {
		if l.c != nil && l.c.SEO != nil && l.c.SEO.Keywords != nil {
			return append([]string{}, l.c.SEO.Keywords...)
		}
	}
	return []string{}
}

func contactEnabled(layers ...layer) bool {
	for _, l := range layers {
		if l.c != nil && l.c.Sections != nil && l.c.Sections.Contact != nil {
			return l.c.Sections.Contact.Enabled
		}
	}
	return true
}

func enabledSections(in []templates.Section) []templates.Section {
	out := make([]templates.Section, 0, len(in))
	for _, s := range in {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
