package templates

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category groups templates by the kind of business they target.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategorySalon      Category = "salon"
	CategoryShop       Category = "shop"
	CategoryClinic     Category = "clinic"
	CategoryPortfolio  Category = "portfolio"
	CategoryBusiness   Category = "business"
	CategoryLanding    Category = "landing"
)

// SectionType is the kind of block a template renders.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionServices     SectionType = "services"
	SectionGallery      SectionType = "gallery"
	SectionContact      SectionType = "contact"
	SectionCTA          SectionType = "cta"
	SectionFeatures     SectionType = "features"
	SectionTestimonials SectionType = "testimonials"
)

var sectionTypes = map[SectionType]bool{
	SectionHero: true, SectionAbout: true, SectionServices: true, SectionGallery: true,
	SectionContact: true, SectionCTA: true, SectionFeatures: true, SectionTestimonials: true,
}

type Theme struct {
	PrimaryColor    string `json:"primaryColor" yaml:"primary_color"`
	SecondaryColor  string `json:"secondaryColor" yaml:"secondary_color"`
	AccentColor     string `json:"accentColor" yaml:"accent_color"`
	BackgroundColor string `json:"backgroundColor" yaml:"background_color"`
	TextColor       string `json:"textColor" yaml:"text_color"`
	FontFamily      string `json:"fontFamily" yaml:"font_family"`
}

type Section struct {
	ID      string      `json:"id" yaml:"id"`
	Type    SectionType `json:"type" yaml:"type"`
	Enabled bool        `json:"enabled" yaml:"enabled"`
}

// UnmarshalYAML accepts either a bare section type ("hero"), which yields an
// enabled section whose id equals its type, or the full mapping form.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.ID = value.Value
		s.Type = SectionType(value.Value)
		s.Enabled = true
		return nil
	}

	type plain Section
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = string(p.Type)
	}
	*s = Section(p)
	return nil
}

type DemoContent struct {
	HeroTitle    string `json:"heroTitle" yaml:"hero_title"`
	HeroSubtitle string `json:"heroSubtitle" yaml:"hero_subtitle"`
	AboutTitle   string `json:"aboutTitle" yaml:"about_title"`
	AboutText    string `json:"aboutText" yaml:"about_text"`
	CTAText      string `json:"ctaText" yaml:"cta_text"`
}

// Template is an immutable starting point for a project's site.
type Template struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	NameJa        string      `json:"nameJa" yaml:"name_ja"`
	Description   string      `json:"description" yaml:"description"`
	DescriptionJa string      `json:"descriptionJa" yaml:"description_ja"`
	Category      Category    `json:"category" yaml:"category"`
	Icon          string      `json:"icon" yaml:"icon"`
	Preview       string      `json:"preview" yaml:"preview"`
	Theme         Theme       `json:"theme" yaml:"theme"`
	Sections      []Section   `json:"sections" yaml:"sections"`
	DemoContent   DemoContent `json:"demoContent" yaml:"demo_content"`
}

type CategoryCount struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	Count int      `json:"count"`
}

type categoryDef struct {
	ID    Category `yaml:"id"`
	Label string   `yaml:"label"`
}

type catalogFile struct {
	Categories []categoryDef `yaml:"categories"`
	Templates  []Template    `yaml:"templates"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var catalog = mustParse(catalogYAML)

func mustParse(raw []byte) catalogFile {
	c, err := parse(raw)
	if err != nil {
		panic(fmt.Sprintf("templates: %v", err))
	}
	return c
}

func parse(raw []byte) (catalogFile, error) {
	var c catalogFile
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c catalogFile) validate() error {
	known := make(map[Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" || known[cat.ID] {
			return fmt.Errorf("invalid or duplicate category %q", cat.ID)
		}
		known[cat.ID] = true
	}

	seen := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if t.ID == "" || seen[t.ID] {
			return fmt.Errorf("invalid or duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
		if !known[t.Category] {
			return fmt.Errorf("template %q: unknown category %q", t.ID, t.Category)
		}
		for _, s := range t.Sections {
			if !sectionTypes[s.Type] {
				return fmt.Errorf("template %q: unknown section type %q", t.ID, s.Type)
			}
		}
	}
	return nil
}

func clone(t Template) Template {
	t.Sections = append([]Section(nil), t.Sections...)
	return t
}

// All returns every template in catalog order.
func All() []Template {
	out := make([]Template, 0, len(catalog.Templates))
	for _, t := range catalog.Templates {
		out = append(out, clone(t))
	}
	return out
}

// ByID looks a template up by its identifier.
func ByID(id string) (Template, bool) {
	for _, t := range catalog.Templates {
		if t.ID == id {
			return clone(t), true
		}
	}
	return Template{}, false
}

// ByCategory returns the templates of one category, in catalog order.
func ByCategory(category Category) []Template {
	out := make([]Template, 0, 4)
	for _, t := range catalog.Templates {
		if t.Category == category {
			out = append(out, clone(t))
		}
	}
	return out
}

// Categories lists every category with the number of templates in it.
func Categories() []CategoryCount {
	out := make([]CategoryCount, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		n := 0
		for _, t := range catalog.Templates {
			if t.Category == cat.ID {
				n++
			}
		}
		out = append(out, CategoryCount{ID: cat.ID, Label: cat.Label, Count: n})
	}
	return out
}

// IsCategory reports whether c is one of the catalog's categories.
func IsCategory(c Category) bool {
	for _, cat := range catalog.Categories {
		if cat.ID == c {
			return true
		}
	}
	return false
}
