package preview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/templates"
)

func mustTemplate(t *testing.T, id string) templates.Template {
	t.Helper()
	tpl, ok := templates.ByID(id)
	require.True(t, ok, "template %s", id)
	return tpl
}

func cfg(t *testing.T, raw string) *siteconfig.SiteConfig {
	t.Helper()
	var c siteconfig.SiteConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	return &c
}

// editableField describes one leaf that follows override > stored > default.
type editableField struct {
	name string
	set  func(c *siteconfig.SiteConfig, v string)
	get  func(e Effective) string
	def  func(tpl templates.Template) string
}

func editableFields() []editableField {
	ensureTheme := func(c *siteconfig.SiteConfig) *siteconfig.Theme {
		if c.Theme == nil {
			c.Theme = &siteconfig.Theme{}
		}
		return c.Theme
	}
	ensureSections := func(c *siteconfig.SiteConfig) *siteconfig.Sections {
		if c.Sections == nil {
			c.Sections = &siteconfig.Sections{}
		}
		return c.Sections
	}
	ensureSocial := func(c *siteconfig.SiteConfig) *siteconfig.Social {
		if c.Social == nil {
			c.Social = &siteconfig.Social{}
		}
		return c.Social
	}
	empty := func(templates.Template) string { return "" }

	return []editableField{
		{
			name: "primary color",
			set:  func(c *siteconfig.SiteConfig, v string) { ensureTheme(c).PrimaryColor = &v },
			get:  func(e Effective) string { return e.Theme.PrimaryColor },
			def:  func(tpl templates.Template) string { return tpl.Theme.PrimaryColor },
		},
		{
			name: "secondary color",
			set:  func(c *siteconfig.SiteConfig, v string) { ensureTheme(c).SecondaryColor = &v },
			get:  func(e Effective) string { return e.Theme.SecondaryColor },
			def:  func(tpl templates.Template) string { return tpl.Theme.SecondaryColor },
		},
		{
			name: "font family",
			set:  func(c *siteconfig.SiteConfig, v string) { ensureTheme(c).FontFamily = &v },
			get:  func(e Effective) string { return e.Theme.FontFamily },
			def:  func(tpl templates.Template) string { return tpl.Theme.FontFamily },
		},
		{
			name: "hero title",
			set: func(c *siteconfig.SiteConfig, v string) {
				s := ensureSections(c)
				if s.Hero == nil {
					s.Hero = &siteconfig.Hero{}
				}
				s.Hero.Title = &v
			},
			get: func(e Effective) string { return e.Content.HeroTitle },
			def: func(tpl templates.Template) string { return tpl.DemoContent.HeroTitle },
		},
		{
			name: "hero subtitle",
			set: func(c *siteconfig.SiteConfig, v string) {
				s := ensureSections(c)
				if s.Hero == nil {
					s.Hero = &siteconfig.Hero{}
				}
				s.Hero.Subtitle = &v
			},
			get: func(e Effective) string { return e.Content.HeroSubtitle },
			def: func(tpl templates.Template) string { return tpl.DemoContent.HeroSubtitle },
		},
		{
			name: "about title",
			set: func(c *siteconfig.SiteConfig, v string) {
				s := ensureSections(c)
				if s.About == nil {
					s.About = &siteconfig.About{}
				}
				s.About.Title = &v
			},
			get: func(e Effective) string { return e.Content.AboutTitle },
			def: func(tpl templates.Template) string { return tpl.DemoContent.AboutTitle },
		},
		{
			name: "about text",
			set: func(c *siteconfig.SiteConfig, v string) {
				s := ensureSections(c)
				if s.About == nil {
					s.About = &siteconfig.About{}
				}
				s.About.Content = &v
			},
			get: func(e Effective) string { return e.Content.AboutText },
			def: func(tpl templates.Template) string { return tpl.DemoContent.AboutText },
		},
		{
			name: "business name",
			set:  func(c *siteconfig.SiteConfig, v string) { c.BusinessName = &v },
			get:  func(e Effective) string { return e.BusinessName },
			def:  func(tpl templates.Template) string { return tpl.DemoContent.HeroTitle },
		},
		{
			name: "business type",
			set:  func(c *siteconfig.SiteConfig, v string) { c.BusinessType = &v },
			get:  func(e Effective) string { return e.BusinessType },
			def:  func(tpl templates.Template) string { return string(tpl.Category) },
		},
		{
			name: "phone",
			set:  func(c *siteconfig.SiteConfig, v string) { c.Phone = &v },
			get:  func(e Effective) string { return e.Contact.Phone },
			def:  empty,
		},
		{
			name: "email",
			set:  func(c *siteconfig.SiteConfig, v string) { c.Email = &v },
			get:  func(e Effective) string { return e.Contact.Email },
			def:  empty,
		},
		{
			name: "address",
			set:  func(c *siteconfig.SiteConfig, v string) { c.Address = &v },
			get:  func(e Effective) string { return e.Contact.Address },
			def:  empty,
		},
		{
			name: "instagram",
			set:  func(c *siteconfig.SiteConfig, v string) { ensureSocial(c).Instagram = &v },
			get:  func(e Effective) string { return e.Social.Instagram },
			def:  empty,
		},
		{
			name: "line",
			set:  func(c *siteconfig.SiteConfig, v string) { ensureSocial(c).Line = &v },
			get:  func(e Effective) string { return e.Social.Line },
			def:  empty,
		},
	}
}

func TestResolve_PrecedencePerField(t *testing.T) {
	tpl := mustTemplate(t, "restaurant-elegant")

	// absent: field not set; blank: set to ""; value: set to a non-empty string.
	type state int
	const (
		absent state = iota
		blank
		value
	)
	states := []state{absent, blank, value}

	for _, f := range editableFields() {
		for _, os := range states {
			for _, ss := range states {
				var override, stored *siteconfig.SiteConfig
				if os != absent {
					override = &siteconfig.SiteConfig{}
					v := ""
					if os == value {
						v = "override-" + f.name
					}
					f.set(override, v)
				}
				if ss != absent {
					stored = &siteconfig.SiteConfig{}
					v := ""
					if ss == value {
						v = "stored-" + f.name
					}
					f.set(stored, v)
				}

				want := f.def(tpl)
				switch {
				case os == value:
					want = "override-" + f.name
				case ss == value:
					want = "stored-" + f.name
				}

				got := f.get(Resolve(tpl, stored, override))
				assert.Equal(t, want, got, "field=%s override=%d stored=%d", f.name, os, ss)
			}
		}
	}
}

func TestResolve_IndependentLeaves(t *testing.T) {
	tpl := mustTemplate(t, "salon-modern")
	stored := cfg(t, `{"theme":{"primary_color":"#000001","font_family":"serif"}}`)
	override := cfg(t, `{"theme":{"secondary_color":"#000002"}}`)

	eff := Resolve(tpl, stored, override)

	assert.Equal(t, "#000001", eff.Theme.PrimaryColor)
	assert.Equal(t, "#000002", eff.Theme.SecondaryColor)
	assert.Equal(t, "serif", eff.Theme.FontFamily)
}

func TestResolve_TemplateOnlyFields(t *testing.T) {
	tpl := mustTemplate(t, "clinic-trust")
	eff := Resolve(tpl, cfg(t, `{"theme":{"primary_color":"#111111"}}`), nil)

	assert.Equal(t, tpl.Theme.AccentColor, eff.Theme.AccentColor)
	assert.Equal(t, tpl.Theme.BackgroundColor, eff.Theme.BackgroundColor)
	assert.Equal(t, tpl.Theme.TextColor, eff.Theme.TextColor)
	assert.Equal(t, "診療予約", eff.Content.CTAText)
}

func TestResolve_Services(t *testing.T) {
	tpl := mustTemplate(t, "business-corporate")

	t.Run("default placeholders", func(t *testing.T) {
		eff := Resolve(tpl, nil, nil)
		require.Len(t, eff.Content.Services, 3)
		assert.Equal(t, "サービス 1", eff.Content.Services[0].Name)
		assert.Equal(t, DefaultServices(), eff.Content.Services)
	})

	t.Run("stored empty list replaces defaults", func(t *testing.T) {
		eff := Resolve(tpl, cfg(t, `{"sections":{"services":[]}}`), nil)
		require.NotNil(t, eff.Content.Services)
		assert.Empty(t, eff.Content.Services)
	})

	t.Run("stored list replaces wholesale", func(t *testing.T) {
		eff := Resolve(tpl, cfg(t, `{"sections":{"services":[{"name":"Audit","description":"Yearly"}]}}`), nil)
		require.Len(t, eff.Content.Services, 1)
		assert.Equal(t, "Audit", eff.Content.Services[0].Name)
	})

	t.Run("override wins over stored", func(t *testing.T) {
		stored := cfg(t, `{"sections":{"services":[{"name":"A","description":""}]}}`)
		override := cfg(t, `{"sections":{"services":[{"name":"B","description":""},{"name":"C","description":""}]}}`)
		eff := Resolve(tpl, stored, override)
		require.Len(t, eff.Content.Services, 2)
		assert.Equal(t, "B", eff.Content.Services[0].Name)
	})

	t.Run("override without services falls through", func(t *testing.T) {
		stored := cfg(t, `{"sections":{"services":[{"name":"A","description":""}]}}`)
		override := cfg(t, `{"sections":{"hero":{"title":"x"}}}`)
		eff := Resolve(tpl, stored, override)
		require.Len(t, eff.Content.Services, 1)
		assert.Equal(t, "A", eff.Content.Services[0].Name)
	})
}

func TestResolve_NoNilCollections(t *testing.T) {
	eff := Resolve(mustTemplate(t, "landing-product"), nil, nil)

	assert.NotNil(t, eff.Content.Gallery)
	assert.NotNil(t, eff.SEO.Keywords)
	assert.NotNil(t, eff.Sections)
	assert.True(t, eff.Content.ContactEnabled)

	raw, err := json.Marshal(eff)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "null")
}

func TestResolve_SEOFallbacks(t *testing.T) {
	tpl := mustTemplate(t, "shop-minimal")
	eff := Resolve(tpl, cfg(t, `{"business_name":"Select Shop","description":"Good things"}`), nil)

	assert.Equal(t, "Select Shop", eff.SEO.Title)
	assert.Equal(t, "Good things", eff.SEO.Description)

	eff = Resolve(tpl, cfg(t, `{"business_name":"Select Shop","seo":{"title":"Custom","keywords":["a"]}}`), nil)
	assert.Equal(t, "Custom", eff.SEO.Title)
	assert.Equal(t, []string{"a"}, eff.SEO.Keywords)
}

func TestResolve_ContactAndGallery(t *testing.T) {
	tpl := mustTemplate(t, "portfolio-creative")
	stored := cfg(t, `{"sections":{"contact":{"enabled":false},"gallery":["a.png","b.png"]}}`)

	eff := Resolve(tpl, stored, nil)
	assert.False(t, eff.Content.ContactEnabled)
	assert.Equal(t, []string{"a.png", "b.png"}, eff.Content.Gallery)

	eff = Resolve(tpl, stored, cfg(t, `{"sections":{"contact":{"enabled":true}}}`))
	assert.True(t, eff.Content.ContactEnabled)
}

func TestResolve_SectionsFollowTemplate(t *testing.T) {
	tpl := mustTemplate(t, "landing-product")
	tpl.Sections[1].Enabled = false

	eff := Resolve(tpl, nil, nil)

	ids := make([]string, 0, len(eff.Sections))
	for _, s := range eff.Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"hero", "about", "testimonials", "cta", "contact"}, ids)
}

func TestResolve_Deterministic(t *testing.T) {
	tpl := mustTemplate(t, "restaurant-casual")
	stored := cfg(t, `{"phone":"03-0000-0000","sections":{"services":[{"name":"Latte","description":"","price":"500"}]}}`)
	override := cfg(t, `{"theme":{"primary_color":"#123456"}}`)

	a, err := json.Marshal(Resolve(tpl, stored, override))
	require.NoError(t, err)
	b, err := json.Marshal(Resolve(tpl, stored, override))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	tpl := mustTemplate(t, "restaurant-casual")
	stored := cfg(t, `{"sections":{"services":[{"name":"Latte","description":""}],"gallery":["x.png"]}}`)

	eff := Resolve(tpl, stored, nil)
	eff.Content.Services[0].Name = "changed"
	eff.Content.Gallery[0] = "changed.png"

	list, _ := stored.Sections.ServiceList()
	assert.Equal(t, "Latte", list[0].Name)
	assert.Equal(t, "x.png", stored.Sections.Gallery[0])
}

func TestParseViewport(t *testing.T) {
	tests := []struct {
		in    string
		want  Viewport
		width string
	}{
		{"", ViewportDesktop, "100%"},
		{"desktop", ViewportDesktop, "100%"},
		{"tablet", ViewportTablet, "768px"},
		{"mobile", ViewportMobile, "375px"},
	}
	for _, tt := range tests {
		v, err := ParseViewport(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v)
		assert.Equal(t, tt.width, v.Width())
	}

	_, err := ParseViewport("watch")
	assert.Error(t, err)
}
