package preview

import "github.com/GoSim-25-26J-441/site-builder-backend/internal/siteconfig"

// layer gives nil-safe named access to the leaf fields of one config layer.
type layer struct {
	c *siteconfig.SiteConfig
}

func (l layer) businessName() *string {
	if l.c == nil {
		return nil
	}
	return l.c.BusinessName
}

func (l layer) businessType() *string {
	if l.c == nil {
		return nil
	}
	return l.c.BusinessType
}

func (l layer) description() *string {
	if l.c == nil {
		return nil
	}
	return l.c.Description
}

func (l layer) phone() *string {
	if l.c == nil {
		return nil
	}
	return l.c.Phone
}

func (l layer) email() *string {
	if l.c == nil {
		return nil
	}
	return l.c.Email
}

func (l layer) address() *string {
	if l.c == nil {
		return nil
	}
	return l.c.Address
}

func (l layer) theme() *siteconfig.Theme {
	if l.c == nil {
		return nil
	}
	return l.c.Theme
}

func (l layer) primaryColor() *string {
	if t := l.theme(); t != nil {
		return t.PrimaryColor
	}
	return nil
}

func (l layer) secondaryColor() *string {
	if t := l.theme(); t != nil {
		return t.SecondaryColor
	}
	return nil
}

func (l layer) fontFamily() *string {
	if t := l.theme(); t != nil {
		return t.FontFamily
	}
	return nil
}

func (l layer) social() *siteconfig.Social {
	if l.c == nil {
		return nil
	}
	return l.c.Social
}

func (l layer) instagram() *string {
	if s := l.social(); s != nil {
		return s.Instagram
	}
	return nil
}

func (l layer) twitter() *string {
	if s := l.social(); s != nil {
		return s.Twitter
	}
	return nil
}

func (l layer) facebook() *string {
	if s := l.social(); s != nil {
		return s.Facebook
	}
	return nil
}

func (l layer) line() *string {
	if s := l.social(); s != nil {
		return s.Line
	}
	return nil
}

func (l layer) seoTitle() *string {
	if l.c == nil || l.c.SEO == nil {
		return nil
	}
	return l.c.SEO.Title
}

func (l layer) seoDescription() *string {
	if l.c == nil || l.c.SEO == nil {
		return nil
	}
	return l.c.SEO.Description
}

func (l layer) hero() *siteconfig.Hero {
	if l.c == nil || l.c.Sections == nil {
		return nil
	}
	return l.c.Sections.Hero
}

func (l layer) heroTitle() *string {
	if h := l.hero(); h != nil {
		return h.Title
	}
	return nil
}

func (l layer) heroSubtitle() *string {
	if h := l.hero(); h != nil {
		return h.Subtitle
	}
	return nil
}

func (l layer) heroImage() *string {
	if h := l.hero(); h != nil {
		return h.Image
	}
	return nil
}

func (l layer) about() *siteconfig.About {
	if l.c == nil || l.c.Sections == nil {
		return nil
	}
	return l.c.Sections.About
}

func (l layer) aboutTitle() *string {
	if a := l.about(); a != nil {
		return a.Title
	}
	return nil
}

func (l layer) aboutText() *string {
	if a := l.about(); a != nil {
		return a.Content
	}
	return nil
}
