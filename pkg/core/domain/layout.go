package domain

// Layout is the render-ready view of a configuration: only visible
// categories, with names resolved to sites.
type Layout struct {
	SiteConfig       SiteConfig          `json:"site_config"`
	ThemeColors      ThemeColors         `json:"theme_colors"`
	SocialLinks      SocialLinks         `json:"social_links"`
	HeaderLinks      []HeaderLink        `json:"header_links"`
	Footer           Footer              `json:"footer"`
	Categories       map[Category][]Site `json:"categories"`
	RotationInterval int                 `json:"rotation_interval,omitempty"`
	Popup            *PopupLayout        `json:"popup,omitempty"`
}

type PopupLayout struct {
	PopupSettings
	Site *Site `json:"site,omitempty"`
}

// ResolveCategory maps names to sites, skipping names with no matching site
func (c Configuration) ResolveCategory(cat Category) []Site {
	names, err := c.Categories.Members(cat)
	if err != nil {
		return nil
	}
	sites := make([]Site, 0, len(names))
	for _, name := range names {
		if s, ok := c.SiteByName(name); ok {
			sites = append(sites, s)
		}
	}
	return sites
}

func (c CategoriesControl) Visible(cat Category) bool {
	switch cat {
	case LeftFix:
		return c.ShowLeftFix
	case RightFix:
		return c.ShowRightFix
	case ScrollingBanner:
		return c.ShowScrollingBanner
	case SliderBanners:
		return c.ShowSliderBanner
	case AnimatedHover:
		return c.ShowAnimatedHover
	case VIPSites:
		return c.ShowVIPSites
	case BottomBanner:
		return c.ShowBottomBanner
	}
	return false
}

// Layout builds the public page model
func (c Configuration) Layout() Layout {
	l := Layout{
		SiteConfig:  c.SiteConfig,
		ThemeColors: c.ThemeColors,
		SocialLinks: c.SocialLinks,
		HeaderLinks: c.HeaderLinks,
		Footer:      c.Footer,
		Categories:  make(map[Category][]Site),
	}
	for _, cat := range AllCategories {
		if !c.CategoriesControl.Visible(cat) {
			continue
		}
		l.Categories[cat] = c.ResolveCategory(cat)
		if cat == BottomBanner {
			l.RotationInterval = c.Categories.BottomBanner.RotationInterval
		}
	}
	if c.CategoriesControl.ShowPopupBanner && c.PopupSettings.Enabled {
		p := &PopupLayout{PopupSettings: c.PopupSettings}
		if s, ok := c.SiteByName(c.PopupSettings.SiteRef); ok {
			p.Site = &s
		}
		l.Popup = p
	}
	return l
}
