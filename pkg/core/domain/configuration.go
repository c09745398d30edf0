package domain

import (
	"slices"
	"time"
)

// DefaultConfigID is the fixed key of the one configuration per deployment
const DefaultConfigID = "landing-console-main-config"

// Configuration is the root aggregate describing the whole landing page
type Configuration struct {
	SiteConfig        SiteConfig        `json:"site_config"`
	ThemeColors       ThemeColors       `json:"theme_colors"`
	CategoriesControl CategoriesControl `json:"categories_control"`
	SocialLinks       SocialLinks       `json:"social_links"`
	HeaderLinks       []HeaderLink      `json:"header_links"`
	PopupSettings     PopupSettings     `json:"popup_settings"`
	Footer            Footer            `json:"footer"`
	Sites             []Site            `json:"sites"`
	Categories        Categories        `json:"categories"`
	SiteLimits        SiteLimits        `json:"site_limits"`
	AdminSettings     AdminSettings     `json:"admin_settings"`
}

type SiteConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	Logo        string `json:"logo"`
	URL         string `json:"url"`
}

type ThemeColors struct {
	Background string `json:"bg"`
	Menu       string `json:"menu"`
	Card       string `json:"card"`
	Card2      string `json:"card2"`
}

// CategoriesControl toggles the visibility of every landing page section
type CategoriesControl struct {
	ShowLeftFix         bool `json:"show_left_fix"`
	ShowRightFix        bool `json:"show_right_fix"`
	ShowVIPSites        bool `json:"show_vip_sites"`
	ShowDiamondSites    bool `json:"show_diamond_sites"`
	ShowNormalSites     bool `json:"show_normal_sites"`
	ShowAnimatedHover   bool `json:"show_animated_hover"`
	ShowSliderBanner    bool `json:"show_slider_banner"`
	ShowScrollingBanner bool `json:"show_scrolling_banner"`
	ShowBottomBanner    bool `json:"show_bottom_banner"`
	ShowPopupBanner     bool `json:"show_popup_banner"`
}

type SocialLinks struct {
	TelegramMain         string `json:"telegram_main"`
	TelegramAnnouncement string `json:"telegram_announcement"`
	TelegramChat         string `json:"telegram_chat"`
	Instagram            string `json:"instagram"`
	YouTube              string `json:"youtube"`
}

// HeaderLink is a shortcut shown in the page header
type HeaderLink struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

type PopupSettings struct {
	Enabled  bool   `json:"enabled"`
	Delay    int    `json:"delay"` // ms
	Title    string `json:"title"`
	MainText string `json:"main_text"`
	SubText  string `json:"sub_text"`
	SiteRef  string `json:"site_ref"` // Site.Name
}

type Footer struct {
	LicenceText   string `json:"licence_text"`
	CopyrightText string `json:"copyright_text"`
	CopyrightURL  string `json:"copyright_url"`
}

// Site represents a promotional entry. Name doubles as the key used in Categories.
type Site struct {
	ID              string    `json:"id"`
	Name            string    `json:"site"`
	URL             string    `json:"url"`
	Desc            [2]string `json:"desc"`
	Logo            string    `json:"sitepic"`
	BackgroundImage string    `json:"background_image,omitempty"`
	SliderImage     string    `json:"slider_image,omitempty"`
	Color           string    `json:"color"`
	ButtonText      string    `json:"button_text"`
}

// AdminSettings holds console behaviour, not page content
type AdminSettings struct {
	SessionTimeout int64 `json:"session_timeout"` // ms
}

// SessionDuration returns the auto-logout timeout, falling back to the default
// for records written before the field existed.
func (a AdminSettings) SessionDuration() time.Duration {
	if a.SessionTimeout <= 0 {
		return time.Duration(DefaultSessionTimeout) * time.Millisecond
	}
	return time.Duration(a.SessionTimeout) * time.Millisecond
}

const (
	DefaultPopupDelay       = 3000
	DefaultRotationInterval = 4000
	DefaultSessionTimeout   = 30 * 60 * 1000
	DefaultSiteColor        = "#FF9900"
)

// DefaultThemeColors is the palette applied on reset
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		Background: "#0E184E",
		Menu:       "#172261",
		Card:       "#162160",
		Card2:      "#111C4F",
	}
}

// DefaultConfiguration returns a fresh, empty configuration
func DefaultConfiguration() Configuration {
	return Configuration{
		ThemeColors:   DefaultThemeColors(),
		HeaderLinks:   []HeaderLink{},
		PopupSettings: PopupSettings{Delay: DefaultPopupDelay},
		Sites:         []Site{},
		Categories: Categories{
			LeftFix:         []string{},
			RightFix:        []string{},
			ScrollingBanner: []string{},
			SliderBanners:   []string{},
			AnimatedHover:   []string{},
			VIPSites:        []string{},
			BottomBanner: BottomBannerConfig{
				Sites:            []string{},
				RotationInterval: DefaultRotationInterval,
			},
		},
		SiteLimits:    DefaultSiteLimits(),
		AdminSettings: AdminSettings{SessionTimeout: DefaultSessionTimeout},
	}
}

// Clone returns a deep copy so updaters never mutate a shared value
func (c Configuration) Clone() Configuration {
	out := c
	out.HeaderLinks = slices.Clone(c.HeaderLinks)
	out.Sites = slices.Clone(c.Sites)
	out.Categories = c.Categories.Clone()
	return out
}

// FindSite returns the index of the site with the given id, or -1
func (c Configuration) FindSite(id string) int {
	return slices.IndexFunc(c.Sites, func(s Site) bool { return s.ID == id })
}

// SiteByName resolves a category reference
func (c Configuration) SiteByName(name string) (Site, bool) {
	i := slices.IndexFunc(c.Sites, func(s Site) bool { return s.Name == name })
	if i < 0 {
		return Site{}, false
	}
	return c.Sites[i], true
}

func (c Configuration) FindHeaderLink(id string) int {
	return slices.IndexFunc(c.HeaderLinks, func(l HeaderLink) bool { return l.ID == id })
}

// Snapshot is a point-in-time copy of a configuration shared by code
type Snapshot struct {
	ID            string        `json:"id"`
	ShareCode     string        `json:"share_code"`
	Configuration Configuration `json:"configuration"`
	Description   string        `json:"description"`
	AccessCount   int64         `json:"access_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
