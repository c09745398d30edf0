package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

// EditorService applies admin edits to the configuration. Every edit reads the
// local copy, changes a clone and saves the result through the synchronizer.
type EditorService struct {
	config ports.ConfigService
	remote ports.RemoteStore // snapshots only, nil without cloud
	colors ports.ColorExtractor
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewEditorService(config ports.ConfigService, remote ports.RemoteStore, colors ports.ColorExtractor, logger *slog.Logger) *EditorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EditorService{
		config: config,
		remote: remote,
		colors: colors,
		logger: logger.With("component", "editor"),
		now:    time.Now,
	}
}

func (s *EditorService) Current(ctx context.Context) domain.Configuration {
	return s.config.LocalConfig(ctx)
}

// Layout resolves the visible categories for the public page. It goes through
// the throttled remote refresh, unlike the edit path.
func (s *EditorService) Layout(ctx context.Context) domain.Layout {
	return s.config.GetConfig(ctx).Layout()
}

// Replace swaps in a whole configuration, as import and the raw editor do
func (s *EditorService) Replace(ctx context.Context, cfg domain.Configuration) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		*c = cfg.Clone()
		return nil
	})
}

func (s *EditorService) UpdateSiteConfig(ctx context.Context, v domain.SiteConfig) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.SiteConfig = v
		return nil
	})
}

func (s *EditorService) UpdateThemeColors(ctx context.Context, v domain.ThemeColors) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.ThemeColors = v
		return nil
	})
}

func (s *EditorService) ResetThemeColors(ctx context.Context) (domain.Configuration, error) {
	return s.UpdateThemeColors(ctx, domain.DefaultThemeColors())
}

func (s *EditorService) UpdateCategoriesControl(ctx context.Context, v domain.CategoriesControl) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.CategoriesControl = v
		return nil
	})
}

func (s *EditorService) UpdateSocialLinks(ctx context.Context, v domain.SocialLinks) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.SocialLinks = v
		return nil
	})
}

func (s *EditorService) UpdatePopupSettings(ctx context.Context, v domain.PopupSettings) (domain.Configuration, error) {
	if v.Delay < 0 {
		return domain.Configuration{}, fmt.Errorf("%w: popup delay %d", domain.ErrInvalidValue, v.Delay)
	}
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.PopupSettings = v
		return nil
	})
}

func (s *EditorService) UpdateFooter(ctx context.Context, v domain.Footer) (domain.Configuration, error) {
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.Footer = v
		return nil
	})
}

// UpdateSiteLimits changes the caps. Existing members beyond a lowered cap
// stay; only new additions are refused.
func (s *EditorService) UpdateSiteLimits(ctx context.Context, v domain.SiteLimits) (domain.Configuration, error) {
	if v.LeftFix < 0 || v.RightFix < 0 || v.AnimatedHover < 0 {
		return domain.Configuration{}, fmt.Errorf("%w: negative site limit", domain.ErrInvalidValue)
	}
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.SiteLimits = v
		return nil
	})
}

func (s *EditorService) UpdateAdminSettings(ctx context.Context, v domain.AdminSettings) (domain.Configuration, error) {
	if v.SessionTimeout < 0 {
		return domain.Configuration{}, fmt.Errorf("%w: session timeout %d", domain.ErrInvalidValue, v.SessionTimeout)
	}
	return s.mutate(ctx, func(c *domain.Configuration) error {
		c.AdminSettings = v
		return nil
	})
}

// AddSite appends a site. Name, URL and logo are required; a missing color is
// taken from the logo.
func (s *EditorService) AddSite(ctx context.Context, site domain.Site) (*domain.Site, error) {
	site.Name = strings.TrimSpace(site.Name)
	switch {
	case site.Name == "":
		return nil, fmt.Errorf("%w: site name", domain.ErrMissingField)
	case strings.TrimSpace(site.URL) == "":
		return nil, fmt.Errorf("%w: site url", domain.ErrMissingField)
	case strings.TrimSpace(site.Logo) == "":
		return nil, fmt.Errorf("%w: site logo", domain.ErrMissingField)
	}

	// Fetching the logo can be slow, keep it out of the lock
	if site.Color == "" && s.colors != nil {
		site.Color = s.colors.AccentFor(ctx, site.Logo)
	}
	if site.Color == "" {
		site.Color = domain.DefaultSiteColor
	}

	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		site.ID = s.nextID(func(id string) bool { return c.FindSite(id) >= 0 })
		c.Sites = append(c.Sites, site)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("site added", "id", site.ID, "site", site.Name)
	return &site, nil
}

// UpdateSite overwrites the fields set in patch. Empty fields keep their value.
func (s *EditorService) UpdateSite(ctx context.Context, id string, patch domain.Site) (*domain.Site, error) {
	var updated domain.Site
	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		i := c.FindSite(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrSiteNotFound, id)
		}
		site := c.Sites[i]
		if v := strings.TrimSpace(patch.Name); v != "" {
			site.Name = v
		}
		if patch.URL != "" {
			site.URL = patch.URL
		}
		if patch.Desc[0] != "" {
			site.Desc[0] = patch.Desc[0]
		}
		if patch.Desc[1] != "" {
			site.Desc[1] = patch.Desc[1]
		}
		if patch.Logo != "" {
			site.Logo = patch.Logo
		}
		if patch.BackgroundImage != "" {
			site.BackgroundImage = patch.BackgroundImage
		}
		if patch.SliderImage != "" {
			site.SliderImage = patch.SliderImage
		}
		if patch.Color != "" {
			site.Color = patch.Color
		}
		if patch.ButtonText != "" {
			site.ButtonText = patch.ButtonText
		}
		c.Sites[i] = site
		updated = site
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSite removes the site and its name from every category
func (s *EditorService) DeleteSite(ctx context.Context, id string) error {
	var name string
	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		i := c.FindSite(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrSiteNotFound, id)
		}
		name = c.Sites[i].Name
		c.Sites = append(c.Sites[:i], c.Sites[i+1:]...)
		if _, stillUsed := c.SiteByName(name); !stillUsed {
			c.Categories = c.Categories.RemoveEverywhere(name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("site deleted", "id", id, "site", name)
	return nil
}

func (s *EditorService) AddHeaderLink(ctx context.Context, link domain.HeaderLink) (*domain.HeaderLink, error) {
	switch {
	case strings.TrimSpace(link.Title) == "":
		return nil, fmt.Errorf("%w: header link title", domain.ErrMissingField)
	case strings.TrimSpace(link.URL) == "":
		return nil, fmt.Errorf("%w: header link url", domain.ErrMissingField)
	}

	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		link.ID = s.nextID(func(id string) bool { return c.FindHeaderLink(id) >= 0 })
		c.HeaderLinks = append(c.HeaderLinks, link)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *EditorService) UpdateHeaderLink(ctx context.Context, id string, patch domain.HeaderLink) (*domain.HeaderLink, error) {
	var updated domain.HeaderLink
	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		i := c.FindHeaderLink(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrHeaderLinkNotFound, id)
		}
		link := c.HeaderLinks[i]
		if patch.Title != "" {
			link.Title = patch.Title
		}
		if patch.Subtitle != "" {
			link.Subtitle = patch.Subtitle
		}
		if patch.URL != "" {
			link.URL = patch.URL
		}
		if patch.Icon != "" {
			link.Icon = patch.Icon
		}
		c.HeaderLinks[i] = link
		updated = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EditorService) DeleteHeaderLink(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(c *domain.Configuration) error {
		i := c.FindHeaderLink(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrHeaderLinkNotFound, id)
		}
		c.HeaderLinks = append(c.HeaderLinks[:i], c.HeaderLinks[i+1:]...)
		return nil
	})
	return err
}

func (s *EditorService) AddToCategory(ctx context.Context, cat domain.Category, name string) (domain.Categories, error) {
	return s.mutateCategories(ctx, func(c *domain.Configuration) (domain.Categories, error) {
		return c.Categories.Add(cat, name, c.SiteLimits)
	})
}

func (s *EditorService) RemoveFromCategory(ctx context.Context, cat domain.Category, name string) (domain.Categories, error) {
	return s.mutateCategories(ctx, func(c *domain.Configuration) (domain.Categories, error) {
		return c.Categories.Remove(cat, name)
	})
}

func (s *EditorService) MoveInCategory(ctx context.Context, cat domain.Category, name string, dir domain.Direction) (domain.Categories, error) {
	if dir != domain.Up && dir != domain.Down {
		return domain.Categories{}, fmt.Errorf("%w: direction %q", domain.ErrInvalidValue, dir)
	}
	return s.mutateCategories(ctx, func(c *domain.Configuration) (domain.Categories, error) {
		return c.Categories.Move(cat, name, dir)
	})
}

// SetCategoryOrder replaces a whole list, e.g. after a drag and drop. The new
// list goes through the same uniqueness and capacity checks as single adds.
func (s *EditorService) SetCategoryOrder(ctx context.Context, cat domain.Category, names []string) (domain.Categories, error) {
	return s.mutateCategories(ctx, func(c *domain.Configuration) (domain.Categories, error) {
		next, err := c.Categories.WithMembers(cat, []string{})
		if err != nil {
			return c.Categories, err
		}
		for _, name := range names {
			if next, err = next.Add(cat, name, c.SiteLimits); err != nil {
				return c.Categories, err
			}
		}
		return next, nil
	})
}

func (s *EditorService) SetBottomBannerInterval(ctx context.Context, ms int) (domain.Categories, error) {
	if ms <= 0 {
		return domain.Categories{}, fmt.Errorf("%w: rotation interval %d", domain.ErrInvalidValue, ms)
	}
	return s.mutateCategories(ctx, func(c *domain.Configuration) (domain.Categories, error) {
		next := c.Categories.Clone()
		next.BottomBanner.RotationInterval = ms
		return next, nil
	})
}

func (s *EditorService) mutateCategories(ctx context.Context, fn func(*domain.Configuration) (domain.Categories, error)) (domain.Categories, error) {
	cfg, err := s.mutate(ctx, func(c *domain.Configuration) error {
		next, err := fn(c)
		if err != nil {
			return err
		}
		c.Categories = next
		return nil
	})
	if err != nil {
		return domain.Categories{}, err
	}
	return cfg.Categories, nil
}

// mutate runs fn on a copy of the local configuration and saves the result.
// Edits are serialized so two requests never lose each other's change.
func (s *EditorService) mutate(ctx context.Context, fn func(*domain.Configuration) error) (domain.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.config.LocalConfig(ctx).Clone()
	if err := fn(&next); err != nil {
		return domain.Configuration{}, err
	}

	res := s.config.SaveConfig(ctx, next)
	if res.RemoteAttempted && !res.OK() {
		s.logger.Warn("edit kept locally, remote save failed", "error", res.RemoteErr)
	}
	return next, nil
}

// nextID returns a millisecond timestamp id, bumped until taken reports false
func (s *EditorService) nextID(taken func(string) bool) string {
	ms := s.now().UnixMilli()
	id := strconv.FormatInt(ms, 10)
	for taken(id) {
		ms++
		id = strconv.FormatInt(ms, 10)
	}
	return id
}

var _ ports.EditorService = (*EditorService)(nil)
