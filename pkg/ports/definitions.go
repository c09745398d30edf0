package ports

import (
	"context"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

// LocalCache is the always-available persistence tier
type LocalCache interface {
	// Read returns defaults when nothing is stored or the record cannot be parsed
	Read(ctx context.Context) domain.Configuration
	Write(ctx context.Context, cfg domain.Configuration) error
}

// RemoteStore is the optional hosted row store
type RemoteStore interface {
	FetchByKey(ctx context.Context, key string) (*domain.Configuration, error) // nil, nil when absent
	Upsert(ctx context.Context, key string, cfg domain.Configuration) error
	Ping(ctx context.Context) bool

	// Snapshots
	UploadSnapshot(ctx context.Context, cfg domain.Configuration, description string) (string, error)
	DownloadSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) // Increments access count
	LookupSnapshot(ctx context.Context, code string) (*domain.Snapshot, error)
}

// ColorExtractor derives a site accent from its logo
type ColorExtractor interface {
	Extract(ctx context.Context, source string) string
	AccentFor(ctx context.Context, source string) string
}

// SaveResult reports what happened on each tier of a save
type SaveResult struct {
	RemoteAttempted bool
	LocalErr        error
	RemoteErr       error
}

// OK is the success flag callers see. Local failures are logged but, like a
// browser with storage disabled, do not fail the save.
func (r SaveResult) OK() bool {
	return r.RemoteErr == nil
}

// ConfigService synchronizes the configuration across both tiers
type ConfigService interface {
	GetConfig(ctx context.Context) domain.Configuration
	LocalConfig(ctx context.Context) domain.Configuration
	SaveConfig(ctx context.Context, cfg domain.Configuration) SaveResult
	ResetConfig(ctx context.Context) SaveResult
	ForceSync(ctx context.Context) domain.Configuration
	TestConnection(ctx context.Context) bool
	RemoteAvailable() bool
	State() string
	ExportConfig(ctx context.Context) (string, error)
	ImportConfig(ctx context.Context, data string) error
}

// EditorService defines the named updaters behind the admin console
type EditorService interface {
	Current(ctx context.Context) domain.Configuration
	Layout(ctx context.Context) domain.Layout
	Replace(ctx context.Context, cfg domain.Configuration) (domain.Configuration, error)

	UpdateSiteConfig(ctx context.Context, v domain.SiteConfig) (domain.Configuration, error)
	UpdateThemeColors(ctx context.Context, v domain.ThemeColors) (domain.Configuration, error)
	ResetThemeColors(ctx context.Context) (domain.Configuration, error)
	UpdateCategoriesControl(ctx context.Context, v domain.CategoriesControl) (domain.Configuration, error)
	UpdateSocialLinks(ctx context.Context, v domain.SocialLinks) (domain.Configuration, error)
	UpdatePopupSettings(ctx context.Context, v domain.PopupSettings) (domain.Configuration, error)
	UpdateFooter(ctx context.Context, v domain.Footer) (domain.Configuration, error)
	UpdateSiteLimits(ctx context.Context, v domain.SiteLimits) (domain.Configuration, error)
	UpdateAdminSettings(ctx context.Context, v domain.AdminSettings) (domain.Configuration, error)

	// Sites
	AddSite(ctx context.Context, site domain.Site) (*domain.Site, error)
	UpdateSite(ctx context.Context, id string, patch domain.Site) (*domain.Site, error)
	DeleteSite(ctx context.Context, id string) error

	// Header links
	AddHeaderLink(ctx context.Context, link domain.HeaderLink) (*domain.HeaderLink, error)
	UpdateHeaderLink(ctx context.Context, id string, patch domain.HeaderLink) (*domain.HeaderLink, error)
	DeleteHeaderLink(ctx context.Context, id string) error

	// Categories
	AddToCategory(ctx context.Context, cat domain.Category, name string) (domain.Categories, error)
	RemoveFromCategory(ctx context.Context, cat domain.Category, name string) (domain.Categories, error)
	MoveInCategory(ctx context.Context, cat domain.Category, name string, dir domain.Direction) (domain.Categories, error)
	SetCategoryOrder(ctx context.Context, cat domain.Category, names []string) (domain.Categories, error)
	SetBottomBannerInterval(ctx context.Context, ms int) (domain.Categories, error)

	// Snapshots
	UploadSnapshot(ctx context.Context, description string) (string, error)
	DownloadSnapshot(ctx context.Context, code string) (*domain.Snapshot, error)
	ValidateShareCode(ctx context.Context, code string) bool
}
