package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

func newEditor(remote *memRemote) (*EditorService, *clock) {
	clk := newClock()
	var svc *SyncService
	var ed *EditorService
	if remote == nil {
		svc = NewSyncService(&memLocal{}, nil, SyncOptions{Now: clk.Now})
		ed = NewEditorService(svc, nil, fixedColors{"#123456"}, nil)
	} else {
		svc = NewSyncService(&memLocal{}, remote, SyncOptions{Now: clk.Now})
		ed = NewEditorService(svc, remote, fixedColors{"#123456"}, nil)
	}
	ed.now = clk.Now
	return ed, clk
}

func addSite(t *testing.T, ed *EditorService, name string) *domain.Site {
	t.Helper()
	site, err := ed.AddSite(context.Background(), domain.Site{
		Name: name,
		URL:  "https://" + name + ".example",
		Logo: "https://cdn.example/" + name + ".png",
	})
	require.NoError(t, err)
	return site
}

func TestAddSiteValidation(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		site domain.Site
	}{
		{"no name", domain.Site{URL: "https://a.example", Logo: "a.png"}},
		{"blank name", domain.Site{Name: "  ", URL: "https://a.example", Logo: "a.png"}},
		{"no url", domain.Site{Name: "Alpha", Logo: "a.png"}},
		{"no logo", domain.Site{Name: "Alpha", URL: "https://a.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ed.AddSite(ctx, tt.site)
			assert.ErrorIs(t, err, domain.ErrMissingField)
		})
	}
	assert.Empty(t, ed.Current(ctx).Sites)
}

func TestAddSiteAssignsIDAndColor(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	first := addSite(t, ed, "Alpha")
	second := addSite(t, ed, "Beta")
	assert.Equal(t, "1709294400000", first.ID)
	assert.Equal(t, "1709294400001", second.ID, "same millisecond gets bumped")
	assert.Equal(t, "#123456", first.Color)

	explicit, err := ed.AddSite(ctx, domain.Site{Name: "Gamma", URL: "https://g.example", Logo: "g.png", Color: "#abcdef"})
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", explicit.Color)

	assert.Len(t, ed.Current(ctx).Sites, 3)
}

func TestUpdateSiteMergesNonEmptyFields(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	site := addSite(t, ed, "Alpha")

	updated, err := ed.UpdateSite(ctx, site.ID, domain.Site{URL: "https://new.example", Desc: [2]string{"", "Second line"}})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", updated.Name)
	assert.Equal(t, "https://new.example", updated.URL)
	assert.Equal(t, "Second line", updated.Desc[1])
	assert.Equal(t, site.Logo, updated.Logo)

	_, err = ed.UpdateSite(ctx, "missing", domain.Site{URL: "x"})
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}

func TestDeleteSiteCascadesToCategories(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	alpha := addSite(t, ed, "Alpha")
	addSite(t, ed, "Beta")

	for _, cat := range []domain.Category{domain.LeftFix, domain.VIPSites, domain.BottomBanner} {
		_, err := ed.AddToCategory(ctx, cat, "Alpha")
		require.NoError(t, err)
	}
	_, err := ed.AddToCategory(ctx, domain.VIPSites, "Beta")
	require.NoError(t, err)

	require.NoError(t, ed.DeleteSite(ctx, alpha.ID))

	cfg := ed.Current(ctx)
	require.Len(t, cfg.Sites, 1)
	for _, cat := range domain.AllCategories {
		list, _ := cfg.Categories.Members(cat)
		assert.NotContains(t, list, "Alpha", cat)
	}
	assert.Equal(t, []string{"Beta"}, cfg.Categories.VIPSites)

	assert.ErrorIs(t, ed.DeleteSite(ctx, alpha.ID), domain.ErrSiteNotFound)
}

func TestDeleteSiteKeepsNameSharedByAnotherSite(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	first := addSite(t, ed, "Alpha")
	second := addSite(t, ed, "Alpha")
	require.NotEqual(t, first.ID, second.ID)

	_, err := ed.AddToCategory(ctx, domain.VIPSites, "Alpha")
	require.NoError(t, err)

	require.NoError(t, ed.DeleteSite(ctx, first.ID))
	cfg := ed.Current(ctx)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, []string{"Alpha"}, cfg.Categories.VIPSites, "remaining Alpha still placed")

	require.NoError(t, ed.DeleteSite(ctx, second.ID))
	cfg = ed.Current(ctx)
	assert.Empty(t, cfg.Sites)
	assert.Empty(t, cfg.Categories.VIPSites)
}

func TestCategoryCapacityAndUniqueness(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	addSite(t, ed, "Alpha")
	addSite(t, ed, "Beta")

	_, err := ed.AddToCategory(ctx, domain.LeftFix, "Alpha")
	require.NoError(t, err)
	_, err = ed.AddToCategory(ctx, domain.LeftFix, "Beta")
	assert.ErrorIs(t, err, domain.ErrCategoryFull)

	_, err = ed.AddToCategory(ctx, domain.VIPSites, "Alpha")
	require.NoError(t, err)
	_, err = ed.AddToCategory(ctx, domain.VIPSites, "Alpha")
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	_, err = ed.AddToCategory(ctx, domain.Category("diamond"), "Alpha")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	cats := ed.Current(ctx).Categories
	assert.Equal(t, []string{"Alpha"}, cats.LeftFix)
	assert.Equal(t, []string{"Alpha"}, cats.VIPSites)

	// raising the limit lets the next add through
	_, err = ed.UpdateSiteLimits(ctx, domain.SiteLimits{LeftFix: 2, RightFix: 1, AnimatedHover: 4})
	require.NoError(t, err)
	cats, err = ed.AddToCategory(ctx, domain.LeftFix, "Beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, cats.LeftFix)
}

func TestMoveAndRemoveInCategory(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		_, err := ed.AddToCategory(ctx, domain.SliderBanners, n)
		require.NoError(t, err)
	}

	cats, err := ed.MoveInCategory(ctx, domain.SliderBanners, "C", domain.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, cats.SliderBanners)

	cats, err = ed.MoveInCategory(ctx, domain.SliderBanners, "A", domain.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, cats.SliderBanners, "first item cannot move up")

	_, err = ed.MoveInCategory(ctx, domain.SliderBanners, "A", domain.Direction("sideways"))
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	cats, err = ed.RemoveFromCategory(ctx, domain.SliderBanners, "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, cats.SliderBanners)

	cats, err = ed.RemoveFromCategory(ctx, domain.SliderBanners, "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, cats.SliderBanners)
}

func TestSetCategoryOrder(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	cats, err := ed.SetCategoryOrder(ctx, domain.AnimatedHover, []string{"D", "C", "B", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "B", "A"}, cats.AnimatedHover)

	_, err = ed.SetCategoryOrder(ctx, domain.AnimatedHover, []string{"A", "B", "C", "D", "E"})
	assert.ErrorIs(t, err, domain.ErrCategoryFull)

	_, err = ed.SetCategoryOrder(ctx, domain.AnimatedHover, []string{"A", "A"})
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	assert.Equal(t, []string{"D", "C", "B", "A"}, ed.Current(ctx).Categories.AnimatedHover)
}

func TestBottomBannerInterval(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	cats, err := ed.SetBottomBannerInterval(ctx, 6000)
	require.NoError(t, err)
	assert.Equal(t, 6000, cats.BottomBanner.RotationInterval)

	_, err = ed.SetBottomBannerInterval(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestHeaderLinkCRUD(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	_, err := ed.AddHeaderLink(ctx, domain.HeaderLink{Title: "Promo"})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	link, err := ed.AddHeaderLink(ctx, domain.HeaderLink{Title: "Promo", URL: "https://promo.example"})
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)

	updated, err := ed.UpdateHeaderLink(ctx, link.ID, domain.HeaderLink{Subtitle: "This week"})
	require.NoError(t, err)
	assert.Equal(t, "Promo", updated.Title)
	assert.Equal(t, "This week", updated.Subtitle)

	require.NoError(t, ed.DeleteHeaderLink(ctx, link.ID))
	assert.Empty(t, ed.Current(ctx).HeaderLinks)
	assert.ErrorIs(t, ed.DeleteHeaderLink(ctx, link.ID), domain.ErrHeaderLinkNotFound)
}

func TestSectionUpdaters(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	_, err := ed.UpdateSiteConfig(ctx, domain.SiteConfig{Title: "Lucky"})
	require.NoError(t, err)
	_, err = ed.UpdateThemeColors(ctx, domain.ThemeColors{Background: "#000000"})
	require.NoError(t, err)
	_, err = ed.UpdatePopupSettings(ctx, domain.PopupSettings{Enabled: true, Delay: 1500, SiteRef: "Alpha"})
	require.NoError(t, err)
	_, err = ed.UpdateFooter(ctx, domain.Footer{CopyrightText: "2024"})
	require.NoError(t, err)
	_, err = ed.UpdateSocialLinks(ctx, domain.SocialLinks{Instagram: "https://instagram.com/x"})
	require.NoError(t, err)
	_, err = ed.UpdateCategoriesControl(ctx, domain.CategoriesControl{ShowVIPSites: true})
	require.NoError(t, err)
	_, err = ed.UpdateAdminSettings(ctx, domain.AdminSettings{SessionTimeout: 60000})
	require.NoError(t, err)

	cfg := ed.Current(ctx)
	assert.Equal(t, "Lucky", cfg.SiteConfig.Title)
	assert.Equal(t, "#000000", cfg.ThemeColors.Background)
	assert.Equal(t, 1500, cfg.PopupSettings.Delay)
	assert.Equal(t, "2024", cfg.Footer.CopyrightText)
	assert.Equal(t, "https://instagram.com/x", cfg.SocialLinks.Instagram)
	assert.True(t, cfg.CategoriesControl.ShowVIPSites)
	assert.Equal(t, int64(60000), cfg.AdminSettings.SessionTimeout)

	cfg, err = ed.ResetThemeColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultThemeColors(), cfg.ThemeColors)

	_, err = ed.UpdatePopupSettings(ctx, domain.PopupSettings{Delay: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	_, err = ed.UpdateSiteLimits(ctx, domain.SiteLimits{LeftFix: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestEditsSurviveRemoteFailure(t *testing.T) {
	remote := newMemRemote()
	remote.upsertErr = errOffline
	ed, _ := newEditor(remote)
	ctx := context.Background()

	site := addSite(t, ed, "Alpha")
	assert.Equal(t, site.ID, ed.Current(ctx).Sites[0].ID)
}

func TestSnapshotsRequireCloud(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()

	_, err := ed.UploadSnapshot(ctx, "")
	assert.ErrorIs(t, err, domain.ErrCloudUnavailable)
	_, err = ed.DownloadSnapshot(ctx, "ABC123")
	assert.ErrorIs(t, err, domain.ErrCloudUnavailable)
	assert.False(t, ed.ValidateShareCode(ctx, "ABC123"))
}

func TestSnapshotUploadAndApply(t *testing.T) {
	remote := newMemRemote()
	ed, _ := newEditor(remote)
	ctx := context.Background()

	addSite(t, ed, "Alpha")
	_, err := ed.UpdateSiteConfig(ctx, domain.SiteConfig{Title: "Shared"})
	require.NoError(t, err)

	code, err := ed.UploadSnapshot(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSnapshotDescription, remote.snapshots[code].Description)
	assert.True(t, ed.ValidateShareCode(ctx, code))
	assert.False(t, ed.ValidateShareCode(ctx, "NOPE00"))

	_, err = ed.Replace(ctx, domain.DefaultConfiguration())
	require.NoError(t, err)
	assert.Empty(t, ed.Current(ctx).Sites)

	snap, err := ed.DownloadSnapshot(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.AccessCount)
	assert.Equal(t, "Shared", ed.Current(ctx).SiteConfig.Title)
	assert.Len(t, ed.Current(ctx).Sites, 1)

	_, err = ed.DownloadSnapshot(ctx, "NOPE00")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	_, err = ed.DownloadSnapshot(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestLayoutSkipsHiddenAndDangling(t *testing.T) {
	ed, _ := newEditor(nil)
	ctx := context.Background()
	addSite(t, ed, "Alpha")

	for _, name := range []string{"Alpha", "Ghost"} {
		_, err := ed.AddToCategory(ctx, domain.VIPSites, name)
		require.NoError(t, err)
	}
	_, err := ed.AddToCategory(ctx, domain.LeftFix, "Alpha")
	require.NoError(t, err)
	_, err = ed.UpdateCategoriesControl(ctx, domain.CategoriesControl{ShowVIPSites: true})
	require.NoError(t, err)

	layout := ed.Layout(ctx)
	require.Len(t, layout.Categories[domain.VIPSites], 1)
	assert.Equal(t, "Alpha", layout.Categories[domain.VIPSites][0].Name)
	_, shown := layout.Categories[domain.LeftFix]
	assert.False(t, shown)
}
