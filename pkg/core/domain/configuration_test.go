package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigurationJSONShape(t *testing.T) {
	data, err := json.Marshal(DefaultConfiguration())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"site_config", "theme_colors", "categories_control", "social_links", "header_links",
		"popup_settings", "footer", "sites", "categories", "site_limits", "admin_settings",
	} {
		assert.Contains(t, raw, key)
	}

	var cats map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["categories"], &cats))
	assert.JSONEq(t, `{"sites":[],"rotation_interval":4000}`, string(cats["bottom_banner"]))
}

func TestOlderRecordTolerated(t *testing.T) {
	// shape written before theme_colors, site_limits and admin_settings existed
	old := `{"site_config":{"title":"Old"},"sites":[{"id":"1","site":"Alpha","desc":["a","b"]}],
		"categories":{"left_fix":["Alpha"],"bottom_banner":{"sites":[],"rotation_interval":4000}}}`

	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(old), &cfg))

	assert.Equal(t, "Old", cfg.SiteConfig.Title)
	assert.Equal(t, 30*time.Minute, cfg.AdminSettings.SessionDuration())
	assert.False(t, cfg.SiteLimits.CanAdd(LeftFix, len(cfg.Categories.LeftFix)))
	assert.True(t, cfg.SiteLimits.CanAdd(AnimatedHover, 0))
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Sites = append(cfg.Sites, Site{ID: "1", Name: "Alpha"})
	cfg.Categories.VIPSites = []string{"Alpha"}

	cp := cfg.Clone()
	cp.Sites[0].Name = "Changed"
	cp.Categories.VIPSites[0] = "Changed"
	cp.Categories.BottomBanner.Sites = append(cp.Categories.BottomBanner.Sites, "Alpha")

	assert.Equal(t, "Alpha", cfg.Sites[0].Name)
	assert.Equal(t, []string{"Alpha"}, cfg.Categories.VIPSites)
	assert.Empty(t, cfg.Categories.BottomBanner.Sites)
}

func TestLayoutSkipsDanglingAndHidden(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Sites = []Site{{ID: "1", Name: "Alpha"}, {ID: "2", Name: "Beta"}}
	cfg.Categories.VIPSites = []string{"Alpha", "Ghost", "Beta"}
	cfg.Categories.LeftFix = []string{"Alpha"}
	cfg.CategoriesControl.ShowVIPSites = true
	cfg.CategoriesControl.ShowPopupBanner = true
	cfg.PopupSettings.Enabled = true
	cfg.PopupSettings.SiteRef = "Beta"

	l := cfg.Layout()

	require.Contains(t, l.Categories, VIPSites)
	assert.NotContains(t, l.Categories, LeftFix)
	names := []string{}
	for _, s := range l.Categories[VIPSites] {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Alpha", "Beta"}, names)
	require.NotNil(t, l.Popup)
	require.NotNil(t, l.Popup.Site)
	assert.Equal(t, "2", l.Popup.Site.ID)
}
