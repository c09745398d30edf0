package sqlite

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

func memURL(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

func sampleConfig() domain.Configuration {
	cfg := domain.DefaultConfiguration()
	cfg.SiteConfig.Title = "Lucky Page"
	cfg.Sites = []domain.Site{{
		ID:         "1700000000000",
		Name:       "Alpha",
		URL:        "https://alpha.example",
		Desc:       [2]string{"Welcome bonus", "Fast payouts"},
		Logo:       "https://cdn.example/alpha.png",
		Color:      "#c06040",
		ButtonText: "Play",
	}}
	cfg.Categories.VIPSites = []string{"Alpha"}
	cfg.HeaderLinks = []domain.HeaderLink{{ID: "1", Title: "Promo", URL: "https://promo.example"}}
	return cfg
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(memURL(t), nil)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	assert.Equal(t, domain.DefaultConfiguration(), store.Read(ctx), "empty store yields defaults")

	cfg := sampleConfig()
	require.NoError(t, store.Write(ctx, cfg))
	assert.Equal(t, cfg, store.Read(ctx))

	cfg.SiteConfig.Title = "Second"
	require.NoError(t, store.Write(ctx, cfg))
	assert.Equal(t, "Second", store.Read(ctx).SiteConfig.Title)

	raw, err := store.Raw(ctx)
	require.NoError(t, err)
	assert.Contains(t, raw, "\n  \"site_config\"", "stored pretty-printed")
}

func TestLocalStoreMalformedYieldsDefaults(t *testing.T) {
	store, err := NewLocalStore(memURL(t), nil)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.PutRaw(ctx, "{not json"))
	assert.Equal(t, domain.DefaultConfiguration(), store.Read(ctx))
}

func TestRemoteFetchAndUpsert(t *testing.T) {
	repo, err := NewRemoteRepository(memURL(t))
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	got, err := repo.FetchByKey(ctx, domain.DefaultConfigID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, repo.Ping(ctx))

	cfg := sampleConfig()
	require.NoError(t, repo.Upsert(ctx, domain.DefaultConfigID, cfg))
	cfg.SiteConfig.Title = "Replaced"
	require.NoError(t, repo.Upsert(ctx, domain.DefaultConfigID, cfg))

	got, err = repo.FetchByKey(ctx, domain.DefaultConfigID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cfg, *got)
}

func TestSnapshotUploadDownload(t *testing.T) {
	repo, err := NewRemoteRepository(memURL(t))
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	cfg := sampleConfig()
	code, err := repo.UploadSnapshot(ctx, cfg, "spring campaign")
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)

	snap, err := repo.DownloadSnapshot(ctx, strings.ToLower(code))
	require.NoError(t, err)
	assert.Equal(t, cfg, snap.Configuration)
	assert.Equal(t, "spring campaign", snap.Description)
	assert.Equal(t, int64(1), snap.AccessCount)

	peek, err := repo.LookupSnapshot(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), peek.AccessCount)

	_, err = repo.DownloadSnapshot(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSnapshotCodeCollisionRetries(t *testing.T) {
	repo, err := NewRemoteRepository(memURL(t))
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	repo.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	first, err := repo.UploadSnapshot(ctx, sampleConfig(), "one")
	require.NoError(t, err)
	second, err := repo.UploadSnapshot(ctx, sampleConfig(), "two")
	require.NoError(t, err)

	assert.Equal(t, "AAAAAA", first)
	assert.Equal(t, "BBBBBB", second)

	repo.newCode = func() (string, error) { return "AAAAAA", nil }
	_, err = repo.UploadSnapshot(ctx, sampleConfig(), "three")
	assert.Error(t, err)
}

func TestRemoteDSN(t *testing.T) {
	assert.Equal(t, "libsql://db.turso.io?authToken=abc", RemoteDSN("libsql://db.turso.io", "abc"))
	assert.Equal(t, "libsql://db.turso.io?tls=1&authToken=abc", RemoteDSN("libsql://db.turso.io?tls=1", "abc"))
	assert.Equal(t, "file:remote.sqlite", RemoteDSN("file:remote.sqlite", "abc"))
}

func TestGenerateShareCode(t *testing.T) {
	code, err := generateShareCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}
