package tokencache_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/BerryBytes/sessionctl/internal/tokencache"
	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startURL = "https://example.awsapps.com/start"

func newTestStore(fs afero.Fs, now time.Time) *tokencache.Store {
	return tokencache.NewStore(fs, "/provider", "/tool").WithClock(func() time.Time { return now })
}

func writeEntry(t *testing.T, fs afero.Fs, path, url string, expiresAt time.Time, token string) {
	t.Helper()
	data := `{"startUrl":"` + url + `","region":"us-east-1","accessToken":"` + token + `","expiresAt":"` + expiresAt.UTC().Format(time.RFC3339) + `"}`
	require.NoError(t, afero.WriteFile(fs, path, []byte(data), 0600))
}

func TestLoadValidPicksGreatestRemainingValidity(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	writeEntry(t, fs, "/provider/a.json", startURL, now.Add(30*time.Minute), "older")
	writeEntry(t, fs, "/tool/b.json", startURL, now.Add(2*time.Hour), "fresher")

	store := newTestStore(fs, now)
	entry, err := store.LoadValid(startURL)

	require.NoError(t, err)
	assert.Equal(t, "fresher", entry.AccessToken)
}

func TestLoadValidSkipsExpiredEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	writeEntry(t, fs, "/provider/a.json", startURL, now.Add(-time.Minute), "expired")

	store := newTestStore(fs, now)
	_, err := store.LoadValid(startURL)

	assert.ErrorIs(t, err, tokencache.ErrMissingCache)
}

func TestLoadValidIgnoresOtherStartURLs(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	writeEntry(t, fs, "/provider/a.json", "https://other.awsapps.com/start", now.Add(time.Hour), "other")

	store := newTestStore(fs, now)
	_, err := store.LoadValid(startURL)

	assert.ErrorIs(t, err, tokencache.ErrMissingCache)
}

func TestLoadValidTreatsMalformedFilesAsMisses(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, afero.WriteFile(fs, "/provider/broken.json", []byte("{not json"), 0600))
	writeEntry(t, fs, "/tool/good.json", startURL, now.Add(time.Hour), "good")

	store := newTestStore(fs, now)
	entry, err := store.LoadValid(startURL)

	require.NoError(t, err)
	assert.Equal(t, "good", entry.AccessToken)
}

func TestLoadValidParsesUTCSuffixedExpiry(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	data := `{"startUrl":"` + startURL + `","region":"us-east-1","accessToken":"cli-style","expiresAt":"2025-06-01T14:00:00UTC"}`
	require.NoError(t, afero.WriteFile(fs, "/provider/cli.json", []byte(data), 0600))

	store := newTestStore(fs, now)
	entry, err := store.LoadValid(startURL)

	require.NoError(t, err)
	assert.Equal(t, "cli-style", entry.AccessToken)
}

func TestPersistRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(fs, now)

	saved := &models.TokenCacheEntry{
		StartURL:    startURL,
		Region:      "eu-west-1",
		AccessToken: "token-123",
		ExpiresAt:   now.Add(8 * time.Hour),
	}
	require.NoError(t, store.Persist(saved))

	loaded, err := store.LoadValid(startURL)
	require.NoError(t, err)
	assert.Equal(t, saved.StartURL, loaded.StartURL)
	assert.Equal(t, saved.Region, loaded.Region)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.True(t, saved.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestPersistWritesOnlyToolDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(fs, now)

	require.NoError(t, store.Persist(&models.TokenCacheEntry{
		StartURL:    startURL,
		AccessToken: "token",
		ExpiresAt:   now.Add(time.Hour),
	}))

	exists, err := afero.DirExists(fs, "/provider")
	require.NoError(t, err)
	assert.False(t, exists)

	toolFile := filepath.Join("/tool", tokencache.Filename(startURL))
	written, err := afero.Exists(fs, toolFile)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestPersistOverwritesPriorEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(fs, now)

	for _, token := range []string{"first", "second"} {
		require.NoError(t, store.Persist(&models.TokenCacheEntry{
			StartURL:    startURL,
			AccessToken: token,
			ExpiresAt:   now.Add(time.Hour),
		}))
	}

	infos, err := afero.ReadDir(fs, "/tool")
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	entry, err := store.LoadValid(startURL)
	require.NoError(t, err)
	assert.Equal(t, "second", entry.AccessToken)
}
