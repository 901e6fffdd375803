package rolescache_test

import (
	"testing"
	"time"

	"github.com/BerryBytes/sessionctl/internal/rolescache"
	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startURL = "https://example.awsapps.com/start"

var sampleChoices = []models.RoleChoice{
	{AccountID: "111111111111", AccountName: "dev", RoleName: "AdministratorAccess"},
	{AccountID: "222222222222", AccountName: "prod", RoleName: "ReadOnlyAccess"},
}

func storeAt(fs afero.Fs, now time.Time) *rolescache.Store {
	return rolescache.NewStore(fs, "/cache").WithClock(func() time.Time { return now })
}

func TestLoadFreshWithinTTL(t *testing.T) {
	fs := afero.NewMemMapFs()
	savedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storeAt(fs, savedAt).Save(startURL, sampleChoices))

	later := savedAt.Add(23*time.Hour + 59*time.Minute)
	choices, age, ok := storeAt(fs, later).LoadFresh(startURL)

	require.True(t, ok)
	assert.Equal(t, sampleChoices, choices)
	assert.Equal(t, 23*time.Hour+59*time.Minute, age)
}

func TestLoadFreshRejectsExpiredCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	savedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storeAt(fs, savedAt).Save(startURL, sampleChoices))

	later := savedAt.Add(24*time.Hour + time.Minute)
	_, _, ok := storeAt(fs, later).LoadFresh(startURL)

	assert.False(t, ok)
}

func TestLoadAnyReturnsStaleCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	savedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storeAt(fs, savedAt).Save(startURL, sampleChoices))

	later := savedAt.Add(72 * time.Hour)
	choices, age, ok := storeAt(fs, later).LoadAny(startURL)

	require.True(t, ok)
	assert.Equal(t, sampleChoices, choices)
	assert.Equal(t, 72*time.Hour, age)
}

func TestLoadAnyMissesOnAbsentAndMalformedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := storeAt(fs, now)

	_, _, ok := store.LoadAny(startURL)
	assert.False(t, ok)

	require.NoError(t, fs.MkdirAll("/cache", 0700))
	require.NoError(t, afero.WriteFile(fs, "/cache/roles-garbage.json", []byte("nope"), 0600))
	_, _, ok = store.LoadAny(startURL)
	assert.False(t, ok)
}

func TestSaveIsolatesStartURLs(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := storeAt(fs, now)

	require.NoError(t, store.Save(startURL, sampleChoices))
	require.NoError(t, store.Save("https://other.awsapps.com/start", sampleChoices[:1]))

	choices, _, ok := store.LoadAny(startURL)
	require.True(t, ok)
	assert.Len(t, choices, 2)

	choices, _, ok = store.LoadAny("https://other.awsapps.com/start")
	require.True(t, ok)
	assert.Len(t, choices, 1)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "45s", rolescache.FormatAge(45*time.Second))
	assert.Equal(t, "2m 5s", rolescache.FormatAge(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 3m", rolescache.FormatAge(time.Hour+3*time.Minute+20*time.Second))
	assert.Equal(t, "0s", rolescache.FormatAge(0))
}
