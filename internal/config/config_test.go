package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/BerryBytes/sessionctl/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configPath = "/home/user/.config/sessionctl/config.yaml"

func sampleConfig() *config.Config {
	return &config.Config{
		Identities: []config.Identity{
			{Name: "work", StartURL: "https://work.awsapps.com/start", Region: "us-east-1"},
			{Name: "personal", StartURL: "https://personal.awsapps.com/start", Region: "eu-west-1"},
		},
		DefaultIdentity: "work",
	}
}

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := config.Load(fs, configPath)

	require.NoError(t, err)
	assert.Empty(t, cfg.Identities)
	assert.Empty(t, cfg.DefaultIdentity)
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("identities: [broken"), 0600))

	_, err := config.Load(fs, configPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	saved := sampleConfig()

	require.NoError(t, config.Save(fs, configPath, saved))
	loaded, err := config.Load(fs, configPath)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestResolveIdentityFlagsOverrideConfig(t *testing.T) {
	identity, err := sampleConfig().ResolveIdentity("work", "https://override.awsapps.com/start", "ap-southeast-2")

	require.NoError(t, err)
	assert.Equal(t, "work", identity.Name)
	assert.Equal(t, "https://override.awsapps.com/start", identity.StartURL)
	assert.Equal(t, "ap-southeast-2", identity.Region)
}

func TestResolveIdentityNamedSelection(t *testing.T) {
	identity, err := sampleConfig().ResolveIdentity("personal", "", "")

	require.NoError(t, err)
	assert.Equal(t, "personal", identity.Name)
	assert.Equal(t, "https://personal.awsapps.com/start", identity.StartURL)
	assert.Equal(t, "eu-west-1", identity.Region)
}

func TestResolveIdentityUsesDefault(t *testing.T) {
	identity, err := sampleConfig().ResolveIdentity("", "", "")

	require.NoError(t, err)
	assert.Equal(t, "work", identity.Name)
	assert.Equal(t, "https://work.awsapps.com/start", identity.StartURL)
}

func TestResolveIdentitySingleEntryFallback(t *testing.T) {
	cfg := &config.Config{
		Identities: []config.Identity{
			{Name: "only", StartURL: "https://only.awsapps.com/start", Region: "us-west-2"},
		},
	}

	identity, err := cfg.ResolveIdentity("", "", "")

	require.NoError(t, err)
	assert.Equal(t, "only", identity.Name)
}

func TestResolveIdentityUnknownNameIsAnError(t *testing.T) {
	_, err := sampleConfig().ResolveIdentity("nonexistent", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `identity "nonexistent" is not configured`)
}

func TestResolveIdentityBareFlagsNeedNoConfig(t *testing.T) {
	cfg := &config.Config{}

	identity, err := cfg.ResolveIdentity("", "https://adhoc.awsapps.com/start", "us-east-1")

	require.NoError(t, err)
	assert.Equal(t, "default", identity.Name)
	assert.Equal(t, "https://adhoc.awsapps.com/start", identity.StartURL)
}

func TestResolveIdentityMissingFieldsAreSentinelErrors(t *testing.T) {
	cfg := &config.Config{}

	_, err := cfg.ResolveIdentity("", "", "us-east-1")
	assert.ErrorIs(t, err, config.ErrMissingStartURL)

	_, err = cfg.ResolveIdentity("", "https://adhoc.awsapps.com/start", "")
	assert.ErrorIs(t, err, config.ErrMissingRegion)
}

func TestXDGPathsHonorOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/config", "sessionctl", "config.yaml"), path)

	dir, err := config.ToolCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/cache", "sessionctl"), dir)

	history, err := config.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg/state", "sessionctl", "history.jsonl"), history)
}

func TestProviderCacheDirUnderHome(t *testing.T) {
	dir, err := config.ProviderCacheDir()

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".aws", "sso", "cache")), dir)
}
