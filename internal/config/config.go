package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Configuration errors are fatal and must surface before any network call.
var (
	ErrMissingStartURL = errors.New("missing SSO start URL (pass --start-url or configure an identity)")
	ErrMissingRegion   = errors.New("missing SSO region (pass --region or configure an identity)")
	ErrMissingHome     = errors.New("unable to determine home directory")
)

// Identity is one configured federation tenant: a named (start URL, region)
// pair the operator can select among.
type Identity struct {
	Name     string `yaml:"name" json:"name"`
	StartURL string `yaml:"start_url" json:"start_url"`
	Region   string `yaml:"region" json:"region"`
}

// Config is the user-level configuration file.
type Config struct {
	Identities      []Identity `yaml:"identities" json:"identities"`
	DefaultIdentity string     `yaml:"default_identity" json:"default_identity"`
}

// Load reads the config file at path. A missing file yields an empty config;
// a malformed file is a hard error, config must not be silently ignored.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config back to path.
func Save(fs afero.Fs, path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Lookup finds an identity by name.
func (c *Config) Lookup(name string) (Identity, bool) {
	for _, identity := range c.Identities {
		if identity.Name == name {
			return identity, true
		}
	}
	return Identity{}, false
}

// ResolveIdentity merges CLI overrides with the configured identities into
// the (identity name, start URL, region) triple the pipeline needs.
// Precedence: explicit flags, then the named identity, then the default
// identity.
func (c *Config) ResolveIdentity(flagIdentity, flagStartURL, flagRegion string) (Identity, error) {
	identity := Identity{Name: flagIdentity}

	name := flagIdentity
	if name == "" {
		name = c.DefaultIdentity
	}
	if name != "" {
		configured, ok := c.Lookup(name)
		if !ok && flagIdentity != "" && flagStartURL == "" {
			return Identity{}, fmt.Errorf("identity %q is not configured", flagIdentity)
		}
		if ok {
			identity = configured
		}
	}
	if len(c.Identities) == 1 && identity.StartURL == "" && flagStartURL == "" {
		identity = c.Identities[0]
	}

	if flagStartURL != "" {
		identity.StartURL = flagStartURL
	}
	if flagRegion != "" {
		identity.Region = flagRegion
	}
	if identity.Name == "" {
		identity.Name = "default"
	}

	if identity.StartURL == "" {
		return Identity{}, ErrMissingStartURL
	}
	if identity.Region == "" {
		return Identity{}, ErrMissingRegion
	}
	return identity, nil
}

// DefaultPath is the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sessionctl", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrMissingHome
	}
	return filepath.Join(home, ".config", "sessionctl", "config.yaml"), nil
}

// ProviderCacheDir is the AWS CLI token cache directory. This system only
// ever reads it.
func ProviderCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrMissingHome
	}
	return filepath.Join(home, ".aws", "sso", "cache"), nil
}

// ToolCacheDir is the tool-private cache directory, honoring XDG_CACHE_HOME.
func ToolCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "sessionctl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrMissingHome
	}
	return filepath.Join(home, ".cache", "sessionctl"), nil
}

// HistoryPath is the selection-log location, honoring XDG_STATE_HOME.
func HistoryPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sessionctl", "history.jsonl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrMissingHome
	}
	return filepath.Join(home, ".local", "state", "sessionctl", "history.jsonl"), nil
}
