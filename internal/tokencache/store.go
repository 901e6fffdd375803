package tokencache

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
)

// ErrMissingCache reports that no valid token exists for the start URL. It is
// the expected trigger for re-authentication, not a failure.
var ErrMissingCache = errors.New("no valid SSO token cached for start URL")

// Store selects and persists SSO access tokens across two cache directories:
// the AWS CLI standard directory (read-only from our side) and the
// tool-private directory (read/write).
type Store struct {
	fs          afero.Fs
	providerDir string
	toolDir     string
	now         func() time.Time
}

func NewStore(fs afero.Fs, providerDir, toolDir string) *Store {
	return &Store{
		fs:          fs,
		providerDir: providerDir,
		toolDir:     toolDir,
		now:         time.Now,
	}
}

// WithClock overrides the wall clock; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// LoadValid scans every JSON file in both directories, keeps entries whose
// start URL matches exactly and whose expiry is still in the future, and
// returns the one with the greatest remaining validity. Unreadable or
// malformed files are skipped. ErrMissingCache means no valid entry exists.
func (s *Store) LoadValid(startURL string) (*models.TokenCacheEntry, error) {
	var best *models.TokenCacheEntry
	now := s.now()

	for _, dir := range []string{s.providerDir, s.toolDir} {
		entries, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			continue
		}
		for _, info := range entries {
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
				continue
			}
			entry := s.readEntry(filepath.Join(dir, info.Name()))
			if entry == nil || entry.StartURL != startURL || entry.AccessToken == "" {
				continue
			}
			if !entry.ExpiresAt.After(now) {
				continue
			}
			if best == nil || entry.ExpiresAt.After(best.ExpiresAt) {
				best = entry
			}
		}
	}

	if best == nil {
		return nil, ErrMissingCache
	}
	return best, nil
}

// Persist writes the entry to the tool-private directory, content-addressed
// by the start URL so repeated sign-ins overwrite instead of accumulating.
// The write goes through a temp file and rename so a partial entry is never
// observable.
func (s *Store) Persist(entry *models.TokenCacheEntry) error {
	if err := s.fs.MkdirAll(s.toolDir, 0700); err != nil {
		return fmt.Errorf("failed to create token cache directory %s: %w", s.toolDir, err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode token cache entry: %w", err)
	}
	path := filepath.Join(s.toolDir, Filename(entry.StartURL))
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache file %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize token cache file %s: %w", path, err)
	}
	return nil
}

// Filename is the content-addressed cache filename for a start URL.
func Filename(startURL string) string {
	return fmt.Sprintf("%x.json", sha1.Sum([]byte(startURL)))
}

// readEntry parses one cache file loosely; any problem yields nil. The AWS
// CLI occasionally writes expiry timestamps with a trailing "UTC" instead of
// "Z", so both forms parse.
func (s *Store) readEntry(path string) *models.TokenCacheEntry {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil
	}
	var raw struct {
		StartURL    string `json:"startUrl"`
		Region      string `json:"region"`
		AccessToken string `json:"accessToken"`
		ExpiresAt   string `json:"expiresAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	expiresAt, err := time.Parse(time.RFC3339, strings.Replace(raw.ExpiresAt, "UTC", "Z", 1))
	if err != nil {
		return nil
	}
	return &models.TokenCacheEntry{
		StartURL:    raw.StartURL,
		Region:      raw.Region,
		AccessToken: raw.AccessToken,
		ExpiresAt:   expiresAt,
	}
}
