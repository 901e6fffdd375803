package credcache

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
)

// ExpirySafety is subtracted from a cached credential's remaining lifetime:
// a credential that could expire mid-use must never be served.
const ExpirySafety = 60 * time.Second

// Store persists temporary role credentials, one file per
// (start URL, region, account, role) tuple.
type Store struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir, now: time.Now}
}

// WithClock overrides the wall clock; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Load returns the cached credentials for the tuple, or ok=false on any of:
// absent file, unreadable file, malformed JSON, or expiration within the
// safety window. Credential cache misses are routine, never errors.
func (s *Store) Load(startURL, region, accountID, roleName string) (*models.RoleCredentials, bool) {
	data, err := afero.ReadFile(s.fs, s.path(startURL, region, accountID, roleName))
	if err != nil {
		return nil, false
	}
	var cached models.CachedCredentials
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if s.now().UnixMilli()+ExpirySafety.Milliseconds() >= cached.ExpirationMS {
		return nil, false
	}
	return &models.RoleCredentials{
		AccessKeyID:     cached.AccessKeyID,
		SecretAccessKey: cached.SecretAccessKey,
		SessionToken:    cached.SessionToken,
		ExpirationMS:    cached.ExpirationMS,
	}, true
}

// Save overwrites any prior entry for the tuple.
func (s *Store) Save(startURL, region, accountID, roleName string, creds *models.RoleCredentials) error {
	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials cache directory %s: %w", s.dir, err)
	}
	cached := models.CachedCredentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		ExpirationMS:    creds.ExpirationMS,
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode credentials cache: %w", err)
	}
	path := s.path(startURL, region, accountID, roleName)
	if err := afero.WriteFile(s.fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials cache file %s: %w", path, err)
	}
	return nil
}

func (s *Store) path(startURL, region, accountID, roleName string) string {
	hash := sha1.New()
	for _, part := range []string{startURL, region, accountID, roleName} {
		hash.Write([]byte(part))
	}
	return filepath.Join(s.dir, fmt.Sprintf("creds-%x.json", hash.Sum(nil)))
}
