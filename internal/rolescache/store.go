package rolescache

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
)

// TTL is how long a cached role enumeration counts as fresh.
const TTL = 24 * time.Hour

// Store persists the flattened (account, role) enumeration per start URL.
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

// LoadFresh returns the cached roles only while their age is within TTL.
func (s *Store) LoadFresh(startURL string) ([]models.RoleChoice, time.Duration, bool) {
	choices, age, ok := s.LoadAny(startURL)
	if !ok || age > TTL {
		return nil, 0, false
	}
	return choices, age, true
}

// LoadAny returns the cached roles regardless of age. It exists solely as
// the fallback source when a remote refresh fails.
func (s *Store) LoadAny(startURL string) ([]models.RoleChoice, time.Duration, bool) {
	data, err := afero.ReadFile(s.fs, s.path(startURL))
	if err != nil {
		return nil, 0, false
	}
	var cached models.CachedRoles
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, 0, false
	}

	age := time.Duration(0)
	if fetched := cached.FetchedAt; fetched < s.now().Unix() {
		age = time.Duration(s.now().Unix()-fetched) * time.Second
	}
	choices := make([]models.RoleChoice, 0, len(cached.Roles))
	for _, role := range cached.Roles {
		choices = append(choices, models.RoleChoice{
			AccountID:   role.AccountID,
			AccountName: role.AccountName,
			RoleName:    role.RoleName,
		})
	}
	return choices, age, true
}

// Save overwrites the cache file for the start URL with the full enumeration
// and the current timestamp.
func (s *Store) Save(startURL string, choices []models.RoleChoice) error {
	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create roles cache directory %s: %w", s.dir, err)
	}
	cached := models.CachedRoles{
		FetchedAt: s.now().Unix(),
		Roles:     make([]models.CachedRole, 0, len(choices)),
	}
	for _, choice := range choices {
		cached.Roles = append(cached.Roles, models.CachedRole{
			AccountID:   choice.AccountID,
			AccountName: choice.AccountName,
			RoleName:    choice.RoleName,
		})
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode roles cache: %w", err)
	}
	path := s.path(startURL)
	if err := afero.WriteFile(s.fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write roles cache file %s: %w", path, err)
	}
	return nil
}

func (s *Store) path(startURL string) string {
	return filepath.Join(s.dir, fmt.Sprintf("roles-%x.json", sha1.Sum([]byte(startURL))))
}

// FormatAge renders a cache age compactly, e.g. "1h 3m" or "45s".
func FormatAge(age time.Duration) string {
	total := int64(age.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
