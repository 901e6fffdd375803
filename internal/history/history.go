package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BerryBytes/sessionctl/models"
	"github.com/spf13/afero"
)

const (
	recencyDecayDays    = 14.0
	frequencyWindowDays = 30
	recencyWeight       = 0.60
	frequencyWeight     = 0.30
	contextWeight       = 0.10
)

// Store owns the append-only role-selection log and the ranking derived
// from it.
type Store struct {
	fs   afero.Fs
	path string
	now  func() time.Time
	cwd  func() string
}

func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path, now: time.Now, cwd: currentDir}
}

// WithClock overrides the wall clock; used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithWorkingDir overrides working-directory detection; used by tests.
func (s *Store) WithWorkingDir(cwd func() string) *Store {
	s.cwd = cwd
	return s
}

// Record appends one entry for a successful role selection. Entries are
// never edited or deduplicated.
func (s *Store) Record(identity string, choice models.RoleChoice) error {
	entry := models.HistoryEntry{
		SelectedAtUnix: s.now().Unix(),
		Identity:       identity,
		AccountID:      choice.AccountID,
		AccountName:    choice.AccountName,
		RoleName:       choice.RoleName,
		Cwd:            s.cwd(),
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}
	file, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history log %s: %w", s.path, err)
	}
	defer file.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) ([]models.HistoryEntry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SelectedAtUnix > entries[j].SelectedAtUnix
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear removes the whole log.
func (s *Store) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history log %s: %w", s.path, err)
	}
	return nil
}

// Rank orders the candidates by their usage-history score, highest first.
// An explicit query term bypasses ranking entirely and preserves the input
// order; so does an empty history. Ties keep their relative input order.
func (s *Store) Rank(choices []models.RoleChoice, identity, query string) {
	if strings.TrimSpace(query) != "" {
		return
	}
	entries, err := s.load()
	if err != nil || len(entries) == 0 {
		return
	}
	sortByScore(choices, buildStats(entries, identity, s.now().Unix(), s.cwd()))
}

type roleStats struct {
	recency     float64
	frequency30 int
	cwdMatch    bool
}

type roleKey struct {
	accountID string
	roleName  string
}

func buildStats(entries []models.HistoryEntry, identity string, nowUnix int64, cwd string) map[roleKey]*roleStats {
	stats := make(map[roleKey]*roleStats)
	for _, entry := range entries {
		if entry.Identity != identity {
			continue
		}
		key := roleKey{accountID: entry.AccountID, roleName: entry.RoleName}
		stat := stats[key]
		if stat == nil {
			stat = &roleStats{}
			stats[key] = stat
		}
		ageSeconds := nowUnix - entry.SelectedAtUnix
		if ageSeconds < 0 {
			ageSeconds = 0
		}
		ageDays := float64(ageSeconds) / 86400.0
		if recency := math.Exp(-ageDays / recencyDecayDays); recency > stat.recency {
			stat.recency = recency
		}
		if ageSeconds <= frequencyWindowDays*86400 {
			stat.frequency30++
		}
		if cwd != "" && entry.Cwd == cwd {
			stat.cwdMatch = true
		}
	}
	return stats
}

func sortByScore(choices []models.RoleChoice, stats map[roleKey]*roleStats) {
	if len(stats) == 0 {
		return
	}
	scores := make([]float64, len(choices))
	for i, choice := range choices {
		scores[i] = score(stats, choice)
	}
	indexed := make([]int, len(choices))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		return scores[indexed[i]] > scores[indexed[j]]
	})
	ordered := make([]models.RoleChoice, len(choices))
	for i, idx := range indexed {
		ordered[i] = choices[idx]
	}
	copy(choices, ordered)
}

// score combines recency, 30-day frequency, and working-directory context.
// Candidates absent from the history score zero.
func score(stats map[roleKey]*roleStats, choice models.RoleChoice) float64 {
	stat, ok := stats[roleKey{accountID: choice.AccountID, roleName: choice.RoleName}]
	if !ok {
		return 0.0
	}
	frequency := math.Log(float64(stat.frequency30)+1.0) / math.Log(31.0)
	context := 0.0
	if stat.cwdMatch {
		context = 1.0
	}
	return stat.recency*recencyWeight + frequency*frequencyWeight + context*contextWeight
}

// load reads every parseable line of the log. Malformed lines are skipped so
// one bad write never poisons ranking.
func (s *Store) load() ([]models.HistoryEntry, error) {
	file, err := s.fs.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history log %s: %w", s.path, err)
	}
	defer file.Close()

	var entries []models.HistoryEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history log %s: %w", s.path, err)
	}
	return entries, nil
}

// FormatEntry renders one history line for display.
func FormatEntry(entry models.HistoryEntry) string {
	cwd := entry.Cwd
	if cwd == "" {
		cwd = "-"
	}
	timestamp := time.Unix(entry.SelectedAtUnix, 0).UTC().Format(time.RFC3339)
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s", timestamp, entry.Identity, entry.AccountID, entry.RoleName, cwd)
}

func currentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}
