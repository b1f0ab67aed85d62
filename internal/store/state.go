package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cailloux/agenda/internal/config"
)

// sentKeyRetentionMs bounds the sent-key registry: keys whose embedded
// due instant is older than this are dropped on save.
const sentKeyRetentionMs = 30 * 24 * 60 * 60 * 1000

// StateStore persists the core's session state: the sent-notification
// key registry, the notification config, and the last-selected view.
type StateStore struct {
	path string
	mu   sync.Mutex
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

type stateFile struct {
	SentKeys      []string              `json:"sent_keys,omitempty"`
	Notifications *config.Notifications `json:"notifications,omitempty"`
	LastView      string                `json:"last_view,omitempty"`
	LastFocus     string                `json:"last_focus,omitempty"`
}

func (s *StateStore) load() (stateFile, error) {
	var sf stateFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sf, nil
		}
		return sf, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parse state file: %w", err)
	}
	return sf, nil
}

func (s *StateStore) save(sf stateFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// SentKeys loads the persisted sent-key registry as a set.
func (s *StateStore) SentKeys() (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(sf.SentKeys))
	for _, k := range sf.SentKeys {
		keys[k] = true
	}
	return keys, nil
}

// AddSentKeys appends delivered keys to the registry and persists it,
// dropping keys whose embedded due instant has aged past retention.
func (s *StateStore) AddSentKeys(keys []string, nowMs int64) error {
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(sf.SentKeys))
	for _, k := range sf.SentKeys {
		seen[k] = true
	}
	for _, k := range keys {
		if !seen[k] {
			sf.SentKeys = append(sf.SentKeys, k)
			seen[k] = true
		}
	}

	kept := sf.SentKeys[:0]
	for _, k := range sf.SentKeys {
		if dueMs, ok := sentKeyDueMs(k); ok && nowMs-dueMs > sentKeyRetentionMs {
			continue
		}
		kept = append(kept, k)
	}
	sf.SentKeys = kept

	return s.save(sf)
}

// sentKeyDueMs extracts the due instant embedded in a sent key of the
// form "{taskId}:{dueUtcMs}:{kind}[:{minutes}]". Task ids never
// contain ':'.
func sentKeyDueMs(key string) (int64, bool) {
	parts := strings.Split(key, ":")
	if len(parts) < 3 {
		return 0, false
	}
	ms, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// Notifications returns the persisted notification config, sanitized.
// Absent state yields the defaults.
func (s *StateStore) Notifications() (config.Notifications, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return config.DefaultNotifications(), err
	}
	if sf.Notifications == nil {
		return config.DefaultNotifications(), nil
	}
	return sf.Notifications.Sanitize(), nil
}

// SaveNotifications persists the notification config, sanitized.
func (s *StateStore) SaveNotifications(n config.Notifications) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return err
	}
	n = n.Sanitize()
	sf.Notifications = &n
	return s.save(sf)
}

// LastView returns the persisted view name and focus date string.
// Both may be empty; callers fall back to their own defaults.
func (s *StateStore) LastView() (view, focus string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return "", "", err
	}
	return sf.LastView, sf.LastFocus, nil
}

// SaveLastView persists the selected view and focus date for UX
// continuity across sessions.
func (s *StateStore) SaveLastView(view, focus string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sf, err := s.load()
	if err != nil {
		return err
	}
	sf.LastView = view
	sf.LastFocus = focus
	return s.save(sf)
}
