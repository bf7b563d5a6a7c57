// Package state persists activation progress between runs so interrupted
// batch jobs can resume without redoing work.
package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Checkpoint records which activation URLs already went through for one
// account. The URL is the identity of a record; usernames and emails are
// neither unique nor required.
type Checkpoint struct {
	CompletedURLs []string  `json:"completed_urls"`
	LastUpdated   time.Time `json:"last_updated"`
	Account       string    `json:"account"`
}

// Completed returns the checkpoint's URLs as a set.
func (c *Checkpoint) Completed() map[string]bool {
	done := make(map[string]bool, len(c.CompletedURLs))
	for _, u := range c.CompletedURLs {
		done[u] = true
	}
	return done
}

// Store reads and writes per-account checkpoint files.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a store writing under dir, or the system temp directory
// when dir is empty.
func NewStore(dir string, logger *slog.Logger) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the checkpoint file location for an account.
func (s *Store) Path(account string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(account)
	return filepath.Join(s.dir, fmt.Sprintf("callhub_activation_state_%s.json", safe))
}

// Load returns the account's checkpoint, or nil when none exists. A file
// that cannot be read or parsed is treated as absent; a stale or corrupt
// checkpoint must never block a fresh run.
func (s *Store) Load(account string) *Checkpoint {
	path := s.Path(account)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read checkpoint", "path", path, "error", err)
		}
		return nil
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		s.logger.Warn("ignoring malformed checkpoint", "path", path, "error", err)
		return nil
	}
	return &cp
}

// Save writes the checkpoint atomically: the data lands in a temp file in
// the same directory and is renamed over the old checkpoint, so a crash
// mid-write leaves the previous state intact.
func (s *Store) Save(account string, cp *Checkpoint) error {
	cp.Account = account
	cp.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	path := s.Path(account)
	tmp, err := os.CreateTemp(s.dir, ".callhub_activation_state_*")
	if err != nil {
		return fmt.Errorf("create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace checkpoint: %w", err)
	}

	s.logger.Debug("checkpoint saved", "path", path, "completed", len(cp.CompletedURLs))
	return nil
}

// Clear removes the account's checkpoint. A missing file is not an error.
func (s *Store) Clear(account string) error {
	path := s.Path(account)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}
