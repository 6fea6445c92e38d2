package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/azolotov/commitmap/internal/models"
)

// Manager keeps per-source JSON snapshots of discovered commits so repeated
// runs do not hammer the remote APIs. A snapshot is fresh until its file
// modification time is older than the TTL.
type Manager struct {
	dir    string
	ttl    time.Duration
	logger *logrus.Logger
}

// NewManager creates a cache manager rooted at dir.
func NewManager(dir string, ttl time.Duration, logger *logrus.Logger) *Manager {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.WithError(err).Warn("Failed to create cache directory")
	}

	return &Manager{
		dir:    dir,
		ttl:    ttl,
		logger: logger,
	}
}

// GetCommits returns the cached commits for name when the snapshot is fresh,
// otherwise runs fetch and rewrites the snapshot with its result.
func (m *Manager) GetCommits(name string, fetch func() ([]*models.Commit, error)) ([]*models.Commit, error) {
	path := m.path(name)

	if m.fresh(path) {
		commits, err := readCommits(path)
		if err == nil {
			m.logger.WithFields(logrus.Fields{
				"cache":   name,
				"commits": len(commits),
			}).Debug("Using cached commits")
			return commits, nil
		}
		// Unreadable snapshot falls through to a refetch.
		m.logger.WithError(err).WithField("cache", name).Warn("Discarding unreadable cache")
	}

	commits, err := fetch()
	if err != nil {
		return nil, err
	}

	if err := m.WriteJSON(name, commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// WriteJSON writes v as an indented JSON snapshot under the cache directory.
func (m *Manager) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode cache %s: %w", name, err)
	}

	path := m.path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	return nil
}

// Age returns how old the snapshot for name is, or false when it is absent.
func (m *Manager) Age(name string) (time.Duration, bool) {
	info, err := os.Stat(m.path(name))
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name)
}

func (m *Manager) fresh(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < m.ttl
}

func readCommits(path string) ([]*models.Commit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var commits []*models.Commit
	if err := json.Unmarshal(data, &commits); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	return commits, nil
}
