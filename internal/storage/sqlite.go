package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/azolotov/commitmap/internal/models"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("not found")

// SQLiteStore persists discovered commits locally so aggregation and
// export can run without refetching.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewSQLiteStore creates a new SQLite storage
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sqlite: %w", err)
	}

	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commits (
		sha TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		public BOOLEAN NOT NULL,
		additions INTEGER NOT NULL DEFAULT 0,
		deletions INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		repo TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_commits_timestamp ON commits(timestamp);
	CREATE INDEX IF NOT EXISTS idx_commits_repo ON commits(repo);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCommits upserts a batch of commits in one transaction.
func (s *SQLiteStore) SaveCommits(ctx context.Context, commits []*models.Commit) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO commits (sha, timestamp, public, additions, deletions, message, repo, link)
		VALUES (:sha, :timestamp, :public, :additions, :deletions, :message, :repo, :link)
		ON CONFLICT (sha) DO UPDATE SET
			timestamp = EXCLUDED.timestamp,
			public = EXCLUDED.public,
			additions = EXCLUDED.additions,
			deletions = EXCLUDED.deletions,
			message = EXCLUDED.message,
			repo = EXCLUDED.repo,
			link = EXCLUDED.link
	`

	for _, commit := range commits {
		if _, err := tx.NamedExecContext(ctx, query, commit); err != nil {
			return fmt.Errorf("save commit %s: %w", commit.SHA, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.WithField("commits", len(commits)).Debug("Saved commits")
	return nil
}

// GetCommits returns every stored commit ordered by timestamp.
func (s *SQLiteStore) GetCommits(ctx context.Context) ([]*models.Commit, error) {
	var commits []*models.Commit
	err := s.db.SelectContext(ctx, &commits,
		`SELECT sha, timestamp, public, additions, deletions, message, repo, link
		 FROM commits ORDER BY timestamp`)
	if err != nil {
		return nil, fmt.Errorf("get commits: %w", err)
	}
	return commits, nil
}

// GetCommit returns a single commit by sha.
func (s *SQLiteStore) GetCommit(ctx context.Context, sha string) (*models.Commit, error) {
	var commit models.Commit
	err := s.db.GetContext(ctx, &commit,
		`SELECT sha, timestamp, public, additions, deletions, message, repo, link
		 FROM commits WHERE sha = ?`, sha)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get commit %s: %w", sha, err)
	}
	return &commit, nil
}

// CountCommits returns the number of stored commits.
func (s *SQLiteStore) CountCommits(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM commits`); err != nil {
		return 0, fmt.Errorf("count commits: %w", err)
	}
	return count, nil
}
