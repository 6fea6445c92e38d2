package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azolotov/commitmap/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "commits.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedCommit(sha string, ts time.Time) *models.Commit {
	return &models.Commit{
		SHA:       sha,
		Timestamp: ts,
		Public:    true,
		Additions: 10,
		Deletions: 2,
		Message:   "initial commit",
		Repo:      "me/site",
		Link:      "https://github.com/me/site/commit/" + sha,
	}
}

func TestSaveAndGetCommits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2013, 3, 15, 10, 0, 0, 0, time.UTC)
	err := store.SaveCommits(ctx, []*models.Commit{
		storedCommit("bbb", base.Add(time.Hour)),
		storedCommit("aaa", base),
	})
	require.NoError(t, err)

	commits, err := store.GetCommits(ctx)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	// Ordered by timestamp, fields intact.
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "bbb", commits[1].SHA)
	assert.True(t, commits[0].Timestamp.Equal(base))
	assert.Equal(t, "me/site", commits[0].Repo)
	assert.Equal(t, 10, commits[0].Additions)
	assert.True(t, commits[0].Public)
}

func TestSaveCommitsUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	first := storedCommit("abc", ts)
	require.NoError(t, store.SaveCommits(ctx, []*models.Commit{first}))

	updated := storedCommit("abc", ts)
	updated.Additions = 50
	require.NoError(t, store.SaveCommits(ctx, []*models.Commit{updated}))

	count, err := store.CountCommits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.GetCommit(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 50, got.Additions)
}

func TestGetCommitNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetCommit(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountCommitsEmpty(t *testing.T) {
	store := newTestStore(t)

	count, err := store.CountCommits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
