package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azolotov/commitmap/internal/heatmap"
	"github.com/azolotov/commitmap/internal/models"
)

func commitAt(ts string, public bool, repo string) *models.Commit {
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return &models.Commit{
		SHA:       ts + repo,
		Timestamp: when,
		Public:    public,
		Repo:      repo,
	}
}

func TestDailyCoalescesUTCDates(t *testing.T) {
	commits := []*models.Commit{
		commitAt("2013-03-15T09:00:00Z", true, "a/b"),
		commitAt("2013-03-15T23:30:00Z", true, "a/b"),
		// 01:30 on the 16th in +02:00 is still the 15th in UTC.
		commitAt("2013-03-16T01:30:00+02:00", true, "a/b"),
		commitAt("2013-03-17T00:00:00Z", false, ""),
	}

	daily := Daily(commits)
	require.Len(t, daily, 2)
	assert.Equal(t, models.DailyStat{Date: "2013-03-15", Commits: 3}, daily[0])
	assert.Equal(t, models.DailyStat{Date: "2013-03-17", Commits: 1}, daily[1])
}

func TestDailySortedAscending(t *testing.T) {
	commits := []*models.Commit{
		commitAt("2014-06-01T12:00:00Z", true, "a/b"),
		commitAt("2011-01-02T12:00:00Z", true, "a/b"),
		commitAt("2012-12-31T12:00:00Z", true, "a/b"),
	}

	daily := Daily(commits)
	require.Len(t, daily, 3)
	assert.Equal(t, "2011-01-02", daily[0].Date)
	assert.Equal(t, "2012-12-31", daily[1].Date)
	assert.Equal(t, "2014-06-01", daily[2].Date)
}

func TestProjectsCountsPublicOnly(t *testing.T) {
	commits := []*models.Commit{
		commitAt("2013-01-01T00:00:00Z", true, "me/dotfiles"),
		commitAt("2013-01-02T00:00:00Z", true, "me/dotfiles"),
		commitAt("2013-01-03T00:00:00Z", true, "me/site"),
		commitAt("2013-01-04T00:00:00Z", false, ""),
	}

	projects := Projects(commits)
	require.Len(t, projects, 2)
	assert.Equal(t, models.ProjectStat{Project: "me/dotfiles", Commits: 2}, projects[0])
	assert.Equal(t, models.ProjectStat{Project: "me/site", Commits: 1}, projects[1])
}

func TestDailyCSVRoundTripsThroughLoader(t *testing.T) {
	daily := []models.DailyStat{
		{Date: "2013-03-15", Commits: 12},
		{Date: "2013-03-16", Commits: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDailyCSV(&buf, daily))

	idx, err := heatmap.ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, idx, 2)
	assert.Equal(t, 12, idx["2013-03-15"][0].Commits)
	assert.Equal(t, 1, idx["2013-03-16"][0].Commits)
}

func TestWriteProjectsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjectsCSV(&buf, []models.ProjectStat{
		{Project: "me/dotfiles", Commits: 2},
	}))
	assert.Equal(t, "project,commits\nme/dotfiles,2\n", buf.String())
}
