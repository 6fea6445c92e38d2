package stats

import (
	"sort"

	"github.com/azolotov/commitmap/internal/models"
)

// Daily buckets commits by their UTC calendar date and returns one count
// per date, sorted ascending. The date strings are the join keys the
// heatmap loader expects.
func Daily(commits []*models.Commit) []models.DailyStat {
	counts := make(map[string]int)
	for _, commit := range commits {
		date := commit.Timestamp.UTC().Format("2006-01-02")
		counts[date]++
	}

	stats := make([]models.DailyStat, 0, len(counts))
	for date, n := range counts {
		stats = append(stats, models.DailyStat{Date: date, Commits: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// Projects counts public commits per repository, most active first. Commits
// without a repository name (private sources) are excluded.
func Projects(commits []*models.Commit) []models.ProjectStat {
	counts := make(map[string]int)
	for _, commit := range commits {
		if !commit.Public || commit.Repo == "" {
			continue
		}
		counts[commit.Repo]++
	}

	stats := make([]models.ProjectStat, 0, len(counts))
	for repo, n := range counts {
		stats = append(stats, models.ProjectStat{Project: repo, Commits: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Commits != stats[j].Commits {
			return stats[i].Commits > stats[j].Commits
		}
		return stats[i].Project < stats[j].Project
	})
	return stats
}
