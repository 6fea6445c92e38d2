package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/azolotov/commitmap/internal/cache"
	"github.com/azolotov/commitmap/internal/github"
	"github.com/azolotov/commitmap/internal/gitlocal"
	"github.com/azolotov/commitmap/internal/models"
	"github.com/azolotov/commitmap/internal/stats"
	"github.com/azolotov/commitmap/internal/storage"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Discover commits and refresh the daily statistics exports",
	Long: `Fetches your commits from GitHub and from repositories cloned under
the configured repos directory, persists them, and rewrites the aggregate
exports (cache/daily_stats.csv, cache/project_stats.csv and JSON dumps).

Discovery results are cached per source; a source is only refetched once
its snapshot is older than the configured TTL.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("force", false, "Refetch all sources even if cached snapshots are fresh")
	updateCmd.Flags().Bool("skip-github", false, "Skip GitHub discovery")
	updateCmd.Flags().Bool("skip-local", false, "Skip local clone discovery")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	force, _ := cmd.Flags().GetBool("force")
	skipGitHub, _ := cmd.Flags().GetBool("skip-github")
	skipLocal, _ := cmd.Flags().GetBool("skip-local")

	ttl := cfg.Cache.TTL
	if force {
		ttl = 0 // Every snapshot counts as stale
	}
	cacheMgr := cache.NewManager(cfg.Cache.Directory, ttl, logger)

	var discovered []*models.Commit

	if !skipGitHub {
		if cfg.GitHub.Token == "" || cfg.GitHub.Username == "" {
			logger.Warn("GitHub token or username not configured, skipping GitHub discovery")
		} else {
			client := github.NewClient(cfg.GitHub.Token, cfg.GitHub.Username, cfg.GitHub.RateLimit, logger)
			commits, err := cacheMgr.GetCommits("github_commits.json", func() ([]*models.Commit, error) {
				logger.Info("Fetching commits from GitHub")
				return client.FetchUserCommits(ctx)
			})
			if err != nil {
				return fmt.Errorf("github discovery: %w", err)
			}
			logger.WithField("commits", len(commits)).Info("GitHub discovery complete")
			discovered = append(discovered, commits...)
		}
	}

	if !skipLocal {
		if len(cfg.Local.AuthorEmails) == 0 {
			logger.Warn("No author emails configured, skipping local clone discovery")
		} else {
			discovery := gitlocal.NewDiscovery(cfg.Local.ReposDir, cfg.Local.AuthorEmails, logger)
			commits, err := cacheMgr.GetCommits("local_commits.json", func() ([]*models.Commit, error) {
				logger.Info("Scanning local clones")
				return discovery.FetchCommits(ctx)
			})
			if err != nil {
				return fmt.Errorf("local discovery: %w", err)
			}
			logger.WithField("commits", len(commits)).Info("Local discovery complete")
			discovered = append(discovered, commits...)
		}
	}

	store, err := storage.NewSQLiteStore(cfg.Cache.StorePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveCommits(ctx, discovered); err != nil {
		return err
	}

	// Aggregate over everything ever stored, not just this run's batch.
	commits, err := store.GetCommits(ctx)
	if err != nil {
		return err
	}

	daily := stats.Daily(commits)
	projects := stats.Projects(commits)

	if err := stats.ExportDailyCSV(filepath.Join(cfg.Cache.Directory, "daily_stats.csv"), daily); err != nil {
		return err
	}
	if err := stats.ExportProjectsCSV(filepath.Join(cfg.Cache.Directory, "project_stats.csv"), projects); err != nil {
		return err
	}
	if err := cacheMgr.WriteJSON("daily_stats.json", daily); err != nil {
		return err
	}
	if err := cacheMgr.WriteJSON("project_stats.json", projects); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"commits":  len(commits),
		"days":     len(daily),
		"projects": len(projects),
		"took":     time.Since(start).Round(time.Millisecond),
	}).Info("Update complete")

	return nil
}
