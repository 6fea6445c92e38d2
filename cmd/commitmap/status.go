package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/azolotov/commitmap/internal/cache"
	"github.com/azolotov/commitmap/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache freshness and store contents",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cacheMgr := cache.NewManager(cfg.Cache.Directory, cfg.Cache.TTL, logger)

	fmt.Printf("Cache directory: %s (TTL %s)\n", cfg.Cache.Directory, cfg.Cache.TTL)
	for _, name := range []string{"github_commits.json", "local_commits.json"} {
		if age, ok := cacheMgr.Age(name); ok {
			state := "fresh"
			if age >= cfg.Cache.TTL {
				state = "stale"
			}
			fmt.Printf("  %-22s %s (age %s)\n", name, state, age.Round(time.Minute))
		} else {
			fmt.Printf("  %-22s absent\n", name)
		}
	}

	if _, err := os.Stat(cfg.Cache.StorePath); os.IsNotExist(err) {
		fmt.Printf("Store: %s (absent)\n", cfg.Cache.StorePath)
		return nil
	}

	store, err := storage.NewSQLiteStore(cfg.Cache.StorePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.CountCommits(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Store: %s (%d commits)\n", cfg.Cache.StorePath, count)

	export := filepath.Join(cfg.Cache.Directory, "daily_stats.csv")
	if info, err := os.Stat(export); err == nil {
		fmt.Printf("Export: %s (updated %s)\n", export, info.ModTime().Format(time.RFC3339))
	} else {
		fmt.Printf("Export: %s (absent)\n", export)
	}

	return nil
}
