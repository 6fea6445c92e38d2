package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azolotov/commitmap/internal/stats"
	"github.com/azolotov/commitmap/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate commit statistics from the local store",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("top", 10, "Number of projects to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	top, _ := cmd.Flags().GetInt("top")

	store, err := storage.NewSQLiteStore(cfg.Cache.StorePath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	commits, err := store.GetCommits(ctx)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Println("No commits recorded yet. Run `commitmap update` first.")
		return nil
	}

	daily := stats.Daily(commits)
	projects := stats.Projects(commits)

	busiest := daily[0]
	for _, d := range daily {
		if d.Commits > busiest.Commits {
			busiest = d
		}
	}

	fmt.Printf("Commits:      %d\n", len(commits))
	fmt.Printf("Active days:  %d (%s .. %s)\n", len(daily), daily[0].Date, daily[len(daily)-1].Date)
	fmt.Printf("Busiest day:  %s (%d commits)\n", busiest.Date, busiest.Commits)
	fmt.Println()

	fmt.Println("Top projects:")
	for i, p := range projects {
		if i >= top {
			break
		}
		fmt.Printf("  %4d  %s\n", p.Commits, p.Project)
	}

	return nil
}
