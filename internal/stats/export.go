package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/azolotov/commitmap/internal/models"
)

// WriteDailyCSV writes daily stats with the `date,commits` header the
// heatmap loader requires.
func WriteDailyCSV(w io.Writer, stats []models.DailyStat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "commits"}); err != nil {
		return err
	}
	for _, s := range stats {
		if err := cw.Write([]string{s.Date, strconv.Itoa(s.Commits)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProjectsCSV writes per-project public commit counts.
func WriteProjectsCSV(w io.Writer, stats []models.ProjectStat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"project", "commits"}); err != nil {
		return err
	}
	for _, s := range stats {
		if err := cw.Write([]string{s.Project, strconv.Itoa(s.Commits)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportDailyCSV writes daily stats to path, creating parent directories.
func ExportDailyCSV(path string, stats []models.DailyStat) error {
	return exportFile(path, func(w io.Writer) error {
		return WriteDailyCSV(w, stats)
	})
}

// ExportProjectsCSV writes project stats to path, creating parent directories.
func ExportProjectsCSV(path string, stats []models.ProjectStat) error {
	return exportFile(path, func(w io.Writer) error {
		return WriteProjectsCSV(w, stats)
	})
}

func exportFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
