package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/azolotov/commitmap/internal/heatmap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the calendar heatmap from the daily statistics export",
	Long: `Lays out one 7-row day grid per configured year, loads the daily
statistics CSV, quantizes commit counts into intensity buckets, and writes
the bound heatmap as public/heatmap.svg plus an embedding index.html.

A missing or malformed dataset is fatal: nothing is bound and no output
files are written.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("input", "", "daily stats CSV (default: <cache dir>/daily_stats.csv)")
	renderCmd.Flags().String("output", "", "output directory (default: heatmap.output_dir)")
}

func runRender(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = filepath.Join(cfg.Cache.Directory, "daily_stats.csv")
	}
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Heatmap.OutputDir
	}

	hm := cfg.Heatmap

	// Layout and quantization are pure; they run before the load so a load
	// failure costs nothing but the grid build.
	grids := heatmap.NewGrids(hm.FirstYear, hm.LastYear, hm.CellSize)
	quantizer := heatmap.NewQuantizer(hm.Buckets, hm.DomainMax)

	index, err := heatmap.LoadCSV(input)
	if err != nil {
		return err
	}

	heatmap.Bind(grids, index, quantizer)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	svgPath := filepath.Join(outputDir, "heatmap.svg")
	if err := writeFile(svgPath, func(f *os.File) error {
		return heatmap.RenderSVG(f, grids, hm.CellSize)
	}); err != nil {
		return err
	}

	htmlPath := filepath.Join(outputDir, "index.html")
	if err := writeFile(htmlPath, func(f *os.File) error {
		return heatmap.RenderPage(f, grids, hm.CellSize)
	}); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"years":  len(grids),
		"days":   len(index),
		"svg":    svgPath,
		"html":   htmlPath,
		"height": heatmap.SVGHeight(len(grids), hm.CellSize),
	}).Info("Heatmap rendered")

	return nil
}

func writeFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
