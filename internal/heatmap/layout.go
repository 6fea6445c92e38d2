package heatmap

import (
	"fmt"
	"time"
)

// DateFormat is the key format used throughout the pipeline: ISO dates,
// matching the `date` column of the daily stats export.
const DateFormat = "2006-01-02"

// gridRows is the number of rows in a year grid, one per day of week.
const gridRows = 7

// DayCell is one grid square for a single calendar day. Position is fixed
// at layout time; Bucket and Tooltip are annotated once during bind.
type DayCell struct {
	Date    time.Time
	Week    int // week-of-year column, Sunday-start
	Weekday int // 0=Sunday .. 6=Saturday
	X, Y    int // pixel offsets within the year grid

	Bucket  int
	Tooltip string
}

// Key returns the cell's ISO date string, the join key against loaded data.
func (c *DayCell) Key() string {
	return c.Date.Format(DateFormat)
}

// MonthOutline records the grid coordinates of a month's first and last day,
// from which the separator path between months is derived.
type MonthOutline struct {
	Month        time.Month
	FirstWeek    int
	FirstWeekday int
	LastWeek     int
	LastWeekday  int
}

// PathData returns the SVG path for the month separator: down the right edge
// of the first day's column, across the grid bottom, and back up past the
// last day's row. Months that start or end mid-week produce the notched
// outline this trace is known for.
func (m MonthOutline) PathData(cell int) string {
	return fmt.Sprintf("M%d,%d H%d V%d H%d V%d H%d V0 H%d Z",
		(m.FirstWeek+1)*cell, m.FirstWeekday*cell,
		m.FirstWeek*cell, gridRows*cell,
		m.LastWeek*cell, (m.LastWeekday+1)*cell,
		(m.LastWeek+1)*cell,
		(m.FirstWeek+1)*cell)
}

// YearGrid is the laid-out grid for one calendar year: every day cell in
// date order plus one outline per month.
type YearGrid struct {
	Year   int
	Cells  []*DayCell
	Months []MonthOutline
}

// WeekOfYear returns the Sunday-start week index of d within its year.
// January 1st is in week 0; the index increments on each Sunday.
func WeekOfYear(d time.Time) int {
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (d.YearDay() - 1 + int(jan1.Weekday())) / 7
}

// NewYearGrid lays out every day of the given year. Iterating actual dates
// means partial first weeks and leap days fall out of the calendar itself
// rather than being special-cased.
func NewYearGrid(year, cellSize int) *YearGrid {
	g := &YearGrid{Year: year}

	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		week := WeekOfYear(d)
		weekday := int(d.Weekday())
		cell := &DayCell{
			Date:    d,
			Week:    week,
			Weekday: weekday,
			X:       week * cellSize,
			Y:       weekday * cellSize,
		}
		cell.Tooltip = cell.Key()
		g.Cells = append(g.Cells, cell)
	}

	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		g.Months = append(g.Months, MonthOutline{
			Month:        m,
			FirstWeek:    WeekOfYear(first),
			FirstWeekday: int(first.Weekday()),
			LastWeek:     WeekOfYear(last),
			LastWeekday:  int(last.Weekday()),
		})
	}

	return g
}

// NewGrids lays out one grid per year, first to last inclusive.
func NewGrids(firstYear, lastYear, cellSize int) []*YearGrid {
	var grids []*YearGrid
	for y := firstYear; y <= lastYear; y++ {
		grids = append(grids, NewYearGrid(y, cellSize))
	}
	return grids
}
