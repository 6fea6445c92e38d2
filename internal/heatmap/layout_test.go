package heatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearGridDayCounts(t *testing.T) {
	expected := map[int]int{
		2011: 365,
		2012: 366, // leap year
		2013: 365,
		2014: 365,
		2015: 365,
	}

	for year, want := range expected {
		g := NewYearGrid(year, 12)
		require.Len(t, g.Cells, want, "year %d", year)

		seen := make(map[string]bool)
		for _, c := range g.Cells {
			require.False(t, seen[c.Key()], "duplicate date %s in %d", c.Key(), year)
			seen[c.Key()] = true
		}
	}
}

func TestYearGridIncludesLeapDay(t *testing.T) {
	g := NewYearGrid(2012, 12)

	var found bool
	for _, c := range g.Cells {
		if c.Key() == "2012-02-29" {
			found = true
		}
	}
	assert.True(t, found, "leap day missing from 2012 grid")
}

func TestWeekOfYearSundayStart(t *testing.T) {
	// Jan 1 2012 was a Sunday: the year opens directly on a week boundary.
	jan1 := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WeekOfYear(jan1))
	assert.Equal(t, 0, WeekOfYear(jan1.AddDate(0, 0, 6)))  // Sat Jan 7
	assert.Equal(t, 1, WeekOfYear(jan1.AddDate(0, 0, 7)))  // Sun Jan 8

	// Jan 1 2011 was a Saturday: week 1 starts the very next day.
	jan1 = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WeekOfYear(jan1))
	assert.Equal(t, 1, WeekOfYear(jan1.AddDate(0, 0, 1))) // Sun Jan 2
}

func TestCellPositionsDeterministic(t *testing.T) {
	first := NewYearGrid(2013, 17)
	second := NewYearGrid(2013, 17)

	require.Len(t, second.Cells, len(first.Cells))
	for i := range first.Cells {
		assert.Equal(t, first.Cells[i].X, second.Cells[i].X)
		assert.Equal(t, first.Cells[i].Y, second.Cells[i].Y)
		assert.Equal(t, first.Cells[i].Week, second.Cells[i].Week)
		assert.Equal(t, first.Cells[i].Weekday, second.Cells[i].Weekday)
	}
}

func TestCellPositionFromDate(t *testing.T) {
	g := NewYearGrid(2013, 10)

	// March 15 2013 was a Friday (weekday 5). Jan 1 2013 was a Tuesday
	// (weekday 2), so yday 73 gives week (73 + 2) / 7 = 10.
	var cell *DayCell
	for _, c := range g.Cells {
		if c.Key() == "2013-03-15" {
			cell = c
		}
	}
	require.NotNil(t, cell)
	assert.Equal(t, 10, cell.Week)
	assert.Equal(t, 5, cell.Weekday)
	assert.Equal(t, 100, cell.X)
	assert.Equal(t, 50, cell.Y)
}

func TestMonthOutlines(t *testing.T) {
	g := NewYearGrid(2013, 12)
	require.Len(t, g.Months, 12)

	jan := g.Months[0]
	assert.Equal(t, time.January, jan.Month)
	assert.Equal(t, 0, jan.FirstWeek)
	assert.Equal(t, 2, jan.FirstWeekday) // Tue Jan 1 2013
	assert.Equal(t, 4, jan.LastWeek)
	assert.Equal(t, 4, jan.LastWeekday) // Thu Jan 31 2013
}

func TestMonthPathTrace(t *testing.T) {
	m := MonthOutline{FirstWeek: 0, FirstWeekday: 2, LastWeek: 4, LastWeekday: 4}

	// Right edge of week 1 down to the first day's row, left to week 0,
	// down to the grid bottom, across to the last week, up past the last
	// day's row, right one column, up to the top, and close.
	assert.Equal(t, "M10,20 H0 V70 H40 V50 H50 V0 H10 Z", m.PathData(10))
}

func TestDefaultTooltipIsDate(t *testing.T) {
	g := NewYearGrid(2014, 12)
	for _, c := range g.Cells {
		assert.Equal(t, c.Key(), c.Tooltip)
		assert.Equal(t, 0, c.Bucket)
	}
}

func TestNewGridsRange(t *testing.T) {
	grids := NewGrids(2011, 2015, 12)
	require.Len(t, grids, 5)
	for i, g := range grids {
		assert.Equal(t, 2011+i, g.Year)
	}
}
