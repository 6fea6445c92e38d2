package heatmap

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Row is one parsed record of the daily stats dataset.
type Row struct {
	Date    string
	Commits int
}

// Index maps an ISO date key to the rows sharing it, in file order.
// When a key appears more than once, only the first row is used at bind time.
type Index map[string][]Row

// LoadCSV reads and indexes a daily stats CSV file. A missing file and a
// malformed file are the same failure class: the caller must not bind
// after a non-nil error.
func LoadCSV(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load daily stats: %w", err)
	}
	defer f.Close()

	idx, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load daily stats %s: %w", path, err)
	}
	return idx, nil
}

// ParseCSV parses a comma-separated dataset with a header row containing at
// least `date` and `commits` columns. Extra columns are ignored.
func ParseCSV(r io.Reader) (Index, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateCol, commitsCol := -1, -1
	for i, name := range header {
		switch name {
		case "date":
			dateCol = i
		case "commits":
			commitsCol = i
		}
	}
	if dateCol < 0 || commitsCol < 0 {
		return nil, fmt.Errorf("header missing required columns date/commits: %v", header)
	}

	idx := make(Index)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if len(record) <= dateCol || len(record) <= commitsCol {
			return nil, fmt.Errorf("line %d: too few fields", line)
		}

		date := record[dateCol]
		if _, err := time.Parse(DateFormat, date); err != nil {
			return nil, fmt.Errorf("line %d: bad date %q: %w", line, date, err)
		}

		commits, err := strconv.Atoi(record[commitsCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad commit count %q: %w", line, record[commitsCol], err)
		}
		if commits < 0 {
			return nil, fmt.Errorf("line %d: negative commit count %d", line, commits)
		}

		idx[date] = append(idx[date], Row{Date: date, Commits: commits})
	}

	return idx, nil
}
