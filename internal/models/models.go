package models

import "time"

// Commit is a single commit attributed to the configured user, discovered
// either through the GitHub API or a locally cloned repository.
type Commit struct {
	SHA       string    `db:"sha" json:"hash"`
	Timestamp time.Time `db:"timestamp" json:"datetime"`
	Public    bool      `db:"public" json:"public"`
	Additions int       `db:"additions" json:"additions"`
	Deletions int       `db:"deletions" json:"deletions"`

	// Filled only for commits in public repositories.
	Message string `db:"message" json:"message,omitempty"`
	Repo    string `db:"repo" json:"repo,omitempty"`
	Link    string `db:"link" json:"link,omitempty"`
}

// DailyStat is the commit count for one UTC calendar date.
type DailyStat struct {
	Date    string `db:"date" json:"date"` // ISO date, YYYY-MM-DD
	Commits int    `db:"commits" json:"commits"`
}

// ProjectStat is the public commit count for one repository.
type ProjectStat struct {
	Project string `db:"project" json:"project"`
	Commits int    `db:"commits" json:"commits"`
}
