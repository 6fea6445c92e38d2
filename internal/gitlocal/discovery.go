package gitlocal

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/azolotov/commitmap/internal/models"
)

// Discovery finds the user's commits in repositories already cloned under a
// local directory, for sources that have no usable listing API. It shells
// out to git rather than reimplementing log parsing.
type Discovery struct {
	reposDir     string
	authorEmails []string
	logger       *logrus.Logger
}

// NewDiscovery creates a Discovery over reposDir. Commits are matched by
// the given author emails across all branches.
func NewDiscovery(reposDir string, authorEmails []string, logger *logrus.Logger) *Discovery {
	return &Discovery{
		reposDir:     reposDir,
		authorEmails: authorEmails,
		logger:       logger,
	}
}

// FetchCommits walks every repository under the repos directory and returns
// the commits authored by any of the configured emails.
func (d *Discovery) FetchCommits(ctx context.Context) ([]*models.Commit, error) {
	repos, err := d.findRepos()
	if err != nil {
		return nil, err
	}

	var commits []*models.Commit
	for _, repoPath := range repos {
		name, _ := filepath.Rel(d.reposDir, repoPath)
		repoCommits, err := d.repoCommits(ctx, repoPath, name)
		if err != nil {
			return nil, err
		}
		commits = append(commits, repoCommits...)

		d.logger.WithFields(logrus.Fields{
			"repo":    name,
			"commits": len(repoCommits),
		}).Debug("Scanned local repository")
	}

	return commits, nil
}

// findRepos returns every directory under reposDir containing a .git entry.
// Nested checkouts are not descended into.
func (d *Discovery) findRepos() ([]string, error) {
	if _, err := os.Stat(d.reposDir); os.IsNotExist(err) {
		return nil, nil
	}

	var repos []string
	err := filepath.WalkDir(d.reposDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, ".git")); statErr == nil {
			repos = append(repos, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan repos directory %s: %w", d.reposDir, err)
	}

	sort.Strings(repos)
	return repos, nil
}

func (d *Discovery) repoCommits(ctx context.Context, repoPath, name string) ([]*models.Commit, error) {
	revs := make(map[string]bool)
	for _, email := range d.authorEmails {
		out, err := gitOutput(ctx, repoPath, "log", "--all", "--pretty=%H", "--author="+email)
		if err != nil {
			return nil, fmt.Errorf("git log in %s: %w", repoPath, err)
		}
		for _, line := range strings.Split(out, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				revs[line] = true
			}
		}
	}

	ordered := make([]string, 0, len(revs))
	for rev := range revs {
		ordered = append(ordered, rev)
	}
	sort.Strings(ordered)

	var commits []*models.Commit
	for _, rev := range ordered {
		commit, err := d.showCommit(ctx, repoPath, name, rev)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// showCommit reads a single commit's metadata. Fields are separated by the
// ASCII unit separator so messages with newlines survive intact.
func (d *Discovery) showCommit(ctx context.Context, repoPath, name, rev string) (*models.Commit, error) {
	out, err := gitOutput(ctx, repoPath, "show", "-s", "--format=%H%x1f%aI%x1f%B", rev)
	if err != nil {
		return nil, fmt.Errorf("git show %s in %s: %w", rev, repoPath, err)
	}

	parts := strings.SplitN(out, "\x1f", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("unexpected git show output for %s in %s", rev, repoPath)
	}

	when, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return nil, fmt.Errorf("parse author date %q for %s: %w", parts[1], rev, err)
	}

	return &models.Commit{
		SHA:       parts[0],
		Timestamp: when.UTC(),
		Public:    true,
		Message:   strings.TrimRight(parts[2], "\n"),
		Repo:      name,
	}, nil
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w (stderr: %s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
