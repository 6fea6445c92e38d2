package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/azolotov/commitmap/internal/models"
)

// Client wraps the GitHub API client with rate limiting and concurrency
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	maxWorkers  int
	username    string
	logger      *logrus.Logger
}

// commitRef pairs a discovered commit with the repository it came from, so
// the per-commit stats endpoint can be called later.
type commitRef struct {
	commit *models.Commit
	owner  string
	name   string
}

// NewClient creates a new GitHub client with rate limiting. Commits are
// attributed to username; token must belong to the same account so private
// repositories are visible.
func NewClient(token, username string, rateLimit int, logger *logrus.Logger) *Client {
	client := github.NewClient(nil).WithAuthToken(token)

	return &Client{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		maxWorkers:  10, // Concurrent per-commit stats calls
		username:    username,
		logger:      logger,
	}
}

// FetchUserCommits walks every repository of the authenticated user and
// collects the commits authored by the configured username. Message, repo
// name, and link are kept only for commits in public repositories; the
// private ones contribute timestamps and line counts and nothing else.
func (c *Client) FetchUserCommits(ctx context.Context) ([]*models.Commit, error) {
	repos, err := c.fetchRepos(ctx)
	if err != nil {
		return nil, err
	}

	var refs []commitRef
	for _, repo := range repos {
		repoRefs, err := c.fetchRepoCommits(ctx, repo)
		if err != nil {
			return nil, err
		}
		refs = append(refs, repoRefs...)
	}

	if err := c.fillCommitStats(ctx, refs); err != nil {
		return nil, err
	}

	commits := make([]*models.Commit, len(refs))
	for i, ref := range refs {
		commits[i] = ref.commit
	}
	return commits, nil
}

func (c *Client) fetchRepos(ctx context.Context) ([]*github.Repository, error) {
	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var allRepos []*github.Repository
	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		// Empty user means the authenticated user, which includes private
		// repositories the token can see.
		repos, resp, err := c.client.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("fetch repositories: %w", err)
		}
		allRepos = append(allRepos, repos...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (c *Client) fetchRepoCommits(ctx context.Context, repo *github.Repository) ([]commitRef, error) {
	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()
	isPublic := !repo.GetPrivate()

	opts := &github.CommitsListOptions{
		Author:      c.username,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var refs []commitRef
	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		page, resp, err := c.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			// Empty repositories answer 409; nothing to collect there.
			if resp != nil && resp.StatusCode == 409 {
				return nil, nil
			}
			return nil, fmt.Errorf("fetch commits for %s: %w", repo.GetFullName(), err)
		}

		for _, rc := range page {
			commit := &models.Commit{
				SHA:       rc.GetSHA(),
				Timestamp: rc.GetCommit().GetAuthor().GetDate().Time.UTC(),
				Public:    isPublic,
			}
			if isPublic {
				commit.Message = rc.GetCommit().GetMessage()
				commit.Repo = repo.GetFullName()
				commit.Link = rc.GetHTMLURL()
			}
			refs = append(refs, commitRef{commit: commit, owner: owner, name: name})

			c.logger.WithFields(logrus.Fields{
				"sha":  commit.SHA,
				"repo": repo.GetFullName(),
			}).Debug("Discovered commit")
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

// fillCommitStats resolves additions/deletions with a bounded worker pool;
// the commit list endpoint does not include line stats.
func (c *Client) fillCommitStats(ctx context.Context, refs []commitRef) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			rc, _, err := c.client.Repositories.GetCommit(ctx, ref.owner, ref.name, ref.commit.SHA, nil)
			if err != nil {
				return fmt.Errorf("fetch stats for %s: %w", ref.commit.SHA, err)
			}

			ref.commit.Additions = rc.GetStats().GetAdditions()
			ref.commit.Deletions = rc.GetStats().GetDeletions()
			return nil
		})
	}

	return g.Wait()
}
