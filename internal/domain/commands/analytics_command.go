package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// Analytics is the interface for the history summary of a repository.
type Analytics interface {
	Execute(ctx context.Context, repositoryID string) (entities.RepositoryAnalytics, error)
}

// AnalyticsCommand walks the history of every branch, a bounded number of
// branches at a time, and counts each commit once across branches.
type AnalyticsCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	git      repositories.GitRepository
}

// NewAnalyticsCommand creates a new AnalyticsCommand.
func NewAnalyticsCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	git repositories.GitRepository,
) *AnalyticsCommand {
	return &AnalyticsCommand{settings: settings, repos: repos, git: git}
}

type branchHistory struct {
	branch  string
	commits []entities.GitCommit
}

func (it *AnalyticsCommand) Execute(ctx context.Context, repositoryID string) (entities.RepositoryAnalytics, error) {
	analytics := entities.RepositoryAnalytics{
		CommitsPerBranch: make(map[string]int),
		Contributors:     make([]entities.ContributorStats, 0),
	}

	repo, err := findRepository(ctx, it.repos, repositoryID)
	if err != nil {
		return analytics, err
	}
	branches, err := it.git.GetBranches(ctx, repo.ProjectID)
	if err != nil {
		return analytics, err
	}
	analytics.Branches = len(branches)

	p := pool.NewWithResults[branchHistory]().
		WithContext(ctx).
		WithMaxGoroutines(it.settings.AnalyticsWorkers)
	for _, branch := range branches {
		p.Go(func(ctx context.Context) (branchHistory, error) {
			commits, historyErr := it.git.GetCommitHistory(ctx, repo.ProjectID, branch, entities.MaxHistoryLimit)
			return branchHistory{branch: branch, commits: commits}, historyErr
		})
	}
	histories, err := p.Wait()
	if err != nil {
		return analytics, err
	}

	seen := make(map[string]bool)
	perAuthor := make(map[string]int)
	for _, history := range histories {
		analytics.CommitsPerBranch[history.branch] = len(history.commits)
		for _, commit := range history.commits {
			key := commitIdentity(commit)
			if seen[key] {
				continue
			}
			seen[key] = true
			analytics.TotalCommits++
			perAuthor[commit.Author]++
			analytics.FirstCommitAt = earliest(analytics.FirstCommitAt, commit.Date)
			analytics.LastCommitAt = latest(analytics.LastCommitAt, commit.Date)
		}
	}

	for name, count := range perAuthor {
		analytics.Contributors = append(analytics.Contributors, entities.ContributorStats{Name: name, Commits: count})
	}
	sort.Slice(analytics.Contributors, func(i, j int) bool {
		a, b := analytics.Contributors[i], analytics.Contributors[j]
		if a.Commits != b.Commits {
			return a.Commits > b.Commits
		}
		return a.Name < b.Name
	})

	return analytics, nil
}

// commitIdentity is the composite a commit is deduplicated on across branches.
func commitIdentity(commit entities.GitCommit) string {
	return fmt.Sprintf("%s\x00%s\x00%d\x00%s", commit.Hash, commit.Author, commit.Date.Unix(), commit.Message)
}

func earliest(current *time.Time, candidate time.Time) *time.Time {
	if candidate.IsZero() || (current != nil && !candidate.Before(*current)) {
		return current
	}
	return &candidate
}

func latest(current *time.Time, candidate time.Time) *time.Time {
	if candidate.IsZero() || (current != nil && !candidate.After(*current)) {
		return current
	}
	return &candidate
}
