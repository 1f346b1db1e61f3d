package commands

import (
	"context"
	"strings"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// HistoryInput selects commits of a branch, optionally touching one path.
type HistoryInput struct {
	RepositoryID string
	Branch       string
	Path         string
	Limit        int
}

// ListCommits is the interface for the commit documents of a branch.
type ListCommits interface {
	Execute(ctx context.Context, input HistoryInput) ([]entities.Commit, error)
}

// ListCommitsCommand reads the Commit documents of a branch, newest first.
// Git's own initial commit has no document and never shows up here.
type ListCommitsCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	commits  repositories.CommitStore
}

// NewListCommitsCommand creates a new ListCommitsCommand.
func NewListCommitsCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	commits repositories.CommitStore,
) *ListCommitsCommand {
	return &ListCommitsCommand{settings: settings, repos: repos, commits: commits}
}

func (it *ListCommitsCommand) Execute(ctx context.Context, input HistoryInput) ([]entities.Commit, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return nil, err
	}
	limit := it.settings.EffectiveHistoryLimit(input.Limit)

	if input.Path == "" {
		return it.commits.ListByBranch(ctx, repo.ID, branch, limit)
	}
	if err = entities.ValidateFilePath(input.Path); err != nil {
		return nil, err
	}

	all, err := it.commits.ListByBranch(ctx, repo.ID, branch, 0)
	if err != nil {
		return nil, err
	}
	touching := make([]entities.Commit, 0)
	for _, commit := range all {
		for _, change := range commit.FilesChanged {
			if change.Path == input.Path {
				touching = append(touching, commit)
				break
			}
		}
		if len(touching) == limit {
			break
		}
	}
	return touching, nil
}

// GitLog is the interface for the git history of a branch.
type GitLog interface {
	Execute(ctx context.Context, input HistoryInput) ([]entities.GitCommit, error)
}

// GitLogCommand reads history straight from git, merges and the initial commit included.
type GitLogCommand struct {
	repos repositories.RepositoryStore
	git   repositories.GitRepository
}

// NewGitLogCommand creates a new GitLogCommand.
func NewGitLogCommand(repos repositories.RepositoryStore, git repositories.GitRepository) *GitLogCommand {
	return &GitLogCommand{repos: repos, git: git}
}

func (it *GitLogCommand) Execute(ctx context.Context, input HistoryInput) ([]entities.GitCommit, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return nil, err
	}

	if input.Path == "" {
		return it.git.GetCommitHistory(ctx, repo.ProjectID, branch, input.Limit)
	}
	return it.git.GetLog(ctx, repo.ProjectID, branch, input.Path, input.Limit)
}

// Stats is the interface for the counters of a repository.
type Stats interface {
	Execute(ctx context.Context, repositoryID string) (entities.RepositoryStats, error)
}

// StatsCommand gathers git counters and the latest commit of the default branch.
type StatsCommand struct {
	repos repositories.RepositoryStore
	git   repositories.GitRepository
}

// NewStatsCommand creates a new StatsCommand.
func NewStatsCommand(repos repositories.RepositoryStore, git repositories.GitRepository) *StatsCommand {
	return &StatsCommand{repos: repos, git: git}
}

func (it *StatsCommand) Execute(ctx context.Context, repositoryID string) (entities.RepositoryStats, error) {
	var stats entities.RepositoryStats
	repo, err := findRepository(ctx, it.repos, repositoryID)
	if err != nil {
		return stats, err
	}

	if stats.RepoStats, err = it.git.GetRepoStats(ctx, repo.ProjectID); err != nil {
		return stats, err
	}
	branches, err := it.git.GetBranches(ctx, repo.ProjectID)
	if err != nil {
		return stats, err
	}
	stats.Branches = len(branches)
	if stats.LatestCommit, err = it.git.GetLatestCommit(ctx, repo.ProjectID, repo.DefaultBranch); err != nil {
		return stats, err
	}
	return stats, nil
}

// GetCommit is the interface for one Commit document.
type GetCommit interface {
	Execute(ctx context.Context, repositoryID, ref string) (*entities.Commit, error)
}

// GetCommitCommand resolves a Commit document by its hash, then by its id.
type GetCommitCommand struct {
	repos   repositories.RepositoryStore
	commits repositories.CommitStore
}

// NewGetCommitCommand creates a new GetCommitCommand.
func NewGetCommitCommand(repos repositories.RepositoryStore, commits repositories.CommitStore) *GetCommitCommand {
	return &GetCommitCommand{repos: repos, commits: commits}
}

func (it *GetCommitCommand) Execute(ctx context.Context, repositoryID, ref string) (*entities.Commit, error) {
	repo, err := findRepository(ctx, it.repos, repositoryID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(ref) == "" {
		return nil, &entities.ValidationError{Field: "commit", Value: ref, Reason: "must not be empty"}
	}

	commit, err := it.commits.GetByHash(ctx, repo.ID, ref)
	if err == nil || !entities.IsNotFound(err) {
		return commit, err
	}
	return it.commits.Get(ctx, repo.ID, ref)
}
