package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// ListBranches is the interface for listing the branches of a repository.
type ListBranches interface {
	Execute(ctx context.Context, repositoryID string) ([]string, error)
}

// ListBranchesCommand lists the branches known to git, followed by those only
// the Repository document knows about.
type ListBranchesCommand struct {
	repos repositories.RepositoryStore
	git   repositories.GitRepository
}

// NewListBranchesCommand creates a new ListBranchesCommand.
func NewListBranchesCommand(repos repositories.RepositoryStore, git repositories.GitRepository) *ListBranchesCommand {
	return &ListBranchesCommand{repos: repos, git: git}
}

func (it *ListBranchesCommand) Execute(ctx context.Context, repositoryID string) ([]string, error) {
	repo, err := findRepository(ctx, it.repos, repositoryID)
	if err != nil {
		return nil, err
	}

	branches, err := it.git.GetBranches(ctx, repo.ProjectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(branches))
	for _, name := range branches {
		seen[name] = true
	}
	for _, name := range repo.BranchNames() {
		if !seen[name] {
			seen[name] = true
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// CreateBranchInput names a branch to create and its starting point.
type CreateBranchInput struct {
	RepositoryID string
	Name         string
	From         string
	Actor        string
}

// CreateBranch is the interface for creating a branch.
type CreateBranch interface {
	Execute(ctx context.Context, input CreateBranchInput) (entities.BranchResult, error)
}

// CreateBranchCommand creates the branch in git and forks the File documents
// of the starting branch. Creating an existing branch changes nothing.
type CreateBranchCommand struct {
	repos    repositories.RepositoryStore
	files    repositories.FileStore
	git      repositories.GitRepository
	notifier repositories.NotifierRepository
}

// NewCreateBranchCommand creates a new CreateBranchCommand.
func NewCreateBranchCommand(
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
	notifier repositories.NotifierRepository,
) *CreateBranchCommand {
	return &CreateBranchCommand{repos: repos, files: files, git: git, notifier: notifier}
}

func (it *CreateBranchCommand) Execute(ctx context.Context, input CreateBranchInput) (entities.BranchResult, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return entities.BranchResult{}, err
	}
	from, err := branchOrDefault(repo, input.From)
	if err != nil {
		return entities.BranchResult{}, err
	}

	result, err := it.git.CreateBranch(ctx, repo.ProjectID, input.Name, from)
	if err != nil || result.Existed {
		return result, err
	}

	if err = forkBranchDocuments(ctx, it.repos, it.files, repo, from, input.Name); err != nil {
		return result, fmt.Errorf("failed to fork documents of %q: %w", from, err)
	}

	it.notifier.Publish(ctx, entities.Event{
		Type:         entities.EventBranchCreated,
		RepositoryID: repo.ID,
		ProjectID:    repo.ProjectID,
		Branch:       input.Name,
		Actor:        input.Actor,
		Subject:      result.Hash,
		Message:      fmt.Sprintf("Created branch %s from %s", input.Name, from),
		OccurredAt:   time.Now().UTC(),
	})
	return result, nil
}

// MergeBranchesInput merges Head into Base.
type MergeBranchesInput struct {
	RepositoryID string
	Base         string
	Head         string
	Message      string
	Actor        string
}

// MergeBranches is the interface for merging two branches.
type MergeBranches interface {
	Execute(ctx context.Context, input MergeBranchesInput) (entities.MergeResult, error)
}

// MergeBranchesCommand merges in git, then rebuilds the File documents of the
// base branch from the merged tree. A conflict leaves both stores untouched.
type MergeBranchesCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	files    repositories.FileStore
	git      repositories.GitRepository
	notifier repositories.NotifierRepository
}

// NewMergeBranchesCommand creates a new MergeBranchesCommand.
func NewMergeBranchesCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
	notifier repositories.NotifierRepository,
) *MergeBranchesCommand {
	return &MergeBranchesCommand{settings: settings, repos: repos, files: files, git: git, notifier: notifier}
}

func (it *MergeBranchesCommand) Execute(ctx context.Context, input MergeBranchesInput) (entities.MergeResult, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return entities.MergeResult{}, err
	}

	result, err := it.git.Merge(ctx, repo.ProjectID, input.Base, input.Head, input.Message)
	if err != nil {
		var conflictErr *entities.ConflictError
		if errors.As(err, &conflictErr) {
			logger.Infof("Merge of %q into %q in %q stopped on %d conflict(s)",
				input.Head, input.Base, repo.ProjectID, len(conflictErr.Paths))
		}
		return result, err
	}

	ctx = context.WithoutCancel(ctx)
	snapshot, err := it.git.SnapshotTree(ctx, repo.ProjectID, input.Base)
	if err == nil {
		_, err = reconcileBranch(ctx, it.files, repo.ID, input.Base, snapshot, it.settings.BotName)
	}
	if err != nil {
		logger.Warnf("Documents of %q in %q not refreshed after merge: %v", input.Base, repo.ProjectID, err)
	}

	it.notifier.Publish(ctx, entities.Event{
		Type:         entities.EventBranchMerged,
		RepositoryID: repo.ID,
		ProjectID:    repo.ProjectID,
		Branch:       input.Base,
		Actor:        input.Actor,
		Subject:      result.Hash,
		Message:      fmt.Sprintf("Merged %s into %s", input.Head, input.Base),
		OccurredAt:   time.Now().UTC(),
	})
	return result, nil
}

// CompareBranchesInput selects the commits of Head missing from Base.
type CompareBranchesInput struct {
	RepositoryID string
	Base         string
	Head         string
}

// CompareBranches is the interface for listing the commits a merge would bring in.
type CompareBranches interface {
	Execute(ctx context.Context, input CompareBranchesInput) ([]entities.GitCommit, error)
}

// CompareBranchesCommand lists the non-merge commits of Head that Base lacks.
type CompareBranchesCommand struct {
	repos repositories.RepositoryStore
	git   repositories.GitRepository
}

// NewCompareBranchesCommand creates a new CompareBranchesCommand.
func NewCompareBranchesCommand(
	repos repositories.RepositoryStore,
	git repositories.GitRepository,
) *CompareBranchesCommand {
	return &CompareBranchesCommand{repos: repos, git: git}
}

func (it *CompareBranchesCommand) Execute(
	ctx context.Context,
	input CompareBranchesInput,
) ([]entities.GitCommit, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	return it.git.GetCommitsBetween(ctx, repo.ProjectID, input.Base, input.Head)
}
