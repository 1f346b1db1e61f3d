package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// CreateRepositoryInput describes a repository to create for a project.
type CreateRepositoryInput struct {
	ProjectID   string
	Name        string
	Description string
	Owner       string
}

// CreateRepository is the interface for creating a project repository.
type CreateRepository interface {
	Execute(ctx context.Context, input CreateRepositoryInput) (*entities.Repository, error)
}

// CreateRepositoryCommand stores the Repository document of a project and
// initializes its on-disk repository.
type CreateRepositoryCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	files    repositories.FileStore
	git      repositories.GitRepository
}

// NewCreateRepositoryCommand creates a new CreateRepositoryCommand.
func NewCreateRepositoryCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
) *CreateRepositoryCommand {
	return &CreateRepositoryCommand{settings: settings, repos: repos, files: files, git: git}
}

// Execute creates the repository. A project has at most one repository.
// Initializing git is best-effort; every git operation initializes lazily anyway.
func (it *CreateRepositoryCommand) Execute(
	ctx context.Context,
	input CreateRepositoryInput,
) (*entities.Repository, error) {
	if err := entities.ValidateProjectID(input.ProjectID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = input.ProjectID
	}

	now := time.Now().UTC()
	repo := &entities.Repository{
		ProjectID:     input.ProjectID,
		Name:          name,
		Description:   input.Description,
		Owner:         input.Owner,
		DefaultBranch: it.settings.DefaultBranch,
		Branches:      []entities.BranchHead{{Name: it.settings.DefaultBranch}},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := it.repos.Create(ctx, repo); err != nil {
		return nil, fmt.Errorf("failed to create repository for project %q: %w", input.ProjectID, err)
	}
	logger.Infof("Created repository %q (%s) for project %q", repo.Name, repo.ID, repo.ProjectID)

	if err := it.git.InitRepo(ctx, repo.ProjectID); err != nil {
		logger.Warnf("Git initialization of project %q deferred: %v", repo.ProjectID, err)
		return repo, nil
	}

	// seed the mirror with the initial tree so browsing does not start empty
	snapshot, err := it.git.SnapshotTree(ctx, repo.ProjectID, repo.DefaultBranch)
	if err != nil {
		logger.Warnf("Could not seed the mirror of %q: %v", repo.ProjectID, err)
		return repo, nil
	}
	if _, err = reconcileBranch(ctx, it.files, repo.ID, repo.DefaultBranch, snapshot, it.settings.BotName); err != nil {
		logger.Warnf("Could not seed the mirror of %q: %v", repo.ProjectID, err)
	}

	return repo, nil
}

// GetRepository is the interface for looking a repository up.
type GetRepository interface {
	Execute(ctx context.Context, ref string) (*entities.Repository, error)
}

// GetRepositoryCommand finds a repository by document id or by project id.
type GetRepositoryCommand struct {
	repos repositories.RepositoryStore
}

// NewGetRepositoryCommand creates a new GetRepositoryCommand.
func NewGetRepositoryCommand(repos repositories.RepositoryStore) *GetRepositoryCommand {
	return &GetRepositoryCommand{repos: repos}
}

func (it *GetRepositoryCommand) Execute(ctx context.Context, ref string) (*entities.Repository, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, &entities.ValidationError{Field: "repository", Value: ref, Reason: "must not be empty"}
	}
	return findRepository(ctx, it.repos, ref)
}
