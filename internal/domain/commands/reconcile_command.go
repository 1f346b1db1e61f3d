package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// ReconcileInput selects the branch whose File documents are rebuilt.
type ReconcileInput struct {
	RepositoryID string
	Branch       string
}

// Reconcile is the interface for rebuilding the mirror of a branch from git.
type Reconcile interface {
	Execute(ctx context.Context, input ReconcileInput) (entities.ReconcileReport, error)
}

// ReconcileCommand rewrites the File documents of a branch from the git tree at
// its tip, repairing drift left by failed git steps. Commit documents are kept.
type ReconcileCommand struct {
	settings *entities.Settings
	repos    repositories.RepositoryStore
	files    repositories.FileStore
	git      repositories.GitRepository
}

// NewReconcileCommand creates a new ReconcileCommand.
func NewReconcileCommand(
	settings *entities.Settings,
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
) *ReconcileCommand {
	return &ReconcileCommand{settings: settings, repos: repos, files: files, git: git}
}

func (it *ReconcileCommand) Execute(ctx context.Context, input ReconcileInput) (entities.ReconcileReport, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return entities.ReconcileReport{}, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return entities.ReconcileReport{}, err
	}

	snapshot, err := it.git.SnapshotTree(ctx, repo.ProjectID, branch)
	if err != nil {
		return entities.ReconcileReport{Branch: branch}, fmt.Errorf("failed to read tree of %q: %w", branch, err)
	}

	report, err := reconcileBranch(context.WithoutCancel(ctx), it.files, repo.ID, branch, snapshot, it.settings.BotName)
	if err != nil {
		return report, err
	}
	if _, known := repo.Branch(branch); !known {
		if err = it.repos.UpdateBranchHead(ctx, repo.ID, branch, ""); err != nil {
			return report, err
		}
	}

	logger.Infof("Reconciled %q in %q: %d added, %d updated, %d removed",
		branch, repo.ProjectID, report.Added, report.Updated, report.Removed)
	return report, nil
}
