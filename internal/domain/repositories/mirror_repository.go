package repositories

import (
	"context"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// RepositoryStore persists Repository documents, unique per project.
type RepositoryStore interface {
	// Create stores a new document; entities.ErrAlreadyExists when the project already has one.
	Create(ctx context.Context, repo *entities.Repository) error
	Get(ctx context.Context, id string) (*entities.Repository, error)
	GetByProject(ctx context.Context, projectID string) (*entities.Repository, error)
	// UpdateBranchHead moves (or adds) one branch head pointer.
	UpdateBranchHead(ctx context.Context, id, branch, commitHash string) error
	// Delete removes the repository together with its commits, files and comments.
	Delete(ctx context.Context, id string) error
}

// CommitStore persists immutable Commit documents.
type CommitStore interface {
	Create(ctx context.Context, commit *entities.Commit) error
	Get(ctx context.Context, repositoryID, id string) (*entities.Commit, error)
	GetByHash(ctx context.Context, repositoryID, hash string) (*entities.Commit, error)
	// ListByBranch returns at most limit commits of branch, newest first.
	ListByBranch(ctx context.Context, repositoryID, branch string, limit int) ([]entities.Commit, error)
}

// FileStore persists File documents keyed by (repository, branch, path).
type FileStore interface {
	Get(ctx context.Context, id string) (*entities.File, error)
	GetByPath(ctx context.Context, repositoryID, branch, path string) (*entities.File, error)
	// Upsert inserts or replaces the document at (repository, branch, path), keeping its id.
	Upsert(ctx context.Context, file *entities.File) error
	Delete(ctx context.Context, repositoryID, branch, path string) error
	// ListByBranch returns every document of branch ordered by path.
	ListByBranch(ctx context.Context, repositoryID, branch string) ([]entities.File, error)
}

// CommentStore persists line comments on File documents.
type CommentStore interface {
	Create(ctx context.Context, comment *entities.Comment) error
	Get(ctx context.Context, id string) (*entities.Comment, error)
	ListByFile(ctx context.Context, fileID string) ([]entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) error
	Delete(ctx context.Context, id string) error
}
