package repositories

import (
	"context"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// GitRepository abstracts the on-disk git repositories, one per project.
//
// Every method validates its names and paths before any I/O and makes sure the
// project repository is initialized first. Read methods are fail-soft: git
// failures degrade to empty results and the returned error is only ever a
// validation error. Write methods surface every failure.
type GitRepository interface {
	// State reports the lifecycle state of the project repository without changing it.
	State(ctx context.Context, projectID string) entities.RepoState

	// InitRepo initializes the project repository with an initial commit; no-op when already done.
	InitRepo(ctx context.Context, projectID string) error

	// CreateBranch creates name from the ref from. An existing branch is reported with Existed set.
	CreateBranch(ctx context.Context, projectID, name, from string) (entities.BranchResult, error)

	// GetBranches lists local and remote branch names, falling back to the default branch.
	GetBranches(ctx context.Context, projectID string) ([]string, error)

	// GetDiff compares head against the merge base with base (three-dot comparison).
	GetDiff(ctx context.Context, projectID, base, head string) (entities.GitDiff, error)

	// GetCommitsBetween lists non-merge commits reachable from head but not from base.
	GetCommitsBetween(ctx context.Context, projectID, base, head string) ([]entities.GitCommit, error)

	// Merge merges head into base with a dedicated merge commit. On conflict the
	// merge is aborted and a *entities.ConflictError is returned with the result.
	Merge(ctx context.Context, projectID, base, head, message string) (entities.MergeResult, error)

	// CommitFile writes one file on branch and commits it, returning the branch tip hash.
	CommitFile(
		ctx context.Context, projectID, branch, path, content, message string, author entities.Author,
	) (string, error)

	// UploadFile commits raw bytes read from an upload as the content of path.
	UploadFile(
		ctx context.Context, projectID, branch, path string, data []byte, message string, author entities.Author,
	) (string, error)

	// CommitChanges applies a change set to the working tree of branch, creating
	// the branch from the default branch when needed, and commits it.
	CommitChanges(
		ctx context.Context, projectID, branch, message string, author entities.Author, changes []entities.FileInput,
	) (string, error)

	// GetFileContent reads path at the tip of branch; absent and empty files both read as "".
	GetFileContent(ctx context.Context, projectID, branch, path string) (string, error)

	// ShowFile reads path at any revision (branch or commit hash).
	ShowFile(ctx context.Context, projectID, revision, path string) (string, error)

	// GetCommitHistory returns at most limit commits of branch, newest first.
	GetCommitHistory(ctx context.Context, projectID, branch string, limit int) ([]entities.GitCommit, error)

	// GetLog returns at most limit commits of revision touching path ("" for all paths).
	GetLog(ctx context.Context, projectID, revision, path string, limit int) ([]entities.GitCommit, error)

	// GetLatestCommit returns the tip commit of branch, nil when it cannot be read.
	GetLatestCommit(ctx context.Context, projectID, branch string) (*entities.GitCommit, error)

	// ListFiles lists one directory level of branch.
	ListFiles(ctx context.Context, projectID, branch, dir string) ([]entities.TreeEntry, error)

	// GetRepoStats counts commits, contributors and tracked files.
	GetRepoStats(ctx context.Context, projectID string) (entities.RepoStats, error)

	// SnapshotTree returns the content of every text file at the tip of branch, keyed by path.
	// It is the one read that surfaces git failures instead of degrading to an empty result.
	SnapshotTree(ctx context.Context, projectID, branch string) (map[string]string, error)
}
