package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// DiffInput selects two branches and where to compare them.
type DiffInput struct {
	RepositoryID string
	Base         string
	Head         string
	Source       entities.DiffSource
}

// Diff is the interface for comparing two branches.
type Diff interface {
	Execute(ctx context.Context, input DiffInput) ([]entities.FileDiff, error)
}

// DiffCommand compares two branches either from the File documents of the
// mirror or from git refs. The two sources never mix in one result.
type DiffCommand struct {
	repos repositories.RepositoryStore
	files repositories.FileStore
	git   repositories.GitRepository
}

// NewDiffCommand creates a new DiffCommand.
func NewDiffCommand(
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
) *DiffCommand {
	return &DiffCommand{repos: repos, files: files, git: git}
}

func (it *DiffCommand) Execute(ctx context.Context, input DiffInput) ([]entities.FileDiff, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	if err = entities.ValidateBranchName(input.Base); err != nil {
		return nil, err
	}
	if err = entities.ValidateBranchName(input.Head); err != nil {
		return nil, err
	}

	switch input.Source {
	case entities.DiffSourceContent, "":
		return it.contentDiff(ctx, repo.ID, input.Base, input.Head)
	case entities.DiffSourceGit:
		return it.gitDiff(ctx, repo.ProjectID, input.Base, input.Head)
	default:
		return nil, &entities.ValidationError{Field: "diff source", Value: string(input.Source), Reason: "unknown"}
	}
}

// contentDiff compares the stored content of both branches path by path.
// Presence decides the status: head only is added, base only is deleted.
func (it *DiffCommand) contentDiff(ctx context.Context, repositoryID, base, head string) ([]entities.FileDiff, error) {
	baseFiles, err := it.snapshot(ctx, repositoryID, base)
	if err != nil {
		return nil, err
	}
	headFiles, err := it.snapshot(ctx, repositoryID, head)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(baseFiles)+len(headFiles))
	for path := range headFiles {
		paths = append(paths, path)
	}
	for path := range baseFiles {
		if _, inHead := headFiles[path]; !inHead {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	diffs := make([]entities.FileDiff, 0)
	for _, path := range paths {
		oldContent, inBase := baseFiles[path]
		newContent, inHead := headFiles[path]

		var status entities.DiffStatus
		switch {
		case !inBase:
			status = entities.DiffAdded
		case !inHead:
			status = entities.DiffDeleted
		case oldContent != newContent:
			status = entities.DiffModified
		default:
			continue
		}

		patch, patchErr := unifiedPatch(path, oldContent, newContent, status)
		if patchErr != nil {
			return nil, fmt.Errorf("failed to render diff of %q: %w", path, patchErr)
		}
		stats := lineStats(oldContent, newContent)
		diffs = append(diffs, entities.FileDiff{
			FilePath:  path,
			Patch:     patch,
			Status:    status,
			Additions: stats.Additions,
			Deletions: stats.Deletions,
		})
	}
	return diffs, nil
}

func (it *DiffCommand) snapshot(ctx context.Context, repositoryID, branch string) (map[string]string, error) {
	docs, err := it.files.ListByBranch(ctx, repositoryID, branch)
	if err != nil {
		return nil, err
	}
	contents := make(map[string]string, len(docs))
	for _, doc := range docs {
		if !doc.IsDirectory {
			contents[doc.Path] = doc.Content
		}
	}
	return contents, nil
}

func (it *DiffCommand) gitDiff(ctx context.Context, projectID, base, head string) ([]entities.FileDiff, error) {
	diff, err := it.git.GetDiff(ctx, projectID, base, head)
	if err != nil {
		return nil, err
	}

	diffs := make([]entities.FileDiff, 0, len(diff.Files))
	for _, file := range diff.Files {
		diffs = append(diffs, entities.FileDiff{
			FilePath:  file.Path,
			Patch:     file.Patch,
			Status:    file.Status,
			Additions: file.Additions,
			Deletions: file.Deletions,
		})
	}
	return diffs, nil
}
