package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

const defaultSearchLimit = 20

// ListFilesInput selects one directory level of a branch.
type ListFilesInput struct {
	RepositoryID string
	Branch       string
	Dir          string
}

// ListFiles is the interface for browsing a directory.
type ListFiles interface {
	Execute(ctx context.Context, input ListFilesInput) ([]entities.TreeEntry, error)
}

// ListFilesCommand lists a directory from the mirror, falling back to the git
// tree when the mirror holds nothing for the branch.
type ListFilesCommand struct {
	repos repositories.RepositoryStore
	files repositories.FileStore
	git   repositories.GitRepository
}

// NewListFilesCommand creates a new ListFilesCommand.
func NewListFilesCommand(
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
) *ListFilesCommand {
	return &ListFilesCommand{repos: repos, files: files, git: git}
}

func (it *ListFilesCommand) Execute(ctx context.Context, input ListFilesInput) ([]entities.TreeEntry, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return nil, err
	}
	if err = entities.ValidateDirectory(input.Dir); err != nil {
		return nil, err
	}
	dir := strings.TrimSuffix(input.Dir, "/")

	docs, err := it.files.ListByBranch(ctx, repo.ID, branch)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return it.git.ListFiles(ctx, repo.ProjectID, branch, dir)
	}

	entries := make([]entities.TreeEntry, 0)
	for _, doc := range docs {
		if doc.Parent() != dir {
			continue
		}
		entryType := entities.TreeEntryFile
		if doc.IsDirectory {
			entryType = entities.TreeEntryFolder
		}
		entries = append(entries, entities.TreeEntry{Name: doc.Name(), Type: entryType, Path: doc.Path})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return entries[i].Type == entities.TreeEntryFolder
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// GetFileContentInput addresses a file by document id or by branch and path.
type GetFileContentInput struct {
	RepositoryID string
	FileID       string
	Branch       string
	Path         string
}

// GetFileContent is the interface for reading a file.
type GetFileContent interface {
	Execute(ctx context.Context, input GetFileContentInput) (string, error)
}

// GetFileContentCommand reads a file from the mirror, then from git. A file
// missing from both reads as "".
type GetFileContentCommand struct {
	repos repositories.RepositoryStore
	files repositories.FileStore
	git   repositories.GitRepository
}

// NewGetFileContentCommand creates a new GetFileContentCommand.
func NewGetFileContentCommand(
	repos repositories.RepositoryStore,
	files repositories.FileStore,
	git repositories.GitRepository,
) *GetFileContentCommand {
	return &GetFileContentCommand{repos: repos, files: files, git: git}
}

func (it *GetFileContentCommand) Execute(ctx context.Context, input GetFileContentInput) (string, error) {
	if input.FileID != "" {
		doc, err := it.files.Get(ctx, input.FileID)
		if err != nil {
			return "", err
		}
		return doc.Content, nil
	}

	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return "", err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return "", err
	}
	if err = entities.ValidateFilePath(input.Path); err != nil {
		return "", err
	}

	doc, err := it.files.GetByPath(ctx, repo.ID, branch, input.Path)
	switch {
	case err == nil:
		return doc.Content, nil
	case entities.IsNotFound(err):
		return it.git.GetFileContent(ctx, repo.ProjectID, branch, input.Path)
	default:
		return "", err
	}
}

// SearchFilesInput is a fuzzy query over the paths of a branch.
type SearchFilesInput struct {
	RepositoryID string
	Branch       string
	Query        string
	Limit        int
}

// SearchFiles is the interface for finding files by approximate path.
type SearchFiles interface {
	Execute(ctx context.Context, input SearchFilesInput) ([]entities.File, error)
}

// SearchFilesCommand ranks the file paths of a branch against a fuzzy query.
type SearchFilesCommand struct {
	repos repositories.RepositoryStore
	files repositories.FileStore
}

// NewSearchFilesCommand creates a new SearchFilesCommand.
func NewSearchFilesCommand(repos repositories.RepositoryStore, files repositories.FileStore) *SearchFilesCommand {
	return &SearchFilesCommand{repos: repos, files: files}
}

// Execute returns the best matches first, without their content.
func (it *SearchFilesCommand) Execute(ctx context.Context, input SearchFilesInput) ([]entities.File, error) {
	repo, err := findRepository(ctx, it.repos, input.RepositoryID)
	if err != nil {
		return nil, err
	}
	branch, err := branchOrDefault(repo, input.Branch)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Query) == "" {
		return nil, &entities.ValidationError{Field: "query", Value: input.Query, Reason: "must not be empty"}
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	docs, err := it.files.ListByBranch(ctx, repo.ID, branch)
	if err != nil {
		return nil, err
	}
	candidates := make(fileSource, 0, len(docs))
	for _, doc := range docs {
		if !doc.IsDirectory {
			doc.Content = ""
			candidates = append(candidates, doc)
		}
	}

	results := make([]entities.File, 0)
	for _, match := range fuzzy.FindFrom(input.Query, candidates) {
		results = append(results, candidates[match.Index])
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// fileSource implements fuzzy.Source over File document paths.
type fileSource []entities.File

func (s fileSource) String(i int) string { return s[i].Path }
func (s fileSource) Len() int            { return len(s) }
