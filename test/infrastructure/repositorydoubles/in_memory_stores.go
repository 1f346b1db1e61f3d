//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, fakes) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// InMemoryRepositoryStore implements repositories.RepositoryStore over a map.
type InMemoryRepositoryStore struct {
	mu    sync.Mutex
	repos map[string]entities.Repository

	// --- UpdateBranchHead ---
	UpdateHeadErr   error
	UpdateHeadCalls int
}

var _ repositories.RepositoryStore = (*InMemoryRepositoryStore)(nil)

// NewInMemoryRepositoryStore creates an empty store.
func NewInMemoryRepositoryStore() *InMemoryRepositoryStore {
	return &InMemoryRepositoryStore{repos: make(map[string]entities.Repository)}
}

func (s *InMemoryRepositoryStore) Create(_ context.Context, repo *entities.Repository) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.repos {
		if existing.ProjectID == repo.ProjectID {
			return fmt.Errorf("repository for project %q: %w", repo.ProjectID, entities.ErrAlreadyExists)
		}
	}
	if repo.ID == "" {
		repo.ID = uuid.NewString()
	}
	s.repos[repo.ID] = cloneRepository(*repo)
	return nil
}

func (s *InMemoryRepositoryStore) Get(_ context.Context, id string) (*entities.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	repo, ok := s.repos[id]
	if !ok {
		return nil, entities.NewNotFoundError("repository", id)
	}
	clone := cloneRepository(repo)
	return &clone, nil
}

func (s *InMemoryRepositoryStore) GetByProject(_ context.Context, projectID string) (*entities.Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, repo := range s.repos {
		if repo.ProjectID == projectID {
			clone := cloneRepository(repo)
			return &clone, nil
		}
	}
	return nil, entities.NewNotFoundError("repository", projectID)
}

func (s *InMemoryRepositoryStore) UpdateBranchHead(_ context.Context, id, branch, commitHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateHeadCalls++
	if s.UpdateHeadErr != nil {
		return s.UpdateHeadErr
	}
	repo, ok := s.repos[id]
	if !ok {
		return entities.NewNotFoundError("repository", id)
	}
	repo.SetBranchHead(branch, commitHash)
	s.repos[id] = repo
	return nil
}

func (s *InMemoryRepositoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.repos[id]; !ok {
		return entities.NewNotFoundError("repository", id)
	}
	delete(s.repos, id)
	return nil
}

func cloneRepository(repo entities.Repository) entities.Repository {
	repo.Branches = append([]entities.BranchHead(nil), repo.Branches...)
	return repo
}

// InMemoryCommitStore implements repositories.CommitStore over a slice kept in insertion order.
type InMemoryCommitStore struct {
	mu      sync.Mutex
	Commits []entities.Commit

	// --- Create ---
	CreateErr error
}

var _ repositories.CommitStore = (*InMemoryCommitStore)(nil)

// NewInMemoryCommitStore creates an empty store.
func NewInMemoryCommitStore() *InMemoryCommitStore {
	return &InMemoryCommitStore{}
}

func (s *InMemoryCommitStore) Create(_ context.Context, commit *entities.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if commit.ID == "" {
		commit.ID = uuid.NewString()
	}
	s.Commits = append(s.Commits, *commit)
	return nil
}

func (s *InMemoryCommitStore) Get(_ context.Context, repositoryID, id string) (*entities.Commit, error) {
	return s.find(func(c entities.Commit) bool { return c.RepositoryID == repositoryID && c.ID == id }, id)
}

func (s *InMemoryCommitStore) GetByHash(_ context.Context, repositoryID, hash string) (*entities.Commit, error) {
	return s.find(func(c entities.Commit) bool { return c.RepositoryID == repositoryID && c.Hash == hash }, hash)
}

func (s *InMemoryCommitStore) find(match func(entities.Commit) bool, key string) (*entities.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, commit := range s.Commits {
		if match(commit) {
			found := commit
			return &found, nil
		}
	}
	return nil, entities.NewNotFoundError("commit", key)
}

func (s *InMemoryCommitStore) ListByBranch(
	_ context.Context,
	repositoryID, branch string,
	limit int,
) ([]entities.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	commits := make([]entities.Commit, 0)
	for i := len(s.Commits) - 1; i >= 0; i-- {
		commit := s.Commits[i]
		if commit.RepositoryID != repositoryID || commit.Branch != branch {
			continue
		}
		commits = append(commits, commit)
		if limit > 0 && len(commits) == limit {
			break
		}
	}
	return commits, nil
}

// InMemoryFileStore implements repositories.FileStore over a map keyed by
// repository, branch and path.
type InMemoryFileStore struct {
	mu    sync.Mutex
	files map[string]entities.File

	// --- ListByBranch ---
	ListErr error
}

var _ repositories.FileStore = (*InMemoryFileStore)(nil)

// NewInMemoryFileStore creates an empty store.
func NewInMemoryFileStore() *InMemoryFileStore {
	return &InMemoryFileStore{files: make(map[string]entities.File)}
}

func fileKey(repositoryID, branch, path string) string {
	return repositoryID + "\x00" + branch + "\x00" + path
}

func (s *InMemoryFileStore) Get(_ context.Context, id string) (*entities.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, file := range s.files {
		if file.ID == id {
			found := file
			return &found, nil
		}
	}
	return nil, entities.NewNotFoundError("file", id)
}

func (s *InMemoryFileStore) GetByPath(_ context.Context, repositoryID, branch, path string) (*entities.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[fileKey(repositoryID, branch, path)]
	if !ok {
		return nil, entities.NewNotFoundError("file", branch+":"+path)
	}
	return &file, nil
}

func (s *InMemoryFileStore) Upsert(_ context.Context, file *entities.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fileKey(file.RepositoryID, file.Branch, file.Path)
	if existing, ok := s.files[key]; ok {
		file.ID = existing.ID
	} else if file.ID == "" {
		file.ID = uuid.NewString()
	}
	s.files[key] = *file
	return nil
}

func (s *InMemoryFileStore) Delete(_ context.Context, repositoryID, branch, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fileKey(repositoryID, branch, path)
	if _, ok := s.files[key]; !ok {
		return entities.NewNotFoundError("file", branch+":"+path)
	}
	delete(s.files, key)
	return nil
}

func (s *InMemoryFileStore) ListByBranch(_ context.Context, repositoryID, branch string) ([]entities.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	files := make([]entities.File, 0)
	for _, file := range s.files {
		if file.RepositoryID == repositoryID && file.Branch == branch {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// InMemoryCommentStore implements repositories.CommentStore over a map.
type InMemoryCommentStore struct {
	mu       sync.Mutex
	comments map[string]entities.Comment
}

var _ repositories.CommentStore = (*InMemoryCommentStore)(nil)

// NewInMemoryCommentStore creates an empty store.
func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{comments: make(map[string]entities.Comment)}
}

func (s *InMemoryCommentStore) Create(_ context.Context, comment *entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	s.comments[comment.ID] = *comment
	return nil
}

func (s *InMemoryCommentStore) Get(_ context.Context, id string) (*entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, entities.NewNotFoundError("comment", id)
	}
	return &comment, nil
}

func (s *InMemoryCommentStore) ListByFile(_ context.Context, fileID string) ([]entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := make([]entities.Comment, 0)
	for _, comment := range s.comments {
		if comment.FileID == fileID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Line < comments[j].Line })
	return comments, nil
}

func (s *InMemoryCommentStore) Update(_ context.Context, comment *entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return entities.NewNotFoundError("comment", comment.ID)
	}
	s.comments[comment.ID] = *comment
	return nil
}

func (s *InMemoryCommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return entities.NewNotFoundError("comment", id)
	}
	delete(s.comments, id)
	return nil
}
