//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// CommitChangesCall records a single invocation of CommitChanges.
type CommitChangesCall struct {
	ProjectID string
	Branch    string
	Message   string
	Author    entities.Author
	Changes   []entities.FileInput
}

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyGitRepository struct {
	mu sync.Mutex

	// --- State / InitRepo ---
	RepoState    entities.RepoState
	InitErr      error
	InitProjects []string

	// --- CreateBranch ---
	BranchResult    entities.BranchResult
	CreateBranchErr error
	CreatedBranches []string

	// --- GetBranches ---
	Branches    []string
	BranchesErr error

	// --- GetDiff ---
	Diff    entities.GitDiff
	DiffErr error

	// --- GetCommitsBetween ---
	CommitsBetween []entities.GitCommit

	// --- Merge ---
	MergeResult entities.MergeResult
	MergeErr    error
	MergeCalls  int

	// --- CommitFile / UploadFile / CommitChanges ---
	CommitHash         string
	CommitErr          error
	CommitChangesCalls []CommitChangesCall

	// --- GetFileContent / ShowFile ---
	FileContents map[string]string // path -> content

	// --- GetCommitHistory / GetLog / GetLatestCommit ---
	History      map[string][]entities.GitCommit // branch -> commits
	HistoryErr   error
	HistoryCalls []string
	LatestCommit *entities.GitCommit

	// --- ListFiles ---
	TreeEntries []entities.TreeEntry
	ListCalls   int

	// --- GetRepoStats ---
	Stats entities.RepoStats

	// --- SnapshotTree ---
	Snapshot    map[string]string
	SnapshotErr error
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) State(_ context.Context, _ string) entities.RepoState {
	return s.RepoState
}

func (s *SpyGitRepository) InitRepo(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InitProjects = append(s.InitProjects, projectID)
	return s.InitErr
}

func (s *SpyGitRepository) CreateBranch(
	_ context.Context,
	_ string,
	name, from string,
) (entities.BranchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreatedBranches = append(s.CreatedBranches, name)
	result := s.BranchResult
	if result.Name == "" {
		result.Name = name
		result.From = from
	}
	return result, s.CreateBranchErr
}

func (s *SpyGitRepository) GetBranches(_ context.Context, _ string) ([]string, error) {
	return append([]string(nil), s.Branches...), s.BranchesErr
}

func (s *SpyGitRepository) GetDiff(_ context.Context, _, _, _ string) (entities.GitDiff, error) {
	return s.Diff, s.DiffErr
}

func (s *SpyGitRepository) GetCommitsBetween(_ context.Context, _, _, _ string) ([]entities.GitCommit, error) {
	return s.CommitsBetween, nil
}

func (s *SpyGitRepository) Merge(_ context.Context, _, _, _, _ string) (entities.MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MergeCalls++
	return s.MergeResult, s.MergeErr
}

func (s *SpyGitRepository) CommitFile(
	ctx context.Context,
	projectID, branch, path, content, message string,
	author entities.Author,
) (string, error) {
	return s.CommitChanges(ctx, projectID, branch, message, author,
		[]entities.FileInput{{Path: path, Content: content}})
}

func (s *SpyGitRepository) UploadFile(
	ctx context.Context,
	projectID, branch, path string,
	data []byte,
	message string,
	author entities.Author,
) (string, error) {
	return s.CommitFile(ctx, projectID, branch, path, string(data), message, author)
}

func (s *SpyGitRepository) CommitChanges(
	_ context.Context,
	projectID, branch, message string,
	author entities.Author,
	changes []entities.FileInput,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CommitChangesCalls = append(s.CommitChangesCalls, CommitChangesCall{
		ProjectID: projectID,
		Branch:    branch,
		Message:   message,
		Author:    author,
		Changes:   changes,
	})
	if s.CommitErr != nil {
		return "", s.CommitErr
	}
	return s.CommitHash, nil
}

func (s *SpyGitRepository) GetFileContent(_ context.Context, _, _, path string) (string, error) {
	return s.FileContents[path], nil
}

func (s *SpyGitRepository) ShowFile(_ context.Context, _, _, path string) (string, error) {
	return s.FileContents[path], nil
}

func (s *SpyGitRepository) GetCommitHistory(
	_ context.Context,
	_ string,
	branch string,
	_ int,
) ([]entities.GitCommit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.HistoryCalls = append(s.HistoryCalls, branch)
	if s.HistoryErr != nil {
		return nil, s.HistoryErr
	}
	return s.History[branch], nil
}

func (s *SpyGitRepository) GetLog(
	ctx context.Context,
	projectID, revision, _ string,
	limit int,
) ([]entities.GitCommit, error) {
	return s.GetCommitHistory(ctx, projectID, revision, limit)
}

func (s *SpyGitRepository) GetLatestCommit(_ context.Context, _, _ string) (*entities.GitCommit, error) {
	return s.LatestCommit, nil
}

func (s *SpyGitRepository) ListFiles(_ context.Context, _, _, _ string) ([]entities.TreeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	return s.TreeEntries, nil
}

func (s *SpyGitRepository) GetRepoStats(_ context.Context, _ string) (entities.RepoStats, error) {
	return s.Stats, nil
}

func (s *SpyGitRepository) SnapshotTree(_ context.Context, _, _ string) (map[string]string, error) {
	if s.SnapshotErr != nil {
		return nil, s.SnapshotErr
	}
	snapshot := make(map[string]string, len(s.Snapshot))
	for path, content := range s.Snapshot {
		snapshot[path] = content
	}
	return snapshot, nil
}
