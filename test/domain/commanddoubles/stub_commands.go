//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// StubCommitCommand is a test double for the Commit interface.
type StubCommitCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *entities.Commit
	LastInput        commands.CommitInput
}

var _ commands.Commit = (*StubCommitCommand)(nil)

func (s *StubCommitCommand) Execute(_ context.Context, input commands.CommitInput) (*entities.Commit, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &entities.Commit{Branch: input.Branch, Message: input.Message}, nil
}

// StubUploadCommand is a test double for the Upload interface.
type StubUploadCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastInput        commands.UploadInput
	LastContent      string
}

var _ commands.Upload = (*StubUploadCommand)(nil)

func (s *StubUploadCommand) Execute(_ context.Context, input commands.UploadInput) (*entities.Commit, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	if input.Content != nil {
		data, _ := io.ReadAll(input.Content)
		s.LastContent = string(data)
	}
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return &entities.Commit{Branch: input.Branch, Message: input.Message}, nil
}

// StubDiffCommand is a test double for the Diff interface.
type StubDiffCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Diffs            []entities.FileDiff
	LastInput        commands.DiffInput
}

var _ commands.Diff = (*StubDiffCommand)(nil)

func (s *StubDiffCommand) Execute(_ context.Context, input commands.DiffInput) ([]entities.FileDiff, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Diffs, s.ExecuteErr
}

// StubCreateBranchCommand is a test double for the CreateBranch interface.
type StubCreateBranchCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.BranchResult
	LastInput        commands.CreateBranchInput
}

var _ commands.CreateBranch = (*StubCreateBranchCommand)(nil)

func (s *StubCreateBranchCommand) Execute(
	_ context.Context,
	input commands.CreateBranchInput,
) (entities.BranchResult, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Result, s.ExecuteErr
}

// StubMergeBranchesCommand is a test double for the MergeBranches interface.
type StubMergeBranchesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.MergeResult
	LastInput        commands.MergeBranchesInput
}

var _ commands.MergeBranches = (*StubMergeBranchesCommand)(nil)

func (s *StubMergeBranchesCommand) Execute(
	_ context.Context,
	input commands.MergeBranchesInput,
) (entities.MergeResult, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Result, s.ExecuteErr
}

// StubListCommitsCommand is a test double for the ListCommits interface.
type StubListCommitsCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Commits          []entities.Commit
	LastInput        commands.HistoryInput
}

var _ commands.ListCommits = (*StubListCommitsCommand)(nil)

func (s *StubListCommitsCommand) Execute(_ context.Context, input commands.HistoryInput) ([]entities.Commit, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Commits, s.ExecuteErr
}

// StubGitLogCommand is a test double for the GitLog interface.
type StubGitLogCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Commits          []entities.GitCommit
	LastInput        commands.HistoryInput
}

var _ commands.GitLog = (*StubGitLogCommand)(nil)

func (s *StubGitLogCommand) Execute(_ context.Context, input commands.HistoryInput) ([]entities.GitCommit, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	return s.Commits, s.ExecuteErr
}

// StubCreateCommentCommand is a test double for the CreateComment interface.
type StubCreateCommentCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastInput        commands.CreateCommentInput
}

var _ commands.CreateComment = (*StubCreateCommentCommand)(nil)

func (s *StubCreateCommentCommand) Execute(
	_ context.Context,
	input commands.CreateCommentInput,
) (*entities.Comment, error) {
	s.ExecuteCallCount++
	s.LastInput = input
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return &entities.Comment{ID: "c1", FileID: input.FileID, Line: input.Line, Body: input.Body}, nil
}

// StubGetCommitCommand is a test double for the GetCommit interface.
type StubGetCommitCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *entities.Commit
	LastRepository   string
	LastRef          string
}

var _ commands.GetCommit = (*StubGetCommitCommand)(nil)

func (s *StubGetCommitCommand) Execute(_ context.Context, repositoryID, ref string) (*entities.Commit, error) {
	s.ExecuteCallCount++
	s.LastRepository = repositoryID
	s.LastRef = ref
	return s.Result, s.ExecuteErr
}
