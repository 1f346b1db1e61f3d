package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	for _, constructor := range []any{
		NewCreateRepositoryCommand,
		NewGetRepositoryCommand,
		NewListFilesCommand,
		NewGetFileContentCommand,
		NewSearchFilesCommand,
		NewCommitCommand,
		NewUploadCommand,
		NewDiffCommand,
		NewListBranchesCommand,
		NewCreateBranchCommand,
		NewMergeBranchesCommand,
		NewCompareBranchesCommand,
		NewListCommitsCommand,
		NewGitLogCommand,
		NewGetCommitCommand,
		NewStatsCommand,
		NewAnalyticsCommand,
		NewReconcileCommand,
		NewCreateCommentCommand,
		NewListCommentsCommand,
		NewUpdateCommentCommand,
		NewDeleteCommentCommand,
	} {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	for _, binding := range []any{
		func(impl *CreateRepositoryCommand) CreateRepository { return impl },
		func(impl *GetRepositoryCommand) GetRepository { return impl },
		func(impl *ListFilesCommand) ListFiles { return impl },
		func(impl *GetFileContentCommand) GetFileContent { return impl },
		func(impl *SearchFilesCommand) SearchFiles { return impl },
		func(impl *CommitCommand) Commit { return impl },
		func(impl *UploadCommand) Upload { return impl },
		func(impl *DiffCommand) Diff { return impl },
		func(impl *ListBranchesCommand) ListBranches { return impl },
		func(impl *CreateBranchCommand) CreateBranch { return impl },
		func(impl *MergeBranchesCommand) MergeBranches { return impl },
		func(impl *CompareBranchesCommand) CompareBranches { return impl },
		func(impl *ListCommitsCommand) ListCommits { return impl },
		func(impl *GitLogCommand) GitLog { return impl },
		func(impl *GetCommitCommand) GetCommit { return impl },
		func(impl *StatsCommand) Stats { return impl },
		func(impl *AnalyticsCommand) Analytics { return impl },
		func(impl *ReconcileCommand) Reconcile { return impl },
		func(impl *CreateCommentCommand) CreateComment { return impl },
		func(impl *ListCommentsCommand) ListComments { return impl },
		func(impl *UpdateCommentCommand) UpdateComment { return impl },
		func(impl *DeleteCommentCommand) DeleteComment { return impl },
	} {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
