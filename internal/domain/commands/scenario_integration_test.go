//go:build integration

package commands_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/mirror"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/notifier"
)

type engine struct {
	settings *entities.Settings
	repos    *mirror.BadgerRepositoryStore
	commits  *mirror.BadgerCommitStore
	files    *mirror.BadgerFileStore
	git      *git.CLIGitRepository
	notifier *notifier.LogNotifierRepository
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	settings := entities.DefaultSettings()
	settings.RepositoriesRoot = t.TempDir()
	db, err := mirror.NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := git.NewRepositoryStore(settings)
	return &engine{
		settings: settings,
		repos:    mirror.NewBadgerRepositoryStore(db),
		commits:  mirror.NewBadgerCommitStore(db),
		files:    mirror.NewBadgerFileStore(db),
		git:      git.NewCLIGitRepository(settings, store, git.NewCLICommandExecutor(settings), git.NewTreeReader()),
		notifier: notifier.NewLogNotifierRepository(),
	}
}

func (e *engine) commit(t *testing.T, branch string, files ...entities.FileInput) *entities.Commit {
	t.Helper()
	commit, err := commands.NewCommitCommand(e.settings, e.repos, e.commits, e.files, e.git, e.notifier).
		Execute(context.Background(), commands.CommitInput{
			RepositoryID: "p1",
			Branch:       branch,
			Message:      "update",
			Files:        files,
		})
	require.NoError(t, err)
	return commit
}

func TestVersionControlScenario(t *testing.T) {
	t.Parallel()

	t.Run("should mirror a first commit into both stores", func(t *testing.T) {
		t.Parallel()

		// given
		e := newEngine(t)
		ctx := context.Background()
		_, err := commands.NewCreateRepositoryCommand(e.settings, e.repos, e.files, e.git).
			Execute(ctx, commands.CreateRepositoryInput{ProjectID: "p1"})
		require.NoError(t, err)

		// when
		commit := e.commit(t, "main", write("a.txt", "hello"))

		// then
		assert.True(t, commit.Mirrored)
		assert.Equal(t, entities.CommitStats{Additions: 1}, commit.Stats)
		listed, err := commands.NewListCommitsCommand(e.settings, e.repos, e.commits).
			Execute(ctx, commands.HistoryInput{RepositoryID: "p1"})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, commit.Hash, listed[0].Hash)

		content, err := e.git.GetFileContent(ctx, "p1", "main", "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", content)
		history, err := e.git.GetCommitHistory(ctx, "p1", "main", 0)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("should show the same single change from both diff sources", func(t *testing.T) {
		t.Parallel()

		// given
		e := newEngine(t)
		ctx := context.Background()
		_, err := commands.NewCreateRepositoryCommand(e.settings, e.repos, e.files, e.git).
			Execute(ctx, commands.CreateRepositoryInput{ProjectID: "p1"})
		require.NoError(t, err)
		e.commit(t, "main", write("a.txt", "one\n"))
		_, err = commands.NewCreateBranchCommand(e.repos, e.files, e.git, e.notifier).
			Execute(ctx, commands.CreateBranchInput{RepositoryID: "p1", Name: "feature"})
		require.NoError(t, err)
		e.commit(t, "feature", write("a.txt", "two\n"))
		command := commands.NewDiffCommand(e.repos, e.files, e.git)

		// when
		fromContent, contentErr := command.Execute(ctx, commands.DiffInput{RepositoryID: "p1", Base: "main", Head: "feature"})
		fromGit, gitErr := command.Execute(ctx, commands.DiffInput{
			RepositoryID: "p1",
			Base:         "main",
			Head:         "feature",
			Source:       entities.DiffSourceGit,
		})

		// then
		require.NoError(t, contentErr)
		require.NoError(t, gitErr)
		require.Len(t, fromContent, 1)
		require.Len(t, fromGit, 1)
		for _, diffs := range [][]entities.FileDiff{fromContent, fromGit} {
			assert.Equal(t, "a.txt", diffs[0].FilePath)
			assert.Equal(t, entities.DiffModified, diffs[0].Status)
			assert.Equal(t, 1, diffs[0].Additions)
			assert.Equal(t, 1, diffs[0].Deletions)
		}
	})

	t.Run("should merge a branch and refresh the base documents", func(t *testing.T) {
		t.Parallel()

		// given
		e := newEngine(t)
		ctx := context.Background()
		_, err := commands.NewCreateRepositoryCommand(e.settings, e.repos, e.files, e.git).
			Execute(ctx, commands.CreateRepositoryInput{ProjectID: "p1"})
		require.NoError(t, err)
		e.commit(t, "feature", write("b.txt", "b\n"))

		// when
		result, err := commands.NewMergeBranchesCommand(e.settings, e.repos, e.files, e.git, e.notifier).
			Execute(ctx, commands.MergeBranchesInput{RepositoryID: "p1", Base: "main", Head: "feature"})

		// then
		require.NoError(t, err)
		assert.True(t, result.Success)
		content, err := commands.NewGetFileContentCommand(e.repos, e.files, e.git).
			Execute(ctx, commands.GetFileContentInput{RepositoryID: "p1", Path: "b.txt"})
		require.NoError(t, err)
		assert.Equal(t, "b\n", content)
		doc, err := e.files.GetByPath(ctx, mustRepoID(t, e), "main", "b.txt")
		require.NoError(t, err)
		assert.Equal(t, "b\n", doc.Content)
	})
}

func mustRepoID(t *testing.T, e *engine) string {
	t.Helper()
	repo, err := e.repos.GetByProject(context.Background(), "p1")
	require.NoError(t, err)
	return repo.ID
}
