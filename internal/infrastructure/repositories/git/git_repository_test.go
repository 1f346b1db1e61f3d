//go:build unit

package git //nolint:testpackage // tests unexported functions

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// recordingExecutor records every invocation and fails them all.
type recordingExecutor struct {
	calls [][]string
}

func (e *recordingExecutor) Execute(_ context.Context, _ string, args ...string) (*CommandResult, error) {
	e.calls = append(e.calls, args)
	return &CommandResult{ExitCode: 1}, &entities.CommandError{Args: args, ExitCode: 1, Stderr: "fatal: unavailable"}
}

func newUnitRepository() (*CLIGitRepository, *recordingExecutor) {
	settings := entities.DefaultSettings()
	settings.RepositoriesRoot = "/repos"
	executor := &recordingExecutor{}
	store := NewRepositoryStoreWithFs(settings.RepositoriesRoot, afero.NewMemMapFs())
	return NewCLIGitRepository(settings, store, executor, NewTreeReader()), executor
}

func TestCLIGitRepositoryValidation(t *testing.T) {
	t.Parallel()

	t.Run("should reject a hostile branch name before running git", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()

		// when
		_, err := repo.CreateBranch(context.Background(), "p1", "-delete", "main")

		// then
		var validationErr *entities.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Empty(t, executor.calls)
	})

	t.Run("should reject a traversing path before touching the working tree", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()
		changes := []entities.FileInput{{Path: "../outside.txt", Content: "x"}}

		// when
		_, err := repo.CommitChanges(context.Background(), "p1", "main", "msg", entities.Author{}, changes)

		// then
		var validationErr *entities.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Empty(t, executor.calls)
	})

	t.Run("should reject a change set with a path below another before running git", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()
		changes := []entities.FileInput{{Path: "x", Content: "1"}, {Path: "x/y", Content: "2"}}

		// when
		_, err := repo.CommitChanges(context.Background(), "p1", "main", "msg", entities.Author{}, changes)

		// then
		var validationErr *entities.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Empty(t, executor.calls)
	})

	t.Run("should surface validation errors from reads", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()

		// when
		_, err := repo.GetDiff(context.Background(), "p1", "main", "x;rm -rf /")

		// then
		assert.Error(t, err)
		assert.Empty(t, executor.calls)
	})

	t.Run("should reject a project id that would leave the repositories root", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()

		// when
		err := repo.InitRepo(context.Background(), "../etc")

		// then
		assert.Error(t, err)
		assert.Empty(t, executor.calls)
	})

	t.Run("should reject an empty commit message", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()

		// when
		_, err := repo.CommitFile(context.Background(), "p1", "main", "a.txt", "x", "  ", entities.Author{})

		// then
		assert.Error(t, err)
	})
}

func TestCLIGitRepositoryFailSoftReads(t *testing.T) {
	t.Parallel()

	t.Run("should report an absent repository as uninitialized", func(t *testing.T) {
		t.Parallel()

		// given
		repo, executor := newUnitRepository()

		// when
		state := repo.State(context.Background(), "p1")

		// then
		assert.Equal(t, entities.RepoUninitialized, state)
		assert.Empty(t, executor.calls)
	})

	t.Run("should fall back to the default branch when git fails", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()

		// when
		branches, err := repo.GetBranches(context.Background(), "p1")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main"}, branches)
	})

	t.Run("should degrade history, content and listings to empty results", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()
		ctx := context.Background()

		// when
		history, historyErr := repo.GetCommitHistory(ctx, "p1", "main", 10)
		content, contentErr := repo.GetFileContent(ctx, "p1", "main", "a.txt")
		entries, listErr := repo.ListFiles(ctx, "p1", "main", "")
		latest, latestErr := repo.GetLatestCommit(ctx, "p1", "main")
		stats, statsErr := repo.GetRepoStats(ctx, "p1")

		// then
		require.NoError(t, errors.Join(historyErr, contentErr, listErr, latestErr, statsErr))
		assert.Empty(t, history)
		assert.Empty(t, content)
		assert.Empty(t, entries)
		assert.Nil(t, latest)
		assert.Equal(t, entities.RepoStats{}, stats)
	})

	t.Run("should surface the failure of a tree snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()

		// when
		_, err := repo.SnapshotTree(context.Background(), "p1", "main")

		// then
		assert.Error(t, err)
	})

	t.Run("should surface the failure of a write", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()

		// when
		_, err := repo.CommitFile(context.Background(), "p1", "main", "a.txt", "x", "msg", entities.Author{})

		// then
		var cmdErr *entities.CommandError
		assert.True(t, errors.As(err, &cmdErr))
	})
}

func TestFormatAuthor(t *testing.T) {
	t.Parallel()

	t.Run("should fill the missing half from the bot identity", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newUnitRepository()

		// when
		formatted := repo.formatAuthor(entities.Author{Name: "Alice"})

		// then
		assert.Equal(t, "Alice <bot@gitvault.local>", formatted)
	})
}
