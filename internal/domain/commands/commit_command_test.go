//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

func TestCommitCommand(t *testing.T) {
	t.Parallel()

	t.Run("should record an added file in the mirror and in git", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)

		// when
		commit := f.commit(t, "main", "add a", write("a.txt", "hello"))

		// then
		assert.Equal(t, entities.CommitStats{Additions: 1}, commit.Stats)
		require.Len(t, commit.FilesChanged, 1)
		assert.Equal(t, entities.ChangeAdd, commit.FilesChanged[0].ChangeType)
		assert.True(t, commit.Mirrored)
		assert.Equal(t, f.git.CommitHash, commit.GitHash)
		assert.Len(t, commit.Hash, 40)
		assert.NotEqual(t, commit.GitHash, commit.Hash)
		assert.Equal(t, "gitvault-bot", commit.Author)

		doc, err := f.files.GetByPath(context.Background(), "repo-1", "main", "a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", doc.Content)
		require.Len(t, f.git.CommitChangesCalls, 1)
		assert.Equal(t, "p1", f.git.CommitChangesCalls[0].ProjectID)
	})

	t.Run("should move the branch head and publish an event", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)

		// when
		commit := f.commit(t, "main", "add a", write("a.txt", "hello"))

		// then
		repo, err := f.repos.Get(context.Background(), "repo-1")
		require.NoError(t, err)
		head, ok := repo.Branch("main")
		require.True(t, ok)
		assert.Equal(t, commit.Hash, head.HeadCommit)
		require.Len(t, f.notifier.Events, 1)
		assert.Equal(t, entities.EventCommitCreated, f.notifier.Events[0].Type)
		assert.Equal(t, commit.Hash, f.notifier.Events[0].Subject)
	})

	t.Run("should keep documents and the commit when git fails", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.git.CommitErr = errors.New("disk full")

		// when
		commit := f.commit(t, "main", "add a", write("a.txt", "hello"))

		// then
		assert.False(t, commit.Mirrored)
		assert.Empty(t, commit.GitHash)
		assert.Equal(t, "disk full", commit.MirrorError)
		assert.Equal(t, []string{"a.txt"}, f.paths(t, "main"))
		require.Len(t, f.commits.Commits, 1)
		repo, err := f.repos.Get(context.Background(), "repo-1")
		require.NoError(t, err)
		head, _ := repo.Branch("main")
		assert.Equal(t, commit.Hash, head.HeadCommit)
	})

	t.Run("should classify a second write as a modification with its old content", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "one\ntwo\n"))

		// when
		commit := f.commit(t, "main", "edit a", write("a.txt", "one\n2\n"))

		// then
		require.Len(t, commit.FilesChanged, 1)
		change := commit.FilesChanged[0]
		assert.Equal(t, entities.ChangeModify, change.ChangeType)
		assert.Equal(t, "one\ntwo\n", change.OldContent)
		assert.Equal(t, "one\n2\n", change.NewContent)
		assert.Equal(t, entities.CommitStats{Additions: 1, Deletions: 1}, commit.Stats)
	})

	t.Run("should remove a deleted file and prune its empty directories", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add docs", write("docs/guide/intro.md", "intro\n"), write("top.txt", "x"))
		require.Equal(t, []string{"docs", "docs/guide", "docs/guide/intro.md", "top.txt"}, f.paths(t, "main"))

		// when
		commit := f.commit(t, "main", "drop docs", remove("docs/guide/intro.md"))

		// then
		assert.Equal(t, entities.ChangeDelete, commit.FilesChanged[0].ChangeType)
		assert.Equal(t, "intro\n", commit.FilesChanged[0].OldContent)
		assert.Equal(t, entities.CommitStats{Deletions: 1}, commit.Stats)
		assert.Equal(t, []string{"top.txt"}, f.paths(t, "main"))
	})

	t.Run("should start an unknown branch from the default branch", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "a"))

		// when
		f.commit(t, "feature", "add b", write("b.txt", "b"))

		// then
		assert.Equal(t, []string{"a.txt", "b.txt"}, f.paths(t, "feature"))
		assert.Equal(t, []string{"a.txt"}, f.paths(t, "main"))
		repo, err := f.repos.Get(context.Background(), "repo-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"main", "feature"}, repo.BranchNames())
	})

	t.Run("should attribute the commit to the given author", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		author := entities.Author{Name: "Alice", Email: "alice@example.com"}

		// when
		commit, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "p1",
			Message:      "by alice",
			Author:       author,
			Files:        []entities.FileInput{write("a.txt", "a")},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Alice", commit.Author)
		assert.Equal(t, "main", commit.Branch)
		assert.Equal(t, author, f.git.CommitChangesCalls[0].Author)
	})

	t.Run("should reject an invalid change set before touching any store", func(t *testing.T) {
		t.Parallel()

		for _, input := range []commands.CommitInput{
			{RepositoryID: "repo-1", Message: " ", Files: []entities.FileInput{write("a.txt", "a")}},
			{RepositoryID: "repo-1", Message: "empty"},
			{RepositoryID: "repo-1", Message: "dup", Files: []entities.FileInput{write("a.txt", "a"), write("a.txt", "b")}},
			{RepositoryID: "repo-1", Message: "escape", Files: []entities.FileInput{write("../a.txt", "a")}},
			{RepositoryID: "repo-1", Branch: "-x", Message: "flag", Files: []entities.FileInput{write("a.txt", "a")}},
		} {
			// given
			f := newFixture(t)

			// when
			_, err := f.commitCommand().Execute(context.Background(), input)

			// then
			var validationErr *entities.ValidationError
			require.ErrorAs(t, err, &validationErr, "input %+v", input)
			assert.Empty(t, f.git.CommitChangesCalls)
			assert.Empty(t, f.commits.Commits)
			assert.Empty(t, f.paths(t, "main"))
		}
	})

	t.Run("should leave every document untouched when a path lies below another of the set", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add b", write("b.txt", "old"))
		before := f.paths(t, "main")

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "repo-1",
			Message:      "overlap",
			Files:        []entities.FileInput{write("b.txt", "b"), write("x", "1"), write("x/y", "2")},
		})

		// then
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, before, f.paths(t, "main"))
		doc, getErr := f.files.GetByPath(context.Background(), "repo-1", "main", "b.txt")
		require.NoError(t, getErr)
		assert.Equal(t, "old", doc.Content)
		assert.Len(t, f.commits.Commits, 1)
		assert.Len(t, f.git.CommitChangesCalls, 1)
	})

	t.Run("should reject a write below an existing file before any write", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add x", write("x", "file"))
		before := f.paths(t, "main")

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "repo-1",
			Message:      "below a file",
			Files:        []entities.FileInput{write("b.txt", "b"), write("x/y", "2")},
		})

		// then
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Reason, "x is a file")
		assert.Equal(t, before, f.paths(t, "main"))
		assert.Len(t, f.commits.Commits, 1)
		assert.Len(t, f.git.CommitChangesCalls, 1)
	})

	t.Run("should not start a branch for a rejected change set", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add x", write("x", "file"))

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "repo-1",
			Branch:       "feature",
			Message:      "below a file",
			Files:        []entities.FileInput{write("x/y", "2")},
		})

		// then
		require.Error(t, err)
		assert.Empty(t, f.paths(t, "feature"))
		repo, getErr := f.repos.Get(context.Background(), "repo-1")
		require.NoError(t, getErr)
		_, known := repo.Branch("feature")
		assert.False(t, known)
	})

	t.Run("should refuse to overwrite a directory with a file", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add docs", write("docs/a.md", "a"))

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "repo-1",
			Message:      "clobber",
			Files:        []entities.FileInput{write("docs", "x")},
		})

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should fail for an unknown repository", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "nope",
			Message:      "m",
			Files:        []entities.FileInput{write("a.txt", "a")},
		})

		// then
		assert.True(t, entities.IsNotFound(err))
	})

	t.Run("should surface a failure to store the commit", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commits.CreateErr = errors.New("write conflict")

		// when
		_, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
			RepositoryID: "repo-1",
			Message:      "m",
			Files:        []entities.FileInput{write("a.txt", "a")},
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "write conflict")
		assert.Empty(t, f.notifier.Events)
	})
}

func TestUploadCommand(t *testing.T) {
	t.Parallel()

	t.Run("should commit text content with a default message", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		command := commands.NewUploadCommand(f.commitCommand())

		// when
		commit, err := command.Execute(context.Background(), commands.UploadInput{
			RepositoryID: "repo-1",
			Path:         "notes/today.md",
			Content:      strings.NewReader("# Today\n"),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Upload notes/today.md", commit.Message)
		assert.Equal(t, entities.ChangeAdd, commit.FilesChanged[0].ChangeType)
		assert.Equal(t, []string{"notes", "notes/today.md"}, f.paths(t, "main"))
	})

	t.Run("should reject content that is not UTF-8", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		command := commands.NewUploadCommand(f.commitCommand())

		// when
		_, err := command.Execute(context.Background(), commands.UploadInput{
			RepositoryID: "repo-1",
			Path:         "image.png",
			Content:      bytes.NewReader([]byte{0x89, 'P', 'N', 'G', 0xff, 0xfe}),
		})

		// then
		var validationErr *entities.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, f.commits.Commits)
	})

	t.Run("should reject content over the size limit", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		command := commands.NewUploadCommand(f.commitCommand())

		// when
		_, err := command.Execute(context.Background(), commands.UploadInput{
			RepositoryID: "repo-1",
			Path:         "big.txt",
			Content:      strings.NewReader(strings.Repeat("a", 10<<20+1)),
		})

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}
