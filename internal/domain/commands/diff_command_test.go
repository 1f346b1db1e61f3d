//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

func TestDiffCommand(t *testing.T) {
	t.Parallel()

	diff := func(t *testing.T, f *fixture, input commands.DiffInput) []entities.FileDiff {
		t.Helper()
		input.RepositoryID = "repo-1"
		diffs, err := commands.NewDiffCommand(f.repos, f.files, f.git).Execute(context.Background(), input)
		require.NoError(t, err)
		return diffs
	}

	t.Run("should report nothing for branches with identical content", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "a\n"))
		f.commit(t, "feature", "touch nothing", write("a.txt", "a\n"))

		// when
		diffs := diff(t, f, commands.DiffInput{Base: "main", Head: "feature"})

		// then
		assert.Empty(t, diffs)
	})

	t.Run("should report exactly one modified file after one change", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "one\ntwo\n"), write("b.txt", "b\n"))
		f.commit(t, "feature", "edit a", write("a.txt", "one\n2\n"))

		// when
		diffs := diff(t, f, commands.DiffInput{Base: "main", Head: "feature"})

		// then
		require.Len(t, diffs, 1)
		assert.Equal(t, "a.txt", diffs[0].FilePath)
		assert.Equal(t, entities.DiffModified, diffs[0].Status)
		assert.Equal(t, 1, diffs[0].Additions)
		assert.Equal(t, 1, diffs[0].Deletions)
		assert.Contains(t, diffs[0].Patch, "--- a/a.txt")
		assert.Contains(t, diffs[0].Patch, "-two")
		assert.Contains(t, diffs[0].Patch, "+2")
	})

	t.Run("should report a change of the final newline alone", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "hello"))
		commit := f.commit(t, "feature", "terminate a", write("a.txt", "hello\n"))

		// when
		diffs := diff(t, f, commands.DiffInput{Base: "main", Head: "feature"})

		// then
		assert.Equal(t, entities.CommitStats{Additions: 1, Deletions: 1}, commit.Stats)
		require.Len(t, diffs, 1)
		assert.Equal(t, entities.DiffModified, diffs[0].Status)
		assert.Equal(t, 1, diffs[0].Additions)
		assert.Equal(t, 1, diffs[0].Deletions)
		assert.Contains(t, diffs[0].Patch, "\\ No newline at end of file")
	})

	t.Run("should decide added and deleted from presence on each side", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "a\n"))
		f.commit(t, "feature", "swap", remove("a.txt"), write("b.txt", "b\n"))

		// when
		diffs := diff(t, f, commands.DiffInput{Base: "main", Head: "feature", Source: entities.DiffSourceContent})

		// then
		require.Len(t, diffs, 2)
		assert.Equal(t, "a.txt", diffs[0].FilePath)
		assert.Equal(t, entities.DiffDeleted, diffs[0].Status)
		assert.Contains(t, diffs[0].Patch, "+++ /dev/null")
		assert.Equal(t, "b.txt", diffs[1].FilePath)
		assert.Equal(t, entities.DiffAdded, diffs[1].Status)
		assert.Equal(t, 1, diffs[1].Additions)
	})

	t.Run("should present a git diff without reading documents", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.files.ListErr = assert.AnError
		f.git.Diff = entities.GitDiff{Files: []entities.GitFileDiff{
			{Path: "b.txt", Status: entities.DiffAdded, Additions: 2, Patch: "+x\n+y\n"},
		}}

		// when
		diffs := diff(t, f, commands.DiffInput{Base: "main", Head: "feature", Source: entities.DiffSourceGit})

		// then
		assert.Equal(t, []entities.FileDiff{
			{FilePath: "b.txt", Status: entities.DiffAdded, Additions: 2, Patch: "+x\n+y\n"},
		}, diffs)
	})

	t.Run("should reject an unknown source and hostile branch names", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		command := commands.NewDiffCommand(f.repos, f.files, f.git)

		for _, input := range []commands.DiffInput{
			{RepositoryID: "repo-1", Base: "main", Head: "feature", Source: "svn"},
			{RepositoryID: "repo-1", Base: "main", Head: "--output=/tmp/x"},
			{RepositoryID: "repo-1", Base: "a..b", Head: "main"},
		} {
			// when
			_, err := command.Execute(context.Background(), input)

			// then
			var validationErr *entities.ValidationError
			assert.ErrorAs(t, err, &validationErr, "input %+v", input)
		}
	})
}
