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

func TestCommentCommands(t *testing.T) {
	t.Parallel()

	fileID := func(t *testing.T, f *fixture, path string) string {
		t.Helper()
		doc, err := f.files.GetByPath(context.Background(), "repo-1", "main", path)
		require.NoError(t, err)
		return doc.ID
	}

	t.Run("should attach a trimmed comment to a file line", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "one\ntwo\n"))
		id := fileID(t, f, "a.txt")

		// when
		comment, err := commands.NewCreateCommentCommand(f.files, f.comments).Execute(context.Background(),
			commands.CreateCommentInput{FileID: id, Line: 2, Author: "alice", Body: "  typo here \n"})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "repo-1", comment.RepositoryID)
		assert.Equal(t, "typo here", comment.Body)
		listed, err := commands.NewListCommentsCommand(f.comments).Execute(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, comment.ID, listed[0].ID)
	})

	t.Run("should reject a line before the first", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "one"))

		// when
		_, err := commands.NewCreateCommentCommand(f.files, f.comments).Execute(context.Background(),
			commands.CreateCommentInput{FileID: fileID(t, f, "a.txt"), Line: 0, Body: "x"})

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("should reject comments on directories and unknown files", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("docs/a.md", "a"))
		command := commands.NewCreateCommentCommand(f.files, f.comments)

		// when
		_, dirErr := command.Execute(context.Background(),
			commands.CreateCommentInput{FileID: fileID(t, f, "docs"), Line: 1, Body: "x"})
		_, unknownErr := command.Execute(context.Background(),
			commands.CreateCommentInput{FileID: "missing", Line: 1, Body: "x"})

		// then
		var validationErr *entities.ValidationError
		assert.ErrorAs(t, dirErr, &validationErr)
		assert.True(t, entities.IsNotFound(unknownErr))
	})

	t.Run("should edit and delete a comment", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.commit(t, "main", "add a", write("a.txt", "one"))
		created, err := commands.NewCreateCommentCommand(f.files, f.comments).Execute(context.Background(),
			commands.CreateCommentInput{FileID: fileID(t, f, "a.txt"), Line: 1, Body: "first"})
		require.NoError(t, err)

		// when
		updated, updateErr := commands.NewUpdateCommentCommand(f.comments).Execute(context.Background(), created.ID, "second")
		_, blankErr := commands.NewUpdateCommentCommand(f.comments).Execute(context.Background(), created.ID, " ")
		deleteErr := commands.NewDeleteCommentCommand(f.comments).Execute(context.Background(), created.ID)

		// then
		require.NoError(t, updateErr)
		assert.Equal(t, "second", updated.Body)
		assert.Equal(t, created.FileID, updated.FileID)
		assert.Error(t, blankErr)
		require.NoError(t, deleteErr)
		_, getErr := f.comments.Get(context.Background(), created.ID)
		assert.True(t, entities.IsNotFound(getErr))
	})
}
