package commands

import (
	"context"
	"strings"
	"time"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// CreateCommentInput attaches a comment to one line of a File document.
type CreateCommentInput struct {
	FileID string
	Line   int
	Author string
	Body   string
}

// CreateComment is the interface for commenting on a file line.
type CreateComment interface {
	Execute(ctx context.Context, input CreateCommentInput) (*entities.Comment, error)
}

// CreateCommentCommand stores a line comment on an existing file.
type CreateCommentCommand struct {
	files    repositories.FileStore
	comments repositories.CommentStore
}

// NewCreateCommentCommand creates a new CreateCommentCommand.
func NewCreateCommentCommand(
	files repositories.FileStore,
	comments repositories.CommentStore,
) *CreateCommentCommand {
	return &CreateCommentCommand{files: files, comments: comments}
}

func (it *CreateCommentCommand) Execute(ctx context.Context, input CreateCommentInput) (*entities.Comment, error) {
	body, err := validateCommentBody(input.Body)
	if err != nil {
		return nil, err
	}
	if input.Line < 1 {
		return nil, &entities.ValidationError{Field: "line", Value: "", Reason: "must be 1 or greater"}
	}

	file, err := it.files.Get(ctx, input.FileID)
	if err != nil {
		return nil, err
	}
	if file.IsDirectory {
		return nil, &entities.ValidationError{Field: "file", Value: file.Path, Reason: "is a directory"}
	}

	now := time.Now().UTC()
	comment := &entities.Comment{
		RepositoryID: file.RepositoryID,
		FileID:       file.ID,
		Line:         input.Line,
		Author:       input.Author,
		Body:         body,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = it.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments is the interface for the comments of a file.
type ListComments interface {
	Execute(ctx context.Context, fileID string) ([]entities.Comment, error)
}

// ListCommentsCommand lists the comments of a file ordered by line.
type ListCommentsCommand struct {
	comments repositories.CommentStore
}

// NewListCommentsCommand creates a new ListCommentsCommand.
func NewListCommentsCommand(comments repositories.CommentStore) *ListCommentsCommand {
	return &ListCommentsCommand{comments: comments}
}

func (it *ListCommentsCommand) Execute(ctx context.Context, fileID string) ([]entities.Comment, error) {
	return it.comments.ListByFile(ctx, fileID)
}

// UpdateComment is the interface for editing a comment.
type UpdateComment interface {
	Execute(ctx context.Context, id, body string) (*entities.Comment, error)
}

// UpdateCommentCommand replaces the body of a comment.
type UpdateCommentCommand struct {
	comments repositories.CommentStore
}

// NewUpdateCommentCommand creates a new UpdateCommentCommand.
func NewUpdateCommentCommand(comments repositories.CommentStore) *UpdateCommentCommand {
	return &UpdateCommentCommand{comments: comments}
}

func (it *UpdateCommentCommand) Execute(ctx context.Context, id, body string) (*entities.Comment, error) {
	body, err := validateCommentBody(body)
	if err != nil {
		return nil, err
	}

	comment, err := it.comments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Body = body
	comment.UpdatedAt = time.Now().UTC()
	if err = it.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is the interface for removing a comment.
type DeleteComment interface {
	Execute(ctx context.Context, id string) error
}

// DeleteCommentCommand removes a comment.
type DeleteCommentCommand struct {
	comments repositories.CommentStore
}

// NewDeleteCommentCommand creates a new DeleteCommentCommand.
func NewDeleteCommentCommand(comments repositories.CommentStore) *DeleteCommentCommand {
	return &DeleteCommentCommand{comments: comments}
}

func (it *DeleteCommentCommand) Execute(ctx context.Context, id string) error {
	return it.comments.Delete(ctx, id)
}

func validateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", &entities.ValidationError{Field: "comment", Value: body, Reason: "must not be empty"}
	}
	return body, nil
}
