package commands

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// maxUploadSize bounds the bytes read from one upload.
const maxUploadSize = 10 << 20

// UploadInput is one file upload routed through the commit path.
type UploadInput struct {
	RepositoryID string
	Branch       string
	Path         string
	Message      string
	Author       entities.Author
	Content      io.Reader
}

// Upload is the interface for uploading a text file.
type Upload interface {
	Execute(ctx context.Context, input UploadInput) (*entities.Commit, error)
}

// UploadCommand reads an upload as text and commits it as an add or a modify.
// Binary content belongs to the attachment pipeline and is rejected.
type UploadCommand struct {
	commit Commit
}

// NewUploadCommand creates a new UploadCommand.
func NewUploadCommand(commit Commit) *UploadCommand {
	return &UploadCommand{commit: commit}
}

func (it *UploadCommand) Execute(ctx context.Context, input UploadInput) (*entities.Commit, error) {
	if err := entities.ValidateFilePath(input.Path); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(input.Content, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", input.Path, err)
	}
	if len(data) > maxUploadSize {
		return nil, &entities.ValidationError{Field: "upload", Value: input.Path, Reason: "exceeds 10 MiB"}
	}
	if !utf8.Valid(data) {
		return nil, &entities.ValidationError{Field: "upload", Value: input.Path, Reason: "is not UTF-8 text"}
	}

	message := input.Message
	if message == "" {
		message = "Upload " + input.Path
	}

	return it.commit.Execute(ctx, CommitInput{
		RepositoryID: input.RepositoryID,
		Branch:       input.Branch,
		Message:      message,
		Author:       input.Author,
		Files:        []entities.FileInput{{Path: input.Path, Content: string(data)}},
	})
}
