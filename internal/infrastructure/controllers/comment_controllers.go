package controllers

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// CommentAddController handles "comment add".
type CommentAddController struct {
	command commands.CreateComment
}

// NewCommentAddController creates a new CommentAddController.
func NewCommentAddController(command commands.CreateComment) *CommentAddController {
	return &CommentAddController{command: command}
}

func (it *CommentAddController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "comment",
		Use:   "add <file-id> <body>...",
		Short: "Comment on a line of a file",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // file id and body
	}
}

func (it *CommentAddController) Execute(cmd *cobra.Command, args []string) {
	line, _ := cmd.Flags().GetInt("line")
	comment, err := it.command.Execute(context.Background(), commands.CreateCommentInput{
		FileID: args[0],
		Line:   line,
		Author: author(cmd).Name,
		Body:   strings.Join(args[1:], " "),
	})
	if err != nil {
		logger.Errorf("Adding comment failed: %v", err)
		return
	}
	render(cmd, comment)
}

func (it *CommentAddController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("line", "l", 1, "Line the comment refers to")
}

// CommentListController handles "comment ls".
type CommentListController struct {
	command commands.ListComments
}

// NewCommentListController creates a new CommentListController.
func NewCommentListController(command commands.ListComments) *CommentListController {
	return &CommentListController{command: command}
}

func (it *CommentListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "comment",
		Use:   "ls <file-id>",
		Short: "List the comments of a file",
		Args:  cobra.ExactArgs(1),
	}
}

func (it *CommentListController) Execute(cmd *cobra.Command, args []string) {
	comments, err := it.command.Execute(context.Background(), args[0])
	if err != nil {
		logger.Errorf("Listing comments failed: %v", err)
		return
	}
	render(cmd, comments)
}

func (it *CommentListController) AddFlags(_ *cobra.Command) {}

// CommentEditController handles "comment edit".
type CommentEditController struct {
	command commands.UpdateComment
}

// NewCommentEditController creates a new CommentEditController.
func NewCommentEditController(command commands.UpdateComment) *CommentEditController {
	return &CommentEditController{command: command}
}

func (it *CommentEditController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "comment",
		Use:   "edit <comment-id> <body>...",
		Short: "Replace the body of a comment",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // comment id and body
	}
}

func (it *CommentEditController) Execute(cmd *cobra.Command, args []string) {
	comment, err := it.command.Execute(context.Background(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		logger.Errorf("Editing comment failed: %v", err)
		return
	}
	render(cmd, comment)
}

func (it *CommentEditController) AddFlags(_ *cobra.Command) {}

// CommentRemoveController handles "comment rm".
type CommentRemoveController struct {
	command commands.DeleteComment
}

// NewCommentRemoveController creates a new CommentRemoveController.
func NewCommentRemoveController(command commands.DeleteComment) *CommentRemoveController {
	return &CommentRemoveController{command: command}
}

func (it *CommentRemoveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "comment",
		Use:   "rm <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
	}
}

func (it *CommentRemoveController) Execute(_ *cobra.Command, args []string) {
	if err := it.command.Execute(context.Background(), args[0]); err != nil {
		logger.Errorf("Deleting comment failed: %v", err)
		return
	}
	logger.Infof("Deleted comment %s", args[0])
}

func (it *CommentRemoveController) AddFlags(_ *cobra.Command) {}
