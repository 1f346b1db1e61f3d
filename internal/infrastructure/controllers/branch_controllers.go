package controllers

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// BranchListController handles "branch ls".
type BranchListController struct {
	command commands.ListBranches
}

// NewBranchListController creates a new BranchListController.
func NewBranchListController(command commands.ListBranches) *BranchListController {
	return &BranchListController{command: command}
}

func (it *BranchListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "branch",
		Use:   "ls",
		Short: "List the branches of a repository",
		Args:  cobra.NoArgs,
	}
}

func (it *BranchListController) Execute(cmd *cobra.Command, _ []string) {
	branches, err := it.command.Execute(context.Background(), repositoryRef(cmd))
	if err != nil {
		logger.Errorf("Listing branches failed: %v", err)
		return
	}
	render(cmd, branches)
}

func (it *BranchListController) AddFlags(_ *cobra.Command) {}

// BranchCreateController handles "branch create".
type BranchCreateController struct {
	command commands.CreateBranch
}

// NewBranchCreateController creates a new BranchCreateController.
func NewBranchCreateController(command commands.CreateBranch) *BranchCreateController {
	return &BranchCreateController{command: command}
}

func (it *BranchCreateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "branch",
		Use:   "create <name>",
		Short: "Create a branch",
		Long: `Create a branch from another one. Creating a branch that already
exists succeeds, reports existed: true and leaves the branch where it was.`,
		Args: cobra.ExactArgs(1),
	}
}

func (it *BranchCreateController) Execute(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	result, err := it.command.Execute(context.Background(), commands.CreateBranchInput{
		RepositoryID: repositoryRef(cmd),
		Name:         args[0],
		From:         from,
		Actor:        author(cmd).Name,
	})
	if err != nil {
		logger.Errorf("Creating branch failed: %v", err)
		return
	}
	render(cmd, result)
}

func (it *BranchCreateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Branch to start from (default: the default branch)")
}

// BranchMergeController handles "branch merge".
type BranchMergeController struct {
	command commands.MergeBranches
}

// NewBranchMergeController creates a new BranchMergeController.
func NewBranchMergeController(command commands.MergeBranches) *BranchMergeController {
	return &BranchMergeController{command: command}
}

func (it *BranchMergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "branch",
		Use:   "merge <base> <head>",
		Short: "Merge head into base with a merge commit",
		Long: `Merge head into base, always creating a merge commit. When the branches
conflict the merge is aborted, the conflicting paths are reported and the
repository is left as it was.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // base and head
	}
}

func (it *BranchMergeController) Execute(cmd *cobra.Command, args []string) {
	message, _ := cmd.Flags().GetString("message")
	result, err := it.command.Execute(context.Background(), commands.MergeBranchesInput{
		RepositoryID: repositoryRef(cmd),
		Base:         args[0],
		Head:         args[1],
		Message:      message,
		Actor:        author(cmd).Name,
	})

	var conflictErr *entities.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		render(cmd, result)
		logger.Warnf("Merge aborted: %v", err)
	case err != nil:
		logger.Errorf("Merge failed: %v", err)
	default:
		render(cmd, result)
	}
}

func (it *BranchMergeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Merge commit message")
}

// BranchCompareController handles "branch compare".
type BranchCompareController struct {
	command commands.CompareBranches
}

// NewBranchCompareController creates a new BranchCompareController.
func NewBranchCompareController(command commands.CompareBranches) *BranchCompareController {
	return &BranchCompareController{command: command}
}

func (it *BranchCompareController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "branch",
		Use:   "compare <base> <head>",
		Short: "List the commits of head that base does not have",
		Args:  cobra.ExactArgs(2), //nolint:mnd // base and head
	}
}

func (it *BranchCompareController) Execute(cmd *cobra.Command, args []string) {
	commits, err := it.command.Execute(context.Background(), commands.CompareBranchesInput{
		RepositoryID: repositoryRef(cmd),
		Base:         args[0],
		Head:         args[1],
	})
	if err != nil {
		logger.Errorf("Compare failed: %v", err)
		return
	}
	render(cmd, commits)
}

func (it *BranchCompareController) AddFlags(_ *cobra.Command) {}
