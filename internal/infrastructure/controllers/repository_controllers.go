package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// RepositoryCreateController handles "repo create".
type RepositoryCreateController struct {
	command commands.CreateRepository
}

// NewRepositoryCreateController creates a new RepositoryCreateController.
func NewRepositoryCreateController(command commands.CreateRepository) *RepositoryCreateController {
	return &RepositoryCreateController{command: command}
}

func (it *RepositoryCreateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "repo",
		Use:   "create <project-id>",
		Short: "Create the repository of a project",
		Long: `Create the repository document of a project and initialize its
on-disk git repository with an initial commit on the default branch.
A project has at most one repository.`,
		Args: cobra.ExactArgs(1),
	}
}

func (it *RepositoryCreateController) Execute(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner = author(cmd).Name
	}

	repo, err := it.command.Execute(context.Background(), commands.CreateRepositoryInput{
		ProjectID:   args[0],
		Name:        name,
		Description: description,
		Owner:       owner,
	})
	if err != nil {
		logger.Errorf("Creating repository failed: %v", err)
		return
	}
	render(cmd, repo)
}

func (it *RepositoryCreateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Display name (default: the project id)")
	cmd.Flags().String("description", "", "Repository description")
	cmd.Flags().String("owner", "", "Owner of the repository (default: --author)")
}

// RepositoryGetController handles "repo get".
type RepositoryGetController struct {
	command commands.GetRepository
}

// NewRepositoryGetController creates a new RepositoryGetController.
func NewRepositoryGetController(command commands.GetRepository) *RepositoryGetController {
	return &RepositoryGetController{command: command}
}

func (it *RepositoryGetController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "repo",
		Use:   "get <repository-or-project-id>",
		Short: "Show a repository",
		Args:  cobra.ExactArgs(1),
	}
}

func (it *RepositoryGetController) Execute(cmd *cobra.Command, args []string) {
	repo, err := it.command.Execute(context.Background(), args[0])
	if err != nil {
		logger.Errorf("Getting repository failed: %v", err)
		return
	}
	render(cmd, repo)
}

func (it *RepositoryGetController) AddFlags(_ *cobra.Command) {}

// ReconcileController handles "reconcile".
type ReconcileController struct {
	command commands.Reconcile
}

// NewReconcileController creates a new ReconcileController.
func NewReconcileController(command commands.Reconcile) *ReconcileController {
	return &ReconcileController{command: command}
}

func (it *ReconcileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "reconcile",
		Short: "Rebuild the file documents of a branch from git",
		Long: `Rewrite the file documents of a branch so they match the git tree at
its tip. Use it to repair drift after a commit whose git step failed.
Commit history is left untouched.`,
		Args: cobra.NoArgs,
	}
}

func (it *ReconcileController) Execute(cmd *cobra.Command, _ []string) {
	branch, _ := cmd.Flags().GetString("branch")
	report, err := it.command.Execute(context.Background(), commands.ReconcileInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
	})
	if err != nil {
		logger.Errorf("Reconcile failed: %v", err)
		return
	}
	render(cmd, report)
}

func (it *ReconcileController) AddFlags(cmd *cobra.Command) {
	addBranchFlag(cmd, "Branch to rebuild (default: the default branch)")
}
