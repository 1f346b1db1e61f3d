package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// FilesListController handles "files ls".
type FilesListController struct {
	command commands.ListFiles
}

// NewFilesListController creates a new FilesListController.
func NewFilesListController(command commands.ListFiles) *FilesListController {
	return &FilesListController{command: command}
}

func (it *FilesListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "files",
		Use:   "ls [dir]",
		Short: "List one directory of a branch",
		Args:  cobra.MaximumNArgs(1),
	}
}

func (it *FilesListController) Execute(cmd *cobra.Command, args []string) {
	branch, _ := cmd.Flags().GetString("branch")
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	entries, err := it.command.Execute(context.Background(), commands.ListFilesInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
		Dir:          dir,
	})
	if err != nil {
		logger.Errorf("Listing files failed: %v", err)
		return
	}
	render(cmd, entries)
}

func (it *FilesListController) AddFlags(cmd *cobra.Command) {
	addBranchFlag(cmd, "Branch to list (default: the default branch)")
}

// FilesShowController handles "files show".
type FilesShowController struct {
	command commands.GetFileContent
}

// NewFilesShowController creates a new FilesShowController.
func NewFilesShowController(command commands.GetFileContent) *FilesShowController {
	return &FilesShowController{command: command}
}

func (it *FilesShowController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "files",
		Use:   "show [path]",
		Short: "Print the content of a file",
		Long: `Print the content of a file, addressed by path on a branch or by
document id with --id. A file that does not exist prints nothing.`,
		Args: cobra.MaximumNArgs(1),
	}
}

func (it *FilesShowController) Execute(cmd *cobra.Command, args []string) {
	branch, _ := cmd.Flags().GetString("branch")
	fileID, _ := cmd.Flags().GetString("id")
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	content, err := it.command.Execute(context.Background(), commands.GetFileContentInput{
		RepositoryID: repositoryRef(cmd),
		FileID:       fileID,
		Branch:       branch,
		Path:         path,
	})
	if err != nil {
		logger.Errorf("Reading file failed: %v", err)
		return
	}
	_, _ = cmd.OutOrStdout().Write([]byte(content))
}

func (it *FilesShowController) AddFlags(cmd *cobra.Command) {
	addBranchFlag(cmd, "Branch to read from (default: the default branch)")
	cmd.Flags().String("id", "", "File document id")
}

// FilesSearchController handles "files search".
type FilesSearchController struct {
	command commands.SearchFiles
}

// NewFilesSearchController creates a new FilesSearchController.
func NewFilesSearchController(command commands.SearchFiles) *FilesSearchController {
	return &FilesSearchController{command: command}
}

func (it *FilesSearchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Group: "files",
		Use:   "search <query>",
		Short: "Find files by approximate path",
		Args:  cobra.ExactArgs(1),
	}
}

func (it *FilesSearchController) Execute(cmd *cobra.Command, args []string) {
	branch, _ := cmd.Flags().GetString("branch")
	limit, _ := cmd.Flags().GetInt("limit")

	files, err := it.command.Execute(context.Background(), commands.SearchFilesInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
		Query:        args[0],
		Limit:        limit,
	})
	if err != nil {
		logger.Errorf("Searching files failed: %v", err)
		return
	}

	entries := make([]entities.TreeEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, entities.TreeEntry{Name: file.Name(), Type: entities.TreeEntryFile, Path: file.Path})
	}
	render(cmd, entries)
}

func (it *FilesSearchController) AddFlags(cmd *cobra.Command) {
	addBranchFlag(cmd, "Branch to search (default: the default branch)")
	cmd.Flags().Int("limit", 0, "Maximum number of results")
}
