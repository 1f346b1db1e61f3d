package controllers

import (
	"context"
	"fmt"
	"io"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// CommitController handles "commit".
type CommitController struct {
	command commands.Commit
	fs      afero.Fs
}

// NewCommitController creates a new CommitController reading local files from disk.
func NewCommitController(command commands.Commit) *CommitController {
	return NewCommitControllerWithFs(command, afero.NewOsFs())
}

// NewCommitControllerWithFs creates a new CommitController reading local files from fs.
func NewCommitControllerWithFs(command commands.Commit, fs afero.Fs) *CommitController {
	return &CommitController{command: command, fs: fs}
}

func (it *CommitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "commit",
		Short: "Commit a change set to a branch",
		Long: `Commit a change set to a branch of a repository.

Each --file takes "path=local-file": the content of local-file becomes the
content of path in the repository. Each --delete removes a path. The file
documents and the commit document are always written; the git commit is
best-effort and a failure there is reported as mirror_error.`,
		Args: cobra.NoArgs,
	}
}

func (it *CommitController) Execute(cmd *cobra.Command, _ []string) {
	message, _ := cmd.Flags().GetString("message")
	branch, _ := cmd.Flags().GetString("branch")
	sets, _ := cmd.Flags().GetStringArray("file")
	deletes, _ := cmd.Flags().GetStringArray("delete")

	files, err := it.changeSet(sets, deletes)
	if err != nil {
		logger.Errorf("Commit failed: %v", err)
		return
	}

	commit, err := it.command.Execute(context.Background(), commands.CommitInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
		Message:      message,
		Author:       author(cmd),
		Files:        files,
	})
	if err != nil {
		logger.Errorf("Commit failed: %v", err)
		return
	}
	render(cmd, commit)
}

func (it *CommitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Commit message")
	addBranchFlag(cmd, "Branch to commit to, created from the default branch when missing")
	cmd.Flags().StringArray("file", nil, `File to add or modify, as "path=local-file"`)
	cmd.Flags().StringArray("delete", nil, "Path to delete")
}

func (it *CommitController) changeSet(sets, deletes []string) ([]entities.FileInput, error) {
	files := make([]entities.FileInput, 0, len(sets)+len(deletes))
	for _, set := range sets {
		path, local, ok := strings.Cut(set, "=")
		if !ok || path == "" || local == "" {
			return nil, fmt.Errorf(`--file %q must look like "path=local-file"`, set)
		}
		content, err := afero.ReadFile(it.fs, local)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", local, err)
		}
		files = append(files, entities.FileInput{Path: path, Content: string(content)})
	}
	for _, path := range deletes {
		files = append(files, entities.FileInput{Path: path, IsDelete: true})
	}
	return files, nil
}

// UploadController handles "upload".
type UploadController struct {
	command commands.Upload
	fs      afero.Fs
}

// NewUploadController creates a new UploadController reading local files from disk.
func NewUploadController(command commands.Upload) *UploadController {
	return NewUploadControllerWithFs(command, afero.NewOsFs())
}

// NewUploadControllerWithFs creates a new UploadController reading local files from fs.
func NewUploadControllerWithFs(command commands.Upload, fs afero.Fs) *UploadController {
	return &UploadController{command: command, fs: fs}
}

func (it *UploadController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "upload <local-file|-> <path>",
		Short: "Upload a text file through the commit path",
		Args:  cobra.ExactArgs(2), //nolint:mnd // source and destination
	}
}

func (it *UploadController) Execute(cmd *cobra.Command, args []string) {
	message, _ := cmd.Flags().GetString("message")
	branch, _ := cmd.Flags().GetString("branch")

	var source io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		file, err := it.fs.Open(args[0])
		if err != nil {
			logger.Errorf("Upload failed: %v", err)
			return
		}
		defer file.Close()
		source = file
	}

	commit, err := it.command.Execute(context.Background(), commands.UploadInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
		Path:         args[1],
		Message:      message,
		Author:       author(cmd),
		Content:      source,
	})
	if err != nil {
		logger.Errorf("Upload failed: %v", err)
		return
	}
	render(cmd, commit)
}

func (it *UploadController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", `Commit message (default: "Upload <path>")`)
	addBranchFlag(cmd, "Branch to upload to (default: the default branch)")
}

// DiffController handles "diff".
type DiffController struct {
	command commands.Diff
}

// NewDiffController creates a new DiffController.
func NewDiffController(command commands.Diff) *DiffController {
	return &DiffController{command: command}
}

func (it *DiffController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "diff <base> <head>",
		Short: "Compare two branches",
		Long: `Compare two branches path by path.

With --source content (the default) the stored file documents are compared,
which reflects every commit even when its git step failed. With --source git
the refs are compared by git against their merge base.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // base and head
	}
}

func (it *DiffController) Execute(cmd *cobra.Command, args []string) {
	source, _ := cmd.Flags().GetString("source")
	patch, _ := cmd.Flags().GetBool("patch")

	diffs, err := it.command.Execute(context.Background(), commands.DiffInput{
		RepositoryID: repositoryRef(cmd),
		Base:         args[0],
		Head:         args[1],
		Source:       entities.DiffSource(source),
	})
	if err != nil {
		logger.Errorf("Diff failed: %v", err)
		return
	}

	if patch {
		for _, diff := range diffs {
			_, _ = io.WriteString(cmd.OutOrStdout(), diff.Patch)
		}
		return
	}
	render(cmd, diffs)
}

func (it *DiffController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", string(entities.DiffSourceContent), "Where to compare: content or git")
	cmd.Flags().Bool("patch", false, "Print the unified patches only")
}
