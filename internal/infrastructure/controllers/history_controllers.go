package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// LogController handles "log".
type LogController struct {
	commits commands.ListCommits
	gitLog  commands.GitLog
}

// NewLogController creates a new LogController.
func NewLogController(commits commands.ListCommits, gitLog commands.GitLog) *LogController {
	return &LogController{commits: commits, gitLog: gitLog}
}

func (it *LogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "log",
		Short: "Show the history of a branch",
		Long: `Show the commits of a branch, newest first. By default the commit
documents are listed, with their changed files and line stats; --git lists
the history recorded by git instead.`,
		Args: cobra.NoArgs,
	}
}

func (it *LogController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	branch, _ := cmd.Flags().GetString("branch")
	path, _ := cmd.Flags().GetString("path")
	limit, _ := cmd.Flags().GetInt("limit")
	fromGit, _ := cmd.Flags().GetBool("git")

	input := commands.HistoryInput{
		RepositoryID: repositoryRef(cmd),
		Branch:       branch,
		Path:         path,
		Limit:        limit,
	}

	if fromGit {
		commits, err := it.gitLog.Execute(ctx, input)
		if err != nil {
			logger.Errorf("Reading log failed: %v", err)
			return
		}
		render(cmd, commits)
		return
	}

	commits, err := it.commits.Execute(ctx, input)
	if err != nil {
		logger.Errorf("Reading log failed: %v", err)
		return
	}
	render(cmd, commits)
}

func (it *LogController) AddFlags(cmd *cobra.Command) {
	addBranchFlag(cmd, "Branch to read (default: the default branch)")
	cmd.Flags().String("path", "", "Only commits touching this path")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of commits (default: history_limit)")
	cmd.Flags().Bool("git", false, "Read the history recorded by git")
}

// ShowController handles "show".
type ShowController struct {
	command commands.GetCommit
}

// NewShowController creates a new ShowController.
func NewShowController(command commands.GetCommit) *ShowController {
	return &ShowController{command: command}
}

func (it *ShowController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "show <commit>",
		Short: "Show one commit document by hash or id",
		Args:  cobra.ExactArgs(1),
	}
}

func (it *ShowController) Execute(cmd *cobra.Command, args []string) {
	commit, err := it.command.Execute(context.Background(), repositoryRef(cmd), args[0])
	if err != nil {
		logger.Errorf("Reading commit %q failed: %v", args[0], err)
		return
	}
	render(cmd, commit)
}

func (it *ShowController) AddFlags(_ *cobra.Command) {}

// StatsController handles "stats".
type StatsController struct {
	command commands.Stats
}

// NewStatsController creates a new StatsController.
func NewStatsController(command commands.Stats) *StatsController {
	return &StatsController{command: command}
}

func (it *StatsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "stats",
		Short: "Show commit, contributor and file counters",
		Args:  cobra.NoArgs,
	}
}

func (it *StatsController) Execute(cmd *cobra.Command, _ []string) {
	stats, err := it.command.Execute(context.Background(), repositoryRef(cmd))
	if err != nil {
		logger.Errorf("Reading stats failed: %v", err)
		return
	}
	render(cmd, stats)
}

func (it *StatsController) AddFlags(_ *cobra.Command) {}

// AnalyticsController handles "analytics".
type AnalyticsController struct {
	command commands.Analytics
}

// NewAnalyticsController creates a new AnalyticsController.
func NewAnalyticsController(command commands.Analytics) *AnalyticsController {
	return &AnalyticsController{command: command}
}

func (it *AnalyticsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analytics",
		Short: "Summarize the history of every branch",
		Long: `Walk the history of every branch and summarize it. A commit reachable
from several branches is counted once.`,
		Args: cobra.NoArgs,
	}
}

func (it *AnalyticsController) Execute(cmd *cobra.Command, _ []string) {
	analytics, err := it.command.Execute(context.Background(), repositoryRef(cmd))
	if err != nil {
		logger.Errorf("Computing analytics failed: %v", err)
		return
	}
	render(cmd, analytics)
}

func (it *AnalyticsController) AddFlags(_ *cobra.Command) {}
