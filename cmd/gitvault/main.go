package main

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitvault/internal"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

//nolint:gochecknoglobals // group parents shown in the root help
var groupShorts = map[string]string{
	"repo":    "Create and inspect repositories",
	"files":   "Browse the files of a branch",
	"branch":  "List, create, merge and compare branches",
	"comment": "Manage line comments on files",
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitvault",
		Short: "Embedded version control for project repositories",
		Long: `gitvault keeps one git repository per project on local disk and a
queryable mirror of its files and commits in an embedded document store.

Commits are written to the mirror first and then to git. The mirror is
authoritative; when the git step fails the commit is kept and can be
replayed into the mirror from git later with "gitvault reconcile".`,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().StringP("repo", "r", "",
		"Repository id or project id to operate on")
	cmd.PersistentFlags().String("author", "",
		"Name the change is attributed to (default: bot_name)")
	cmd.PersistentFlags().String("email", "",
		"Email the change is attributed to (default: bot_email)")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	groups := make(map[string]*cobra.Command)
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		ctrl.AddFlags(subCmd)

		if bind.Group == "" {
			rootCmd.AddCommand(subCmd)
			continue
		}

		parent, ok := groups[bind.Group]
		if !ok {
			//nolint:exhaustruct // Minimal Command initialization with required fields only
			parent = &cobra.Command{
				Use:   bind.Group,
				Short: groupShorts[bind.Group],
			}
			groups[bind.Group] = parent
			rootCmd.AddCommand(parent)
		}
		parent.AddCommand(subCmd)
	}
}

// configPathFromArgs finds --config before cobra parses the command line,
// because the settings are needed to build the commands themselves.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		}
	}
	return ""
}

func configureLogger(settings *entities.Settings) {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
		FullTimestamp: true,
	})

	if level, err := logger.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}
}

func main() {
	settings, err := entities.LoadSettings(configPathFromArgs(os.Args[1:]))
	if err != nil {
		logger.Fatalf("Error loading settings: %s", err)
	}
	configureLogger(settings)

	// Inject controllers via DIG
	appContext, err := injectAppContext(settings)
	if err != nil {
		logger.Fatalf("Error starting 'gitvault': %s", err)
	}

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, appContext)

	execErr := cobraRoot.Execute()
	if closeErr := appContext.Close(); closeErr != nil {
		logger.Errorf("Error closing the document mirror: %s", closeErr)
	}
	if execErr != nil {
		logger.Fatalf("Error executing 'gitvault': %s", execErr)
	}
}
