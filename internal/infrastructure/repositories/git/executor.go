package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// CommandResult is the captured outcome of one git invocation.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandExecutor runs one git subcommand with an argument list in a directory.
// Implementations never build a shell string.
type CommandExecutor interface {
	Execute(ctx context.Context, dir string, args ...string) (*CommandResult, error)
}

// CLICommandExecutor executes the git binary through os/exec.
type CLICommandExecutor struct {
	binary string
}

// NewCLICommandExecutor creates an executor for the configured git binary.
func NewCLICommandExecutor(settings *entities.Settings) *CLICommandExecutor {
	return &CLICommandExecutor{binary: settings.GitBinary}
}

// Execute runs git and returns its output when it exits 0. Any other outcome,
// spawn failures included, is reported as a *entities.CommandError carrying stderr.
func (e *CLICommandExecutor) Execute(ctx context.Context, dir string, args ...string) (*CommandResult, error) {
	logger.Debugf("$ %s %s (in %s)", e.binary, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = dir
	// fixed locale keeps the messages matched below ("conflict", "nothing to commit") stable
	cmd.Env = append(os.Environ(), "LC_ALL=C", "GIT_TERMINAL_PROMPT=0", "GIT_EDITOR=true")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if runErr == nil {
		return result, nil
	}

	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}

	return result, &entities.CommandError{
		Args:     args,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		Err:      runErr,
	}
}
