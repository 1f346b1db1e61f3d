package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitvault/internal/domain/repositories"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/mirror"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/notifier"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// git layer
	if err := container.Provide(git.NewRepositoryStore); err != nil {
		return err
	}
	if err := container.Provide(git.NewCLICommandExecutor); err != nil {
		return err
	}
	if err := container.Provide(git.NewTreeReader); err != nil {
		return err
	}
	if err := container.Provide(func(impl *git.CLICommandExecutor) git.CommandExecutor {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(git.NewCLIGitRepository); err != nil {
		return err
	}

	// document mirror
	if err := container.Provide(mirror.NewDB); err != nil {
		return err
	}
	if err := container.Provide(mirror.NewBadgerRepositoryStore); err != nil {
		return err
	}
	if err := container.Provide(mirror.NewBadgerCommitStore); err != nil {
		return err
	}
	if err := container.Provide(mirror.NewBadgerFileStore); err != nil {
		return err
	}
	if err := container.Provide(mirror.NewBadgerCommentStore); err != nil {
		return err
	}

	if err := container.Provide(notifier.NewLogNotifierRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	return bindInterfaces(container)
}

func bindInterfaces(container *dig.Container) error {
	for _, binding := range []any{
		func(impl *git.CLIGitRepository) repositories.GitRepository { return impl },
		func(impl *mirror.BadgerRepositoryStore) repositories.RepositoryStore { return impl },
		func(impl *mirror.BadgerCommitStore) repositories.CommitStore { return impl },
		func(impl *mirror.BadgerFileStore) repositories.FileStore { return impl },
		func(impl *mirror.BadgerCommentStore) repositories.CommentStore { return impl },
		func(impl *notifier.LogNotifierRepository) repositories.NotifierRepository { return impl },
	} {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}
	return nil
}
