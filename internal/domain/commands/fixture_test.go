//go:build unit || integration

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/commands"
	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gitvault/test/infrastructure/repositorydoubles"
)

// fixture wires commands to in-memory stores and a git spy around one repository "repo-1" of project "p1".
type fixture struct {
	settings *entities.Settings
	repos    *doubles.InMemoryRepositoryStore
	commits  *doubles.InMemoryCommitStore
	files    *doubles.InMemoryFileStore
	comments *doubles.InMemoryCommentStore
	git      *doubles.SpyGitRepository
	notifier *doubles.SpyNotifierRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		settings: entities.DefaultSettings(),
		repos:    doubles.NewInMemoryRepositoryStore(),
		commits:  doubles.NewInMemoryCommitStore(),
		files:    doubles.NewInMemoryFileStore(),
		comments: doubles.NewInMemoryCommentStore(),
		git:      &doubles.SpyGitRepository{CommitHash: "0123456789abcdef0123456789abcdef01234567"},
		notifier: &doubles.SpyNotifierRepository{},
	}
	require.NoError(t, f.repos.Create(context.Background(), entitybuilders.NewRepositoryBuilder().BuildRepository()))
	return f
}

func (f *fixture) commitCommand() *commands.CommitCommand {
	return commands.NewCommitCommand(f.settings, f.repos, f.commits, f.files, f.git, f.notifier)
}

// commit records one change set on branch through the commit synchronizer.
func (f *fixture) commit(t *testing.T, branch, message string, files ...entities.FileInput) *entities.Commit {
	t.Helper()
	commit, err := f.commitCommand().Execute(context.Background(), commands.CommitInput{
		RepositoryID: "repo-1",
		Branch:       branch,
		Message:      message,
		Files:        files,
	})
	require.NoError(t, err)
	return commit
}

func (f *fixture) paths(t *testing.T, branch string) []string {
	t.Helper()
	docs, err := f.files.ListByBranch(context.Background(), "repo-1", branch)
	require.NoError(t, err)
	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		paths = append(paths, doc.Path)
	}
	return paths
}

func write(path, content string) entities.FileInput {
	return entities.FileInput{Path: path, Content: content}
}

func remove(path string) entities.FileInput {
	return entities.FileInput{Path: path, IsDelete: true}
}
