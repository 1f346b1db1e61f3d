//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitvault/internal/infrastructure/repositories"
	"github.com/rios0rios0/gitvault/internal/infrastructure/repositories/mirror"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should resolve every port from the container", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.RepositoriesRoot = t.TempDir()
		settings.MirrorPath = t.TempDir()
		container := dig.New()
		require.NoError(t, container.Provide(func() *entities.Settings { return settings }))

		// when
		err := infraRepos.RegisterProviders(container)

		// then
		require.NoError(t, err)
		err = container.Invoke(func(
			db *mirror.DB,
			_ repositories.GitRepository,
			_ repositories.RepositoryStore,
			_ repositories.CommitStore,
			_ repositories.FileStore,
			_ repositories.CommentStore,
			_ repositories.NotifierRepository,
		) {
			assert.NoError(t, db.Close())
		})
		assert.NoError(t, err)
	})
}
