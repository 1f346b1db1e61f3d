//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/test/domain/entitybuilders"
)

func TestRepositoryBranchHeads(t *testing.T) {
	t.Parallel()

	t.Run("should move an existing head", func(t *testing.T) {
		t.Parallel()

		// given
		repo := entitybuilders.NewRepositoryBuilder().BuildRepository()

		// when
		repo.SetBranchHead("main", "abc")

		// then
		head, ok := repo.Branch("main")
		assert.True(t, ok)
		assert.Equal(t, "abc", head.HeadCommit)
		assert.Len(t, repo.Branches, 1)
	})

	t.Run("should add an unknown branch", func(t *testing.T) {
		t.Parallel()

		// given
		repo := entitybuilders.NewRepositoryBuilder().BuildRepository()

		// when
		repo.SetBranchHead("feature", "def")

		// then
		assert.Equal(t, []string{"main", "feature"}, repo.BranchNames())
	})
}

func TestFilePaths(t *testing.T) {
	t.Parallel()

	t.Run("should derive name and parent from the path", func(t *testing.T) {
		t.Parallel()

		// given
		file := &entities.File{Path: "docs/guide/intro.md"}

		// when
		name, parent := file.Name(), file.Parent()

		// then
		assert.Equal(t, "intro.md", name)
		assert.Equal(t, "docs/guide", parent)
	})

	t.Run("should place top-level entries under the root", func(t *testing.T) {
		t.Parallel()

		// given / when
		parent := entities.ParentDir("a.txt")

		// then
		assert.Empty(t, parent)
	})
}
