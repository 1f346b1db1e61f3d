//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

func TestValidateFilePath(t *testing.T) {
	t.Parallel()

	t.Run("should accept repository-relative paths", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"a.txt", "docs/readme.md", "my notes.txt", "a-b_c/d.e", "v1.2/CHANGELOG"} {
			// given / when
			err := entities.ValidateFilePath(p)

			// then
			assert.NoError(t, err, p)
		}
	})

	t.Run("should reject traversal, absolute paths and shell metacharacters", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{
			"", "..", "../x", "a/../b", "/etc/passwd", "a;b", "a|b", "a`b", "$(id)", "-rf", ".git/config", "a&b",
		} {
			// given / when
			err := entities.ValidateFilePath(p)

			// then
			var validationErr *entities.ValidationError
			require.Error(t, err, p)
			assert.True(t, errors.As(err, &validationErr), p)
			assert.Equal(t, "file path", validationErr.Field)
		}
	})
}

func TestValidateFilePathPortability(t *testing.T) {
	t.Parallel()

	t.Run("should reject names reserved on Windows file systems", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"aux.go", "docs/con.txt", "NUL", "lib/com1"} {
			// given / when
			err := entities.ValidateFilePath(p)

			// then
			var validationErr *entities.ValidationError
			assert.True(t, errors.As(err, &validationErr), p)
		}
	})

	t.Run("should accept names that only start like a reserved one", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"auxiliary.go", "console.txt", "docs/nullable.md"} {
			// given / when
			err := entities.ValidateFilePath(p)

			// then
			assert.NoError(t, err, p)
		}
	})
}

func TestValidateChangeSet(t *testing.T) {
	t.Parallel()

	t.Run("should accept sibling and nested paths that do not overlap", func(t *testing.T) {
		t.Parallel()

		// given
		files := []entities.FileInput{{Path: "a.txt"}, {Path: "docs/a.md"}, {Path: "docs/b/c.md"}, {Path: "old", IsDelete: true}}

		// when
		err := entities.ValidateChangeSet(files)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject a path listed twice", func(t *testing.T) {
		t.Parallel()

		// given
		files := []entities.FileInput{{Path: "a.txt"}, {Path: "a.txt", IsDelete: true}}

		// when
		err := entities.ValidateChangeSet(files)

		// then
		var validationErr *entities.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "a.txt", validationErr.Value)
	})

	t.Run("should reject a path below another path of the set in either order", func(t *testing.T) {
		t.Parallel()

		for _, files := range [][]entities.FileInput{
			{{Path: "x"}, {Path: "x/y"}},
			{{Path: "x/y/z"}, {Path: "x", IsDelete: true}},
		} {
			// given / when
			err := entities.ValidateChangeSet(files)

			// then
			var validationErr *entities.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, validationErr.Reason, "x is also in the change set")
		}
	})
}

func TestValidateBranchName(t *testing.T) {
	t.Parallel()

	t.Run("should accept conventional branch names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"main", "feature/login", "release-1.0", "user_x/fix.2"} {
			// given / when
			err := entities.ValidateBranchName(name)

			// then
			assert.NoError(t, err, name)
		}
	})

	t.Run("should reject names git or a shell would misread", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"", "-x", "a..b", "a b", "a;b", "x.lock", "/x", "x/", "a//b", "x."} {
			// given / when
			err := entities.ValidateBranchName(name)

			// then
			var validationErr *entities.ValidationError
			assert.True(t, errors.As(err, &validationErr), name)
		}
	})
}

func TestValidateDirectory(t *testing.T) {
	t.Parallel()

	t.Run("should treat an empty directory as the repository root", func(t *testing.T) {
		t.Parallel()

		// given / when
		err := entities.ValidateDirectory("")

		// then
		assert.NoError(t, err)
	})

	t.Run("should accept a trailing slash", func(t *testing.T) {
		t.Parallel()

		// given / when
		err := entities.ValidateDirectory("docs/")

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject traversal", func(t *testing.T) {
		t.Parallel()

		// given / when
		err := entities.ValidateDirectory("../")

		// then
		assert.Error(t, err)
	})
}

func TestValidateProjectID(t *testing.T) {
	t.Parallel()

	t.Run("should accept letters, digits, underscores and dashes", func(t *testing.T) {
		t.Parallel()

		// given / when
		err := entities.ValidateProjectID("p1_project-A")

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject ids that would escape the repositories root", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"", "..", "a/b", "a.b", "x y"} {
			// given / when
			err := entities.ValidateProjectID(id)

			// then
			assert.Error(t, err, id)
		}
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("should match not found errors through IsNotFound", func(t *testing.T) {
		t.Parallel()

		// given
		err := entities.NewNotFoundError("file", "main:a.txt")

		// when
		wrapped := errors.Join(errors.New("context"), err)

		// then
		assert.True(t, entities.IsNotFound(wrapped))
		assert.False(t, entities.IsNotFound(errors.New("other")))
		assert.Equal(t, `file "main:a.txt" not found`, err.Error())
	})

	t.Run("should report conflicting paths", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.ConflictError{Base: "main", Head: "feature", Paths: []string{"a.txt", "b.txt"}}

		// when
		msg := err.Error()

		// then
		assert.Equal(t, "merging feature into main conflicts in a.txt, b.txt", msg)
	})

	t.Run("should prefer stderr when describing a command failure", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.CommandError{Args: []string{"status"}, ExitCode: 128, Stderr: "fatal: not a git repository\n"}

		// when
		msg := err.Error()

		// then
		assert.Equal(t, "git status (exit 128): fatal: not a git repository", msg)
	})
}
