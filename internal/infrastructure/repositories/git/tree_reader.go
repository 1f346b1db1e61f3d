package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

// TreeReader reads whole trees straight from the object database, without
// spawning git once per file.
type TreeReader struct{}

// NewTreeReader creates a TreeReader.
func NewTreeReader() *TreeReader {
	return &TreeReader{}
}

// Snapshot returns the content of every text blob at the tip of branch keyed by
// slash-separated path. Binary blobs are skipped.
func (t *TreeReader) Snapshot(dir, branch string) (map[string]string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", dir, err)
	}

	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, entities.NewNotFoundError("branch", branch)
		}
		return nil, fmt.Errorf("failed to resolve branch %q: %w", branch, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", ref.Hash(), err)
	}

	files := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		binary, binErr := f.IsBinary()
		if binErr != nil {
			return binErr
		}
		if binary {
			return nil
		}

		content, readErr := f.Contents()
		if readErr != nil {
			return readErr
		}
		files[f.Name] = content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree of %q: %w", branch, err)
	}

	return files, nil
}
