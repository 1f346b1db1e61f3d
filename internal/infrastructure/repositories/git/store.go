package git

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

const (
	gitDirName  = ".git"
	dirPerm     = 0o755
	filePerm    = 0o644
	mergeHeadFn = "MERGE_HEAD"
)

// RepositoryStore lays out one directory per project under a root directory and
// performs the working-tree file operations of the git layer. Writes go through
// a filesystem rooted at the project directory, so no path can escape it.
type RepositoryStore struct {
	root string
	fs   afero.Fs
}

// NewRepositoryStore creates a store rooted at the configured repositories root.
func NewRepositoryStore(settings *entities.Settings) *RepositoryStore {
	return NewRepositoryStoreWithFs(settings.RepositoriesRoot, afero.NewOsFs())
}

// NewRepositoryStoreWithFs creates a store on top of an arbitrary filesystem.
// The root is made absolute because git resolves working directories itself.
func NewRepositoryStoreWithFs(root string, fs afero.Fs) *RepositoryStore {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &RepositoryStore{root: root, fs: fs}
}

// Path returns the directory of the project repository.
func (s *RepositoryStore) Path(projectID string) string {
	return filepath.Join(s.root, projectID)
}

// Exists reports whether the project directory holds a git directory.
func (s *RepositoryStore) Exists(projectID string) bool {
	ok, err := afero.DirExists(s.fs, filepath.Join(s.Path(projectID), gitDirName))
	return err == nil && ok
}

// Create makes the project directory (and the root) when missing.
func (s *RepositoryStore) Create(projectID string) (string, error) {
	dir := s.Path(projectID)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create repository directory %q: %w", dir, err)
	}
	return dir, nil
}

// WriteFile writes content at the repository-relative path, creating parent directories.
func (s *RepositoryStore) WriteFile(projectID, relPath, content string) error {
	tree := s.workTree(projectID)
	if dir := filepath.Dir(filepath.FromSlash(relPath)); dir != "." {
		if err := tree.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory for %q: %w", relPath, err)
		}
	}
	if err := afero.WriteFile(tree, filepath.FromSlash(relPath), []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write %q: %w", relPath, err)
	}
	return nil
}

// RemoveFile deletes the repository-relative path; a missing file is not an error.
func (s *RepositoryStore) RemoveFile(projectID, relPath string) error {
	err := s.workTree(projectID).Remove(filepath.FromSlash(relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", relPath, err)
	}
	return nil
}

// MergeInProgress reports whether git left a merge half-done in the repository.
func (s *RepositoryStore) MergeInProgress(projectID string) bool {
	ok, err := afero.Exists(s.fs, filepath.Join(s.Path(projectID), gitDirName, mergeHeadFn))
	return err == nil && ok
}

func (s *RepositoryStore) workTree(projectID string) afero.Fs {
	return afero.NewBasePathFs(s.fs, s.Path(projectID))
}
