package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// BadgerRepositoryStore keeps Repository documents with a unique index on the project.
type BadgerRepositoryStore struct {
	db *DB
}

var _ repositories.RepositoryStore = (*BadgerRepositoryStore)(nil)

// NewBadgerRepositoryStore creates the repository document store.
func NewBadgerRepositoryStore(db *DB) *BadgerRepositoryStore {
	return &BadgerRepositoryStore{db: db}
}

func (s *BadgerRepositoryStore) Create(_ context.Context, repo *entities.Repository) error {
	if repo.ID == "" {
		repo.ID = uuid.NewString()
	}

	return s.db.update(func(txn *badger.Txn) error {
		projectKey := key(repoProjectPrefix, repo.ProjectID)
		taken, err := exists(txn, projectKey)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("repository for project %q: %w", repo.ProjectID, entities.ErrAlreadyExists)
		}

		if err = txn.Set(projectKey, []byte(repo.ID)); err != nil {
			return err
		}
		return setJSON(txn, key(repoPrefix, repo.ID), repo)
	})
}

func (s *BadgerRepositoryStore) Get(_ context.Context, id string) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.view(func(txn *badger.Txn) error {
		return getJSON(txn, key(repoPrefix, id), &repo, "repository", id)
	})
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

func (s *BadgerRepositoryStore) GetByProject(_ context.Context, projectID string) (*entities.Repository, error) {
	var repo entities.Repository
	err := s.db.view(func(txn *badger.Txn) error {
		id, err := getString(txn, key(repoProjectPrefix, projectID), "repository", projectID)
		if err != nil {
			return err
		}
		return getJSON(txn, key(repoPrefix, id), &repo, "repository", id)
	})
	if err != nil {
		return nil, err
	}
	return &repo, nil
}

func (s *BadgerRepositoryStore) UpdateBranchHead(_ context.Context, id, branch, commitHash string) error {
	return s.db.update(func(txn *badger.Txn) error {
		var repo entities.Repository
		if err := getJSON(txn, key(repoPrefix, id), &repo, "repository", id); err != nil {
			return err
		}

		repo.SetBranchHead(branch, commitHash)
		repo.UpdatedAt = time.Now().UTC()
		return setJSON(txn, key(repoPrefix, id), &repo)
	})
}

func (s *BadgerRepositoryStore) Delete(_ context.Context, id string) error {
	return s.db.update(func(txn *badger.Txn) error {
		var repo entities.Repository
		if err := getJSON(txn, key(repoPrefix, id), &repo, "repository", id); err != nil {
			return err
		}

		files := make([]entities.File, 0)
		if err := scan(txn, prefixKey(filePrefix, id), 0, func(_, val []byte) error {
			var file entities.File
			if err := json.Unmarshal(val, &file); err != nil {
				return err
			}
			files = append(files, file)
			return nil
		}); err != nil {
			return err
		}
		for i := range files {
			if err := deleteFile(txn, &files[i]); err != nil {
				return err
			}
		}

		for _, prefix := range []string{commitPrefix, commitHashPrefix, commitBranchPrefix} {
			if err := deletePrefix(txn, prefixKey(prefix, id)); err != nil {
				return err
			}
		}

		if err := txn.Delete(key(repoProjectPrefix, repo.ProjectID)); err != nil {
			return err
		}
		return txn.Delete(key(repoPrefix, id))
	})
}
