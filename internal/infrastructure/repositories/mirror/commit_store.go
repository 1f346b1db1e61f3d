package mirror

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// BadgerCommitStore keeps Commit documents, indexed by local hash and by branch
// in reverse chronological order.
type BadgerCommitStore struct {
	db *DB
}

var _ repositories.CommitStore = (*BadgerCommitStore)(nil)

// NewBadgerCommitStore creates the commit document store.
func NewBadgerCommitStore(db *DB) *BadgerCommitStore {
	return &BadgerCommitStore{db: db}
}

func (s *BadgerCommitStore) Create(_ context.Context, commit *entities.Commit) error {
	if commit.ID == "" {
		commit.ID = uuid.NewString()
	}

	return s.db.update(func(txn *badger.Txn) error {
		if err := setJSON(txn, key(commitPrefix, commit.RepositoryID, commit.ID), commit); err != nil {
			return err
		}
		if err := txn.Set(key(commitHashPrefix, commit.RepositoryID, commit.Hash), []byte(commit.ID)); err != nil {
			return err
		}
		branchKey := key(commitBranchPrefix, commit.RepositoryID, commit.Branch, invertedClock(commit.CreatedAt), commit.ID)
		return txn.Set(branchKey, []byte(commit.ID))
	})
}

func (s *BadgerCommitStore) Get(_ context.Context, repositoryID, id string) (*entities.Commit, error) {
	var commit entities.Commit
	err := s.db.view(func(txn *badger.Txn) error {
		return getJSON(txn, key(commitPrefix, repositoryID, id), &commit, "commit", id)
	})
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (s *BadgerCommitStore) GetByHash(_ context.Context, repositoryID, hash string) (*entities.Commit, error) {
	var commit entities.Commit
	err := s.db.view(func(txn *badger.Txn) error {
		id, err := getString(txn, key(commitHashPrefix, repositoryID, hash), "commit", hash)
		if err != nil {
			return err
		}
		return getJSON(txn, key(commitPrefix, repositoryID, id), &commit, "commit", id)
	})
	if err != nil {
		return nil, err
	}
	return &commit, nil
}

func (s *BadgerCommitStore) ListByBranch(
	_ context.Context,
	repositoryID, branch string,
	limit int,
) ([]entities.Commit, error) {
	commits := make([]entities.Commit, 0)
	err := s.db.view(func(txn *badger.Txn) error {
		ids := make([]string, 0)
		if err := scan(txn, prefixKey(commitBranchPrefix, repositoryID, branch), limit, func(_, val []byte) error {
			ids = append(ids, string(val))
			return nil
		}); err != nil {
			return err
		}

		for _, id := range ids {
			var commit entities.Commit
			if err := getJSON(txn, key(commitPrefix, repositoryID, id), &commit, "commit", id); err != nil {
				return err
			}
			commits = append(commits, commit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}
