package mirror

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// BadgerFileStore keeps one File document per (repository, branch, path).
// Keys sort by path, so a branch listing comes out ordered.
type BadgerFileStore struct {
	db *DB
}

var _ repositories.FileStore = (*BadgerFileStore)(nil)

// NewBadgerFileStore creates the file document store.
func NewBadgerFileStore(db *DB) *BadgerFileStore {
	return &BadgerFileStore{db: db}
}

func fileKey(repositoryID, branch, path string) []byte {
	return key(filePrefix, repositoryID, branch, path)
}

func (s *BadgerFileStore) Get(_ context.Context, id string) (*entities.File, error) {
	var file entities.File
	err := s.db.view(func(txn *badger.Txn) error {
		k, err := getString(txn, key(fileIDPrefix, id), "file", id)
		if err != nil {
			return err
		}
		return getJSON(txn, []byte(k), &file, "file", id)
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (s *BadgerFileStore) GetByPath(_ context.Context, repositoryID, branch, path string) (*entities.File, error) {
	var file entities.File
	err := s.db.view(func(txn *badger.Txn) error {
		return getJSON(txn, fileKey(repositoryID, branch, path), &file, "file", branch+":"+path)
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (s *BadgerFileStore) Upsert(_ context.Context, file *entities.File) error {
	return s.db.update(func(txn *badger.Txn) error {
		k := fileKey(file.RepositoryID, file.Branch, file.Path)

		var existing entities.File
		err := getJSON(txn, k, &existing, "file", file.Path)
		switch {
		case err == nil:
			file.ID = existing.ID
		case entities.IsNotFound(err):
			if file.ID == "" {
				file.ID = uuid.NewString()
			}
		default:
			return err
		}

		if err = txn.Set(key(fileIDPrefix, file.ID), k); err != nil {
			return err
		}
		return setJSON(txn, k, file)
	})
}

func (s *BadgerFileStore) Delete(_ context.Context, repositoryID, branch, path string) error {
	return s.db.update(func(txn *badger.Txn) error {
		var file entities.File
		if err := getJSON(txn, fileKey(repositoryID, branch, path), &file, "file", branch+":"+path); err != nil {
			return err
		}
		return deleteFile(txn, &file)
	})
}

func (s *BadgerFileStore) ListByBranch(_ context.Context, repositoryID, branch string) ([]entities.File, error) {
	files := make([]entities.File, 0)
	err := s.db.view(func(txn *badger.Txn) error {
		return scan(txn, prefixKey(filePrefix, repositoryID, branch), 0, func(_, val []byte) error {
			var file entities.File
			if err := json.Unmarshal(val, &file); err != nil {
				return err
			}
			files = append(files, file)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// deleteFile removes a File document, its id index and the comments attached to it.
func deleteFile(txn *badger.Txn, file *entities.File) error {
	commentIDs := make([]string, 0)
	if err := scan(txn, prefixKey(commentFilePrefix, file.ID), 0, func(_, val []byte) error {
		commentIDs = append(commentIDs, string(val))
		return nil
	}); err != nil {
		return err
	}
	for _, id := range commentIDs {
		if err := txn.Delete(key(commentPrefix, id)); err != nil {
			return err
		}
	}
	if err := deletePrefix(txn, prefixKey(commentFilePrefix, file.ID)); err != nil {
		return err
	}

	if err := txn.Delete(key(fileIDPrefix, file.ID)); err != nil {
		return err
	}
	return txn.Delete(fileKey(file.RepositoryID, file.Branch, file.Path))
}
