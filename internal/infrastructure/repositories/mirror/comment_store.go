package mirror

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
	"github.com/rios0rios0/gitvault/internal/domain/repositories"
)

// BadgerCommentStore keeps line comments indexed by the file they belong to.
type BadgerCommentStore struct {
	db *DB
}

var _ repositories.CommentStore = (*BadgerCommentStore)(nil)

// NewBadgerCommentStore creates the comment document store.
func NewBadgerCommentStore(db *DB) *BadgerCommentStore {
	return &BadgerCommentStore{db: db}
}

func (s *BadgerCommentStore) Create(_ context.Context, comment *entities.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	return s.db.update(func(txn *badger.Txn) error {
		fileExists, err := exists(txn, key(fileIDPrefix, comment.FileID))
		if err != nil {
			return err
		}
		if !fileExists {
			return entities.NewNotFoundError("file", comment.FileID)
		}

		if err = txn.Set(key(commentFilePrefix, comment.FileID, comment.ID), []byte(comment.ID)); err != nil {
			return err
		}
		return setJSON(txn, key(commentPrefix, comment.ID), comment)
	})
}

func (s *BadgerCommentStore) Get(_ context.Context, id string) (*entities.Comment, error) {
	var comment entities.Comment
	err := s.db.view(func(txn *badger.Txn) error {
		return getJSON(txn, key(commentPrefix, id), &comment, "comment", id)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByFile returns the comments of a file ordered by line, then by creation time.
func (s *BadgerCommentStore) ListByFile(_ context.Context, fileID string) ([]entities.Comment, error) {
	comments := make([]entities.Comment, 0)
	err := s.db.view(func(txn *badger.Txn) error {
		ids := make([]string, 0)
		if err := scan(txn, prefixKey(commentFilePrefix, fileID), 0, func(_, val []byte) error {
			ids = append(ids, string(val))
			return nil
		}); err != nil {
			return err
		}

		for _, id := range ids {
			var comment entities.Comment
			if err := getJSON(txn, key(commentPrefix, id), &comment, "comment", id); err != nil {
				return err
			}
			comments = append(comments, comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].Line != comments[j].Line {
			return comments[i].Line < comments[j].Line
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *BadgerCommentStore) Update(_ context.Context, comment *entities.Comment) error {
	return s.db.update(func(txn *badger.Txn) error {
		var existing entities.Comment
		if err := getJSON(txn, key(commentPrefix, comment.ID), &existing, "comment", comment.ID); err != nil {
			return err
		}
		// a comment never moves to another file
		comment.FileID = existing.FileID
		comment.RepositoryID = existing.RepositoryID
		comment.CreatedAt = existing.CreatedAt
		return setJSON(txn, key(commentPrefix, comment.ID), comment)
	})
}

func (s *BadgerCommentStore) Delete(_ context.Context, id string) error {
	return s.db.update(func(txn *badger.Txn) error {
		var comment entities.Comment
		if err := getJSON(txn, key(commentPrefix, id), &comment, "comment", id); err != nil {
			return err
		}
		if err := txn.Delete(key(commentFilePrefix, comment.FileID, id)); err != nil {
			return err
		}
		return txn.Delete(key(commentPrefix, id))
	})
}
