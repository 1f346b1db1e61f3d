package mirror

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

const (
	keySep          = "\x00"
	conflictRetries = 3

	repoPrefix          = "repo/"
	repoProjectPrefix   = "repo-project/"
	commitPrefix        = "commit/"
	commitHashPrefix    = "commit-hash/"
	commitBranchPrefix  = "commit-branch/"
	filePrefix          = "file/"
	fileIDPrefix        = "file-id/"
	commentPrefix       = "comment/"
	commentFilePrefix   = "comment-file/"
	invertedClockFormat = 16
)

//nolint:gochecknoglobals // jsoniter configuration shared by every store
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DB is the badger database holding every mirror document.
type DB struct {
	db    *badger.DB
	close sync.Once
}

// NewDB opens (or creates) the mirror database at the configured path.
func NewDB(settings *entities.Settings) (*DB, error) {
	opts := badger.DefaultOptions(settings.MirrorPath).
		WithLogger(logger.WithField("component", "badger"))
	return open(opts)
}

// NewInMemoryDB opens a database that lives only as long as the process.
func NewInMemoryDB() (*DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*DB, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database %q: %w", opts.Dir, err)
	}
	return &DB{db: db}, nil
}

// Close flushes and closes the database. Calling it more than once is safe.
func (d *DB) Close() error {
	var err error
	d.close.Do(func() {
		err = d.db.Close()
	})
	return err
}

// update runs fn in a read-write transaction, retrying on write conflicts
// with a concurrent transaction.
func (d *DB) update(fn func(txn *badger.Txn) error) error {
	var err error
	for range conflictRetries {
		err = d.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (d *DB) view(fn func(txn *badger.Txn) error) error {
	return d.db.View(fn)
}

func key(prefix string, parts ...string) []byte {
	return []byte(prefix + strings.Join(parts, keySep))
}

// prefixKey returns the key prefix matching every key built from parts and more.
func prefixKey(prefix string, parts ...string) []byte {
	return []byte(prefix + strings.Join(parts, keySep) + keySep)
}

// invertedClock encodes t so that byte order of the encoding is newest first.
func invertedClock(t time.Time) string {
	inverted := uint64(math.MaxInt64 - t.UnixNano())
	s := strconv.FormatUint(inverted, 16)
	return strings.Repeat("0", invertedClockFormat-len(s)) + s
}

// rewriteError maps badger's missing-key error to the domain not-found error.
func rewriteError(err error, kind, id string) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entities.NewNotFoundError(kind, id)
	}
	return err
}

func getJSON(txn *badger.Txn, k []byte, out any, kind, id string) error {
	item, err := txn.Get(k)
	if err != nil {
		return rewriteError(err, kind, id)
	}
	return item.Value(func(val []byte) error {
		if unmarshalErr := json.Unmarshal(val, out); unmarshalErr != nil {
			return fmt.Errorf("failed to decode %s %q: %w", kind, id, unmarshalErr)
		}
		return nil
	})
}

func setJSON(txn *badger.Txn, k []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return txn.Set(k, data)
}

func getString(txn *badger.Txn, k []byte, kind, id string) (string, error) {
	item, err := txn.Get(k)
	if err != nil {
		return "", rewriteError(err, kind, id)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func exists(txn *badger.Txn, k []byte) (bool, error) {
	_, err := txn.Get(k)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// scan calls fn for every key under prefix in byte order, stopping after limit
// entries when limit is positive.
func scan(txn *badger.Txn, prefix []byte, limit int, fn func(k, val []byte) error) error {
	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100, //nolint:mnd // badger default
		Prefix:         prefix,
	})
	defer it.Close()

	count := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		k := item.KeyCopy(nil)
		if err := item.Value(func(val []byte) error {
			return fn(k, val)
		}); err != nil {
			return err
		}

		count++
		if limit > 0 && count >= limit {
			break
		}
	}
	return nil
}

// deletePrefix removes every key under prefix.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	keys := make([][]byte, 0)
	if err := scan(txn, prefix, 0, func(k, _ []byte) error {
		keys = append(keys, k)
		return nil
	}); err != nil {
		return err
	}

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
