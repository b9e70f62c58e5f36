package flag

import (
	"errors"

	"foodflow/domain"

	"github.com/dgraph-io/badger/v4"
)

var (
	valueTrue  = []byte{1}
	valueFalse = []byte{0}
)

type (
	// FlagRepository keeps per-user boolean flags. A flag that was never set
	// reads as false.
	FlagRepository interface {
		GetFlag(userID string, name string) (bool, error)
		SetFlag(userID string, name string, value bool) error
	}

	flagRepository struct {
		db *badger.DB
	}
)

func NewFlagRepository(db *badger.DB) FlagRepository {
	return &flagRepository{db: db}
}

// OpenStore opens the badger directory at path. An empty path keeps the
// store in memory.
func OpenStore(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	return badger.Open(opts)
}

func flagKey(userID, name string) []byte {
	return []byte("flag:" + userID + ":" + name)
}

func (r *flagRepository) GetFlag(userID string, name string) (bool, error) {
	var value bool
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(flagKey(userID, name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			value = len(val) == 1 && val[0] == 1
			return nil
		})
	})
	if err != nil {
		return false, domain.NewRemoteFailure("read flag", err)
	}
	return value, nil
}

func (r *flagRepository) SetFlag(userID string, name string, value bool) error {
	val := valueFalse
	if value {
		val = valueTrue
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(flagKey(userID, name), val)
	})
	if err != nil {
		return domain.NewRemoteFailure("write flag", err)
	}
	return nil
}
