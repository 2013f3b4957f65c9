package keystore

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"passkeeper/internal/common"
)

var keysBucket = []byte("keys")

// BoltKeyStore keeps all user keys in a single bbolt database file,
// one record per username in the "keys" bucket. The database file is still
// local secret storage, separate from the credential store.
type BoltKeyStore struct {
	db *bbolt.DB
}

// NewBoltKeyStore opens (or creates) the bbolt database at path with 0600
// permissions and ensures the keys bucket exists.
func NewBoltKeyStore(path string) (*BoltKeyStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening key database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keysBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing key database: %w", err)
	}

	return &BoltKeyStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *BoltKeyStore) Close() error {
	return s.db.Close()
}

func (s *BoltKeyStore) Generate() ([]byte, error) {
	return generateKey()
}

func (s *BoltKeyStore) Store(_ context.Context, username string, key []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).Put([]byte(username), key)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyStoreWrite, err)
	}
	return nil
}

func (s *BoltKeyStore) Load(_ context.Context, username string) ([]byte, error) {
	var key []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(keysBucket).Get([]byte(username))
		if v == nil {
			return fmt.Errorf("%w: user %s", common.ErrKeyNotFound, username)
		}
		key = make([]byte, len(v))
		copy(key, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (s *BoltKeyStore) Delete(_ context.Context, username string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(keysBucket).Delete([]byte(username))
	})
}
