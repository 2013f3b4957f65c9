package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"passkeeper/internal/common"
)

// FileKeyStore keeps one key file per user under a private directory.
// File names are derived from the username, so callers must validate
// usernames before they reach this store.
type FileKeyStore struct {
	dir string
}

// NewFileKeyStore creates the key directory (0700) if needed and returns a
// store rooted there.
func NewFileKeyStore(dir string) (*FileKeyStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileKeyStore{dir: dir}, nil
}

func (s *FileKeyStore) keyPath(username string) string {
	return filepath.Join(s.dir, fmt.Sprintf("user_%s.key", username))
}

func (s *FileKeyStore) Generate() ([]byte, error) {
	return generateKey()
}

func (s *FileKeyStore) Store(_ context.Context, username string, key []byte) error {
	if err := os.WriteFile(s.keyPath(username), key, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrKeyStoreWrite, err)
	}
	return nil
}

func (s *FileKeyStore) Load(_ context.Context, username string) ([]byte, error) {
	key, err := os.ReadFile(s.keyPath(username))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: user %s", common.ErrKeyNotFound, username)
		}
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return key, nil
}

func (s *FileKeyStore) Delete(_ context.Context, username string) error {
	err := os.Remove(s.keyPath(username))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing key file: %w", err)
	}
	return nil
}
