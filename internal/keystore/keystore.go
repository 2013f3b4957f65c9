// Package keystore manages per-user symmetric key material. Keys live
// outside the credential store, in local secret storage: either one key file
// per user or a single bbolt database.
//
// One key exists per user, minted at user creation and deleted with the
// user. Keys are never rotated; a master-password change re-encrypts under
// the same key.
package keystore

import (
	"context"
	"crypto/rand"
	"fmt"
)

// KeySize is the length in bytes of generated symmetric keys.
const KeySize = 32

// Supported backend names, as used in configuration.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// KeyStore persists and retrieves one symmetric key per username.
//
// Contract:
//   - Generate mints a fresh random key; collisions are negligible.
//   - Store persists the key for username, overwriting any previous key.
//     Write failures match common.ErrKeyStoreWrite.
//   - Load fails with common.ErrKeyNotFound if no key is stored.
//   - Delete is idempotent; a missing key is not an error.
type KeyStore interface {
	Generate() ([]byte, error)
	Store(ctx context.Context, username string, key []byte) error
	Load(ctx context.Context, username string) ([]byte, error)
	Delete(ctx context.Context, username string) error
}

func generateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return key, nil
}
