// Package cryptox implements the authenticated encryption used for master
// secrets and credential entries.
//
// Ciphertext produced here is self-describing: a fresh random nonce is
// generated per encryption and prepended to the sealed box, so decryption
// needs only the key and the ciphertext. Encryption is therefore
// non-deterministic; callers must never compare ciphertexts to compare
// plaintexts.
package cryptox

import (
	"fmt"

	"passkeeper/internal/common"
)

// KeySize is the symmetric key length in bytes required by every Cipher.
const KeySize = 32

// Supported cipher algorithm names, as used in configuration.
const (
	AlgorithmAESGCM  = "aes-gcm"
	AlgorithmXChaCha = "xchacha20"
)

// Cipher provides authenticated encryption of opaque byte payloads under a
// supplied key.
//
// Contract:
//   - Encrypt returns a ciphertext carrying whatever nonce it needs.
//   - Decrypt fails with an error matching common.ErrDecryption if the
//     ciphertext is malformed, the tag does not verify, or the key is wrong.
//     It never panics on hostile input.
type Cipher interface {
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, ciphertext []byte) ([]byte, error)
}

// New returns the Cipher for the given algorithm name.
func New(algorithm string) (Cipher, error) {
	switch algorithm {
	case AlgorithmAESGCM:
		return &AESGCMCipher{}, nil
	case AlgorithmXChaCha:
		return &XChaChaCipher{}, nil
	default:
		return nil, fmt.Errorf("unknown cipher algorithm: %q", algorithm)
	}
}

func checkKey(key []byte) error {
	if len(key) != KeySize {
		return fmt.Errorf("invalid key size: %d", len(key))
	}
	return nil
}

func decryptionError(cause error) error {
	return fmt.Errorf("%w: %v", common.ErrDecryption, cause)
}
