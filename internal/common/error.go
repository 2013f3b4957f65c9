// Package common defines shared constants and sentinel errors used across
// passkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation / user lifecycle errors. These are expected control flow
	// and are returned, never panicked.
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrWeakPassword      = errors.New("password does not meet strength requirements")
	ErrInvalidUsername   = errors.New("invalid username")

	// CLI confirmation step.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Key store errors.
	ErrKeyNotFound   = errors.New("key not found")
	ErrKeyStoreWrite = errors.New("key store write failed")

	// Cipher errors. Any malformed, tampered, or wrong-key ciphertext
	// surfaces as ErrDecryption.
	ErrDecryption = errors.New("decryption failed")

	// Infrastructure fault at the credential store boundary. Propagated
	// up uncaught; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
