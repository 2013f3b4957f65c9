package cryptox

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// XChaChaCipher seals payloads with XChaCha20-Poly1305. The random 24-byte
// nonce is prepended to the sealed data. The extended nonce makes random
// nonces safe without any bookkeeping.
type XChaChaCipher struct{}

func (c *XChaChaCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *XChaChaCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, decryptionError(err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, decryptionError(err)
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, decryptionError(errors.New("ciphertext too short"))
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, decryptionError(err)
	}
	return plaintext, nil
}
