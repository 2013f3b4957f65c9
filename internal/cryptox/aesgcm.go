package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
)

// AESGCMCipher seals payloads with AES-256-GCM. The random 12-byte nonce is
// prepended to the sealed data.
type AESGCMCipher struct{}

func (c *AESGCMCipher) newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *AESGCMCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	aesgcm, err := c.newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	// nonce || sealed
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *AESGCMCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, decryptionError(err)
	}

	aesgcm, err := c.newGCM(key)
	if err != nil {
		return nil, decryptionError(err)
	}

	if len(ciphertext) < aesgcm.NonceSize() {
		return nil, decryptionError(errors.New("ciphertext too short"))
	}

	nonce, sealed := ciphertext[:aesgcm.NonceSize()], ciphertext[aesgcm.NonceSize():]
	plaintext, err := aesgcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, decryptionError(err)
	}
	return plaintext, nil
}
