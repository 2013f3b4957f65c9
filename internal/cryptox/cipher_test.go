package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
)

func allCiphers(t *testing.T) map[string]Cipher {
	t.Helper()
	out := make(map[string]Cipher)
	for _, algo := range []string{AlgorithmAESGCM, AlgorithmXChaCha} {
		c, err := New(algo)
		require.NoError(t, err)
		out[algo] = c
	}
	return out
}

func testKey(b byte) []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New("rot13")
	require.Error(t, err)
}

func TestCipher_RoundTrip(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			key := testKey(1)
			plaintext := []byte("Secr3t!")

			ciphertext, err := c.Encrypt(key, plaintext)
			require.NoError(t, err)
			require.NotEqual(t, plaintext, ciphertext)

			got, err := c.Decrypt(key, ciphertext)
			require.NoError(t, err)
			require.Equal(t, plaintext, got)
		})
	}
}

func TestCipher_EncryptionIsNonDeterministic(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			key := testKey(2)
			plaintext := []byte("same plaintext")

			ct1, err := c.Encrypt(key, plaintext)
			require.NoError(t, err)
			ct2, err := c.Encrypt(key, plaintext)
			require.NoError(t, err)

			require.NotEqual(t, ct1, ct2)
		})
	}
}

func TestCipher_TamperedCiphertextFails(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			key := testKey(3)
			ciphertext, err := c.Encrypt(key, []byte("payload"))
			require.NoError(t, err)

			// flip a single bit at every position in turn
			for i := range ciphertext {
				tampered := make([]byte, len(ciphertext))
				copy(tampered, ciphertext)
				tampered[i] ^= 0x01

				_, err := c.Decrypt(key, tampered)
				require.ErrorIs(t, err, common.ErrDecryption, "position %d", i)
			}
		})
	}
}

func TestCipher_WrongKeyFails(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			ciphertext, err := c.Encrypt(testKey(4), []byte("payload"))
			require.NoError(t, err)

			_, err = c.Decrypt(testKey(5), ciphertext)
			require.ErrorIs(t, err, common.ErrDecryption)
		})
	}
}

func TestCipher_ShortCiphertextFails(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decrypt(testKey(6), []byte{0x01, 0x02})
			require.ErrorIs(t, err, common.ErrDecryption)
		})
	}
}

func TestCipher_BadKeySize(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := c.Encrypt([]byte("short"), []byte("p"))
			require.Error(t, err)

			_, err = c.Decrypt([]byte("short"), []byte("whatever"))
			require.ErrorIs(t, err, common.ErrDecryption)
		})
	}
}

func TestCipher_EmptyPlaintextRoundTrip(t *testing.T) {
	for name, c := range allCiphers(t) {
		t.Run(name, func(t *testing.T) {
			key := testKey(7)
			ciphertext, err := c.Encrypt(key, []byte{})
			require.NoError(t, err)

			got, err := c.Decrypt(key, ciphertext)
			require.NoError(t, err)
			require.Empty(t, got)
		})
	}
}
