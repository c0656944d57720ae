package wvcrypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPSSSignVerifyRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	data := []byte("a serialized license request")
	sig, err := SignPSS(key, data)
	require.NoError(t, err)

	assert.NoError(t, VerifyPSS(&key.PublicKey, data, sig))

	tampered := append([]byte{}, data...)
	tampered[0] ^= 0xff
	assert.Error(t, VerifyPSS(&key.PublicKey, tampered, sig))
}

func TestOAEPEncryptDecryptRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	plaintext := make([]byte, 16)
	_, _ = rand.Read(plaintext)

	ciphertext, err := EncryptOAEP(&key.PublicKey, plaintext)
	require.NoError(t, err)

	decrypted, err := DecryptOAEP(key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestCBCEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	_, _ = rand.Read(key)
	_, _ = rand.Read(iv)

	plaintext := []byte("a client identification blob of arbitrary length")
	ciphertext, err := EncryptCBC(key, iv, plaintext)
	require.NoError(t, err)
	assert.Equal(t, 0, len(ciphertext)%16)

	decrypted, err := DecryptCBC(key, iv, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestCBCDecryptRejectsBadPadding(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	ciphertext := make([]byte, 32) // all zero blocks decrypt to non-0x01..0x10 padding
	_, err := DecryptCBC(key, iv, ciphertext)
	assert.Error(t, err)
}

func TestDeriveResponseKeysIsDeterministic(t *testing.T) {
	sessionKey := make([]byte, 16)
	for i := range sessionKey {
		sessionKey[i] = byte(i)
	}
	requestBytes := []byte("the exact signed license request bytes")

	keys1, err := DeriveResponseKeys(sessionKey, requestBytes)
	require.NoError(t, err)
	keys2, err := DeriveResponseKeys(sessionKey, requestBytes)
	require.NoError(t, err)

	assert.Equal(t, keys1.Enc, keys2.Enc)
	assert.Equal(t, keys1.Mac, keys2.Mac)
	assert.Len(t, keys1.Enc, 16)
	assert.Len(t, keys1.Mac, 32)
	assert.NotEqual(t, keys1.Enc, keys1.Mac[:16])
}

func TestVerifyResponseSignature(t *testing.T) {
	macKey := make([]byte, 32)
	_, _ = rand.Read(macKey)
	msg := []byte("a serialized license message")

	keys := &ResponseKeys{Mac: macKey}
	h := hmac.New(sha256.New, macKey)
	h.Write(msg)
	sig := h.Sum(nil)

	assert.True(t, VerifyResponseSignature(keys.Mac, msg, sig))
	assert.False(t, VerifyResponseSignature(keys.Mac, append(msg, 0), sig))
}
