package wvcrypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // mandated by the Widevine protocol, not a choice
)

// EncryptOAEP wraps plaintext under key using RSA-OAEP with SHA-1 and
// an empty label, as the protocol requires when encrypting the
// client-identity content key under a service certificate's public
// key.
func EncryptOAEP(key *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha1.New(), rand.Reader, key, plaintext, nil)
}

// DecryptOAEP unwraps ciphertext under key using RSA-OAEP with SHA-1
// and an empty label, as the protocol requires when unwrapping the
// server-chosen session key under the device private key.
func DecryptOAEP(key *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha1.New(), rand.Reader, key, ciphertext, nil)
}
