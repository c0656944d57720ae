// Package wvcrypto provides the small set of cryptographic primitives
// the Widevine license-exchange protocol composes: RSA-PSS
// sign/verify, RSA-OAEP key transport, AES-128-CBC with PKCS#7, an
// AES-128-CMAC based KDF, and HMAC-SHA-256 verification. Every
// parameter (hash, salt length, padding) is mandated by the protocol,
// not a caller choice.
package wvcrypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // mandated by the Widevine protocol, not a choice
)

// pssSaltLength is the fixed RSA-PSS salt length the protocol
// requires for both request signing and certificate verification.
const pssSaltLength = 20

// SignPSS signs data with key using RSA-PSS/SHA-1, salt length 20, as
// the protocol requires for license requests.
func SignPSS(key *rsa.PrivateKey, data []byte) ([]byte, error) {
	h := sha1.Sum(data)
	return rsa.SignPSS(rand.Reader, key, crypto.SHA1, h[:], &rsa.PSSOptions{
		SaltLength: pssSaltLength,
		Hash:       crypto.SHA1,
	})
}

// VerifyPSS verifies signature over data under key using
// RSA-PSS/SHA-1, salt length 20, as the protocol requires for
// service-certificate signatures. License responses are authenticated
// with HMAC-SHA-256 instead (VerifyResponseSignature).
func VerifyPSS(key *rsa.PublicKey, data, signature []byte) error {
	h := sha1.Sum(data)
	return rsa.VerifyPSS(key, crypto.SHA1, h[:], signature, &rsa.PSSOptions{
		SaltLength: pssSaltLength,
		Hash:       crypto.SHA1,
	})
}
