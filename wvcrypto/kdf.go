package wvcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"github.com/aead/cmac"
)

// ResponseKeys are the keys derived from the session key via the
// NIST SP 800-108 counter-mode CMAC KDF the license response uses:
// Enc for unwrapping content keys, Mac for verifying the response
// signature.
type ResponseKeys struct {
	Enc []byte // 16 bytes
	Mac []byte // 32 bytes (Kmac1 || Kmac2)
}

var (
	encryptionLabel        = []byte("ENCRYPTION\x00")
	authenticationLabel    = []byte("AUTHENTICATION\x00")
	encryptionTrailer      = []byte{0x00, 0x00, 0x00, 0x80} // 128 bits of key material
	authenticationTrailer  = []byte{0x00, 0x00, 0x02, 0x00} // 512 bits of key material
)

// DeriveResponseKeys runs the CMAC KDF over the exact bytes of the
// signed license request (sessionKey is the first 16 bytes of the
// RSA-OAEP unwrapped session key).
func DeriveResponseKeys(sessionKey, requestBytes []byte) (*ResponseKeys, error) {
	if len(sessionKey) < 16 {
		return nil, fmt.Errorf("wvcrypto: session key too short: %d bytes", len(sessionKey))
	}
	block, err := aes.NewCipher(sessionKey[:16])
	if err != nil {
		return nil, fmt.Errorf("wvcrypto: aes cipher: %w", err)
	}

	encBase := concat(encryptionLabel, requestBytes, encryptionTrailer)
	authBase := concat(authenticationLabel, requestBytes, authenticationTrailer)

	enc, err := cmacCounter(block, 1, encBase)
	if err != nil {
		return nil, err
	}
	mac1, err := cmacCounter(block, 1, authBase)
	if err != nil {
		return nil, err
	}
	mac2, err := cmacCounter(block, 2, authBase)
	if err != nil {
		return nil, err
	}

	return &ResponseKeys{Enc: enc, Mac: concat(mac1, mac2)}, nil
}

// cmacCounter computes AES-128-CMAC(counter || base), the NIST
// SP 800-108 counter-mode construction this KDF uses.
func cmacCounter(block cipher.Block, counter byte, base []byte) ([]byte, error) {
	msg := append([]byte{counter}, base...)
	mac, err := cmac.Sum(msg, block, block.BlockSize())
	if err != nil {
		return nil, fmt.Errorf("wvcrypto: cmac: %w", err)
	}
	return mac, nil
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// VerifyResponseSignature checks the HMAC-SHA-256 of msg under macKey
// equals signature, as the protocol requires before a license's
// content keys are trusted.
func VerifyResponseSignature(macKey, msg, signature []byte) bool {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(msg)
	return hmac.Equal(mac.Sum(nil), signature)
}
