package widevine

import (
	"crypto/rand"

	"github.com/Cooomma/go-widevine/protocol"
	"github.com/Cooomma/go-widevine/wvcrypto"
)

// encryptClientIdentification wraps ldm's identification blob for
// privacy-mode transport under the pinned certificate's public key:
// a fresh random content key/IV encrypts the blob with AES-128-CBC,
// and the content key is itself wrapped with RSA-OAEP under the
// certificate's public key.
func encryptClientIdentification(cert *protocol.DrmCertificate, ldm *LicenseDecryptionModule) (*protocol.EncryptedClientIdentification, *Error) {
	pub, derr := certificatePublicKey(cert)
	if derr != nil {
		return nil, derr
	}

	k := make([]byte, 16)
	iv := make([]byte, 16)
	if _, err := rand.Read(k); err != nil {
		return nil, cryptoErrorf(err, "generate client identity content key")
	}
	if _, err := rand.Read(iv); err != nil {
		return nil, cryptoErrorf(err, "generate client identity iv")
	}

	ciphertext, err := wvcrypto.EncryptCBC(k, iv, ldm.identificationBlob)
	if err != nil {
		return nil, cryptoErrorf(err, "encrypt client identification")
	}
	wrappedKey, err := wvcrypto.EncryptOAEP(pub, k)
	if err != nil {
		return nil, cryptoErrorf(err, "wrap client identity content key")
	}

	return &protocol.EncryptedClientIdentification{
		ProviderID:                     cert.ProviderID,
		ServiceCertificateSerialNumber: cert.SerialNumber,
		EncryptedClientID:              ciphertext,
		EncryptedClientIDIv:            iv,
		EncryptedPrivacyKey:            wrappedKey,
	}, nil
}
